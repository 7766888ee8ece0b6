package calc

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCompound(t *testing.T) {
	r := Compound(10000, 8, 10)
	assert.InDelta(t, 21589.25, r.Total, 0.01)
	assert.InDelta(t, 11589.25, r.Profit, 0.01)

	r = Compound(10000, 0, 10)
	assert.Equal(t, 10000.0, r.Total)
	assert.Equal(t, 0.0, r.Profit)
}

func TestDelta(t *testing.T) {
	r := Delta(100, 150)
	assert.Equal(t, 50.0, r.Diff)
	assert.Equal(t, 50.0, r.Percent)

	r = Delta(150, 100)
	assert.Equal(t, -50.0, r.Diff)
	assert.InDelta(t, -33.33, r.Percent, 0.01)

	r = Delta(0, 100)
	assert.Equal(t, 100.0, r.Diff)
	assert.Equal(t, 0.0, r.Percent)
}

func TestPositionSize(t *testing.T) {
	r := PositionSize(10000, 1, 5)
	assert.Equal(t, 100.0, r.Amount)
	assert.Equal(t, 2000.0, r.Size)

	r = PositionSize(10000, 1, 0)
	assert.Equal(t, 100.0, r.Amount)
	assert.Equal(t, 0.0, r.Size)
}

func TestAverageDown(t *testing.T) {
	r := AverageDown(100, 50, 100, 40)
	assert.Equal(t, 45.0, r.NewAverage)
	assert.Equal(t, 200.0, r.TotalShares)

	r = AverageDown(0, 0, 0, 0)
	assert.Equal(t, 0.0, r.NewAverage)
	assert.Equal(t, 0.0, r.TotalShares)
}
