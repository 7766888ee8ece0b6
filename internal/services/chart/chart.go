// Package chart renders portfolio visuals as PNG images.
package chart

import (
	"bytes"
	"fmt"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/mfabbri/folio/internal/models"
)

const fallbackSliceColor = "64748B" // slate-500

// RenderAllocationChart renders the allocation breakdown as a donut chart.
// Zero-weight legs are skipped. Returns raw PNG bytes.
func RenderAllocationChart(allocations []models.Allocation) ([]byte, error) {
	values := make([]chart.Value, 0, len(allocations))
	for _, a := range allocations {
		if a.Percentage <= 0 {
			continue
		}
		values = append(values, chart.Value{
			Label: fmt.Sprintf("%s %.1f%%", a.Symbol, a.Percentage),
			Value: a.Percentage,
			Style: chart.Style{
				FillColor: drawing.ColorFromHex(stripHash(a.Color)),
			},
		})
	}
	if len(values) == 0 {
		return nil, fmt.Errorf("no positive allocations to render")
	}

	graph := chart.DonutChart{
		Title:  "Allocation",
		Width:  500,
		Height: 500,
		Values: values,
	}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("chart render failed: %w", err)
	}

	return buf.Bytes(), nil
}

// RenderSimulationChart renders scaled projection series as a line chart.
// The expected path draws solid with best/worst bands dashed around it;
// benchmarks draw in their brand colors. Returns raw PNG bytes.
func RenderSimulationChart(points []models.ScaledPoint) ([]byte, error) {
	if len(points) < 2 {
		return nil, fmt.Errorf("need at least 2 data points, got %d", len(points))
	}

	years := make([]float64, len(points))
	portfolio := make([]float64, len(points))
	best := make([]float64, len(points))
	worst := make([]float64, len(points))
	sp500 := make([]float64, len(points))
	btc := make([]float64, len(points))
	gold := make([]float64, len(points))
	custom := make([]float64, len(points))
	hasCustom := false

	for i, p := range points {
		years[i] = float64(p.Year)
		portfolio[i] = p.Portfolio
		best[i] = p.PortfolioBest
		worst[i] = p.PortfolioWorst
		sp500[i] = p.SP500
		btc[i] = p.BTC
		gold[i] = p.Gold
		custom[i] = p.CustomTarget
		if p.CustomTarget != 0 {
			hasCustom = true
		}
	}

	band := chart.Style{
		StrokeColor:     drawing.ColorFromHex("818cf8"), // indigo-400
		StrokeWidth:     1.0,
		StrokeDashArray: []float64{4.0, 3.0},
	}

	series := []chart.Series{
		chart.ContinuousSeries{
			Name:    "Portfolio",
			Style:   chart.Style{StrokeColor: drawing.ColorFromHex("6366f1"), StrokeWidth: 2.5}, // indigo-500
			XValues: years,
			YValues: portfolio,
		},
		chart.ContinuousSeries{Name: "Best Case", Style: band, XValues: years, YValues: best},
		chart.ContinuousSeries{Name: "Worst Case", Style: band, XValues: years, YValues: worst},
		chart.ContinuousSeries{
			Name:    "S&P 500",
			Style:   chart.Style{StrokeColor: drawing.ColorFromHex("9ca3af"), StrokeWidth: 1.5}, // gray-400
			XValues: years,
			YValues: sp500,
		},
		chart.ContinuousSeries{
			Name:    "Bitcoin",
			Style:   chart.Style{StrokeColor: drawing.ColorFromHex("F7931A"), StrokeWidth: 1.5},
			XValues: years,
			YValues: btc,
		},
		chart.ContinuousSeries{
			Name:    "Gold",
			Style:   chart.Style{StrokeColor: drawing.ColorFromHex("FFD700"), StrokeWidth: 1.5},
			XValues: years,
			YValues: gold,
		},
	}

	if hasCustom {
		series = append(series, chart.ContinuousSeries{
			Name: "Target",
			Style: chart.Style{
				StrokeColor:     drawing.ColorFromHex("10B981"), // emerald-500
				StrokeWidth:     1.5,
				StrokeDashArray: []float64{6.0, 4.0},
			},
			XValues: years,
			YValues: custom,
		})
	}

	graph := chart.Chart{
		Title:  "Projected Growth",
		Width:  900,
		Height: 400,
		Background: chart.Style{
			Padding: chart.Box{Top: 40, Left: 10, Right: 20, Bottom: 10},
		},
		XAxis: chart.XAxis{
			ValueFormatter: func(v interface{}) string {
				if f, ok := v.(float64); ok {
					return fmt.Sprintf("Y%.0f", f)
				}
				return ""
			},
		},
		YAxis: chart.YAxis{
			ValueFormatter: func(v interface{}) string {
				if f, ok := v.(float64); ok {
					if f >= 1000 {
						return fmt.Sprintf("$%.0fk", f/1000)
					}
					return fmt.Sprintf("$%.0f", f)
				}
				return ""
			},
		},
		Series: series,
	}

	graph.Elements = []chart.Renderable{
		chart.LegendLeft(&graph),
	}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("chart render failed: %w", err)
	}

	return buf.Bytes(), nil
}

func stripHash(color string) string {
	if color == "" {
		return fallbackSliceColor
	}
	if color[0] == '#' {
		return color[1:]
	}
	return color
}
