package models

import "fmt"

// SimulationDurations lists the supported projection horizons in years.
var SimulationDurations = []int{5, 10, 20}

// ValidSimulationDuration reports whether years is a supported horizon.
func ValidSimulationDuration(years int) bool {
	for _, d := range SimulationDurations {
		if d == years {
			return true
		}
	}
	return false
}

// SimulationPoint holds normalized growth multipliers for one year.
// Year 0 carries 1.0 for every series.
type SimulationPoint struct {
	Year           int     `json:"year"`
	Portfolio      float64 `json:"portfolio"`
	PortfolioBest  float64 `json:"portfolioBest"`
	PortfolioWorst float64 `json:"portfolioWorst"`
	SP500          float64 `json:"sp500"`
	BTC            float64 `json:"btc"`
	Gold           float64 `json:"gold"`
}

// SimulationResult is a fetched projection: duration+1 points and a
// one-sentence insight.
type SimulationResult struct {
	Points  []SimulationPoint `json:"points"`
	Insight string            `json:"insight"`
}

// ScaledPoint is a simulation point converted to absolute currency values
// for a chosen initial investment, plus the locally computed custom target.
type ScaledPoint struct {
	Year           int     `json:"year"`
	Portfolio      float64 `json:"portfolio"`
	PortfolioBest  float64 `json:"portfolio_best"`
	PortfolioWorst float64 `json:"portfolio_worst"`
	SP500          float64 `json:"sp500"`
	BTC            float64 `json:"btc"`
	Gold           float64 `json:"gold"`
	CustomTarget   float64 `json:"custom_target,omitempty"`
}

// SimulationKey identifies the parameter tuple a simulation fetch belongs
// to. Responses tagged with a key that no longer matches the latest request
// are discarded.
type SimulationKey struct {
	Assets   string // comma-joined, order-preserving
	Risk     RiskLevel
	Language Language
	Duration int
}

func (k SimulationKey) String() string {
	return fmt.Sprintf("%s|%s|%s|%d", k.Assets, k.Risk, k.Language, k.Duration)
}
