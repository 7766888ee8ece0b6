// Package calc provides the standalone financial calculators.
package calc

import "math"

// CompoundResult is the outcome of a compound-interest projection.
type CompoundResult struct {
	Total  float64 `json:"total"`
	Profit float64 `json:"profit"`
}

// Compound projects principal at ratePercent per year for years.
func Compound(principal, ratePercent, years float64) CompoundResult {
	total := principal * math.Pow(1+ratePercent/100, years)
	return CompoundResult{
		Total:  total,
		Profit: total - principal,
	}
}

// DeltaResult is the absolute and relative change between two prices.
type DeltaResult struct {
	Diff    float64 `json:"diff"`
	Percent float64 `json:"percent"`
}

// Delta computes the change from price a to price b. A zero starting price
// yields a zero percentage.
func Delta(a, b float64) DeltaResult {
	diff := b - a
	percent := 0.0
	if a != 0 {
		percent = diff / a * 100
	}
	return DeltaResult{Diff: diff, Percent: percent}
}

// PositionSizeResult is the amount at risk and the corresponding position
// size.
type PositionSizeResult struct {
	Size   float64 `json:"size"`
	Amount float64 `json:"amount"`
}

// PositionSize sizes a trade so that hitting the stop loses exactly
// riskPercent of the balance. stopPercent is the stop-loss distance from
// entry; a zero stop yields a zero size.
func PositionSize(balance, riskPercent, stopPercent float64) PositionSizeResult {
	amount := balance * riskPercent / 100
	size := 0.0
	if stopPercent != 0 {
		size = amount / (stopPercent / 100)
	}
	return PositionSizeResult{Size: size, Amount: amount}
}

// AverageDownResult is the blended entry after an additional purchase.
type AverageDownResult struct {
	NewAverage  float64 `json:"newAverage"`
	TotalShares float64 `json:"totalShares"`
}

// AverageDown blends an existing position of ownedQty at ownedPrice with a
// new purchase of buyQty at buyPrice.
func AverageDown(ownedQty, ownedPrice, buyQty, buyPrice float64) AverageDownResult {
	totalQty := ownedQty + buyQty
	newAvg := 0.0
	if totalQty != 0 {
		newAvg = (ownedQty*ownedPrice + buyQty*buyPrice) / totalQty
	}
	return AverageDownResult{NewAverage: newAvg, TotalShares: totalQty}
}
