package models

// TradeAction is the model's overall tactical stance.
type TradeAction string

const (
	TradeBuy   TradeAction = "BUY"
	TradeSell  TradeAction = "SELL"
	TradeHold  TradeAction = "HOLD"
	TradeHedge TradeAction = "HEDGE"
)

// TacticalAllocation is a symbol+weight pair in a tactical rebalance.
// Color is derived by the caller (strategic color or catalog fallback).
type TacticalAllocation struct {
	Symbol     string  `json:"symbol"`
	Percentage float64 `json:"percentage"`
	Color      string  `json:"color,omitempty"`
}

// TradeStrategy is a short-horizon rebalancing of the current allocation
// driven by 24h market momentum.
type TradeStrategy struct {
	TacticalAllocations []TacticalAllocation `json:"tacticalAllocations"`
	Reasoning           string               `json:"reasoning"`
	Action              TradeAction          `json:"action"`
}
