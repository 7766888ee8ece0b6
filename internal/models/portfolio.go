// Package models defines data structures for Folio
package models

import (
	"strings"
	"time"
)

// RiskLevel categorizes the user's risk appetite for a generated portfolio.
type RiskLevel string

const (
	RiskLow    RiskLevel = "LOW"
	RiskMedium RiskLevel = "MEDIUM"
	RiskHigh   RiskLevel = "HIGH"
)

// ParseRiskLevel normalizes a risk level string, defaulting to MEDIUM.
func ParseRiskLevel(s string) RiskLevel {
	switch RiskLevel(strings.ToUpper(strings.TrimSpace(s))) {
	case RiskLow:
		return RiskLow
	case RiskHigh:
		return RiskHigh
	default:
		return RiskMedium
	}
}

// Language selects the output language for generated narrative text.
type Language string

const (
	LangItalian Language = "it"
	LangEnglish Language = "en"
	LangSpanish Language = "es"
)

// Name returns the English name of the language, used in prompts.
func (l Language) Name() string {
	switch l {
	case LangEnglish:
		return "English"
	case LangSpanish:
		return "Spanish"
	default:
		return "Italian"
	}
}

// ParseLanguage normalizes a language code, defaulting to English.
func ParseLanguage(s string) Language {
	switch Language(strings.ToLower(strings.TrimSpace(s))) {
	case LangItalian:
		return LangItalian
	case LangSpanish:
		return LangSpanish
	default:
		return LangEnglish
	}
}

// Allocation is one line item of a portfolio.
type Allocation struct {
	Symbol      string  `json:"symbol"`
	Name        string  `json:"name"`
	Percentage  float64 `json:"percentage"`
	Reason      string  `json:"reason,omitempty"`
	Color       string  `json:"color,omitempty"`
	CAGR        float64 `json:"cagr"`
	MaxDrawdown float64 `json:"maxDrawdown"` // stored as a positive magnitude
}

// PortfolioResult is a generated portfolio snapshot: allocations plus
// aggregate statistics and narrative analysis.
type PortfolioResult struct {
	StrategyTitle    string       `json:"strategyTitle"`
	Allocations      []Allocation `json:"allocations"`
	Analysis         string       `json:"analysis"`
	ExpectedOutlook  string       `json:"expectedOutlook"`
	TotalCAGR        float64      `json:"totalCAGR"`
	TotalMaxDrawdown float64      `json:"totalMaxDrawdown"`
	CalmarRatio      float64      `json:"calmarRatio"`
	Volatility       string       `json:"volatility"`
}

// Clone returns a deep copy of the result.
func (p *PortfolioResult) Clone() *PortfolioResult {
	out := *p
	out.Allocations = make([]Allocation, len(p.Allocations))
	copy(out.Allocations, p.Allocations)
	return &out
}

// WeightSum returns the sum of allocation percentages.
func (p *PortfolioResult) WeightSum() float64 {
	sum := 0.0
	for _, a := range p.Allocations {
		sum += a.Percentage
	}
	return sum
}

// SavedPortfolio is a PortfolioResult promoted into the persisted library.
type SavedPortfolio struct {
	ID             string    `json:"id" badgerhold:"key"`
	CreatedAt      time.Time `json:"created_at"`
	OriginalAssets []string  `json:"original_assets"`
	RiskLevel      RiskLevel `json:"risk_level"`
	Result         PortfolioResult `json:"result"`
}

// AssetType categorizes catalog entries.
type AssetType string

const (
	AssetStock     AssetType = "stock"
	AssetCrypto    AssetType = "crypto"
	AssetETF       AssetType = "etf"
	AssetCommodity AssetType = "commodity"
	AssetForex     AssetType = "forex"
)

// AssetOption is a catalog entry offered in the asset selector.
type AssetOption struct {
	Symbol string    `json:"symbol"`
	Name   string    `json:"name"`
	Type   AssetType `json:"type"`
}
