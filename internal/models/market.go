package models

// Quote is a live market data point for one symbol.
type Quote struct {
	Symbol    string  `json:"symbol"`
	Price     float64 `json:"price"`
	Change24h float64 `json:"change24h"`
}

// AssetSource is a cited web source backing an asset info lookup.
type AssetSource struct {
	Title string `json:"title"`
	URI   string `json:"uri"`
}

// AssetInfo describes a looked-up ticker. When the model cannot identify the
// ticker (or its output cannot be parsed), Recognized is false and the
// remaining fields carry placeholder text rather than an error.
type AssetInfo struct {
	Symbol      string        `json:"symbol"`
	Name        string        `json:"name"`
	Description string        `json:"description"`
	Sector      string        `json:"sector"`
	Trend       string        `json:"trend"`
	Recognized  bool          `json:"isRecognized"`
	Sources     []AssetSource `json:"sources,omitempty"`
}
