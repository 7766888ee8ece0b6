// Package catalog provides the static asset lookup tables: popular assets
// for the selector, fixed brand colors for charting, and the CoinGecko id
// map for the crypto market-data provider.
//
// The catalog is advisory and display-only. Lookups on unknown symbols fall
// back to caller-provided values; an arbitrary user-typed ticker is never
// blocked here.
package catalog

import (
	"strings"

	"github.com/mfabbri/folio/internal/models"
)

// PopularAssets is the curated selector list.
var PopularAssets = []models.AssetOption{
	// US tech & growth
	{Symbol: "AAPL", Name: "Apple Inc.", Type: models.AssetStock},
	{Symbol: "MSFT", Name: "Microsoft", Type: models.AssetStock},
	{Symbol: "GOOGL", Name: "Alphabet", Type: models.AssetStock},
	{Symbol: "AMZN", Name: "Amazon", Type: models.AssetStock},
	{Symbol: "TSLA", Name: "Tesla", Type: models.AssetStock},
	{Symbol: "NVDA", Name: "NVIDIA", Type: models.AssetStock},
	{Symbol: "META", Name: "Meta Platforms", Type: models.AssetStock},
	{Symbol: "NFLX", Name: "Netflix", Type: models.AssetStock},
	{Symbol: "AMD", Name: "AMD", Type: models.AssetStock},
	{Symbol: "PLTR", Name: "Palantir", Type: models.AssetStock},
	{Symbol: "COIN", Name: "Coinbase", Type: models.AssetStock},
	{Symbol: "CRM", Name: "Salesforce", Type: models.AssetStock},
	{Symbol: "UBER", Name: "Uber Technologies", Type: models.AssetStock},
	{Symbol: "ABNB", Name: "Airbnb", Type: models.AssetStock},

	// Italian (FTSE MIB) & European
	{Symbol: "RACE.MI", Name: "Ferrari", Type: models.AssetStock},
	{Symbol: "ENEL.MI", Name: "Enel", Type: models.AssetStock},
	{Symbol: "ENI.MI", Name: "Eni", Type: models.AssetStock},
	{Symbol: "ISP.MI", Name: "Intesa Sanpaolo", Type: models.AssetStock},
	{Symbol: "UCG.MI", Name: "UniCredit", Type: models.AssetStock},
	{Symbol: "STLAM.MI", Name: "Stellantis", Type: models.AssetStock},
	{Symbol: "LDO.MI", Name: "Leonardo", Type: models.AssetStock},
	{Symbol: "MONC.MI", Name: "Moncler", Type: models.AssetStock},
	{Symbol: "TERNA.MI", Name: "Terna", Type: models.AssetStock},
	{Symbol: "SRG.MI", Name: "Snam", Type: models.AssetStock},
	{Symbol: "LVMH.PA", Name: "LVMH", Type: models.AssetStock},
	{Symbol: "AIR.PA", Name: "Airbus", Type: models.AssetStock},
	{Symbol: "SAP.DE", Name: "SAP SE", Type: models.AssetStock},

	// Crypto
	{Symbol: "BTC", Name: "Bitcoin", Type: models.AssetCrypto},
	{Symbol: "ETH", Name: "Ethereum", Type: models.AssetCrypto},
	{Symbol: "SOL", Name: "Solana", Type: models.AssetCrypto},
	{Symbol: "BNB", Name: "Binance Coin", Type: models.AssetCrypto},
	{Symbol: "ADA", Name: "Cardano", Type: models.AssetCrypto},
	{Symbol: "XRP", Name: "Ripple", Type: models.AssetCrypto},
	{Symbol: "DOT", Name: "Polkadot", Type: models.AssetCrypto},
	{Symbol: "DOGE", Name: "Dogecoin", Type: models.AssetCrypto},
	{Symbol: "SHIB", Name: "Shiba Inu", Type: models.AssetCrypto},
	{Symbol: "PEPE", Name: "Pepe", Type: models.AssetCrypto},
	{Symbol: "MATIC", Name: "Polygon", Type: models.AssetCrypto},
	{Symbol: "AVAX", Name: "Avalanche", Type: models.AssetCrypto},
	{Symbol: "LINK", Name: "Chainlink", Type: models.AssetCrypto},
	{Symbol: "UNI", Name: "Uniswap", Type: models.AssetCrypto},
	{Symbol: "LTC", Name: "Litecoin", Type: models.AssetCrypto},
	{Symbol: "NEAR", Name: "NEAR Protocol", Type: models.AssetCrypto},

	// ETFs
	{Symbol: "SPY", Name: "S&P 500 ETF", Type: models.AssetETF},
	{Symbol: "QQQ", Name: "Nasdaq 100 ETF", Type: models.AssetETF},
	{Symbol: "VTI", Name: "Total Stock Mkt", Type: models.AssetETF},
	{Symbol: "VOO", Name: "Vanguard S&P 500", Type: models.AssetETF},
	{Symbol: "ARKK", Name: "ARK Innovation", Type: models.AssetETF},
	{Symbol: "TLT", Name: "20+ Year Treasury", Type: models.AssetETF},
	{Symbol: "VWCE.DE", Name: "Vanguard All-World", Type: models.AssetETF},
	{Symbol: "SMH", Name: "Semiconductor ETF", Type: models.AssetETF},
	{Symbol: "XLE", Name: "Energy Select Sector", Type: models.AssetETF},
	{Symbol: "XLK", Name: "Technology Select", Type: models.AssetETF},
	{Symbol: "JEPI", Name: "JPMorgan Equity Prem", Type: models.AssetETF},

	// Commodities
	{Symbol: "GLD", Name: "Gold Trust", Type: models.AssetCommodity},
	{Symbol: "SLV", Name: "Silver Trust", Type: models.AssetCommodity},
	{Symbol: "USO", Name: "United States Oil", Type: models.AssetCommodity},
	{Symbol: "DBC", Name: "Commodity Index", Type: models.AssetCommodity},
	{Symbol: "PPLT", Name: "Platinum", Type: models.AssetCommodity},
	{Symbol: "CORN", Name: "Corn Fund", Type: models.AssetCommodity},
	{Symbol: "WEAT", Name: "Wheat Fund", Type: models.AssetCommodity},
}

// fixedColors maps known brand assets to their chart colors. USD carries the
// cash green used by tactical strategies.
var fixedColors = map[string]string{
	// Crypto
	"BTC":  "#F7931A",
	"ETH":  "#627EEA",
	"SOL":  "#14F195",
	"BNB":  "#F3BA2F",
	"USDT": "#26A17B",
	"USDC": "#2775CA",
	"ADA":  "#60A5FA",
	"XRP":  "#3B82F6",
	"DOGE": "#C2A633",
	"DOT":  "#E6007A",
	"USD":  "#10B981",

	// Tech stocks
	"AAPL":  "#94A3B8",
	"MSFT":  "#00A4EF",
	"GOOGL": "#4285F4",
	"AMZN":  "#FF9900",
	"TSLA":  "#E31937",
	"NVDA":  "#76B900",
	"META":  "#0668E1",
	"NFLX":  "#E50914",

	// Commodities
	"GLD": "#FFD700",
	"SLV": "#C0C0C0",
}

// coinGeckoIDs maps crypto symbols to CoinGecko asset ids.
var coinGeckoIDs = map[string]string{
	"BTC":   "bitcoin",
	"ETH":   "ethereum",
	"SOL":   "solana",
	"BNB":   "binancecoin",
	"ADA":   "cardano",
	"XRP":   "ripple",
	"DOT":   "polkadot",
	"DOGE":  "dogecoin",
	"SHIB":  "shiba-inu",
	"PEPE":  "pepe",
	"MATIC": "matic-network",
	"AVAX":  "avalanche-2",
	"LINK":  "chainlink",
	"UNI":   "uniswap",
	"LTC":   "litecoin",
	"NEAR":  "near",
}

// Lookup finds a popular asset by symbol, case-insensitively.
func Lookup(symbol string) (models.AssetOption, bool) {
	upper := strings.ToUpper(strings.TrimSpace(symbol))
	for _, a := range PopularAssets {
		if strings.ToUpper(a.Symbol) == upper {
			return a, true
		}
	}
	return models.AssetOption{}, false
}

// Color returns the fixed brand color for a symbol, or fallback when the
// symbol has no brand entry.
func Color(symbol, fallback string) string {
	if c, ok := fixedColors[strings.ToUpper(strings.TrimSpace(symbol))]; ok {
		return c
	}
	return fallback
}

// CoinGeckoID returns the CoinGecko asset id for a crypto symbol.
func CoinGeckoID(symbol string) (string, bool) {
	id, ok := coinGeckoIDs[strings.ToUpper(strings.TrimSpace(symbol))]
	return id, ok
}

// Search filters popular assets by a free-text query and optional category.
// An empty query matches everything in the category.
func Search(query string, category models.AssetType) []models.AssetOption {
	q := strings.ToUpper(strings.TrimSpace(query))
	var out []models.AssetOption
	for _, a := range PopularAssets {
		if category != "" && a.Type != category {
			continue
		}
		if q != "" &&
			!strings.Contains(strings.ToUpper(a.Symbol), q) &&
			!strings.Contains(strings.ToUpper(a.Name), q) {
			continue
		}
		out = append(out, a)
	}
	return out
}
