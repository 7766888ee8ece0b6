package marketdata

import (
	"context"
	"net/url"
	"strings"

	"github.com/mfabbri/folio/internal/catalog"
	"github.com/mfabbri/folio/internal/models"
)

// coinGeckoQuote is one entry of the /simple/price response, keyed by asset id.
type coinGeckoQuote struct {
	USD          flexFloat64 `json:"usd"`
	USD24hChange flexFloat64 `json:"usd_24h_change"`
}

// quotesCoinGecko fetches crypto quotes in a single batched call. Symbols
// without a CoinGecko id mapping are skipped.
func (c *Client) quotesCoinGecko(ctx context.Context, symbols []string) ([]models.Quote, error) {
	ids := make([]string, 0, len(symbols))
	idToSymbol := make(map[string]string, len(symbols))
	for _, sym := range symbols {
		id, ok := catalog.CoinGeckoID(sym)
		if !ok {
			continue
		}
		ids = append(ids, id)
		idToSymbol[id] = strings.ToUpper(strings.TrimSpace(sym))
	}
	if len(ids) == 0 {
		return nil, nil
	}

	params := url.Values{}
	params.Set("ids", strings.Join(ids, ","))
	params.Set("vs_currencies", "usd")
	params.Set("include_24hr_change", "true")
	if c.apiKey != "" {
		params.Set("x_cg_demo_api_key", c.apiKey)
	}

	var response map[string]coinGeckoQuote
	if err := c.get(ctx, c.coinGeckoURL, "/simple/price", params, &response); err != nil {
		return nil, err
	}

	quotes := make([]models.Quote, 0, len(response))
	// Preserve the request order rather than the map's.
	for _, id := range ids {
		entry, ok := response[id]
		if !ok {
			continue
		}
		quotes = append(quotes, models.Quote{
			Symbol:    idToSymbol[id],
			Price:     float64(entry.USD),
			Change24h: float64(entry.USD24hChange),
		})
	}
	return quotes, nil
}
