package marketdata

import (
	"context"
	"net/url"
	"strings"

	"github.com/mfabbri/folio/internal/models"
)

// twelveDataQuote is the /quote response. Numeric fields arrive as strings.
// A populated code field signals a provider-level error for the symbol.
type twelveDataQuote struct {
	Symbol        string      `json:"symbol"`
	Close         flexFloat64 `json:"close"`
	PercentChange flexFloat64 `json:"percent_change"`
	Code          int         `json:"code"`
	Message       string      `json:"message"`
}

// quotesTwelveData fetches quotes one symbol at a time. Symbols the provider
// rejects or fails on are skipped; only context cancellation aborts the
// batch.
func (c *Client) quotesTwelveData(ctx context.Context, symbols []string) ([]models.Quote, error) {
	quotes := make([]models.Quote, 0, len(symbols))
	for _, sym := range symbols {
		sym = strings.ToUpper(strings.TrimSpace(sym))
		if sym == "" {
			continue
		}

		params := url.Values{}
		params.Set("symbol", sym)
		params.Set("apikey", c.apiKey)

		var response twelveDataQuote
		if err := c.get(ctx, c.twelveDataURL, "/quote", params, &response); err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			c.logger.Warn().Err(err).Str("symbol", sym).Msg("Quote fetch failed, skipping symbol")
			continue
		}

		if response.Code != 0 {
			c.logger.Debug().
				Str("symbol", sym).
				Int("code", response.Code).
				Str("message", response.Message).
				Msg("Symbol not resolved, skipping")
			continue
		}

		quotes = append(quotes, models.Quote{
			Symbol:    sym,
			Price:     float64(response.Close),
			Change24h: float64(response.PercentChange),
		})
	}
	return quotes, nil
}
