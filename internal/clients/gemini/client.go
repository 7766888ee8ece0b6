// Package gemini provides a client for the Google Gemini API
package gemini

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/mfabbri/folio/internal/common"
	"github.com/mfabbri/folio/internal/interfaces"
	"github.com/mfabbri/folio/internal/models"
)

const (
	DefaultModel       = "gemini-2.5-flash"
	DefaultTemperature = 0.4
)

// Client implements the GeminiClient interface
type Client struct {
	client      *genai.Client
	model       string
	temperature float32
	logger      *common.Logger
}

// ClientOption configures the client
type ClientOption func(*Client)

// WithModel sets the model to use
func WithModel(model string) ClientOption {
	return func(c *Client) {
		c.model = model
	}
}

// WithTemperature sets the sampling temperature
func WithTemperature(t float32) ClientOption {
	return func(c *Client) {
		c.temperature = t
	}
}

// WithLogger sets the logger
func WithLogger(logger *common.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// NewClient creates a new Gemini client
func NewClient(ctx context.Context, apiKey string, opts ...ClientOption) (*Client, error) {
	genaiClient, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	c := &Client{
		client:      genaiClient,
		model:       DefaultModel,
		temperature: DefaultTemperature,
		logger:      common.NewSilentLogger(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// GeneratePortfolio builds a suggested allocation for the given assets and
// risk profile.
func (c *Client) GeneratePortfolio(ctx context.Context, assets []string, risk models.RiskLevel, lang models.Language) (*models.PortfolioResult, error) {
	if len(assets) == 0 {
		return nil, fmt.Errorf("no assets provided")
	}

	c.logger.Debug().
		Str("model", c.model).
		Strs("assets", assets).
		Str("risk", string(risk)).
		Msg("Generating portfolio")

	prompt := buildPortfolioPrompt(assets, risk, lang)
	config := &genai.GenerateContentConfig{
		Temperature:      genai.Ptr(c.temperature),
		ResponseMIMEType: "application/json",
		ResponseSchema:   portfolioSchema,
	}

	result, err := c.client.Models.GenerateContent(ctx, c.model, genai.Text(prompt), config)
	if err != nil {
		return nil, fmt.Errorf("failed to generate portfolio: %w", err)
	}

	text, err := extractTextFromResponse(result)
	if err != nil {
		return nil, err
	}

	return parsePortfolioResult(text)
}

// LookupAsset identifies a ticker using Google Search grounding. Search
// tools cannot be combined with a response schema, so the reply is parsed
// from fenced JSON and degrades to an unrecognized placeholder on failure.
func (c *Client) LookupAsset(ctx context.Context, symbol string, lang models.Language) (*models.AssetInfo, error) {
	c.logger.Debug().Str("symbol", symbol).Msg("Looking up asset")

	prompt := buildAssetLookupPrompt(symbol, lang)
	config := &genai.GenerateContentConfig{
		Tools: []*genai.Tool{{GoogleSearch: &genai.GoogleSearch{}}},
	}

	result, err := c.client.Models.GenerateContent(ctx, c.model, genai.Text(prompt), config)
	if err != nil {
		return nil, fmt.Errorf("failed to look up asset: %w", err)
	}

	text, err := extractTextFromResponse(result)
	if err != nil {
		return nil, err
	}

	info := parseAssetInfo(symbol, text)
	info.Sources = extractGroundingSources(result)
	return info, nil
}

// GenerateSimulation produces normalized growth points for the portfolio
// and benchmark series over the given horizon.
func (c *Client) GenerateSimulation(ctx context.Context, assets []string, risk models.RiskLevel, lang models.Language, durationYears int) (*models.SimulationResult, error) {
	if len(assets) == 0 {
		return nil, fmt.Errorf("no assets provided")
	}

	c.logger.Debug().
		Strs("assets", assets).
		Int("duration", durationYears).
		Msg("Generating simulation")

	prompt := buildSimulationPrompt(assets, risk, lang, durationYears)
	config := &genai.GenerateContentConfig{
		Temperature:      genai.Ptr(c.temperature),
		ResponseMIMEType: "application/json",
		ResponseSchema:   simulationSchema,
	}

	result, err := c.client.Models.GenerateContent(ctx, c.model, genai.Text(prompt), config)
	if err != nil {
		return nil, fmt.Errorf("failed to generate simulation: %w", err)
	}

	text, err := extractTextFromResponse(result)
	if err != nil {
		return nil, err
	}

	return parseSimulationResult(text)
}

// GenerateTradeStrategy rebalances the current allocation for a tactical
// 24h horizon using fresh market quotes.
func (c *Client) GenerateTradeStrategy(ctx context.Context, allocations []models.Allocation, quotes []models.Quote, lang models.Language) (*models.TradeStrategy, error) {
	if len(allocations) == 0 {
		return nil, fmt.Errorf("no allocations provided")
	}

	c.logger.Debug().Int("allocations", len(allocations)).Msg("Generating trade strategy")

	prompt := buildTradeStrategyPrompt(allocations, quotes, lang)
	config := &genai.GenerateContentConfig{
		Temperature:      genai.Ptr(c.temperature),
		ResponseMIMEType: "application/json",
		ResponseSchema:   tradeStrategySchema,
	}

	result, err := c.client.Models.GenerateContent(ctx, c.model, genai.Text(prompt), config)
	if err != nil {
		return nil, fmt.Errorf("failed to generate trade strategy: %w", err)
	}

	text, err := extractTextFromResponse(result)
	if err != nil {
		return nil, err
	}

	return parseTradeStrategy(text)
}

// extractTextFromResponse extracts text from a generate content response
func extractTextFromResponse(result *genai.GenerateContentResponse) (string, error) {
	if len(result.Candidates) == 0 || result.Candidates[0].Content == nil || len(result.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("no content generated")
	}

	text := ""
	for _, part := range result.Candidates[0].Content.Parts {
		if part.Text != "" {
			text += part.Text
		}
	}

	return text, nil
}

// extractGroundingSources collects web sources from grounding metadata.
func extractGroundingSources(result *genai.GenerateContentResponse) []models.AssetSource {
	if len(result.Candidates) == 0 || result.Candidates[0].GroundingMetadata == nil {
		return nil
	}

	var sources []models.AssetSource
	for _, chunk := range result.Candidates[0].GroundingMetadata.GroundingChunks {
		if chunk.Web == nil || chunk.Web.URI == "" {
			continue
		}
		sources = append(sources, models.AssetSource{
			Title: chunk.Web.Title,
			URI:   chunk.Web.URI,
		})
	}
	return sources
}

func buildPortfolioPrompt(assets []string, risk models.RiskLevel, lang models.Language) string {
	return fmt.Sprintf(`You are an expert financial portfolio architect.
Build an investment allocation using ONLY the following assets: %s.

Risk profile: %s.
- LOW risk favors capital preservation and defensive weightings.
- MEDIUM risk balances growth and stability.
- HIGH risk maximizes growth potential and accepts deep drawdowns.

For each asset provide an allocation percentage, a distinct hex color, a
one-sentence rationale, an estimated historical CAGR percentage and an
estimated maximum drawdown percentage. Percentages must sum to exactly 100.
Also provide weighted portfolio totals and the Calmar ratio (totalCAGR
divided by totalMaxDrawdown).

Write strategyTitle, analysis, expectedOutlook and every rationale in %s.`,
		strings.Join(assets, ", "), risk, lang.Name())
}

func buildAssetLookupPrompt(symbol string, lang models.Language) string {
	return fmt.Sprintf(`Use web search to identify the financial asset with ticker "%s".
Respond with ONLY a JSON object, no prose, with these exact keys:
{"symbol": string, "name": string, "description": string (2 sentences max),
"sector": string, "trend": string (one short sentence on recent momentum),
"isRecognized": boolean}

If the ticker does not correspond to any real tradable asset set
isRecognized to false. Write name, description, sector and trend in %s.`,
		symbol, lang.Name())
}

func buildSimulationPrompt(assets []string, risk models.RiskLevel, lang models.Language, durationYears int) string {
	return fmt.Sprintf(`Project the growth of a %s-risk portfolio of %s over %d years.

Return %d points, one per year from year 0 to year %d. Every series value is
a growth multiplier relative to the initial investment, so every series MUST
equal exactly 1.0 at year 0. Provide the expected portfolio path plus
optimistic and pessimistic bands, and benchmark paths for the S&P 500,
Bitcoin and gold based on plausible long-run behavior.

Also provide a one-sentence insight comparing the portfolio to the
benchmarks, written in %s.`,
		risk, strings.Join(assets, ", "), durationYears, durationYears+1, durationYears, lang.Name())
}

func buildTradeStrategyPrompt(allocations []models.Allocation, quotes []models.Quote, lang models.Language) string {
	var sb strings.Builder
	sb.WriteString("Current strategic allocation:\n")
	for _, a := range allocations {
		fmt.Fprintf(&sb, "- %s: %.2f%%\n", a.Symbol, a.Percentage)
	}

	if len(quotes) > 0 {
		sb.WriteString("\nLive market data:\n")
		for _, q := range quotes {
			fmt.Fprintf(&sb, "- %s: $%.2f (%+.2f%% 24h)\n", q.Symbol, q.Price, q.Change24h)
		}
	}

	fmt.Fprintf(&sb, `
You are a tactical trader. Propose a 24-hour tactical rebalance of this
portfolio. You may move weight between the listed assets and a "USD" cash
position to hedge. Tactical percentages must sum to exactly 100. Choose an
overall action: BUY, SELL, HOLD or HEDGE. Write the reasoning in %s.`,
		lang.Name())

	return sb.String()
}

// Ensure Client implements GeminiClient
var _ interfaces.GeminiClient = (*Client)(nil)
