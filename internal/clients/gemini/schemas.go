package gemini

import "google.golang.org/genai"

// Response schemas for structured JSON output. Requests that carry a schema
// set ResponseMIMEType to application/json so the model returns a single
// parseable object.

var portfolioSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"strategyTitle": {
			Type:        genai.TypeString,
			Description: "Short catchy title for the strategy",
		},
		"allocations": {
			Type: genai.TypeArray,
			Items: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"symbol":      {Type: genai.TypeString},
					"name":        {Type: genai.TypeString},
					"percentage":  {Type: genai.TypeNumber},
					"color":       {Type: genai.TypeString, Description: "Hex color code"},
					"rationale":   {Type: genai.TypeString},
					"cagr":        {Type: genai.TypeNumber, Description: "Estimated annual growth rate percentage"},
					"maxDrawdown": {Type: genai.TypeNumber, Description: "Estimated maximum historical loss percentage"},
				},
				Required: []string{"symbol", "name", "percentage", "color", "rationale", "cagr", "maxDrawdown"},
			},
		},
		"analysis":          {Type: genai.TypeString},
		"expectedOutlook":   {Type: genai.TypeString},
		"totalCAGR":         {Type: genai.TypeNumber, Description: "Weighted average portfolio CAGR"},
		"totalMaxDrawdown":  {Type: genai.TypeNumber, Description: "Weighted average portfolio max drawdown"},
		"calmarRatio":       {Type: genai.TypeNumber, Description: "totalCAGR divided by totalMaxDrawdown"},
		"volatilityEstimate": {Type: genai.TypeString, Description: "Low, Medium or High"},
	},
	Required: []string{"strategyTitle", "allocations", "analysis", "expectedOutlook", "totalCAGR", "totalMaxDrawdown", "calmarRatio", "volatilityEstimate"},
}

var simulationSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"points": {
			Type: genai.TypeArray,
			Items: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"year":           {Type: genai.TypeInteger},
					"portfolio":      {Type: genai.TypeNumber, Description: "Expected growth multiplier"},
					"portfolioBest":  {Type: genai.TypeNumber, Description: "Optimistic growth multiplier"},
					"portfolioWorst": {Type: genai.TypeNumber, Description: "Pessimistic growth multiplier"},
					"sp500":          {Type: genai.TypeNumber},
					"btc":            {Type: genai.TypeNumber},
					"gold":           {Type: genai.TypeNumber},
				},
				Required: []string{"year", "portfolio", "portfolioBest", "portfolioWorst", "sp500", "btc", "gold"},
			},
		},
		"insight": {Type: genai.TypeString, Description: "One-sentence comparison insight"},
	},
	Required: []string{"points", "insight"},
}

var tradeStrategySchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"tacticalAllocations": {
			Type: genai.TypeArray,
			Items: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"symbol":     {Type: genai.TypeString},
					"percentage": {Type: genai.TypeNumber},
				},
				Required: []string{"symbol", "percentage"},
			},
		},
		"reasoning": {Type: genai.TypeString},
		"action":    {Type: genai.TypeString, Description: "BUY, SELL, HOLD or HEDGE"},
	},
	Required: []string{"tacticalAllocations", "reasoning", "action"},
}
