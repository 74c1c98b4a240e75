package nutrition

import "google.golang.org/genai"

// resultSchema is the response schema the model must satisfy. The response is
// parsed as structured data, never as free text; anything that fails to
// decode against this shape is a ComputationError.
func resultSchema() *genai.Schema {
	recommendation := &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"name":   {Type: genai.TypeString, Description: "Full name of the product (Brand + Formula)"},
			"reason": {Type: genai.TypeString, Description: "Short reason why this is good"},
		},
		Required: []string{"name", "reason"},
	}

	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"dailyCalories": {Type: genai.TypeNumber, Description: "Total recommended calories per day in kcal"},
			"wetFoodAmount": {Type: genai.TypeString, Description: "Description of wet food amount (e.g., '1.5 cans (5.5oz)') or '0' if none"},
			"dryFoodAmount": {Type: genai.TypeString, Description: "Description of dry food amount (e.g., '1 cup') or '0' if none"},
			"summary":       {Type: genai.TypeString, Description: "A concise summary of the diet plan."},
			"advice":        {Type: genai.TypeString, Description: "Specific medical or dietary advice based on inputs."},
			"recommendations": {
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"wet": {
						Type:        genai.TypeArray,
						Description: "Top 3 Wet Food recommendations",
						Items:       recommendation,
					},
					"dry": {
						Type:        genai.TypeArray,
						Description: "Top 3 Dry Food recommendations",
						Items:       recommendation,
					},
				},
				Required: []string{"wet", "dry"},
			},
		},
		Required: []string{"dailyCalories", "wetFoodAmount", "dryFoodAmount", "summary", "advice", "recommendations"},
	}
}
