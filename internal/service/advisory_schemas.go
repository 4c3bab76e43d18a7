package service

import "google.golang.org/genai"

// Response schemas for the structured advisory operations. These mirror
// the JSON shapes of the domain advisory types; the model is constrained
// to them via GenerateContentConfig.ResponseSchema.

var pestAlertSchema = &genai.Schema{
	Type: genai.TypeArray,
	Items: &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"pestName":    {Type: genai.TypeString},
			"severity":    {Type: genai.TypeString, Enum: []string{"Low", "Medium", "High"}},
			"description": {Type: genai.TypeString},
			"prevention":  {Type: genai.TypeString},
		},
		Required: []string{"pestName", "severity", "description", "prevention"},
	},
}

var fertilizerSchema = &genai.Schema{
	Type: genai.TypeArray,
	Items: &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"stage":      {Type: genai.TypeString},
			"fertilizer": {Type: genai.TypeString},
			"quantity":   {Type: genai.TypeString},
			"reason":     {Type: genai.TypeString},
		},
		Required: []string{"stage", "fertilizer", "quantity", "reason"},
	},
}

var rotationSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"currentCrop": {Type: genai.TypeString},
		"suggestedNextCrops": {
			Type: genai.TypeArray,
			Items: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"cropName": {Type: genai.TypeString},
					"reason":   {Type: genai.TypeString},
					"benefits": {Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString}},
				},
				Required: []string{"cropName", "reason", "benefits"},
			},
		},
	},
	Required: []string{"currentCrop", "suggestedNextCrops"},
}

var marketSchema = &genai.Schema{
	Type: genai.TypeArray,
	Items: &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"crop":         {Type: genai.TypeString},
			"currentPrice": {Type: genai.TypeNumber},
			"unit":         {Type: genai.TypeString},
			"trend":        {Type: genai.TypeString, Enum: []string{"up", "down", "stable"}},
			"region":       {Type: genai.TypeString},
			"history": {
				Type: genai.TypeArray,
				Items: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"date":  {Type: genai.TypeString},
						"price": {Type: genai.TypeNumber},
					},
				},
			},
		},
	},
}

var suggestionSchema = &genai.Schema{
	Type: genai.TypeArray,
	Items: &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"cropName":         {Type: genai.TypeString},
			"variety":          {Type: genai.TypeString},
			"reason":           {Type: genai.TypeString},
			"estimatedYield":   {Type: genai.TypeString},
			"marketOutlook":    {Type: genai.TypeString},
			"suitabilityScore": {Type: genai.TypeNumber},
		},
		Required: []string{"cropName", "variety", "reason", "estimatedYield", "marketOutlook", "suitabilityScore"},
	},
}

var harvestDateSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"harvestDate":    {Type: genai.TypeString, Description: "YYYY-MM-DD"},
		"daysToMaturity": {Type: genai.TypeInteger},
	},
	Required: []string{"harvestDate"},
}
