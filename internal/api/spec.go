package api

import (
	"github.com/seren-app/seren/internal/config"
	"github.com/seren-app/seren/pkg/openapi"
)

// buildSpec assembles the OpenAPI document served at /openapi.json.
func buildSpec(cfg *config.Config) *openapi.Spec {
	spec := openapi.NewSpec(cfg.API.OpenAPI.Title, cfg.Version)
	spec.SetDescription(cfg.API.OpenAPI.Description)
	spec.AddServer(cfg.API.BasePath)

	spec.Components.AddSchemas(map[string]*openapi.Schema{
		"EmotionRecord": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"id":           {Type: "string", Format: "uuid"},
				"subject_id":   {Type: "string", Format: "uuid"},
				"source_text":  {Type: "string"},
				"media_key":    {Type: "string"},
				"media_type":   {Type: "string"},
				"label":        SchemaLabel(),
				"score":        {Type: "integer", Minimum: f(0), Maximum: f(100)},
				"distribution": {Type: "object"},
				"created_at":   {Type: "string", Format: "date-time"},
			},
			Required: []string{"id", "subject_id", "label", "score", "distribution", "created_at"},
		},
		"ClassifyCommand": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"subject_id": {Type: "string", Format: "uuid"},
				"text":       {Type: "string"},
			},
			Required: []string{"subject_id", "text"},
		},
		"Alert": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"id":           {Type: "string", Format: "uuid"},
				"subject_id":   {Type: "string", Format: "uuid"},
				"level":        SchemaLevel(),
				"reason":       {Type: "string"},
				"description":  {Type: "string"},
				"is_handled":   {Type: "boolean"},
				"handled_by":   {Type: "string"},
				"handled_at":   {Type: "string", Format: "date-time"},
				"handled_note": {Type: "string"},
				"created_at":   {Type: "string", Format: "date-time"},
			},
			Required: []string{"id", "subject_id", "level", "reason", "is_handled", "created_at"},
		},
		"AlertCreateCommand": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"subject_id":  {Type: "string", Format: "uuid"},
				"level":       SchemaLevel(),
				"reason":      {Type: "string"},
				"description": {Type: "string"},
			},
			Required: []string{"subject_id", "level", "reason"},
		},
		"AlertHandleCommand": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"handled_by":   {Type: "string"},
				"handled_note": {Type: "string"},
			},
			Required: []string{"handled_by"},
		},
		"EvaluationOutcome": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"alert":      openapi.SchemaRef("Alert"),
				"level":      SchemaLevel(),
				"suppressed": {Type: "boolean"},
			},
			Required: []string{"level", "suppressed"},
		},
		"LexiconEntry": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"id":         {Type: "string", Format: "uuid"},
				"kind":       {Type: "string", Enum: []any{"keyword", "greeting"}},
				"label":      SchemaLabel(),
				"term":       {Type: "string"},
				"created_at": {Type: "string", Format: "date-time"},
			},
			Required: []string{"id", "kind", "term", "created_at"},
		},
	})

	spec.Paths["/records"] = &openapi.PathItem{
		Get: &openapi.Operation{
			Summary: "List classification records",
			Tags:    []string{"records"},
			Responses: map[int]*openapi.Response{
				200: openapi.ResponseJSON("Paged records", "EmotionRecord"),
			},
		},
		Post: &openapi.Operation{
			Summary:     "Classify a text sample and persist the record",
			Tags:        []string{"records"},
			RequestBody: openapi.RequestBodyJSON("ClassifyCommand", true),
			Responses: map[int]*openapi.Response{
				201: openapi.ResponseJSON("Created record", "EmotionRecord"),
			},
		},
	}

	spec.Paths["/records/{id}"] = &openapi.PathItem{
		Get: &openapi.Operation{
			Summary:    "Find a classification record",
			Tags:       []string{"records"},
			Parameters: []*openapi.Parameter{openapi.PathParam("id", "Record ID")},
			Responses: map[int]*openapi.Response{
				200: openapi.ResponseJSON("Record", "EmotionRecord"),
			},
		},
		Delete: &openapi.Operation{
			Summary:    "Delete a classification record",
			Tags:       []string{"records"},
			Parameters: []*openapi.Parameter{openapi.PathParam("id", "Record ID")},
			Responses: map[int]*openapi.Response{
				204: {Description: "Deleted"},
			},
		},
	}

	spec.Paths["/alerts"] = &openapi.PathItem{
		Get: &openapi.Operation{
			Summary: "List alerts",
			Tags:    []string{"alerts"},
			Responses: map[int]*openapi.Response{
				200: openapi.ResponseJSON("Paged alerts", "Alert"),
			},
		},
		Post: &openapi.Operation{
			Summary:     "Raise an alert manually",
			Tags:        []string{"alerts"},
			RequestBody: openapi.RequestBodyJSON("AlertCreateCommand", true),
			Responses: map[int]*openapi.Response{
				201: openapi.ResponseJSON("Created alert", "Alert"),
			},
		},
	}

	spec.Paths["/alerts/{id}/handle"] = &openapi.PathItem{
		Put: &openapi.Operation{
			Summary:     "Resolve an alert",
			Tags:        []string{"alerts"},
			Parameters:  []*openapi.Parameter{openapi.PathParam("id", "Alert ID")},
			RequestBody: openapi.RequestBodyJSON("AlertHandleCommand", true),
			Responses: map[int]*openapi.Response{
				200: openapi.ResponseJSON("Handled alert", "Alert"),
				409: {Description: "Alert already handled"},
			},
		},
	}

	spec.Paths["/alerts/evaluate/{subjectId}"] = &openapi.PathItem{
		Post: &openapi.Operation{
			Summary:    "Evaluate escalation rules for a subject",
			Tags:       []string{"alerts"},
			Parameters: []*openapi.Parameter{openapi.PathParam("subjectId", "Subject ID")},
			Responses: map[int]*openapi.Response{
				200: openapi.ResponseJSON("Evaluation outcome", "EvaluationOutcome"),
			},
		},
	}

	spec.Paths["/lexicons"] = &openapi.PathItem{
		Get: &openapi.Operation{
			Summary: "List lexicon entries",
			Tags:    []string{"lexicons"},
			Responses: map[int]*openapi.Response{
				200: openapi.ResponseJSON("Paged entries", "LexiconEntry"),
			},
		},
		Post: &openapi.Operation{
			Summary:     "Add a lexicon entry",
			Tags:        []string{"lexicons"},
			RequestBody: openapi.RequestBodyJSON("LexiconEntry", true),
			Responses: map[int]*openapi.Response{
				201: openapi.ResponseJSON("Created entry", "LexiconEntry"),
			},
		},
	}

	spec.Paths["/reports/overview"] = &openapi.PathItem{
		Get: &openapi.Operation{
			Summary: "Population overview",
			Tags:    []string{"reports"},
			Responses: map[int]*openapi.Response{
				200: {Description: "Overview aggregates"},
			},
		},
	}

	spec.Paths["/reports/subjects/{subjectId}"] = &openapi.PathItem{
		Get: &openapi.Operation{
			Summary:    "Subject summary",
			Tags:       []string{"reports"},
			Parameters: []*openapi.Parameter{openapi.PathParam("subjectId", "Subject ID")},
			Responses: map[int]*openapi.Response{
				200: {Description: "Subject summary"},
			},
		},
	}

	return spec
}

// SchemaLabel is the closed emotion label enumeration.
func SchemaLabel() *openapi.Schema {
	return &openapi.Schema{
		Type: "string",
		Enum: []any{"happy", "sad", "angry", "anxious", "fearful", "surprised", "neutral"},
	}
}

// SchemaLevel is the ordered alert severity enumeration.
func SchemaLevel() *openapi.Schema {
	return &openapi.Schema{
		Type: "string",
		Enum: []any{"normal", "mild", "moderate", "severe"},
	}
}

func f(v float64) *float64 { return &v }
