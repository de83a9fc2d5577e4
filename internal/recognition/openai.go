package recognition

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/invopop/jsonschema"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/responses"

	"github.com/seren-app/seren/pkg/formatting"
)

const classifyInstructions = `You classify short text samples for an emotional
wellbeing monitor. Given one sample, respond with:
- intent: one of greeting, affirmation, joy, sadness, anger, anxiety, fear,
  surprise, neutral
- sentiment: signed polarity in [-1,1], independent of the intent
- confidence: your certainty about the intent, in [0,1]
- alternatives: other plausible intents ordered by descending confidence

Classify the sample as written; do not infer beyond the text.`

type classifyResponse struct {
	Intent       string  `json:"intent" jsonschema:"required"`
	Sentiment    float64 `json:"sentiment" jsonschema:"required"`
	Confidence   float64 `json:"confidence" jsonschema:"required"`
	Alternatives []struct {
		Intent     string  `json:"intent" jsonschema:"required"`
		Confidence float64 `json:"confidence" jsonschema:"required"`
	} `json:"alternatives" jsonschema:"required"`
}

// OpenAIClassifier is the remote classifier backend. It satisfies the
// same contract as the naive Bayes backend; training is a no-op since
// the model is hosted.
type OpenAIClassifier struct {
	client openai.Client
	model  string
	schema map[string]any
}

// NewOpenAIClassifier creates a backend using the given API key and model.
func NewOpenAIClassifier(apiKey, model string) *OpenAIClassifier {
	return &OpenAIClassifier{
		client: openai.NewClient(option.WithAPIKey(apiKey)),
		model:  model,
		schema: generateSchema[classifyResponse](),
	}
}

// Train is a no-op; the hosted model needs no local fitting.
func (c *OpenAIClassifier) Train(ctx context.Context) error {
	return ctx.Err()
}

// Classify sends the text to the hosted model with a strict JSON schema
// and maps the structured output onto the adapter contract.
func (c *OpenAIClassifier) Classify(ctx context.Context, text string) (Output, error) {
	format := responses.ResponseFormatTextConfigUnionParam{
		OfJSONSchema: &responses.ResponseFormatTextJSONSchemaConfigParam{
			Name:        "EmotionClassification",
			Schema:      c.schema,
			Strict:      openai.Bool(true),
			Description: openai.String("Emotion classification JSON"),
			Type:        "json_schema",
		},
	}

	params := responses.ResponseNewParams{
		Model:           c.model,
		MaxOutputTokens: openai.Int(400),
		Instructions:    openai.String(classifyInstructions),
		Input: responses.ResponseNewParamsInputUnion{
			OfInputItemList: []responses.ResponseInputItemUnionParam{
				responses.ResponseInputItemParamOfMessage(text, responses.EasyInputMessageRoleUser),
			},
		},
		Text: responses.ResponseTextConfigParam{
			Format: format,
		},
	}

	resp, err := c.client.Responses.New(ctx, params)
	if err != nil {
		return Output{}, fmt.Errorf("%w: %w", ErrBackendFailed, err)
	}

	parsed, err := formatting.Parse[classifyResponse](resp.OutputText())
	if err != nil {
		return Output{}, fmt.Errorf("%w: %w", ErrBackendFailed, err)
	}

	out := Output{
		Intent:     parsed.Intent,
		Sentiment:  clampFloat(parsed.Sentiment, -1, 1),
		Confidence: clampFloat(parsed.Confidence, 0, 1),
	}
	for _, alt := range parsed.Alternatives {
		out.Alternatives = append(out.Alternatives, Candidate{
			Intent:     alt.Intent,
			Confidence: clampFloat(alt.Confidence, 0, 1),
		})
	}

	return out, nil
}

func generateSchema[T any]() map[string]any {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties:  false,
		DoNotReference:             true,
		RequiredFromJSONSchemaTags: true,
	}
	var v T
	schema := reflector.Reflect(v)

	data, err := schema.MarshalJSON()
	if err != nil {
		panic(err)
	}

	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		panic(err)
	}
	return m
}

func clampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
