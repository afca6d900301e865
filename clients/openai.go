package clients

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/invopop/jsonschema"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/responses"
)

// GoEmotionsLabels is the label set of the GoEmotions taxonomy, including the
// distinguished "neutral" label.
var GoEmotionsLabels = []string{
	"admiration", "amusement", "anger", "annoyance", "approval", "caring",
	"confusion", "curiosity", "desire", "disappointment", "disapproval",
	"disgust", "embarrassment", "excitement", "fear", "gratitude", "grief",
	"joy", "love", "nervousness", "optimism", "pride", "realization",
	"relief", "remorse", "sadness", "surprise", "neutral",
}

const emotionPrompt = `You classify the emotional tone of a single video comment.
Return every label from the allowed set that applies, each with a confidence in [0,1].
Confidences need not sum to 1. Use "neutral" when the comment carries no emotion.
Judge the text in its own language. Do not explain.`

type emotionItem struct {
	Label string  `json:"label" jsonschema:"description=Emotion label from the allowed set"`
	Score float64 `json:"score" jsonschema:"minimum=0,maximum=1"`
}

type emotionResponse struct {
	Emotions []emotionItem `json:"emotions"`
}

var emotionSchema = generateSchema[emotionResponse](GoEmotionsLabels)

// OpenAIClassifier classifies text with a model behind the Responses API,
// constrained to GoEmotionsLabels by a strict JSON schema.
type OpenAIClassifier struct {
	client *openai.Client
	model  string
	labels map[string]struct{}
}

// NewOpenAIClassifier builds a classifier; baseURL may be empty.
func NewOpenAIClassifier(apiKey, model, baseURL string, retries int) *OpenAIClassifier {
	opts := []option.RequestOption{option.WithAPIKey(apiKey), option.WithMaxRetries(retries)}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}
	client := openai.NewClient(opts...)

	labels := make(map[string]struct{}, len(GoEmotionsLabels))
	for _, l := range GoEmotionsLabels {
		labels[l] = struct{}{}
	}
	return &OpenAIClassifier{client: &client, model: model, labels: labels}
}

func (c *OpenAIClassifier) Classify(ctx context.Context, text string) ([]EmoScore, error) {
	if c.client == nil {
		return nil, errors.New("openai classifier: client is nil")
	}
	if c.model == "" {
		return nil, errors.New("openai classifier: model is empty")
	}

	format := responses.ResponseFormatTextConfigUnionParam{
		OfJSONSchema: &responses.ResponseFormatTextJSONSchemaConfigParam{
			Name:        "EmotionDistribution",
			Schema:      emotionSchema,
			Strict:      openai.Bool(true),
			Description: openai.String("Emotion labels with confidences"),
			Type:        "json_schema",
		},
	}
	params := responses.ResponseNewParams{
		Model:           c.model,
		MaxOutputTokens: openai.Int(400),
		Instructions:    openai.String(emotionPrompt),
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
		return nil, fmt.Errorf("openai classify: %w", err)
	}
	return decodeEmotions(resp.OutputText(), c.labels)
}

// decodeEmotions parses model output, dropping nothing silently: an unknown
// label or an out-of-range score fails the whole result.
func decodeEmotions(raw string, labels map[string]struct{}) ([]EmoScore, error) {
	raw = strings.TrimSpace(raw)
	raw = strings.TrimPrefix(raw, "```json")
	raw = strings.TrimPrefix(raw, "```")
	raw = strings.TrimSuffix(raw, "```")

	var out emotionResponse
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return nil, fmt.Errorf("openai classify decode: %w", err)
	}
	if len(out.Emotions) == 0 {
		return nil, ErrEmptyDistribution
	}
	scores := make([]EmoScore, 0, len(out.Emotions))
	for _, e := range out.Emotions {
		if _, ok := labels[e.Label]; !ok {
			return nil, fmt.Errorf("openai classify: unknown label %q", e.Label)
		}
		if e.Score < 0 || e.Score > 1 {
			return nil, fmt.Errorf("openai classify: score %v for %q out of range", e.Score, e.Label)
		}
		scores = append(scores, EmoScore{Label: e.Label, Score: e.Score})
	}
	return scores, nil
}

// generateSchema reflects T into an OpenAI strict-mode schema and pins the
// label property of the emotions items to the given enum.
func generateSchema[T any](labels []string) map[string]any {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties:  false,
		DoNotReference:             true,
		RequiredFromJSONSchemaTags: true,
	}
	var v T
	b, err := reflector.Reflect(v).MarshalJSON()
	if err != nil {
		panic(err)
	}
	var schema map[string]any
	if err := json.Unmarshal(b, &schema); err != nil {
		panic(err)
	}
	strictify(schema)

	if label := nested(schema, "properties", "emotions", "items", "properties", "label"); label != nil {
		label["enum"] = labels
	}
	return schema
}

// strictify marks every object closed and all of its properties required.
func strictify(schema map[string]any) {
	if t, ok := schema["type"].(string); ok && t == "object" {
		schema["additionalProperties"] = false
		if props, ok := schema["properties"].(map[string]any); ok {
			required := make([]string, 0, len(props))
			for name := range props {
				required = append(required, name)
			}
			if len(required) > 0 {
				schema["required"] = required
			}
		}
	}
	if props, ok := schema["properties"].(map[string]any); ok {
		for _, p := range props {
			if pm, ok := p.(map[string]any); ok {
				strictify(pm)
			}
		}
	}
	if items, ok := schema["items"].(map[string]any); ok {
		strictify(items)
	}
}

func nested(m map[string]any, path ...string) map[string]any {
	cur := m
	for _, k := range path {
		next, ok := cur[k].(map[string]any)
		if !ok {
			return nil
		}
		cur = next
	}
	return cur
}
