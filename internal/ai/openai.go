package ai

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/openai/openai-go/v2"
	"github.com/openai/openai-go/v2/option"

	"github.com/tesilio/lassistant/internal/airkorea"
)

const model = "gpt-4o-mini"

// ClothingFeatures bundles the weather facts the advice prompt is built from.
type ClothingFeatures struct {
	CurrentTemp         float64
	FeelsLikeTemp       float64
	MinTemp             float64
	MaxTemp             float64
	MorningPrecipProb   int
	AfternoonPrecipProb int
	EveningPrecipProb   int
	SkyCondition        string
	PM10Grade           int
}

// Client wraps the OpenAI chat-completion API for summarization and clothing
// advice. Both calls can fail; deterministic fallbacks live with the digest
// composer, not here.
type Client struct {
	client openai.Client
	now    func() time.Time
}

// NewClient creates an OpenAI-backed client.
func NewClient(apiKey string) *Client {
	return &Client{
		client: openai.NewClient(option.WithAPIKey(apiKey)),
		now:    time.Now,
	}
}

const summarizeSystemPrompt = `You are a professional news summarization expert.

# Current date
%s

# Summarization rules
1. Length: exactly 2-3 sentences.
2. Core facts: keep only the important who/when/where/what/why/how.
3. Objectivity: report facts only, no opinion or speculation.
4. Accuracy: preserve figures, dates and names exactly.
5. Tense: compare the article date with the current date (%s) and phrase
   accordingly - same day ("today"), yesterday, earlier this week
   ("last <weekday>"), or the absolute date.

# Output format
Output only the summary, with no extra explanation.`

// SummarizeText asks the model for a 2-3 sentence summary of text.
func (c *Client) SummarizeText(ctx context.Context, text string) (string, error) {
	currentDate := c.now().Format("2006-01-02")
	systemPrompt := fmt.Sprintf(summarizeSystemPrompt, currentDate, currentDate)

	return c.complete(ctx, systemPrompt, "Summarize this article:\n\n"+text, 0.2)
}

const adviceSystemPrompt = `You are an expert who recommends practical outfits based on weather data.

# Reference outfit bands by feels-like temperature
- 4°C and below: padded coat, heavy coat, scarf, gloves
- 5-8°C: coat, leather jacket, thermal layer, knitwear
- 9-11°C: trench coat, field jacket, light knit, jeans
- 12-16°C: jacket, cardigan, jeans, chinos
- 17-19°C: light cardigan, long-sleeve shirt, cotton trousers
- 20-22°C: long-sleeve tee, blouse, slacks
- 23-27°C: short-sleeve tee, thin shirt, shorts or cotton trousers
- 28°C and above: sleeveless, short sleeves, shorts, light dress

# Extra factors
1. Prefer the feels-like temperature over the measured one.
2. If the daily range (max - min) is 8°C or more, suggest an outer layer.
3. If precipitation is likely, mention an umbrella or rain-proof clothing.
4. If air quality is poor or worse, recommend wearing a mask.
5. If humidity is extreme, mention breathable or quick-drying fabric.
6. Friendly tone, 2-4 sentences.

# Output format
Output only the recommendation, with no extra explanation.`

// ClothingAdvice asks the model for an outfit recommendation given today's
// weather facts.
func (c *Client) ClothingAdvice(ctx context.Context, features ClothingFeatures) (string, error) {
	userPrompt := fmt.Sprintf(`Current temperature: %.1f°C
Feels like: %.1f°C
Min/Max: %.1f°C / %.1f°C
Morning precipitation probability: %d%%
Afternoon precipitation probability: %d%%
Evening precipitation probability: %d%%
Sky: %s
Fine dust: %s

Recommend an outfit for today based on the weather above.`,
		features.CurrentTemp,
		features.FeelsLikeTemp,
		features.MinTemp,
		features.MaxTemp,
		features.MorningPrecipProb,
		features.AfternoonPrecipProb,
		features.EveningPrecipProb,
		features.SkyCondition,
		airkorea.GradeText(features.PM10Grade),
	)

	return c.complete(ctx, adviceSystemPrompt, userPrompt, 0.5)
}

func (c *Client) complete(ctx context.Context, systemPrompt, userPrompt string, temperature float64) (string, error) {
	response, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			{
				OfSystem: &openai.ChatCompletionSystemMessageParam{
					Content: openai.ChatCompletionSystemMessageParamContentUnion{
						OfString: openai.String(systemPrompt),
					},
				},
			},
			{
				OfUser: &openai.ChatCompletionUserMessageParam{
					Content: openai.ChatCompletionUserMessageParamContentUnion{
						OfString: openai.String(userPrompt),
					},
				},
			},
		},
		Temperature: openai.Float(temperature),
		MaxTokens:   openai.Int(200),
	})
	if err != nil {
		return "", fmt.Errorf("openai request failed: %w", err)
	}
	if len(response.Choices) == 0 {
		return "", fmt.Errorf("no response from openai")
	}

	content := strings.TrimSpace(response.Choices[0].Message.Content)
	if content == "" {
		return "", fmt.Errorf("empty response from openai")
	}
	return content, nil
}
