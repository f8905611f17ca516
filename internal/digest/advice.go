package digest

import (
	"context"
	"log/slog"

	"github.com/tesilio/lassistant/internal/ai"
)

// AdviceGenerator is the AI-backed primary advice stage.
type AdviceGenerator interface {
	ClothingAdvice(ctx context.Context, features ai.ClothingFeatures) (string, error)
}

// Advisor produces clothing advice from weather facts. The AI stage may
// fail; the rule table fallback never does and never returns empty text.
type Advisor struct {
	ai AdviceGenerator
}

// NewAdvisor creates an advisor backed by the given AI stage.
func NewAdvisor(ai AdviceGenerator) *Advisor {
	return &Advisor{ai: ai}
}

// Advise returns clothing advice for the given weather facts.
func (a *Advisor) Advise(ctx context.Context, features ai.ClothingFeatures) string {
	if a.ai != nil {
		advice, err := a.ai.ClothingAdvice(ctx, features)
		if err == nil {
			return advice
		}
		slog.Warn("ai clothing advice failed, using rule table", "error", err.Error())
	}
	return fallbackAdvice(features)
}

// fallbackAdvice maps the feels-like temperature to a fixed clothing band,
// then appends daily-range and air-quality clauses where they apply.
func fallbackAdvice(features ai.ClothingFeatures) string {
	var advice string
	switch feelsLike := features.FeelsLikeTemp; {
	case feelsLike <= 4:
		advice = "Wear a padded coat or heavy coat with a scarf and gloves."
	case feelsLike <= 8:
		advice = "A coat, leather jacket, thermal layer and knitwear are recommended."
	case feelsLike <= 11:
		advice = "A trench coat, field jacket, light knit and jeans are recommended."
	case feelsLike <= 16:
		advice = "A jacket, cardigan, jeans or chinos are recommended."
	case feelsLike <= 19:
		advice = "A light cardigan, long-sleeve shirt and cotton trousers are recommended."
	case feelsLike <= 22:
		advice = "A long-sleeve tee, blouse, cotton trousers or slacks are recommended."
	case feelsLike <= 27:
		advice = "A short-sleeve tee, thin shirt, shorts or cotton trousers are recommended."
	default:
		advice = "Sleeveless tops, short sleeves, shorts or a light dress are recommended."
	}

	if features.MaxTemp-features.MinTemp >= 8 {
		advice += " The daily range is large, so bring an outer layer."
	}
	if features.PM10Grade >= 3 {
		advice += " Fine dust is bad today, so wear a mask."
	}
	return advice
}
