package digest

import (
	"context"
	"log/slog"
	"strings"
	"unicode/utf8"
)

// Texts below this length gain nothing from summarization and pass through
// verbatim.
const minSummarizeLength = 200

const fallbackSentenceCount = 3

// TextSummarizer is the AI-backed primary summarization stage.
type TextSummarizer interface {
	SummarizeText(ctx context.Context, text string) (string, error)
}

// Summarizer condenses article text. The AI stage may fail; the sentence
// truncation fallback never does, so Summarize always returns usable text.
type Summarizer struct {
	ai TextSummarizer
}

// NewSummarizer creates a summarizer backed by the given AI stage.
func NewSummarizer(ai TextSummarizer) *Summarizer {
	return &Summarizer{ai: ai}
}

// Summarize returns a short summary of text. Short inputs are returned
// unchanged; AI failures degrade to sentence truncation.
func (s *Summarizer) Summarize(ctx context.Context, text string) string {
	if utf8.RuneCountInString(text) < minSummarizeLength {
		return text
	}

	if s.ai != nil {
		summary, err := s.ai.SummarizeText(ctx, text)
		if err == nil {
			return summary
		}
		slog.Warn("ai summarization failed, using sentence truncation", "error", err.Error())
	}

	return fallbackSummary(text, fallbackSentenceCount)
}

// fallbackSummary keeps the first maxSentences sentences of text, splitting
// on sentence-terminal punctuation and discarding empty fragments.
func fallbackSummary(text string, maxSentences int) string {
	fragments := strings.FieldsFunc(text, func(r rune) bool {
		return r == '.' || r == '!' || r == '?'
	})

	var sentences []string
	for _, fragment := range fragments {
		fragment = strings.TrimSpace(fragment)
		if fragment == "" {
			continue
		}
		sentences = append(sentences, fragment)
		if len(sentences) == maxSentences {
			break
		}
	}

	if len(sentences) == 0 {
		return ""
	}
	return strings.Join(sentences, ". ") + "."
}
