package digest

import (
	"context"
	"errors"
	"strings"
	"testing"
)

type fakeTextSummarizer struct {
	summary string
	err     error
	calls   int
}

func (f *fakeTextSummarizer) SummarizeText(_ context.Context, _ string) (string, error) {
	f.calls++
	return f.summary, f.err
}

func longArticle() string {
	return strings.Repeat("The council met on Tuesday to discuss the new transit budget. ", 5) +
		"Officials approved the plan! Construction starts next spring? Funding comes from the city."
}

func TestSummarizeReturnsShortTextVerbatim(t *testing.T) {
	ai := &fakeTextSummarizer{summary: "should not be used"}
	s := NewSummarizer(ai)

	text := "A short note that is well under the summarization threshold."
	if got := s.Summarize(context.Background(), text); got != text {
		t.Fatalf("short text must pass through verbatim, got %q", got)
	}
	if ai.calls != 0 {
		t.Fatalf("AI must not be called for short text, got %d calls", ai.calls)
	}
}

func TestSummarizeUsesAIWhenAvailable(t *testing.T) {
	ai := &fakeTextSummarizer{summary: "AI summary."}
	s := NewSummarizer(ai)

	if got := s.Summarize(context.Background(), longArticle()); got != "AI summary." {
		t.Fatalf("expected AI summary, got %q", got)
	}
}

func TestSummarizeFallsBackOnAIFailure(t *testing.T) {
	ai := &fakeTextSummarizer{err: errors.New("model unavailable")}
	s := NewSummarizer(ai)

	got := s.Summarize(context.Background(), longArticle())
	want := "The council met on Tuesday to discuss the new transit budget. " +
		"The council met on Tuesday to discuss the new transit budget. " +
		"The council met on Tuesday to discuss the new transit budget."
	if got != want {
		t.Fatalf("fallback mismatch:\n got %q\nwant %q", got, want)
	}
}

func TestFallbackSummary(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "truncates to three sentences",
			in:   "One. Two! Three? Four. Five.",
			want: "One. Two. Three.",
		},
		{
			name: "fewer sentences than the cap",
			in:   "Only one here.",
			want: "Only one here.",
		},
		{
			name: "two sentences",
			in:   "First fact. Second fact.",
			want: "First fact. Second fact.",
		},
		{
			name: "empty input",
			in:   "",
			want: "",
		},
		{
			name: "punctuation only",
			in:   "...!!!???",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := fallbackSummary(tt.in, 3); got != tt.want {
				t.Fatalf("fallbackSummary(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
