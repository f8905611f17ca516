package digest

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/tesilio/lassistant/internal/ai"
)

type fakeAdviceGenerator struct {
	advice string
	err    error
}

func (f *fakeAdviceGenerator) ClothingAdvice(_ context.Context, _ ai.ClothingFeatures) (string, error) {
	return f.advice, f.err
}

func TestAdviseUsesAIWhenAvailable(t *testing.T) {
	a := NewAdvisor(&fakeAdviceGenerator{advice: "Wear the blue jacket."})
	got := a.Advise(context.Background(), ai.ClothingFeatures{FeelsLikeTemp: 15})
	if got != "Wear the blue jacket." {
		t.Fatalf("expected AI advice, got %q", got)
	}
}

func TestAdviseFallsBackOnAIFailure(t *testing.T) {
	a := NewAdvisor(&fakeAdviceGenerator{err: errors.New("model unavailable")})
	got := a.Advise(context.Background(), ai.ClothingFeatures{FeelsLikeTemp: 15, MinTemp: 10, MaxTemp: 15})
	if got == "" {
		t.Fatal("fallback advice must never be empty")
	}
	if !strings.Contains(got, "cardigan") {
		t.Fatalf("expected the 12-16 band recommendation, got %q", got)
	}
}

func TestFallbackAdviceBands(t *testing.T) {
	tests := []struct {
		feelsLike float64
		fragment  string
	}{
		{-3, "padded coat"},
		{4, "padded coat"},
		{5, "leather jacket"},
		{8, "leather jacket"},
		{9, "trench coat"},
		{11, "trench coat"},
		{12, "cardigan, jeans"},
		{16, "cardigan, jeans"},
		{17, "light cardigan"},
		{19, "light cardigan"},
		{20, "long-sleeve tee"},
		{22, "long-sleeve tee"},
		{23, "short-sleeve tee"},
		{27, "short-sleeve tee"},
		{28, "Sleeveless"},
		{35, "Sleeveless"},
	}

	for _, tt := range tests {
		got := fallbackAdvice(ai.ClothingFeatures{FeelsLikeTemp: tt.feelsLike})
		if !strings.Contains(got, tt.fragment) {
			t.Errorf("feels-like %v: expected %q in %q", tt.feelsLike, tt.fragment, got)
		}
	}
}

func TestFallbackAdviceExtraClauses(t *testing.T) {
	features := ai.ClothingFeatures{FeelsLikeTemp: 15, MinTemp: 5, MaxTemp: 15, PM10Grade: 3}
	got := fallbackAdvice(features)

	if !strings.Contains(got, "outer layer") {
		t.Fatalf("daily range of 10 should add the outer layer clause, got %q", got)
	}
	if !strings.Contains(got, "mask") {
		t.Fatalf("PM10 grade 3 should add the mask clause, got %q", got)
	}

	mild := fallbackAdvice(ai.ClothingFeatures{FeelsLikeTemp: 15, MinTemp: 12, MaxTemp: 15, PM10Grade: 1})
	if strings.Contains(mild, "outer layer") || strings.Contains(mild, "mask") {
		t.Fatalf("no extra clauses expected for a mild day, got %q", mild)
	}
}
