package airkorea

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/tesilio/lassistant/internal/retry"
)

func TestParseGrade(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"-", 1},
		{"", 1},
		{"invalid", 1},
		{"0", 1},
		{"5", 1},
		{"1", 1},
		{"3", 3},
		{"4", 4},
	}
	for _, tt := range tests {
		if got := parseGrade(tt.in); got != tt.want {
			t.Errorf("parseGrade(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestParseValue(t *testing.T) {
	if got := parseValue("-"); got != 0 {
		t.Fatalf("parseValue(-) = %v, want 0", got)
	}
	if got := parseValue("37.5"); got != 37.5 {
		t.Fatalf("parseValue(37.5) = %v", got)
	}
}

func TestGradeLookups(t *testing.T) {
	if got := GradeText(4); got != "very poor" {
		t.Fatalf("GradeText(4) = %q", got)
	}
	if got := GradeText(7); got != GradeUnknown {
		t.Fatalf("GradeText(7) = %q, want %q", got, GradeUnknown)
	}
	if got := GradeEmoji(1); got != "🟢" {
		t.Fatalf("GradeEmoji(1) = %q", got)
	}
	if got := GradeEmoji(9); got != "" {
		t.Fatalf("GradeEmoji(9) = %q, want empty", got)
	}
}

func TestAirQualityNormalizesReading(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("stationName"); got != "Samseong-dong" {
			t.Errorf("unexpected stationName %q", got)
		}
		fmt.Fprint(w, `{"response":{"body":{"items":[
			{"pm10Value":"41","pm10Grade":"2","pm25Value":"-","pm25Grade":"-","khaiValue":"68","khaiGrade":"2"}
		]}}}`)
	}))
	defer server.Close()

	client := NewClient("key", WithBaseURLs(server.URL, server.URL))
	quality, err := client.AirQuality(context.Background(), "Samseong-dong")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if quality.PM10Value != 41 || quality.PM10Grade != 2 {
		t.Fatalf("pm10: got %v grade %d", quality.PM10Value, quality.PM10Grade)
	}
	if quality.PM25Value != 0 || quality.PM25Grade != 1 {
		t.Fatalf("missing pm2.5 should default to 0 / grade 1, got %v grade %d", quality.PM25Value, quality.PM25Grade)
	}
	if quality.PM10Text != "moderate" || quality.PM10Emoji != "🟡" {
		t.Fatalf("pm10 decoration: %q %q", quality.PM10Text, quality.PM10Emoji)
	}
	if quality.PM25Text != "good" {
		t.Fatalf("pm2.5 text: %q", quality.PM25Text)
	}
}

func TestAirQualityStationNotFoundIsNotRetried(t *testing.T) {
	requests := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		fmt.Fprint(w, `{"response":{"body":{"items":[]}}}`)
	}))
	defer server.Close()

	client := NewClient("key",
		WithBaseURLs(server.URL, server.URL),
		WithRetryPolicy(retry.NewPolicy(3, time.Millisecond)),
	)

	_, err := client.AirQuality(context.Background(), "nowhere")
	if !errors.Is(err, ErrStationNotFound) {
		t.Fatalf("expected ErrStationNotFound, got %v", err)
	}
	if requests != 1 {
		t.Fatalf("empty result must not be retried, got %d requests", requests)
	}
}

func TestListStations(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"response":{"body":{"items":[
			{"stationName":"Samseong-dong","addr":"Gangnam-gu, Seoul"},
			{"stationName":"Daechi-dong","addr":"Gangnam-gu, Seoul"}
		]}}}`)
	}))
	defer server.Close()

	client := NewClient("key", WithBaseURLs(server.URL, server.URL))
	stations, err := client.ListStations(context.Background(), "Gangnam-gu")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(stations) != 2 {
		t.Fatalf("expected 2 stations, got %d", len(stations))
	}
	if stations[0].StationName != "Samseong-dong" {
		t.Fatalf("unexpected first station %q", stations[0].StationName)
	}
}
