package airkorea

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/tesilio/lassistant/internal/retry"
)

const (
	defaultQualityURL = "http://apis.data.go.kr/B552584/ArpltnInforInqireSvc/getMsrstnAcctoRltmMesureDnsty"
	defaultStationURL = "http://apis.data.go.kr/B552584/MsrstnInfoInqireSvc/getMsrstnList"
)

// ErrStationNotFound is returned when the provider has no reading for the
// requested station. It is a data-absence condition, not a transient one,
// so callers should not retry it.
var ErrStationNotFound = errors.New("air quality station not found")

// AirQuality is the latest normalized reading for one station.
type AirQuality struct {
	PM10Value float64 `json:"pm10_value"`
	PM10Grade int     `json:"pm10_grade"`
	PM25Value float64 `json:"pm25_value"`
	PM25Grade int     `json:"pm25_grade"`
	KhaiValue float64 `json:"khai_value"`
	KhaiGrade int     `json:"khai_grade"`
	PM10Text  string  `json:"pm10_text"`
	PM25Text  string  `json:"pm25_text"`
	KhaiText  string  `json:"khai_text"`
	PM10Emoji string  `json:"pm10_emoji"`
	PM25Emoji string  `json:"pm25_emoji"`
	KhaiEmoji string  `json:"khai_emoji"`
}

// Station is one measuring station returned by the station list lookup.
type Station struct {
	StationName string `json:"stationName"`
	Address     string `json:"addr"`
}

// Client fetches air-quality readings from the AirKorea service.
type Client struct {
	qualityURL string
	stationURL string
	serviceKey string
	httpClient *http.Client
	policy     retry.Policy
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURLs overrides the provider endpoints, mainly for tests.
func WithBaseURLs(qualityURL, stationURL string) Option {
	return func(c *Client) {
		c.qualityURL = qualityURL
		c.stationURL = stationURL
	}
}

// WithRetryPolicy overrides the retry policy.
func WithRetryPolicy(policy retry.Policy) Option {
	return func(c *Client) { c.policy = policy }
}

// NewClient creates an AirKorea client.
func NewClient(serviceKey string, opts ...Option) *Client {
	c := &Client{
		qualityURL: defaultQualityURL,
		stationURL: defaultStationURL,
		serviceKey: serviceKey,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		policy:     retry.DefaultPolicy(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type qualityResponse struct {
	Response struct {
		Body struct {
			Items []qualityItem `json:"items"`
		} `json:"body"`
	} `json:"response"`
}

type qualityItem struct {
	PM10Value string `json:"pm10Value"`
	PM10Grade string `json:"pm10Grade"`
	PM25Value string `json:"pm25Value"`
	PM25Grade string `json:"pm25Grade"`
	KhaiValue string `json:"khaiValue"`
	KhaiGrade string `json:"khaiGrade"`
}

type stationResponse struct {
	Response struct {
		Body struct {
			Items []Station `json:"items"`
		} `json:"body"`
	} `json:"response"`
}

// ListStations looks up measuring stations whose address matches addr.
func (c *Client) ListStations(ctx context.Context, addr string) ([]Station, error) {
	params := url.Values{}
	params.Set("serviceKey", c.serviceKey)
	params.Set("returnType", "json")
	params.Set("numOfRows", "100")
	params.Set("pageNo", "1")
	params.Set("addr", addr)

	return retry.Do(c.policy, "airkorea", func() ([]Station, error) {
		var payload stationResponse
		if err := c.get(ctx, c.stationURL, params, &payload); err != nil {
			return nil, err
		}
		return payload.Response.Body.Items, nil
	})
}

// AirQuality fetches the latest reading for the named station. A response
// with zero records fails with ErrStationNotFound.
func (c *Client) AirQuality(ctx context.Context, stationName string) (AirQuality, error) {
	params := url.Values{}
	params.Set("serviceKey", c.serviceKey)
	params.Set("returnType", "json")
	params.Set("numOfRows", "1")
	params.Set("pageNo", "1")
	params.Set("stationName", stationName)
	params.Set("dataTerm", "DAILY")
	params.Set("ver", "1.0")

	items, err := retry.Do(c.policy, "airkorea", func() ([]qualityItem, error) {
		var payload qualityResponse
		if err := c.get(ctx, c.qualityURL, params, &payload); err != nil {
			return nil, err
		}
		return payload.Response.Body.Items, nil
	})
	if err != nil {
		return AirQuality{}, fmt.Errorf("air quality for %s: %w", stationName, err)
	}

	// An empty result set is data absence, not a transient failure, so it
	// sits outside the retry loop.
	if len(items) == 0 {
		return AirQuality{}, fmt.Errorf("%w: %s", ErrStationNotFound, stationName)
	}
	item := items[0]

	pm10Grade := parseGrade(item.PM10Grade)
	pm25Grade := parseGrade(item.PM25Grade)
	khaiGrade := parseGrade(item.KhaiGrade)

	return AirQuality{
		PM10Value: parseValue(item.PM10Value),
		PM10Grade: pm10Grade,
		PM25Value: parseValue(item.PM25Value),
		PM25Grade: pm25Grade,
		KhaiValue: parseValue(item.KhaiValue),
		KhaiGrade: khaiGrade,
		PM10Text:  GradeText(pm10Grade),
		PM25Text:  GradeText(pm25Grade),
		KhaiText:  GradeText(khaiGrade),
		PM10Emoji: GradeEmoji(pm10Grade),
		PM25Emoji: GradeEmoji(pm25Grade),
		KhaiEmoji: GradeEmoji(khaiGrade),
	}, nil
}

func (c *Client) get(ctx context.Context, baseURL string, params url.Values, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("airkorea returned status %d", resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode airkorea response: %w", err)
	}
	return nil
}

// parseValue parses a numeric reading, falling back to 0 when the provider
// sends "-" or other non-numeric placeholders.
func parseValue(s string) float64 {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}

// parseGrade parses an air-quality grade, falling back to 1 ("good") when
// the value is missing, non-numeric or out of the 1-4 range.
func parseGrade(s string) int {
	grade, err := strconv.Atoi(s)
	if err != nil || grade < 1 || grade > 4 {
		return 1
	}
	return grade
}
