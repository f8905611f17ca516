package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/tesilio/lassistant/internal/retry"
)

const defaultBaseURL = "http://apis.data.go.kr/1360000/VilageFcstInfoService_2.0"

// Hours at which the provider issues short-term forecast bulletins.
var bulletinHours = []int{23, 20, 17, 14, 11, 8, 5, 2}

// Client fetches observations from the KMA village forecast service and
// folds them into structured snapshots.
type Client struct {
	baseURL    string
	serviceKey string
	httpClient *http.Client
	policy     retry.Policy
	location   *time.Location
	now        func() time.Time
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the provider endpoint, mainly for tests.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) { c.baseURL = baseURL }
}

// WithRetryPolicy overrides the retry policy.
func WithRetryPolicy(policy retry.Policy) Option {
	return func(c *Client) { c.policy = policy }
}

// WithClock overrides the time source, mainly for tests.
func WithClock(now func() time.Time) Option {
	return func(c *Client) { c.now = now }
}

// NewClient creates a forecast client. Observation timestamps are resolved in
// the given location.
func NewClient(serviceKey string, location *time.Location, opts ...Option) *Client {
	c := &Client{
		baseURL:    defaultBaseURL,
		serviceKey: serviceKey,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		policy:     retry.DefaultPolicy(),
		location:   location,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type kmaResponse struct {
	Response struct {
		Header struct {
			ResultCode string `json:"resultCode"`
			ResultMsg  string `json:"resultMsg"`
		} `json:"header"`
		Body struct {
			Items struct {
				Item []kmaItem `json:"item"`
			} `json:"items"`
		} `json:"body"`
	} `json:"response"`
}

type kmaItem struct {
	Category  string `json:"category"`
	ObsrValue string `json:"obsrValue"`
	FcstValue string `json:"fcstValue"`
	FcstDate  string `json:"fcstDate"`
	FcstTime  string `json:"fcstTime"`
}

// CurrentConditions fetches the ultra-short-term observation for the given
// grid point. The base time is the top of the current hour minus one hour,
// since the real-time product is only finalized after the top of each hour.
func (c *Client) CurrentConditions(ctx context.Context, nx, ny int) (CurrentWeather, error) {
	now := c.now().In(c.location)
	baseDate := now.Format("20060102")
	baseTime := fmt.Sprintf("%02d00", now.Add(-time.Hour).Hour())

	items, err := c.fetch(ctx, "getUltraSrtNcst", baseDate, baseTime, nx, ny, 10)
	if err != nil {
		return CurrentWeather{}, fmt.Errorf("current conditions: %w", err)
	}

	result := CurrentWeather{
		PrecipitationType: PrecipNone,
		SkyCondition:      ConditionUnknown,
	}
	for _, item := range items {
		switch item.Category {
		case "T1H":
			result.Temperature = parseFloat(item.ObsrValue)
		case "REH":
			result.Humidity = parseInt(item.ObsrValue)
		case "WSD":
			result.WindSpeed = parseFloat(item.ObsrValue)
		case "RN1":
			result.Precipitation = parseFloat(item.ObsrValue)
		case "PTY":
			result.PrecipitationType = PrecipitationTypeText(item.ObsrValue)
		}
	}
	return result, nil
}

// DailyForecast fetches the latest short-term bulletin at or before the
// current hour and buckets the current day's observations into morning,
// afternoon and evening windows.
func (c *Client) DailyForecast(ctx context.Context, nx, ny int) (DailyForecast, error) {
	now := c.now().In(c.location)
	baseDate, baseTime := bulletinFor(now)

	items, err := c.fetch(ctx, "getVilageFcst", baseDate, baseTime, nx, ny, 300)
	if err != nil {
		return DailyForecast{}, fmt.Errorf("daily forecast: %w", err)
	}

	return foldDailyForecast(items, now.Format("20060102")), nil
}

// bulletinFor resolves the issuance date and time of the newest bulletin
// available at t. Bulletins are published at 02, 05, 08, 11, 14, 17, 20 and
// 23 o'clock; before 02:00 the previous day's 23:00 bulletin is the newest.
func bulletinFor(t time.Time) (baseDate, baseTime string) {
	hour := t.Hour()
	for _, h := range bulletinHours {
		if hour >= h {
			return t.Format("20060102"), fmt.Sprintf("%02d00", h)
		}
	}
	return t.AddDate(0, 0, -1).Format("20060102"), "2300"
}

func foldDailyForecast(items []kmaItem, today string) DailyForecast {
	result := DailyForecast{
		MorningCondition:    ConditionUnknown,
		AfternoonCondition:  ConditionUnknown,
		EveningCondition:    ConditionUnknown,
		MorningPrecipType:   PrecipNone,
		AfternoonPrecipType: PrecipNone,
		EveningPrecipType:   PrecipNone,
	}

	// The bulletin spans several days; only today's items count.
	for _, item := range items {
		if item.FcstDate != today {
			continue
		}
		switch item.Category {
		case "TMN":
			result.MinTemp = parseFloat(item.FcstValue)
		case "TMX":
			result.MaxTemp = parseFloat(item.FcstValue)
		case "POP":
			prob := parseInt(item.FcstValue)
			// Worst case the user might face in the window, so max, not a
			// single sample.
			switch windowFor(item.FcstTime) {
			case windowMorning:
				result.MorningPrecipProb = max(result.MorningPrecipProb, prob)
			case windowAfternoon:
				result.AfternoonPrecipProb = max(result.AfternoonPrecipProb, prob)
			case windowEvening:
				result.EveningPrecipProb = max(result.EveningPrecipProb, prob)
			}
		case "SKY":
			// One representative probe per window.
			switch item.FcstTime {
			case "0900":
				result.MorningCondition = SkyConditionText(item.FcstValue)
			case "1500":
				result.AfternoonCondition = SkyConditionText(item.FcstValue)
			case "2100":
				result.EveningCondition = SkyConditionText(item.FcstValue)
			}
		case "PTY":
			// "0" is the default, not an override: it must never clear a
			// precipitation type already seen in the window.
			if item.FcstValue == "0" {
				continue
			}
			text := PrecipitationTypeText(item.FcstValue)
			switch windowFor(item.FcstTime) {
			case windowMorning:
				result.MorningPrecipType = text
			case windowAfternoon:
				result.AfternoonPrecipType = text
			case windowEvening:
				result.EveningPrecipType = text
			}
		}
	}

	return result
}

type dayWindow int

const (
	windowNone dayWindow = iota
	windowMorning
	windowAfternoon
	windowEvening
)

// windowFor maps an HHMM forecast time to its day window.
func windowFor(fcstTime string) dayWindow {
	if len(fcstTime) != 4 {
		return windowNone
	}
	hour, err := strconv.Atoi(fcstTime[:2])
	if err != nil {
		return windowNone
	}
	switch {
	case hour >= 6 && hour < 12:
		return windowMorning
	case hour >= 12 && hour < 18:
		return windowAfternoon
	case hour >= 18 && hour < 24:
		return windowEvening
	default:
		return windowNone
	}
}

func (c *Client) fetch(ctx context.Context, endpoint, baseDate, baseTime string, nx, ny, numOfRows int) ([]kmaItem, error) {
	params := url.Values{}
	params.Set("serviceKey", c.serviceKey)
	params.Set("pageNo", "1")
	params.Set("numOfRows", strconv.Itoa(numOfRows))
	params.Set("dataType", "JSON")
	params.Set("base_date", baseDate)
	params.Set("base_time", baseTime)
	params.Set("nx", strconv.Itoa(nx))
	params.Set("ny", strconv.Itoa(ny))

	requestURL := fmt.Sprintf("%s/%s?%s", c.baseURL, endpoint, params.Encode())

	return retry.Do(c.policy, "kma", func() ([]kmaItem, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
		if err != nil {
			return nil, err
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("kma returned status %d", resp.StatusCode)
		}

		var payload kmaResponse
		if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
			return nil, fmt.Errorf("decode kma response: %w", err)
		}
		if code := payload.Response.Header.ResultCode; code != "" && code != "00" {
			return nil, fmt.Errorf("kma error %s: %s", code, payload.Response.Header.ResultMsg)
		}
		return payload.Response.Body.Items.Item, nil
	})
}

func parseFloat(s string) float64 {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}

func parseInt(s string) int {
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return v
}
