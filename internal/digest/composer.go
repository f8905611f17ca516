package digest

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/tesilio/lassistant/internal/ai"
	"github.com/tesilio/lassistant/internal/airkorea"
	"github.com/tesilio/lassistant/internal/cache"
	"github.com/tesilio/lassistant/internal/news"
	"github.com/tesilio/lassistant/internal/weather"
)

// WeatherService provides forecast data for one grid point.
type WeatherService interface {
	CurrentConditions(ctx context.Context, nx, ny int) (weather.CurrentWeather, error)
	DailyForecast(ctx context.Context, nx, ny int) (weather.DailyForecast, error)
}

// AirQualityService provides the latest reading for one station.
type AirQualityService interface {
	AirQuality(ctx context.Context, stationName string) (airkorea.AirQuality, error)
}

// NewsService provides category listings and article bodies.
type NewsService interface {
	Headlines(ctx context.Context, category news.Category, limit int) ([]news.Headline, error)
	ArticleBody(ctx context.Context, articleURL string) (string, error)
}

// Options carries the composer's fixed delivery parameters.
type Options struct {
	CityLabel            string
	GridX                int
	GridY                int
	Station              string
	Categories           []news.Category
	HeadlinesPerCategory int
	CacheTTL             time.Duration
	Location             *time.Location
}

// Composer orchestrates providers, fallbacks and the cache into complete
// weather and news digests. Each digest is an ordered, non-empty list of
// messages, each within the transport size limit.
type Composer struct {
	weather    WeatherService
	airQuality AirQualityService
	news       NewsService
	summarizer *Summarizer
	advisor    *Advisor
	store      cache.Store
	opts       Options
	now        func() time.Time
}

// NewComposer wires a composer from its collaborators.
func NewComposer(
	weatherSvc WeatherService,
	airQualitySvc AirQualityService,
	newsSvc NewsService,
	summarizer *Summarizer,
	advisor *Advisor,
	store cache.Store,
	opts Options,
) *Composer {
	if opts.Location == nil {
		opts.Location = time.UTC
	}
	if opts.HeadlinesPerCategory <= 0 {
		opts.HeadlinesPerCategory = 10
	}
	if opts.CacheTTL <= 0 {
		opts.CacheTTL = 6 * time.Hour
	}
	return &Composer{
		weather:    weatherSvc,
		airQuality: airQualitySvc,
		news:       newsSvc,
		summarizer: summarizer,
		advisor:    advisor,
		store:      store,
		opts:       opts,
		now:        time.Now,
	}
}

// WeatherDigest returns today's weather digest, cached per calendar date.
func (c *Composer) WeatherDigest(ctx context.Context) ([]string, error) {
	key := cache.Key("weather", c.now().In(c.opts.Location))
	return cache.GetOrCompute(ctx, c.store, key, c.opts.CacheTTL, func() ([]string, error) {
		return c.composeWeather(ctx)
	})
}

// NewsDigest returns today's news digest, cached per calendar date.
func (c *Composer) NewsDigest(ctx context.Context) ([]string, error) {
	key := cache.Key("news", c.now().In(c.opts.Location))
	return cache.GetOrCompute(ctx, c.store, key, c.opts.CacheTTL, func() ([]string, error) {
		return c.composeNews(ctx)
	})
}

func (c *Composer) composeWeather(ctx context.Context) ([]string, error) {
	var (
		wg          sync.WaitGroup
		current     weather.CurrentWeather
		forecast    weather.DailyForecast
		currentErr  error
		forecastErr error
	)

	// Current conditions and the daily forecast are independent fetches.
	wg.Add(2)
	go func() {
		defer wg.Done()
		current, currentErr = c.weather.CurrentConditions(ctx, c.opts.GridX, c.opts.GridY)
	}()
	go func() {
		defer wg.Done()
		forecast, forecastErr = c.weather.DailyForecast(ctx, c.opts.GridX, c.opts.GridY)
	}()
	wg.Wait()

	if currentErr != nil {
		return nil, fmt.Errorf("collect current conditions: %w", currentErr)
	}
	if forecastErr != nil {
		return nil, fmt.Errorf("collect daily forecast: %w", forecastErr)
	}

	quality, err := c.airQuality.AirQuality(ctx, c.opts.Station)
	if err != nil {
		return nil, fmt.Errorf("collect air quality: %w", err)
	}

	feelsLike := weather.FeelsLike(current.Temperature, current.WindSpeed, current.Humidity)
	advice := c.advisor.Advise(ctx, ai.ClothingFeatures{
		CurrentTemp:         current.Temperature,
		FeelsLikeTemp:       feelsLike,
		MinTemp:             forecast.MinTemp,
		MaxTemp:             forecast.MaxTemp,
		MorningPrecipProb:   forecast.MorningPrecipProb,
		AfternoonPrecipProb: forecast.AfternoonPrecipProb,
		EveningPrecipProb:   forecast.EveningPrecipProb,
		SkyCondition:        current.SkyCondition,
		PM10Grade:           quality.PM10Grade,
	})

	message := c.formatWeatherMessage(current, forecast, quality, feelsLike, advice)
	return []string{message}, nil
}

func (c *Composer) formatWeatherMessage(
	current weather.CurrentWeather,
	forecast weather.DailyForecast,
	quality airkorea.AirQuality,
	feelsLike float64,
	advice string,
) string {
	now := c.now().In(c.opts.Location).Format("2006-01-02 15:04")
	tempRange := forecast.MaxTemp - forecast.MinTemp

	var b strings.Builder
	fmt.Fprintf(&b, "🌤 %s weather (%s)\n\n", c.opts.CityLabel, now)

	b.WriteString("[Now]\n")
	fmt.Fprintf(&b, "• Temperature: %.1f℃\n", current.Temperature)
	fmt.Fprintf(&b, "• Feels like: %.1f℃\n", feelsLike)
	fmt.Fprintf(&b, "• Sky: %s\n", current.SkyCondition)
	if current.PrecipitationType != weather.PrecipNone {
		fmt.Fprintf(&b, "• Precipitation: %s\n", current.PrecipitationType)
	}
	fmt.Fprintf(&b, "• Humidity: %d%%\n", current.Humidity)
	fmt.Fprintf(&b, "• Wind: %.1f m/s\n\n", current.WindSpeed)

	b.WriteString("[Today]\n")
	fmt.Fprintf(&b, "• Min/Max: %.1f℃ / %.1f℃\n", forecast.MinTemp, forecast.MaxTemp)
	fmt.Fprintf(&b, "• Daily range: %.1f℃\n\n", tempRange)

	b.WriteString("[By time of day]\n")
	writeWindowLine(&b, "Morning (06-12)", forecast.MorningCondition, forecast.MorningPrecipType, forecast.MorningPrecipProb)
	writeWindowLine(&b, "Afternoon (12-18)", forecast.AfternoonCondition, forecast.AfternoonPrecipType, forecast.AfternoonPrecipProb)
	writeWindowLine(&b, "Evening (18-24)", forecast.EveningCondition, forecast.EveningPrecipType, forecast.EveningPrecipProb)
	b.WriteString("\n")

	b.WriteString("[Air quality]\n")
	fmt.Fprintf(&b, "• PM10: %.0f㎍/㎥ (%s) %s\n", quality.PM10Value, quality.PM10Text, quality.PM10Emoji)
	fmt.Fprintf(&b, "• PM2.5: %.0f㎍/㎥ (%s) %s\n", quality.PM25Value, quality.PM25Text, quality.PM25Emoji)
	fmt.Fprintf(&b, "• Overall: %s\n\n", quality.KhaiText)

	b.WriteString("[What to wear]\n")
	b.WriteString(advice)

	return b.String()
}

func writeWindowLine(b *strings.Builder, label, condition, precipType string, precipProb int) {
	fmt.Fprintf(b, "• %s: %s", label, condition)
	if precipType != weather.PrecipNone {
		fmt.Fprintf(b, " (%s)", precipType)
	}
	fmt.Fprintf(b, " | rain %d%%\n", precipProb)
}

func (c *Composer) composeNews(ctx context.Context) ([]string, error) {
	var units []string

	for _, category := range c.opts.Categories {
		headlines, err := c.news.Headlines(ctx, category, c.opts.HeadlinesPerCategory)
		if err != nil {
			slog.Error("news category fetch failed, skipping", "category", category.Name, "error", err.Error())
			continue
		}

		units = append(units, fmt.Sprintf("📂 %s", category.Name))
		for _, headline := range headlines {
			units = append(units, c.formatNewsEntry(ctx, headline))
		}
	}

	if len(units) == 0 {
		return nil, fmt.Errorf("no news could be fetched for any category")
	}

	header := fmt.Sprintf("📰 Daily news (%s)", c.now().In(c.opts.Location).Format("2006-01-02"))
	return chunkMessages(header, units, MaxMessageLength), nil
}

// formatNewsEntry renders one article as a Markdown link plus, when the
// article body could be fetched, an indented summary. A failed article fetch
// only costs that article its summary.
func (c *Composer) formatNewsEntry(ctx context.Context, headline news.Headline) string {
	entry := fmt.Sprintf("- [%s](%s)", EscapeMarkdown(headline.Title), headline.URL)

	body, err := c.news.ArticleBody(ctx, headline.URL)
	if err != nil {
		slog.Warn("article fetch failed, keeping headline only", "url", headline.URL, "error", err.Error())
		return entry
	}

	summary := c.summarizer.Summarize(ctx, body)
	if summary != "" {
		entry += "\n  " + summary
	}
	return entry
}
