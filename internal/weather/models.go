package weather

// CurrentWeather is the "right now" snapshot built from the ultra-short-term
// observation product. Categories absent from the response leave their field
// at its zero/default value.
type CurrentWeather struct {
	Temperature       float64 `json:"temperature"`
	Humidity          int     `json:"humidity"`
	WindSpeed         float64 `json:"wind_speed"`
	Precipitation     float64 `json:"precipitation"`
	PrecipitationType string  `json:"precipitation_type"`
	SkyCondition      string  `json:"sky_condition"`
}

// DailyForecast folds one day of short-term forecast observations into three
// fixed windows: morning [06:00,12:00), afternoon [12:00,18:00) and evening
// [18:00,24:00).
type DailyForecast struct {
	MinTemp             float64 `json:"min_temp"`
	MaxTemp             float64 `json:"max_temp"`
	MorningPrecipProb   int     `json:"morning_precip_prob"`
	AfternoonPrecipProb int     `json:"afternoon_precip_prob"`
	EveningPrecipProb   int     `json:"evening_precip_prob"`
	MorningCondition    string  `json:"morning_condition"`
	AfternoonCondition  string  `json:"afternoon_condition"`
	EveningCondition    string  `json:"evening_condition"`
	MorningPrecipType   string  `json:"morning_precip_type"`
	AfternoonPrecipType string  `json:"afternoon_precip_type"`
	EveningPrecipType   string  `json:"evening_precip_type"`
}
