package weather

// Default texts used when a category is absent or a code is unrecognized.
const (
	ConditionUnknown = "unknown"
	PrecipNone       = "none"
)

// KMA SKY codes. Only 1, 3 and 4 are published.
var skyConditionTexts = map[string]string{
	"1": "clear ☀️",
	"3": "mostly cloudy ⛅",
	"4": "cloudy ☁️",
}

// KMA PTY codes.
var precipitationTypeTexts = map[string]string{
	"0": PrecipNone,
	"1": "rain 🌧️",
	"2": "rain/snow 🌨️",
	"3": "snow ❄️",
	"4": "showers 🌦️",
}

// SkyConditionText decodes a SKY category code.
func SkyConditionText(code string) string {
	if text, ok := skyConditionTexts[code]; ok {
		return text
	}
	return ConditionUnknown
}

// PrecipitationTypeText decodes a PTY category code.
func PrecipitationTypeText(code string) string {
	if text, ok := precipitationTypeTexts[code]; ok {
		return text
	}
	return ConditionUnknown
}
