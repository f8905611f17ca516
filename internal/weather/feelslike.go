package weather

import "math"

// FeelsLike derives the perceived temperature from the air temperature (°C),
// wind speed (m/s) and relative humidity (%).
//
// Cold air with wind uses the standard wind-chill regression, hot air uses
// the heat-index regression, and the mid band applies a small linear
// correction for high humidity and strong wind.
func FeelsLike(temp, windSpeed float64, humidity int) float64 {
	windKmh := windSpeed * 3.6

	if temp <= 10 && windKmh > 4.8 {
		windChill := 13.12 +
			0.6215*temp -
			11.37*math.Pow(windKmh, 0.16) +
			0.3965*temp*math.Pow(windKmh, 0.16)
		return roundTenth(windChill)
	}

	if temp >= 26 {
		t := temp
		rh := float64(humidity)
		heatIndex := -8.78469475556 +
			1.61139411*t +
			2.33854883889*rh -
			0.14611605*t*rh -
			0.012308094*t*t -
			0.0164248277778*rh*rh +
			0.002211732*t*t*rh +
			0.00072546*t*rh*rh -
			0.000003582*t*t*rh*rh
		return roundTenth(heatIndex)
	}

	adjusted := temp
	if humidity > 70 {
		adjusted += (float64(humidity) - 70) * 0.1
	}
	if windKmh > 10 {
		adjusted -= math.Min((windKmh-10)*0.1, 3)
	}
	return roundTenth(adjusted)
}

func roundTenth(v float64) float64 {
	return math.Round(v*10) / 10
}
