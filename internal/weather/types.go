package weather

import "strings"

// Reading is the current weather at a location, reduced to what recipe
// suggestions need.
type Reading struct {
	Location    string  `json:"location"`
	Condition   string  `json:"condition"`
	Temperature float64 `json:"temperature"`
	Humidity    int     `json:"humidity"`
	WindSpeed   float64 `json:"wind_speed"`
}

// currentResponse is the subset of the OpenWeatherMap /weather payload we read.
type currentResponse struct {
	Name    string `json:"name"`
	Weather []struct {
		Main        string `json:"main"`
		Description string `json:"description"`
	} `json:"weather"`
	Main struct {
		Temp     float64 `json:"temp"`
		Humidity int     `json:"humidity"`
	} `json:"main"`
	Wind struct {
		Speed float64 `json:"speed"`
	} `json:"wind"`
}

func (r *currentResponse) toReading(location string) *Reading {
	name := r.Name
	if name == "" {
		name = location
	}
	main := ""
	if len(r.Weather) > 0 {
		main = r.Weather[0].Main
	}
	return &Reading{
		Location:    name,
		Condition:   normalizeCondition(main, r.Wind.Speed),
		Temperature: r.Main.Temp,
		Humidity:    r.Main.Humidity,
		WindSpeed:   r.Wind.Speed,
	}
}

// strong wind in m/s above which a clear or cloudy sky counts as windy
const windyThreshold = 10.0

// normalizeCondition maps provider condition groups onto the vocabulary the
// assistant understands: sunny, cloudy, rainy, snowy, stormy, windy, foggy.
func normalizeCondition(main string, windSpeed float64) string {
	var c string
	switch strings.ToLower(main) {
	case "clear":
		c = "sunny"
	case "clouds":
		c = "cloudy"
	case "rain", "drizzle":
		return "rainy"
	case "snow":
		return "snowy"
	case "thunderstorm":
		return "stormy"
	case "squall", "tornado":
		return "windy"
	case "mist", "fog", "haze", "smoke", "dust", "sand", "ash":
		return "foggy"
	default:
		c = strings.ToLower(main)
	}
	if windSpeed >= windyThreshold {
		return "windy"
	}
	return c
}
