package dto

// WeatherResult is the part of a weather lookup the page shows. Temperature is
// in whatever units the provider returned.
type WeatherResult struct {
	Description string  `json:"description"`
	Temperature float64 `json:"temperature"`
}

// AirQualityResult carries the provider's air quality index.
type AirQualityResult struct {
	Index float64 `json:"index"`
}
