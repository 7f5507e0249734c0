package trip

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"time"
)

// The weather endpoint proxies the provider's forecast body through mostly
// untouched, and the provider shape has changed between backend versions:
// older responses carry the OpenWeather {list: [...]} envelope with Unix
// timestamps, newer ones a flat pre-normalized day array. Both are accepted.

const weatherIconURL = "https://openweathermap.org/img/wn/%s@2x.png"

// openWeatherBody is the provider-shaped forecast envelope.
type openWeatherBody struct {
	List []struct {
		Dt   int64 `json:"dt"`
		Main struct {
			Temp     float64 `json:"temp"`
			TempMin  float64 `json:"temp_min"`
			TempMax  float64 `json:"temp_max"`
			Humidity int     `json:"humidity"`
		} `json:"main"`
		Weather []struct {
			Description string `json:"description"`
			Icon        string `json:"icon"`
		} `json:"weather"`
	} `json:"list"`
	Error string `json:"error"`
}

// NormalizeForecast converts a raw weather response body into WeatherDay
// values. It returns an error for unusable bodies; callers are expected to
// capture that error as a sentinel value rather than propagate it, because
// weather is supplementary to the primary result.
func NormalizeForecast(body json.RawMessage) ([]WeatherDay, error) {
	// Flat array: already in canonical shape.
	var flat []WeatherDay
	if err := json.Unmarshal(body, &flat); err == nil {
		return flat, nil
	}

	var raw openWeatherBody
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("decoding forecast: %w", err)
	}
	if raw.Error != "" {
		return nil, errors.New(raw.Error)
	}
	if len(raw.List) == 0 {
		return nil, errors.New("invalid weather data format")
	}

	days := make([]WeatherDay, 0, len(raw.List))
	for _, item := range raw.List {
		ts := time.Unix(item.Dt, 0).UTC()
		wd := WeatherDay{
			Day:      ts.Format("Mon"),
			Date:     ts.Format("Jan 2"),
			Temp:     int(math.Round(item.Main.Temp)),
			TempMin:  int(math.Round(item.Main.TempMin)),
			TempMax:  int(math.Round(item.Main.TempMax)),
			Humidity: item.Main.Humidity,
		}
		if len(item.Weather) > 0 {
			wd.Description = item.Weather[0].Description
			wd.Icon = fmt.Sprintf(weatherIconURL, item.Weather[0].Icon)
		}
		days = append(days, wd)
	}
	return days, nil
}

// NormalizePlaces decodes a places response, defaulting missing sections to
// empty slices so rendering can always iterate.
func NormalizePlaces(body json.RawMessage) (PlacesResult, error) {
	var envelope struct {
		PlacesResult
		Error string `json:"error"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return PlacesResult{}, fmt.Errorf("decoding places: %w", err)
	}
	if envelope.Error != "" {
		return PlacesResult{}, errors.New(envelope.Error)
	}
	res := envelope.PlacesResult
	if res.Restaurants == nil {
		res.Restaurants = []Place{}
	}
	if res.Hotels == nil {
		res.Hotels = []Place{}
	}
	return res, nil
}
