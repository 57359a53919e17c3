package testutil

import (
	"time"

	"github.com/valpere/pohoda/internal/models"
)

// LondonJSON is a trimmed OpenWeatherMap current weather response
const LondonJSON = `{
	"coord": {"lon": -0.1257, "lat": 51.5085},
	"weather": [{"id": 803, "main": "Clouds", "description": "broken clouds", "icon": "04d"}],
	"base": "stations",
	"main": {"temp": 285.0, "feels_like": 284.1, "temp_min": 283.5, "temp_max": 286.4, "pressure": 1013, "humidity": 72},
	"visibility": 10000,
	"wind": {"speed": 5.5, "deg": 180, "gust": 9.1},
	"clouds": {"all": 75},
	"dt": 1700000000,
	"sys": {"country": "GB", "sunrise": 1699945200, "sunset": 1699978200},
	"timezone": 0,
	"id": 2643743,
	"name": "London",
	"cod": 200
}`

// WeatherRecord builds a plausible record for name
func WeatherRecord(name, country string) *models.WeatherRecord {
	return &models.WeatherRecord{
		ID:   2643743,
		Name: name,
		Coord: models.Coord{
			Lon: -0.1257,
			Lat: 51.5085,
		},
		Weather: []models.Condition{
			{ID: 803, Main: "Clouds", Description: "broken clouds", Icon: "04d"},
		},
		Main: models.Main{
			Temp:      285.0,
			FeelsLike: 284.1,
			TempMin:   283.5,
			TempMax:   286.4,
			Pressure:  1013,
			Humidity:  72,
		},
		Visibility: 10000,
		Wind:       models.Wind{Speed: 5.5, Deg: 180, Gust: 9.1},
		Clouds:     models.Clouds{All: 75},
		Dt:         time.Date(2023, 11, 14, 22, 13, 20, 0, time.UTC).Unix(),
		Sys:        models.Sys{Country: country, Sunrise: 1699945200, Sunset: 1699978200},
		Cod:        200,
	}
}
