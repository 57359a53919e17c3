package models

import (
	"fmt"
	"time"
)

// WeatherRecord is a snapshot of current conditions for one location, decoded
// from the provider's current weather payload. Temperatures are in Kelvin,
// timestamps in Unix seconds and Timezone is the UTC offset in seconds.
//
// A record is treated as a value: it is never modified after decoding.
type WeatherRecord struct {
	ID         int64       `json:"id"`
	Name       string      `json:"name"`
	Coord      Coord       `json:"coord"`
	Weather    []Condition `json:"weather"`
	Base       string      `json:"base"`
	Main       Main        `json:"main"`
	Visibility int         `json:"visibility"`
	Wind       Wind        `json:"wind"`
	Clouds     Clouds      `json:"clouds"`
	Dt         int64       `json:"dt"`
	Sys        Sys         `json:"sys"`
	Timezone   int         `json:"timezone"`
	Cod        int         `json:"cod"`
}

// Coord is a geographic coordinate in decimal degrees
type Coord struct {
	Lon float64 `json:"lon"`
	Lat float64 `json:"lat"`
}

// Condition describes one weather condition group (e.g. "Clouds")
type Condition struct {
	ID          int    `json:"id"`
	Main        string `json:"main"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

// Main holds temperatures (Kelvin), pressure (hPa) and humidity (%)
type Main struct {
	Temp      float64 `json:"temp"`
	FeelsLike float64 `json:"feels_like"`
	TempMin   float64 `json:"temp_min"`
	TempMax   float64 `json:"temp_max"`
	Pressure  int     `json:"pressure"`
	Humidity  int     `json:"humidity"`
	SeaLevel  int     `json:"sea_level,omitempty"`
	GrndLevel int     `json:"grnd_level,omitempty"`
}

// Wind holds speed (m/s), direction (degrees) and gust (m/s)
type Wind struct {
	Speed float64 `json:"speed"`
	Deg   int     `json:"deg"`
	Gust  float64 `json:"gust,omitempty"`
}

// Clouds holds cloud cover percentage
type Clouds struct {
	All int `json:"all"`
}

// Sys holds country code and sunrise/sunset Unix timestamps
type Sys struct {
	Country string `json:"country"`
	Sunrise int64  `json:"sunrise"`
	Sunset  int64  `json:"sunset"`
}

// PrimaryCondition returns the first reported condition, or a zero Condition
// when the provider sent none.
func (r WeatherRecord) PrimaryCondition() Condition {
	if len(r.Weather) == 0 {
		return Condition{}
	}
	return r.Weather[0]
}

// Location returns a fixed zone for the record's UTC offset
func (r WeatherRecord) Location() *time.Location {
	hours := r.Timezone / 3600
	minutes := (r.Timezone % 3600) / 60
	if minutes < 0 {
		minutes = -minutes
	}
	return time.FixedZone(fmt.Sprintf("UTC%+03d:%02d", hours, minutes), r.Timezone)
}

// ObservedAt returns the observation time in UTC
func (r WeatherRecord) ObservedAt() time.Time {
	return time.Unix(r.Dt, 0).UTC()
}

func (r WeatherRecord) SunriseTime() time.Time {
	return time.Unix(r.Sys.Sunrise, 0).In(r.Location())
}

func (r WeatherRecord) SunsetTime() time.Time {
	return time.Unix(r.Sys.Sunset, 0).In(r.Location())
}

// DisplayName returns "Name, CC" or just the name when the country is unknown
func (r WeatherRecord) DisplayName() string {
	if r.Sys.Country == "" {
		return r.Name
	}
	return fmt.Sprintf("%s, %s", r.Name, r.Sys.Country)
}

// KelvinToCelsius converts a Kelvin temperature to degrees Celsius
func KelvinToCelsius(k float64) float64 {
	return k - 273.15
}

// KelvinToFahrenheit converts a Kelvin temperature to degrees Fahrenheit
func KelvinToFahrenheit(k float64) float64 {
	return (k-273.15)*9/5 + 32
}

// FormatFahrenheit renders a Kelvin temperature as Fahrenheit with two decimals
func FormatFahrenheit(k float64) string {
	return fmt.Sprintf("%.2f", KelvinToFahrenheit(k))
}

// FormatClock renders a Unix timestamp as a 12-hour clock time in loc.
// A nil loc means local time.
func FormatClock(unix int64, loc *time.Location) string {
	if loc == nil {
		loc = time.Local
	}
	return time.Unix(unix, 0).In(loc).Format("03:04 PM")
}
