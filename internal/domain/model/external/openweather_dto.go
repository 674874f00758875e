package external

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// FlexibleString accepts both JSON strings and numbers. The provider sends "cod" and
// "message" as either depending on the endpoint and the outcome.
type FlexibleString string

func (s *FlexibleString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*s = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var value string
		if err := json.Unmarshal(data, &value); err != nil {
			return err
		}
		*s = FlexibleString(value)
		return nil
	}
	var number json.Number
	if err := json.Unmarshal(data, &number); err != nil {
		return err
	}
	*s = FlexibleString(number.String())
	return nil
}

func (s FlexibleString) String() string {
	return string(s)
}

// GeocodingResult is one entry of the geocoding direct and reverse endpoints.
type GeocodingResult struct {
	Name    string   `json:"name"`
	Country string   `json:"country"`
	Lat     *float64 `json:"lat"`
	Lon     *float64 `json:"lon"`
	State   string   `json:"state,omitempty"`
}

// ErrorResponse is the error object of both APIs.
type ErrorResponse struct {
	Cod     FlexibleString `json:"cod"`
	Code    FlexibleString `json:"code"`
	Message FlexibleString `json:"message"`
}

// StatusCode returns whichever of cod or code was sent.
func (e ErrorResponse) StatusCode() string {
	if e.Cod != "" {
		return e.Cod.String()
	}
	return e.Code.String()
}

// ForecastResponse is the 5 day / 3 hour forecast payload.
type ForecastResponse struct {
	Cod     FlexibleString `json:"cod"`
	Message FlexibleString `json:"message"`
	Cnt     int            `json:"cnt"`
	List    []ForecastItem `json:"list"`
	City    *ForecastCity  `json:"city"`
}

// Successful reports whether cod is "200".
func (r ForecastResponse) Successful() bool {
	code, err := strconv.Atoi(r.Cod.String())
	return err == nil && code == 200
}

type ForecastItem struct {
	Dt      *int64            `json:"dt"`
	Main    *ForecastMain     `json:"main"`
	Weather []ForecastWeather `json:"weather"`
	Clouds  ForecastClouds    `json:"clouds"`
	Wind    ForecastWind      `json:"wind"`
	Pop     float64           `json:"pop"`
	DtTxt   string            `json:"dt_txt,omitempty"`
}

type ForecastMain struct {
	Temp      float64 `json:"temp"`
	FeelsLike float64 `json:"feels_like"`
	Pressure  int     `json:"pressure"`
	Humidity  int     `json:"humidity"`
}

type ForecastWeather struct {
	Main        string `json:"main"`
	Description string `json:"description"`
}

type ForecastClouds struct {
	All int `json:"all"`
}

type ForecastWind struct {
	Speed float64 `json:"speed"`
}

type ForecastCity struct {
	Name     string `json:"name"`
	Country  string `json:"country"`
	Timezone *int   `json:"timezone"`
}
