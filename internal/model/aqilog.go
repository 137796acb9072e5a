package model

import "time"

// AQILog is one immutable AQI observation recorded for a user. Rows are only
// ever appended and bulk-deleted, never updated.
type AQILog struct {
	ID        int64     `json:"id"`
	UserID    int       `json:"user_id"`
	Lat       float64   `json:"lat"`
	Lon       float64   `json:"lon"`
	AQI       int       `json:"aqi"`
	Category  string    `json:"category"`
	Advice    string    `json:"advice"`
	CreatedAt time.Time `json:"created_at"`
}

// AQIReading is the normalized result of one provider lookup.
type AQIReading struct {
	AQI      int    `json:"aqi"`
	Category string `json:"category"`
	Advice   string `json:"advice"`
}

// CityAQI is an AQIReading resolved through the geocoder for a named city.
type CityAQI struct {
	City string  `json:"city"`
	Lat  float64 `json:"lat"`
	Lon  float64 `json:"lon"`
	AQIReading
}

// LocationUpdateRequest is the body of POST /update_location
type LocationUpdateRequest struct {
	UserID  int     `json:"user_id" binding:"required"`
	Lat     float64 `json:"lat" binding:"min=-90,max=90"`
	Lon     float64 `json:"lon" binding:"min=-180,max=180"`
	SendSMS bool    `json:"send_sms"` // opt-in flag for the SMS alert
}
