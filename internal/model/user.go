package model

import "time"

// User represents a registered user of the pollution tracker
type User struct {
	ID            int        `json:"id"`
	Name          string     `json:"name"`
	Email         string     `json:"email"`
	Phone         string     `json:"phone"`
	PasswordHash  string     `json:"-"` // Do not expose password hash in JSON responses
	Lat           *float64   `json:"lat,omitempty"` // Pointers for users that never shared a location
	Lon           *float64   `json:"lon,omitempty"`
	LastAQI       int        `json:"last_aqi"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     *time.Time `json:"updated_at,omitempty"`
	LastAlertTime *time.Time `json:"last_alert_time,omitempty"`
}
