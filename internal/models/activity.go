package models

import "time"

// ActivityLog is one audit row: logins, signups, predictions, job clicks.
type ActivityLog struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Action    string    `json:"action"`
	Details   string    `json:"details"`
	Timestamp time.Time `json:"timestamp"`
}

// DashboardKPIs is the admin home-page summary.
type DashboardKPIs struct {
	Users          int `json:"users"`
	Admins         int `json:"admins"`
	PredictionsDay int `json:"predictions"` // predictions in the last 24h
}

// HistoryEntry is one line of a user's recent-activity panel.
type HistoryEntry struct {
	Date  string `json:"date"` // "Jan 02" display format
	Role  string `json:"role"`
	Value string `json:"value"`
}
