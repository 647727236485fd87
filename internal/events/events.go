// Package events publishes session activity to NATS.
package events

import "time"

type EntriesAppendedEvent struct {
	SessionID string    `json:"session_id"`
	Source    string    `json:"source"`
	Count     int       `json:"count"`
	Total     int       `json:"total"`
	At        time.Time `json:"at"`
}

type CriteriaUpdatedEvent struct {
	SessionID string    `json:"session_id"`
	Criterion string    `json:"criterion"`
	Weight    float64   `json:"weight"`
	At        time.Time `json:"at"`
}

type ExportCompletedEvent struct {
	SessionID string    `json:"session_id"`
	Format    string    `json:"format"`
	Rows      int       `json:"rows"`
	At        time.Time `json:"at"`
}
