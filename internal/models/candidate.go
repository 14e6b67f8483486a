package models

import "time"

// Candidate is one registration row from the roster spreadsheet.
// It is read-only source data and never persisted.
type Candidate struct {
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	WorkshopTime time.Time `json:"workshop_time"`
}
