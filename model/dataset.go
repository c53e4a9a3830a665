package model

import (
	"time"
)

// QualityCounts summarizes the data-quality funnel of one pipeline run.
type QualityCounts struct {
	InitialRows  int `json:"initial_rows"`
	CleanedRows  int `json:"cleaned_rows"`
	UniqueClaims int `json:"unique_claims"`
}

// Dataset represents one uploaded claims workbook and its pipeline result
type Dataset struct {
	ID        string        `json:"id"`
	Filename  string        `json:"filename"`
	Status    string        `json:"status"` // pending, processing, completed, failed
	Quality   QualityCounts `json:"quality"`
	Claims    []Claim       `json:"claims,omitempty"`
	ErrorMsg  string        `json:"error_msg,omitempty"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}

// Dataset status constants
const (
	StatusPending    = "pending"
	StatusProcessing = "processing"
	StatusCompleted  = "completed"
	StatusFailed     = "failed"
)
