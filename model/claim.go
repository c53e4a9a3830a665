package model

import (
	"time"
)

// Record is one canonical claim row after cleaning. Multiple records may
// share a ClaimID until deduplication collapses them.
type Record struct {
	ClaimID        string    `json:"claim_id"`
	StartDate      time.Time `json:"start_date"`
	DateOfLoss     time.Time `json:"date_of_loss"`
	ClaimAmount    float64   `json:"claim_amount"`
	CauseOfLoss    string    `json:"cause_of_loss"`
	OccupationCode string    `json:"occupation_code"`
	Occupancy      string    `json:"occupancy"`
	RiskCategory   string    `json:"risk_category"`
	Channel        string    `json:"channel"`
}

// Claim is a deduplicated record enriched with loss-timing features.
// Loss lag is signed: a loss reported before policy start yields a
// negative lag and still lands in the first timing bucket.
type Claim struct {
	Record
	LossLagDays      int     `json:"loss_lag_days"`
	LossLagMonths    float64 `json:"loss_lag_months"`
	LossTimingBucket string  `json:"loss_timing_bucket"`
	UnderwritingYear string  `json:"underwriting_year,omitempty"`
}
