package pipeline

import (
	"strconv"
	"strings"
	"time"

	"github.com/pricingxol/claimlens/model"
)

// unknownValue fills individually blank cells in optional columns.
const unknownValue = "UNKNOWN"

// excelEpoch is day zero of Excel's 1900 date system (including its
// leap-year quirk, hence Dec 30 rather than 31).
var excelEpoch = time.Date(1899, time.December, 30, 0, 0, 0, 0, time.UTC)

// dateLayouts covers the representations excelize produces for date cells
// plus the common ISO forms seen in exported claim bordereaux.
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"2006/01/02",
	"01-02-06",
	"01-02-06 15:04",
	"1/2/2006",
	"01/02/2006",
	"2-Jan-06",
	"02-Jan-2006",
	time.RFC3339,
}

// CleanStats records the data-quality funnel of one cleaning pass.
type CleanStats struct {
	InitialRows int
	CleanedRows int
}

// Clean converts raw rows into canonical records. Rows with any required
// field blank or unparseable are dropped, never reported as errors. Optional
// columns absent from the table are filled with their configured sentinel;
// blank cells in present optional columns become "UNKNOWN".
func Clean(t RawTable, cfg Config) ([]model.Record, CleanStats) {
	idx := t.columnIndex()
	stats := CleanStats{InitialRows: len(t.Rows)}

	records := make([]model.Record, 0, len(t.Rows))
	for _, row := range t.Rows {
		cell := func(col string) string {
			i, ok := idx[col]
			if !ok || i >= len(row) {
				return ""
			}
			return strings.TrimSpace(row[i])
		}

		rec := model.Record{
			ClaimID:     cell(ColClaimID),
			CauseOfLoss: cell(ColCauseOfLoss),
		}
		if rec.ClaimID == "" || rec.CauseOfLoss == "" {
			continue
		}

		start, ok := parseDate(cell(ColStartDate))
		if !ok {
			continue
		}
		loss, ok := parseDate(cell(ColDateOfLoss))
		if !ok {
			continue
		}
		amount, ok := parseAmount(cell(ColClaimAmount))
		if !ok {
			continue
		}
		rec.StartDate = start
		rec.DateOfLoss = loss
		rec.ClaimAmount = amount

		for _, opt := range cfg.OptionalColumns {
			var v string
			if _, present := idx[opt.Name]; !present {
				v = opt.AbsentDefault
			} else if v = cell(opt.Name); v == "" {
				v = unknownValue
			}
			setOptionalField(&rec, opt.Name, v)
		}

		records = append(records, rec)
	}

	stats.CleanedRows = len(records)
	return records, stats
}

func setOptionalField(rec *model.Record, col, value string) {
	switch col {
	case ColOccupation:
		rec.OccupationCode = value
	case ColOccupancy:
		rec.Occupancy = value
	case ColRiskCategory:
		rec.RiskCategory = value
	case ColChannel:
		rec.Channel = value
	}
}

// parseDate tries the known textual layouts, then falls back to an Excel
// serial number. Failure returns ok=false rather than an error; the caller
// drops the row.
func parseDate(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if ts, err := time.Parse(layout, s); err == nil {
			return ts.Truncate(24 * time.Hour), true
		}
	}
	if serial, err := strconv.ParseFloat(s, 64); err == nil && serial > 0 {
		return excelEpoch.AddDate(0, 0, int(serial)), true
	}
	return time.Time{}, false
}

// parseAmount parses a decimal amount, tolerating thousand separators and
// surrounding whitespace.
func parseAmount(s string) (float64, bool) {
	s = strings.ReplaceAll(s, ",", "")
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
