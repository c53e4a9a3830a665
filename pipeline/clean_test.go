package pipeline

import (
	"testing"
	"time"
)

// fullHeaders lists every canonical column, required and optional.
var fullHeaders = []string{
	ColClaimID, ColStartDate, ColDateOfLoss, ColClaimAmount, ColCauseOfLoss,
	ColOccupation, ColOccupancy, ColRiskCategory, ColChannel,
}

func TestCleanDropsRowMissingRequiredField(t *testing.T) {
	cfg := DefaultConfig()
	table := RawTable{
		Headers: fullHeaders,
		Rows: [][]string{
			{"C1", "2021-01-01", "2021-02-01", "100", "Fire", "K1", "Office", "Low", "Direct"},
			{"C2", "2021-01-01", "2021-02-01", "", "Flood", "K1", "Office", "Low", "Direct"}, // no amount
			{"", "2021-01-01", "2021-02-01", "100", "Fire", "K1", "Office", "Low", "Direct"}, // no claim id
			{"C4", "2021-01-01", "2021-02-01", "100", "", "K1", "Office", "Low", "Direct"},   // no cause
		},
	}

	records, stats := Clean(table, cfg)

	if len(records) != 1 {
		t.Fatalf("Expected 1 cleaned record, got %d", len(records))
	}
	if records[0].ClaimID != "C1" {
		t.Errorf("Expected surviving claim C1, got %s", records[0].ClaimID)
	}
	if stats.InitialRows != 4 || stats.CleanedRows != 1 {
		t.Errorf("Expected stats 4/1, got %d/%d", stats.InitialRows, stats.CleanedRows)
	}
}

func TestCleanDropsUnparseableDates(t *testing.T) {
	cfg := DefaultConfig()
	table := RawTable{
		Headers: fullHeaders,
		Rows: [][]string{
			{"C1", "not a date", "2021-02-01", "100", "Fire", "", "", "", ""},
			{"C2", "2021-01-01", "soon", "100", "Fire", "", "", "", ""},
			{"C3", "2021-01-01", "2021-02-01", "100", "Fire", "", "", "", ""},
		},
	}

	records, _ := Clean(table, cfg)

	if len(records) != 1 {
		t.Fatalf("Expected unparseable dates to drop rows silently, got %d records", len(records))
	}
	if records[0].ClaimID != "C3" {
		t.Errorf("Expected C3 to survive, got %s", records[0].ClaimID)
	}
}

func TestCleanNoNullRequiredFieldsAfterClean(t *testing.T) {
	cfg := DefaultConfig()
	table := RawTable{
		Headers: fullHeaders,
		Rows: [][]string{
			{"C1", "2021-01-01", "2021-02-01", "100", "Fire", "", "", "", ""},
			{"C2", "garbage", "2021-02-01", "x", "", "", "", "", ""},
			{"C3", "44197", "44228", "250.5", "Flood", "", "", "", ""},
		},
	}

	records, _ := Clean(table, cfg)

	for _, r := range records {
		if r.ClaimID == "" || r.CauseOfLoss == "" {
			t.Errorf("Record %+v has blank required string field", r)
		}
		if r.StartDate.IsZero() || r.DateOfLoss.IsZero() {
			t.Errorf("Record %s has zero date after cleaning", r.ClaimID)
		}
	}
}

func TestCleanAbsentOptionalColumnGetsSentinel(t *testing.T) {
	cfg := DefaultConfig() // richer variant: absent default "ALL"

	// Occupancy column absent from the whole file
	table := RawTable{
		Headers: []string{ColClaimID, ColStartDate, ColDateOfLoss, ColClaimAmount, ColCauseOfLoss},
		Rows: [][]string{
			{"C1", "2021-01-01", "2021-02-01", "100", "Fire"},
			{"C2", "2021-03-01", "2021-04-01", "200", "Flood"},
		},
	}

	records, _ := Clean(table, cfg)

	if len(records) != 2 {
		t.Fatalf("Expected 2 records, got %d", len(records))
	}
	for _, r := range records {
		if r.Occupancy != "ALL" {
			t.Errorf("Expected absent Occupancy column to default to ALL, got %q", r.Occupancy)
		}
		if r.OccupationCode != "ALL" || r.RiskCategory != "ALL" || r.Channel != "ALL" {
			t.Errorf("Expected all absent optional columns to default to ALL, got %+v", r)
		}
	}
}

func TestCleanAbsentOptionalColumnSimplerVariant(t *testing.T) {
	cfg := DefaultConfig()
	for i := range cfg.OptionalColumns {
		cfg.OptionalColumns[i].AbsentDefault = "UNKNOWN"
	}

	table := RawTable{
		Headers: []string{ColClaimID, ColStartDate, ColDateOfLoss, ColClaimAmount, ColCauseOfLoss},
		Rows:    [][]string{{"C1", "2021-01-01", "2021-02-01", "100", "Fire"}},
	}

	records, _ := Clean(table, cfg)

	if records[0].Occupancy != "UNKNOWN" {
		t.Errorf("Expected simpler-variant sentinel UNKNOWN, got %q", records[0].Occupancy)
	}
}

func TestCleanBlankOptionalCellBecomesUnknown(t *testing.T) {
	cfg := DefaultConfig()
	table := RawTable{
		Headers: fullHeaders,
		Rows: [][]string{
			{"C1", "2021-01-01", "2021-02-01", "100", "Fire", "K1", "", "Low", "Direct"},
		},
	}

	records, _ := Clean(table, cfg)

	if records[0].Occupancy != "UNKNOWN" {
		t.Errorf("Expected blank cell in present column to become UNKNOWN, got %q", records[0].Occupancy)
	}
	if records[0].OccupationCode != "K1" {
		t.Errorf("Expected populated cell to pass through, got %q", records[0].OccupationCode)
	}
}

func TestCleanShortRowsPadAsBlank(t *testing.T) {
	cfg := DefaultConfig()

	// excelize trims trailing empty cells, so rows may be shorter than
	// the header; missing cells read as blank.
	table := RawTable{
		Headers: fullHeaders,
		Rows: [][]string{
			{"C1", "2021-01-01", "2021-02-01", "100", "Fire"},
		},
	}

	records, _ := Clean(table, cfg)

	if len(records) != 1 {
		t.Fatalf("Expected short row to clean successfully, got %d records", len(records))
	}
	if records[0].Occupancy != "UNKNOWN" {
		t.Errorf("Expected truncated optional cell to become UNKNOWN, got %q", records[0].Occupancy)
	}
}

func TestCleanAmountWithThousandSeparators(t *testing.T) {
	cfg := DefaultConfig()
	table := RawTable{
		Headers: fullHeaders,
		Rows: [][]string{
			{"C1", "2021-01-01", "2021-02-01", "1,250,000.75", "Fire", "", "", "", ""},
		},
	}

	records, _ := Clean(table, cfg)

	if len(records) != 1 {
		t.Fatal("Expected amount with separators to parse")
	}
	if records[0].ClaimAmount != 1250000.75 {
		t.Errorf("Expected amount 1250000.75, got %v", records[0].ClaimAmount)
	}
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		want   time.Time
		wantOK bool
	}{
		{"iso", "2021-01-01", date(2021, 1, 1), true},
		{"iso with time", "2021-01-01 13:30:00", date(2021, 1, 1), true},
		{"slash", "2021/01/01", date(2021, 1, 1), true},
		{"excelize default", "01-02-21", date(2021, 1, 2), true},
		{"excel serial", "44197", date(2021, 1, 1), true},
		{"empty", "", time.Time{}, false},
		{"garbage", "not a date", time.Time{}, false},
		{"negative serial", "-5", time.Time{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := parseDate(tt.input)
			if ok != tt.wantOK {
				t.Fatalf("parseDate(%q) ok = %v, want %v", tt.input, ok, tt.wantOK)
			}
			if ok && !got.Equal(tt.want) {
				t.Errorf("parseDate(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseAmount(t *testing.T) {
	tests := []struct {
		input  string
		want   float64
		wantOK bool
	}{
		{"100", 100, true},
		{"100.50", 100.5, true},
		{"1,000", 1000, true},
		{"-250", -250, true},
		{"", 0, false},
		{"abc", 0, false},
	}

	for _, tt := range tests {
		got, ok := parseAmount(tt.input)
		if ok != tt.wantOK {
			t.Errorf("parseAmount(%q) ok = %v, want %v", tt.input, ok, tt.wantOK)
			continue
		}
		if ok && got != tt.want {
			t.Errorf("parseAmount(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
