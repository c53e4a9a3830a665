package service

import (
	"bytes"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/pricingxol/claimlens/model"
	"github.com/pricingxol/claimlens/pipeline"
)

func buildWorkbook(t *testing.T, rows [][]any) []byte {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	for r, row := range rows {
		for c, v := range row {
			cell, err := excelize.CoordinatesToCellName(c+1, r+1)
			if err != nil {
				t.Fatalf("Failed to build cell name: %v", err)
			}
			if err := f.SetCellValue("Sheet1", cell, v); err != nil {
				t.Fatalf("Failed to set cell value: %v", err)
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatalf("Failed to serialize workbook: %v", err)
	}
	return buf.Bytes()
}

func TestParseWorkbook(t *testing.T) {
	data := buildWorkbook(t, [][]any{
		{"Nomor klaim", "StartDate", "Date of Loss", "Claim Amount", "Cause of Loss"},
		{"C1", "2021-01-01", "2021-02-01", "100", "Fire"},
		{"C2", "2021-03-01", "2021-03-15", "250.5", "Flood"},
	})

	table, err := ParseWorkbook(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("Failed to parse workbook: %v", err)
	}

	if len(table.Headers) != 5 {
		t.Errorf("Expected 5 headers, got %d: %v", len(table.Headers), table.Headers)
	}
	if table.Headers[0] != "Nomor klaim" {
		t.Errorf("Expected first header 'Nomor klaim', got %q", table.Headers[0])
	}
	if len(table.Rows) != 2 {
		t.Fatalf("Expected 2 data rows, got %d", len(table.Rows))
	}
	if table.Rows[1][3] != "250.5" {
		t.Errorf("Expected amount cell '250.5', got %q", table.Rows[1][3])
	}
}

func TestParseWorkbookEmptySheet(t *testing.T) {
	f := excelize.NewFile()
	buf, err := f.WriteToBuffer()
	f.Close()
	if err != nil {
		t.Fatalf("Failed to serialize workbook: %v", err)
	}

	_, err = ParseWorkbook(bytes.NewReader(buf.Bytes()))
	if err == nil {
		t.Error("Expected error for workbook without a header row")
	}
}

func TestParseWorkbookInvalidData(t *testing.T) {
	_, err := ParseWorkbook(bytes.NewReader([]byte("this is not an xlsx file")))
	if err == nil {
		t.Error("Expected error for non-xlsx input")
	}
}

func TestExportWorkbookRoundTrip(t *testing.T) {
	start := time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC)
	loss := time.Date(2021, 2, 1, 0, 0, 0, 0, time.UTC)

	claims := []model.Claim{
		{
			Record: model.Record{
				ClaimID:        "C1",
				StartDate:      start,
				DateOfLoss:     loss,
				ClaimAmount:    250,
				CauseOfLoss:    "Fire",
				OccupationCode: "K1",
				Occupancy:      "Office",
				RiskCategory:   "Low",
				Channel:        "Direct",
			},
			LossLagDays:      31,
			LossLagMonths:    31.0 / 30.0,
			LossTimingBucket: pipeline.Bucket0To3,
			UnderwritingYear: "2021",
		},
	}

	data, err := ExportWorkbook(claims, true)
	if err != nil {
		t.Fatalf("Failed to export workbook: %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("Exported workbook does not open: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows(exportSheet)
	if err != nil {
		t.Fatalf("Failed to read exported sheet: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("Expected header plus 1 claim row, got %d rows", len(rows))
	}

	header := rows[0]
	if header[0] != pipeline.ColClaimID {
		t.Errorf("Expected first header %q, got %q", pipeline.ColClaimID, header[0])
	}
	if header[len(header)-1] != "UY" {
		t.Errorf("Expected trailing UY column, got %q", header[len(header)-1])
	}

	row := rows[1]
	if row[0] != "C1" {
		t.Errorf("Expected claim id C1, got %q", row[0])
	}
	if row[1] != "2021-01-01" {
		t.Errorf("Expected start date 2021-01-01, got %q", row[1])
	}
	if row[len(row)-1] != "2021" {
		t.Errorf("Expected UY 2021, got %q", row[len(row)-1])
	}
}

func TestExportWorkbookWithoutUnderwritingYear(t *testing.T) {
	claims := []model.Claim{
		{
			Record: model.Record{
				ClaimID:     "C1",
				StartDate:   time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC),
				DateOfLoss:  time.Date(2021, 2, 1, 0, 0, 0, 0, time.UTC),
				ClaimAmount: 100,
				CauseOfLoss: "Fire",
			},
			LossTimingBucket: pipeline.Bucket0To3,
		},
	}

	data, err := ExportWorkbook(claims, false)
	if err != nil {
		t.Fatalf("Failed to export workbook: %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("Exported workbook does not open: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows(exportSheet)
	if err != nil {
		t.Fatalf("Failed to read exported sheet: %v", err)
	}

	for _, h := range rows[0] {
		if h == "UY" {
			t.Error("Did not expect UY column in the simpler variant export")
		}
	}
}
