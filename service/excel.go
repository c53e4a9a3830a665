package service

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/pricingxol/claimlens/model"
	"github.com/pricingxol/claimlens/pipeline"
)

const exportSheet = "Claims"

// ParseWorkbook reads the first sheet of an xlsx workbook into a raw table.
// Row 1 is the header; excelize trims trailing empty cells, so data rows
// may be shorter than the header and are padded downstream.
func ParseWorkbook(r io.Reader) (pipeline.RawTable, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return pipeline.RawTable{}, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return pipeline.RawTable{}, fmt.Errorf("workbook has no sheets")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return pipeline.RawTable{}, fmt.Errorf("failed to read sheet %q: %w", sheets[0], err)
	}
	if len(rows) == 0 {
		return pipeline.RawTable{}, fmt.Errorf("sheet %q has no header row", sheets[0])
	}

	return pipeline.RawTable{Headers: rows[0], Rows: rows[1:]}, nil
}

// ExportWorkbook writes enriched claims to an xlsx workbook for download.
// The underwriting year column is included only when the variant derives it.
func ExportWorkbook(claims []model.Claim, underwritingYear bool) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", exportSheet); err != nil {
		return nil, fmt.Errorf("failed to rename sheet: %w", err)
	}

	headers := []string{
		pipeline.ColClaimID,
		pipeline.ColStartDate,
		pipeline.ColDateOfLoss,
		pipeline.ColClaimAmount,
		pipeline.ColCauseOfLoss,
		pipeline.ColOccupation,
		pipeline.ColOccupancy,
		pipeline.ColRiskCategory,
		pipeline.ColChannel,
		"Loss Lag Days",
		"Loss Lag Months",
		"Loss Timing Bucket",
	}
	if underwritingYear {
		headers = append(headers, "UY")
	}

	if err := writeRow(f, 1, headersToCells(headers)); err != nil {
		return nil, err
	}

	for i, c := range claims {
		cells := []any{
			c.ClaimID,
			c.StartDate.Format("2006-01-02"),
			c.DateOfLoss.Format("2006-01-02"),
			c.ClaimAmount,
			c.CauseOfLoss,
			c.OccupationCode,
			c.Occupancy,
			c.RiskCategory,
			c.Channel,
			c.LossLagDays,
			c.LossLagMonths,
			c.LossTimingBucket,
		}
		if underwritingYear {
			cells = append(cells, c.UnderwritingYear)
		}
		if err := writeRow(f, i+2, cells); err != nil {
			return nil, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to serialize workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func headersToCells(headers []string) []any {
	cells := make([]any, len(headers))
	for i, h := range headers {
		cells[i] = h
	}
	return cells
}

func writeRow(f *excelize.File, row int, cells []any) error {
	for i, v := range cells {
		cell, err := excelize.CoordinatesToCellName(i+1, row)
		if err != nil {
			return fmt.Errorf("failed to locate cell: %w", err)
		}
		if err := f.SetCellValue(exportSheet, cell, v); err != nil {
			return fmt.Errorf("failed to write cell %s: %w", cell, err)
		}
	}
	return nil
}
