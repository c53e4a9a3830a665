package pipeline

import (
	"strings"
)

// MissingColumnsError reports required columns absent after normalization.
// The column list is surfaced verbatim to the user; the pipeline does not
// proceed past this error.
type MissingColumnsError struct {
	Columns []string
}

func (e *MissingColumnsError) Error() string {
	return "missing required columns: " + strings.Join(e.Columns, ", ")
}

// CheckSchema verifies that every required column is present in the table.
// Optional columns are not checked here; their absence is handled by Clean.
func CheckSchema(t RawTable, required []string) error {
	idx := t.columnIndex()

	var missing []string
	for _, col := range required {
		if _, ok := idx[col]; !ok {
			missing = append(missing, col)
		}
	}

	if len(missing) > 0 {
		return &MissingColumnsError{Columns: missing}
	}
	return nil
}
