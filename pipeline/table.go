package pipeline

// RawTable is an uploaded worksheet as-is: a header row and string cells.
// Rows may be shorter than the header; missing cells read as blank.
type RawTable struct {
	Headers []string
	Rows    [][]string
}

// columnIndex maps each header name to its column position. When renaming
// produces duplicate headers the last occurrence wins; this mirrors the
// accepted last-write-wins behavior and is not resolved further.
func (t RawTable) columnIndex() map[string]int {
	idx := make(map[string]int, len(t.Headers))
	for i, h := range t.Headers {
		idx[h] = i
	}
	return idx
}
