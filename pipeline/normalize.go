package pipeline

// Normalize renames headers that exactly match a known alias to their
// canonical name. Unmatched headers pass through unchanged. The input
// table is not modified.
func Normalize(t RawTable, aliases map[string]string) RawTable {
	headers := make([]string, len(t.Headers))
	for i, h := range t.Headers {
		if canonical, ok := aliases[h]; ok {
			headers[i] = canonical
		} else {
			headers[i] = h
		}
	}
	return RawTable{Headers: headers, Rows: t.Rows}
}
