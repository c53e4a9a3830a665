package pipeline

// Canonical column names after normalization. All downstream stages address
// columns through these constants, never through free-form header text.
const (
	ColClaimID      = "Nomor klaim"
	ColStartDate    = "StartDate"
	ColDateOfLoss   = "Date of Loss"
	ColClaimAmount  = "Claim Amount"
	ColCauseOfLoss  = "Cause of Loss"
	ColOccupation   = "Kode Okupasi"
	ColOccupancy    = "Occupancy"
	ColRiskCategory = "Kategori Risiko"
	ColChannel      = "Channel Business"
)

// OptionalColumn declares one optional source column and the sentinel used
// when the column is missing from the upload entirely. Blank cells in a
// present column always become "UNKNOWN" regardless of AbsentDefault.
type OptionalColumn struct {
	Name          string
	AbsentDefault string
}

// Config parameterizes one pipeline variant. The two historical dashboard
// variants differ only in optional-column sentinels and whether the
// underwriting year is derived.
type Config struct {
	Aliases          map[string]string
	RequiredColumns  []string
	OptionalColumns  []OptionalColumn
	UnderwritingYear bool
}

// DefaultConfig returns the richer variant: absent optional columns default
// to "ALL" and the underwriting year is derived.
func DefaultConfig() Config {
	return Config{
		Aliases: map[string]string{
			"Kode okupasi":     ColOccupation,
			"kode okupasi":     ColOccupation,
			"Kategori Okupasi": ColRiskCategory,
			"kategori okupasi": ColRiskCategory,
			"EDate":            "End Date",
			"Edate":            "End Date",
			"COB":              ColChannel,
		},
		RequiredColumns: []string{
			ColClaimID,
			ColStartDate,
			ColDateOfLoss,
			ColClaimAmount,
			ColCauseOfLoss,
		},
		OptionalColumns: []OptionalColumn{
			{Name: ColOccupation, AbsentDefault: "ALL"},
			{Name: ColOccupancy, AbsentDefault: "ALL"},
			{Name: ColRiskCategory, AbsentDefault: "ALL"},
			{Name: ColChannel, AbsentDefault: "ALL"},
		},
		UnderwritingYear: true,
	}
}
