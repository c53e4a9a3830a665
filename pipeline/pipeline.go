// Package pipeline turns a raw claims worksheet into a canonical,
// deduplicated, feature-enriched claims table. Each stage takes a table
// and returns a new one; no stage mutates its input, so stages compose
// and test in isolation.
package pipeline

import (
	"github.com/pricingxol/claimlens/model"
)

// Result is the outcome of one full pipeline run.
type Result struct {
	Claims  []model.Claim
	Quality model.QualityCounts
}

// Run executes the full pipeline: normalize headers, validate the schema,
// clean rows, deduplicate claims, derive loss-timing features. The only
// error is a schema failure; row-level problems are absorbed as drops and
// show up in the quality counts.
func Run(raw RawTable, cfg Config) (*Result, error) {
	t := Normalize(raw, cfg.Aliases)

	if err := CheckSchema(t, cfg.RequiredColumns); err != nil {
		return nil, err
	}

	records, stats := Clean(t, cfg)
	deduped := Deduplicate(records)
	claims := Derive(deduped, cfg)

	return &Result{
		Claims: claims,
		Quality: model.QualityCounts{
			InitialRows:  stats.InitialRows,
			CleanedRows:  stats.CleanedRows,
			UniqueClaims: len(deduped),
		},
	}, nil
}
