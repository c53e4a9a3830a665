package pipeline

import (
	"github.com/pricingxol/claimlens/model"
)

// Deduplicate collapses records sharing a claim id into one record per
// claim: earliest start date, earliest date of loss, summed amount, and
// first-seen values for every categorical field. Grouping is stable with
// respect to input order — "first" always means the first post-cleaning
// row, never map iteration order.
func Deduplicate(records []model.Record) []model.Record {
	out := make([]model.Record, 0, len(records))
	index := make(map[string]int, len(records))

	for _, r := range records {
		i, seen := index[r.ClaimID]
		if !seen {
			index[r.ClaimID] = len(out)
			out = append(out, r)
			continue
		}

		g := &out[i]
		if r.StartDate.Before(g.StartDate) {
			g.StartDate = r.StartDate
		}
		if r.DateOfLoss.Before(g.DateOfLoss) {
			g.DateOfLoss = r.DateOfLoss
		}
		g.ClaimAmount += r.ClaimAmount
	}

	return out
}
