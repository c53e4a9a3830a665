package pipeline

import (
	"sort"

	"github.com/pricingxol/claimlens/model"
)

// Selection is a multi-select filter over the categorical dimensions. An
// empty slice for a dimension means no restriction on it.
type Selection struct {
	RiskCategories []string
	Occupancies    []string
	Causes         []string
	Channels       []string
}

// Apply returns the claims matching every dimension of the selection. The
// result is always a fresh slice; callers own it outright.
func (s Selection) Apply(claims []model.Claim) []model.Claim {
	risk := toSet(s.RiskCategories)
	occ := toSet(s.Occupancies)
	cause := toSet(s.Causes)
	channel := toSet(s.Channels)

	out := make([]model.Claim, 0, len(claims))
	for _, c := range claims {
		if !matches(risk, c.RiskCategory) {
			continue
		}
		if !matches(occ, c.Occupancy) {
			continue
		}
		if !matches(cause, c.CauseOfLoss) {
			continue
		}
		if !matches(channel, c.Channel) {
			continue
		}
		out = append(out, c)
	}
	return out
}

// Options holds the sorted distinct values per filterable dimension,
// consumed by the presentation layer to build its filter widgets.
type Options struct {
	RiskCategories []string `json:"risk_categories"`
	Occupancies    []string `json:"occupancies"`
	Causes         []string `json:"causes"`
	Channels       []string `json:"channels"`
}

// FilterOptions collects the distinct values of each dimension.
func FilterOptions(claims []model.Claim) Options {
	risk := make(map[string]struct{})
	occ := make(map[string]struct{})
	cause := make(map[string]struct{})
	channel := make(map[string]struct{})

	for _, c := range claims {
		risk[c.RiskCategory] = struct{}{}
		occ[c.Occupancy] = struct{}{}
		cause[c.CauseOfLoss] = struct{}{}
		channel[c.Channel] = struct{}{}
	}

	return Options{
		RiskCategories: sortedKeys(risk),
		Occupancies:    sortedKeys(occ),
		Causes:         sortedKeys(cause),
		Channels:       sortedKeys(channel),
	}
}

func toSet(values []string) map[string]struct{} {
	if len(values) == 0 {
		return nil
	}
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return set
}

func matches(set map[string]struct{}, v string) bool {
	if set == nil {
		return true
	}
	_, ok := set[v]
	return ok
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
