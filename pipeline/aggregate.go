package pipeline

import (
	"sort"

	"github.com/pricingxol/claimlens/model"
)

// BucketCount is the claim frequency of one loss timing bucket.
type BucketCount struct {
	Bucket string `json:"bucket"`
	Count  int    `json:"count"`
}

// BucketAmount is the summed claim amount of one loss timing bucket.
type BucketAmount struct {
	Bucket string  `json:"bucket"`
	Amount float64 `json:"amount"`
}

// CauseCount is the claim frequency and contribution of one cause of loss.
type CauseCount struct {
	Cause string  `json:"cause"`
	Count int     `json:"count"`
	Pct   float64 `json:"pct"`
}

// CauseAmount is the summed amount and contribution of one cause of loss.
type CauseAmount struct {
	Cause  string  `json:"cause"`
	Amount float64 `json:"amount"`
	Pct    float64 `json:"pct"`
}

// Aggregates bundles the four summary views the dashboard renders.
type Aggregates struct {
	FilteredClaims  int            `json:"filtered_claims"`
	BucketFrequency []BucketCount  `json:"bucket_frequency"`
	BucketAmount    []BucketAmount `json:"bucket_amount"`
	CauseFrequency  []CauseCount   `json:"cause_frequency"`
	CauseAmount     []CauseAmount  `json:"cause_amount"`
}

// Aggregate summarizes the (already filtered) claims. Bucket views follow
// the fixed bucket order and omit empty buckets; cause views are sorted by
// cause name. A zero total yields 0% contributions rather than NaN.
func Aggregate(claims []model.Claim) Aggregates {
	agg := Aggregates{FilteredClaims: len(claims)}

	bucketCounts := make(map[string]int)
	bucketAmounts := make(map[string]float64)
	causeCounts := make(map[string]int)
	causeAmounts := make(map[string]float64)

	for _, c := range claims {
		bucketCounts[c.LossTimingBucket]++
		bucketAmounts[c.LossTimingBucket] += c.ClaimAmount
		causeCounts[c.CauseOfLoss]++
		causeAmounts[c.CauseOfLoss] += c.ClaimAmount
	}

	for _, b := range Buckets {
		if n, ok := bucketCounts[b]; ok {
			agg.BucketFrequency = append(agg.BucketFrequency, BucketCount{Bucket: b, Count: n})
			agg.BucketAmount = append(agg.BucketAmount, BucketAmount{Bucket: b, Amount: bucketAmounts[b]})
		}
	}

	causes := make([]string, 0, len(causeCounts))
	totalCount := 0
	totalAmount := 0.0
	for cause, n := range causeCounts {
		causes = append(causes, cause)
		totalCount += n
		totalAmount += causeAmounts[cause]
	}
	sort.Strings(causes)

	for _, cause := range causes {
		agg.CauseFrequency = append(agg.CauseFrequency, CauseCount{
			Cause: cause,
			Count: causeCounts[cause],
			Pct:   pct(float64(causeCounts[cause]), float64(totalCount)),
		})
		agg.CauseAmount = append(agg.CauseAmount, CauseAmount{
			Cause:  cause,
			Amount: causeAmounts[cause],
			Pct:    pct(causeAmounts[cause], totalAmount),
		})
	}

	return agg
}

// pct guards the zero-total case: an empty or zero-sum group set reports 0%.
func pct(part, total float64) float64 {
	if total == 0 {
		return 0
	}
	return part / total * 100
}
