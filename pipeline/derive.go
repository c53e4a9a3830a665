package pipeline

import (
	"time"

	"github.com/pricingxol/claimlens/model"
)

// Loss timing buckets, in threshold order.
const (
	Bucket0To3   = "0–3 bulan"
	Bucket3To6   = ">3–6 bulan"
	Bucket6To12  = ">6–12 bulan"
	Bucket12To24 = ">12–24 bulan"
	BucketOver24 = ">24 bulan"
)

// Buckets lists every loss timing bucket in display order.
var Buckets = []string{Bucket0To3, Bucket3To6, Bucket6To12, Bucket12To24, BucketOver24}

// daysPerMonth converts lag days to months. Deliberately not
// calendar-aware; the banding has always used a flat 30-day month.
const daysPerMonth = 30.0

// BucketFor assigns a loss-lag in months to its timing bucket. Thresholds
// are inclusive and checked in order, so every real value maps to exactly
// one bucket. Negative lag (loss predating policy start) lands in the first
// bucket; that carries a known data-quality signal and is kept as-is.
func BucketFor(months float64) string {
	switch {
	case months <= 3:
		return Bucket0To3
	case months <= 6:
		return Bucket3To6
	case months <= 12:
		return Bucket6To12
	case months <= 24:
		return Bucket12To24
	default:
		return BucketOver24
	}
}

// Derive computes loss-timing features for each deduplicated record. The
// underwriting year is derived only when the variant config asks for it.
func Derive(records []model.Record, cfg Config) []model.Claim {
	claims := make([]model.Claim, 0, len(records))
	for _, r := range records {
		lagDays := int(r.DateOfLoss.Sub(r.StartDate) / (24 * time.Hour))
		lagMonths := float64(lagDays) / daysPerMonth

		c := model.Claim{
			Record:           r,
			LossLagDays:      lagDays,
			LossLagMonths:    lagMonths,
			LossTimingBucket: BucketFor(lagMonths),
		}
		if cfg.UnderwritingYear {
			c.UnderwritingYear = r.StartDate.Format("2006")
		}
		claims = append(claims, c)
	}
	return claims
}
