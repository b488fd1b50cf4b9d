package fare

import (
	"math"
	"time"

	"github.com/Domenick1991/airreserve/internal/domain"
)

// Class multipliers on the economy base price.
const (
	economyMultiplier   = 1.0
	businessMultiplier  = 1.5
	executiveMultiplier = 2.25
)

// BulkThreshold is the requested quantity above which a booking counts as bulk.
const BulkThreshold = 10

// Input carries everything Compute needs. Lead time and bulk eligibility are
// decided by the caller so that the computation itself is deterministic.
type Input struct {
	BasePrice    float64
	Class        domain.TravelClass
	Quantity     int
	LeadTimeDays int
	IsBulk       bool
	Loyalty      domain.LoyaltyTier
	Discounts    domain.DiscountSchedule
}

// Compute produces an itemized fare. The three discount percentages are
// additive: they are summed, clamped at 100, and applied once to the subtotal.
// The itemized amounts in the breakdown are computed independently for
// display and are not sequentially subtracted.
func Compute(in Input) (domain.FareBreakdown, error) {
	if in.BasePrice <= 0 {
		return domain.FareBreakdown{}, domain.ErrInvalidFare
	}

	subtotal := in.BasePrice * classMultiplier(in.Class) * float64(in.Quantity)

	advancePct := advancePercent(in.LeadTimeDays, in.Discounts)
	loyaltyPct := in.Discounts.Loyalty[in.Loyalty]
	bulkPct := 0.0
	if in.IsBulk {
		bulkPct = in.Discounts.Bulk
	}

	totalPct := advancePct + loyaltyPct + bulkPct
	if totalPct > 100 {
		totalPct = 100
	}

	return domain.FareBreakdown{
		BasePrice:       round2(subtotal),
		AdvanceDiscount: round2(subtotal * advancePct / 100),
		LoyaltyDiscount: round2(subtotal * loyaltyPct / 100),
		BulkDiscount:    round2(subtotal * bulkPct / 100),
		FinalPrice:      round2(subtotal * (1 - totalPct/100)),
	}, nil
}

// advancePercent picks the single largest qualifying lead-time tier.
func advancePercent(leadDays int, d domain.DiscountSchedule) float64 {
	switch {
	case leadDays >= 90 && d.Days90 > 0:
		return d.Days90
	case leadDays >= 60 && d.Days60 > 0:
		return d.Days60
	case leadDays >= 30 && d.Days30 > 0:
		return d.Days30
	}
	return 0
}

func classMultiplier(class domain.TravelClass) float64 {
	switch class {
	case domain.ClassBusiness:
		return businessMultiplier
	case domain.ClassExecutive:
		return executiveMultiplier
	default:
		return economyMultiplier
	}
}

// LeadDays returns the whole-day UTC date difference between now and
// departure, ignoring time of day. It is negative once departure has passed.
func LeadDays(now, departure time.Time) int {
	n := now.UTC()
	d := departure.UTC()
	nMid := time.Date(n.Year(), n.Month(), n.Day(), 0, 0, 0, 0, time.UTC)
	dMid := time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)
	return int(dMid.Sub(nMid).Hours() / 24)
}

// round2 rounds to cents, half away from zero.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
