package domain

import "time"

type LoyaltyTier string

const (
	LoyaltySilver   LoyaltyTier = "SILVER"
	LoyaltyGold     LoyaltyTier = "GOLD"
	LoyaltyPlatinum LoyaltyTier = "PLATINUM"
)

// DiscountSchedule is a carrier's pricing policy. Percentages are expressed
// as 0..100. A zero tier means the carrier does not offer that discount.
type DiscountSchedule struct {
	Days90  float64                 `json:"days_90"`
	Days60  float64                 `json:"days_60"`
	Days30  float64                 `json:"days_30"`
	Bulk    float64                 `json:"bulk"`
	Loyalty map[LoyaltyTier]float64 `json:"loyalty"`
}

// RefundTier withholds Penalty percent of the paid fare when a booking is
// cancelled between MinDays and MaxDays before departure. MaxDays < 0 means
// no upper bound.
type RefundTier struct {
	MinDays int     `json:"min_days"`
	MaxDays int     `json:"max_days"`
	Penalty float64 `json:"penalty"`
}

type Carrier struct {
	ID        string
	Name      string
	Discounts DiscountSchedule
	Refunds   []RefundTier
	CreatedAt time.Time
}

type Customer struct {
	ID        string
	Name      string
	Loyalty   LoyaltyTier
	CreatedAt time.Time
}
