package domain

import "time"

type BookingStatus string

const (
	BookingStatusBooked              BookingStatus = "BOOKED"
	BookingStatusCancelledByCustomer BookingStatus = "CANCELLED_BY_CUSTOMER"
	BookingStatusCancelledByAdmin    BookingStatus = "CANCELLED_BY_ADMIN"
)

// FareBreakdown itemizes a computed fare. BasePrice is the class-adjusted
// subtotal for the whole party. The three discount amounts are informational
// and are not sequentially subtracted; FinalPrice applies the combined
// percentage once. All values are rounded to cents.
type FareBreakdown struct {
	BasePrice       float64 `json:"base_price"`
	AdvanceDiscount float64 `json:"advance_discount"`
	LoyaltyDiscount float64 `json:"loyalty_discount"`
	BulkDiscount    float64 `json:"bulk_discount"`
	FinalPrice      float64 `json:"final_price"`
}

type Booking struct {
	ID           string
	CustomerID   string
	FlightID     string
	PNR          string
	Status       BookingStatus
	Class        TravelClass
	Quantity     int
	Fare         FareBreakdown
	BookedAt     time.Time
	CancelledAt  *time.Time
	RefundAmount *float64
}
