package email

import (
	"context"
	"fmt"

	"github.com/Domenick1991/airreserve/internal/kafka"
)

// Sender is a mock notification channel. Real delivery is out of scope; the
// worker wires it behind the notifications topic.
type Sender struct{}

func NewSender() *Sender {
	return &Sender{}
}

func (s *Sender) Send(ctx context.Context, event kafka.BookingEvent) error {
	switch event.Type {
	case kafka.EventBookingCancelled:
		refund := 0.0
		if event.Refund != nil {
			refund = *event.Refund
		}
		fmt.Printf("notify customer %s: booking %s cancelled, refund %.2f\n", event.CustomerID, event.PNR, refund)
	case kafka.EventFlightCancelled:
		fmt.Printf("notify: flight %s cancelled\n", event.FlightID)
	default:
		fmt.Printf("notify customer %s: booking %s confirmed for flight %s\n", event.CustomerID, event.PNR, event.FlightID)
	}
	return nil
}
