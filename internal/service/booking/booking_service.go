package booking

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/Domenick1991/airreserve/internal/domain"
	"github.com/Domenick1991/airreserve/internal/kafka"
	"github.com/Domenick1991/airreserve/internal/locator"
	"github.com/Domenick1991/airreserve/internal/metrics"
	"github.com/Domenick1991/airreserve/internal/repository"
	"github.com/Domenick1991/airreserve/internal/service/fare"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const (
	MinQuantity = 1
	MaxQuantity = 14
)

type BookingUseCase interface {
	CreateBooking(ctx context.Context, input CreateBookingInput) (*domain.Booking, error)
	Quote(ctx context.Context, input CreateBookingInput) (domain.FareBreakdown, error)
	CancelByPNR(ctx context.Context, callerID, pnr string) (*domain.Booking, error)
	GetByPNR(ctx context.Context, pnr string) (*domain.Booking, error)
	AdminCancelFlight(ctx context.Context, flightID string) (*AdminCancelResult, error)
}

// Inventory is the seat counter authority. Reserve either books the whole
// party atomically or leaves the flight untouched. Cancel transitions the
// flight record itself, serialized against in-flight reservations.
type Inventory interface {
	Reserve(ctx context.Context, flightID string, class domain.TravelClass, quantity int) error
	Release(ctx context.Context, flightID string, class domain.TravelClass, quantity int) error
	Cancel(ctx context.Context, flightID string) (*domain.Flight, error)
}

type Locators interface {
	Generate(ctx context.Context, exists locator.Exists) (string, error)
}

type Producer interface {
	Publish(ctx context.Context, topic, key string, value interface{}) error
}

type CreateBookingInput struct {
	CustomerID string             `json:"customer_id"`
	FlightID   string             `json:"flight_id"`
	Class      domain.TravelClass `json:"class"`
	Quantity   int                `json:"quantity"`
}

// AdminCancelResult reports what a whole-flight cancellation touched.
type AdminCancelResult struct {
	Flight            *domain.Flight
	CancelledBookings []domain.Booking
}

type BookingService struct {
	bookings           repository.BookingRepository
	flights            repository.FlightRepository
	carriers           repository.CarrierRepository
	customers          repository.CustomerRepository
	inventory          Inventory
	locators           Locators
	producer           Producer
	bookingTopic       string
	notificationsTopic string
	log                *logrus.Logger
	now                func() time.Time
}

type BookingServiceOption func(*BookingService)

func WithNotificationsTopic(topic string) BookingServiceOption {
	return func(s *BookingService) {
		s.notificationsTopic = topic
	}
}

// WithClock overrides the time source. Lead-time and refund tiers depend on
// "now", so tests pin it.
func WithClock(now func() time.Time) BookingServiceOption {
	return func(s *BookingService) {
		s.now = now
	}
}

func WithLogger(log *logrus.Logger) BookingServiceOption {
	return func(s *BookingService) {
		s.log = log
	}
}

func NewBookingService(
	bookings repository.BookingRepository,
	flights repository.FlightRepository,
	carriers repository.CarrierRepository,
	customers repository.CustomerRepository,
	inventory Inventory,
	locators Locators,
	producer Producer,
	bookingTopic string,
	opts ...BookingServiceOption,
) *BookingService {
	service := &BookingService{
		bookings:     bookings,
		flights:      flights,
		carriers:     carriers,
		customers:    customers,
		inventory:    inventory,
		locators:     locators,
		producer:     producer,
		bookingTopic: bookingTopic,
		log:          logrus.New(),
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(service)
	}
	return service
}

// CreateBooking reserves seats, prices the party, allocates a PNR and
// persists the booking. Any failure after the reservation releases the seats
// again so counters never drift from the set of BOOKED records.
func (s *BookingService) CreateBooking(ctx context.Context, input CreateBookingInput) (*domain.Booking, error) {
	if input.Quantity < MinQuantity || input.Quantity > MaxQuantity {
		return nil, domain.ErrInvalidQuantity
	}

	flight, err := s.flights.GetByID(ctx, input.FlightID)
	if err != nil {
		return nil, fmt.Errorf("flight %s: %w", input.FlightID, err)
	}
	if flight.Status == domain.FlightStatusCancelled {
		return nil, domain.ErrFlightCancelled
	}

	if err := s.inventory.Reserve(ctx, input.FlightID, input.Class, input.Quantity); err != nil {
		if errors.Is(err, domain.ErrInsufficientCapacity) {
			metrics.ReservationsRejected.Inc()
		}
		return nil, err
	}

	booking, err := s.buildBooking(ctx, input, flight)
	if err != nil {
		s.releaseReserved(ctx, input)
		return nil, err
	}

	if err := s.bookings.Create(ctx, booking); err != nil {
		s.releaseReserved(ctx, input)
		return nil, fmt.Errorf("persist booking: %w", err)
	}

	metrics.BookingsCreated.Inc()
	s.log.WithFields(logrus.Fields{
		"pnr":       booking.PNR,
		"flight_id": booking.FlightID,
		"class":     booking.Class,
		"quantity":  booking.Quantity,
		"final":     booking.Fare.FinalPrice,
	}).Info("booking created")

	s.publish(ctx, kafka.EventBookingCreated, booking)
	return booking, nil
}

func (s *BookingService) buildBooking(ctx context.Context, input CreateBookingInput, flight *domain.Flight) (*domain.Booking, error) {
	customer, err := s.customers.GetByID(ctx, input.CustomerID)
	if err != nil {
		return nil, fmt.Errorf("customer %s: %w", input.CustomerID, err)
	}
	carrier, err := s.carriers.GetByID(ctx, flight.CarrierID)
	if err != nil {
		return nil, fmt.Errorf("carrier %s: %w", flight.CarrierID, err)
	}

	pnr, err := s.locators.Generate(ctx, s.bookings.PNRExists)
	if err != nil {
		return nil, err
	}

	now := s.now()
	breakdown, err := fare.Compute(fare.Input{
		BasePrice:    flight.BasePrice,
		Class:        input.Class,
		Quantity:     input.Quantity,
		LeadTimeDays: fare.LeadDays(now, flight.DepartureTime),
		IsBulk:       input.Quantity > fare.BulkThreshold,
		Loyalty:      customer.Loyalty,
		Discounts:    carrier.Discounts,
	})
	if err != nil {
		return nil, err
	}

	return &domain.Booking{
		ID:         uuid.NewString(),
		CustomerID: customer.ID,
		FlightID:   flight.ID,
		PNR:        pnr,
		Status:     domain.BookingStatusBooked,
		Class:      input.Class,
		Quantity:   input.Quantity,
		Fare:       breakdown,
		BookedAt:   now,
	}, nil
}

// releaseReserved is the compensating action for a failed create after the
// seats were already taken.
func (s *BookingService) releaseReserved(ctx context.Context, input CreateBookingInput) {
	if err := s.inventory.Release(ctx, input.FlightID, input.Class, input.Quantity); err != nil {
		s.log.WithError(err).WithField("flight_id", input.FlightID).
			Error("failed to release seats after aborted booking")
	}
}

// Quote prices a prospective booking without touching inventory.
func (s *BookingService) Quote(ctx context.Context, input CreateBookingInput) (domain.FareBreakdown, error) {
	if input.Quantity < MinQuantity || input.Quantity > MaxQuantity {
		return domain.FareBreakdown{}, domain.ErrInvalidQuantity
	}

	flight, err := s.flights.GetByID(ctx, input.FlightID)
	if err != nil {
		return domain.FareBreakdown{}, fmt.Errorf("flight %s: %w", input.FlightID, err)
	}
	customer, err := s.customers.GetByID(ctx, input.CustomerID)
	if err != nil {
		return domain.FareBreakdown{}, fmt.Errorf("customer %s: %w", input.CustomerID, err)
	}
	carrier, err := s.carriers.GetByID(ctx, flight.CarrierID)
	if err != nil {
		return domain.FareBreakdown{}, fmt.Errorf("carrier %s: %w", flight.CarrierID, err)
	}

	return fare.Compute(fare.Input{
		BasePrice:    flight.BasePrice,
		Class:        input.Class,
		Quantity:     input.Quantity,
		LeadTimeDays: fare.LeadDays(s.now(), flight.DepartureTime),
		IsBulk:       input.Quantity > fare.BulkThreshold,
		Loyalty:      customer.Loyalty,
		Discounts:    carrier.Discounts,
	})
}

func (s *BookingService) GetByPNR(ctx context.Context, pnr string) (*domain.Booking, error) {
	return s.bookings.GetByPNR(ctx, pnr)
}

// CancelByPNR transitions a booking to CANCELLED_BY_CUSTOMER, computes the
// refund from the carrier's penalty schedule and returns the seats.
func (s *BookingService) CancelByPNR(ctx context.Context, callerID, pnr string) (*domain.Booking, error) {
	booking, err := s.bookings.GetByPNR(ctx, pnr)
	if err != nil {
		return nil, fmt.Errorf("booking %s: %w", pnr, err)
	}
	if booking.CustomerID != callerID {
		return nil, domain.ErrForbidden
	}
	if booking.Status != domain.BookingStatusBooked {
		return nil, domain.ErrBookingNotCancellable
	}

	flight, err := s.flights.GetByID(ctx, booking.FlightID)
	if err != nil {
		return nil, fmt.Errorf("flight %s: %w", booking.FlightID, err)
	}
	carrier, err := s.carriers.GetByID(ctx, flight.CarrierID)
	if err != nil {
		return nil, fmt.Errorf("carrier %s: %w", flight.CarrierID, err)
	}

	now := s.now()
	refund := refundAmount(booking.Fare.FinalPrice, fare.LeadDays(now, flight.DepartureTime), carrier.Refunds)

	booking.Status = domain.BookingStatusCancelledByCustomer
	booking.CancelledAt = &now
	booking.RefundAmount = &refund
	if err := s.bookings.Cancel(ctx, booking); err != nil {
		return nil, fmt.Errorf("persist cancellation: %w", err)
	}

	if err := s.inventory.Release(ctx, booking.FlightID, booking.Class, booking.Quantity); err != nil {
		s.log.WithError(err).WithField("pnr", pnr).Error("seat release failed after cancellation")
		return nil, fmt.Errorf("release seats for %s: %w", pnr, err)
	}

	metrics.BookingsCancelled.WithLabelValues("customer").Inc()
	s.log.WithFields(logrus.Fields{"pnr": pnr, "refund": refund}).Info("booking cancelled by customer")

	s.publish(ctx, kafka.EventBookingCancelled, booking)
	return booking, nil
}

// AdminCancelFlight cancels the flight record and its seat counters in one
// locked inventory step, then moves every BOOKED booking to
// CANCELLED_BY_ADMIN. Refund amounts stay unset; a settlement run prices
// them later.
func (s *BookingService) AdminCancelFlight(ctx context.Context, flightID string) (*AdminCancelResult, error) {
	flight, err := s.inventory.Cancel(ctx, flightID)
	if err != nil {
		return nil, fmt.Errorf("flight %s: %w", flightID, err)
	}

	bookings, err := s.bookings.ListByFlight(ctx, flightID)
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}

	now := s.now()
	cancelled := make([]domain.Booking, 0, len(bookings))
	for _, b := range bookings {
		if b.Status != domain.BookingStatusBooked {
			continue
		}
		b.Status = domain.BookingStatusCancelledByAdmin
		b.CancelledAt = &now
		if err := s.bookings.Cancel(ctx, &b); err != nil {
			if errors.Is(err, domain.ErrBookingNotCancellable) {
				// lost to a concurrent customer cancellation
				continue
			}
			return nil, fmt.Errorf("cancel booking %s: %w", b.PNR, err)
		}
		metrics.BookingsCancelled.WithLabelValues("admin").Inc()
		cancelled = append(cancelled, b)
	}

	metrics.FlightsCancelled.Inc()
	s.log.WithFields(logrus.Fields{"flight_id": flightID, "bookings": len(cancelled)}).
		Info("flight cancelled by admin")

	s.publish(ctx, kafka.EventFlightCancelled, &domain.Booking{FlightID: flightID})
	return &AdminCancelResult{Flight: flight, CancelledBookings: cancelled}, nil
}

// refundAmount applies the first matching penalty tier. No matching tier
// means the whole fare is withheld.
func refundAmount(finalPrice float64, daysBefore int, tiers []domain.RefundTier) float64 {
	penalty := 100.0
	for _, t := range tiers {
		if daysBefore >= t.MinDays && (t.MaxDays < 0 || daysBefore <= t.MaxDays) {
			penalty = t.Penalty
			break
		}
	}
	if penalty > 100 {
		penalty = 100
	}
	refund := finalPrice * (1 - penalty/100)
	if refund < 0 {
		refund = 0
	}
	return math.Round(refund*100) / 100
}

func (s *BookingService) publish(ctx context.Context, eventType string, booking *domain.Booking) {
	if s.producer == nil || s.bookingTopic == "" {
		return
	}
	event := kafka.BookingEvent{
		Type:       eventType,
		BookingID:  booking.ID,
		PNR:        booking.PNR,
		FlightID:   booking.FlightID,
		CustomerID: booking.CustomerID,
		Class:      string(booking.Class),
		Quantity:   booking.Quantity,
		Status:     string(booking.Status),
		FinalPrice: booking.Fare.FinalPrice,
		Refund:     booking.RefundAmount,
		At:         s.now(),
	}
	key := booking.PNR
	if key == "" {
		key = booking.FlightID
	}
	if err := s.producer.Publish(ctx, s.bookingTopic, key, event); err != nil {
		s.log.WithError(err).Warnf("failed to publish %s event", eventType)
	}
	if s.notificationsTopic != "" {
		if err := s.producer.Publish(ctx, s.notificationsTopic, key, event); err != nil {
			s.log.WithError(err).Warnf("failed to publish %s notification", eventType)
		}
	}
}

var _ BookingUseCase = (*BookingService)(nil)
