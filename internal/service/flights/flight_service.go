package flights

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Domenick1991/airreserve/internal/domain"
	"github.com/Domenick1991/airreserve/internal/repository"
	"github.com/google/uuid"
)

type FlightUseCase interface {
	List(ctx context.Context, origin, destination string) ([]domain.Flight, error)
	GetByID(ctx context.Context, id string) (*domain.Flight, error)
	RegisterFlight(ctx context.Context, input RegisterFlightInput) (*domain.Flight, error)
	RegisterCarrier(ctx context.Context, input RegisterCarrierInput) (*domain.Carrier, error)
	RegisterCustomer(ctx context.Context, input RegisterCustomerInput) (*domain.Customer, error)
}

type Cache interface {
	GetFlights(ctx context.Context) ([]domain.Flight, error)
	SetFlights(ctx context.Context, flights []domain.Flight) error
	InvalidateFlights(ctx context.Context) error
}

type RegisterFlightInput struct {
	CarrierID     string           `json:"carrier_id"`
	Origin        string           `json:"origin"`
	Destination   string           `json:"destination"`
	DepartureTime time.Time        `json:"departure_time"`
	ArrivalTime   time.Time        `json:"arrival_time"`
	BasePrice     float64          `json:"base_price"`
	Capacity      domain.SeatBlock `json:"capacity"`
}

type RegisterCarrierInput struct {
	Name      string                  `json:"name"`
	Discounts domain.DiscountSchedule `json:"discounts"`
	Refunds   []domain.RefundTier     `json:"refunds"`
}

type RegisterCustomerInput struct {
	Name    string             `json:"name"`
	Loyalty domain.LoyaltyTier `json:"loyalty"`
}

type FlightService struct {
	flights   repository.FlightRepository
	carriers  repository.CarrierRepository
	customers repository.CustomerRepository
	cache     Cache
}

func NewFlightService(
	flights repository.FlightRepository,
	carriers repository.CarrierRepository,
	customers repository.CustomerRepository,
	cache Cache,
) *FlightService {
	return &FlightService{flights: flights, carriers: carriers, customers: customers, cache: cache}
}

// List returns flights, optionally filtered by origin/destination. The
// unfiltered set is served read-through from the cache.
func (s *FlightService) List(ctx context.Context, origin, destination string) ([]domain.Flight, error) {
	var flights []domain.Flight
	if s.cache != nil {
		if cached, err := s.cache.GetFlights(ctx); err == nil && cached != nil {
			flights = cached
		}
	}
	if flights == nil {
		var err error
		flights, err = s.flights.List(ctx)
		if err != nil {
			return nil, err
		}
		if s.cache != nil {
			_ = s.cache.SetFlights(ctx, flights)
		}
	}

	if origin == "" && destination == "" {
		return flights, nil
	}
	filtered := make([]domain.Flight, 0, len(flights))
	for _, f := range flights {
		if origin != "" && !strings.EqualFold(f.Origin, origin) {
			continue
		}
		if destination != "" && !strings.EqualFold(f.Destination, destination) {
			continue
		}
		filtered = append(filtered, f)
	}
	return filtered, nil
}

func (s *FlightService) GetByID(ctx context.Context, id string) (*domain.Flight, error) {
	return s.flights.GetByID(ctx, id)
}

func (s *FlightService) RegisterFlight(ctx context.Context, input RegisterFlightInput) (*domain.Flight, error) {
	if input.BasePrice <= 0 {
		return nil, domain.ErrInvalidFare
	}
	if _, err := s.carriers.GetByID(ctx, input.CarrierID); err != nil {
		return nil, fmt.Errorf("carrier %s: %w", input.CarrierID, err)
	}

	flight := &domain.Flight{
		ID:            uuid.NewString(),
		CarrierID:     input.CarrierID,
		Origin:        input.Origin,
		Destination:   input.Destination,
		DepartureTime: input.DepartureTime,
		ArrivalTime:   input.ArrivalTime,
		BasePrice:     input.BasePrice,
		Capacity:      input.Capacity,
		Status:        domain.FlightStatusActive,
	}
	if err := s.flights.Create(ctx, flight); err != nil {
		return nil, err
	}
	if s.cache != nil {
		_ = s.cache.InvalidateFlights(ctx)
	}
	return flight, nil
}

func (s *FlightService) RegisterCarrier(ctx context.Context, input RegisterCarrierInput) (*domain.Carrier, error) {
	carrier := &domain.Carrier{
		ID:        uuid.NewString(),
		Name:      input.Name,
		Discounts: input.Discounts,
		Refunds:   input.Refunds,
	}
	if err := s.carriers.Create(ctx, carrier); err != nil {
		return nil, err
	}
	return carrier, nil
}

func (s *FlightService) RegisterCustomer(ctx context.Context, input RegisterCustomerInput) (*domain.Customer, error) {
	customer := &domain.Customer{
		ID:      uuid.NewString(),
		Name:    input.Name,
		Loyalty: input.Loyalty,
	}
	if err := s.customers.Create(ctx, customer); err != nil {
		return nil, err
	}
	return customer, nil
}

var _ FlightUseCase = (*FlightService)(nil)
