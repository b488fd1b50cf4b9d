package repository

import (
	"context"
	"sync"

	"github.com/Domenick1991/airreserve/internal/domain"
)

// In-memory repositories backed by maps. They satisfy the same interfaces as
// the Postgres implementations and observe the most recent committed write
// for a key, which is all the services assume of the record store.

type MemFlightRepository struct {
	mu      sync.RWMutex
	flights map[string]domain.Flight
}

func NewMemFlightRepository() *MemFlightRepository {
	return &MemFlightRepository{flights: make(map[string]domain.Flight)}
}

func (r *MemFlightRepository) Create(_ context.Context, f *domain.Flight) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.flights[f.ID] = *f
	return nil
}

func (r *MemFlightRepository) List(_ context.Context) ([]domain.Flight, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	flights := make([]domain.Flight, 0, len(r.flights))
	for _, f := range r.flights {
		flights = append(flights, f)
	}
	return flights, nil
}

func (r *MemFlightRepository) GetByID(_ context.Context, id string) (*domain.Flight, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	f, ok := r.flights[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &f, nil
}

func (r *MemFlightRepository) Update(_ context.Context, f *domain.Flight) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.flights[f.ID]; !ok {
		return domain.ErrNotFound
	}
	r.flights[f.ID] = *f
	return nil
}

type MemBookingRepository struct {
	mu       sync.RWMutex
	bookings map[string]domain.Booking // keyed by booking ID
	byPNR    map[string]string
}

func NewMemBookingRepository() *MemBookingRepository {
	return &MemBookingRepository{
		bookings: make(map[string]domain.Booking),
		byPNR:    make(map[string]string),
	}
}

func (r *MemBookingRepository) Create(_ context.Context, b *domain.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.bookings[b.ID] = *b
	r.byPNR[b.PNR] = b.ID
	return nil
}

func (r *MemBookingRepository) GetByPNR(_ context.Context, pnr string) (*domain.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	id, ok := r.byPNR[pnr]
	if !ok {
		return nil, domain.ErrNotFound
	}
	b := r.bookings[id]
	return &b, nil
}

func (r *MemBookingRepository) ListByFlight(_ context.Context, flightID string) ([]domain.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var bookings []domain.Booking
	for _, b := range r.bookings {
		if b.FlightID == flightID {
			bookings = append(bookings, b)
		}
	}
	return bookings, nil
}

func (r *MemBookingRepository) Cancel(_ context.Context, b *domain.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	current, ok := r.bookings[b.ID]
	if !ok {
		return domain.ErrNotFound
	}
	if current.Status != domain.BookingStatusBooked {
		return domain.ErrBookingNotCancellable
	}
	r.bookings[b.ID] = *b
	return nil
}

func (r *MemBookingRepository) PNRExists(_ context.Context, pnr string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.byPNR[pnr]
	return ok, nil
}

type MemCarrierRepository struct {
	mu       sync.RWMutex
	carriers map[string]domain.Carrier
}

func NewMemCarrierRepository() *MemCarrierRepository {
	return &MemCarrierRepository{carriers: make(map[string]domain.Carrier)}
}

func (r *MemCarrierRepository) Create(_ context.Context, c *domain.Carrier) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.carriers[c.ID] = *c
	return nil
}

func (r *MemCarrierRepository) GetByID(_ context.Context, id string) (*domain.Carrier, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.carriers[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &c, nil
}

type MemCustomerRepository struct {
	mu        sync.RWMutex
	customers map[string]domain.Customer
}

func NewMemCustomerRepository() *MemCustomerRepository {
	return &MemCustomerRepository{customers: make(map[string]domain.Customer)}
}

func (r *MemCustomerRepository) Create(_ context.Context, c *domain.Customer) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.customers[c.ID] = *c
	return nil
}

func (r *MemCustomerRepository) GetByID(_ context.Context, id string) (*domain.Customer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.customers[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &c, nil
}

var (
	_ FlightRepository   = (*MemFlightRepository)(nil)
	_ BookingRepository  = (*MemBookingRepository)(nil)
	_ CarrierRepository  = (*MemCarrierRepository)(nil)
	_ CustomerRepository = (*MemCustomerRepository)(nil)
)
