// Package inventory owns per-flight, per-class seat counters.
package inventory

import (
	"context"
	"fmt"
	"sync"

	"github.com/Domenick1991/airreserve/internal/domain"
	"github.com/Domenick1991/airreserve/internal/repository"
)

// Manager serializes all counter mutations for a given flight behind a
// per-flight mutex, so the check-then-increment in Reserve is atomic.
// Operations on different flights do not block each other.
type Manager struct {
	flights repository.FlightRepository

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewManager(flights repository.FlightRepository) *Manager {
	return &Manager{
		flights: flights,
		locks:   make(map[string]*sync.Mutex),
	}
}

// Reserve books quantity seats in the given class if capacity allows.
// On any failure the counters are left untouched.
func (m *Manager) Reserve(ctx context.Context, flightID string, class domain.TravelClass, quantity int) error {
	if quantity <= 0 {
		return domain.ErrInvalidQuantity
	}
	if !class.Valid() {
		return domain.ErrInvalidClass
	}

	lock := m.flightLock(flightID)
	lock.Lock()
	defer lock.Unlock()

	flight, err := m.flights.GetByID(ctx, flightID)
	if err != nil {
		return err
	}
	if flight.Status == domain.FlightStatusCancelled {
		return domain.ErrFlightCancelled
	}
	if flight.Available(class) < quantity {
		return domain.ErrInsufficientCapacity
	}

	flight.Booked.Add(class, quantity)
	if err := m.flights.Update(ctx, flight); err != nil {
		return fmt.Errorf("persist reservation: %w", err)
	}
	return nil
}

// Release returns quantity seats to the given class, flooring the counter at
// zero. A double release never drives it negative.
func (m *Manager) Release(ctx context.Context, flightID string, class domain.TravelClass, quantity int) error {
	if quantity <= 0 {
		return domain.ErrInvalidQuantity
	}
	if !class.Valid() {
		return domain.ErrInvalidClass
	}

	lock := m.flightLock(flightID)
	lock.Lock()
	defer lock.Unlock()

	flight, err := m.flights.GetByID(ctx, flightID)
	if err != nil {
		return err
	}

	booked := flight.Booked.Of(class)
	if quantity > booked {
		quantity = booked
	}
	flight.Booked.Add(class, -quantity)
	if err := m.flights.Update(ctx, flight); err != nil {
		return fmt.Errorf("persist release: %w", err)
	}
	return nil
}

// Cancel marks the flight CANCELLED and zeroes every booked counter in one
// locked step. The status write shares the per-flight mutex with Reserve, so
// a reservation in flight can never write back a stale ACTIVE copy over the
// cancellation. Returns the cancelled flight record.
func (m *Manager) Cancel(ctx context.Context, flightID string) (*domain.Flight, error) {
	lock := m.flightLock(flightID)
	lock.Lock()
	defer lock.Unlock()

	flight, err := m.flights.GetByID(ctx, flightID)
	if err != nil {
		return nil, err
	}
	if flight.Status == domain.FlightStatusCancelled {
		return nil, domain.ErrFlightCancelled
	}

	flight.Status = domain.FlightStatusCancelled
	flight.Booked = domain.SeatBlock{}
	if err := m.flights.Update(ctx, flight); err != nil {
		return nil, fmt.Errorf("persist flight cancellation: %w", err)
	}
	return flight, nil
}

func (m *Manager) flightLock(flightID string) *sync.Mutex {
	m.mu.Lock()
	defer m.mu.Unlock()
	lock, ok := m.locks[flightID]
	if !ok {
		lock = &sync.Mutex{}
		m.locks[flightID] = lock
	}
	return lock
}
