package repository

import (
	"context"
	"errors"

	"github.com/Domenick1991/airreserve/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type FlightRepository interface {
	Create(ctx context.Context, flight *domain.Flight) error
	List(ctx context.Context) ([]domain.Flight, error)
	GetByID(ctx context.Context, id string) (*domain.Flight, error)
	Update(ctx context.Context, flight *domain.Flight) error
}

const flightColumns = `id, carrier_id, origin, destination, departure_time, arrival_time, base_price,
	cap_economy, cap_business, cap_executive, booked_economy, booked_business, booked_executive,
	status, created_at, updated_at`

type PGFlightRepository struct {
	db *pgxpool.Pool
}

func NewFlightRepository(db *pgxpool.Pool) FlightRepository {
	return &PGFlightRepository{db: db}
}

func (r *PGFlightRepository) Create(ctx context.Context, f *domain.Flight) error {
	return r.db.QueryRow(ctx, `INSERT INTO flights (id, carrier_id, origin, destination, departure_time, arrival_time, base_price,
		cap_economy, cap_business, cap_executive, booked_economy, booked_business, booked_executive, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING created_at, updated_at`,
		f.ID, f.CarrierID, f.Origin, f.Destination, f.DepartureTime, f.ArrivalTime, f.BasePrice,
		f.Capacity.Economy, f.Capacity.Business, f.Capacity.Executive,
		f.Booked.Economy, f.Booked.Business, f.Booked.Executive, f.Status).
		Scan(&f.CreatedAt, &f.UpdatedAt)
}

func (r *PGFlightRepository) List(ctx context.Context) ([]domain.Flight, error) {
	rows, err := r.db.Query(ctx, `SELECT `+flightColumns+` FROM flights ORDER BY departure_time`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	flights := make([]domain.Flight, 0)
	for rows.Next() {
		var f domain.Flight
		if err := scanFlight(rows, &f); err != nil {
			return nil, err
		}
		flights = append(flights, f)
	}
	return flights, rows.Err()
}

func (r *PGFlightRepository) GetByID(ctx context.Context, id string) (*domain.Flight, error) {
	row := r.db.QueryRow(ctx, `SELECT `+flightColumns+` FROM flights WHERE id=$1`, id)
	var f domain.Flight
	if err := scanFlight(row, &f); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &f, nil
}

func (r *PGFlightRepository) Update(ctx context.Context, f *domain.Flight) error {
	cmd, err := r.db.Exec(ctx, `UPDATE flights SET
		booked_economy=$2, booked_business=$3, booked_executive=$4, status=$5, updated_at=now()
		WHERE id=$1`,
		f.ID, f.Booked.Economy, f.Booked.Business, f.Booked.Executive, f.Status)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanFlight(row pgx.Row, f *domain.Flight) error {
	return row.Scan(&f.ID, &f.CarrierID, &f.Origin, &f.Destination, &f.DepartureTime, &f.ArrivalTime, &f.BasePrice,
		&f.Capacity.Economy, &f.Capacity.Business, &f.Capacity.Executive,
		&f.Booked.Economy, &f.Booked.Business, &f.Booked.Executive,
		&f.Status, &f.CreatedAt, &f.UpdatedAt)
}

var _ FlightRepository = (*PGFlightRepository)(nil)
