package repository

import (
	"context"
	"errors"

	"github.com/Domenick1991/airreserve/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) error
	GetByPNR(ctx context.Context, pnr string) (*domain.Booking, error)
	ListByFlight(ctx context.Context, flightID string) ([]domain.Booking, error)
	// Cancel persists a transition out of BOOKED. It only succeeds if the
	// stored record is still BOOKED, so two racing cancellations cannot
	// both leave the terminal state behind.
	Cancel(ctx context.Context, booking *domain.Booking) error
	PNRExists(ctx context.Context, pnr string) (bool, error)
}

const bookingColumns = `id, customer_id, flight_id, pnr, status, class, quantity,
	fare_base, fare_advance, fare_loyalty, fare_bulk, fare_final,
	booked_at, cancelled_at, refund_amount`

type PGBookingRepository struct {
	db *pgxpool.Pool
}

func NewBookingRepository(db *pgxpool.Pool) BookingRepository {
	return &PGBookingRepository{db: db}
}

func (r *PGBookingRepository) Create(ctx context.Context, b *domain.Booking) error {
	_, err := r.db.Exec(ctx, `INSERT INTO bookings (id, customer_id, flight_id, pnr, status, class, quantity,
		fare_base, fare_advance, fare_loyalty, fare_bulk, fare_final, booked_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
		b.ID, b.CustomerID, b.FlightID, b.PNR, b.Status, b.Class, b.Quantity,
		b.Fare.BasePrice, b.Fare.AdvanceDiscount, b.Fare.LoyaltyDiscount, b.Fare.BulkDiscount, b.Fare.FinalPrice,
		b.BookedAt)
	return err
}

func (r *PGBookingRepository) GetByPNR(ctx context.Context, pnr string) (*domain.Booking, error) {
	row := r.db.QueryRow(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE pnr=$1`, pnr)
	var b domain.Booking
	if err := scanBooking(row, &b); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &b, nil
}

func (r *PGBookingRepository) ListByFlight(ctx context.Context, flightID string) ([]domain.Booking, error) {
	rows, err := r.db.Query(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE flight_id=$1 ORDER BY booked_at`, flightID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	bookings := make([]domain.Booking, 0)
	for rows.Next() {
		var b domain.Booking
		if err := scanBooking(rows, &b); err != nil {
			return nil, err
		}
		bookings = append(bookings, b)
	}
	return bookings, rows.Err()
}

func (r *PGBookingRepository) Cancel(ctx context.Context, b *domain.Booking) error {
	cmd, err := r.db.Exec(ctx, `UPDATE bookings SET status=$2, cancelled_at=$3, refund_amount=$4
		WHERE id=$1 AND status=$5`,
		b.ID, b.Status, b.CancelledAt, b.RefundAmount, domain.BookingStatusBooked)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrBookingNotCancellable
	}
	return nil
}

func (r *PGBookingRepository) PNRExists(ctx context.Context, pnr string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM bookings WHERE pnr=$1)`, pnr).Scan(&exists)
	return exists, err
}

func scanBooking(row pgx.Row, b *domain.Booking) error {
	return row.Scan(&b.ID, &b.CustomerID, &b.FlightID, &b.PNR, &b.Status, &b.Class, &b.Quantity,
		&b.Fare.BasePrice, &b.Fare.AdvanceDiscount, &b.Fare.LoyaltyDiscount, &b.Fare.BulkDiscount, &b.Fare.FinalPrice,
		&b.BookedAt, &b.CancelledAt, &b.RefundAmount)
}

var _ BookingRepository = (*PGBookingRepository)(nil)
