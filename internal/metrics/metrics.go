package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	BookingsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "airreserve_bookings_created_total",
		Help: "Bookings successfully created.",
	})

	BookingsCancelled = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "airreserve_bookings_cancelled_total",
		Help: "Bookings cancelled, by initiator.",
	}, []string{"by"})

	ReservationsRejected = promauto.NewCounter(prometheus.CounterOpts{
		Name: "airreserve_reservations_rejected_total",
		Help: "Seat reservations rejected for insufficient capacity.",
	})

	FlightsCancelled = promauto.NewCounter(prometheus.CounterOpts{
		Name: "airreserve_flights_cancelled_total",
		Help: "Flights cancelled by an administrator.",
	})
)
