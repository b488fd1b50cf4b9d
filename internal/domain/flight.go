package domain

import "time"

type FlightStatus string

const (
	FlightStatusActive    FlightStatus = "ACTIVE"
	FlightStatusCancelled FlightStatus = "CANCELLED"
)

type TravelClass string

const (
	ClassEconomy   TravelClass = "ECONOMY"
	ClassBusiness  TravelClass = "BUSINESS"
	ClassExecutive TravelClass = "EXECUTIVE"
)

func (c TravelClass) Valid() bool {
	switch c {
	case ClassEconomy, ClassBusiness, ClassExecutive:
		return true
	}
	return false
}

// SeatBlock holds one integer per travel class. It is used both for flight
// capacity and for booked counters.
type SeatBlock struct {
	Economy   int `json:"economy"`
	Business  int `json:"business"`
	Executive int `json:"executive"`
}

func (s SeatBlock) Of(class TravelClass) int {
	switch class {
	case ClassBusiness:
		return s.Business
	case ClassExecutive:
		return s.Executive
	default:
		return s.Economy
	}
}

func (s *SeatBlock) Add(class TravelClass, n int) {
	switch class {
	case ClassBusiness:
		s.Business += n
	case ClassExecutive:
		s.Executive += n
	default:
		s.Economy += n
	}
}

type Flight struct {
	ID            string
	CarrierID     string
	Origin        string
	Destination   string
	DepartureTime time.Time
	ArrivalTime   time.Time
	BasePrice     float64
	Capacity      SeatBlock
	Booked        SeatBlock
	Status        FlightStatus
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Available reports how many seats remain bookable in the given class.
func (f *Flight) Available(class TravelClass) int {
	return f.Capacity.Of(class) - f.Booked.Of(class)
}
