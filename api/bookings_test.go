package api

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Domenick1991/airreserve/internal/domain"
	"github.com/Domenick1991/airreserve/internal/service/booking"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockBookingUseCase struct {
	mock.Mock
}

func (m *MockBookingUseCase) CreateBooking(ctx context.Context, input booking.CreateBookingInput) (*domain.Booking, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingUseCase) Quote(ctx context.Context, input booking.CreateBookingInput) (domain.FareBreakdown, error) {
	args := m.Called(ctx, input)
	return args.Get(0).(domain.FareBreakdown), args.Error(1)
}

func (m *MockBookingUseCase) CancelByPNR(ctx context.Context, callerID, pnr string) (*domain.Booking, error) {
	args := m.Called(ctx, callerID, pnr)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingUseCase) GetByPNR(ctx context.Context, pnr string) (*domain.Booking, error) {
	args := m.Called(ctx, pnr)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingUseCase) AdminCancelFlight(ctx context.Context, flightID string) (*booking.AdminCancelResult, error) {
	args := m.Called(ctx, flightID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*booking.AdminCancelResult), args.Error(1)
}

func TestBookingHandler_create(t *testing.T) {
	mockService := &MockBookingUseCase{}
	handler := NewBookingHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	body := bytes.NewBufferString(`{"flight_id":"flight-1","class":"ECONOMY","quantity":2}`)
	c.Request = httptest.NewRequest("POST", "/bookings", body)
	c.Request.Header.Set(HeaderCallerID, "customer-1")

	created := &domain.Booking{
		PNR:        "AB12CD",
		CustomerID: "customer-1",
		FlightID:   "flight-1",
		Status:     domain.BookingStatusBooked,
		Class:      domain.ClassEconomy,
		Quantity:   2,
	}
	mockService.On("CreateBooking", c.Request.Context(), booking.CreateBookingInput{
		CustomerID: "customer-1",
		FlightID:   "flight-1",
		Class:      domain.ClassEconomy,
		Quantity:   2,
	}).Return(created, nil)

	handler.create(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), "AB12CD")
	mockService.AssertExpectations(t)
}

func TestBookingHandler_create_MissingIdentity(t *testing.T) {
	handler := NewBookingHandler(&MockBookingUseCase{})

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("POST", "/bookings", bytes.NewBufferString(`{}`))

	handler.create(c)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestBookingHandler_create_StatusMapping(t *testing.T) {
	testCases := []struct {
		name     string
		err      error
		expected int
	}{
		{"insufficient capacity", domain.ErrInsufficientCapacity, http.StatusConflict},
		{"flight cancelled", domain.ErrFlightCancelled, http.StatusConflict},
		{"invalid quantity", domain.ErrInvalidQuantity, http.StatusBadRequest},
		{"unknown flight", domain.ErrNotFound, http.StatusNotFound},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			mockService := &MockBookingUseCase{}
			handler := NewBookingHandler(mockService)

			gin.SetMode(gin.TestMode)
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			body := bytes.NewBufferString(`{"flight_id":"flight-1","class":"ECONOMY","quantity":2}`)
			c.Request = httptest.NewRequest("POST", "/bookings", body)
			c.Request.Header.Set(HeaderCallerID, "customer-1")

			mockService.On("CreateBooking", c.Request.Context(), mock.Anything).Return(nil, tc.err)

			handler.create(c)

			assert.Equal(t, tc.expected, w.Code)
		})
	}
}

func TestBookingHandler_cancel(t *testing.T) {
	mockService := &MockBookingUseCase{}
	handler := NewBookingHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Params = gin.Params{{Key: "pnr", Value: "AB12CD"}}
	c.Request = httptest.NewRequest("DELETE", "/bookings/AB12CD", nil)
	c.Request.Header.Set(HeaderCallerID, "customer-1")

	refund := 700.0
	cancelled := &domain.Booking{
		PNR:          "AB12CD",
		CustomerID:   "customer-1",
		Status:       domain.BookingStatusCancelledByCustomer,
		RefundAmount: &refund,
	}
	mockService.On("CancelByPNR", c.Request.Context(), "customer-1", "AB12CD").Return(cancelled, nil)

	handler.cancel(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "700")
	mockService.AssertExpectations(t)
}

func TestBookingHandler_cancel_Forbidden(t *testing.T) {
	mockService := &MockBookingUseCase{}
	handler := NewBookingHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Params = gin.Params{{Key: "pnr", Value: "AB12CD"}}
	c.Request = httptest.NewRequest("DELETE", "/bookings/AB12CD", nil)
	c.Request.Header.Set(HeaderCallerID, "intruder")

	mockService.On("CancelByPNR", c.Request.Context(), "intruder", "AB12CD").Return(nil, domain.ErrForbidden)

	handler.cancel(c)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestBookingHandler_quote(t *testing.T) {
	mockService := &MockBookingUseCase{}
	handler := NewBookingHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	body := bytes.NewBufferString(`{"flight_id":"flight-1","class":"BUSINESS","quantity":2}`)
	c.Request = httptest.NewRequest("POST", "/bookings/quote", body)
	c.Request.Header.Set(HeaderCallerID, "customer-1")

	mockService.On("Quote", c.Request.Context(), mock.Anything).
		Return(domain.FareBreakdown{BasePrice: 15000, FinalPrice: 12750}, nil)

	handler.quote(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "12750")
	mockService.AssertExpectations(t)
}
