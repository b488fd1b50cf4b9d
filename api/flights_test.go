package api

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Domenick1991/airreserve/internal/domain"
	"github.com/Domenick1991/airreserve/internal/service/booking"
	"github.com/Domenick1991/airreserve/internal/service/flights"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockFlightUseCase struct {
	mock.Mock
}

func (m *MockFlightUseCase) List(ctx context.Context, origin, destination string) ([]domain.Flight, error) {
	args := m.Called(ctx, origin, destination)
	return args.Get(0).([]domain.Flight), args.Error(1)
}

func (m *MockFlightUseCase) GetByID(ctx context.Context, id string) (*domain.Flight, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Flight), args.Error(1)
}

func (m *MockFlightUseCase) RegisterFlight(ctx context.Context, input flights.RegisterFlightInput) (*domain.Flight, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Flight), args.Error(1)
}

func (m *MockFlightUseCase) RegisterCarrier(ctx context.Context, input flights.RegisterCarrierInput) (*domain.Carrier, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Carrier), args.Error(1)
}

func (m *MockFlightUseCase) RegisterCustomer(ctx context.Context, input flights.RegisterCustomerInput) (*domain.Customer, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Customer), args.Error(1)
}

func TestFlightHandler_list(t *testing.T) {
	mockService := &MockFlightUseCase{}
	handler := NewFlightHandler(mockService, &MockBookingUseCase{})

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", "/flights?origin=SVO", nil)

	result := []domain.Flight{
		{ID: "flight-1", Origin: "SVO", Destination: "LED", BasePrice: 5000, Status: domain.FlightStatusActive},
	}
	mockService.On("List", c.Request.Context(), "SVO", "").Return(result, nil)

	handler.list(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "flight-1")
	mockService.AssertExpectations(t)
}

func TestFlightHandler_get_NotFound(t *testing.T) {
	mockService := &MockFlightUseCase{}
	handler := NewFlightHandler(mockService, &MockBookingUseCase{})

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Params = gin.Params{{Key: "id", Value: "missing"}}
	c.Request = httptest.NewRequest("GET", "/flights/missing", nil)

	mockService.On("GetByID", c.Request.Context(), "missing").Return(nil, domain.ErrNotFound)

	handler.get(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestFlightHandler_register_RequiresAdmin(t *testing.T) {
	mockService := &MockFlightUseCase{}
	handler := NewFlightHandler(mockService, &MockBookingUseCase{})

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("POST", "/flights", bytes.NewBufferString(`{}`))
	c.Request.Header.Set(HeaderCallerRole, "CUSTOMER")

	handler.register(c)

	assert.Equal(t, http.StatusForbidden, w.Code)
	mockService.AssertNotCalled(t, "RegisterFlight", mock.Anything, mock.Anything)
}

func TestFlightHandler_adminCancel(t *testing.T) {
	mockBookings := &MockBookingUseCase{}
	handler := NewFlightHandler(&MockFlightUseCase{}, mockBookings)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Params = gin.Params{{Key: "id", Value: "flight-1"}}
	c.Request = httptest.NewRequest("DELETE", "/flights/flight-1", nil)
	c.Request.Header.Set(HeaderCallerRole, RoleAdmin)

	result := &booking.AdminCancelResult{
		Flight: &domain.Flight{ID: "flight-1", Status: domain.FlightStatusCancelled},
		CancelledBookings: []domain.Booking{
			{PNR: "AAA111"}, {PNR: "BBB222"}, {PNR: "CCC333"},
		},
	}
	mockBookings.On("AdminCancelFlight", c.Request.Context(), "flight-1").Return(result, nil)

	handler.adminCancel(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"cancelled_bookings":3`)
	mockBookings.AssertExpectations(t)
}

func TestFlightHandler_adminCancel_AlreadyCancelled(t *testing.T) {
	mockBookings := &MockBookingUseCase{}
	handler := NewFlightHandler(&MockFlightUseCase{}, mockBookings)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Params = gin.Params{{Key: "id", Value: "flight-1"}}
	c.Request = httptest.NewRequest("DELETE", "/flights/flight-1", nil)
	c.Request.Header.Set(HeaderCallerRole, RoleAdmin)

	mockBookings.On("AdminCancelFlight", c.Request.Context(), "flight-1").Return(nil, domain.ErrFlightCancelled)

	handler.adminCancel(c)

	assert.Equal(t, http.StatusConflict, w.Code)
}
