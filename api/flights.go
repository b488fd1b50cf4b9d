package api

import (
	"net/http"

	"github.com/Domenick1991/airreserve/internal/service/booking"
	"github.com/Domenick1991/airreserve/internal/service/flights"
	"github.com/gin-gonic/gin"
)

type FlightHandler struct {
	service  flights.FlightUseCase
	bookings booking.BookingUseCase
}

func NewFlightHandler(service flights.FlightUseCase, bookings booking.BookingUseCase) *FlightHandler {
	return &FlightHandler{service: service, bookings: bookings}
}

func (h *FlightHandler) Register(router *gin.RouterGroup) {
	router.GET("/", h.list)
	router.GET("/:id", h.get)
	router.POST("/", h.register)
	router.DELETE("/:id", h.adminCancel)
}

// RegisterDirectory mounts carrier and customer registration.
func (h *FlightHandler) RegisterDirectory(router *gin.RouterGroup) {
	router.POST("/carriers", h.registerCarrier)
	router.POST("/customers", h.registerCustomer)
}

func (h *FlightHandler) list(c *gin.Context) {
	result, err := h.service.List(c.Request.Context(), c.Query("origin"), c.Query("destination"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *FlightHandler) get(c *gin.Context) {
	flight, err := h.service.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		abortWith(c, err)
		return
	}
	c.JSON(http.StatusOK, flight)
}

func (h *FlightHandler) register(c *gin.Context) {
	if !requireAdmin(c) {
		return
	}

	var req flights.RegisterFlightInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	flight, err := h.service.RegisterFlight(c.Request.Context(), req)
	if err != nil {
		abortWith(c, err)
		return
	}
	c.JSON(http.StatusCreated, flight)
}

func (h *FlightHandler) adminCancel(c *gin.Context) {
	if !requireAdmin(c) {
		return
	}

	result, err := h.bookings.AdminCancelFlight(c.Request.Context(), c.Param("id"))
	if err != nil {
		abortWith(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"flight_id":          result.Flight.ID,
		"status":             result.Flight.Status,
		"cancelled_bookings": len(result.CancelledBookings),
	})
}

func (h *FlightHandler) registerCarrier(c *gin.Context) {
	if !requireAdmin(c) {
		return
	}

	var req flights.RegisterCarrierInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	carrier, err := h.service.RegisterCarrier(c.Request.Context(), req)
	if err != nil {
		abortWith(c, err)
		return
	}
	c.JSON(http.StatusCreated, carrier)
}

func (h *FlightHandler) registerCustomer(c *gin.Context) {
	var req flights.RegisterCustomerInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	customer, err := h.service.RegisterCustomer(c.Request.Context(), req)
	if err != nil {
		abortWith(c, err)
		return
	}
	c.JSON(http.StatusCreated, customer)
}
