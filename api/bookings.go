package api

import (
	"net/http"
	"time"

	"github.com/Domenick1991/airreserve/internal/domain"
	"github.com/Domenick1991/airreserve/internal/service/booking"
	"github.com/gin-gonic/gin"
)

type BookingHandler struct {
	service booking.BookingUseCase
}

type createBookingRequest struct {
	FlightID string `json:"flight_id" binding:"required"`
	Class    string `json:"class" binding:"required"`
	Quantity int    `json:"quantity" binding:"required"`
}

type bookingResponse struct {
	PNR          string               `json:"pnr"`
	Status       string               `json:"status"`
	FlightID     string               `json:"flight_id"`
	CustomerID   string               `json:"customer_id"`
	Class        string               `json:"class"`
	Quantity     int                  `json:"quantity"`
	Fare         domain.FareBreakdown `json:"fare"`
	BookedAt     string               `json:"booked_at"`
	CancelledAt  *string              `json:"cancelled_at,omitempty"`
	RefundAmount *float64             `json:"refund_amount,omitempty"`
}

func NewBookingHandler(service booking.BookingUseCase) *BookingHandler {
	return &BookingHandler{service: service}
}

func (h *BookingHandler) Register(router *gin.RouterGroup) {
	router.POST("/", h.create)
	router.POST("/quote", h.quote)
	router.GET("/:pnr", h.get)
	router.DELETE("/:pnr", h.cancel)
}

func (h *BookingHandler) create(c *gin.Context) {
	caller, ok := callerID(c)
	if !ok {
		return
	}

	var req createBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	created, err := h.service.CreateBooking(c.Request.Context(), booking.CreateBookingInput{
		CustomerID: caller,
		FlightID:   req.FlightID,
		Class:      domain.TravelClass(req.Class),
		Quantity:   req.Quantity,
	})
	if err != nil {
		abortWith(c, err)
		return
	}

	c.JSON(http.StatusCreated, toBookingResponse(created))
}

func (h *BookingHandler) quote(c *gin.Context) {
	caller, ok := callerID(c)
	if !ok {
		return
	}

	var req createBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	breakdown, err := h.service.Quote(c.Request.Context(), booking.CreateBookingInput{
		CustomerID: caller,
		FlightID:   req.FlightID,
		Class:      domain.TravelClass(req.Class),
		Quantity:   req.Quantity,
	})
	if err != nil {
		abortWith(c, err)
		return
	}

	c.JSON(http.StatusOK, breakdown)
}

func (h *BookingHandler) get(c *gin.Context) {
	found, err := h.service.GetByPNR(c.Request.Context(), c.Param("pnr"))
	if err != nil {
		abortWith(c, err)
		return
	}
	c.JSON(http.StatusOK, toBookingResponse(found))
}

func (h *BookingHandler) cancel(c *gin.Context) {
	caller, ok := callerID(c)
	if !ok {
		return
	}

	cancelled, err := h.service.CancelByPNR(c.Request.Context(), caller, c.Param("pnr"))
	if err != nil {
		abortWith(c, err)
		return
	}

	c.JSON(http.StatusOK, toBookingResponse(cancelled))
}

func toBookingResponse(b *domain.Booking) bookingResponse {
	resp := bookingResponse{
		PNR:          b.PNR,
		Status:       string(b.Status),
		FlightID:     b.FlightID,
		CustomerID:   b.CustomerID,
		Class:        string(b.Class),
		Quantity:     b.Quantity,
		Fare:         b.Fare,
		RefundAmount: b.RefundAmount,
	}
	resp.BookedAt = b.BookedAt.Format(time.RFC3339)
	if b.CancelledAt != nil {
		at := b.CancelledAt.Format(time.RFC3339)
		resp.CancelledAt = &at
	}
	return resp
}
