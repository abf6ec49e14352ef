package handlers

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"homeserve/models"
	"homeserve/services/booking"
	"homeserve/services/catalog"
	"homeserve/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BookingHandler serves the booking endpoints.
type BookingHandler struct {
	BookingService booking.BookingService
	CatalogService catalog.CatalogService
}

func NewBookingHandler(bs booking.BookingService, cs catalog.CatalogService) *BookingHandler {
	return &BookingHandler{BookingService: bs, CatalogService: cs}
}

// CreateBooking handles POST /bookings.
func (h *BookingHandler) CreateBooking(c *gin.Context) {
	actor, ok := actorOf(c)
	if !ok {
		return
	}
	var input booking.CreateBookingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, err.Error())
		return
	}

	created, err := h.BookingService.Create(c.Request.Context(), actor, input)
	if err != nil {
		respondError(c, err)
		return
	}
	getLogger(c).Info("booking created", zap.String("bookingID", created.ID))
	utils.JSONSuccess(c, http.StatusCreated, "Booking created successfully", created)
}

// GetBooking handles GET /bookings/:id.
func (h *BookingHandler) GetBooking(c *gin.Context) {
	actor, ok := actorOf(c)
	if !ok {
		return
	}
	b, err := h.BookingService.Get(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, "Booking retrieved successfully", b)
}

type listFunc func(context.Context, models.Actor, booking.ListQuery) (*booking.BookingPage, error)

func (h *BookingHandler) listBookings(c *gin.Context, list listFunc) {
	actor, ok := actorOf(c)
	if !ok {
		return
	}
	var query booking.ListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		badRequest(c, err.Error())
		return
	}
	page, err := list(c.Request.Context(), actor, query)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, "Bookings retrieved successfully", page)
}

// ListMyBookings handles GET /bookings/my for customers.
func (h *BookingHandler) ListMyBookings(c *gin.Context) {
	h.listBookings(c, h.BookingService.ListForCustomer)
}

// ListAssignedBookings handles GET /bookings/assigned for workers.
func (h *BookingHandler) ListAssignedBookings(c *gin.Context) {
	h.listBookings(c, h.BookingService.ListForProvider)
}

// ListAllBookings handles GET /admin/bookings.
func (h *BookingHandler) ListAllBookings(c *gin.Context) {
	h.listBookings(c, h.BookingService.ListAll)
}

// UpdateBookingStatus handles PATCH /bookings/:id/status.
func (h *BookingHandler) UpdateBookingStatus(c *gin.Context) {
	actor, ok := actorOf(c)
	if !ok {
		return
	}
	var input booking.TransitionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, err.Error())
		return
	}
	updated, err := h.BookingService.Transition(c.Request.Context(), actor, c.Param("id"), input)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, "Booking status updated successfully", updated)
}

// CancelBooking handles PUT /bookings/:id/cancel.
func (h *BookingHandler) CancelBooking(c *gin.Context) {
	actor, ok := actorOf(c)
	if !ok {
		return
	}
	var body struct {
		CancellationReason string  `json:"cancellationReason"`
		Notes              *string `json:"notes"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		badRequest(c, err.Error())
		return
	}
	input := booking.TransitionInput{
		Status:             models.StatusCancelled,
		CancellationReason: body.CancellationReason,
		Notes:              body.Notes,
	}
	updated, err := h.BookingService.Transition(c.Request.Context(), actor, c.Param("id"), input)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, "Booking cancelled successfully", updated)
}

type quoteRequest struct {
	ServiceID     string                   `json:"serviceId" binding:"required"`
	Addons        []booking.AddonSelection `json:"addons"`
	PriceOverride *float64                 `json:"priceOverride"`
}

// QuoteBooking handles POST /bookings/quote: prices a booking without storing it.
func (h *BookingHandler) QuoteBooking(c *gin.Context) {
	var req quoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	ctx := c.Request.Context()

	service, err := h.CatalogService.GetService(ctx, req.ServiceID)
	if err != nil {
		respondError(c, err)
		return
	}
	if !service.Active {
		respondError(c, &booking.BookingError{Kind: booking.ErrNotFound, Message: "service " + req.ServiceID + " not found"})
		return
	}
	base := service.Price
	if req.PriceOverride != nil {
		base = *req.PriceOverride
	}

	quote, err := h.BookingService.ComputeTotal(ctx, base, req.Addons)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, "Price computed successfully", quote)
}

func parseTime(raw string) (time.Time, error) {
	return time.Parse(time.RFC3339, strings.TrimSpace(raw))
}

// CheckAvailability handles GET /bookings/availability?providerId=&at=&duration=.
func (h *BookingHandler) CheckAvailability(c *gin.Context) {
	providerID := c.Query("providerId")
	if providerID == "" {
		badRequest(c, "providerId is required")
		return
	}
	at, err := parseTime(c.Query("at"))
	if err != nil {
		badRequest(c, "at must be an RFC3339 timestamp")
		return
	}
	duration, err := strconv.Atoi(c.DefaultQuery("duration", "60"))
	if err != nil {
		badRequest(c, "duration must be a whole number of minutes")
		return
	}

	conflict, err := h.BookingService.HasConflict(c.Request.Context(), providerID, at, duration, c.Query("excludeBookingId"))
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, "Availability checked", gin.H{
		"providerId": providerID,
		"available":  !conflict,
	})
}

// AvailableProviders handles GET /bookings/available-providers?serviceId=&at=.
func (h *BookingHandler) AvailableProviders(c *gin.Context) {
	at, err := parseTime(c.Query("at"))
	if err != nil {
		badRequest(c, "at must be an RFC3339 timestamp")
		return
	}
	providers, err := h.BookingService.AvailableProviders(c.Request.Context(), c.Query("serviceId"), at)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, "Available providers retrieved successfully", providers)
}

// UpdateBooking handles PATCH /admin/bookings/:id.
func (h *BookingHandler) UpdateBooking(c *gin.Context) {
	actor, ok := actorOf(c)
	if !ok {
		return
	}
	var patch booking.BookingPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		badRequest(c, err.Error())
		return
	}
	updated, err := h.BookingService.Update(c.Request.Context(), actor, c.Param("id"), patch)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, "Booking updated successfully", updated)
}

// SetPaymentStatus handles PATCH /admin/bookings/:id/payment.
func (h *BookingHandler) SetPaymentStatus(c *gin.Context) {
	actor, ok := actorOf(c)
	if !ok {
		return
	}
	var body struct {
		PaymentStatus models.PaymentStatus `json:"paymentStatus" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		badRequest(c, err.Error())
		return
	}
	updated, err := h.BookingService.SetPaymentStatus(c.Request.Context(), actor, c.Param("id"), body.PaymentStatus)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, "Payment status updated successfully", updated)
}

// DeleteBooking handles DELETE /admin/bookings/:id.
func (h *BookingHandler) DeleteBooking(c *gin.Context) {
	actor, ok := actorOf(c)
	if !ok {
		return
	}
	if err := h.BookingService.Delete(c.Request.Context(), actor, c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, "Booking deleted successfully", nil)
}

// BookingStats handles GET /admin/bookings/stats.
func (h *BookingHandler) BookingStats(c *gin.Context) {
	actor, ok := actorOf(c)
	if !ok {
		return
	}
	stats, err := h.BookingService.Stats(c.Request.Context(), actor)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, "Booking statistics retrieved successfully", stats)
}
