package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"homeserve/middleware"
	"homeserve/models"
	"homeserve/services/booking"
	"homeserve/services/catalog"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- Mock BookingService ---

type mockBookingService struct {
	booking.BookingService

	createFn     func(ctx context.Context, actor models.Actor, in booking.CreateBookingInput) (*models.Booking, error)
	transitionFn func(ctx context.Context, actor models.Actor, id string, in booking.TransitionInput) (*models.Booking, error)
	conflictFn   func(ctx context.Context, providerID string, at time.Time, minutes int, exclude string) (bool, error)
	totalFn      func(ctx context.Context, base float64, sel []booking.AddonSelection) (*booking.PriceQuote, error)
	listFn       func(ctx context.Context, actor models.Actor, q booking.ListQuery) (*booking.BookingPage, error)
}

func (m *mockBookingService) Create(ctx context.Context, actor models.Actor, in booking.CreateBookingInput) (*models.Booking, error) {
	return m.createFn(ctx, actor, in)
}

func (m *mockBookingService) Transition(ctx context.Context, actor models.Actor, id string, in booking.TransitionInput) (*models.Booking, error) {
	return m.transitionFn(ctx, actor, id, in)
}

func (m *mockBookingService) HasConflict(ctx context.Context, providerID string, at time.Time, minutes int, exclude string) (bool, error) {
	return m.conflictFn(ctx, providerID, at, minutes, exclude)
}

func (m *mockBookingService) ComputeTotal(ctx context.Context, base float64, sel []booking.AddonSelection) (*booking.PriceQuote, error) {
	return m.totalFn(ctx, base, sel)
}

func (m *mockBookingService) ListForCustomer(ctx context.Context, actor models.Actor, q booking.ListQuery) (*booking.BookingPage, error) {
	return m.listFn(ctx, actor, q)
}

// --- Mock CatalogService ---

type mockCatalogService struct {
	catalog.CatalogService
	services map[string]models.Service
}

func (m *mockCatalogService) GetService(_ context.Context, id string) (*models.Service, error) {
	s, ok := m.services[id]
	if !ok {
		return nil, fmt.Errorf("service %s: %w", id, models.ErrNotFound)
	}
	return &s, nil
}

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestRouter(actor *models.Actor, bs booking.BookingService, cs catalog.CatalogService) *gin.Engine {
	h := NewBookingHandler(bs, cs)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		if actor != nil {
			c.Set(middleware.ActorKey, *actor)
		}
		c.Next()
	})
	r.POST("/bookings", h.CreateBooking)
	r.POST("/bookings/quote", h.QuoteBooking)
	r.GET("/bookings/availability", h.CheckAvailability)
	r.GET("/bookings/my", h.ListMyBookings)
	r.PATCH("/bookings/:id/status", h.UpdateBookingStatus)
	r.PUT("/bookings/:id/cancel", h.CancelBooking)
	return r
}

func doJSON(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func decode(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	return env
}

var customerActor = models.Actor{ID: "cust-1", Role: models.RoleUser}

func TestCreateBookingHandler(t *testing.T) {
	t.Run("created", func(t *testing.T) {
		var got booking.CreateBookingInput
		var gotActor models.Actor
		svc := &mockBookingService{
			createFn: func(_ context.Context, actor models.Actor, in booking.CreateBookingInput) (*models.Booking, error) {
				got, gotActor = in, actor
				return &models.Booking{ID: "b1", Status: models.StatusPending, Price: 700}, nil
			},
		}
		r := newTestRouter(&customerActor, svc, nil)
		body := `{"serviceId":"s1","providerId":"w1","scheduledAt":"2024-01-01T10:00:00Z",
			"address":{"street":"1 Main","city":"X","state":"Y","zipCode":"1"},
			"addons":[{"addonId":"A","quantity":2},{"addonId":"C"}]}`

		w := doJSON(r, http.MethodPost, "/bookings", body)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		env := decode(t, w)
		assert.True(t, env.Success)
		assert.Contains(t, string(env.Data), `"id":"b1"`)

		assert.Equal(t, customerActor, gotActor)
		assert.Equal(t, "s1", got.ServiceID)
		require.Len(t, got.Addons, 2)
		require.NotNil(t, got.Addons[0].Quantity)
		assert.Equal(t, 2, *got.Addons[0].Quantity)
		assert.Nil(t, got.Addons[1].Quantity)
	})

	t.Run("service errors map to status codes", func(t *testing.T) {
		cases := []struct {
			kind   error
			status int
		}{
			{booking.ErrNotFound, http.StatusNotFound},
			{booking.ErrInvalidAddon, http.StatusBadRequest},
			{booking.ErrSchedulingConflict, http.StatusConflict},
			{booking.ErrInvalidTransition, http.StatusConflict},
			{booking.ErrForbidden, http.StatusForbidden},
			{booking.ErrValidation, http.StatusBadRequest},
			{booking.ErrStorage, http.StatusInternalServerError},
		}
		for _, tc := range cases {
			t.Run(tc.kind.Error(), func(t *testing.T) {
				svc := &mockBookingService{
					createFn: func(context.Context, models.Actor, booking.CreateBookingInput) (*models.Booking, error) {
						return nil, &booking.BookingError{Kind: tc.kind, Message: "boom"}
					},
				}
				r := newTestRouter(&customerActor, svc, nil)
				w := doJSON(r, http.MethodPost, "/bookings", `{}`)
				assert.Equal(t, tc.status, w.Code)
				env := decode(t, w)
				assert.False(t, env.Success)
				if tc.status != http.StatusInternalServerError {
					assert.Equal(t, "boom", env.Message)
				}
			})
		}
	})

	t.Run("malformed json", func(t *testing.T) {
		r := newTestRouter(&customerActor, &mockBookingService{}, nil)
		w := doJSON(r, http.MethodPost, "/bookings", `{"serviceId":`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("unauthenticated", func(t *testing.T) {
		r := newTestRouter(nil, &mockBookingService{}, nil)
		w := doJSON(r, http.MethodPost, "/bookings", `{}`)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestTransitionHandlers(t *testing.T) {
	var got booking.TransitionInput
	var gotID string
	svc := &mockBookingService{
		transitionFn: func(_ context.Context, _ models.Actor, id string, in booking.TransitionInput) (*models.Booking, error) {
			got, gotID = in, id
			return &models.Booking{ID: id, Status: in.Status}, nil
		},
	}
	r := newTestRouter(&customerActor, svc, nil)

	w := doJSON(r, http.MethodPatch, "/bookings/b7/status", `{"status":"accepted","notes":"ok"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "b7", gotID)
	assert.Equal(t, models.StatusAccepted, got.Status)
	require.NotNil(t, got.Notes)
	assert.Equal(t, "ok", *got.Notes)

	w = doJSON(r, http.MethodPut, "/bookings/b8/cancel", `{"cancellationReason":"moved house"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, models.StatusCancelled, got.Status)
	assert.Equal(t, "moved house", got.CancellationReason)
}

func TestQuoteHandler(t *testing.T) {
	var gotBase float64
	svc := &mockBookingService{
		totalFn: func(_ context.Context, base float64, sel []booking.AddonSelection) (*booking.PriceQuote, error) {
			gotBase = base
			return &booking.PriceQuote{Total: base + 100}, nil
		},
	}
	cs := &mockCatalogService{services: map[string]models.Service{
		"s1":      {ID: "s1", Price: 500, Active: true},
		"retired": {ID: "retired", Price: 300},
	}}
	r := newTestRouter(&customerActor, svc, cs)

	w := doJSON(r, http.MethodPost, "/bookings/quote", `{"serviceId":"s1","addons":[{"addonId":"A"}]}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 500.0, gotBase)
	assert.Contains(t, string(decode(t, w).Data), `"total":600`)

	w = doJSON(r, http.MethodPost, "/bookings/quote", `{"serviceId":"s1","priceOverride":0}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 0.0, gotBase)

	gotBase = -1
	w = doJSON(r, http.MethodPost, "/bookings/quote", `{"serviceId":"nope"}`)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(r, http.MethodPost, "/bookings/quote", `{"serviceId":"nope","priceOverride":250}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, -1.0, gotBase)

	w = doJSON(r, http.MethodPost, "/bookings/quote", `{"serviceId":"retired"}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, -1.0, gotBase)
}

func TestCheckAvailabilityHandler(t *testing.T) {
	svc := &mockBookingService{
		conflictFn: func(_ context.Context, providerID string, at time.Time, minutes int, _ string) (bool, error) {
			return providerID == "busy", nil
		},
	}
	r := newTestRouter(&customerActor, svc, nil)

	w := doJSON(r, http.MethodGet, "/bookings/availability?providerId=busy&at=2024-01-01T10:00:00Z&duration=60", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, string(decode(t, w).Data), `"available":false`)

	w = doJSON(r, http.MethodGet, "/bookings/availability?providerId=free&at=2024-01-01T10:00:00Z", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, string(decode(t, w).Data), `"available":true`)

	w = doJSON(r, http.MethodGet, "/bookings/availability?providerId=free&at=tomorrow", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListMyBookingsHandler(t *testing.T) {
	var gotQuery booking.ListQuery
	svc := &mockBookingService{
		listFn: func(_ context.Context, _ models.Actor, q booking.ListQuery) (*booking.BookingPage, error) {
			gotQuery = q
			return &booking.BookingPage{
				Bookings:   []models.Booking{{ID: "b1"}},
				Pagination: models.NewPagination(q.Page, q.Limit, 21),
			}, nil
		},
	}
	r := newTestRouter(&customerActor, svc, nil)

	w := doJSON(r, http.MethodGet, "/bookings/my?page=2&limit=10&status=pending", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, booking.ListQuery{Status: models.StatusPending, Page: 2, Limit: 10}, gotQuery)
	assert.Contains(t, string(decode(t, w).Data), `"pagination":{"page":2,"limit":10,"total":21,"pages":3}`)
}
