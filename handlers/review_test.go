package handlers

import (
	"context"
	"net/http"
	"testing"

	reviewRepo "homeserve/database/repository/review"
	"homeserve/middleware"
	"homeserve/models"
	"homeserve/services/review"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockReviewService struct {
	review.ReviewService

	createFn func(ctx context.Context, actor models.Actor, req review.CreateRequest) (*models.Review, error)
	listFn   func(ctx context.Context, actor models.Actor, q review.ListQuery) (*review.ReviewPage, error)
	reportFn func(ctx context.Context, actor models.Actor, id string, req review.ReportRequest) (*models.Review, error)
}

func (m *mockReviewService) Create(ctx context.Context, actor models.Actor, req review.CreateRequest) (*models.Review, error) {
	return m.createFn(ctx, actor, req)
}

func (m *mockReviewService) List(ctx context.Context, actor models.Actor, q review.ListQuery) (*review.ReviewPage, error) {
	return m.listFn(ctx, actor, q)
}

func (m *mockReviewService) Report(ctx context.Context, actor models.Actor, id string, req review.ReportRequest) (*models.Review, error) {
	return m.reportFn(ctx, actor, id, req)
}

func newReviewRouter(actor *models.Actor, rs review.ReviewService) *gin.Engine {
	h := NewReviewHandler(rs)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		if actor != nil {
			c.Set(middleware.ActorKey, *actor)
		}
		c.Next()
	})
	r.GET("/reviews/provider/:providerId", h.ListProviderReviews)
	r.POST("/reviews", h.CreateReview)
	r.POST("/reviews/:id/report", h.ReportReview)
	return r
}

func TestReviewHandlers(t *testing.T) {
	t.Run("provider listing is scoped and anonymous", func(t *testing.T) {
		var gotActor models.Actor
		var gotQuery review.ListQuery
		svc := &mockReviewService{
			listFn: func(_ context.Context, actor models.Actor, q review.ListQuery) (*review.ReviewPage, error) {
				gotActor, gotQuery = actor, q
				return &review.ReviewPage{Reviews: []models.Review{}, Stats: models.Rating{Average: 4.5, Count: 2}}, nil
			},
		}
		w := doJSON(newReviewRouter(nil, svc), http.MethodGet, "/reviews/provider/w1?provider=other&rating=5&page=2", "")
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		assert.Equal(t, models.Actor{}, gotActor)
		assert.Equal(t, "w1", gotQuery.ProviderID)
		assert.Equal(t, 5, gotQuery.Rating)
		assert.Equal(t, 2, gotQuery.Page)
		assert.Contains(t, string(decode(t, w).Data), `"average":4.5`)
	})

	t.Run("status mapping", func(t *testing.T) {
		cases := []struct {
			name   string
			err    error
			status int
		}{
			{"duplicate review", reviewRepo.ErrDuplicateReview, http.StatusConflict},
			{"not the booking owner", review.ErrForbidden, http.StatusForbidden},
			{"booking not completed", review.ValidationError{Message: "only completed bookings can be reviewed"}, http.StatusBadRequest},
			{"unknown booking", models.ErrNotFound, http.StatusNotFound},
		}
		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				svc := &mockReviewService{
					createFn: func(context.Context, models.Actor, review.CreateRequest) (*models.Review, error) {
						return nil, tc.err
					},
				}
				w := doJSON(newReviewRouter(&customerActor, svc), http.MethodPost, "/reviews",
					`{"bookingId":"b1","rating":5,"comment":"Great work all round"}`)
				assert.Equal(t, tc.status, w.Code, w.Body.String())
				assert.False(t, decode(t, w).Success)
			})
		}
	})

	t.Run("create requires a caller", func(t *testing.T) {
		w := doJSON(newReviewRouter(nil, &mockReviewService{}), http.MethodPost, "/reviews", `{}`)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("second report conflicts", func(t *testing.T) {
		svc := &mockReviewService{
			reportFn: func(_ context.Context, _ models.Actor, id string, req review.ReportRequest) (*models.Review, error) {
				assert.Equal(t, "r1", id)
				assert.Equal(t, "spam", req.Reason)
				return nil, review.ErrAlreadyReported
			},
		}
		w := doJSON(newReviewRouter(&customerActor, svc), http.MethodPost, "/reviews/r1/report", `{"reason":"spam"}`)
		assert.Equal(t, http.StatusConflict, w.Code)
	})
}
