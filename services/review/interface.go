package review

import (
	"context"

	reviewRepo "homeserve/database/repository/review"
	"homeserve/models"

	"github.com/go-playground/validator/v10"
)

// ReviewService manages customer reviews of completed bookings.
type ReviewService interface {
	Create(ctx context.Context, actor models.Actor, req CreateRequest) (*models.Review, error)
	Get(ctx context.Context, actor models.Actor, id string) (*models.Review, error)
	Update(ctx context.Context, actor models.Actor, id string, req UpdateRequest) (*models.Review, error)
	Delete(ctx context.Context, actor models.Actor, id string) error
	Moderate(ctx context.Context, actor models.Actor, id string, req ModerateRequest) (*models.Review, error)
	Report(ctx context.Context, actor models.Actor, id string, req ReportRequest) (*models.Review, error)
	List(ctx context.Context, actor models.Actor, q ListQuery) (*ReviewPage, error)
}

// BookingReader loads the booking a review refers to.
type BookingReader interface {
	GetBookingByID(ctx context.Context, bookingID string) (*models.Booking, error)
}

// RatingWriter stores a service's aggregate rating.
type RatingWriter interface {
	SetServiceRating(ctx context.Context, id string, rating models.Rating) error
}

type CreateRequest struct {
	BookingID string `json:"bookingId" validate:"required"`
	Rating    int    `json:"rating" validate:"required,gte=1,lte=5"`
	Comment   string `json:"comment" validate:"required,min=10,max=500"`
}

type UpdateRequest struct {
	Rating  *int    `json:"rating" validate:"omitnil,gte=1,lte=5"`
	Comment *string `json:"comment" validate:"omitnil,min=10,max=500"`
}

type ModerateRequest struct {
	IsVerified    *bool   `json:"isVerified"`
	AdminResponse *string `json:"adminResponse" validate:"omitnil,max=500"`
}

type ReportRequest struct {
	Reason string `json:"reason" validate:"required,max=200"`
}

// ListQuery selects reviews. Anonymous and non-staff callers only see
// verified, unreported reviews.
type ListQuery struct {
	ProviderID string `form:"provider"`
	ServiceID  string `form:"service"`
	Rating     int    `form:"rating"`
	Page       int    `form:"page"`
	Limit      int    `form:"limit"`
}

// ReviewPage is one page of reviews with the score over every match.
type ReviewPage struct {
	Reviews    []models.Review   `json:"reviews"`
	Stats      models.Rating     `json:"stats"`
	Pagination models.Pagination `json:"pagination"`
}

type DefaultReviewService struct {
	Repo     reviewRepo.ReviewRepository
	Bookings BookingReader
	// Ratings may be nil; service ratings are then left untouched.
	Ratings RatingWriter

	validate *validator.Validate
}

func NewReviewService(repo reviewRepo.ReviewRepository, bookings BookingReader, ratings RatingWriter) *DefaultReviewService {
	return &DefaultReviewService{Repo: repo, Bookings: bookings, Ratings: ratings, validate: validator.New()}
}
