package reviewRepo

import (
	"context"
	"errors"

	"homeserve/models"
)

// ErrDuplicateReview is returned when a booking already carries a review.
var ErrDuplicateReview = errors.New("booking already reviewed")

// ReviewRepository defines persistence for booking reviews.
type ReviewRepository interface {
	// Create inserts a review. A second review of the same booking fails with ErrDuplicateReview.
	Create(ctx context.Context, review *models.Review) error
	GetByID(ctx context.Context, id string) (*models.Review, error)
	// Update writes the mutable fields of review.
	Update(ctx context.Context, review *models.Review) error
	Delete(ctx context.Context, id string) error
	// List returns one page of reviews matching filter and the total match count.
	List(ctx context.Context, filter models.ReviewFilter) ([]models.Review, int64, error)
	// Summary averages the ratings matching filter, ignoring paging.
	Summary(ctx context.Context, filter models.ReviewFilter) (models.Rating, error)
}
