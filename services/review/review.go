package review

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"homeserve/models"
	"homeserve/utils"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

func (s *DefaultReviewService) check(req interface{}) error {
	if err := s.validate.Struct(req); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return validationErrorf("%s is invalid (%s)", strings.ToLower(verrs[0].Field()), verrs[0].Tag())
		}
		return ValidationError{Message: "invalid request"}
	}
	return nil
}

func notFound(id string) error {
	return fmt.Errorf("review %s: %w", id, models.ErrNotFound)
}

// Create records a customer's review of one of their completed bookings.
func (s *DefaultReviewService) Create(ctx context.Context, actor models.Actor, req CreateRequest) (*models.Review, error) {
	if !actor.IsCustomer() {
		return nil, ErrForbidden
	}
	req.Comment = strings.TrimSpace(req.Comment)
	if err := s.check(req); err != nil {
		return nil, err
	}

	b, err := s.Bookings.GetBookingByID(ctx, req.BookingID)
	if err != nil {
		return nil, err
	}
	if b.CustomerID != actor.ID {
		return nil, ErrForbidden
	}
	if b.Status != models.StatusCompleted {
		return nil, validationErrorf("only completed bookings can be reviewed")
	}

	r := &models.Review{
		ID:         uuid.New().String(),
		BookingID:  b.ID,
		ReviewerID: actor.ID,
		ProviderID: b.ProviderID,
		ServiceID:  b.ServiceID,
		Rating:     req.Rating,
		Comment:    req.Comment,
	}
	if err := s.Repo.Create(ctx, r); err != nil {
		return nil, err
	}
	utils.GetLogger().Info("review created",
		zap.String("reviewID", r.ID),
		zap.String("bookingID", b.ID),
		zap.Int("rating", r.Rating),
	)
	s.refreshRating(ctx, r.ServiceID)
	return r, nil
}

// Get returns a review. Unpublished reviews are only visible to their author and staff.
func (s *DefaultReviewService) Get(ctx context.Context, actor models.Actor, id string) (*models.Review, error) {
	r, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !r.IsPublic() && !actor.IsStaff() && r.ReviewerID != actor.ID {
		return nil, notFound(id)
	}
	return r, nil
}

func canEdit(actor models.Actor, r *models.Review) bool {
	return actor.Role == models.RoleAdmin || (actor.IsCustomer() && r.ReviewerID == actor.ID)
}

// Update changes the rating or comment. An author's edit sends the review
// back to moderation.
func (s *DefaultReviewService) Update(ctx context.Context, actor models.Actor, id string, req UpdateRequest) (*models.Review, error) {
	if req.Comment != nil {
		trimmed := strings.TrimSpace(*req.Comment)
		req.Comment = &trimmed
	}
	if err := s.check(req); err != nil {
		return nil, err
	}
	r, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !canEdit(actor, r) {
		return nil, ErrForbidden
	}

	if req.Rating != nil {
		r.Rating = *req.Rating
	}
	if req.Comment != nil {
		r.Comment = *req.Comment
	}
	if actor.Role != models.RoleAdmin {
		r.IsVerified = false
	}
	if err := s.Repo.Update(ctx, r); err != nil {
		return nil, err
	}
	s.refreshRating(ctx, r.ServiceID)
	return r, nil
}

func (s *DefaultReviewService) Delete(ctx context.Context, actor models.Actor, id string) error {
	r, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !canEdit(actor, r) {
		return ErrForbidden
	}
	if err := s.Repo.Delete(ctx, id); err != nil {
		return err
	}
	utils.GetLogger().Info("review deleted", zap.String("reviewID", id), zap.String("deletedBy", actor.ID))
	s.refreshRating(ctx, r.ServiceID)
	return nil
}

// Moderate publishes or hides a review and sets the admin response.
func (s *DefaultReviewService) Moderate(ctx context.Context, actor models.Actor, id string, req ModerateRequest) (*models.Review, error) {
	if actor.Role != models.RoleAdmin {
		return nil, ErrForbidden
	}
	if err := s.check(req); err != nil {
		return nil, err
	}
	r, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.IsVerified != nil {
		r.IsVerified = *req.IsVerified
	}
	if req.AdminResponse != nil {
		r.AdminResponse = strings.TrimSpace(*req.AdminResponse)
	}
	if err := s.Repo.Update(ctx, r); err != nil {
		return nil, err
	}
	utils.GetLogger().Info("review moderated",
		zap.String("reviewID", id),
		zap.Bool("verified", r.IsVerified),
	)
	s.refreshRating(ctx, r.ServiceID)
	return r, nil
}

// Report flags a review. A review can be reported once; reported reviews
// drop out of public listings and the service rating.
func (s *DefaultReviewService) Report(ctx context.Context, actor models.Actor, id string, req ReportRequest) (*models.Review, error) {
	if actor.ID == "" {
		return nil, ErrForbidden
	}
	req.Reason = strings.TrimSpace(req.Reason)
	if err := s.check(req); err != nil {
		return nil, err
	}
	r, err := s.Get(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if r.IsReported {
		return nil, ErrAlreadyReported
	}
	r.IsReported = true
	r.ReportReason = req.Reason
	if err := s.Repo.Update(ctx, r); err != nil {
		return nil, err
	}
	utils.GetLogger().Info("review reported", zap.String("reviewID", id), zap.String("reportedBy", actor.ID))
	s.refreshRating(ctx, r.ServiceID)
	return r, nil
}

func (s *DefaultReviewService) List(ctx context.Context, actor models.Actor, q ListQuery) (*ReviewPage, error) {
	if q.Rating != 0 && (q.Rating < models.MinRating || q.Rating > models.MaxRating) {
		return nil, validationErrorf("rating must be between %d and %d", models.MinRating, models.MaxRating)
	}
	filter := models.ReviewFilter{
		ProviderID: q.ProviderID,
		ServiceID:  q.ServiceID,
		Rating:     q.Rating,
		PublicOnly: !actor.IsStaff(),
		Page:       q.Page,
		Limit:      q.Limit,
	}
	reviews, total, err := s.Repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	stats, err := s.Repo.Summary(ctx, filter)
	if err != nil {
		return nil, err
	}
	return &ReviewPage{
		Reviews:    reviews,
		Stats:      stats,
		Pagination: models.NewPagination(q.Page, q.Limit, total),
	}, nil
}

// refreshRating recomputes a service's score from its public reviews. The
// review write has already succeeded, so failures are logged only.
func (s *DefaultReviewService) refreshRating(ctx context.Context, serviceID string) {
	if s.Ratings == nil {
		return
	}
	logger := utils.GetLogger().With(zap.String("serviceID", serviceID))
	rating, err := s.Repo.Summary(ctx, models.ReviewFilter{ServiceID: serviceID, PublicOnly: true})
	if err != nil {
		logger.Warn("failed to summarise service reviews", zap.Error(err))
		return
	}
	if err := s.Ratings.SetServiceRating(ctx, serviceID, rating); err != nil {
		logger.Warn("failed to store service rating", zap.Error(err))
	}
}
