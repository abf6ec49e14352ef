package handlers

import (
	"errors"
	"net/http"

	reviewRepo "homeserve/database/repository/review"
	userRepo "homeserve/database/repository/user"
	"homeserve/middleware"
	"homeserve/models"
	"homeserve/services/booking"
	"homeserve/services/catalog"
	"homeserve/services/review"
	"homeserve/services/user"
	"homeserve/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

var bookingStatus = map[error]int{
	booking.ErrNotFound:           http.StatusNotFound,
	booking.ErrInvalidAddon:       http.StatusBadRequest,
	booking.ErrSchedulingConflict: http.StatusConflict,
	booking.ErrInvalidTransition:  http.StatusConflict,
	booking.ErrForbidden:          http.StatusForbidden,
	booking.ErrValidation:         http.StatusBadRequest,
	booking.ErrStorage:            http.StatusInternalServerError,
}

// statusFor maps a service error to an HTTP status and a caller-facing message.
func statusFor(err error) (int, string) {
	if kind := booking.KindOf(err); kind != nil {
		status := bookingStatus[kind]
		if status == http.StatusInternalServerError {
			return status, "Something went wrong, please try again"
		}
		return status, booking.MessageOf(err)
	}

	var userValidation user.ValidationError
	var catalogValidation catalog.ValidationError
	var reviewValidation review.ValidationError
	switch {
	case errors.As(err, &userValidation):
		return http.StatusBadRequest, userValidation.Message
	case errors.As(err, &catalogValidation):
		return http.StatusBadRequest, catalogValidation.Message
	case errors.As(err, &reviewValidation):
		return http.StatusBadRequest, reviewValidation.Message
	case errors.Is(err, models.ErrNotFound):
		return http.StatusNotFound, "Resource not found"
	case errors.Is(err, userRepo.ErrDuplicateEmail),
		errors.Is(err, reviewRepo.ErrDuplicateReview),
		errors.Is(err, review.ErrAlreadyReported):
		return http.StatusConflict, err.Error()
	case errors.Is(err, user.ErrInvalidCredentials):
		return http.StatusUnauthorized, err.Error()
	case errors.Is(err, user.ErrAccountDisabled),
		errors.Is(err, user.ErrForbidden),
		errors.Is(err, catalog.ErrForbidden),
		errors.Is(err, catalog.ErrAdminOnly),
		errors.Is(err, review.ErrForbidden):
		return http.StatusForbidden, err.Error()
	case errors.Is(err, user.ErrHasActiveBookings):
		return http.StatusConflict, "Cannot delete a worker with active bookings"
	}
	return http.StatusInternalServerError, "Something went wrong, please try again"
}

// respondError logs err with the request logger and writes the error envelope.
func respondError(c *gin.Context, err error) {
	status, message := statusFor(err)
	logger := getLogger(c)
	if status >= http.StatusInternalServerError {
		logger.Error(message, zap.Error(err))
	} else {
		logger.Info("request refused", zap.Int("status", status), zap.Error(err))
	}
	c.AbortWithStatusJSON(status, utils.ErrorResponse{Message: message})
}

func badRequest(c *gin.Context, details string) {
	utils.JSONError(c, http.StatusBadRequest, "Invalid request", details)
}

// actorOf returns the authenticated caller or aborts with 401.
func actorOf(c *gin.Context) (models.Actor, bool) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		utils.JSONError(c, http.StatusUnauthorized, "Authentication required", "")
	}
	return actor, ok
}
