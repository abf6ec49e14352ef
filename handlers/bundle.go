// File: homeserve/handlers/bundle.go
package handlers

import (
	"homeserve/middleware"

	"github.com/gin-gonic/gin"
)

// HandlerBundle groups all endpoint handlers into one struct.
type HandlerBundle struct {
	// Accounts backs the auth middleware; AuthCache may be nil.
	Accounts  middleware.AccountLookup
	AuthCache middleware.AuthCache

	// Auth endpoints
	RegisterUserHandler gin.HandlerFunc
	LoginHandler        gin.HandlerFunc
	MeHandler           gin.HandlerFunc

	// Catalog endpoints
	GetAvailableServices gin.HandlerFunc
	GetServiceByID       gin.HandlerFunc
	GetAddons            gin.HandlerFunc
	CreateService        gin.HandlerFunc
	SetServiceActive     gin.HandlerFunc
	CreateAddon          gin.HandlerFunc
	SetAddonActive       gin.HandlerFunc
	UpdateService        gin.HandlerFunc
	DeleteService        gin.HandlerFunc
	UpdateAddon          gin.HandlerFunc
	DeleteAddon          gin.HandlerFunc

	// Review endpoints
	ListReviews         gin.HandlerFunc
	ListProviderReviews gin.HandlerFunc
	ListServiceReviews  gin.HandlerFunc
	GetReview           gin.HandlerFunc
	CreateReview        gin.HandlerFunc
	UpdateReview        gin.HandlerFunc
	DeleteReview        gin.HandlerFunc
	ReportReview        gin.HandlerFunc
	ModerateReview      gin.HandlerFunc

	// Booking endpoints
	CreateBooking        gin.HandlerFunc
	QuoteBooking         gin.HandlerFunc
	CheckAvailability    gin.HandlerFunc
	AvailableProviders   gin.HandlerFunc
	GetBooking           gin.HandlerFunc
	ListMyBookings       gin.HandlerFunc
	ListAssignedBookings gin.HandlerFunc
	UpdateBookingStatus  gin.HandlerFunc
	CancelBooking        gin.HandlerFunc

	// Admin endpoints
	ListAllBookings  gin.HandlerFunc
	UpdateBooking    gin.HandlerFunc
	SetPaymentStatus gin.HandlerFunc
	DeleteBooking    gin.HandlerFunc
	BookingStats     gin.HandlerFunc
	CreateAccount    gin.HandlerFunc
	ListUsers        gin.HandlerFunc
	SetUserActive    gin.HandlerFunc
	DeleteUser       gin.HandlerFunc

	Health gin.HandlerFunc
}

// NewHandlerBundle binds handler methods into a HandlerBundle.
func NewHandlerBundle(uh *UserHandler, ch *CatalogHandler, bh *BookingHandler, rh *ReviewHandler) *HandlerBundle {
	return &HandlerBundle{
		RegisterUserHandler: uh.RegisterUserHandler,
		LoginHandler:        uh.LoginHandler,
		MeHandler:           uh.MeHandler,

		GetAvailableServices: ch.GetAvailableServices,
		GetServiceByID:       ch.GetServiceByID,
		GetAddons:            ch.GetAddons,
		CreateService:        ch.CreateService,
		SetServiceActive:     ch.SetServiceActive,
		CreateAddon:          ch.CreateAddon,
		SetAddonActive:       ch.SetAddonActive,
		UpdateService:        ch.UpdateService,
		DeleteService:        ch.DeleteService,
		UpdateAddon:          ch.UpdateAddon,
		DeleteAddon:          ch.DeleteAddon,

		ListReviews:         rh.ListReviews,
		ListProviderReviews: rh.ListProviderReviews,
		ListServiceReviews:  rh.ListServiceReviews,
		GetReview:           rh.GetReview,
		CreateReview:        rh.CreateReview,
		UpdateReview:        rh.UpdateReview,
		DeleteReview:        rh.DeleteReview,
		ReportReview:        rh.ReportReview,
		ModerateReview:      rh.ModerateReview,

		CreateBooking:        bh.CreateBooking,
		QuoteBooking:         bh.QuoteBooking,
		CheckAvailability:    bh.CheckAvailability,
		AvailableProviders:   bh.AvailableProviders,
		GetBooking:           bh.GetBooking,
		ListMyBookings:       bh.ListMyBookings,
		ListAssignedBookings: bh.ListAssignedBookings,
		UpdateBookingStatus:  bh.UpdateBookingStatus,
		CancelBooking:        bh.CancelBooking,

		ListAllBookings:  bh.ListAllBookings,
		UpdateBooking:    bh.UpdateBooking,
		SetPaymentStatus: bh.SetPaymentStatus,
		DeleteBooking:    bh.DeleteBooking,
		BookingStats:     bh.BookingStats,
		CreateAccount:    uh.CreateAccountHandler,
		ListUsers:        uh.ListUsersHandler,
		SetUserActive:    uh.SetUserActiveHandler,
		DeleteUser:       uh.DeleteUserHandler,

		Health: HealthHandler,
	}
}
