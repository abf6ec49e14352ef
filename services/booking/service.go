package booking

import (
	"time"

	schedulerRepo "homeserve/database/repository/scheduler"
	"homeserve/utils"

	"github.com/go-playground/validator/v10"
)

// DefaultBookingService implements BookingService over the repositories.
type DefaultBookingService struct {
	Repo      schedulerRepo.SchedulerRepository
	Catalog   Catalog
	Providers ProviderLookup
	Customers CustomerLookup
	Locker    ProviderLocker
	Metrics   *utils.Metrics

	now      func() time.Time
	validate *validator.Validate
}

// NewBookingService builds the booking service. metrics may be nil.
func NewBookingService(
	repo schedulerRepo.SchedulerRepository,
	catalog Catalog,
	providers ProviderLookup,
	customers CustomerLookup,
	locker ProviderLocker,
	metrics *utils.Metrics,
) *DefaultBookingService {
	if locker == nil {
		locker = NewLocalProviderLocker(3 * time.Second)
	}
	return &DefaultBookingService{
		Repo:      repo,
		Catalog:   catalog,
		Providers: providers,
		Customers: customers,
		Locker:    locker,
		Metrics:   metrics,
		now:       func() time.Time { return time.Now().UTC() },
		validate:  validator.New(),
	}
}

var _ BookingService = (*DefaultBookingService)(nil)

func (s *DefaultBookingService) countCreated() {
	if s.Metrics != nil {
		s.Metrics.BookingsCreated.Inc()
	}
}

func (s *DefaultBookingService) countConflict() {
	if s.Metrics != nil {
		s.Metrics.BookingConflicts.Inc()
	}
}

func (s *DefaultBookingService) countTransition(from, to string) {
	if s.Metrics != nil {
		s.Metrics.BookingTransitions.WithLabelValues(from, to).Inc()
	}
}
