package booking

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	schedulerRepo "homeserve/database/repository/scheduler"
	"homeserve/models"
)

// memoryRepo is an in-memory SchedulerRepository.
type memoryRepo struct {
	mu       sync.Mutex
	bookings map[string]models.Booking

	findDelay time.Duration
	findErr   error
	createErr error
	updates   int

	lastWindow [2]time.Time
}

func newMemoryRepo(bookings ...models.Booking) *memoryRepo {
	r := &memoryRepo{bookings: make(map[string]models.Booking)}
	for _, b := range bookings {
		r.bookings[b.ID] = b
	}
	return r
}

func (r *memoryRepo) CreateBooking(_ context.Context, booking *models.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErr != nil {
		return r.createErr
	}
	r.bookings[booking.ID] = *booking
	return nil
}

func (r *memoryRepo) GetBookingByID(_ context.Context, id string) (*models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bookings[id]
	if !ok {
		return nil, fmt.Errorf("booking %s: %w", id, models.ErrNotFound)
	}
	return &b, nil
}

func (r *memoryRepo) FindByProviderAndStatus(_ context.Context, providerID string, statuses []models.BookingStatus, windowStart, windowEnd time.Time) ([]models.Booking, error) {
	if r.findDelay > 0 {
		time.Sleep(r.findDelay)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.findErr != nil {
		return nil, r.findErr
	}
	r.lastWindow = [2]time.Time{windowStart, windowEnd}
	return r.matching(providerID, statuses, func(b models.Booking) bool {
		return b.ScheduledAt.Before(windowEnd) && b.EndsAt.After(windowStart)
	}), nil
}

func (r *memoryRepo) matching(providerID string, statuses []models.BookingStatus, keep func(models.Booking) bool) []models.Booking {
	var out []models.Booking
	for _, b := range r.bookings {
		if b.ProviderID != providerID || !keep(b) {
			continue
		}
		for _, s := range statuses {
			if b.Status == s {
				out = append(out, b)
				break
			}
		}
	}
	return out
}

func (r *memoryRepo) UpdateBookingStatus(_ context.Context, id string, update models.BookingStatusUpdate) (*models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bookings[id]
	if !ok || b.Status != update.From {
		return nil, schedulerRepo.ErrStaleStatus
	}
	b.Status = update.To
	b.UpdatedAt = update.UpdatedAt
	if update.ProviderNotes != nil {
		b.ProviderNotes = *update.ProviderNotes
	}
	if update.CustomerNotes != nil {
		b.CustomerNotes = *update.CustomerNotes
	}
	if update.CompletedAt != nil {
		b.CompletedAt = update.CompletedAt
	}
	if update.CancellationTime != nil {
		b.CancellationReason = update.CancellationReason
		b.CancellationBy = update.CancellationBy
		b.CancellationTime = update.CancellationTime
	}
	r.bookings[id] = b
	r.updates++
	return &b, nil
}

func (r *memoryRepo) UpdateBookingFields(_ context.Context, id string, update models.BookingFieldUpdate) (*models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bookings[id]
	if !ok {
		return nil, fmt.Errorf("booking %s: %w", id, models.ErrNotFound)
	}
	if update.ScheduledAt != nil {
		b.ScheduledAt = *update.ScheduledAt
	}
	if update.EndsAt != nil {
		b.EndsAt = *update.EndsAt
	}
	if update.Address != nil {
		b.Address = *update.Address
	}
	if update.SpecialInstructions != nil {
		b.SpecialInstructions = *update.SpecialInstructions
	}
	if update.ProviderNotes != nil {
		b.ProviderNotes = *update.ProviderNotes
	}
	if update.CustomerNotes != nil {
		b.CustomerNotes = *update.CustomerNotes
	}
	b.UpdatedAt = update.UpdatedAt
	r.bookings[id] = b
	r.updates++
	return &b, nil
}

func (r *memoryRepo) UpdatePaymentStatus(_ context.Context, id string, status models.PaymentStatus) (*models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bookings[id]
	if !ok {
		return nil, fmt.Errorf("booking %s: %w", id, models.ErrNotFound)
	}
	b.PaymentStatus = status
	r.bookings[id] = b
	return &b, nil
}

func (r *memoryRepo) ListBookings(_ context.Context, filter models.BookingFilter) ([]models.Booking, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var matched []models.Booking
	for _, b := range r.bookings {
		if filter.CustomerID != "" && b.CustomerID != filter.CustomerID {
			continue
		}
		if filter.ProviderID != "" && b.ProviderID != filter.ProviderID {
			continue
		}
		if filter.Status != "" && b.Status != filter.Status {
			continue
		}
		matched = append(matched, b)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].CreatedAt.After(matched[j].CreatedAt) })

	total := int64(len(matched))
	start := (filter.Page - 1) * filter.Limit
	if start >= len(matched) {
		return []models.Booking{}, total, nil
	}
	end := start + filter.Limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[start:end], total, nil
}

func (r *memoryRepo) BookingStats(_ context.Context) (*models.BookingStats, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	byStatus := map[models.BookingStatus]*models.StatusStat{}
	stats := &models.BookingStats{}
	for _, b := range r.bookings {
		stats.Total++
		st, ok := byStatus[b.Status]
		if !ok {
			st = &models.StatusStat{Status: b.Status}
			byStatus[b.Status] = st
		}
		st.Count++
		st.TotalAmount += b.Price
	}
	for _, st := range byStatus {
		stats.ByStatus = append(stats.ByStatus, *st)
	}
	sort.Slice(stats.ByStatus, func(i, j int) bool { return stats.ByStatus[i].Status < stats.ByStatus[j].Status })
	return stats, nil
}

func (r *memoryRepo) CountByProviderAndStatus(_ context.Context, providerID string, statuses []models.BookingStatus) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	all := r.matching(providerID, statuses, func(models.Booking) bool { return true })
	return int64(len(all)), nil
}

func (r *memoryRepo) DeleteBooking(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.bookings[id]; !ok {
		return fmt.Errorf("booking %s: %w", id, models.ErrNotFound)
	}
	delete(r.bookings, id)
	return nil
}

func (r *memoryRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.bookings)
}

// fakeCatalog serves services and addons from maps.
type fakeCatalog struct {
	services map[string]models.Service
	addons   map[string]models.Addon
}

func (c *fakeCatalog) GetServiceByID(_ context.Context, id string) (*models.Service, error) {
	s, ok := c.services[id]
	if !ok {
		return nil, fmt.Errorf("service %s: %w", id, models.ErrNotFound)
	}
	return &s, nil
}

func (c *fakeCatalog) GetAddonByID(_ context.Context, id string) (*models.Addon, error) {
	a, ok := c.addons[id]
	if !ok {
		return nil, fmt.Errorf("addon %s: %w", id, models.ErrNotFound)
	}
	return &a, nil
}

// fakeUsers serves both providers and customers.
type fakeUsers struct {
	users map[string]models.User
}

func (u *fakeUsers) GetByID(_ context.Context, id string) (*models.User, error) {
	user, ok := u.users[id]
	if !ok {
		return nil, fmt.Errorf("user %s: %w", id, models.ErrNotFound)
	}
	return &user, nil
}

func (u *fakeUsers) ListActive(_ context.Context) ([]models.User, error) {
	var out []models.User
	for _, user := range u.users {
		if user.IsActive && (user.Role == models.RoleWorker || user.Role == models.RoleProvider) {
			out = append(out, user)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// fixture wires a service with a cleaning service, two addons, two workers and a customer.
type fixture struct {
	svc     *DefaultBookingService
	repo    *memoryRepo
	catalog *fakeCatalog
	users   *fakeUsers
}

var (
	admin     = models.Actor{ID: "admin-1", Role: models.RoleAdmin}
	manager   = models.Actor{ID: "manager-1", Role: models.RoleManager}
	customer  = models.Actor{ID: "cust-1", Role: models.RoleUser}
	stranger  = models.Actor{ID: "cust-2", Role: models.RoleUser}
	worker    = models.Actor{ID: "worker-1", Role: models.RoleWorker}
	otherWork = models.Actor{ID: "worker-2", Role: models.RoleWorker}

	jan1 = time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
)

func newFixture(bookings ...models.Booking) *fixture {
	catalog := &fakeCatalog{
		services: map[string]models.Service{
			"svc-clean":    {ID: "svc-clean", Name: "Deep clean", Price: 500, Duration: 60, Active: true},
			"svc-retired":  {ID: "svc-retired", Name: "Retired", Price: 100, Duration: 60, Active: false},
			"svc-long":     {ID: "svc-long", Name: "Move out", Price: 900, Duration: 180, Active: true},
			"svc-zero-dur": {ID: "svc-zero-dur", Name: "Broken", Price: 10, Duration: 0, Active: true},
		},
		addons: map[string]models.Addon{
			"A": {ID: "A", Name: "Oven", Price: 100, Active: true},
			"B": {ID: "B", Name: "Fridge", Price: 80, Active: false},
			"C": {ID: "C", Name: "Windows", Price: 25, Active: true},
		},
	}
	users := &fakeUsers{users: map[string]models.User{
		"worker-1": {ID: "worker-1", Name: "Ann", Role: models.RoleWorker, IsActive: true},
		"worker-2": {ID: "worker-2", Name: "Ben", Role: models.RoleWorker, IsActive: true},
		"worker-3": {ID: "worker-3", Name: "Cid", Role: models.RoleWorker, IsActive: false},
		"cust-1":   {ID: "cust-1", Name: "Cathy", Role: models.RoleUser, IsActive: true},
		"cust-off": {ID: "cust-off", Name: "Dora", Role: models.RoleUser, IsActive: false},
		"admin-1":  {ID: "admin-1", Name: "Root", Role: models.RoleAdmin, IsActive: true},
	}}
	repo := newMemoryRepo(bookings...)
	svc := NewBookingService(repo, catalog, users, users, NewLocalProviderLocker(time.Second), nil)
	svc.now = func() time.Time { return jan1.Add(-24 * time.Hour) }
	return &fixture{svc: svc, repo: repo, catalog: catalog, users: users}
}

func validAddress() models.Address {
	return models.Address{Street: "1 Main St", City: "Springfield", State: "IL", ZipCode: "62701"}
}

func createInput(at time.Time) CreateBookingInput {
	return CreateBookingInput{
		ServiceID:   "svc-clean",
		ProviderID:  "worker-1",
		ScheduledAt: at,
		Address:     validAddress(),
	}
}

func activeBooking(id, providerID string, status models.BookingStatus, at time.Time, minutes int) models.Booking {
	return models.Booking{
		ID:              id,
		ServiceID:       "svc-clean",
		CustomerID:      "cust-1",
		ProviderID:      providerID,
		ScheduledAt:     at,
		DurationMinutes: minutes,
		EndsAt:          at.Add(time.Duration(minutes) * time.Minute),
		Status:          status,
		Price:           500,
		PaymentStatus:   models.PaymentPending,
		Address:         validAddress(),
		CreatedAt:       at.Add(-48 * time.Hour),
	}
}

func intPtr(v int) *int { return &v }
func strPtr(v string) *string { return &v }
func floatPtr(v float64) *float64 { return &v }
func timePtr(v time.Time) *time.Time { return &v }
