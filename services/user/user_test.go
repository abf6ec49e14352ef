package user

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"

	userRepo "homeserve/database/repository/user"
	"homeserve/models"
	"homeserve/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryUsers struct {
	mu    sync.Mutex
	users map[string]models.User
}

func newMemoryUsers() *memoryUsers {
	return &memoryUsers{users: make(map[string]models.User)}
}

func (m *memoryUsers) GetByID(_ context.Context, id string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return nil, fmt.Errorf("user %s: %w", id, models.ErrNotFound)
	}
	return &u, nil
}

func (m *memoryUsers) GetByEmail(_ context.Context, email string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	email = strings.ToLower(strings.TrimSpace(email))
	for _, u := range m.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, fmt.Errorf("user %s: %w", email, models.ErrNotFound)
}

func (m *memoryUsers) GetByIDAndRole(ctx context.Context, id string, roles []models.Role) (*models.User, error) {
	u, err := m.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	for _, r := range roles {
		if u.Role == r {
			return u, nil
		}
	}
	return nil, fmt.Errorf("user %s: %w", id, models.ErrNotFound)
}

func (m *memoryUsers) ListByRole(_ context.Context, roles []models.Role, activeOnly bool) ([]models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []models.User{}
	for _, u := range m.users {
		if activeOnly && !u.IsActive {
			continue
		}
		for _, r := range roles {
			if u.Role == r {
				out = append(out, u)
			}
		}
	}
	return out, nil
}

func (m *memoryUsers) Create(_ context.Context, user *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == user.Email {
			return userRepo.ErrDuplicateEmail
		}
	}
	m.users[user.ID] = *user
	return nil
}

func (m *memoryUsers) SetActive(_ context.Context, id string, active bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return fmt.Errorf("user %s: %w", id, models.ErrNotFound)
	}
	u.IsActive = active
	m.users[id] = u
	return nil
}

func (m *memoryUsers) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[id]; !ok {
		return fmt.Errorf("user %s: %w", id, models.ErrNotFound)
	}
	delete(m.users, id)
	return nil
}

type openBookings map[string]int64

func (o openBookings) CountByProviderAndStatus(_ context.Context, providerID string, _ []models.BookingStatus) (int64, error) {
	return o[providerID], nil
}

var (
	admin   = models.Actor{ID: "admin-1", Role: models.RoleAdmin}
	manager = models.Actor{ID: "manager-1", Role: models.RoleManager}
)

func TestRegisterAndLogin(t *testing.T) {
	ctx := context.Background()
	svc := NewUserService(newMemoryUsers(), nil)

	resp, err := svc.Register(ctx, RegisterRequest{Name: "Cathy", Email: " Cathy@Example.com ", Password: "correct-horse"})
	require.NoError(t, err)
	assert.Equal(t, models.RoleUser, resp.Role)
	assert.Equal(t, "cathy@example.com", resp.Email)

	claims, err := utils.ExtractClaims(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, resp.ID, claims.Subject)
	assert.Equal(t, "user", claims.Role)

	_, err = svc.Register(ctx, RegisterRequest{Name: "Again", Email: "cathy@example.com", Password: "another-pass"})
	assert.ErrorIs(t, err, userRepo.ErrDuplicateEmail)

	login, err := svc.Login(ctx, "CATHY@example.com", "correct-horse")
	require.NoError(t, err)
	assert.Equal(t, resp.ID, login.ID)

	_, err = svc.Login(ctx, "cathy@example.com", "wrong-horse")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(ctx, "nobody@example.com", "correct-horse")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	require.NoError(t, svc.SetActive(ctx, admin, resp.ID, false))
	_, err = svc.Login(ctx, "cathy@example.com", "correct-horse")
	assert.ErrorIs(t, err, ErrAccountDisabled)
}

func TestRegisterValidation(t *testing.T) {
	svc := NewUserService(newMemoryUsers(), nil)
	cases := []RegisterRequest{
		{Email: "a@b.co", Password: "long-enough"},
		{Name: "A", Email: "not-an-email", Password: "long-enough"},
		{Name: "A", Email: "a@b.co", Password: "short"},
	}
	for _, req := range cases {
		_, err := svc.Register(context.Background(), req)
		var verr ValidationError
		assert.ErrorAs(t, err, &verr, "%+v", req)
	}
}

func TestCreateAccount(t *testing.T) {
	ctx := context.Background()
	svc := NewUserService(newMemoryUsers(), nil)
	worker := CreateAccountRequest{
		RegisterRequest: RegisterRequest{Name: " Ann ", Email: " Ann@Example.com", Password: "worker-pass"},
		Role:            models.RoleWorker,
	}

	u, err := svc.CreateAccount(ctx, manager, worker)
	require.NoError(t, err)
	assert.Equal(t, models.RoleWorker, u.Role)
	assert.Equal(t, "ann@example.com", u.Email)
	assert.Equal(t, "Ann", u.Name)
	assert.True(t, u.IsActive)

	mgr := CreateAccountRequest{
		RegisterRequest: RegisterRequest{Name: "Max", Email: "max@example.com", Password: "manager-pass"},
		Role:            models.RoleManager,
	}
	_, err = svc.CreateAccount(ctx, manager, mgr)
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = svc.CreateAccount(ctx, models.Actor{ID: "u", Role: models.RoleUser}, worker)
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = svc.CreateAccount(ctx, admin, mgr)
	assert.NoError(t, err)

	mgr.Role = "overlord"
	mgr.Email = "o@example.com"
	_, err = svc.CreateAccount(ctx, admin, mgr)
	var verr ValidationError
	assert.ErrorAs(t, err, &verr)
}

func TestDeleteUser(t *testing.T) {
	ctx := context.Background()
	repo := newMemoryUsers()
	repo.users["w-busy"] = models.User{ID: "w-busy", Role: models.RoleWorker, Email: "busy@example.com"}
	repo.users["w-free"] = models.User{ID: "w-free", Role: models.RoleWorker, Email: "free@example.com"}
	svc := NewUserService(repo, openBookings{"w-busy": 2})

	assert.ErrorIs(t, svc.DeleteUser(ctx, admin, "w-busy"), ErrHasActiveBookings)
	assert.ErrorIs(t, svc.DeleteUser(ctx, manager, "w-free"), ErrForbidden)
	require.NoError(t, svc.DeleteUser(ctx, admin, "w-free"))
	assert.ErrorIs(t, svc.DeleteUser(ctx, admin, "w-free"), models.ErrNotFound)
}

func TestListUsers(t *testing.T) {
	ctx := context.Background()
	repo := newMemoryUsers()
	repo.users["w1"] = models.User{ID: "w1", Role: models.RoleWorker}
	repo.users["c1"] = models.User{ID: "c1", Role: models.RoleUser}
	svc := NewUserService(repo, nil)

	users, err := svc.ListUsers(ctx, manager, models.RoleWorker)
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "w1", users[0].ID)

	all, err := svc.ListUsers(ctx, admin, "")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	_, err = svc.ListUsers(ctx, models.Actor{ID: "c1", Role: models.RoleUser}, "")
	assert.ErrorIs(t, err, ErrForbidden)
}

type recordedInvalidations []string

func (r *recordedInvalidations) Invalidate(_ context.Context, userID string) {
	*r = append(*r, userID)
}

func TestAccountChangesDropCachedSessions(t *testing.T) {
	ctx := context.Background()
	repo := newMemoryUsers()
	repo.users["w1"] = models.User{ID: "w1", Role: models.RoleWorker, Email: "w1@example.com", IsActive: true}
	repo.users["w2"] = models.User{ID: "w2", Role: models.RoleWorker, Email: "w2@example.com", IsActive: true}
	sessions := &recordedInvalidations{}
	svc := NewUserService(repo, nil)
	svc.Sessions = sessions

	require.NoError(t, svc.SetActive(ctx, manager, "w1", false))
	require.NoError(t, svc.DeleteUser(ctx, admin, "w2"))
	assert.Equal(t, recordedInvalidations{"w1", "w2"}, *sessions)

	assert.Error(t, svc.SetActive(ctx, manager, "ghost", false))
	assert.ErrorIs(t, svc.SetActive(ctx, models.Actor{ID: "u", Role: models.RoleUser}, "w1", true), ErrForbidden)
	assert.Len(t, *sessions, 2)
}
