package catalog

import (
	"context"
	"fmt"
	"testing"

	"homeserve/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubRepo records catalog writes in maps.
type stubRepo struct {
	services map[string]models.Service
	addons   map[string]models.Addon
	lastOnly bool
}

func newStubRepo() *stubRepo {
	return &stubRepo{services: map[string]models.Service{}, addons: map[string]models.Addon{}}
}

func (r *stubRepo) GetServiceByID(_ context.Context, id string) (*models.Service, error) {
	s, ok := r.services[id]
	if !ok {
		return nil, fmt.Errorf("service %s: %w", id, models.ErrNotFound)
	}
	return &s, nil
}

func (r *stubRepo) ListServices(_ context.Context, activeOnly bool) ([]models.Service, error) {
	r.lastOnly = activeOnly
	out := []models.Service{}
	for _, s := range r.services {
		if !activeOnly || s.Active {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *stubRepo) CreateService(_ context.Context, s *models.Service) error {
	r.services[s.ID] = *s
	return nil
}

func (r *stubRepo) SetServiceActive(_ context.Context, id string, active bool) error {
	s, ok := r.services[id]
	if !ok {
		return models.ErrNotFound
	}
	s.Active = active
	r.services[id] = s
	return nil
}

func (r *stubRepo) GetAddonByID(_ context.Context, id string) (*models.Addon, error) {
	a, ok := r.addons[id]
	if !ok {
		return nil, fmt.Errorf("addon %s: %w", id, models.ErrNotFound)
	}
	return &a, nil
}

func (r *stubRepo) ListAddons(_ context.Context, activeOnly bool) ([]models.Addon, error) {
	r.lastOnly = activeOnly
	out := []models.Addon{}
	for _, a := range r.addons {
		if !activeOnly || a.Active {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r *stubRepo) CreateAddon(_ context.Context, a *models.Addon) error {
	r.addons[a.ID] = *a
	return nil
}

func (r *stubRepo) SetAddonActive(_ context.Context, id string, active bool) error {
	a, ok := r.addons[id]
	if !ok {
		return models.ErrNotFound
	}
	a.Active = active
	r.addons[id] = a
	return nil
}

func (r *stubRepo) UpdateService(_ context.Context, s *models.Service) error {
	if _, ok := r.services[s.ID]; !ok {
		return models.ErrNotFound
	}
	r.services[s.ID] = *s
	return nil
}

func (r *stubRepo) DeleteService(_ context.Context, id string) error {
	if _, ok := r.services[id]; !ok {
		return models.ErrNotFound
	}
	delete(r.services, id)
	return nil
}

func (r *stubRepo) SetServiceRating(_ context.Context, id string, rating models.Rating) error {
	s, ok := r.services[id]
	if !ok {
		return models.ErrNotFound
	}
	s.Rating = rating
	r.services[id] = s
	return nil
}

func (r *stubRepo) UpdateAddon(_ context.Context, a *models.Addon) error {
	if _, ok := r.addons[a.ID]; !ok {
		return models.ErrNotFound
	}
	r.addons[a.ID] = *a
	return nil
}

func (r *stubRepo) DeleteAddon(_ context.Context, id string) error {
	if _, ok := r.addons[id]; !ok {
		return models.ErrNotFound
	}
	delete(r.addons, id)
	return nil
}

func TestCatalog(t *testing.T) {
	ctx := context.Background()
	repo := newStubRepo()
	svc := NewCatalogService(repo)
	admin := models.Actor{ID: "a1", Role: models.RoleAdmin}
	customer := models.Actor{ID: "c1", Role: models.RoleUser}

	service, err := svc.CreateService(ctx, admin, ServiceRequest{Name: " Deep clean ", Price: 500, Duration: 60})
	require.NoError(t, err)
	assert.Equal(t, "Deep clean", service.Name)
	assert.True(t, service.Active)
	assert.Equal(t, "a1", service.CreatedBy)

	_, err = svc.CreateService(ctx, admin, ServiceRequest{Name: "Too short", Price: 10, Duration: 5})
	var verr ValidationError
	assert.ErrorAs(t, err, &verr)

	_, err = svc.CreateService(ctx, customer, ServiceRequest{Name: "Nope", Duration: 60})
	assert.ErrorIs(t, err, ErrForbidden)

	addon, err := svc.CreateAddon(ctx, admin, AddonRequest{Name: "Oven", Price: 100})
	require.NoError(t, err)

	require.NoError(t, svc.SetAddonActive(ctx, admin, addon.ID, false))
	assert.ErrorIs(t, svc.SetAddonActive(ctx, customer, addon.ID, true), ErrForbidden)

	public, err := svc.ListAddons(ctx, customer)
	require.NoError(t, err)
	assert.True(t, repo.lastOnly)
	assert.Empty(t, public)

	all, err := svc.ListAddons(ctx, admin)
	require.NoError(t, err)
	assert.False(t, repo.lastOnly)
	assert.Len(t, all, 1)

	got, err := svc.GetService(ctx, service.ID)
	require.NoError(t, err)
	assert.Equal(t, 60, got.Duration)

	_, err = svc.GetAddon(ctx, "missing")
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func ptr[T any](v T) *T { return &v }

func TestCatalogUpdateAndDelete(t *testing.T) {
	ctx := context.Background()
	repo := newStubRepo()
	svc := NewCatalogService(repo)
	admin := models.Actor{ID: "a1", Role: models.RoleAdmin}
	manager := models.Actor{ID: "m1", Role: models.RoleManager}
	customer := models.Actor{ID: "c1", Role: models.RoleUser}

	service, err := svc.CreateService(ctx, admin, ServiceRequest{Name: "Deep clean", Price: 500, Duration: 60})
	require.NoError(t, err)

	t.Run("patch keeps unset fields", func(t *testing.T) {
		updated, err := svc.UpdateService(ctx, manager, service.ID, ServicePatch{Price: ptr(650.0), Name: ptr(" Deeper clean ")})
		require.NoError(t, err)
		assert.Equal(t, "Deeper clean", updated.Name)
		assert.Equal(t, 650.0, updated.Price)
		assert.Equal(t, 60, updated.Duration)
		assert.Equal(t, 650.0, repo.services[service.ID].Price)
	})

	t.Run("zero duration is rejected", func(t *testing.T) {
		_, err := svc.UpdateService(ctx, admin, service.ID, ServicePatch{Duration: ptr(0)})
		var verr ValidationError
		assert.ErrorAs(t, err, &verr)
		assert.Equal(t, 60, repo.services[service.ID].Duration)
	})

	t.Run("blank name is rejected", func(t *testing.T) {
		_, err := svc.UpdateService(ctx, admin, service.ID, ServicePatch{Name: ptr("   ")})
		var verr ValidationError
		assert.ErrorAs(t, err, &verr)
	})

	t.Run("customers cannot edit", func(t *testing.T) {
		_, err := svc.UpdateService(ctx, customer, service.ID, ServicePatch{Price: ptr(1.0)})
		assert.ErrorIs(t, err, ErrForbidden)
	})

	t.Run("unknown service", func(t *testing.T) {
		_, err := svc.UpdateService(ctx, admin, "missing", ServicePatch{Price: ptr(1.0)})
		assert.ErrorIs(t, err, models.ErrNotFound)
		assert.ErrorIs(t, svc.DeleteService(ctx, admin, "missing"), models.ErrNotFound)
	})

	t.Run("only admins delete", func(t *testing.T) {
		assert.ErrorIs(t, svc.DeleteService(ctx, manager, service.ID), ErrAdminOnly)
		require.NoError(t, svc.DeleteService(ctx, admin, service.ID))
		assert.Empty(t, repo.services)
	})

	t.Run("addons", func(t *testing.T) {
		addon, err := svc.CreateAddon(ctx, admin, AddonRequest{Name: "Oven", Price: 100, Duration: 30})
		require.NoError(t, err)

		updated, err := svc.UpdateAddon(ctx, manager, addon.ID, AddonPatch{Duration: ptr(0)})
		require.NoError(t, err)
		assert.Equal(t, 0, updated.Duration)
		assert.Equal(t, 100.0, updated.Price)

		assert.ErrorIs(t, svc.DeleteAddon(ctx, manager, addon.ID), ErrAdminOnly)
		require.NoError(t, svc.DeleteAddon(ctx, admin, addon.ID))
		_, err = svc.GetAddon(ctx, addon.ID)
		assert.ErrorIs(t, err, models.ErrNotFound)
	})
}
