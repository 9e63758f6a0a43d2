package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/triplog/internal/domain"
	"github.com/pkordes/triplog/internal/repo"
	"github.com/pkordes/triplog/internal/service"
)

func newPreferencesService(t *testing.T) *service.PreferencesService {
	t.Helper()
	slots, err := repo.NewFileSlotRepo(t.TempDir())
	require.NoError(t, err)
	return service.NewPreferencesService(repo.NewPreferencesStore(slots))
}

func ptr(s string) *string { return &s }

func TestPreferencesService_Get_Defaults(t *testing.T) {
	svc := newPreferencesService(t)

	got, err := svc.Get(context.Background())

	require.NoError(t, err)
	assert.Equal(t, domain.DefaultPreferences, got)
}

func TestPreferencesService_Update_Partial(t *testing.T) {
	svc := newPreferencesService(t)
	ctx := context.Background()

	got, err := svc.Update(ctx, ptr("aqua"), nil)
	require.NoError(t, err)
	assert.Equal(t, domain.Preferences{Palette: domain.PaletteAqua, Mode: domain.ModeDark}, got)

	got, err = svc.Update(ctx, nil, ptr("light"))
	require.NoError(t, err)
	assert.Equal(t, domain.Preferences{Palette: domain.PaletteAqua, Mode: domain.ModeLight}, got)

	reloaded, err := svc.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, got, reloaded)
}

func TestPreferencesService_Update_Invalid(t *testing.T) {
	svc := newPreferencesService(t)
	ctx := context.Background()

	_, err := svc.Update(ctx, ptr("rainbow"), nil)
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = svc.Update(ctx, nil, ptr("dim"))
	assert.ErrorIs(t, err, domain.ErrValidation)

	got, err := svc.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultPreferences, got, "a rejected update stores nothing")
}

func TestNew_WiresServicesOverSlots(t *testing.T) {
	slots, err := repo.NewFileSlotRepo(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	svcs, err := service.New(ctx, slots, discardLogger())
	require.NoError(t, err)
	created, err := svcs.Trips.Create(ctx, domain.TripFields{Name: "Kyoto"})
	require.NoError(t, err)

	// A second wiring over the same slots sees the persisted trip.
	again, err := service.New(ctx, slots, discardLogger())
	require.NoError(t, err)
	got, err := again.Trips.Find(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Kyoto", got.Name)
}
