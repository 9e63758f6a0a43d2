package service

import (
	"context"
	"fmt"

	"github.com/pkordes/triplog/internal/domain"
	"github.com/pkordes/triplog/internal/repo"
)

// PreferencesService reads and updates the display preferences.
type PreferencesService struct {
	repo repo.PreferencesRepo
}

// NewPreferencesService constructs a PreferencesService.
func NewPreferencesService(r repo.PreferencesRepo) *PreferencesService {
	return &PreferencesService{repo: r}
}

// Get returns the current preferences.
func (s *PreferencesService) Get(ctx context.Context) (domain.Preferences, error) {
	p, err := s.repo.Load(ctx)
	if err != nil {
		return domain.Preferences{}, fmt.Errorf("service.PreferencesService.Get: %w", err)
	}
	return p, nil
}

// Update changes the palette and/or mode; a nil argument keeps the current
// value. Returns domain.ErrValidation for an unknown palette or mode.
func (s *PreferencesService) Update(ctx context.Context, palette, mode *string) (domain.Preferences, error) {
	p, err := s.repo.Load(ctx)
	if err != nil {
		return domain.Preferences{}, fmt.Errorf("service.PreferencesService.Update: %w", err)
	}
	if palette != nil {
		if p.Palette, err = domain.ParsePalette(*palette); err != nil {
			return domain.Preferences{}, fmt.Errorf("service.PreferencesService.Update: %w", err)
		}
	}
	if mode != nil {
		if p.Mode, err = domain.ParseMode(*mode); err != nil {
			return domain.Preferences{}, fmt.Errorf("service.PreferencesService.Update: %w", err)
		}
	}
	if err := s.repo.Save(ctx, p); err != nil {
		return domain.Preferences{}, fmt.Errorf("service.PreferencesService.Update: %w", err)
	}
	return p, nil
}
