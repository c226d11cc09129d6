// Package repositories defines interfaces for data access layers.
package repositories

import (
	"context"

	"github.com/jeantessier/depfind-stamp/internal/domain/entities"
)

// ProfileRepository defines the interface for accessing stamp profiles
type ProfileRepository interface {
	// GetProfile retrieves a stamp profile by name
	GetProfile(ctx context.Context, name string) (*entities.Profile, error)

	// ListProfiles returns all available stamp profiles
	ListProfiles(ctx context.Context) ([]*entities.Profile, error)
}
