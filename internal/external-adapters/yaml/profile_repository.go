package yaml

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jeantessier/depfind-stamp/internal/domain/entities"
	"github.com/jeantessier/depfind-stamp/internal/domain/interfaces"
)

// ErrProfileNotFound is returned when no profile file exists for a name
var ErrProfileNotFound = errors.New("profile not found")

// ProfileRepository implements repositories.ProfileRepository using YAML files
type ProfileRepository struct {
	profilesDir string
	parser      *ProfileParser
	logger      interfaces.Logger
}

// NewProfileRepository creates a new YAML-based profile repository
func NewProfileRepository(profilesDir string, logger interfaces.Logger) *ProfileRepository {
	if logger == nil {
		logger = &interfaces.NoOpLogger{}
	}
	return &ProfileRepository{
		profilesDir: profilesDir,
		parser:      NewProfileParser(),
		logger:      logger,
	}
}

// GetProfile retrieves a stamp profile by name. The empty name, and the name of
// the built-in profile when no file overrides it, return the default profile.
func (r *ProfileRepository) GetProfile(_ context.Context, name string) (*entities.Profile, error) {
	defaultProfile := entities.DefaultProfile()
	if name == "" {
		return defaultProfile, nil
	}
	if strings.ContainsAny(name, `/\`) || name == "." || name == ".." {
		return nil, fmt.Errorf("invalid profile name %q", name)
	}

	filePath := filepath.Join(r.profilesDir, name+".yml")

	if _, err := os.Stat(filePath); os.IsNotExist(err) {
		if name == defaultProfile.Name {
			return defaultProfile, nil
		}
		return nil, fmt.Errorf("%w: %s", ErrProfileNotFound, name)
	}

	return r.parser.ParseFile(filePath)
}

// ListProfiles returns all available stamp profiles
func (r *ProfileRepository) ListProfiles(_ context.Context) ([]*entities.Profile, error) {
	entries, err := os.ReadDir(r.profilesDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read profiles directory: %w", err)
	}

	profiles := make([]*entities.Profile, 0)
	for _, entry := range entries {
		// Skip non-YAML files
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".yml") {
			continue
		}

		filePath := filepath.Join(r.profilesDir, entry.Name())
		profile, err := r.parser.ParseFile(filePath)
		if err != nil {
			// Log warning but continue processing other files
			r.logger.Warn("skipping unparseable profile",
				interfaces.F("file", entry.Name()),
				interfaces.F("error", err))
			continue
		}

		profiles = append(profiles, profile)
	}

	return profiles, nil
}
