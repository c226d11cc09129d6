// Package config loads the process configuration once at start-up.
package config

import (
	"fmt"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/jeantessier/depfind-stamp/internal/domain/services"
)

// Environment variables read at start-up
const (
	EnvVersion           = "DEPENDENCYFINDER_VERSION"
	EnvReleaseDate       = "DEPENDENCYFINDER_RELEASE_DATE"
	EnvSigningPassphrase = "DEPENDENCYFINDER_SIGNING_PASSPHRASE"
	EnvLogLevel          = "DEPENDENCYFINDER_LOG_LEVEL"
	EnvProfilesDir       = "DEPENDENCYFINDER_PROFILES_DIR"
	EnvProfile           = "DEPENDENCYFINDER_PROFILE"
)

// Viper keys
const (
	keyVersion           = "version"
	keyReleaseDate       = "release_date"
	keySigningPassphrase = "signing_passphrase"
	keyLogLevel          = "log_level"
	keyProfilesDir       = "profiles_dir"
	keyProfile           = "profile"
)

// Flag names bound to config keys
const (
	FlagReleaseVersion = "release-version"
	FlagReleaseDate    = "release-date"
	FlagLogLevel       = "log-level"
	FlagProfilesDir    = "profiles-dir"
	FlagProfile        = "profile"
)

// Config holds every externally provided setting. Values are kept verbatim;
// fallbacks for the version and date are applied by the stamper.
type Config struct {
	Version           string
	ReleaseDate       string
	SigningPassphrase string
	LogLevel          string
	ProfilesDir       string
	Profile           string
}

// StampConfig returns the stamper's view of the configuration
func (c *Config) StampConfig() services.StampConfig {
	return services.StampConfig{
		Version:     c.Version,
		ReleaseDate: c.ReleaseDate,
	}
}

// Load reads the configuration from the environment, with explicitly set
// flags taking precedence. flags may be nil.
func Load(flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()

	v.SetDefault(keyLogLevel, "info")
	v.SetDefault(keyProfilesDir, "profiles")

	bindings := map[string]string{
		keyVersion:           EnvVersion,
		keyReleaseDate:       EnvReleaseDate,
		keySigningPassphrase: EnvSigningPassphrase,
		keyLogLevel:          EnvLogLevel,
		keyProfilesDir:       EnvProfilesDir,
		keyProfile:           EnvProfile,
	}
	for key, env := range bindings {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("failed to bind %s: %w", env, err)
		}
	}

	if flags != nil {
		flagKeys := map[string]string{
			FlagReleaseVersion: keyVersion,
			FlagReleaseDate:    keyReleaseDate,
			FlagLogLevel:       keyLogLevel,
			FlagProfilesDir:    keyProfilesDir,
			FlagProfile:        keyProfile,
		}
		for name, key := range flagKeys {
			flag := flags.Lookup(name)
			if flag == nil {
				continue
			}
			if err := v.BindPFlag(key, flag); err != nil {
				return nil, fmt.Errorf("failed to bind --%s: %w", name, err)
			}
		}
	}

	return &Config{
		Version:           v.GetString(keyVersion),
		ReleaseDate:       v.GetString(keyReleaseDate),
		SigningPassphrase: v.GetString(keySigningPassphrase),
		LogLevel:          v.GetString(keyLogLevel),
		ProfilesDir:       v.GetString(keyProfilesDir),
		Profile:           v.GetString(keyProfile),
	}, nil
}
