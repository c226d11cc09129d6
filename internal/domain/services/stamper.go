// Package services implements the stamping rules of the domain.
package services

import (
	"github.com/jeantessier/depfind-stamp/internal/domain/entities"
	"github.com/jeantessier/depfind-stamp/internal/domain/interfaces/gateways"
)

// StampConfig carries the optional overrides read once at process start
type StampConfig struct {
	Version     string
	ReleaseDate string
}

// Resolve returns the override verbatim, or "unknown" when it is empty
func Resolve(override string) string {
	if override == "" {
		return entities.UnknownValue
	}
	return override
}

// StampService builds manifest stamps
type StampService struct {
	probe gateways.HostProbe
}

// NewStampService creates a stamp service reading compiler identity from probe
func NewStampService(probe gateways.HostProbe) *StampService {
	return &StampService{probe: probe}
}

// Stamp builds the manifest stamp for one build. A nil profile means the default profile.
func (s *StampService) Stamp(cfg StampConfig, profile *entities.Profile) entities.ManifestStamp {
	if profile == nil {
		profile = entities.DefaultProfile()
	}

	version := Resolve(cfg.Version)
	date := Resolve(cfg.ReleaseDate)
	compiler := s.probe.CompilerInfo()

	return entities.ManifestStamp{
		SpecificationVendor:  profile.SpecificationVendor,
		SpecificationTitle:   profile.SpecificationTitle,
		SpecificationVersion: version,
		SpecificationDate:    date,

		ImplementationVendor:  profile.ImplementationVendor,
		ImplementationTitle:   profile.ImplementationTitle,
		ImplementationVersion: version,
		ImplementationDate:    date,
		ImplementationURL:     profile.ImplementationURL,

		CopyrightHolder: profile.CopyrightHolder,
		CopyrightDate:   profile.CopyrightDate,

		CompilerVendor:  compiler.Vendor,
		CompilerTitle:   compiler.Title,
		CompilerVersion: compiler.Version,

		BeanMarkerTarget: profile.BeanMarkerTarget,
	}
}
