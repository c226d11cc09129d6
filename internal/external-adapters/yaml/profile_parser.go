// Package yaml provides YAML-based stamp profile parsing and repository implementations.
package yaml

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/jeantessier/depfind-stamp/internal/domain/entities"
)

// yamlProfile represents the raw YAML structure
type yamlProfile struct {
	Name           string             `yaml:"name"`
	Specification  yamlSpecification  `yaml:"specification"`
	Implementation yamlImplementation `yaml:"implementation"`
	Copyright      yamlCopyright      `yaml:"copyright"`
	BeanMarker     string             `yaml:"bean_marker"`
}

type yamlSpecification struct {
	Vendor string `yaml:"vendor"`
	Title  string `yaml:"title"`
}

type yamlImplementation struct {
	Vendor string `yaml:"vendor"`
	Title  string `yaml:"title"`
	URL    string `yaml:"url"`
}

type yamlCopyright struct {
	Holder string `yaml:"holder"`
	Date   string `yaml:"date"`
}

// ProfileParser parses YAML profile files
type ProfileParser struct{}

// NewProfileParser creates a new YAML parser
func NewProfileParser() *ProfileParser {
	return &ProfileParser{}
}

// ParseFile parses a YAML profile file into a Profile entity
func (p *ProfileParser) ParseFile(filePath string) (*entities.Profile, error) {
	//nolint:gosec // G304: filePath is profile path from repository
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filePath, err)
	}

	return p.Parse(data)
}

// Parse parses YAML bytes into a Profile entity. Fields left out of the
// document keep the values of the default profile.
func (p *ProfileParser) Parse(data []byte) (*entities.Profile, error) {
	var yamlProf yamlProfile
	if err := yaml.Unmarshal(data, &yamlProf); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if yamlProf.Name == "" {
		return nil, fmt.Errorf("profile must have a name")
	}

	profile := entities.DefaultProfile()
	profile.Name = yamlProf.Name
	override(&profile.SpecificationVendor, yamlProf.Specification.Vendor)
	override(&profile.SpecificationTitle, yamlProf.Specification.Title)
	override(&profile.ImplementationVendor, yamlProf.Implementation.Vendor)
	override(&profile.ImplementationTitle, yamlProf.Implementation.Title)
	override(&profile.ImplementationURL, yamlProf.Implementation.URL)
	override(&profile.CopyrightHolder, yamlProf.Copyright.Holder)
	override(&profile.CopyrightDate, yamlProf.Copyright.Date)
	override(&profile.BeanMarkerTarget, yamlProf.BeanMarker)

	if err := validateLiterals(profile); err != nil {
		return nil, err
	}
	if err := validateMarker(profile.BeanMarkerTarget); err != nil {
		return nil, err
	}

	return profile, nil
}

func override(dst *string, value string) {
	if value != "" {
		*dst = value
	}
}

// validateLiterals rejects values that cannot be written on a single manifest line
func validateLiterals(profile *entities.Profile) error {
	literals := []struct {
		field string
		value string
	}{
		{"specification.vendor", profile.SpecificationVendor},
		{"specification.title", profile.SpecificationTitle},
		{"implementation.vendor", profile.ImplementationVendor},
		{"implementation.title", profile.ImplementationTitle},
		{"implementation.url", profile.ImplementationURL},
		{"copyright.holder", profile.CopyrightHolder},
		{"copyright.date", profile.CopyrightDate},
		{"bean_marker", profile.BeanMarkerTarget},
	}
	for _, l := range literals {
		if strings.ContainsAny(l.value, "\r\n\x00") {
			return fmt.Errorf("%s cannot contain line breaks or NUL", l.field)
		}
	}
	return nil
}

// validateMarker rejects marker targets that cannot name a single jar entry
func validateMarker(target string) error {
	switch {
	case strings.TrimSpace(target) == "":
		return fmt.Errorf("bean_marker cannot be blank")
	case strings.HasSuffix(target, "/"):
		return fmt.Errorf("bean_marker %q names a directory, not an entry", target)
	case strings.HasPrefix(target, "/"):
		return fmt.Errorf("bean_marker %q must be relative to the jar root", target)
	}
	return nil
}

// Marshal renders a value as YAML
func Marshal(v interface{}) ([]byte, error) {
	data, err := yaml.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal YAML: %w", err)
	}
	return data, nil
}
