package services

import (
	"fmt"
	"sort"
	"strings"

	"github.com/jeantessier/depfind-stamp/internal/domain/entities"
)

// StampStatus represents the validity of a manifest read back from an artifact
type StampStatus string

// Stamp validation statuses
const (
	StatusReady                StampStatus = "ready"
	StatusMissingAttributes    StampStatus = "missing_attributes"
	StatusUnexpectedAttributes StampStatus = "unexpected_attributes"
	StatusVersionMismatch      StampStatus = "version_mismatch"
	StatusDateMismatch         StampStatus = "date_mismatch"
	StatusMissingMarker        StampStatus = "missing_marker"
)

// Attributes the jar format itself may add next to the stamp
var formatAttributes = map[string]bool{
	"Manifest-Version": true,
	"Created-By":       true,
}

// FormatAttributes returns the attribute names the jar format adds next to the stamp
func FormatAttributes() []string {
	names := make([]string, 0, len(formatAttributes))
	for name := range formatAttributes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// StampValidation contains the validation result for a stamped manifest
type StampValidation struct {
	Status                StampStatus
	MissingAttributes     []string
	UnexpectedAttributes  []string
	SpecificationVersion  string
	ImplementationVersion string
	SpecificationDate     string
	ImplementationDate    string
	MarkerTarget          string
	MarkerValue           string
}

// IsReady returns true if the manifest carries a complete, consistent stamp
func (v *StampValidation) IsReady() bool {
	return v.Status == StatusReady
}

// ErrorMessage returns a human-readable error message if not ready
func (v *StampValidation) ErrorMessage() string {
	switch v.Status {
	case StatusReady:
		return ""
	case StatusMissingAttributes:
		return fmt.Sprintf("Missing attributes: %s", strings.Join(v.MissingAttributes, ", "))
	case StatusUnexpectedAttributes:
		return fmt.Sprintf("Unexpected attributes: %s", strings.Join(v.UnexpectedAttributes, ", "))
	case StatusVersionMismatch:
		return fmt.Sprintf("Version mismatch (specification: %q, implementation: %q)",
			v.SpecificationVersion, v.ImplementationVersion)
	case StatusDateMismatch:
		return fmt.Sprintf("Date mismatch (specification: %q, implementation: %q)",
			v.SpecificationDate, v.ImplementationDate)
	case StatusMissingMarker:
		if v.MarkerValue != "" {
			return fmt.Sprintf("Marker entry %s has %s: %s, want %s",
				v.MarkerTarget, entities.AttrJavaBean, v.MarkerValue, entities.JavaBeanValue)
		}
		return fmt.Sprintf("Marker entry %s is missing %s: %s",
			v.MarkerTarget, entities.AttrJavaBean, entities.JavaBeanValue)
	default:
		return "Unknown status"
	}
}

// ValidationService checks manifests read back from artifacts
type ValidationService struct{}

// NewValidationService creates a new validation service
func NewValidationService() *ValidationService {
	return &ValidationService{}
}

// ValidateManifest checks that m carries the fourteen stamp attributes, that the
// specification and implementation values agree, and that the marker entry of
// profile is flagged. A nil profile means the default profile.
func (s *ValidationService) ValidateManifest(m *entities.Manifest, profile *entities.Profile) *StampValidation {
	if profile == nil {
		profile = entities.DefaultProfile()
	}

	validation := &StampValidation{MarkerTarget: profile.BeanMarkerTarget}

	validation.MissingAttributes = s.findMissingAttributes(m)
	validation.UnexpectedAttributes = s.findUnexpectedAttributes(m)

	validation.SpecificationVersion, _ = m.Get(entities.AttrSpecificationVersion)
	validation.ImplementationVersion, _ = m.Get(entities.AttrImplementationVersion)
	validation.SpecificationDate, _ = m.Get(entities.AttrSpecificationDate)
	validation.ImplementationDate, _ = m.Get(entities.AttrImplementationDate)

	markerOK := false
	if section, ok := m.Section(profile.BeanMarkerTarget); ok {
		validation.MarkerValue, _ = section.Get(entities.AttrJavaBean)
		markerOK = strings.EqualFold(validation.MarkerValue, entities.JavaBeanValue)
	}

	switch {
	case len(validation.MissingAttributes) > 0:
		validation.Status = StatusMissingAttributes
	case len(validation.UnexpectedAttributes) > 0:
		validation.Status = StatusUnexpectedAttributes
	case validation.SpecificationVersion != validation.ImplementationVersion:
		validation.Status = StatusVersionMismatch
	case validation.SpecificationDate != validation.ImplementationDate:
		validation.Status = StatusDateMismatch
	case !markerOK:
		validation.Status = StatusMissingMarker
	default:
		validation.Status = StatusReady
	}

	return validation
}

func (s *ValidationService) findMissingAttributes(m *entities.Manifest) []string {
	var missing []string
	for _, key := range entities.StampAttributeKeys {
		if _, ok := m.Get(key); !ok {
			missing = append(missing, key)
		}
	}
	return missing
}

func (s *ValidationService) findUnexpectedAttributes(m *entities.Manifest) []string {
	known := make(map[string]bool, len(entities.StampAttributeKeys))
	for _, key := range entities.StampAttributeKeys {
		known[key] = true
	}

	var unexpected []string
	for _, a := range m.Main {
		if !known[a.Name] && !formatAttributes[a.Name] {
			unexpected = append(unexpected, a.Name)
		}
	}
	return unexpected
}
