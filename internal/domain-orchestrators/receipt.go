package orchestrators

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
)

// StampReceipt is the JSON record of one stamping run
type StampReceipt struct {
	RunID           string            `json:"run_id"`
	StampedAt       string            `json:"stamped_at"`
	Jar             string            `json:"jar"`
	Profile         string            `json:"profile"`
	Attributes      map[string]string `json:"attributes"`
	MarkerEntry     string            `json:"marker_entry"`
	MarkerPresent   bool              `json:"marker_present"`
	EntryCount      int               `json:"entry_count"`
	Dropped         []string          `json:"dropped_attributes,omitempty"`
	SHA256          string            `json:"sha256,omitempty"`
	SHA512          string            `json:"sha512,omitempty"`
	Signature       string            `json:"signature,omitempty"`
	DurationSeconds float64           `json:"duration_seconds"`
}

// NewStampReceipt builds a receipt for a finished run
func NewStampReceipt(result *StampResult, now time.Time) *StampReceipt {
	receipt := &StampReceipt{
		RunID:           uuid.NewString(),
		StampedAt:       now.UTC().Format(time.RFC3339),
		Attributes:      result.Stamp.AttributeMap(),
		MarkerEntry:     result.Stamp.BeanMarkerTarget,
		MarkerPresent:   result.MarkerPresent,
		EntryCount:      result.EntryCount,
		Dropped:         result.DroppedAttributes,
		Signature:       result.SignaturePath,
		DurationSeconds: result.Duration.Seconds(),
	}
	if result.Artifact != nil {
		receipt.Jar = result.Artifact.Path
	}
	if result.Profile != nil {
		receipt.Profile = result.Profile.Name
	}
	if result.Checksums != nil {
		receipt.SHA256 = result.Checksums.SHA256
		receipt.SHA512 = result.Checksums.SHA512
	}
	return receipt
}

// WriteReceipt writes the receipt as indented JSON
func WriteReceipt(path string, receipt *StampReceipt) error {
	data, err := json.MarshalIndent(receipt, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal receipt: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0600); err != nil {
		return fmt.Errorf("failed to write receipt: %w", err)
	}
	return nil
}
