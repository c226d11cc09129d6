// Package gateways implements the domain gateway interfaces.
package gateways

import (
	"context"
	"crypto/sha256"
	"crypto/sha512"
	"encoding/hex"
	"fmt"
	"hash"
	"io"
	"os"
	"strings"
)

// checksumVerifier implements checksum verification using pure Go
type checksumVerifier struct{}

// NewChecksumVerifier creates a new checksum verifier
//
//nolint:revive // unexported-return: Intentionally returns concrete type for testability
func NewChecksumVerifier() *checksumVerifier {
	return &checksumVerifier{}
}

// VerifyChecksum verifies a file's SHA256 or SHA512 checksum.
// The algorithm is chosen from the length of expectedSum.
func (v *checksumVerifier) VerifyChecksum(_ context.Context, filePath, expectedSum string) error {
	expectedSum = strings.ToLower(strings.TrimSpace(expectedSum))

	var h hash.Hash
	switch len(expectedSum) {
	case sha256.Size * 2:
		h = sha256.New()
	case sha512.Size * 2:
		h = sha512.New()
	default:
		return fmt.Errorf("unsupported checksum length %d", len(expectedSum))
	}

	actualSum, err := hashFile(filePath, h)
	if err != nil {
		return err
	}

	if actualSum != expectedSum {
		return fmt.Errorf("checksum mismatch: expected %s, got %s", expectedSum, actualSum)
	}

	return nil
}

// VerifyChecksumFile verifies a file against a "hash  filename" checksum file
func (v *checksumVerifier) VerifyChecksumFile(ctx context.Context, filePath, checksumFile string) error {
	//nolint:gosec // G304: checksumFile is user-provided path for verification
	data, err := os.ReadFile(checksumFile)
	if err != nil {
		return fmt.Errorf("failed to read checksum file: %w", err)
	}

	parts := strings.Fields(string(data))
	if len(parts) < 1 {
		return fmt.Errorf("invalid checksum file format")
	}

	return v.VerifyChecksum(ctx, filePath, parts[0])
}

func hashFile(filePath string, h hash.Hash) (string, error) {
	//nolint:gosec // G304: File path is user-provided for checksum verification
	f, err := os.Open(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to open file: %w", err)
	}
	//nolint:errcheck // Defer close on read-only file
	defer f.Close()

	if _, err := io.Copy(h, f); err != nil {
		return "", fmt.Errorf("failed to hash file: %w", err)
	}

	return hex.EncodeToString(h.Sum(nil)), nil
}
