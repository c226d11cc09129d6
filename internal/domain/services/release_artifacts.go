package services

import (
	"crypto/sha256"
	"crypto/sha512"
	"encoding/hex"
	"fmt"
	"hash"
	"io"
	"os"
	"path/filepath"

	"github.com/jeantessier/depfind-stamp/internal/domain/interfaces"
)

// ReleaseArtifactsService generates checksum files for stamped artifacts
type ReleaseArtifactsService struct {
	logger interfaces.Logger
}

// NewReleaseArtifactsService creates a new release artifacts service
func NewReleaseArtifactsService(logger interfaces.Logger) *ReleaseArtifactsService {
	if logger == nil {
		logger = &interfaces.NoOpLogger{}
	}
	return &ReleaseArtifactsService{logger: logger}
}

// ReleaseArtifacts lists the files generated next to a stamped artifact
type ReleaseArtifacts struct {
	SHA256Path string
	SHA512Path string
	SHA256     string
	SHA512     string
}

// GenerateChecksums writes <file>.sha256 and <file>.sha512
func (s *ReleaseArtifactsService) GenerateChecksums(filePath string) (*ReleaseArtifacts, error) {
	artifacts := &ReleaseArtifacts{}

	sum256, path256, err := s.writeChecksum(filePath, ".sha256", sha256.New())
	if err != nil {
		return nil, fmt.Errorf("failed to generate SHA256: %w", err)
	}
	artifacts.SHA256, artifacts.SHA256Path = sum256, path256

	sum512, path512, err := s.writeChecksum(filePath, ".sha512", sha512.New())
	if err != nil {
		return nil, fmt.Errorf("failed to generate SHA512: %w", err)
	}
	artifacts.SHA512, artifacts.SHA512Path = sum512, path512

	s.logger.Info("checksums generated",
		interfaces.F("sha256", filepath.Base(path256)),
		interfaces.F("sha512", filepath.Base(path512)))

	return artifacts, nil
}

func (s *ReleaseArtifactsService) writeChecksum(filePath, ext string, h hash.Hash) (string, string, error) {
	sum, err := computeDigest(filePath, h)
	if err != nil {
		return "", "", err
	}

	checksumPath := filePath + ext
	content := fmt.Sprintf("%s  %s\n", sum, filepath.Base(filePath))

	if err := os.WriteFile(checksumPath, []byte(content), 0600); err != nil {
		return "", "", fmt.Errorf("failed to write %s file: %w", ext, err)
	}

	return sum, checksumPath, nil
}

// computeDigest hashes a file with h and returns the hex digest
func computeDigest(filePath string, h hash.Hash) (string, error) {
	//nolint:gosec // G304: filePath is function parameter for checksum generation
	f, err := os.Open(filePath)
	if err != nil {
		return "", err
	}
	//nolint:errcheck // Defer close
	defer f.Close()

	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}

	return hex.EncodeToString(h.Sum(nil)), nil
}
