package services

import (
	"crypto/sha256"
	"crypto/sha512"
	"encoding/hex"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateChecksums(t *testing.T) {
	tmpDir := t.TempDir()
	jarPath := filepath.Join(tmpDir, "DependencyFinder.jar")
	content := []byte("fake jar content")
	require.NoError(t, os.WriteFile(jarPath, content, 0600))

	artifacts, err := NewReleaseArtifactsService(nil).GenerateChecksums(jarPath)
	require.NoError(t, err)

	sum256 := sha256.Sum256(content)
	sum512 := sha512.Sum512(content)
	assert.Equal(t, hex.EncodeToString(sum256[:]), artifacts.SHA256)
	assert.Equal(t, hex.EncodeToString(sum512[:]), artifacts.SHA512)
	assert.Equal(t, jarPath+".sha256", artifacts.SHA256Path)
	assert.Equal(t, jarPath+".sha512", artifacts.SHA512Path)

	data, err := os.ReadFile(artifacts.SHA256Path)
	require.NoError(t, err)
	assert.Equal(t, artifacts.SHA256+"  DependencyFinder.jar\n", string(data))

	data, err = os.ReadFile(artifacts.SHA512Path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), artifacts.SHA512+"  "))
}

func TestGenerateChecksums_MissingFile(t *testing.T) {
	_, err := NewReleaseArtifactsService(nil).GenerateChecksums(filepath.Join(t.TempDir(), "missing.jar"))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to generate SHA256")
}
