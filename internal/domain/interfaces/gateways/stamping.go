// Package gateways defines interfaces for external service adapters.
package gateways

import (
	"context"

	"github.com/jeantessier/depfind-stamp/internal/domain/entities"
)

// HostProbe reads the identity of the toolchain running the build
type HostProbe interface {
	CompilerInfo() entities.CompilerInfo
}

// ManifestCodec converts manifests to and from their on-disk text form
type ManifestCodec interface {
	Encode(m *entities.Manifest) ([]byte, error)
	Decode(data []byte) (*entities.Manifest, error)
}

// JarWriteResult describes the outcome of writing a manifest into a jar
type JarWriteResult struct {
	Path          string
	EntryCount    int
	MarkerPresent bool

	// PreviousManifest is the raw manifest the jar carried before, if any
	PreviousManifest []byte
}

// ArtifactPackager writes manifests into, and reads them from, packaged artifacts
type ArtifactPackager interface {
	// WriteManifest copies srcJar to dstJar with manifestData as META-INF/MANIFEST.MF.
	// markerEntry is the entry path whose presence is reported back.
	WriteManifest(ctx context.Context, srcJar, dstJar string, manifestData []byte, markerEntry string) (*JarWriteResult, error)

	// ReadManifest returns the raw META-INF/MANIFEST.MF of a jar
	ReadManifest(ctx context.Context, jarPath string) ([]byte, error)
}

// ArtifactSigner produces and checks detached signatures for artifacts
type ArtifactSigner interface {
	// SignArtifact writes an armored detached signature and returns its path
	SignArtifact(ctx context.Context, artifactPath, keyPath string, passphrase []byte) (string, error)

	// VerifyArtifact checks a detached signature against a public key file
	VerifyArtifact(ctx context.Context, artifactPath, signaturePath, publicKeyPath string) error
}
