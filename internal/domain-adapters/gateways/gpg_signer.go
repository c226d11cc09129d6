package gateways

import (
	"context"
	"fmt"

	"github.com/jeantessier/depfind-stamp/internal/external-adapters/gpg"
)

// gpgSigner wraps the external GPG adapter to implement the domain gateway interface.
// A fresh adapter is used per call so keys never leak between artifacts.
type gpgSigner struct{}

// NewGPGSigner creates a new GPG signer gateway
//
//nolint:revive // unexported-return: Intentionally returns concrete type for testability
func NewGPGSigner() *gpgSigner {
	return &gpgSigner{}
}

// SignArtifact writes <artifactPath>.asc signed with the private key in keyPath
func (g *gpgSigner) SignArtifact(ctx context.Context, artifactPath, keyPath string, passphrase []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	signer := gpg.NewSigner()
	if err := signer.LoadSigningKey(keyPath, passphrase); err != nil {
		return "", fmt.Errorf("failed to load signing key: %w", err)
	}

	sigPath, err := signer.SignFile(artifactPath)
	if err != nil {
		return "", fmt.Errorf("GPG signing failed: %w", err)
	}
	return sigPath, nil
}

// VerifyArtifact verifies a detached signature against the keys in publicKeyPath
func (g *gpgSigner) VerifyArtifact(ctx context.Context, artifactPath, signaturePath, publicKeyPath string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	verifier := gpg.NewSigner()
	if err := verifier.ImportKeyFromFile(publicKeyPath); err != nil {
		return fmt.Errorf("failed to import GPG key from file: %w", err)
	}

	if err := verifier.VerifySignatureFromFile(artifactPath, signaturePath); err != nil {
		return fmt.Errorf("GPG signature verification failed: %w", err)
	}
	return nil
}
