// Package gpg provides OpenPGP signing and signature verification for artifacts.
package gpg

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/ProtonMail/go-crypto/openpgp"
	"github.com/ProtonMail/go-crypto/openpgp/packet"
)

const armoredSignatureHeader = "-----BEGIN PGP SIGNATURE---"

// Signer signs and verifies detached signatures using ProtonMail's go-crypto.
// Public keys go into the keyring used for verification; the signing entity
// must hold a decrypted private key.
type Signer struct {
	keyring openpgp.EntityList
	signer  *openpgp.Entity
	config  *packet.Config
}

// NewSigner creates a new signer with an empty keyring
func NewSigner() *Signer {
	return &Signer{
		keyring: make(openpgp.EntityList, 0),
	}
}

// readKeyRing reads an armored key ring, falling back to the binary format
func readKeyRing(keyPath string) (openpgp.EntityList, error) {
	//nolint:gosec // G304: keyPath is user-provided for key import
	data, err := os.ReadFile(keyPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open key file: %w", err)
	}

	entities, err := openpgp.ReadArmoredKeyRing(bytes.NewReader(data))
	if err != nil {
		entities, err = openpgp.ReadKeyRing(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("failed to read key: %w", err)
		}
	}

	if len(entities) == 0 {
		return nil, fmt.Errorf("no keys found in file")
	}

	return entities, nil
}

// ImportKeyFromFile imports public keys from a file into the verification keyring
func (s *Signer) ImportKeyFromFile(keyPath string) error {
	entities, err := readKeyRing(keyPath)
	if err != nil {
		return err
	}

	s.keyring = append(s.keyring, entities...)
	return nil
}

// LoadSigningKey loads the first private key of a file and decrypts it with
// passphrase when it is protected
func (s *Signer) LoadSigningKey(keyPath string, passphrase []byte) error {
	entities, err := readKeyRing(keyPath)
	if err != nil {
		return err
	}

	var entity *openpgp.Entity
	for _, e := range entities {
		if e.PrivateKey != nil {
			entity = e
			break
		}
	}
	if entity == nil {
		return fmt.Errorf("no private key found in %s", keyPath)
	}

	if err := decryptEntity(entity, passphrase); err != nil {
		return err
	}

	s.signer = entity
	s.keyring = append(s.keyring, entity)
	return nil
}

func decryptEntity(entity *openpgp.Entity, passphrase []byte) error {
	if entity.PrivateKey.Encrypted {
		if len(passphrase) == 0 {
			return fmt.Errorf("private key is encrypted and no passphrase was given")
		}
		if err := entity.PrivateKey.Decrypt(passphrase); err != nil {
			return fmt.Errorf("failed to decrypt private key: %w", err)
		}
	}

	for _, subkey := range entity.Subkeys {
		if subkey.PrivateKey != nil && subkey.PrivateKey.Encrypted {
			if err := subkey.PrivateKey.Decrypt(passphrase); err != nil {
				return fmt.Errorf("failed to decrypt private subkey: %w", err)
			}
		}
	}

	return nil
}

// SignDetached writes an armored detached signature of message to w
func (s *Signer) SignDetached(w io.Writer, message io.Reader) error {
	if s.signer == nil {
		return fmt.Errorf("no signing key loaded, call LoadSigningKey first")
	}

	if err := openpgp.ArmoredDetachSign(w, s.signer, message, s.config); err != nil {
		return fmt.Errorf("failed to sign: %w", err)
	}
	return nil
}

// SignFile writes <filePath>.asc and returns its path
func (s *Signer) SignFile(filePath string) (string, error) {
	//nolint:gosec // G304: filePath is the artifact being signed
	f, err := os.Open(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to open file: %w", err)
	}
	//nolint:errcheck // Defer close
	defer f.Close()

	var sig bytes.Buffer
	if err := s.SignDetached(&sig, f); err != nil {
		return "", err
	}

	sigPath := filePath + ".asc"
	if err := os.WriteFile(sigPath, sig.Bytes(), 0600); err != nil {
		return "", fmt.Errorf("failed to write signature: %w", err)
	}

	return sigPath, nil
}

// VerifySignatureFromFile verifies a detached signature from a local file
func (s *Signer) VerifySignatureFromFile(filePath, sigPath string) error {
	if len(s.keyring) == 0 {
		return fmt.Errorf("no GPG keys imported, call ImportKeyFromFile first")
	}

	//nolint:gosec // G304: sigPath is user-provided for GPG verification
	sigData, err := os.ReadFile(sigPath)
	if err != nil {
		return fmt.Errorf("failed to open signature file: %w", err)
	}

	// Basic format validation
	if len(sigData) < 10 {
		return fmt.Errorf("signature file too small to be valid GPG signature")
	}

	//nolint:gosec // G304: filePath is user-provided for GPG verification
	dataFile, err := os.Open(filePath)
	if err != nil {
		return fmt.Errorf("failed to open data file: %w", err)
	}
	//nolint:errcheck // Defer close
	defer dataFile.Close()

	var verifyErr error
	if bytes.HasPrefix(sigData, []byte(armoredSignatureHeader)) {
		_, verifyErr = openpgp.CheckArmoredDetachedSignature(s.keyring, dataFile, bytes.NewReader(sigData), s.config)
	} else {
		_, verifyErr = openpgp.CheckDetachedSignature(s.keyring, dataFile, bytes.NewReader(sigData), s.config)
	}

	if verifyErr != nil {
		return fmt.Errorf("signature verification failed: %w", verifyErr)
	}

	return nil
}
