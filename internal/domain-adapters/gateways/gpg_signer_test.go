package gateways

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/ProtonMail/go-crypto/openpgp"
	"github.com/ProtonMail/go-crypto/openpgp/armor"
	"github.com/ProtonMail/go-crypto/openpgp/packet"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeArmoredKeys(t *testing.T, dir string) (string, string) {
	t.Helper()
	cfg := &packet.Config{Algorithm: packet.PubKeyAlgoEdDSA}

	entity, err := openpgp.NewEntity("Release Bot", "", "release@example.com", cfg)
	require.NoError(t, err)

	encode := func(blockType string, serialize func(w *bytes.Buffer) error) []byte {
		var raw, out bytes.Buffer
		require.NoError(t, serialize(&raw))
		w, err := armor.Encode(&out, blockType, nil)
		require.NoError(t, err)
		_, err = w.Write(raw.Bytes())
		require.NoError(t, err)
		require.NoError(t, w.Close())
		return out.Bytes()
	}

	priv := encode(openpgp.PrivateKeyType, func(w *bytes.Buffer) error { return entity.SerializePrivateWithoutSigning(w, cfg) })
	pub := encode(openpgp.PublicKeyType, func(w *bytes.Buffer) error { return entity.Serialize(w) })

	privatePath := filepath.Join(dir, "release.asc")
	publicPath := filepath.Join(dir, "release.pub.asc")
	require.NoError(t, os.WriteFile(privatePath, priv, 0600))
	require.NoError(t, os.WriteFile(publicPath, pub, 0600))
	return privatePath, publicPath
}

func TestGPGSigner_SignAndVerifyArtifact(t *testing.T) {
	tmpDir := t.TempDir()
	privatePath, publicPath := writeArmoredKeys(t, tmpDir)
	jar := filepath.Join(tmpDir, "DependencyFinder.jar")
	require.NoError(t, os.WriteFile(jar, []byte("jar bytes"), 0600))

	signer := NewGPGSigner()
	ctx := context.Background()

	sigPath, err := signer.SignArtifact(ctx, jar, privatePath, nil)
	require.NoError(t, err)
	assert.Equal(t, jar+".asc", sigPath)

	assert.NoError(t, signer.VerifyArtifact(ctx, jar, sigPath, publicPath))

	require.NoError(t, os.WriteFile(jar, []byte("other bytes"), 0600))
	err = signer.VerifyArtifact(ctx, jar, sigPath, publicPath)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "GPG signature verification failed")
}

func TestGPGSigner_Errors(t *testing.T) {
	signer := NewGPGSigner()

	_, err := signer.SignArtifact(context.Background(), "a.jar", "/nonexistent/key.asc", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load signing key")

	err = signer.VerifyArtifact(context.Background(), "a.jar", "a.jar.asc", "/nonexistent/key.asc")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to import GPG key from file")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = signer.SignArtifact(ctx, "a.jar", "key.asc", nil)
	assert.ErrorIs(t, err, context.Canceled)
}
