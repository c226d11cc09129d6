package gateways

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/klauspost/compress/zip"

	"github.com/jeantessier/depfind-stamp/internal/domain/interfaces/gateways"
)

// Jar entry names
const (
	MetaInfDir   = "META-INF/"
	ManifestPath = "META-INF/MANIFEST.MF"
)

// MaxManifestBytes bounds the manifest read from a jar
const MaxManifestBytes = 1 << 20

// Errors returned when reading a jar manifest
var (
	ErrManifestNotFound = errors.New("manifest not found")
	ErrManifestTooLarge = errors.New("manifest too large")
)

// JarPackager writes stamped manifests into jar files
type JarPackager struct{}

// NewJarPackager creates a new jar packager
func NewJarPackager() *JarPackager {
	return &JarPackager{}
}

// WriteManifest copies srcJar to dstJar, replacing META-INF/MANIFEST.MF with manifestData.
// The manifest is written first, right after the META-INF/ directory entry, as jar
// readers expect. srcJar and dstJar may be the same file.
func (p *JarPackager) WriteManifest(
	ctx context.Context,
	srcJar, dstJar string,
	manifestData []byte,
	markerEntry string,
) (*gateways.JarWriteResult, error) {
	if dstJar == "" {
		dstJar = srcJar
	}

	reader, err := zip.OpenReader(srcJar)
	if err != nil {
		return nil, fmt.Errorf("failed to open jar %s: %w", srcJar, err)
	}
	//nolint:errcheck // Defer close on read-only archive
	defer reader.Close()

	srcInfo, err := os.Stat(srcJar)
	if err != nil {
		return nil, fmt.Errorf("failed to stat jar %s: %w", srcJar, err)
	}

	if err := os.MkdirAll(filepath.Dir(dstJar), 0750); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(dstJar), ".stamp-*.jar")
	if err != nil {
		return nil, fmt.Errorf("failed to create temporary jar: %w", err)
	}
	tmpPath := tmp.Name()
	committed := false
	defer func() {
		if !committed {
			_ = tmp.Close()
			_ = os.Remove(tmpPath)
		}
	}()

	result, err := p.copyWithManifest(ctx, reader.File, tmp, manifestData, markerEntry)
	if err != nil {
		return nil, err
	}

	// CreateTemp uses 0600; keep the source jar's permissions
	if err := tmp.Chmod(srcInfo.Mode().Perm()); err != nil {
		return nil, fmt.Errorf("failed to set jar permissions: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return nil, fmt.Errorf("failed to close temporary jar: %w", err)
	}
	// Release the source before replacing it when stamping in place
	_ = reader.Close()

	if err := os.Rename(tmpPath, dstJar); err != nil {
		return nil, fmt.Errorf("failed to move stamped jar into place: %w", err)
	}
	committed = true

	result.Path = dstJar
	return result, nil
}

func (p *JarPackager) copyWithManifest(
	ctx context.Context,
	files []*zip.File,
	out io.Writer,
	manifestData []byte,
	markerEntry string,
) (*gateways.JarWriteResult, error) {
	writer := zip.NewWriter(out)
	result := &gateways.JarWriteResult{}
	modified := manifestTime(files)

	// META-INF/ directory entry, then the manifest
	if _, err := writer.CreateHeader(&zip.FileHeader{Name: MetaInfDir, Method: zip.Store, Modified: modified}); err != nil {
		return nil, fmt.Errorf("failed to write %s: %w", MetaInfDir, err)
	}
	w, err := writer.CreateHeader(&zip.FileHeader{Name: ManifestPath, Method: zip.Deflate, Modified: modified})
	if err != nil {
		return nil, fmt.Errorf("failed to write manifest header: %w", err)
	}
	if _, err := w.Write(manifestData); err != nil {
		return nil, fmt.Errorf("failed to write manifest: %w", err)
	}
	result.EntryCount = 2

	for _, f := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if f.Name == MetaInfDir {
			continue
		}
		if strings.EqualFold(f.Name, ManifestPath) {
			previous, err := readEntry(f)
			if err != nil {
				return nil, err
			}
			result.PreviousManifest = previous
			continue
		}
		if f.Name == markerEntry {
			result.MarkerPresent = true
		}
		if err := copyEntry(writer, f); err != nil {
			return nil, err
		}
		result.EntryCount++
	}

	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("failed to finalize jar: %w", err)
	}

	return result, nil
}

func copyEntry(writer *zip.Writer, f *zip.File) error {
	header := f.FileHeader
	w, err := writer.CreateHeader(&header)
	if err != nil {
		return fmt.Errorf("failed to write header for %s: %w", f.Name, err)
	}
	if f.FileInfo().IsDir() {
		return nil
	}

	rc, err := f.Open()
	if err != nil {
		return fmt.Errorf("failed to open entry %s: %w", f.Name, err)
	}
	//nolint:errcheck // Defer close on read-only entry
	defer rc.Close()

	//nolint:gosec // G110: entries come from the jar being stamped
	if _, err := io.Copy(w, rc); err != nil {
		return fmt.Errorf("failed to copy entry %s: %w", f.Name, err)
	}
	return nil
}

// manifestTime keeps the timestamp of an existing manifest, or uses the newest
// entry time, so stamping the same jar twice yields the same bytes
func manifestTime(files []*zip.File) time.Time {
	var newest time.Time
	for _, f := range files {
		if strings.EqualFold(f.Name, ManifestPath) {
			return f.Modified
		}
		if f.Modified.After(newest) {
			newest = f.Modified
		}
	}
	if newest.IsZero() {
		return time.Date(1980, 2, 1, 0, 0, 0, 0, time.UTC)
	}
	return newest
}

// ReadManifest returns the raw META-INF/MANIFEST.MF of a jar
func (p *JarPackager) ReadManifest(_ context.Context, jarPath string) ([]byte, error) {
	reader, err := zip.OpenReader(jarPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open jar %s: %w", jarPath, err)
	}
	//nolint:errcheck // Defer close on read-only archive
	defer reader.Close()

	for _, f := range reader.File {
		if strings.EqualFold(f.Name, ManifestPath) {
			return readEntry(f)
		}
	}

	return nil, fmt.Errorf("%s: %w", jarPath, ErrManifestNotFound)
}

// readEntry reads a manifest entry, refusing more than MaxManifestBytes
func readEntry(f *zip.File) ([]byte, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open manifest: %w", err)
	}
	//nolint:errcheck // Defer close on read-only entry
	defer rc.Close()

	data, err := io.ReadAll(io.LimitReader(rc, MaxManifestBytes+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}
	if len(data) > MaxManifestBytes {
		return nil, fmt.Errorf("%s exceeds %d bytes: %w", f.Name, MaxManifestBytes, ErrManifestTooLarge)
	}
	return data, nil
}
