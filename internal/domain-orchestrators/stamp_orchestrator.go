// Package orchestrators coordinates complex workflows across multiple domain services.
package orchestrators

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/jeantessier/depfind-stamp/internal/domain/entities"
	"github.com/jeantessier/depfind-stamp/internal/domain/interfaces"
	"github.com/jeantessier/depfind-stamp/internal/domain/interfaces/gateways"
	"github.com/jeantessier/depfind-stamp/internal/domain/interfaces/repositories"
	"github.com/jeantessier/depfind-stamp/internal/domain/services"
)

// ChecksumGenerator writes checksum files next to an artifact
type ChecksumGenerator interface {
	GenerateChecksums(filePath string) (*services.ReleaseArtifacts, error)
}

// ChecksumVerifier checks an artifact against a checksum file
type ChecksumVerifier interface {
	VerifyChecksumFile(ctx context.Context, filePath, checksumFile string) error
}

// StampOrchestrator coordinates stamping, packaging, and verification of artifacts
type StampOrchestrator struct {
	profiles  repositories.ProfileRepository
	stamper   *services.StampService
	validator *services.ValidationService
	codec     gateways.ManifestCodec
	packager  gateways.ArtifactPackager
	checksums ChecksumGenerator
	verifier  ChecksumVerifier
	signer    gateways.ArtifactSigner
	logger    interfaces.Logger
}

// StampOrchestratorDeps groups the collaborators of the orchestrator
type StampOrchestratorDeps struct {
	Profiles  repositories.ProfileRepository
	Probe     gateways.HostProbe
	Codec     gateways.ManifestCodec
	Packager  gateways.ArtifactPackager
	Checksums ChecksumGenerator
	Verifier  ChecksumVerifier
	Signer    gateways.ArtifactSigner
	Logger    interfaces.Logger
}

// NewStampOrchestrator creates a new stamp orchestrator
func NewStampOrchestrator(deps StampOrchestratorDeps) *StampOrchestrator {
	logger := deps.Logger
	if logger == nil {
		logger = &interfaces.NoOpLogger{}
	}

	return &StampOrchestrator{
		profiles:  deps.Profiles,
		stamper:   services.NewStampService(deps.Probe),
		validator: services.NewValidationService(),
		codec:     deps.Codec,
		packager:  deps.Packager,
		checksums: deps.Checksums,
		verifier:  deps.Verifier,
		signer:    deps.Signer,
		logger:    logger,
	}
}

// StampRequest describes one stamping run
type StampRequest struct {
	JarPath        string
	OutputPath     string // defaults to JarPath (stamp in place)
	ProfileName    string
	Config         services.StampConfig
	Checksums      bool
	SigningKeyPath string
	Passphrase     []byte
}

// StampResult contains the result of a stamping run
type StampResult struct {
	Profile       *entities.Profile
	Stamp         entities.ManifestStamp
	Manifest      []byte
	Artifact      *entities.Artifact
	EntryCount    int
	MarkerPresent bool
	// DroppedAttributes names what the replaced manifest carried that the stamp does not
	DroppedAttributes []string
	Checksums         *services.ReleaseArtifacts
	SignaturePath     string
	Duration          time.Duration
}

// BuildStamp loads a profile and builds the stamp for this invocation
func (o *StampOrchestrator) BuildStamp(ctx context.Context, profileName string, cfg services.StampConfig) (entities.ManifestStamp, *entities.Profile, error) {
	profile, err := o.profiles.GetProfile(ctx, profileName)
	if err != nil {
		return entities.ManifestStamp{}, nil, fmt.Errorf("failed to load profile: %w", err)
	}

	stamp := o.stamper.Stamp(cfg, profile)
	o.logger.Debug("stamp built",
		interfaces.F("profile", profile.Name),
		interfaces.F("version", stamp.ImplementationVersion),
		interfaces.F("date", stamp.ImplementationDate))

	return stamp, profile, nil
}

// RenderManifest encodes a stamp as manifest text
func (o *StampOrchestrator) RenderManifest(stamp entities.ManifestStamp) ([]byte, error) {
	data, err := o.codec.Encode(stamp.Manifest())
	if err != nil {
		return nil, fmt.Errorf("failed to encode manifest: %w", err)
	}
	return data, nil
}

// StampArtifact executes the complete stamping workflow for a jar
func (o *StampOrchestrator) StampArtifact(ctx context.Context, req StampRequest) (*StampResult, error) {
	startTime := time.Now()
	result := &StampResult{}

	// Step 1: Build the stamp
	stamp, profile, err := o.BuildStamp(ctx, req.ProfileName, req.Config)
	if err != nil {
		return nil, err
	}
	result.Profile = profile
	result.Stamp = stamp

	// Step 2: Render the manifest
	manifest, err := o.RenderManifest(stamp)
	if err != nil {
		return nil, err
	}
	result.Manifest = manifest

	// Step 3: Write it into the jar
	outputPath := req.OutputPath
	if outputPath == "" {
		outputPath = req.JarPath
	}
	written, err := o.packager.WriteManifest(ctx, req.JarPath, outputPath, manifest, stamp.BeanMarkerTarget)
	if err != nil {
		return nil, fmt.Errorf("failed to write manifest: %w", err)
	}
	result.EntryCount = written.EntryCount
	result.MarkerPresent = written.MarkerPresent
	result.Artifact = &entities.Artifact{
		Name:    strings.TrimSuffix(filepath.Base(written.Path), filepath.Ext(written.Path)),
		Version: stamp.ImplementationVersion,
		Path:    written.Path,
		Type:    "jar",
	}

	result.DroppedAttributes = o.droppedAttributes(written.PreviousManifest, stamp)
	if len(result.DroppedAttributes) > 0 {
		o.logger.Warn("existing manifest attributes dropped",
			interfaces.F("jar", written.Path),
			interfaces.F("attributes", strings.Join(result.DroppedAttributes, ", ")))
	}

	if !written.MarkerPresent {
		o.logger.Warn("bean marker entry not found in jar",
			interfaces.F("entry", stamp.BeanMarkerTarget),
			interfaces.F("jar", written.Path))
	}
	o.logger.Info("manifest written",
		interfaces.F("jar", written.Path),
		interfaces.F("entries", written.EntryCount))

	// Step 4: Checksums (optional)
	if req.Checksums {
		if o.checksums == nil {
			return nil, fmt.Errorf("checksums requested but no checksum generator configured")
		}
		sums, err := o.checksums.GenerateChecksums(written.Path)
		if err != nil {
			return nil, fmt.Errorf("failed to generate checksums: %w", err)
		}
		result.Checksums = sums
	}

	// Step 5: Signature (optional)
	if req.SigningKeyPath != "" {
		if o.signer == nil {
			return nil, fmt.Errorf("signing requested but no signer configured")
		}
		sigPath, err := o.signer.SignArtifact(ctx, written.Path, req.SigningKeyPath, req.Passphrase)
		if err != nil {
			return nil, fmt.Errorf("failed to sign artifact: %w", err)
		}
		result.SignaturePath = sigPath
		o.logger.Info("artifact signed", interfaces.F("signature", filepath.Base(sigPath)))
	}

	result.Duration = time.Since(startTime)
	return result, nil
}

// droppedAttributes lists the main attributes and entry sections of a replaced
// manifest that the new stamp does not write
func (o *StampOrchestrator) droppedAttributes(previous []byte, stamp entities.ManifestStamp) []string {
	if len(previous) == 0 {
		return nil
	}

	old, err := o.codec.Decode(previous)
	if err != nil {
		o.logger.Warn("existing manifest could not be parsed and was replaced", interfaces.F("error", err))
		return nil
	}

	written := make(map[string]bool)
	for _, key := range entities.StampAttributeKeys {
		written[strings.ToLower(key)] = true
	}
	for _, key := range services.FormatAttributes() {
		written[strings.ToLower(key)] = true
	}

	var dropped []string
	for _, a := range old.Main {
		if !written[strings.ToLower(a.Name)] {
			dropped = append(dropped, a.Name)
			written[strings.ToLower(a.Name)] = true
		}
	}
	for _, section := range old.Sections {
		if section.Name != stamp.BeanMarkerTarget {
			dropped = append(dropped, "Name: "+section.Name)
		}
	}
	return dropped
}

// VerifyRequest describes the checks to run on a stamped jar
type VerifyRequest struct {
	JarPath       string
	ProfileName   string
	ChecksumFile  string
	SignaturePath string
	PublicKeyPath string
}

// VerifyResult contains the outcome of each check that was requested
type VerifyResult struct {
	Manifest     *entities.Manifest
	Validation   *services.StampValidation
	ChecksumErr  error
	SignatureErr error
	Checked      []string
}

// OK returns true if every requested check passed
func (r *VerifyResult) OK() bool {
	return r.Validation.IsReady() && r.ChecksumErr == nil && r.SignatureErr == nil
}

// VerifyArtifact reads the manifest back from a jar and validates it, then runs
// the optional checksum and signature checks
func (o *StampOrchestrator) VerifyArtifact(ctx context.Context, req VerifyRequest) (*VerifyResult, error) {
	profile, err := o.profiles.GetProfile(ctx, req.ProfileName)
	if err != nil {
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}

	data, err := o.packager.ReadManifest(ctx, req.JarPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}

	manifest, err := o.codec.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("failed to decode manifest: %w", err)
	}

	result := &VerifyResult{
		Manifest:   manifest,
		Validation: o.validator.ValidateManifest(manifest, profile),
		Checked:    []string{"manifest"},
	}

	if req.ChecksumFile != "" {
		if o.verifier == nil {
			return nil, fmt.Errorf("checksum verification requested but no verifier configured")
		}
		result.ChecksumErr = o.verifier.VerifyChecksumFile(ctx, req.JarPath, req.ChecksumFile)
		result.Checked = append(result.Checked, "checksum")
	}

	if req.SignaturePath != "" {
		if req.PublicKeyPath == "" {
			return nil, fmt.Errorf("signature verification requires a public key")
		}
		if o.signer == nil {
			return nil, fmt.Errorf("signature verification requested but no signer configured")
		}
		result.SignatureErr = o.signer.VerifyArtifact(ctx, req.JarPath, req.SignaturePath, req.PublicKeyPath)
		result.Checked = append(result.Checked, "signature")
	}

	return result, nil
}
