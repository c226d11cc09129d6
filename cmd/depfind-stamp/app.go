package main

import (
	"github.com/spf13/cobra"

	"github.com/jeantessier/depfind-stamp/internal/config"
	"github.com/jeantessier/depfind-stamp/internal/domain-adapters/gateways"
	orchestrators "github.com/jeantessier/depfind-stamp/internal/domain-orchestrators"
	"github.com/jeantessier/depfind-stamp/internal/domain/interfaces"
	"github.com/jeantessier/depfind-stamp/internal/domain/services"
	"github.com/jeantessier/depfind-stamp/internal/external-adapters/manifest"
	"github.com/jeantessier/depfind-stamp/internal/external-adapters/yaml"
	"github.com/jeantessier/depfind-stamp/internal/logging"
)

// app bundles the configuration and wired collaborators of one invocation
type app struct {
	cfg          *config.Config
	logger       interfaces.Logger
	profiles     *yaml.ProfileRepository
	orchestrator *orchestrators.StampOrchestrator
}

// newApp loads the configuration once and wires every collaborator
func newApp(cmd *cobra.Command) (*app, error) {
	cfg, err := config.Load(cmd.Flags())
	if err != nil {
		return nil, err
	}

	logger := logging.NewAdapter(logging.New(cfg.LogLevel, cmd.ErrOrStderr()))
	profiles := yaml.NewProfileRepository(cfg.ProfilesDir, logger)

	orch := orchestrators.NewStampOrchestrator(orchestrators.StampOrchestratorDeps{
		Profiles:  profiles,
		Probe:     gateways.NewHostProbe(),
		Codec:     manifest.NewCodec(),
		Packager:  gateways.NewJarPackager(),
		Checksums: services.NewReleaseArtifactsService(logger),
		Verifier:  gateways.NewChecksumVerifier(),
		Signer:    gateways.NewGPGSigner(),
		Logger:    logger,
	})

	return &app{
		cfg:          cfg,
		logger:       logger,
		profiles:     profiles,
		orchestrator: orch,
	}, nil
}
