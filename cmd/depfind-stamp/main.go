// Package main provides the depfind-stamp CLI for stamping build metadata into jar manifests.
package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/jeantessier/depfind-stamp/internal/config"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "depfind-stamp",
		Short: "Stamp build metadata into Dependency Finder jar manifests",
		Long: `depfind-stamp writes the specification, implementation, copyright and
compiler attributes of a build into a jar manifest, and marks the bean entry.

The version and release date come from DEPENDENCYFINDER_VERSION and
DEPENDENCYFINDER_RELEASE_DATE (or --release-version / --release-date) and
fall back to "unknown" when unset or empty.`,
		SilenceUsage: true,
	}

	flags := root.PersistentFlags()
	flags.String(config.FlagReleaseVersion, "", "Version to stamp (overrides "+config.EnvVersion+")")
	flags.String(config.FlagReleaseDate, "", "Release date to stamp (overrides "+config.EnvReleaseDate+")")
	flags.String(config.FlagLogLevel, "info", "Log level: debug, info, warn, error")
	flags.String(config.FlagProfilesDir, "profiles", "Directory containing stamp profiles")
	flags.String(config.FlagProfile, "", "Stamp profile name (default: built-in Dependency Finder profile)")

	root.AddCommand(
		newShowCmd(),
		newStampCmd(),
		newVerifyCmd(),
		newProfilesCmd(),
	)

	return root
}
