package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jeantessier/depfind-stamp/internal/domain/entities"
	"github.com/jeantessier/depfind-stamp/internal/external-adapters/yaml"
)

// stampView is the json/yaml rendering of a stamp
type stampView struct {
	Attributes map[string]string            `json:"attributes" yaml:"attributes"`
	Entries    map[string]map[string]string `json:"entries" yaml:"entries"`
}

func newStampView(stamp entities.ManifestStamp) stampView {
	return stampView{
		Attributes: stamp.AttributeMap(),
		Entries:    stamp.EntryAttributes(),
	}
}

func newShowCmd() *cobra.Command {
	var (
		format string
		output string
	)

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the manifest stamp for the current environment",
		Example: `  depfind-stamp show
  DEPENDENCYFINDER_VERSION=2.0.1 depfind-stamp show --format json
  depfind-stamp show --format manifest --output build/MANIFEST.MF`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp(cmd)
			if err != nil {
				return err
			}

			stamp, _, err := a.orchestrator.BuildStamp(cmd.Context(), a.cfg.Profile, a.cfg.StampConfig())
			if err != nil {
				return err
			}

			data, err := renderStamp(a, stamp, format)
			if err != nil {
				return err
			}

			if output == "" {
				_, err = cmd.OutOrStdout().Write(data)
				return err
			}
			if err := os.WriteFile(output, data, 0600); err != nil {
				return fmt.Errorf("failed to write %s: %w", output, err)
			}
			a.logger.Info("stamp written to " + output)
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", "manifest", "Output format: manifest, json, yaml")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Write to file instead of stdout")

	return cmd
}

func renderStamp(a *app, stamp entities.ManifestStamp, format string) ([]byte, error) {
	switch format {
	case "manifest", "mf":
		return a.orchestrator.RenderManifest(stamp)
	case "json":
		data, err := json.MarshalIndent(newStampView(stamp), "", "  ")
		if err != nil {
			return nil, fmt.Errorf("failed to marshal JSON: %w", err)
		}
		return append(data, '\n'), nil
	case "yaml", "yml":
		return yaml.Marshal(newStampView(stamp))
	default:
		return nil, fmt.Errorf("unknown format %q (want manifest, json or yaml)", format)
	}
}
