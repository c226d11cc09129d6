package main

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	orchestrators "github.com/jeantessier/depfind-stamp/internal/domain-orchestrators"
)

func newStampCmd() *cobra.Command {
	var (
		output    string
		checksums bool
		signKey   string
		receipt   string
	)

	cmd := &cobra.Command{
		Use:   "stamp <jar>",
		Short: "Write the manifest stamp into a jar",
		Example: `  depfind-stamp stamp build/libs/lib.jar
  depfind-stamp stamp lib.jar --output dist/DependencyFinder.jar --checksums
  depfind-stamp stamp lib.jar --sign-key release-key.asc --receipt stamp.json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd)
			if err != nil {
				return err
			}

			req := orchestrators.StampRequest{
				JarPath:        args[0],
				OutputPath:     output,
				ProfileName:    a.cfg.Profile,
				Config:         a.cfg.StampConfig(),
				Checksums:      checksums,
				SigningKeyPath: signKey,
			}
			if signKey != "" && a.cfg.SigningPassphrase != "" {
				req.Passphrase = []byte(a.cfg.SigningPassphrase)
			}

			result, err := a.orchestrator.StampArtifact(cmd.Context(), req)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "✅ Stamped %s (version %s, date %s)\n",
				filepath.Base(result.Artifact.Path),
				result.Stamp.ImplementationVersion,
				result.Stamp.ImplementationDate)
			if result.Checksums != nil {
				fmt.Fprintf(out, "  - %s\n", filepath.Base(result.Checksums.SHA256Path))
				fmt.Fprintf(out, "  - %s\n", filepath.Base(result.Checksums.SHA512Path))
			}
			if result.SignaturePath != "" {
				fmt.Fprintf(out, "  - %s\n", filepath.Base(result.SignaturePath))
			}

			if receipt != "" {
				if err := orchestrators.WriteReceipt(receipt, orchestrators.NewStampReceipt(result, time.Now())); err != nil {
					return err
				}
				fmt.Fprintf(out, "  - %s\n", filepath.Base(receipt))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Write the stamped jar here (default: stamp in place)")
	cmd.Flags().BoolVar(&checksums, "checksums", false, "Write .sha256 and .sha512 files next to the stamped jar")
	cmd.Flags().StringVar(&signKey, "sign-key", "", "Armored private key used to write a detached .asc signature")
	cmd.Flags().StringVar(&receipt, "receipt", "", "Write a JSON receipt of this run")

	return cmd
}
