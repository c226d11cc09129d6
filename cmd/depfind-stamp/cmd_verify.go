package main

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"

	"github.com/spf13/cobra"

	orchestrators "github.com/jeantessier/depfind-stamp/internal/domain-orchestrators"
)

func newVerifyCmd() *cobra.Command {
	var (
		checksumFile string
		signature    string
		publicKey    string
	)

	cmd := &cobra.Command{
		Use:   "verify <jar>",
		Short: "Check the manifest stamp, checksum and signature of a jar",
		Example: `  depfind-stamp verify dist/DependencyFinder.jar
  depfind-stamp verify lib.jar --checksum lib.jar.sha256
  depfind-stamp verify lib.jar --signature lib.jar.asc --public-key release-key.pub.asc`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd)
			if err != nil {
				return err
			}

			result, err := a.orchestrator.VerifyArtifact(cmd.Context(), orchestrators.VerifyRequest{
				JarPath:       args[0],
				ProfileName:   a.cfg.Profile,
				ChecksumFile:  checksumFile,
				SignaturePath: signature,
				PublicKeyPath: publicKey,
			})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "🔍 Verifying %s\n\n", filepath.Base(args[0]))

			if result.Validation.IsReady() {
				fmt.Fprintf(out, "✅ Manifest stamp valid (version %s, date %s)\n",
					result.Validation.ImplementationVersion, result.Validation.ImplementationDate)
			} else {
				fmt.Fprintf(out, "❌ Manifest stamp invalid: %s\n", result.Validation.ErrorMessage())
			}
			report(out, "Checksum", checksumFile != "", result.ChecksumErr)
			report(out, "Signature", signature != "", result.SignatureErr)

			if !result.OK() {
				return errors.New("verification failed")
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&checksumFile, "checksum", "", "Checksum file to verify against (.sha256 or .sha512)")
	cmd.Flags().StringVar(&signature, "signature", "", "Detached signature file (.asc)")
	cmd.Flags().StringVar(&publicKey, "public-key", "", "Public key file for signature verification")

	return cmd
}

func report(out io.Writer, what string, requested bool, err error) {
	if !requested {
		return
	}
	if err != nil {
		fmt.Fprintf(out, "❌ %s verification FAILED: %v\n", what, err)
		return
	}
	fmt.Fprintf(out, "✅ %s verified\n", what)
}
