package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newProfilesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "profiles",
		Short: "List stamp profiles in the profiles directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp(cmd)
			if err != nil {
				return err
			}

			profiles, err := a.profiles.ListProfiles(cmd.Context())
			if err != nil {
				return err
			}

			if len(profiles) == 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "No profiles found in %s\n", a.cfg.ProfilesDir)
				return nil
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tTITLE\tVENDOR\tMARKER")
			for _, p := range profiles {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", p.Name, p.ImplementationTitle, p.ImplementationVendor, p.BeanMarkerTarget)
			}
			return w.Flush()
		},
	}
}
