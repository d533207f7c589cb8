package cmd

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/mathgen/internal/selfupdate"
)

// version is set via -ldflags at build time.
var version = "(devel)"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the current version",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, "mathgen", version)

		if check, _ := cmd.Flags().GetBool("check"); !check {
			return nil
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
		defer cancel()

		res, err := selfupdate.NewChecker().Check(ctx, &selfupdate.CheckInput{Version: version})
		if errors.Is(err, selfupdate.ErrDevBuild) {
			fmt.Fprintln(out, "Development build; skipping release check.")
			return nil
		}
		if err != nil {
			return err
		}
		if res.UpdateAvailable {
			fmt.Fprintf(out, "A newer release is available: %s (%s)\n", res.LatestVersion, res.ReleaseURL)
		} else {
			fmt.Fprintln(out, "You are running the latest release.")
		}
		return nil
	},
}

func init() {
	versionCmd.Flags().Bool("check", false, "Check GitHub for a newer release")
}
