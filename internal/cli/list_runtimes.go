/*
PURPOSE:
  Defines the 'list-runtimes' subcommand.
  Detects candidate runtimes and prints what was found.

REQUIREMENTS:
  User-specified:
  - Quick way to see which runtimes a run would cover before committing
    to hours of trials.

  Implementation-discovered:
  - Missing runtimes are printed, not errored; exit code stays 0 so the
    command is usable in scripts that only care about the listing.

ARCHITECTURE INTEGRATION:
  - Calls: internal/registry.Detect
  - Uses: internal/config for the candidate list and probe timeout

ERROR HANDLING:
  - Only config load failures are returned.

IMPLEMENTATION RULES:
  - Detection logic lives in internal/registry; this file only formats.

USAGE:
  rtbench list-runtimes

RELATED FILES:
  - internal/registry/registry.go

MAINTENANCE:
  - Update formatting when descriptors grow new fields.
*/

package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/rtbench/rtbench/internal/config"
	"github.com/rtbench/rtbench/internal/invoke"
	"github.com/rtbench/rtbench/internal/registry"
)

var listRuntimesCmd = &cobra.Command{
	Use:   "list-runtimes",
	Short: "Detect and list available runtimes",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			return err
		}

		descs := registry.Detect(cmd.Context(), invoke.Process{}, cfg.Runtimes, cfg.ProbeTimeout)

		fmt.Fprintln(cmd.OutOrStdout(), "Detected runtimes:")
		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		available := 0
		for _, d := range descs {
			mark := "✗"
			detail := "not available"
			if d.Available {
				mark = "✓"
				detail = fmt.Sprintf("%s\t%s", d.Version, d.Executable)
				available++
			}
			fmt.Fprintf(tw, "  %s %s\t%s\n", mark, d.Name, detail)
		}
		if err := tw.Flush(); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "\nAvailable: %d/%d\n", available, len(descs))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(listRuntimesCmd)
}
