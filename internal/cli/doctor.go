package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/agentx-labs/reactforge/internal/config"
	"github.com/agentx-labs/reactforge/internal/toolchain"
)

func init() {
	rootCmd.AddCommand(doctorCmd)
}

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check that node, npm and git are installed",
	Long:  `Check the external tools used to create projects and validate the user settings.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		failures := runToolchainCheck(cmd.Context(), out, toolchain.DefaultRequirements())
		failures += runSettingsCheck(out)
		if failures > 0 {
			return fmt.Errorf("%d check(s) failed", failures)
		}
		return nil
	},
}

// runToolchainCheck prints one line per requirement and returns the number
// of required tools that are missing or too old.
func runToolchainCheck(ctx context.Context, w io.Writer, reqs []toolchain.Requirement) int {
	fmt.Fprintln(w, "Toolchain:")
	failures := 0
	for _, st := range toolchain.CheckAll(ctx, reqs) {
		switch {
		case !st.Found:
			fmt.Fprintf(w, "  [MISS] %-5s not found on PATH\n", st.Name)
			if !st.Optional {
				failures++
			}
		case st.Err != nil:
			fmt.Fprintf(w, "  [WARN] %-5s %s (%v)\n", st.Name, st.Path, st.Err)
		case !st.Satisfied:
			fmt.Fprintf(w, "  [WARN] %-5s %s does not satisfy %s\n", st.Name, st.Version, st.Constraint)
			if !st.Optional {
				failures++
			}
		default:
			fmt.Fprintf(w, "  [ OK ] %-5s %s (%s)\n", st.Name, st.Version, st.Path)
		}
	}
	return failures
}

func runSettingsCheck(w io.Writer) int {
	fmt.Fprintf(w, "\nSettings (%s):\n", config.FilePath())
	if _, err := config.Current(); err != nil {
		fmt.Fprintf(w, "  [FAIL] %v\n", err)
		return 1
	}
	fmt.Fprintln(w, "  [ OK ] valid")
	return 0
}
