package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/agentx-labs/reactforge/internal/branding"
	"github.com/agentx-labs/reactforge/internal/config"
	"github.com/agentx-labs/reactforge/internal/ui"
)

var (
	buildVersion string
	buildCommit  string
	buildDate    string
)

var (
	verbose bool

	// logger is replaced in PersistentPreRunE; tests see the no-op logger.
	logger = zap.NewNop()
)

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log debug output and stream command output")
}

var rootCmd = &cobra.Command{
	Use:   branding.CLIName() + " [name]",
	Short: branding.Description(),
	Long: branding.DisplayName() + ` creates a React + Vite project, wires TailwindCSS into
vite.config.js, and sets up git and npm.

Run without a name to be prompted for one.`,
	Args:          cobra.MaximumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		l, err := newLogger(verbose)
		if err != nil {
			return err
		}
		logger = l
		if err := config.Load(); err != nil {
			return err
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
	RunE: runCreate,
}

// Execute runs the root command with build info injected via ldflags.
// Errors are reported on stderr before being returned.
func Execute(version, commit, date string) error {
	buildVersion = version
	buildCommit = commit
	buildDate = date
	rootCmd.Version = version

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	err := rootCmd.ExecuteContext(ctx)
	if err != nil {
		reportError(ui.NewPrinter(rootCmd.OutOrStdout(), rootCmd.ErrOrStderr()), err)
	}
	return err
}

func reportError(p *ui.Printer, err error) {
	switch {
	case errors.Is(err, ui.ErrCancelled):
		p.Failure("Cancelled.")
	case errors.Is(err, context.Canceled):
		p.Failure("Interrupted.")
	default:
		p.Failure("%s", capitalize(err.Error()))
	}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	if c := s[0]; c >= 'a' && c <= 'z' {
		return fmt.Sprintf("%c%s", c-'a'+'A', s[1:])
	}
	return s
}
