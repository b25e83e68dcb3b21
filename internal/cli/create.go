package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/agentx-labs/reactforge/internal/branding"
	"github.com/agentx-labs/reactforge/internal/config"
	"github.com/agentx-labs/reactforge/internal/pipeline"
	"github.com/agentx-labs/reactforge/internal/project"
	"github.com/agentx-labs/reactforge/internal/toolchain"
	"github.com/agentx-labs/reactforge/internal/ui"
)

var (
	createSource     string
	createStrategy   string
	createNoGit      bool
	createNoInstall  bool
	createNoTailwind bool
	createNoSpinner  bool
	createForce      bool
	createTimeout    time.Duration
)

func init() {
	f := rootCmd.Flags()
	f.StringVar(&createSource, "source", "", "Project source: template or vite (default from config: template)")
	f.StringVar(&createStrategy, "strategy", "", "Patch strategy: balanced or regex (default from config: balanced)")
	f.BoolVar(&createNoGit, "no-git", false, "Skip git init")
	f.BoolVar(&createNoInstall, "no-install", false, "Skip npm install")
	f.BoolVar(&createNoTailwind, "no-tailwind", false, "Skip TailwindCSS setup")
	f.BoolVar(&createNoSpinner, "no-spinner", false, "Print one line per step instead of a spinner")
	f.BoolVarP(&createForce, "force", "f", false, "Write into an existing non-empty directory (template source only)")
	f.DurationVar(&createTimeout, "timeout", 0, "Per-command timeout, e.g. 5m (0 means none)")
}

// createOptions merges the saved settings with the flags given on the
// command line. Explicit flags win.
func createOptions(cmd *cobra.Command, s config.Settings) (project.Options, bool, time.Duration) {
	opts := project.Options{
		Source:   s.Source,
		Strategy: s.PatchStrategy,
		Git:      s.Git,
		Install:  s.Install,
		Tailwind: s.Tailwind,
		Force:    createForce,
	}
	spinner := s.Spinner
	timeout := s.CommandTimeout

	f := cmd.Flags()
	if f.Changed("source") {
		opts.Source = createSource
	}
	if f.Changed("strategy") {
		opts.Strategy = createStrategy
	}
	if f.Changed("no-git") {
		opts.Git = !createNoGit
	}
	if f.Changed("no-install") {
		opts.Install = !createNoInstall
	}
	if f.Changed("no-tailwind") {
		opts.Tailwind = !createNoTailwind
	}
	if f.Changed("no-spinner") {
		spinner = !createNoSpinner
	}
	if f.Changed("timeout") {
		timeout = createTimeout
	}
	return opts, spinner, timeout
}

// resolveName takes the name argument or prompts for it on a terminal.
func resolveName(args []string, in, out any) (string, error) {
	if len(args) == 1 {
		if err := ui.ValidateProjectName(args[0]); err != nil {
			return "", err
		}
		return strings.TrimSpace(args[0]), nil
	}
	if !ui.IsTerminal(in) || !ui.IsTerminal(out) {
		return "", errors.New("a project name is required when not running in a terminal")
	}
	return ui.AskProjectName()
}

func runCreate(cmd *cobra.Command, args []string) error {
	settings, err := config.Current()
	if err != nil {
		return fmt.Errorf("%w (check %s)", err, config.FilePath())
	}
	opts, spinner, timeout := createOptions(cmd, settings)

	name, err := resolveName(args, os.Stdin, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	opts.Name = name
	opts.Logger = logger

	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("resolving working directory: %w", err)
	}
	opts.ParentDir = cwd

	stderr := cmd.ErrOrStderr()
	printer := ui.NewPrinter(cmd.OutOrStdout(), stderr)

	if err := preflight(cmd, printer, opts); err != nil {
		return err
	}

	var warnings []string
	opts.Warn = func(msg string) { warnings = append(warnings, msg) }
	steps, err := project.Plan(opts)
	if err != nil {
		return err
	}

	runner := &pipeline.Runner{
		Logger:         logger,
		CommandTimeout: timeout,
	}
	// Streamed command output and an animated spinner would interleave.
	if verbose {
		runner.Stdout = stderr
		runner.Stderr = stderr
		spinner = false
	}
	progress := ui.NewProgress(stderr, spinner)
	runner.Observer = progress

	logger.Debug("creating project", zap.String("name", name), zap.Int("steps", len(steps)))
	_, err = runner.Run(cmd.Context(), cwd, steps)
	progress.Done()
	for _, w := range warnings {
		printer.Warning("%s", w)
	}
	if err != nil {
		return err
	}

	if opts.Tailwind {
		printer.Success("TailwindCSS with Vite plugin configured.")
	}
	printer.Success("React app '%s' created successfully!", filepath.Base(name))
	next := []string{"npm run dev"}
	if !opts.Install {
		next = append([]string{"npm install"}, next...)
	}
	printer.GetStarted(name, next...)
	return nil
}

// preflight fails early when a tool the plan needs is not on PATH. Tools
// whose version cannot be confirmed only produce a warning.
func preflight(cmd *cobra.Command, printer *ui.Printer, opts project.Options) error {
	statuses := toolchain.CheckAll(cmd.Context(), project.RequiredTools(opts))
	if missing := toolchain.Missing(statuses); len(missing) > 0 {
		return fmt.Errorf("%s not found on PATH; run '%s doctor' for details",
			strings.Join(missing, ", "), branding.CLIName())
	}
	for _, st := range statuses {
		if !st.Found {
			continue
		}
		switch {
		case st.Err != nil:
			logger.Warn("could not determine tool version", zap.String("tool", st.Name), zap.Error(st.Err))
		case !st.Satisfied:
			logger.Debug("tool version does not satisfy requirement",
				zap.String("tool", st.Name),
				zap.String("version", st.Version),
				zap.String("constraint", st.Constraint),
			)
			printer.Warning("%s %s does not satisfy %s", st.Name, st.Version, st.Constraint)
		}
	}
	return nil
}
