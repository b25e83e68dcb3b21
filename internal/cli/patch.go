package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/agentx-labs/reactforge/internal/config"
	"github.com/agentx-labs/reactforge/internal/patch"
	"github.com/agentx-labs/reactforge/internal/project"
)

var (
	patchImport   string
	patchKey      string
	patchExpr     string
	patchStrategy string
)

func init() {
	patchCmd.Flags().StringVar(&patchImport, "import", "", "Import statement to prepend")
	patchCmd.Flags().StringVar(&patchKey, "key", "", "Name of the array property to extend")
	patchCmd.Flags().StringVar(&patchExpr, "expr", "", "Expression to insert as the first element")
	patchCmd.Flags().StringVar(&patchStrategy, "strategy", "", "Patch strategy: balanced or regex (default from config)")
	patchCmd.MarkFlagsRequiredTogether("import", "key", "expr")
	rootCmd.AddCommand(patchCmd)
}

var patchCmd = &cobra.Command{
	Use:   "patch [file]",
	Short: "Idempotently add an import and an array element to a config file",
	Long: `Patch a JavaScript config file in place. By default the TailwindCSS Vite
plugin is registered in ./vite.config.js. Running the command again is a
no-op; a missing file is created.

Examples:
  reactforge patch
  reactforge patch app/vite.config.js
  reactforge patch --import "import svgr from 'vite-plugin-svgr';" --key plugins --expr "svgr()"`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPatch,
}

func runPatch(cmd *cobra.Command, args []string) error {
	file := project.ViteConfigFile
	if len(args) == 1 {
		file = args[0]
	}

	strategy := patchStrategy
	if !cmd.Flags().Changed("strategy") {
		settings, err := config.Current()
		if err != nil {
			return err
		}
		strategy = settings.PatchStrategy
	}
	p, err := patch.New(strategy)
	if err != nil {
		return err
	}

	rule := patchRule()
	logger.Debug("patching", zap.String("file", file), zap.String("strategy", strategy), zap.String("marker", rule.Marker()))

	res, err := patch.PatchFile(file, rule, p)
	if err != nil {
		return err
	}
	printPatchResult(cmd.OutOrStdout(), res)
	return nil
}

// patchRule returns the rule from the flags, or the Tailwind rule when
// none were given.
func patchRule() patch.Rule {
	if patchImport == "" && patchKey == "" && patchExpr == "" {
		return project.TailwindRule()
	}
	return patch.Rule{Import: patchImport, ArrayKey: patchKey, Expression: patchExpr}
}

func printPatchResult(w io.Writer, res *patch.FileResult) {
	switch {
	case res.Created:
		fmt.Fprintf(w, "[ OK ] created %s\n", res.Path)
	case res.Changed:
		fmt.Fprintf(w, "[ OK ] patched %s\n", res.Path)
	default:
		fmt.Fprintf(w, "[SKIP] %s already patched\n", res.Path)
	}
}
