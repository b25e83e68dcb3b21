package project

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/agentx-labs/reactforge/internal/manifest"
	"github.com/agentx-labs/reactforge/internal/patch"
	"github.com/agentx-labs/reactforge/internal/pipeline"
	"github.com/agentx-labs/reactforge/internal/scaffold"
)

const (
	// ViteConfigFile is the build configuration the Tailwind rule patches.
	ViteConfigFile = "vite.config.js"

	// TailwindCSS is the stylesheet entry written when Tailwind is enabled.
	TailwindCSS = "@import \"tailwindcss\";\n"

	tailwindVersion = "^4.1.0"
)

// TailwindRule is the patch that registers the Tailwind Vite plugin.
func TailwindRule() patch.Rule {
	return patch.Rule{
		Import:     "import tailwindcss from '@tailwindcss/vite';",
		ArrayKey:   "plugins",
		Expression: "tailwindcss()",
	}
}

// Plan returns the ordered steps that create the project. The first step
// runs in opts.ParentDir; later steps follow the change into the project
// root.
func Plan(opts Options) ([]pipeline.Step, error) {
	opts.withDefaults()
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	root, pkg, err := Paths(opts.Name, opts.ParentDir)
	if err != nil {
		return nil, err
	}
	patcher, err := patch.New(opts.Strategy)
	if err != nil {
		return nil, err
	}

	log := opts.Logger.With(zap.String("project", root))
	log.Debug("planning project",
		zap.String("package", pkg),
		zap.String("source", opts.Source),
		zap.Bool("git", opts.Git),
		zap.Bool("install", opts.Install),
		zap.Bool("tailwind", opts.Tailwind),
	)

	steps := []pipeline.Step{
		pipeline.Action("Checking target directory", checkTarget(root, opts.Force)),
	}

	switch opts.Source {
	case SourceVite:
		// create-vite resolves its target against the current directory.
		steps = append(steps,
			pipeline.ChangeDirectory(filepath.Dir(root)),
			pipeline.Command("npm", "create", "vite@latest", filepath.Base(root), "--", "--template", "react").
				WithLabel("Creating Vite app..."),
			pipeline.ChangeDirectory(root),
		)
		if opts.Install {
			steps = append(steps, installStep())
		}
		if opts.Tailwind {
			steps = append(steps, tailwindSteps(opts, patcher, log)...)
		}
		if opts.Git {
			steps = append(steps, gitInitStep())
		}
	default:
		data := scaffold.NewData(filepath.Base(root))
		data.PackageName = pkg
		steps = append(steps,
			pipeline.Action("Creating project directory", func(_ context.Context, _ string) error {
				return os.MkdirAll(root, 0o755)
			}),
			pipeline.ChangeDirectory(root),
			pipeline.Action("Writing template files", writeTemplates(opts.TemplateSet, data, opts.Warn, log)),
		)
		if opts.Git {
			steps = append(steps, gitInitStep())
		}
		if opts.Install {
			steps = append(steps, installStep())
		}
		if opts.Tailwind {
			steps = append(steps, tailwindSteps(opts, patcher, log)...)
		}
	}

	if opts.Git {
		steps = append(steps, pipeline.Command("git", "add", "-A").WithLabel("Staging files..."))
	}
	return steps, nil
}

func installStep() pipeline.Step {
	return pipeline.Command("npm", "install").WithLabel("Installing dependencies...")
}

func gitInitStep() pipeline.Step {
	return pipeline.Command("git", "init", "--quiet").WithLabel("Initializing git repository...")
}

// tailwindSteps installs the Tailwind packages, registers the plugin in
// vite.config.js and replaces src/index.css. Without install the packages
// are only recorded in package.json.
func tailwindSteps(opts Options, p patch.Patcher, log *zap.Logger) []pipeline.Step {
	var deps pipeline.Step
	if opts.Install {
		deps = pipeline.Command("npm", "install", "-D", "tailwindcss", "@tailwindcss/vite").
			WithLabel("Installing TailwindCSS...")
	} else {
		deps = pipeline.Command("npm", "pkg", "set",
			"devDependencies.tailwindcss="+tailwindVersion,
			"devDependencies.@tailwindcss/vite="+tailwindVersion,
		).WithLabel("Adding TailwindCSS to package.json...")
	}

	return []pipeline.Step{
		deps,
		pipeline.Action("Checking TailwindCSS dependencies", CheckTailwindDeps),
		pipeline.Action("Patching "+ViteConfigFile, patchViteConfig(p, log)),
		pipeline.Action("Writing src/index.css", writeTailwindCSS),
	}
}

func checkTarget(root string, force bool) func(context.Context, string) error {
	return func(_ context.Context, _ string) error {
		entries, err := os.ReadDir(root)
		if err != nil {
			if os.IsNotExist(err) {
				return nil
			}
			return fmt.Errorf("inspecting %s: %w", root, err)
		}
		if len(entries) > 0 && !force {
			return fmt.Errorf("directory %s already exists and is not empty; use --force to continue", root)
		}
		return nil
	}
}

func writeTemplates(set string, data *scaffold.Data, warn func(string), log *zap.Logger) func(context.Context, string) error {
	return func(_ context.Context, workDir string) error {
		// The target was checked by the first step.
		result, err := scaffold.Generate(set, data, workDir, true)
		if err != nil {
			return err
		}
		for _, w := range result.Warnings {
			log.Warn("generated package.json does not match schema", zap.String("issue", w))
			warn("package.json: " + w)
		}
		log.Debug("templates written", zap.Int("files", len(result.Files)))
		return nil
	}
}

// TailwindPackages are the dev dependencies the Tailwind steps record.
var TailwindPackages = []string{"tailwindcss", "@tailwindcss/vite"}

// CheckTailwindDeps fails unless package.json in workDir lists every
// Tailwind package. It runs before the plugin is registered so a config
// never imports a package the project does not declare.
func CheckTailwindDeps(_ context.Context, workDir string) error {
	pkg, err := manifest.ParsePackageFile(filepath.Join(workDir, manifest.FileName))
	if err != nil {
		return err
	}
	var missing []string
	for _, name := range TailwindPackages {
		if !pkg.HasDependency(name) {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%s does not list %s", manifest.FileName, strings.Join(missing, ", "))
	}
	return nil
}

func patchViteConfig(p patch.Patcher, log *zap.Logger) func(context.Context, string) error {
	return func(_ context.Context, workDir string) error {
		res, err := patch.PatchFile(filepath.Join(workDir, ViteConfigFile), TailwindRule(), p)
		if err != nil {
			return err
		}
		log.Debug("patched build config",
			zap.String("path", res.Path),
			zap.Bool("created", res.Created),
			zap.Bool("changed", res.Changed),
		)
		return nil
	}
}

func writeTailwindCSS(_ context.Context, workDir string) error {
	path := filepath.Join(workDir, "src", "index.css")
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, []byte(TailwindCSS), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
