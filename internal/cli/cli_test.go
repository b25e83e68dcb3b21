package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/agentx-labs/reactforge/internal/config"
	"github.com/agentx-labs/reactforge/internal/patch"
	"github.com/agentx-labs/reactforge/internal/project"
	"github.com/agentx-labs/reactforge/internal/toolchain"
	"github.com/agentx-labs/reactforge/internal/ui"
)

// execute runs the root command with args against an isolated config dir.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("REACTFORGE_HOME", t.TempDir())
	viper.Reset()
	t.Cleanup(viper.Reset)

	patchImport, patchKey, patchExpr, patchStrategy = "", "", "", ""
	for _, c := range []*bool{&versionShort, &versionJSON} {
		*c = false
	}

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})
	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestPatchCommandDefaultRule(t *testing.T) {
	file := filepath.Join(t.TempDir(), "vite.config.js")
	if err := os.WriteFile(file, []byte("export default defineConfig({\n  plugins: [react()],\n});\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	out, err := execute(t, "patch", file)
	if err != nil {
		t.Fatalf("patch error: %v", err)
	}
	if !strings.Contains(out, "[ OK ] patched "+file) {
		t.Errorf("output = %q, want patched line", out)
	}

	data, err := os.ReadFile(file)
	if err != nil {
		t.Fatal(err)
	}
	want := "import tailwindcss from '@tailwindcss/vite';\nexport default defineConfig({\n  plugins: [tailwindcss(),\n    react()\n  ],\n});\n"
	if string(data) != want {
		t.Errorf("file = %q, want %q", data, want)
	}

	out, err = execute(t, "patch", file)
	if err != nil {
		t.Fatalf("second patch error: %v", err)
	}
	if !strings.Contains(out, "already patched") {
		t.Errorf("second run output = %q, want already patched", out)
	}
}

func TestPatchCommandCustomRuleCreatesFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "vite.config.js")

	out, err := execute(t, "patch", file,
		"--import", "import svgr from 'vite-plugin-svgr';",
		"--key", "plugins",
		"--expr", "svgr()",
		"--strategy", "regex",
	)
	if err != nil {
		t.Fatalf("patch error: %v", err)
	}
	if !strings.Contains(out, "[ OK ] created") {
		t.Errorf("output = %q, want created line", out)
	}
	data, err := os.ReadFile(file)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(data), "import svgr from 'vite-plugin-svgr';\nexport default {") {
		t.Errorf("file = %q", data)
	}
}

func TestPatchCommandNoMatch(t *testing.T) {
	file := filepath.Join(t.TempDir(), "vite.config.js")
	original := "export default { server: { port: 3000 } };\n"
	if err := os.WriteFile(file, []byte(original), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := execute(t, "patch", file)
	if err == nil {
		t.Fatal("expected error when no plugins array exists")
	}
	if n := strings.Count(err.Error(), `"plugins"`); n != 1 {
		t.Errorf("error = %v, want the key named once, got %d", err, n)
	}
	if !strings.Contains(err.Error(), file) {
		t.Errorf("error = %v, want it to name the file", err)
	}
	data, _ := os.ReadFile(file)
	if string(data) != original {
		t.Errorf("file was modified: %q", data)
	}
}

func TestPatchCommandPartialRuleFlags(t *testing.T) {
	_, err := execute(t, "patch", filepath.Join(t.TempDir(), "x.js"), "--key", "plugins")
	if err == nil {
		t.Fatal("expected error when --import and --expr are missing")
	}
}

func TestVersionCommand(t *testing.T) {
	buildVersion, buildCommit, buildDate = "1.2.3", "abc123", "2026-01-01"

	out, err := execute(t, "version", "--short")
	if err != nil {
		t.Fatal(err)
	}
	if out != "1.2.3\n" {
		t.Errorf("version --short = %q, want %q", out, "1.2.3\n")
	}

	out, err = execute(t, "version")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(out, "reactforge version 1.2.3 (commit: abc123") {
		t.Errorf("version = %q", out)
	}
}

func TestConfigCommands(t *testing.T) {
	home := t.TempDir()
	t.Setenv("REACTFORGE_HOME", home)
	viper.Reset()
	t.Cleanup(viper.Reset)
	if err := config.Load(); err != nil {
		t.Fatal(err)
	}

	var out bytes.Buffer
	configSetCmd.SetOut(&out)
	configGetCmd.SetOut(&out)
	t.Cleanup(func() {
		configSetCmd.SetOut(nil)
		configGetCmd.SetOut(nil)
	})
	if err := configSetCmd.RunE(configSetCmd, []string{"patch_strategy", "regex"}); err != nil {
		t.Fatalf("config set error: %v", err)
	}
	if err := configGetCmd.RunE(configGetCmd, []string{"patch_strategy"}); err != nil {
		t.Fatalf("config get error: %v", err)
	}
	if got := out.String(); got != "Set patch_strategy = regex\nregex\n" {
		t.Errorf("output = %q", got)
	}

	if err := configSetCmd.RunE(configSetCmd, []string{"patch_strategy", "ast"}); err == nil {
		t.Error("expected error for invalid strategy")
	}
	if _, err := os.Stat(filepath.Join(home, "config.yaml")); err != nil {
		t.Errorf("config file not written: %v", err)
	}
}

func TestCreateOptionsFlagsOverrideSettings(t *testing.T) {
	settings := config.Defaults()
	settings.CommandTimeout = time.Minute

	if err := rootCmd.Flags().Set("no-git", "true"); err != nil {
		t.Fatal(err)
	}
	if err := rootCmd.Flags().Set("source", "vite"); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		createNoGit, createSource = false, ""
		rootCmd.Flags().Lookup("no-git").Changed = false
		rootCmd.Flags().Lookup("source").Changed = false
	})

	opts, spinner, timeout := createOptions(rootCmd, settings)
	if opts.Git {
		t.Error("Git = true, want false from --no-git")
	}
	if opts.Source != "vite" {
		t.Errorf("Source = %q, want %q", opts.Source, "vite")
	}
	if !opts.Install || !opts.Tailwind {
		t.Error("Install and Tailwind should keep their settings")
	}
	if opts.Strategy != patch.StrategyBalanced {
		t.Errorf("Strategy = %q, want %q", opts.Strategy, patch.StrategyBalanced)
	}
	if !spinner {
		t.Error("spinner = false, want setting value true")
	}
	if timeout != time.Minute {
		t.Errorf("timeout = %v, want %v", timeout, time.Minute)
	}
}

func TestResolveName(t *testing.T) {
	name, err := resolveName([]string{" my-app "}, nil, nil)
	if err != nil {
		t.Fatalf("resolveName() error: %v", err)
	}
	if name != "my-app" {
		t.Errorf("name = %q, want %q", name, "my-app")
	}

	if _, err := resolveName([]string{".."}, nil, nil); err == nil {
		t.Error("expected error for '..'")
	}
	if _, err := resolveName(nil, &bytes.Buffer{}, &bytes.Buffer{}); err == nil {
		t.Error("expected error without a terminal")
	}
}

func TestRunToolchainCheck(t *testing.T) {
	var out bytes.Buffer
	reqs := []toolchain.Requirement{
		{Name: "reactforge-missing-tool"},
		{Name: "reactforge-optional-tool", Optional: true},
	}
	failures := runToolchainCheck(context.Background(), &out, reqs)
	if failures != 1 {
		t.Errorf("failures = %d, want 1", failures)
	}
	if got := strings.Count(out.String(), "[MISS]"); got != 2 {
		t.Errorf("MISS lines = %d, want 2\n%s", got, out.String())
	}
}

func TestPreflightReportsMissingTools(t *testing.T) {
	t.Setenv("PATH", t.TempDir())
	var out, errOut bytes.Buffer
	printer := ui.NewPrinter(&out, &errOut)
	cmd := &cobra.Command{}
	cmd.SetContext(context.Background())

	err := preflight(cmd, printer, project.Options{Name: "app", Git: true, Install: true})
	if err == nil {
		t.Fatal("preflight() expected error with an empty PATH")
	}
	for _, name := range []string{"node", "npm", "git"} {
		if !strings.Contains(err.Error(), name) {
			t.Errorf("error %q does not name %s", err, name)
		}
	}
	if !strings.Contains(err.Error(), "doctor") {
		t.Errorf("error %q does not point at doctor", err)
	}

	if err := preflight(cmd, printer, project.Options{Name: "app"}); err != nil {
		t.Errorf("preflight() without external tools: %v", err)
	}
}

func TestCapitalize(t *testing.T) {
	tests := []struct{ in, want string }{
		{"step 1 failed", "Step 1 failed"},
		{"Already", "Already"},
		{"", ""},
		{"1 thing", "1 thing"},
	}
	for _, tt := range tests {
		if got := capitalize(tt.in); got != tt.want {
			t.Errorf("capitalize(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
