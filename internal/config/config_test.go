package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/viper"
)

func setup(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("REACTFORGE_HOME", dir)
	viper.Reset()
	t.Cleanup(viper.Reset)
	return dir
}

func TestDirOverride(t *testing.T) {
	dir := setup(t)
	if got := Dir(); got != dir {
		t.Errorf("Dir() = %q, want %q", got, dir)
	}
	if got := FilePath(); got != filepath.Join(dir, "config.yaml") {
		t.Errorf("FilePath() = %q", got)
	}
}

func TestLoadDefaults(t *testing.T) {
	setup(t)
	if err := Load(); err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	s, err := Current()
	if err != nil {
		t.Fatalf("Current() error: %v", err)
	}
	if s != Defaults() {
		t.Errorf("Current() = %+v, want %+v", s, Defaults())
	}
}

func TestLoadFromFile(t *testing.T) {
	dir := setup(t)
	content := "source: vite\npatch_strategy: regex\ncommand_timeout: 90s\ngit: false\n"
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := Load(); err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	s, err := Current()
	if err != nil {
		t.Fatalf("Current() error: %v", err)
	}
	if s.Source != "vite" {
		t.Errorf("Source = %q, want %q", s.Source, "vite")
	}
	if s.PatchStrategy != "regex" {
		t.Errorf("PatchStrategy = %q, want %q", s.PatchStrategy, "regex")
	}
	if s.CommandTimeout != 90*time.Second {
		t.Errorf("CommandTimeout = %v, want %v", s.CommandTimeout, 90*time.Second)
	}
	if s.Git {
		t.Error("Git = true, want false")
	}
	if !s.Install {
		t.Error("Install = false, want default true")
	}
}

func TestLoadFromEnv(t *testing.T) {
	setup(t)
	t.Setenv("REACTFORGE_PATCH_STRATEGY", "regex")
	if err := Load(); err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	s, err := Current()
	if err != nil {
		t.Fatalf("Current() error: %v", err)
	}
	if s.PatchStrategy != "regex" {
		t.Errorf("PatchStrategy = %q, want %q", s.PatchStrategy, "regex")
	}
}

func TestCurrentRejectsInvalid(t *testing.T) {
	dir := setup(t)
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("source: angular\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := Load(); err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	_, err := Current()
	if err == nil {
		t.Fatal("expected error for invalid source")
	}
	if !strings.Contains(err.Error(), "source") {
		t.Errorf("error should name the key, got: %v", err)
	}
}

func TestSetPersists(t *testing.T) {
	dir := setup(t)
	if err := Load(); err != nil {
		t.Fatal(err)
	}
	if err := Set(KeyInstall, "false"); err != nil {
		t.Fatalf("Set() error: %v", err)
	}
	if err := Set(KeyCommandTimeout, "2m"); err != nil {
		t.Fatalf("Set() error: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "config.yaml"))
	if err != nil {
		t.Fatalf("reading config: %v", err)
	}
	if !strings.Contains(string(data), "install: false") {
		t.Errorf("config file missing install setting:\n%s", data)
	}

	viper.Reset()
	if err := Load(); err != nil {
		t.Fatal(err)
	}
	s, err := Current()
	if err != nil {
		t.Fatalf("Current() error: %v", err)
	}
	if s.Install {
		t.Error("Install = true after reload, want false")
	}
	if s.CommandTimeout != 2*time.Minute {
		t.Errorf("CommandTimeout = %v, want 2m", s.CommandTimeout)
	}
}

func TestSetRejects(t *testing.T) {
	setup(t)
	if err := Load(); err != nil {
		t.Fatal(err)
	}
	tests := []struct {
		key, value string
	}{
		{"colour", "blue"},
		{KeyGit, "maybe"},
		{KeyCommandTimeout, "soon"},
		{KeySource, "cra"},
		{KeyPatchStrategy, "ast"},
	}
	for _, tt := range tests {
		if err := Set(tt.key, tt.value); err == nil {
			t.Errorf("Set(%q, %q) succeeded, want error", tt.key, tt.value)
		}
	}
	if got := Get(KeySource); got != "template" {
		t.Errorf("Get(source) = %q after rejected Set, want %q", got, "template")
	}
}

func TestKeys(t *testing.T) {
	keys := Keys()
	if len(keys) != 7 {
		t.Fatalf("len(Keys()) = %d, want 7", len(keys))
	}
	if keys[0] != KeyCommandTimeout {
		t.Errorf("Keys()[0] = %q, want sorted order starting with %q", keys[0], KeyCommandTimeout)
	}
}
