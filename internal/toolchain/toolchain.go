package toolchain

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"time"
)

// Requirement names a tool and the versions a project needs.
type Requirement struct {
	Name       string
	Constraint string // semver constraint; empty accepts any version
	Optional   bool
}

// Requirements for a Vite + React + Tailwind project.
var (
	Node = Requirement{Name: "node", Constraint: ">= 20.19.0"}
	NPM  = Requirement{Name: "npm", Constraint: ">= 9.0.0"}
	Git  = Requirement{Name: "git", Constraint: ">= 2.0.0"}
)

// DefaultRequirements lists every tool the scaffolder may invoke.
func DefaultRequirements() []Requirement {
	return []Requirement{Node, NPM, Git}
}

// Status is the outcome of checking one Requirement.
type Status struct {
	Requirement
	Path      string
	Version   string
	Found     bool
	Satisfied bool
	Err       error // version could not be determined or parsed
}

// versionTimeout bounds each "<tool> --version" probe.
const versionTimeout = 10 * time.Second

// Check locates the tool on PATH and compares its version with the
// requirement's constraint.
func Check(ctx context.Context, req Requirement) Status {
	st := Status{Requirement: req}

	path, err := exec.LookPath(req.Name)
	if err != nil {
		st.Err = err
		return st
	}
	st.Path = path
	st.Found = true

	ctx, cancel := context.WithTimeout(ctx, versionTimeout)
	defer cancel()

	var out bytes.Buffer
	cmd := exec.CommandContext(ctx, path, "--version")
	cmd.Stdout = &out
	if err := cmd.Run(); err != nil {
		st.Err = fmt.Errorf("running %s --version: %w", req.Name, err)
		return st
	}

	version, err := ExtractVersion(out.String())
	if err != nil {
		st.Err = err
		return st
	}
	st.Version = version

	if req.Constraint == "" {
		st.Satisfied = true
		return st
	}
	ok, err := Satisfies(version, req.Constraint)
	if err != nil {
		st.Err = err
		return st
	}
	st.Satisfied = ok
	return st
}

// CheckAll checks each requirement in order.
func CheckAll(ctx context.Context, reqs []Requirement) []Status {
	out := make([]Status, 0, len(reqs))
	for _, r := range reqs {
		out = append(out, Check(ctx, r))
	}
	return out
}

// Missing returns the non-optional requirements that were not found.
func Missing(statuses []Status) []string {
	var names []string
	for _, s := range statuses {
		if !s.Found && !s.Optional {
			names = append(names, s.Name)
		}
	}
	return names
}
