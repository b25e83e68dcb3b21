package project

import "github.com/agentx-labs/reactforge/internal/toolchain"

// RequiredTools lists the external tools the plan for opts will invoke.
func RequiredTools(opts Options) []toolchain.Requirement {
	var reqs []toolchain.Requirement
	if opts.Source == SourceVite || opts.Install || opts.Tailwind {
		reqs = append(reqs, toolchain.Node, toolchain.NPM)
	}
	if opts.Git {
		reqs = append(reqs, toolchain.Git)
	}
	return reqs
}
