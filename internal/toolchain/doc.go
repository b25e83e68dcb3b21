// Package toolchain locates the external tools a scaffolded project depends
// on (node, npm, git) and checks their versions against semver constraints.
package toolchain
