// Package cli defines the Cobra command tree for the reactforge CLI. The
// root command creates a project; each other file registers one subcommand
// (patch, doctor, config, version) with the root. Commands only parse
// flags, format output and prompt; the work lives in the internal packages.
package cli
