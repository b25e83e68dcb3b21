// Package manifest reads and validates the package.json manifest of a
// scaffolded project. Validation runs against an embedded JSON Schema that
// captures what the generated project relies on: an npm-compatible name, an
// ES module package type, and the dev/build scripts.
package manifest
