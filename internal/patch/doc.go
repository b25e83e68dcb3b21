// Package patch applies idempotent structural edits to generated JavaScript
// build-configuration files. A Rule names an import line to ensure at the top
// of the file and an expression to insert as the first element of a named
// array literal (for example the Vite "plugins" array). Patching is plain text
// substitution; no JavaScript is parsed.
package patch
