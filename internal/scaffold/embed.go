package scaffold

import "embed"

// templateFS holds one directory per template set under templates/.
//
//go:embed templates
var templateFS embed.FS

// DefaultSet is the template set used when none is named.
const DefaultSet = "react"
