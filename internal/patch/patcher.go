package patch

import (
	"fmt"
	"strings"
)

// Supported matching strategies.
const (
	// StrategyBalanced scans to the bracket that actually closes the array
	// literal, skipping strings and comments.
	StrategyBalanced = "balanced"

	// StrategyRegex stops at the first "]" after the opener, as the
	// original scaffolding tool did. Unlike that tool it still requires the
	// key to start at an identifier boundary.
	StrategyRegex = "regex"
)

// Patcher applies a Rule to file contents and returns the new contents.
// Implementations must be pure and idempotent: applying the same rule to
// their own output returns it unchanged.
type Patcher interface {
	Apply(contents string, rule Rule) (string, error)
}

// New returns the Patcher for the named strategy. An empty name selects
// StrategyBalanced.
func New(strategy string) (Patcher, error) {
	switch strategy {
	case "", StrategyBalanced:
		return &textPatcher{locate: locateBalanced}, nil
	case StrategyRegex:
		return &textPatcher{locate: locateRegex}, nil
	default:
		return nil, fmt.Errorf("unknown patch strategy %q: supported strategies are %q and %q",
			strategy, StrategyBalanced, StrategyRegex)
	}
}

// locator returns the byte range [start, end) of the body of the first array
// literal keyed by key. contents[end] is the closing bracket.
type locator func(contents, key string) (start, end int, ok bool)

type textPatcher struct {
	locate locator
}

func (p *textPatcher) Apply(contents string, rule Rule) (string, error) {
	if err := rule.Validate(); err != nil {
		return "", err
	}

	if strings.Contains(contents, rule.Marker()) {
		return contents, nil
	}

	// Absent, empty and whitespace-only files all start from the same stub.
	if strings.TrimSpace(contents) == "" {
		contents = bootstrap(rule.ArrayKey)
	}

	start, end, ok := p.locate(contents, rule.ArrayKey)
	if !ok {
		return "", fmt.Errorf("%w: no %q array in contents", ErrNoMatchFound, rule.ArrayKey)
	}

	var b strings.Builder
	b.Grow(len(rule.Import) + len(contents) + len(rule.Expression) + 16)
	b.WriteString(rule.Import)
	b.WriteString("\n")
	b.WriteString(contents[:start])
	b.WriteString(arrayBody(rule.Expression, contents[start:end]))
	b.WriteString(contents[end+1:])
	return b.String(), nil
}

// arrayBody rebuilds the inside of the array literal, closing bracket
// included. Existing elements are kept as one verbatim trailing element.
func arrayBody(expr, existing string) string {
	elems := []string{expr}
	if trimmed := strings.TrimSpace(existing); trimmed != "" {
		elems = append(elems, trimmed)
	}
	return strings.Join(elems, ",\n    ") + "\n  ]"
}

// bootstrap is the module body used when there is no file to patch yet.
func bootstrap(key string) string {
	return "export default {\n  " + key + ": []\n};\n"
}
