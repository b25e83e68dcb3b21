package patch

import (
	"regexp"
	"strings"
)

// keyPrefix keeps "plugins" from matching inside "myPlugins", "$plugins" or
// "éplugins". JavaScript identifiers may contain any Unicode letter.
const keyPrefix = `(?:^|[^\p{L}\p{N}\p{Mn}\p{Mc}\p{Pc}$])`

func openerPattern(key string) *regexp.Regexp {
	return regexp.MustCompile(keyPrefix + regexp.QuoteMeta(key) + `:\s*\[`)
}

// locateRegex takes the shortest run up to the next "]". It mis-matches when
// the literal holds a nested array or a "]" inside a string.
func locateRegex(contents, key string) (int, int, bool) {
	re := regexp.MustCompile(`(?s)` + keyPrefix + regexp.QuoteMeta(key) + `:\s*\[(.*?)\]`)
	loc := re.FindStringSubmatchIndex(contents)
	if loc == nil {
		return 0, 0, false
	}
	return loc[2], loc[3], true
}

// locateBalanced finds the first opener that sits in code and has a matching
// closing bracket.
func locateBalanced(contents, key string) (int, int, bool) {
	for _, loc := range openerPattern(key).FindAllStringIndex(contents, -1) {
		keyStart := strings.LastIndex(contents[loc[0]:loc[1]], key) + loc[0]
		if !inCode(contents, keyStart) {
			continue
		}
		if end, ok := closingBracket(contents, loc[1]); ok {
			return loc[1], end, true
		}
	}
	return 0, 0, false
}

// closingBracket returns the index of the "]" that closes a literal whose
// body starts at start.
func closingBracket(s string, start int) (int, bool) {
	depth := 1
	for i := start; i < len(s); {
		if next, skipped := skipNonCode(s, i); skipped {
			i = next
			continue
		}
		switch s[i] {
		case '[':
			depth++
		case ']':
			depth--
			if depth == 0 {
				return i, true
			}
		}
		i++
	}
	return 0, false
}

// inCode reports whether pos lies outside every string literal and comment.
func inCode(s string, pos int) bool {
	for i := 0; i < len(s) && i <= pos; {
		next, skipped := skipNonCode(s, i)
		if !skipped {
			i++
			continue
		}
		if pos < next {
			return false
		}
		i = next
	}
	return true
}

// skipNonCode reports whether a string literal or comment starts at i and, if
// so, returns the index just past it. Unterminated constructs run to the end
// of s. Template literal substitutions and regex literals are not tracked.
func skipNonCode(s string, i int) (int, bool) {
	switch c := s[i]; c {
	case '\'', '"', '`':
		for j := i + 1; j < len(s); j++ {
			switch s[j] {
			case '\\':
				j++
			case c:
				return j + 1, true
			case '\n':
				if c != '`' {
					return j, true
				}
			}
		}
		return len(s), true
	case '/':
		if i+1 >= len(s) {
			return 0, false
		}
		switch s[i+1] {
		case '/':
			if j := strings.IndexByte(s[i:], '\n'); j >= 0 {
				return i + j, true
			}
			return len(s), true
		case '*':
			if j := strings.Index(s[i+2:], "*/"); j >= 0 {
				return i + 2 + j + 2, true
			}
			return len(s), true
		}
	}
	return 0, false
}
