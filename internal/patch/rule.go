package patch

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("notblank", validators.NotBlank)
	return v
}

// specifierPattern captures the quoted module specifier of an import
// statement: the path after "from", or the path of a side-effect import.
var specifierPattern = regexp.MustCompile(`(?:\bfrom\s*|^\s*import\s*)['"]([^'"\n]+)['"]`)

// Rule describes one idempotent edit: ensure Import is present and insert
// Expression as the first element of the array literal keyed by ArrayKey.
//
// Expression is expected to reference a symbol that Import brings into
// scope. The patcher does not check this.
type Rule struct {
	Import     string `validate:"required,notblank"` // e.g. "import tailwindcss from '@tailwindcss/vite';"
	ArrayKey   string `validate:"required,notblank"` // e.g. "plugins"
	Expression string `validate:"required,notblank"` // e.g. "tailwindcss()"
}

// Validate reports ErrMalformedRule when any field is empty or blank.
func (r Rule) Validate() error {
	err := validate.Struct(r)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			fields = append(fields, fe.Field())
		}
		return fmt.Errorf("%w: empty %s", ErrMalformedRule, strings.Join(fields, ", "))
	}
	return fmt.Errorf("%w: %v", ErrMalformedRule, err)
}

// Marker returns the text whose presence means the rule was already applied:
// the imported module path when one is quoted in Import, otherwise the whole
// trimmed import statement.
func (r Rule) Marker() string {
	if m := specifierPattern.FindStringSubmatch(r.Import); len(m) > 1 {
		return m[1]
	}
	return strings.TrimSpace(r.Import)
}
