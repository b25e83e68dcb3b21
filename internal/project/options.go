package project

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
	"go.uber.org/zap"

	"github.com/agentx-labs/reactforge/internal/manifest"
	"github.com/agentx-labs/reactforge/internal/patch"
	"github.com/agentx-labs/reactforge/internal/scaffold"
)

// Project sources.
const (
	SourceTemplate = "template"
	SourceVite     = "vite"
)

var (
	// ErrInvalidName is returned for names that do not denote a directory.
	ErrInvalidName = errors.New("invalid project name")

	// ErrForceUnsupported is returned when Force is combined with the vite
	// source. npm create vite asks before overwriting and runs without a
	// terminal, so it cannot proceed in a non-empty directory.
	ErrForceUnsupported = errors.New("--force is only supported with the template source")
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("notblank", validators.NotBlank)
	return v
}

// Options describes one project to create.
type Options struct {
	// Name is the project name or a path to the project directory.
	Name string `validate:"required,notblank"`

	// ParentDir resolves a relative Name. Empty means the current directory.
	ParentDir string

	Source      string `validate:"omitempty,oneof=template vite"`
	TemplateSet string
	Strategy    string `validate:"omitempty,oneof=balanced regex"`

	Git      bool
	Install  bool
	Tailwind bool

	// Force allows writing into an existing non-empty directory. Only the
	// template source honors it.
	Force bool

	Logger *zap.Logger `validate:"-"`

	// Warn receives problems that do not stop the run, such as a generated
	// package.json that does not match the schema. Nil discards them.
	Warn func(string) `validate:"-"`
}

func (o *Options) withDefaults() {
	if o.Source == "" {
		o.Source = SourceTemplate
	}
	if o.TemplateSet == "" {
		o.TemplateSet = scaffold.DefaultSet
	}
	if o.Strategy == "" {
		o.Strategy = patch.StrategyBalanced
	}
	if o.Logger == nil {
		o.Logger = zap.NewNop()
	}
	if o.Warn == nil {
		o.Warn = func(string) {}
	}
}

// Validate checks the options before planning.
func (o *Options) Validate() error {
	if err := validate.Struct(o); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			var fields []string
			for _, fe := range verrs {
				fields = append(fields, fmt.Sprintf("%s (%s)", strings.ToLower(fe.Field()), fe.Tag()))
			}
			return fmt.Errorf("invalid options: %s", strings.Join(fields, ", "))
		}
		return err
	}
	if o.Source == SourceVite && o.Force {
		return ErrForceUnsupported
	}
	return nil
}

// Paths resolves the project root directory and derives the npm package
// name from its base name.
func Paths(name, parent string) (root, pkg string, err error) {
	name = strings.TrimSpace(name)
	clean := filepath.Clean(name)
	if name == "" || clean == "." || clean == ".." || clean == string(filepath.Separator) {
		return "", "", fmt.Errorf("%w: %q", ErrInvalidName, name)
	}

	if filepath.IsAbs(clean) {
		root = clean
	} else {
		if parent == "" {
			parent = "."
		}
		root = filepath.Join(parent, clean)
	}
	root, err = filepath.Abs(root)
	if err != nil {
		return "", "", fmt.Errorf("resolving %s: %w", name, err)
	}
	return root, manifest.PackageName(filepath.Base(root)), nil
}
