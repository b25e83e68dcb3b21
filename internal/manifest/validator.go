package manifest

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"github.com/santhosh-tekuri/jsonschema/v6/kind"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

//go:embed schema/package.schema.json
var schemaBytes []byte

var (
	compiledSchema *jsonschema.Schema
	compileOnce    sync.Once
	compileErr     error
	printer        = message.NewPrinter(language.English)
)

// ValidationResult contains the outcome of a schema validation.
type ValidationResult struct {
	Valid  bool
	Issues []ValidationIssue
}

// ValidationIssue is one field that does not match the schema.
type ValidationIssue struct {
	Path    string // JSON pointer to the field, e.g. "/name" or "/scripts/build"
	Message string // names the field, e.g. "scripts.build is required"
	Keyword string // schema keyword that failed, e.g. "required"
}

// getSchema compiles the embedded JSON schema once and returns it.
func getSchema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(schemaBytes))
		if err != nil {
			compileErr = fmt.Errorf("unmarshaling schema JSON: %w", err)
			return
		}

		c := jsonschema.NewCompiler()
		if err := c.AddResource("package.schema.json", doc); err != nil {
			compileErr = fmt.Errorf("adding schema resource: %w", err)
			return
		}
		compiledSchema, compileErr = c.Compile("package.schema.json")
		if compileErr != nil {
			compileErr = fmt.Errorf("compiling schema: %w", compileErr)
		}
	})
	return compiledSchema, compileErr
}

// Validate validates package.json bytes against the embedded schema.
// The error return is for malformed JSON or schema compilation failures.
// Validation issues are returned in the ValidationResult.
func Validate(data []byte) (*ValidationResult, error) {
	schema, err := getSchema()
	if err != nil {
		return nil, fmt.Errorf("loading schema: %w", err)
	}

	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", FileName, err)
	}

	err = schema.Validate(inst)
	if err == nil {
		return &ValidationResult{Valid: true}, nil
	}

	var validationErr *jsonschema.ValidationError
	if !errors.As(err, &validationErr) {
		return nil, fmt.Errorf("unexpected validation error type: %w", err)
	}

	return &ValidationResult{
		Valid:  false,
		Issues: extractIssues(validationErr),
	}, nil
}

// ValidateFile reads a package.json file and validates it.
func ValidateFile(path string) (*ValidationResult, error) {
	data, err := readFile(path)
	if err != nil {
		return nil, err
	}
	return Validate(data)
}

// extractIssues flattens the error tree into one issue per failing field.
func extractIssues(ve *jsonschema.ValidationError) []ValidationIssue {
	var issues []ValidationIssue
	collectIssues(ve, &issues)
	if len(issues) == 0 {
		return []ValidationIssue{{Message: ve.Error()}}
	}
	sort.SliceStable(issues, func(i, j int) bool { return issues[i].Path < issues[j].Path })
	return issues
}

func collectIssues(ve *jsonschema.ValidationError, issues *[]ValidationIssue) {
	if len(ve.Causes) > 0 {
		for _, cause := range ve.Causes {
			collectIssues(cause, issues)
		}
		return
	}
	if ve.ErrorKind == nil {
		return
	}

	loc := ve.InstanceLocation
	keyword := ""
	if kw := ve.ErrorKind.KeywordPath(); len(kw) > 0 {
		keyword = kw[len(kw)-1]
	}

	var msg string
	switch k := ve.ErrorKind.(type) {
	case *kind.Required:
		for _, name := range k.Missing {
			field := append(append([]string{}, loc...), name)
			*issues = append(*issues, ValidationIssue{
				Path:    pointer(field),
				Message: fieldName(field) + " is required",
				Keyword: keyword,
			})
		}
		return
	case *kind.Pattern:
		msg = patternMessage(loc, k.Got)
	case *kind.Enum:
		msg = fmt.Sprintf("%s must be %s, got %s", fieldName(loc), oneOf(k.Want), display(k.Got))
	case *kind.Type:
		msg = fmt.Sprintf("%s must be of type %s, got %s", fieldName(loc), strings.Join(k.Want, " or "), k.Got)
	case *kind.MinLength:
		msg = fmt.Sprintf("%s must be at least %d characters", fieldName(loc), k.Want)
	case *kind.MaxLength:
		msg = fmt.Sprintf("%s must be at most %d characters, got %d", fieldName(loc), k.Want, k.Got)
	default:
		msg = fieldName(loc) + ": " + ve.ErrorKind.LocalizedString(printer)
	}
	*issues = append(*issues, ValidationIssue{Path: pointer(loc), Message: msg, Keyword: keyword})
}

// patternMessages describe the expected shape of fields checked by pattern.
var patternMessages = map[string]string{
	"name":    "is not a valid npm package name (lowercase letters, digits, -, ., _ and ~)",
	"version": "is not a semantic version such as 1.0.0",
}

func patternMessage(loc []string, got string) string {
	field := fieldName(loc)
	if hint, ok := patternMessages[field]; ok {
		return fmt.Sprintf("%s %q %s", field, got, hint)
	}
	return fmt.Sprintf("%s %q has an invalid format", field, got)
}

// pointer renders an instance location as a JSON pointer; the root is "".
func pointer(loc []string) string {
	if len(loc) == 0 {
		return ""
	}
	return "/" + strings.Join(loc, "/")
}

// fieldName renders an instance location the way npm names fields, e.g.
// "scripts.build".
func fieldName(loc []string) string {
	if len(loc) == 0 {
		return FileName
	}
	return strings.Join(loc, ".")
}

func oneOf(values []any) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = display(v)
	}
	return strings.Join(parts, " or ")
}

func display(v any) string {
	if s, ok := v.(string); ok {
		return strconv.Quote(s)
	}
	return fmt.Sprint(v)
}
