package scaffold

import (
	"bytes"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
	"text/template"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/agentx-labs/reactforge/internal/manifest"
)

const (
	tmplSuffix = ".tmpl"
	dotPrefix  = "dot-"
)

// Data holds the variables available to .tmpl files.
type Data struct {
	Name        string // directory name as typed, e.g. "my-app"
	PackageName string // npm package name derived from Name
	Title       string // human title, e.g. "My App"
	Year        int
}

// NewData derives template variables from a project name.
func NewData(name string) *Data {
	words := strings.NewReplacer("-", " ", "_", " ", ".", " ").Replace(name)
	return &Data{
		Name:        name,
		PackageName: manifest.PackageName(name),
		Title:       cases.Title(language.English).String(strings.Join(strings.Fields(words), " ")),
		Year:        time.Now().Year(),
	}
}

// Entry is one file of the catalog, relative to the project root.
type Entry struct {
	Path     string // slash-separated
	Contents []byte
}

// Result holds the outcome of a scaffold generation.
type Result struct {
	OutputDir string
	Files     []string
	Warnings  []string
}

// Sets lists the embedded template set names.
func Sets() []string {
	dirs, err := fs.ReadDir(templateFS, "templates")
	if err != nil {
		return nil
	}
	var names []string
	for _, d := range dirs {
		if d.IsDir() {
			names = append(names, d.Name())
		}
	}
	return names
}

// Entries renders a template set into its ordered file catalog.
func Entries(set string, data *Data) ([]Entry, error) {
	root := path.Join("templates", set)
	if info, err := fs.Stat(templateFS, root); err != nil || !info.IsDir() {
		return nil, fmt.Errorf("template set %q not found (available: %s)", set, strings.Join(Sets(), ", "))
	}

	var entries []Entry
	err := fs.WalkDir(templateFS, root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		raw, err := fs.ReadFile(templateFS, p)
		if err != nil {
			return fmt.Errorf("reading template %s: %w", p, err)
		}
		rel := strings.TrimPrefix(p, root+"/")
		out := outputPath(rel)

		if strings.HasSuffix(rel, tmplSuffix) {
			raw, err = render(rel, raw, data)
			if err != nil {
				return err
			}
		}
		entries = append(entries, Entry{Path: out, Contents: raw})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return entries, nil
}

// outputPath strips the .tmpl suffix and maps a dot- prefix on the base
// name to a leading dot.
func outputPath(rel string) string {
	rel = strings.TrimSuffix(rel, tmplSuffix)
	dir, base := path.Split(rel)
	if strings.HasPrefix(base, dotPrefix) {
		base = "." + strings.TrimPrefix(base, dotPrefix)
	}
	return dir + base
}

func render(name string, raw []byte, data *Data) ([]byte, error) {
	tmpl, err := template.New(name).Option("missingkey=error").Parse(string(raw))
	if err != nil {
		return nil, fmt.Errorf("parsing template %s: %w", name, err)
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("executing template %s: %w", name, err)
	}
	return buf.Bytes(), nil
}

// Write writes entries below root, creating parent directories and
// overwriting existing files. Unless force is set, root must be empty
// or absent.
func Write(root string, entries []Entry, force bool) ([]string, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}
	if !force {
		existing, err := os.ReadDir(root)
		if err == nil && len(existing) > 0 {
			return nil, fmt.Errorf("output directory %s is not empty; use --force to write into it", root)
		}
	}

	files := make([]string, 0, len(entries))
	for _, e := range entries {
		target := filepath.Join(root, filepath.FromSlash(e.Path))
		if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
			return files, fmt.Errorf("creating directory for %s: %w", e.Path, err)
		}
		if err := os.WriteFile(target, e.Contents, 0o644); err != nil {
			return files, fmt.Errorf("writing %s: %w", target, err)
		}
		files = append(files, e.Path)
	}
	return files, nil
}

// Generate renders a template set and writes it into outputDir. The
// generated package.json is validated; schema issues are reported as
// warnings rather than errors.
func Generate(set string, data *Data, outputDir string, force bool) (*Result, error) {
	entries, err := Entries(set, data)
	if err != nil {
		return nil, err
	}
	files, err := Write(outputDir, entries, force)
	if err != nil {
		return nil, err
	}

	result := &Result{OutputDir: outputDir, Files: files}

	manifestFile := filepath.Join(outputDir, manifest.FileName)
	if _, err := os.Stat(manifestFile); err == nil {
		valResult, valErr := manifest.ValidateFile(manifestFile)
		if valErr != nil {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("Could not validate %s: %v", manifest.FileName, valErr))
		} else if !valResult.Valid {
			for _, issue := range valResult.Issues {
				result.Warnings = append(result.Warnings, issue.Message)
			}
		}
	}

	return result, nil
}
