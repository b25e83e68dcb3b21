package patch

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
)

// FileResult describes what PatchFile did to a file.
type FileResult struct {
	Path    string
	Created bool // the file did not exist and was written from scratch
	Changed bool // new contents were written
}

// PatchFile reads path, applies rule with p and writes the result back.
// A missing file is patched as empty contents and always written; an
// existing file is only rewritten when its contents changed.
func PatchFile(path string, rule Rule, p Patcher) (*FileResult, error) {
	data, err := os.ReadFile(path)
	absent := errors.Is(err, fs.ErrNotExist)
	if err != nil && !absent {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	original := string(data)
	patched, err := p.Apply(original, rule)
	if err != nil {
		return nil, fmt.Errorf("patching %s: %w", path, err)
	}

	result := &FileResult{Path: path, Created: absent}
	if !absent && patched == original {
		return result, nil
	}

	if err := os.WriteFile(path, []byte(patched), 0o644); err != nil {
		return nil, fmt.Errorf("writing %s: %w", path, err)
	}
	result.Changed = true
	return result, nil
}
