package ui

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/huh"
)

// ErrCancelled is returned when the user aborts a prompt.
var ErrCancelled = errors.New("cancelled by user")

// AskProjectName prompts for the name of the app to create.
func AskProjectName() (string, error) {
	var name string
	input := huh.NewInput().
		Title("Enter your React app name").
		Placeholder("my-app").
		Validate(ValidateProjectName).
		Value(&name)

	form := huh.NewForm(huh.NewGroup(input)).WithAccessible(false)
	if err := form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return "", ErrCancelled
		}
		return "", fmt.Errorf("reading project name: %w", err)
	}
	return strings.TrimSpace(name), nil
}

// ValidateProjectName rejects names that cannot be a project directory.
func ValidateProjectName(name string) error {
	name = strings.TrimSpace(name)
	switch filepath.Clean(name) {
	case "", ".", "..":
		return errors.New("a project name is required")
	}
	if strings.ContainsAny(name, "\x00") {
		return errors.New("project name contains a NUL byte")
	}
	return nil
}
