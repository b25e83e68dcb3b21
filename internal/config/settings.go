package config

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Setting keys.
const (
	KeySource         = "source"
	KeyPatchStrategy  = "patch_strategy"
	KeyCommandTimeout = "command_timeout"
	KeyGit            = "git"
	KeyInstall        = "install"
	KeyTailwind       = "tailwind"
	KeySpinner        = "spinner"
)

// Settings are the typed user settings.
type Settings struct {
	Source         string        `mapstructure:"source" validate:"oneof=template vite"`
	PatchStrategy  string        `mapstructure:"patch_strategy" validate:"oneof=balanced regex"`
	CommandTimeout time.Duration `mapstructure:"command_timeout" validate:"gte=0"`
	Git            bool          `mapstructure:"git"`
	Install        bool          `mapstructure:"install"`
	Tailwind       bool          `mapstructure:"tailwind"`
	Spinner        bool          `mapstructure:"spinner"`
}

// Defaults returns the settings used when nothing is configured.
func Defaults() Settings {
	return Settings{
		Source:        "template",
		PatchStrategy: "balanced",
		Git:           true,
		Install:       true,
		Tailwind:      true,
		Spinner:       true,
	}
}

var validate = validator.New(validator.WithRequiredStructEnabled())

func setDefaults() {
	d := Defaults()
	viper.SetDefault(KeySource, d.Source)
	viper.SetDefault(KeyPatchStrategy, d.PatchStrategy)
	viper.SetDefault(KeyCommandTimeout, d.CommandTimeout)
	viper.SetDefault(KeyGit, d.Git)
	viper.SetDefault(KeyInstall, d.Install)
	viper.SetDefault(KeyTailwind, d.Tailwind)
	viper.SetDefault(KeySpinner, d.Spinner)
}

// Keys lists the known setting keys in sorted order.
func Keys() []string {
	keys := []string{KeySource, KeyPatchStrategy, KeyCommandTimeout, KeyGit, KeyInstall, KeyTailwind, KeySpinner}
	sort.Strings(keys)
	return keys
}

// Current decodes and validates the loaded settings.
func Current() (Settings, error) {
	setDefaults()
	var s Settings
	if err := viper.Unmarshal(&s); err != nil {
		return Settings{}, fmt.Errorf("decoding settings: %w", err)
	}
	if err := validate.Struct(s); err != nil {
		return Settings{}, describe(err)
	}
	return s, nil
}

func describe(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fmt.Sprintf("%s: %v is not allowed (%s=%s)",
			toKey(fe.Field()), fe.Value(), fe.Tag(), fe.Param()))
	}
	return fmt.Errorf("invalid settings: %s", strings.Join(msgs, "; "))
}

func toKey(field string) string {
	switch field {
	case "PatchStrategy":
		return KeyPatchStrategy
	case "CommandTimeout":
		return KeyCommandTimeout
	}
	return strings.ToLower(field)
}

func parseValue(key, value string) (any, error) {
	switch key {
	case KeySource, KeyPatchStrategy:
		return strings.TrimSpace(value), nil
	case KeyCommandTimeout:
		d, err := time.ParseDuration(value)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", key, err)
		}
		return d.String(), nil
	case KeyGit, KeyInstall, KeyTailwind, KeySpinner:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return nil, fmt.Errorf("%s: expected true or false, got %q", key, value)
		}
		return b, nil
	}
	return nil, fmt.Errorf("unknown setting %q (known: %s)", key, strings.Join(Keys(), ", "))
}

func asNotFound(err error, target *viper.ConfigFileNotFoundError) bool {
	if errors.As(err, target) {
		return true
	}
	var pathErr *os.PathError
	return errors.As(err, &pathErr) && os.IsNotExist(pathErr)
}
