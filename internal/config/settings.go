// Package config loads the golox CLI settings file.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"
)

const (
	DefaultPrompt             = "> "
	DefaultContinuationPrompt = ". "
	DefaultColor              = ColorAuto
	DefaultMaxCallDepth       = 1024

	// MaxCallDepthLimit caps MaxCallDepth; deeper Go recursion risks
	// exhausting the goroutine stack before the guard fires.
	MaxCallDepthLimit = 100000
)

// Color modes for diagnostics.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

type Settings struct {
	Prompt             string `toml:"prompt"`
	ContinuationPrompt string `toml:"continuation_prompt"`
	Color              string `toml:"color"`
	MaxCallDepth       int    `toml:"max_call_depth"`
	HistoryFile        string `toml:"history_file"`
}

// DefaultSettings returns the settings used when no file exists.
func DefaultSettings() Settings {
	return Normalise(Settings{})
}

// Dir returns the directory holding settings.toml: $GOLOX_CONFIG_DIR if set,
// otherwise golox under the user configuration directory.
func Dir() string {
	if dir := os.Getenv("GOLOX_CONFIG_DIR"); dir != "" {
		return dir
	}
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "golox")
	}
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "golox")
	}
	return filepath.Join(".", ".golox")
}

// Load reads settings from path, or from Dir()/settings.toml when path is
// empty. A missing default file yields the defaults; a missing explicit
// path is an error.
func Load(path string) (Settings, error) {
	explicit := path != ""
	if !explicit {
		path = filepath.Join(Dir(), "settings.toml")
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) && !explicit {
		return DefaultSettings(), nil
	}
	if err != nil {
		return Settings{}, fmt.Errorf("read settings %q: %w", path, err)
	}

	settings, err := decodeSettings(data)
	if err != nil {
		return Settings{}, fmt.Errorf("parse settings %q: %w", path, err)
	}
	return Normalise(settings), nil
}

func decodeSettings(data []byte) (Settings, error) {
	var settings Settings
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&settings); err != nil {
		return Settings{}, err
	}
	return settings, nil
}

// Normalise fills unset fields with defaults, replaces an unknown colour
// mode with auto and clamps the call depth.
func Normalise(s Settings) Settings {
	if s.Prompt == "" {
		s.Prompt = DefaultPrompt
	}
	if s.ContinuationPrompt == "" {
		s.ContinuationPrompt = DefaultContinuationPrompt
	}
	switch s.Color {
	case ColorAuto, ColorAlways, ColorNever:
	default:
		s.Color = DefaultColor
	}
	switch {
	case s.MaxCallDepth <= 0:
		s.MaxCallDepth = DefaultMaxCallDepth
	case s.MaxCallDepth > MaxCallDepthLimit:
		s.MaxCallDepth = MaxCallDepthLimit
	}
	if s.HistoryFile == "" {
		s.HistoryFile = filepath.Join(Dir(), "history")
	}
	return s
}

// Marshal encodes s as TOML.
func Marshal(s Settings) ([]byte, error) {
	data, err := toml.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("encode settings: %w", err)
	}
	return data, nil
}
