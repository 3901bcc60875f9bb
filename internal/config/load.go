package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/oakwood-commons/tabv/pkg/settings"
)

// FileName is the config file looked up under the XDG config directory.
const FileName = "config.yaml"

// ResolvePath returns explicit when set. Otherwise it returns
// $XDG_CONFIG_HOME/tabv/config.yaml or ~/.config/tabv/config.yaml when that
// file exists, and "" when there is nothing to load.
func ResolvePath(explicit string) string {
	if strings.TrimSpace(explicit) != "" {
		return explicit
	}
	candidate := ""
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		candidate = filepath.Join(xdg, settings.CliBinaryName, FileName)
	} else if home, err := os.UserHomeDir(); err == nil {
		candidate = filepath.Join(home, ".config", settings.CliBinaryName, FileName)
	}
	if candidate == "" {
		return ""
	}
	if st, err := os.Stat(candidate); err == nil && !st.IsDir() {
		return candidate
	}
	return ""
}

// Load parses the config file at path. An empty path yields an empty Config.
func Load(path string) (Config, error) {
	if path == "" {
		return Config{}, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	return Parse(data)
}

// Parse decodes config YAML, rejecting unknown keys so typos surface early.
func Parse(data []byte) (Config, error) {
	var cfg Config
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

// ApplyTo copies the non-empty fields of c onto run. Callers apply flags
// afterwards so the command line wins.
func (c Config) ApplyTo(run *settings.Run) {
	if v := strings.TrimSpace(c.Theme); v != "" {
		run.Theme = v
	}
	if v := strings.TrimSpace(c.KeyMode); v != "" {
		run.KeyMode = v
	}
	if len(c.Patterns) > 0 {
		run.Patterns = append([]string(nil), c.Patterns...)
	}
	if v := strings.TrimSpace(c.Where); v != "" {
		run.Where = v
	}
	if v := strings.TrimSpace(c.LogFile); v != "" {
		run.LogFile = v
	}
	if c.NoColor != nil {
		run.NoColor = *c.NoColor
	}
}
