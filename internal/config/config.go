// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

// Package config loads precheck's optional TOML configuration.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/BurntSushi/toml"
)

// DefaultPath is the configuration file precheck looks for in the
// repository root.
const DefaultPath = ".precheck.toml"

// Config holds the tool binding of a gate run. The zero value is not
// useful; start from [Default].
type Config struct {
	// Binary names, resolved through PATH.
	Python string
	Pip    string
	Isort  string
	Black  string
	Flake8 string
	Pytest string

	// Requirements is the path of the dependency manifest, relative to the
	// repository root.
	Requirements string
	// TestsDir is the directory tests are discovered in.
	TestsDir string
	// MaxLineLength is enforced by the style lint pass.
	MaxLineLength int
	// SkipInstall disables the dependency-install stage.
	SkipInstall bool
}

// Default returns the stock configuration: the conventional Python
// toolchain with flake8's community-wide line length of 127.
func Default() Config {
	return Config{
		Python:        "python3",
		Pip:           "pip3",
		Isort:         "isort",
		Black:         "black",
		Flake8:        "flake8",
		Pytest:        "pytest",
		Requirements:  "requirements.txt",
		TestsDir:      "tests",
		MaxLineLength: 127,
	}
}

// fileConfig is the on-disk key mapping. Every key is optional; absent keys
// keep their defaults.
type fileConfig struct {
	Python        string `toml:"python"`
	Pip           string `toml:"pip"`
	Isort         string `toml:"isort"`
	Black         string `toml:"black"`
	Flake8        string `toml:"flake8"`
	Pytest        string `toml:"pytest"`
	Requirements  string `toml:"requirements"`
	TestsDir      string `toml:"tests_dir"`
	MaxLineLength int    `toml:"max_line_length"`
	SkipInstall   bool   `toml:"skip_install"`
}

// Load reads the configuration file at path, overlaying it over [Default].
// A missing file is not an error and yields the defaults unchanged; a
// malformed file is.
func Load(path string) (Config, error) {
	cfg := Default()

	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("load config %q: %w", path, err)
	}

	if meta.IsDefined("python") {
		cfg.Python = strings.TrimSpace(raw.Python)
	}
	if meta.IsDefined("pip") {
		cfg.Pip = strings.TrimSpace(raw.Pip)
	}
	if meta.IsDefined("isort") {
		cfg.Isort = strings.TrimSpace(raw.Isort)
	}
	if meta.IsDefined("black") {
		cfg.Black = strings.TrimSpace(raw.Black)
	}
	if meta.IsDefined("flake8") {
		cfg.Flake8 = strings.TrimSpace(raw.Flake8)
	}
	if meta.IsDefined("pytest") {
		cfg.Pytest = strings.TrimSpace(raw.Pytest)
	}
	if meta.IsDefined("requirements") {
		cfg.Requirements = strings.TrimSpace(raw.Requirements)
	}
	if meta.IsDefined("tests_dir") {
		cfg.TestsDir = strings.TrimSpace(raw.TestsDir)
	}
	if meta.IsDefined("max_line_length") {
		cfg.MaxLineLength = raw.MaxLineLength
	}
	if meta.IsDefined("skip_install") {
		cfg.SkipInstall = raw.SkipInstall
	}

	return cfg, cfg.validate()
}

func (c Config) validate() error {
	for name, val := range map[string]string{
		"python": c.Python,
		"pip":    c.Pip,
		"isort":  c.Isort,
		"black":  c.Black,
		"flake8": c.Flake8,
		"pytest": c.Pytest,
	} {
		if val == "" {
			return fmt.Errorf("config: %s must not be empty", name)
		}
	}
	if c.MaxLineLength <= 0 {
		return fmt.Errorf("config: max_line_length must be positive, got %d", c.MaxLineLength)
	}
	return nil
}
