// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package main

import (
	"context"
	"errors"
	"flag"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"go.astrophena.name/precheck/internal/cli"
	"go.astrophena.name/precheck/internal/config"
	"go.astrophena.name/precheck/internal/gate"
	"go.astrophena.name/precheck/internal/logger"
)

const hookShellScript = `#!/bin/sh
echo "==> Running pre-commit check..."
precheck
`

func main() { cli.Main(new(app)) }

type app struct {
	dir         string
	configPath  string
	skipInstall bool
	verbose     bool

	// Test seams, nil in production.
	lookPath func(string) (string, error)
	exec     func(ctx context.Context, dir, name string, args ...string) error
}

func (a *app) Flags(f *flag.FlagSet) {
	f.StringVar(&a.dir, "C", ".", "Run as if started in `dir`.")
	f.StringVar(&a.configPath, "config", config.DefaultPath, "Path of the configuration `file`, relative to the repository root.")
	f.BoolVar(&a.skipInstall, "skip-install", false, "Skip dependency installation.")
	f.BoolVar(&a.verbose, "verbose", false, "Enable debug logging.")
}

func (a *app) Run(ctx context.Context) error {
	env := cli.GetEnv(ctx)

	level := new(slog.LevelVar)
	if a.verbose {
		level.Set(slog.LevelDebug)
	}
	ctx = logger.Put(ctx, logger.New(env.Stderr, level))

	configPath := a.configPath
	if !filepath.IsAbs(configPath) {
		configPath = filepath.Join(a.dir, configPath)
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	if env.Getenv("CI") != "true" {
		if err := installHook(ctx, a.dir); err != nil {
			return err
		}
	}

	r := gate.New(cfg)
	r.Dir = a.dir
	r.SkipInstall = a.skipInstall
	r.LookPath = a.lookPath
	r.Exec = a.exec
	return r.Run(ctx)
}

// installHook writes the pre-commit hook script on first use. A directory
// that is not a Git repository is left alone, and an existing hook is
// never overwritten.
func installHook(ctx context.Context, dir string) error {
	hooksDir := filepath.Join(dir, ".git", "hooks")
	if _, err := os.Stat(hooksDir); err != nil {
		logger.Debug(ctx, "not installing hook", slog.String("reason", err.Error()))
		return nil
	}
	hookPath := filepath.Join(hooksDir, "pre-commit")
	if _, err := os.Stat(hookPath); err == nil {
		return nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return os.WriteFile(hookPath, []byte(hookShellScript), 0o755)
}
