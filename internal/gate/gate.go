// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

// Package gate runs the pre-commit quality gate: a fixed sequence of
// checks against a Python repository that stops at the first failure.
//
// The stages run strictly in order: toolchain presence, best-effort
// dependency installation, import sorting, formatting, a critical lint
// pass, a style lint pass, and the test suite. Every stage except
// dependency installation is fail-fast. Stages return errors instead of
// exiting, so the whole chain is testable without spawning a process.
package gate

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"golang.org/x/term"

	"go.astrophena.name/precheck/internal/cli"
	"go.astrophena.name/precheck/internal/config"
	"go.astrophena.name/precheck/internal/logger"
)

// Errors returned by [Runner.Run], matchable with [errors.Is].
var (
	// ErrMissingTools reports that one or more required tools are absent.
	ErrMissingTools = errors.New("missing required tools")
	// ErrFormatting reports an import sorter or formatter failure.
	ErrFormatting = errors.New("formatting failed")
	// ErrCriticalLint reports syntax or undefined-name errors.
	ErrCriticalLint = errors.New("critical errors found")
	// ErrStyleLint reports style or complexity findings.
	ErrStyleLint = errors.New("style check failed")
	// ErrTests reports a failing test run.
	ErrTests = errors.New("tests failed")
)

// Runner executes the gate against a repository.
//
// The zero value of LookPath and Exec means the real PATH and os/exec are
// used; tests substitute fakes.
type Runner struct {
	// Config is the tool binding. Usually [config.Default] or the result
	// of [config.Load].
	Config config.Config

	// Dir is the repository root. Empty means the current directory.
	Dir string

	// SkipInstall disables the dependency-install stage even when a
	// manifest is present.
	SkipInstall bool

	// LookPath resolves an executable name against the search path.
	LookPath func(file string) (string, error)

	// Exec runs a command in dir and returns an error carrying the
	// command's combined output if it exits non-zero.
	Exec func(ctx context.Context, dir, name string, args ...string) error
}

// New returns a Runner with the given configuration.
func New(cfg config.Config) *Runner {
	return &Runner{Config: cfg}
}

type stage struct {
	command []string
	run     func(context.Context, *cli.Env) error
}

// Run walks the stage chain, printing a progress line per stage to the
// environment's stdout and stopping at the first failing stage.
func (r *Runner) Run(ctx context.Context) error {
	env := cli.GetEnv(ctx)
	cfg := r.Config

	stages := []stage{
		{command: []string{"toolchain"}, run: r.checkTools},
	}
	if r.installEnabled() {
		stages = append(stages, stage{
			command: []string{cfg.Pip, "install", "--user", "-r", cfg.Requirements},
			run:     r.installDeps,
		})
	}
	stages = append(stages,
		stage{command: []string{cfg.Isort, "."}, run: r.sortImports},
		stage{command: []string{cfg.Black, "."}, run: r.format},
		stage{command: r.criticalLintCommand(), run: r.criticalLint},
		stage{command: r.styleLintCommand(), run: r.styleLint},
		stage{command: r.testCommand(), run: r.test},
	)

	width := terminalWidth(env.Stdout)
	for i, s := range stages {
		fmt.Fprintln(env.Stdout, progressMessage(i+1, len(stages), s.command, width))
		if err := s.run(ctx, env); err != nil {
			return err
		}
		logger.Debug(ctx, "check passed", slog.String("command", strings.Join(s.command, " ")))
	}
	fmt.Fprintln(env.Stdout, "All checks passed.")
	return nil
}

func (r *Runner) dir() string {
	if r.Dir == "" {
		return "."
	}
	return r.Dir
}

func (r *Runner) lookPath(file string) (string, error) {
	if r.LookPath != nil {
		return r.LookPath(file)
	}
	return exec.LookPath(file)
}

func (r *Runner) execute(ctx context.Context, name string, args ...string) error {
	f := r.Exec
	if f == nil {
		f = execCommand
	}
	return f(ctx, r.dir(), name, args...)
}

// execCommand runs a command with stdout and stderr captured into a single
// buffer that is attached to the returned error, so the tool's own
// diagnostics reach the user on failure.
func execCommand(ctx context.Context, dir, name string, args ...string) error {
	var buf bytes.Buffer
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	cmd.Stdout = &buf
	cmd.Stderr = &buf
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%s: %v:\n%s", strings.Join(append([]string{name}, args...), " "), err, buf.String())
	}
	return nil
}

// installEnabled reports whether the dependency-install stage should run:
// only when a non-empty manifest exists and installation is not disabled.
func (r *Runner) installEnabled() bool {
	if r.SkipInstall || r.Config.SkipInstall {
		return false
	}
	fi, err := os.Stat(filepath.Join(r.dir(), r.Config.Requirements))
	return err == nil && fi.Size() > 0
}

// installDeps tries a user-scoped install and falls back to a system
// override. Both failing is a warning, never an abort.
func (r *Runner) installDeps(ctx context.Context, env *cli.Env) error {
	cfg := r.Config
	userErr := r.execute(ctx, cfg.Pip, "install", "--user", "-r", cfg.Requirements)
	if userErr == nil {
		return nil
	}
	sysErr := r.execute(ctx, cfg.Pip, "install", "--break-system-packages", "-r", cfg.Requirements)
	if sysErr == nil {
		return nil
	}
	logger.Warn(ctx, "dependency install failed, continuing",
		slog.String("user", userErr.Error()),
		slog.String("system", sysErr.Error()),
	)
	return nil
}

func (r *Runner) sortImports(ctx context.Context, env *cli.Env) error {
	if err := r.execute(ctx, r.Config.Isort, "."); err != nil {
		return fmt.Errorf("%w: %v", ErrFormatting, err)
	}
	return nil
}

func (r *Runner) format(ctx context.Context, env *cli.Env) error {
	if err := r.execute(ctx, r.Config.Black, "."); err != nil {
		return fmt.Errorf("%w: %v", ErrFormatting, err)
	}
	return nil
}

// criticalLintCommand restricts flake8 to the error classes that indicate
// broken code: syntax errors (E9) and the correctness F-classes, including
// undefined names (F63, F7, F82).
func (r *Runner) criticalLintCommand() []string {
	return []string{
		r.Config.Flake8, ".",
		"--count", "--select=E9,F63,F7,F82", "--show-source", "--statistics",
	}
}

func (r *Runner) styleLintCommand() []string {
	return []string{
		r.Config.Flake8, ".",
		"--count", "--ignore=E203,E704,W503",
		"--max-line-length=" + strconv.Itoa(r.Config.MaxLineLength),
		"--statistics",
	}
}

func (r *Runner) criticalLint(ctx context.Context, env *cli.Env) error {
	cmd := r.criticalLintCommand()
	if err := r.execute(ctx, cmd[0], cmd[1:]...); err != nil {
		fmt.Fprintln(env.Stdout, "critical errors found")
		return fmt.Errorf("%w: %v", ErrCriticalLint, err)
	}
	return nil
}

func (r *Runner) styleLint(ctx context.Context, env *cli.Env) error {
	cmd := r.styleLintCommand()
	if err := r.execute(ctx, cmd[0], cmd[1:]...); err != nil {
		return fmt.Errorf("%w: %v", ErrStyleLint, err)
	}
	return nil
}

// testCommand prefers the test runner binary when it resolves on PATH and
// falls back to running it as a module of the configured interpreter.
func (r *Runner) testCommand() []string {
	cfg := r.Config
	if _, err := r.lookPath(cfg.Pytest); err == nil {
		return []string{cfg.Pytest, cfg.TestsDir, "-v"}
	}
	return []string{cfg.Python, "-m", cfg.Pytest, cfg.TestsDir, "-v"}
}

func (r *Runner) test(ctx context.Context, env *cli.Env) error {
	cmd := r.testCommand()
	if err := r.execute(ctx, cmd[0], cmd[1:]...); err != nil {
		return fmt.Errorf("%w: %v", ErrTests, err)
	}
	return nil
}

// progressMessage renders the per-stage progress line, trimmed to fit the
// terminal width. The "[N/M] Running check " prefix is always kept whole;
// the command is shortened, with an ellipsis when there is room for one.
func progressMessage(current, total int, command []string, width int) string {
	prefix := fmt.Sprintf("[%d/%d] Running check ", current, total)
	cmd := strings.Join(command, " ")
	full := prefix + cmd
	if width <= 0 || len(full) <= width {
		return full
	}
	room := width - len(prefix)
	if room <= 0 {
		return prefix
	}
	if room <= 3 {
		return prefix + cmd[:room]
	}
	return prefix + cmd[:room-3] + "..."
}

func terminalWidth(w io.Writer) int {
	f, ok := w.(*os.File)
	if !ok {
		return 0
	}
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil {
		return 0
	}
	return width
}
