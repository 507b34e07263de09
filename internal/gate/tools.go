// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package gate

import (
	"context"
	"fmt"
	"strings"

	"go.astrophena.name/precheck/internal/cli"
)

// tool is a required external program together with the predicate that
// decides whether it is usable in the current environment.
type tool struct {
	name      string
	available func(context.Context) bool
}

// requiredTools returns the fixed tool set of the gate. The import sorter,
// formatter and linter must resolve on PATH; the test runner also counts as
// available when it is importable by the configured interpreter, since
// pytest is frequently installed as a library without a console script.
func (r *Runner) requiredTools() []tool {
	cfg := r.Config
	onPath := func(name string) func(context.Context) bool {
		return func(context.Context) bool {
			_, err := r.lookPath(name)
			return err == nil
		}
	}
	return []tool{
		{name: cfg.Isort, available: onPath(cfg.Isort)},
		{name: cfg.Black, available: onPath(cfg.Black)},
		{name: cfg.Flake8, available: onPath(cfg.Flake8)},
		{name: cfg.Pytest, available: func(ctx context.Context) bool {
			if _, err := r.lookPath(cfg.Pytest); err == nil {
				return true
			}
			return r.execute(ctx, cfg.Python, "-c", "import "+cfg.Pytest) == nil
		}},
	}
}

// missingTools probes every required tool and returns the names of the
// absent ones, in tool-set order. Unlike the rest of the gate, probing
// never stops early: the user gets the whole list at once.
func (r *Runner) missingTools(ctx context.Context) []string {
	var missing []string
	for _, t := range r.requiredTools() {
		if !t.available(ctx) {
			missing = append(missing, t.name)
		}
	}
	return missing
}

// checkTools is the first stage: it aggregates all missing tools, prints
// them with remediation hints and fails the run before any file is touched.
func (r *Runner) checkTools(ctx context.Context, env *cli.Env) error {
	missing := r.missingTools(ctx)
	if len(missing) == 0 {
		return nil
	}

	list := strings.Join(missing, " ")
	fmt.Fprintf(env.Stdout, "missing required tools: %s\n", strings.Join(missing, ", "))
	fmt.Fprintln(env.Stdout, "Install them with one of:")
	fmt.Fprintf(env.Stdout, "\tpip install %s\n", list)
	fmt.Fprintf(env.Stdout, "\t%s install --user %s\n", r.Config.Pip, list)
	fmt.Fprintf(env.Stdout, "\t%s -m pip install %s\n", r.Config.Python, list)

	return fmt.Errorf("%w: %s", ErrMissingTools, strings.Join(missing, ", "))
}
