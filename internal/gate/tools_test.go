// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package gate

import (
	"context"
	"errors"
	"testing"

	"go.astrophena.name/precheck/internal/config"
	"go.astrophena.name/precheck/internal/testutil"
)

func TestMissingToolsAggregatesInToolSetOrder(t *testing.T) {
	t.Parallel()

	fe := &fakeExec{
		failOn: func(name string, args []string) error {
			// The import probe fails too, so pytest is truly missing.
			return errors.New("no module named pytest")
		},
	}
	r := New(config.Default())
	r.LookPath = lookPathIn("black")
	r.Exec = fe.run

	got := r.missingTools(context.Background())
	testutil.AssertEqual(t, got, []string{"isort", "flake8", "pytest"})
}

func TestMissingToolsEmptyWhenAllPresent(t *testing.T) {
	t.Parallel()

	r := New(config.Default())
	r.LookPath = lookPathIn(allTools...)
	r.Exec = (&fakeExec{}).run

	testutil.AssertEqual(t, len(r.missingTools(context.Background())), 0)
}

func TestTestRunnerProbeFallsBackToImport(t *testing.T) {
	t.Parallel()

	// Only the test runner gets the import fallback; the other tools are
	// PATH-only even when the interpreter could import them.
	fe := &fakeExec{}
	r := New(config.Default())
	r.LookPath = lookPathIn("isort", "flake8")
	r.Exec = fe.run

	got := r.missingTools(context.Background())
	testutil.AssertEqual(t, got, []string{"black"})
	testutil.AssertEqual(t, fe.commands, [][]string{{"python3", "-c", "import pytest"}})
}
