// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package cli_test

import (
	"bytes"
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.astrophena.name/precheck/internal/cli"
	"go.astrophena.name/precheck/internal/testutil"
)

func runTest(t *testing.T, app cli.App, args ...string) (stdout, stderr string, err error) {
	t.Helper()

	var out, errb bytes.Buffer
	env := &cli.Env{
		Args:   args,
		Stdin:  strings.NewReader(""),
		Stdout: &out,
		Stderr: &errb,
		Getenv: func(s string) string { return "" },
	}
	ctx := cli.WithEnv(context.Background(), env)

	runErr := cli.Run(ctx, app)

	return out.String(), errb.String(), runErr
}

// simpleApp prints its args to stdout.
type simpleApp struct{}

func (a *simpleApp) Run(ctx context.Context) error {
	env := cli.GetEnv(ctx)
	for _, arg := range env.Args {
		fmt.Fprintln(env.Stdout, arg)
	}
	return nil
}

// appWithFlags has some flags.
type appWithFlags struct {
	s string
	b bool
}

func (a *appWithFlags) Flags(f *flag.FlagSet) {
	f.StringVar(&a.s, "s", "default", "string flag")
	f.BoolVar(&a.b, "b", false, "bool flag")
}

func (a *appWithFlags) Run(ctx context.Context) error {
	env := cli.GetEnv(ctx)
	fmt.Fprintf(env.Stdout, "s=%s, b=%v", a.s, a.b)
	if len(env.Args) > 0 {
		fmt.Fprintf(env.Stdout, ", args=%v", env.Args)
	}
	return nil
}

var errAppFailed = errors.New("app failed deliberately")

// failingApp always returns an error.
var failingApp = cli.AppFunc(func(ctx context.Context) error {
	return errAppFailed
})

func TestRunPassesArgs(t *testing.T) {
	t.Parallel()

	stdout, stderr, err := runTest(t, &simpleApp{}, "a", "b", "c")
	testutil.AssertEqual(t, err, nil)
	testutil.AssertEqual(t, stdout, "a\nb\nc\n")
	testutil.AssertEqual(t, stderr, "")
}

func TestRunParsesFlags(t *testing.T) {
	t.Parallel()

	stdout, _, err := runTest(t, &appWithFlags{}, "-s", "hello", "-b", "rest")
	testutil.AssertEqual(t, err, nil)
	testutil.AssertEqual(t, stdout, "s=hello, b=true, args=[rest]")
}

func TestRunPropagatesAppError(t *testing.T) {
	t.Parallel()

	_, _, err := runTest(t, failingApp)
	testutil.AssertEqual(t, errors.Is(err, errAppFailed), true)
}

func TestRunInvalidFlagIsUnprintable(t *testing.T) {
	t.Parallel()

	_, stderr, err := runTest(t, &appWithFlags{}, "-no-such-flag")
	if err == nil {
		t.Fatal("expected an error for an unknown flag")
	}
	// The flag package already reported the problem to stderr.
	testutil.AssertContains(t, stderr, "flag provided but not defined")
}

func TestRunVersionFlag(t *testing.T) {
	t.Parallel()

	_, stderr, err := runTest(t, &simpleApp{}, "-version")
	testutil.AssertEqual(t, errors.Is(err, cli.ErrExitVersion), true)
	if stderr == "" {
		t.Fatal("expected version output on stderr")
	}
}

func TestRunWritesProfiles(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	cpu := filepath.Join(dir, "cpu.prof")
	mem := filepath.Join(dir, "mem.prof")

	_, _, err := runTest(t, &simpleApp{}, "-cpuprofile", cpu, "-memprofile", mem)
	testutil.AssertEqual(t, err, nil)

	for _, path := range []string{cpu, mem} {
		fi, err := os.Stat(path)
		if err != nil {
			t.Fatalf("profile %q not written: %v", path, err)
		}
		if fi.Size() == 0 {
			t.Fatalf("profile %q is empty", path)
		}
	}
}

func TestHelpShowsFlags(t *testing.T) {
	t.Parallel()

	_, stderr, err := runTest(t, &appWithFlags{}, "-h")
	testutil.AssertEqual(t, errors.Is(err, flag.ErrHelp), true)
	testutil.AssertContains(t, stderr, "Available flags:")
	testutil.AssertContains(t, stderr, "string flag")
}
