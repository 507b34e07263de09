// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

// Package clitest provides a harness for table-driven end-to-end tests of
// [cli.App] implementations.
package clitest

import (
	"bytes"
	"context"
	"errors"
	"io"
	"reflect"
	"strings"
	"testing"

	"go.astrophena.name/precheck/internal/cli"
)

// Case describes a single invocation of an application under test and the
// expectations about its outcome.
type Case[App cli.App] struct {
	// Args are passed to the application as command-line arguments.
	Args []string
	// Stdin is the application's standard input. If nil, an empty reader is
	// used.
	Stdin io.Reader
	// Env contains environment variables visible to the application.
	Env map[string]string

	// WantErr, if set, requires the run to fail with an error matching it
	// via [errors.Is].
	WantErr error
	// WantErrType, if set, requires the run to fail with an error whose
	// chain contains an error of the same type, via [errors.As].
	WantErrType error
	// WantInStdout requires stdout to contain this substring.
	WantInStdout string
	// WantInStderr requires stderr to contain this substring.
	WantInStderr string
	// WantNothingPrinted requires both stdout and stderr to be empty.
	WantNothingPrinted bool

	// CheckFunc, if set, runs after the invocation with the application
	// value, allowing arbitrary extra assertions.
	CheckFunc func(*testing.T, App)
}

// Run invokes the application constructed by setup once per case and checks
// the case's expectations.
func Run[App cli.App](t *testing.T, setup func(*testing.T) App, cases map[string]Case[App]) {
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			app := setup(t)

			stdin := tc.Stdin
			if stdin == nil {
				stdin = strings.NewReader("")
			}
			var stdout, stderr bytes.Buffer
			env := &cli.Env{
				Args:   tc.Args,
				Stdin:  stdin,
				Stdout: &stdout,
				Stderr: &stderr,
				Getenv: func(key string) string { return tc.Env[key] },
			}

			err := cli.Run(cli.WithEnv(context.Background(), env), app)
			checkErr(t, err, tc.WantErr, tc.WantErrType)

			if tc.WantNothingPrinted {
				if stdout.Len() > 0 {
					t.Errorf("stdout should be empty, got: %q", stdout.String())
				}
				if stderr.Len() > 0 {
					t.Errorf("stderr should be empty, got: %q", stderr.String())
				}
			}

			if tc.WantInStdout != "" && !strings.Contains(stdout.String(), tc.WantInStdout) {
				t.Errorf("stdout should contain %q, got: %q", tc.WantInStdout, stdout.String())
			}
			if tc.WantInStderr != "" && !strings.Contains(stderr.String(), tc.WantInStderr) {
				t.Errorf("stderr should contain %q, got: %q", tc.WantInStderr, stderr.String())
			}

			if tc.CheckFunc != nil {
				tc.CheckFunc(t, app)
			}
		})
	}
}

func checkErr(t *testing.T, err error, wantErr, wantErrType error) {
	t.Helper()

	if wantErr == nil && wantErrType == nil {
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		return
	}

	if err == nil {
		t.Fatal("expected an error, got nil")
	}
	if wantErr != nil && !errors.Is(err, wantErr) {
		t.Fatalf("error %v should match %v via errors.Is", err, wantErr)
	}
	if wantErrType != nil {
		target := reflect.New(reflect.TypeOf(wantErrType))
		if !errors.As(err, target.Interface()) {
			t.Fatalf("error %v should match type %T via errors.As", err, wantErrType)
		}
	}
}
