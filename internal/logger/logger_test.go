// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package logger

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"testing"

	"go.astrophena.name/precheck/internal/testutil"
)

func TestLogfWriter(t *testing.T) {
	var (
		logged  bool
		message string
	)
	logf := func(format string, args ...any) {
		logged = true
		message = fmt.Sprintf(format, args...)
	}
	Logf(logf).Write([]byte("hello"))
	testutil.AssertEqual(t, logged, true)
	testutil.AssertEqual(t, message, "hello")
}

func TestGetReturnsDefaultWithoutLogger(t *testing.T) {
	l := Get(context.Background())
	testutil.AssertEqual(t, l, defaultLogger)
}

func TestPutGetRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, nil)
	ctx := Put(context.Background(), l)
	testutil.AssertEqual(t, Get(ctx), l)
}

func TestLevelControlsOutput(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, nil)
	ctx := Put(context.Background(), l)

	Debug(ctx, "hidden")
	testutil.AssertEqual(t, buf.Len(), 0)

	l.Level.Set(slog.LevelDebug)
	Debug(ctx, "visible")
	testutil.AssertContains(t, buf.String(), "visible")
}

func TestNonTerminalOutputHasNoColor(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, nil)
	ctx := Put(context.Background(), l)

	Info(ctx, "plain message")
	testutil.AssertEqual(t, bytes.Contains(buf.Bytes(), []byte("\x1b[")), false)
}
