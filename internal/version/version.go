// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

// Package version exposes the build information of the running binary.
package version

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"runtime/debug"

	"go.astrophena.name/precheck/internal/syncx"
)

var cmdName syncx.Lazy[string]

// CmdName returns the base name of the current binary.
func CmdName() string {
	return cmdName.Get(func() string {
		exe, err := os.Executable()
		if err != nil {
			return "precheck"
		}
		return filepath.Base(exe)
	})
}

var version syncx.Lazy[string]

// Version returns a human-readable version string: the main module version
// (or the VCS revision for untagged builds) followed by the Go version used
// to build the binary.
func Version() string {
	return version.Get(func() string {
		info, ok := debug.ReadBuildInfo()
		if !ok {
			return fmt.Sprintf("%s (built with %s)\n", CmdName(), runtime.Version())
		}
		ver := info.Main.Version
		if ver == "" || ver == "(devel)" {
			for _, s := range info.Settings {
				if s.Key == "vcs.revision" {
					ver = s.Value
					break
				}
			}
		}
		if ver == "" {
			ver = "devel"
		}
		return fmt.Sprintf("%s %s (built with %s)\n", CmdName(), ver, info.GoVersion)
	})
}
