// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

/*
Precheck installs and runs a Git pre-commit quality gate for Python
repositories.

On its first run in a non-CI environment, it creates the
.git/hooks/pre-commit script, which re-invokes precheck on every
subsequent commit. Nothing is installed when the CI environment variable
is set to "true".

The gate runs these checks in order, stopping at the first failure:

  - availability of isort, black, flake8 and pytest
  - installation of requirements.txt, when present and non-empty
    (best-effort: a failed install is a warning, not an error)
  - isort over the whole tree
  - black over the whole tree
  - flake8 restricted to syntax and undefined-name errors
  - flake8 over the whole tree with the stock style exclusions
  - the test suite under tests/

Tool names and a few paths can be overridden with a .precheck.toml file in
the repository root; see the config package for the recognized keys.
*/
package main

import (
	_ "embed"

	"go.astrophena.name/precheck/internal/cli"
)

//go:embed doc.go
var doc []byte

func init() { cli.SetDocComment(doc) }
