// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package robocopy

import (
	"bytes"
	"context"
	"io"
	"os"
	"os/exec"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// DefaultPath is looked up on PATH.
const DefaultPath = "robocopy"

// Result is what one invocation produced.
type Result struct {
	ExitCode int
	Output   string
}

// Tool runs the external mirroring tool with a prepared argument list.
// A non-nil error means the tool could not be started; exit codes of any
// value are reported through Result.
type Tool interface {
	Run(ctx context.Context, args []string) (Result, error)
}

var _ Tool = (*Exec)(nil)

// Exec runs the real tool as a child process.
type Exec struct {
	// Path to the executable, DefaultPath when empty.
	Path string
	// Prefix is placed before the generated arguments.
	Prefix []string
	// Env is appended to the parent environment.
	Env []string
	// Stdout receives combined output as it is produced. Nil discards it.
	Stdout io.Writer
}

// ⚡ Run starts the tool and waits for it. The child is not tied to ctx: a
// started job always runs to completion.
func (e *Exec) Run(ctx context.Context, args []string) (Result, error) {
	logger := zerolog.Ctx(ctx)

	path := e.Path
	if path == "" {
		path = DefaultPath
	}

	full := append(append([]string{}, e.Prefix...), args...)
	cmd := exec.Command(path, full...)
	if len(e.Env) > 0 {
		cmd.Env = append(os.Environ(), e.Env...)
	}

	var buf bytes.Buffer
	out := io.Writer(&buf)
	if e.Stdout != nil {
		out = io.MultiWriter(&buf, e.Stdout)
	}
	cmd.Stdout = out
	cmd.Stderr = out

	logger.Debug().Str("path", path).Strs("args", full).Msg("starting robocopy")

	err := cmd.Run()
	if err == nil {
		return Result{ExitCode: 0, Output: buf.String()}, nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		logger.Debug().Int("exit_code", exitErr.ExitCode()).Msg("robocopy exited")
		return Result{ExitCode: exitErr.ExitCode(), Output: buf.String()}, nil
	}

	return Result{ExitCode: CodeLaunchFailed, Output: buf.String()}, errors.Errorf("starting %s: %w", path, err)
}
