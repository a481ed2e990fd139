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

package runlog

import (
	"context"
	"os"
	"os/exec"
	"runtime"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// Launcher starts a detached process.
type Launcher func(name string, args ...string) error

// StartProcess starts name without waiting for it. The child is detached:
// its process handle is released right away.
func StartProcess(name string, args ...string) error {
	cmd := exec.Command(name, args...)
	if err := cmd.Start(); err != nil {
		return err
	}
	return cmd.Process.Release()
}

// BrowserCommand is the file browser used for the current platform.
func BrowserCommand(goos string) string {
	switch goos {
	case "windows":
		return "explorer"
	case "darwin":
		return "open"
	default:
		return "xdg-open"
	}
}

// 📂 OpenDir creates dir if needed and shows it in the platform file
// browser. A nil launch uses StartProcess.
func OpenDir(ctx context.Context, dir string, launch Launcher) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return errors.Errorf("creating log directory: %w", err)
	}
	if launch == nil {
		launch = StartProcess
	}

	name := BrowserCommand(runtime.GOOS)
	zerolog.Ctx(ctx).Debug().Str("browser", name).Str("dir", dir).Msg("opening log directory")

	if err := launch(name, dir); err != nil {
		return errors.Errorf("opening %s with %s: %w", dir, name, err)
	}
	return nil
}
