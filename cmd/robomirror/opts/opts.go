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

package opts

import (
	"os"
	"path/filepath"

	"github.com/walteh/robomirror/pkg/app"
)

// RootOpts holds every flag of the root command
type RootOpts struct {
	app.Flags

	ConfigFile       string
	Dry              bool
	LogDir           string
	Robocopy         string
	SearchInstallDir bool
	NoSessionLog     bool
	Debug            bool
}

// InstallDir is the directory of the running binary, empty if unknown.
func InstallDir() string {
	exe, err := os.Executable()
	if err != nil {
		return ""
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	return filepath.Dir(exe)
}

// ResolvedLogDir is --log-dir, or the logs folder next to the binary.
func (o *RootOpts) ResolvedLogDir() string {
	if o.LogDir != "" {
		return o.LogDir
	}
	if dir := InstallDir(); dir != "" {
		return filepath.Join(dir, "logs")
	}
	return "logs"
}

// Mode turns the selector flags into an app mode. --config doubles as the
// target path of --init.
func (o *RootOpts) Mode() (app.Mode, error) {
	mode, err := app.ModeFromFlags(o.Flags)
	if err != nil {
		return nil, err
	}
	if m, ok := mode.(app.CreateConfig); ok && o.ConfigFile != "" {
		m.Path = o.ConfigFile
		return m, nil
	}
	return mode, nil
}
