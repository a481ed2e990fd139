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

package app

import (
	"strings"

	"gitlab.com/tozd/go/errors"
)

// 🎯 Mode selects what one invocation does
type Mode interface {
	// needsConfig reports whether the job file must be resolved and loaded
	needsConfig() bool
}

// RunNamedJob runs one job from the registry.
type RunNamedJob struct{ Name string }

// RunAllJobs runs every registered job in file order.
type RunAllJobs struct{}

// RunManual runs a one-off copy that is not in the registry.
type RunManual struct {
	Source      string
	Destination string
	Mirror      bool
}

// CreateConfig writes the bundled job file template. An empty Path is
// prompted for.
type CreateConfig struct{ Path string }

// OpenLogs shows the log directory in the platform file browser.
type OpenLogs struct{}

// Interactive runs the menu until the user exits.
type Interactive struct{}

func (RunNamedJob) needsConfig() bool  { return true }
func (RunAllJobs) needsConfig() bool   { return true }
func (RunManual) needsConfig() bool    { return false }
func (CreateConfig) needsConfig() bool { return false }
func (OpenLogs) needsConfig() bool     { return false }
func (Interactive) needsConfig() bool  { return true }

// Flags are the mode selectors of the command line.
type Flags struct {
	Job         string
	All         bool
	Source      string
	Destination string
	Mirror      bool
	Init        bool
	Logs        bool
}

// 🔍 ModeFromFlags picks the single mode the flags select. No selector
// means Interactive.
func ModeFromFlags(f Flags) (Mode, error) {
	var selected []string
	var mode Mode = Interactive{}

	if f.Job != "" {
		selected = append(selected, "--job")
		mode = RunNamedJob{Name: f.Job}
	}
	if f.All {
		selected = append(selected, "--all")
		mode = RunAllJobs{}
	}
	if f.Source != "" || f.Destination != "" {
		selected = append(selected, "--source/--destination")
		mode = RunManual{Source: f.Source, Destination: f.Destination, Mirror: f.Mirror}
	}
	if f.Init {
		selected = append(selected, "--init")
		mode = CreateConfig{}
	}
	if f.Logs {
		selected = append(selected, "--logs")
		mode = OpenLogs{}
	}

	if len(selected) > 1 {
		return nil, errors.Errorf("%w: %s cannot be combined", ErrUsage, strings.Join(selected, ", "))
	}

	if m, ok := mode.(RunManual); ok {
		if m.Source == "" || m.Destination == "" {
			return nil, errors.Errorf("%w: --source and --destination are both required", ErrUsage)
		}
	} else if f.Mirror {
		return nil, errors.Errorf("%w: --mirror only applies to --source/--destination", ErrUsage)
	}

	return mode, nil
}
