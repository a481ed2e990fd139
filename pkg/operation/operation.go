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

package operation

import (
	"github.com/walteh/robomirror/pkg/config"
	"github.com/walteh/robomirror/pkg/robocopy"
)

// 🎯 Request is one resolved unit of work. It is built fresh for every run.
type Request struct {
	// Job is the registry name, empty for a manual run.
	Job         string
	Source      string
	Destination string
	Mirror      bool
	DryRun      bool
}

// 🏭 RequestForJob resolves a registered job against baseDir.
func RequestForJob(job config.Job, baseDir string, dryRun bool) Request {
	src, dst := job.Resolve(baseDir)
	return Request{
		Job:         job.Name,
		Source:      src,
		Destination: dst,
		Mirror:      job.Mirror,
		DryRun:      dryRun,
	}
}

// 📦 Result is what a run produced.
type Result struct {
	Request Request
	Outcome robocopy.Outcome
	// LogPath is empty when the log file could not be created.
	LogPath string
	// Pruned is how many old log files were removed after the run.
	Pruned int
}

// Name is the job name or "manual".
func (r Result) Name() string {
	if r.Request.Job == "" {
		return "manual"
	}
	return r.Request.Job
}

func (r Result) Success() bool {
	return r.Outcome.Success()
}
