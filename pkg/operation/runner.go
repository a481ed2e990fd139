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
	"context"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/robomirror/pkg/log"
	"github.com/walteh/robomirror/pkg/robocopy"
	"github.com/walteh/robomirror/pkg/runlog"
)

// 🔧 Options contains configuration for the runner
type Options struct {
	// Tool runs the external mirroring tool
	Tool robocopy.Tool
	// LogDir receives one log file per run
	LogDir string
	// Retain is how many run logs survive pruning, runlog.DefaultRetain when zero
	Retain int
	// Logger prints user-facing progress, discarded when nil
	Logger *log.Logger
	// Now is the clock, time.Now when nil
	Now func() time.Time
}

// 🏃 Runner executes requests one at a time
type Runner struct {
	tool   robocopy.Tool
	logDir string
	retain int
	logger *log.Logger
	now    func() time.Time
}

// 🏗️ NewRunner creates a new runner
func NewRunner(opts Options) (*Runner, error) {
	if opts.Tool == nil {
		return nil, errors.Errorf("tool is required")
	}
	if opts.LogDir == "" {
		return nil, errors.Errorf("log directory is required")
	}

	r := &Runner{
		tool:   opts.Tool,
		logDir: opts.LogDir,
		retain: opts.Retain,
		logger: opts.Logger,
		now:    opts.Now,
	}
	if r.retain <= 0 {
		r.retain = runlog.DefaultRetain
	}
	if r.logger == nil {
		r.logger = log.New(io.Discard, zerolog.Nop())
	}
	if r.now == nil {
		r.now = time.Now
	}
	return r, nil
}

func (r *Runner) LogDir() string { return r.logDir }

// 🏃 Run executes one request and always returns a result. Problems with
// the log directory degrade the run instead of stopping it, and a tool that
// cannot be started is reported as a fatal outcome.
func (r *Runner) Run(ctx context.Context, req Request) Result {
	logger := zerolog.Ctx(ctx).With().Str("job", req.Job).Logger()

	r.logger.StartJob(ctx, log.JobOperation{
		Name:        req.Job,
		Source:      req.Source,
		Destination: req.Destination,
		Mirror:      req.Mirror,
		DryRun:      req.DryRun,
	})

	start := r.now()
	logPath := r.prepareLog(ctx, req, start)

	args := robocopy.Args(robocopy.Options{
		Source:      req.Source,
		Destination: req.Destination,
		Mirror:      req.Mirror,
		DryRun:      req.DryRun,
		LogPath:     logPath,
	})

	logger.Debug().Strs("args", args).Msg("invoking robocopy")

	res, err := r.tool.Run(ctx, args)
	outcome := robocopy.Classify(res.ExitCode)
	if err != nil {
		logger.Debug().Err(err).Msg("robocopy could not be started")
		outcome = robocopy.LaunchFailed(err)
	}

	if logPath != "" {
		footer := runlog.Footer{
			End:     r.now(),
			Code:    outcome.Code,
			Outcome: outcome.Kind.String(),
			Message: outcome.Message(),
		}
		if err := runlog.AppendFooter(logPath, footer); err != nil {
			r.logger.Warningf("could not finish log file: %v", err)
		}
	}

	r.logger.EndJob(ctx, outcome, logPath)

	pruned, err := runlog.Prune(r.logDir, runlog.JobLogPattern, r.retain)
	if err != nil {
		r.logger.Warningf("log rotation incomplete: %v", err)
	}
	if pruned > 0 {
		r.logger.Infof("removed %d old log file(s)", pruned)
	}

	return Result{
		Request: req,
		Outcome: outcome,
		LogPath: logPath,
		Pruned:  pruned,
	}
}

func (r *Runner) prepareLog(ctx context.Context, req Request, start time.Time) string {
	if err := os.MkdirAll(r.logDir, 0755); err != nil {
		r.logger.Warningf("running without a log file: %v", err)
		return ""
	}

	path, err := runlog.CreateJobLog(r.logDir, runlog.Header{
		Start:       start,
		Job:         req.Job,
		Source:      req.Source,
		Destination: req.Destination,
		Mirror:      req.Mirror,
		DryRun:      req.DryRun,
	})
	if err != nil {
		r.logger.Warningf("running without a log file: %v", err)
		return ""
	}

	zerolog.Ctx(ctx).Debug().Str("log", path).Msg("log file created")
	return path
}

// 🔄 RunAll executes every request in order. A fatal outcome does not stop
// the batch.
func (r *Runner) RunAll(ctx context.Context, reqs []Request) []Result {
	results := make([]Result, 0, len(reqs))
	for i, req := range reqs {
		if i > 0 {
			r.logger.LogNewline()
		}
		results = append(results, r.Run(ctx, req))
	}
	return results
}
