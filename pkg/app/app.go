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
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/robomirror/pkg/config"
	"github.com/walteh/robomirror/pkg/log"
	"github.com/walteh/robomirror/pkg/operation"
	"github.com/walteh/robomirror/pkg/robocopy"
	"github.com/walteh/robomirror/pkg/runlog"
	"github.com/walteh/robomirror/pkg/status"
	"github.com/walteh/robomirror/pkg/workdir"
)

// 🔧 Options configures one invocation
type Options struct {
	Mode Mode

	// ConfigPath is the --config value, empty to search
	ConfigPath string
	// DryRun adds list-only to every run
	DryRun bool

	// WorkingDir is the invocation directory, os.Getwd when empty
	WorkingDir string
	// InstallDir is searched for a job file after WorkingDir when set
	InstallDir string
	// LogDir receives run logs, relative paths resolve against WorkingDir
	LogDir string

	Tool     robocopy.Tool
	Logger   *log.Logger
	Prompter Prompter

	// Transcript receives every prompt answer, nil to drop them
	Transcript io.Writer

	Launcher runlog.Launcher
	Now      func() time.Time
}

// 🎮 App dispatches modes over a loaded registry
type App struct {
	opts       Options
	workingDir string
	logDir     string
	runner     *operation.Runner
	registry   *config.Registry
	scope      *workdir.Scope
	dryRun     bool
}

// 🏭 New validates options and builds the runner.
func New(opts Options) (*App, error) {
	if opts.Mode == nil {
		opts.Mode = Interactive{}
	}
	if opts.Tool == nil {
		opts.Tool = &robocopy.Exec{}
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard, zerolog.Nop())
	}
	if opts.Prompter == nil {
		opts.Prompter = PtermPrompter{}
	}

	wd := opts.WorkingDir
	if wd == "" {
		var err error
		if wd, err = os.Getwd(); err != nil {
			return nil, errors.Errorf("getting working directory: %w", err)
		}
	}

	logDir := opts.LogDir
	if logDir == "" {
		logDir = "logs"
	}
	logDir = absFrom(wd, logDir)

	runner, err := operation.NewRunner(operation.Options{
		Tool:   opts.Tool,
		LogDir: logDir,
		Logger: opts.Logger,
		Now:    opts.Now,
	})
	if err != nil {
		return nil, errors.Errorf("creating runner: %w", err)
	}

	return &App{
		opts:       opts,
		workingDir: wd,
		logDir:     logDir,
		runner:     runner,
		dryRun:     opts.DryRun,
	}, nil
}

func absFrom(base, p string) string {
	if filepath.IsAbs(p) {
		return filepath.Clean(p)
	}
	return filepath.Join(base, p)
}

// 🏃 Run builds an App and runs its mode.
func Run(ctx context.Context, opts Options) error {
	a, err := New(opts)
	if err != nil {
		return err
	}
	return a.Run(ctx)
}

// 🏃 Run resolves and loads the job file when the mode needs one, then
// dispatches. An explicit job file must exist in every mode except
// CreateConfig, where it names the file to create. While jobs run the
// working directory is the job file's directory, and it is restored on every
// exit path.
func (a *App) Run(ctx context.Context) (err error) {
	defer func() {
		if rerr := a.leaveScope(); rerr != nil && err == nil {
			err = rerr
		}
	}()

	_, creating := a.opts.Mode.(CreateConfig)
	if creating || (!a.opts.Mode.needsConfig() && a.opts.ConfigPath == "") {
		return a.dispatch(ctx, a.opts.Mode)
	}

	path, err := config.Resolve(ctx, config.ResolveOptions{
		Explicit:   a.opts.ConfigPath,
		WorkingDir: a.workingDir,
		InstallDir: a.opts.InstallDir,
	})
	if err != nil {
		return err
	}

	if !a.opts.Mode.needsConfig() {
		return a.dispatch(ctx, a.opts.Mode)
	}

	if path == "" {
		zerolog.Ctx(ctx).Debug().Msg("running without a job file")
		return a.dispatch(ctx, a.opts.Mode)
	}

	if err := a.UseConfig(ctx, path); err != nil {
		return err
	}

	return a.dispatch(ctx, a.opts.Mode)
}

// UseConfig moves into the directory of path and loads its jobs. A scope
// entered earlier is restored first, so the original directory is the one
// restored when Run returns.
func (a *App) UseConfig(ctx context.Context, path string) error {
	if err := a.leaveScope(); err != nil {
		return err
	}

	scope, err := workdir.Enter(filepath.Dir(path))
	if err != nil {
		return errors.Errorf("entering job file directory: %w", err)
	}
	a.scope = scope

	return a.LoadRegistry(ctx, path)
}

func (a *App) leaveScope() error {
	scope := a.scope
	a.scope = nil
	return scope.Restore()
}

// LoadRegistry replaces the current registry with the jobs in path.
func (a *App) LoadRegistry(ctx context.Context, path string) error {
	reg, err := config.Load(ctx, path)
	if err != nil {
		return err
	}
	a.registry = reg
	a.opts.Logger.Infof("loaded %d job(s) from %s", reg.Len(), reg.Path())
	return nil
}

func (a *App) Registry() *config.Registry { return a.registry }

func (a *App) LogDir() string { return a.logDir }

func (a *App) dispatch(ctx context.Context, mode Mode) error {
	switch m := mode.(type) {
	case RunNamedJob:
		res, err := a.RunJob(ctx, m.Name)
		if err != nil {
			return err
		}
		return failedErr([]operation.Result{res})
	case RunAllJobs:
		results, err := a.RunAll(ctx)
		if err != nil {
			return err
		}
		return failedErr(results)
	case RunManual:
		res, err := a.RunManual(ctx, m.Source, m.Destination, m.Mirror)
		if err != nil {
			return err
		}
		return failedErr([]operation.Result{res})
	case CreateConfig:
		_, err := a.CreateConfig(ctx, m.Path)
		return err
	case OpenLogs:
		return a.OpenLogs(ctx)
	case Interactive:
		return a.Menu(ctx)
	default:
		return errors.Errorf("%w: unsupported mode %T", ErrUsage, mode)
	}
}

func failedErr(results []operation.Result) error {
	failed := status.Summarize(results).Failed()
	if len(failed) == 0 {
		return nil
	}
	names := make([]string, len(failed))
	for i, res := range failed {
		names[i] = res.Name()
	}
	return errors.Errorf("%w: %s", ErrJobsFailed, strings.Join(names, ", "))
}

func (a *App) requireJobs() error {
	if a.registry.Len() == 0 {
		if a.registry == nil {
			return errors.Errorf("%w: no job file found (use --config or --init)", ErrNoConfigLoaded)
		}
		return errors.Errorf("%w: %s has no jobs", ErrNoConfigLoaded, a.registry.Path())
	}
	return nil
}

// 🎯 RunJob runs one registered job by name.
func (a *App) RunJob(ctx context.Context, name string) (operation.Result, error) {
	if err := a.requireJobs(); err != nil {
		return operation.Result{}, err
	}

	job, ok := a.registry.Get(name)
	if !ok {
		return operation.Result{}, errors.Errorf("%w: %q (available: %s)", ErrJobNotFound, name, strings.Join(a.registry.Names(), ", "))
	}

	return a.runner.Run(ctx, operation.RequestForJob(job, a.registry.BaseDir(), a.dryRun)), nil
}

// 🔄 RunAll runs every registered job in file order and prints a summary.
func (a *App) RunAll(ctx context.Context) ([]operation.Result, error) {
	if err := a.requireJobs(); err != nil {
		return nil, err
	}

	a.opts.Logger.Header("running all jobs")

	jobs := a.registry.Jobs()
	reqs := make([]operation.Request, len(jobs))
	for i, job := range jobs {
		reqs[i] = operation.RequestForJob(job, a.registry.BaseDir(), a.dryRun)
	}

	results := a.runner.RunAll(ctx, reqs)

	a.opts.Logger.LogNewline()
	if err := status.Summarize(results).Render(a.opts.Logger.Console()); err != nil {
		a.opts.Logger.Warningf("could not print summary: %v", err)
	}

	return results, nil
}

// 🎯 RunManual runs a one-off copy. Relative paths resolve against the
// directory the tool was started from.
func (a *App) RunManual(ctx context.Context, source, destination string, mirror bool) (operation.Result, error) {
	source = strings.TrimSpace(source)
	destination = strings.TrimSpace(destination)
	if source == "" || destination == "" {
		return operation.Result{}, errors.Errorf("%w: manual runs need both a source and a destination", ErrUsage)
	}

	return a.runner.Run(ctx, operation.Request{
		Source:      absFrom(a.workingDir, source),
		Destination: absFrom(a.workingDir, destination),
		Mirror:      mirror,
		DryRun:      a.dryRun,
	}), nil
}

// 📝 CreateConfig writes the bundled template and returns the absolute path
// written. An empty path is prompted for, and an existing file is only
// replaced after confirmation; declining returns an empty path.
func (a *App) CreateConfig(ctx context.Context, path string) (string, error) {
	if path == "" {
		var err error
		path, err = a.ask("Where should the job file be created?", "./"+config.DefaultFileName)
		if err != nil {
			return "", err
		}
	}
	path = absFrom(a.workingDir, path)

	overwrite := false
	if _, err := os.Stat(path); err == nil {
		ok, err := a.confirm(path+" already exists. Overwrite it?", false)
		if err != nil {
			return "", err
		}
		if !ok {
			a.opts.Logger.Warningf("kept existing %s", path)
			return "", nil
		}
		overwrite = true
	}

	if err := config.WriteTemplate(path, overwrite); err != nil {
		return "", err
	}

	zerolog.Ctx(ctx).Debug().Str("path", path).Bool("overwrite", overwrite).Msg("wrote job file template")
	a.opts.Logger.Successf("created %s", path)
	return path, nil
}

// 📂 OpenLogs shows the log directory.
func (a *App) OpenLogs(ctx context.Context) error {
	if err := runlog.OpenDir(ctx, a.logDir, a.opts.Launcher); err != nil {
		return err
	}
	a.opts.Logger.Infof("opened %s", a.logDir)
	return nil
}
