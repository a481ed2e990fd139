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

package main

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/robomirror/cmd/robomirror/opts"
	"github.com/walteh/robomirror/pkg/app"
	"github.com/walteh/robomirror/pkg/log"
	"github.com/walteh/robomirror/pkg/robocopy"
	"github.com/walteh/robomirror/pkg/runlog"
)

// process exit codes
const (
	exitOK         = 0
	exitUsage      = 1
	exitJobsFailed = 2
)

// execute runs the root command and maps its error to an exit code.
func execute(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	o := &opts.RootOpts{}
	cmd := newRootCmd(o, stdout, stderr)
	cmd.SetArgs(args)

	err := cmd.ExecuteContext(ctx)
	if err == nil {
		return exitOK
	}
	if errors.Is(err, app.ErrJobsFailed) {
		return exitJobsFailed
	}
	return exitUsage
}

func newRootCmd(o *opts.RootOpts, stdout, stderr io.Writer) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "robomirror",
		Short: "Run named robocopy mirror jobs from a job file",
		Long: `robomirror runs robocopy jobs defined in a job file (robomirror.json).

With no mode flag an interactive menu is shown. Relative job paths resolve
against the job file's directory, every run writes a log file and old logs
are pruned to the newest 100.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRoot(cmd.Context(), o, stdout, stderr)
		},
	}

	addRootFlags(cmd, o)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	cmd.AddCommand(newVersionCmd())

	return cmd
}

// addRootFlags adds the mode selectors and shared flags to the root command
func addRootFlags(cmd *cobra.Command, o *opts.RootOpts) {
	f := cmd.Flags()
	f.StringVar(&o.Job, "job", "", "run the named job")
	f.BoolVar(&o.All, "all", false, "run every job in file order")
	f.StringVar(&o.Source, "source", "", "source folder of a manual run")
	f.StringVar(&o.Destination, "destination", "", "destination folder of a manual run")
	f.BoolVar(&o.Mirror, "mirror", false, "mirror a manual run (/MIR) instead of copying (/E)")
	f.BoolVar(&o.Init, "init", false, "create a job file from the template")
	f.BoolVar(&o.Logs, "logs", false, "open the log folder")
	f.BoolVar(&o.Dry, "dry", false, "list what would change without copying (/L)")
	f.StringVar(&o.LogDir, "log-dir", "", "log folder (default <install dir>/logs)")
	f.StringVar(&o.Robocopy, "robocopy", robocopy.DefaultPath, "robocopy executable")
	f.BoolVar(&o.SearchInstallDir, "search-install-dir", false, "also look for a job file next to the binary")
	f.BoolVar(&o.NoSessionLog, "no-session-log", false, "do not write a session transcript")

	cmd.PersistentFlags().StringVarP(&o.ConfigFile, "config", "c", "", "job file path (default: search the current folder)")
	cmd.PersistentFlags().BoolVarP(&o.Debug, "debug", "d", false, "enable debug logging")
}

// setupLogging configures zerolog based on flags
func setupLogging(w io.Writer, debug bool) zerolog.Logger {
	if debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
	logger := zerolog.New(zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen}).With().Timestamp().Logger()
	zerolog.DefaultContextLogger = &logger
	return logger
}

func runRoot(ctx context.Context, o *opts.RootOpts, stdout, stderr io.Writer) (err error) {
	zlog := setupLogging(stderr, o.Debug)
	ctx = zlog.WithContext(ctx)

	console := stdout
	var transcript io.Writer
	logDir := o.ResolvedLogDir()
	start := time.Now()

	if !o.NoSessionLog {
		if _, perr := runlog.Prune(logDir, runlog.SessionLogPattern, runlog.DefaultRetain-1); perr != nil {
			zlog.Warn().Err(perr).Msg("pruning session logs")
		}
		session, serr := runlog.OpenSession(logDir, start)
		if serr != nil {
			zlog.Warn().Err(serr).Msg("session transcript disabled")
		} else {
			defer func() {
				if cerr := session.Close(); cerr != nil {
					zlog.Warn().Err(cerr).Msg("closing session transcript")
				}
			}()
			console = io.MultiWriter(stdout, session)
			transcript = session
			zlog.Debug().Str("path", session.Path()).Msg("session transcript")
		}
	}

	logger := log.New(console, zlog)
	ctx = log.NewContext(ctx, logger)

	defer func() {
		if err != nil && !errors.Is(err, app.ErrJobsFailed) {
			logger.Error(err.Error())
		}
	}()

	mode, err := o.Mode()
	if err != nil {
		return err
	}

	wd, err := os.Getwd()
	if err != nil {
		return errors.Errorf("getting working directory: %w", err)
	}

	installDir := ""
	if o.SearchInstallDir {
		installDir = opts.InstallDir()
	}

	zlog.Debug().Str("mode", modeName(mode)).Str("log_dir", logDir).Bool("dry", o.Dry).Msg("starting")

	return app.Run(ctx, app.Options{
		Mode:       mode,
		ConfigPath: o.ConfigFile,
		DryRun:     o.Dry,
		WorkingDir: wd,
		InstallDir: installDir,
		LogDir:     logDir,
		Tool:       &robocopy.Exec{Path: o.Robocopy, Stdout: console},
		Logger:     logger,
		Transcript: transcript,
	})
}

func modeName(m app.Mode) string {
	switch m.(type) {
	case app.RunNamedJob:
		return "job"
	case app.RunAllJobs:
		return "all"
	case app.RunManual:
		return "manual"
	case app.CreateConfig:
		return "init"
	case app.OpenLogs:
		return "logs"
	default:
		return "interactive"
	}
}
