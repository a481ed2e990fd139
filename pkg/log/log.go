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

package log

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/fatih/color"
	"github.com/rs/zerolog"

	"github.com/walteh/robomirror/pkg/robocopy"
)

// 🎯 JobOperation describes the job being run for logging
type JobOperation struct {
	Name        string // Job name, empty for manual runs
	Source      string // Resolved source path
	Destination string // Resolved destination path
	Mirror      bool   // Mirror (/MIR) or additive (/E)
	DryRun      bool   // List only
}

// 🎯 Logger prints user-facing output and mirrors it to zerolog
type Logger struct {
	zlog    zerolog.Logger
	console io.Writer
	mu      sync.Mutex
	current *JobOperation
}

// 🏭 New creates a new logger
func New(console io.Writer, zlog zerolog.Logger) *Logger {
	return &Logger{
		zlog:    zlog,
		console: console,
	}
}

// Console is the writer user-facing output goes to.
func (l *Logger) Console() io.Writer {
	return l.console
}

// 🔑 contextKey is the type for context values
type contextKey struct{}

// 🎯 FromContext gets the logger from context
func FromContext(ctx context.Context) *Logger {
	logger, ok := ctx.Value(contextKey{}).(*Logger)
	if !ok {
		panic("logger not found in context")
	}
	return logger
}

// 🎯 NewContext adds the logger to context
func NewContext(ctx context.Context, l *Logger) context.Context {
	return context.WithValue(ctx, contextKey{}, l)
}

func (op JobOperation) label() string {
	if op.Name == "" {
		return "manual"
	}
	return op.Name
}

func (op JobOperation) mode() string {
	if op.Mirror {
		return "mirror"
	}
	return "additive"
}

// 📝 StartJob prints the job banner
func (l *Logger) StartJob(ctx context.Context, op JobOperation) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.current = &op

	fmt.Fprintf(l.console, "[running %s]\n", color.New(color.FgCyan).Sprint(op.label()))

	line := fmt.Sprintf("%s %s %s %s %s %s",
		color.New(color.FgMagenta).Sprint("◆"),
		color.New(color.Bold).Sprint(op.Source),
		color.New(color.Faint).Sprint("→"),
		color.New(color.Bold).Sprint(op.Destination),
		color.New(color.Faint).Sprint("•"),
		color.New(color.FgYellow).Sprint(op.mode()))
	if op.DryRun {
		line += " " + color.New(color.FgBlue).Sprint("(dry run)")
	}
	fmt.Fprintln(l.console, line)

	l.zlog.Debug().
		Str("job", op.Name).
		Str("source", op.Source).
		Str("destination", op.Destination).
		Bool("mirror", op.Mirror).
		Bool("dry_run", op.DryRun).
		Msg("starting job")
}

// 📝 EndJob prints the classified result of the current job
func (l *Logger) EndJob(ctx context.Context, outcome robocopy.Outcome, logPath string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	msg := fmt.Sprintf("exit code %d: %s", outcome.Code, outcome.Message())
	switch {
	case !outcome.Success():
		fmt.Fprintf(l.console, "❌ %s\n", color.New(color.FgRed).Sprint(msg))
	case outcome.Warning():
		fmt.Fprintf(l.console, "⚠️  %s\n", color.New(color.FgYellow).Sprint(msg))
	default:
		fmt.Fprintf(l.console, "✅ %s\n", color.New(color.FgGreen).Sprint(msg))
	}
	if logPath != "" {
		fmt.Fprintf(l.console, "   %s %s\n", color.New(color.Faint).Sprint("log:"), logPath)
	}

	name := ""
	if l.current != nil {
		name = l.current.Name
	}
	l.zlog.Debug().
		Str("job", name).
		Int("exit_code", outcome.Code).
		Str("outcome", outcome.Kind.String()).
		Str("log", logPath).
		Msg("job finished")

	l.current = nil
}

// 📝 LogNewline logs a newline
func (l *Logger) LogNewline() {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintln(l.console)
}

// 📝 Header logs a header
func (l *Logger) Header(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	name := color.New(color.Bold, color.FgCyan).Sprint("robomirror")
	fmt.Fprintf(l.console, "\n%s %s\n\n", name, color.New(color.Faint).Sprint("• "+msg))
	l.zlog.Debug().Msg(msg)
}

// 📝 Success logs a success message
func (l *Logger) Success(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "✅ %s\n", color.New(color.FgGreen).Sprint(msg))
	l.zlog.Debug().Msg(msg)
}

// 📝 Warning logs a warning message
func (l *Logger) Warning(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "⚠️  %s\n", color.New(color.FgYellow).Sprint(msg))
	l.zlog.Warn().Msg(msg)
}

// 📝 Error logs an error message
func (l *Logger) Error(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "❌ %s\n", color.New(color.FgRed).Sprint(msg))
	l.zlog.Error().Msg(msg)
}

// 📝 Info logs an info message
func (l *Logger) Info(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "ℹ️  %s\n", color.New(color.FgCyan).Sprint(msg))
	l.zlog.Debug().Msg(msg)
}

// 📝 Infof logs a formatted info message
func (l *Logger) Infof(format string, args ...interface{}) {
	l.Info(fmt.Sprintf(format, args...))
}

// 📝 Warningf logs a formatted warning message
func (l *Logger) Warningf(format string, args ...interface{}) {
	l.Warning(fmt.Sprintf(format, args...))
}

// 📝 Errorf logs a formatted error message
func (l *Logger) Errorf(format string, args ...interface{}) {
	l.Error(fmt.Sprintf(format, args...))
}

// 📝 Successf logs a formatted success message
func (l *Logger) Successf(format string, args ...interface{}) {
	l.Success(fmt.Sprintf(format, args...))
}
