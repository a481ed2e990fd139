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
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gitlab.com/tozd/go/errors"
)

const (
	// JobLogPattern matches per-run log files inside the log directory.
	JobLogPattern = "robomirror_*.log"
	// SessionLogPattern matches session transcripts.
	SessionLogPattern = "session_*.log"
	// DefaultRetain is how many files of each kind survive a prune.
	DefaultRetain = 100
	// TimestampLayout sorts lexically in chronological order.
	TimestampLayout = "20060102-150405.000"
)

// JobLogPath returns the log file for one run of job started at t.
func JobLogPath(dir string, t time.Time, job string) string {
	return filepath.Join(dir, fmt.Sprintf("robomirror_%s_%s.log", stamp(t), sanitize(job)))
}

// SessionLogPath returns the transcript file for a session started at t.
func SessionLogPath(dir string, t time.Time) string {
	return filepath.Join(dir, fmt.Sprintf("session_%s.log", stamp(t)))
}

func stamp(t time.Time) string {
	return strings.Replace(t.Format(TimestampLayout), ".", "", 1)
}

func sanitize(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return "manual"
	}
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '.':
			return r
		default:
			return '_'
		}
	}, name)
}

// Header is written before the tool starts.
type Header struct {
	Start       time.Time
	Job         string
	Source      string
	Destination string
	Mirror      bool
	DryRun      bool
}

// Footer is appended after the tool exits.
type Footer struct {
	End     time.Time
	Code    int
	Outcome string
	Message string
}

const rule = "------------------------------------------------------------------------------"

// 📝 CreateJobLog creates a new log file for one run and writes h into it.
// A run that starts in the same millisecond as an earlier run of the same
// job gets a numbered name instead of truncating the earlier log.
func CreateJobLog(dir string, h Header) (string, error) {
	base := JobLogPath(dir, h.Start, h.Job)
	path := base
	for n := 2; ; n++ {
		err := WriteHeader(path, h)
		if err == nil {
			return path, nil
		}
		if !errors.Is(err, fs.ErrExist) || n > maxLogSuffix {
			return "", err
		}
		path = strings.TrimSuffix(base, ".log") + fmt.Sprintf("_%d.log", n)
	}
}

const maxLogSuffix = 1000

// 📝 WriteHeader creates path, which must not exist yet, and writes h. The
// tool appends to the same file afterwards.
func WriteHeader(path string, h Header) error {
	mode := "additive (/E)"
	if h.Mirror {
		mode = "mirror (/MIR)"
	}
	run := "live"
	if h.DryRun {
		run = "dry run (/L)"
	}
	job := h.Job
	if job == "" {
		job = "(manual)"
	}

	var b strings.Builder
	fmt.Fprintln(&b, rule)
	fmt.Fprintf(&b, "robomirror run started %s\n", h.Start.Format(time.RFC3339))
	fmt.Fprintf(&b, "Job:         %s\n", job)
	fmt.Fprintf(&b, "Source:      %s\n", h.Source)
	fmt.Fprintf(&b, "Destination: %s\n", h.Destination)
	fmt.Fprintf(&b, "Mode:        %s\n", mode)
	fmt.Fprintf(&b, "Run:         %s\n", run)
	fmt.Fprintln(&b, rule)

	fh, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0644)
	if err != nil {
		return errors.Errorf("creating log file: %w", err)
	}
	defer fh.Close()

	if _, err := fh.WriteString(b.String()); err != nil {
		return errors.Errorf("writing log header: %w", err)
	}
	return nil
}

// AppendFooter appends f to path.
func AppendFooter(path string, f Footer) error {
	fh, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return errors.Errorf("opening log for footer: %w", err)
	}
	defer fh.Close()

	var b strings.Builder
	fmt.Fprintln(&b, rule)
	fmt.Fprintf(&b, "robomirror run finished %s\n", f.End.Format(time.RFC3339))
	fmt.Fprintf(&b, "Exit code:   %d (%s)\n", f.Code, f.Outcome)
	fmt.Fprintf(&b, "Result:      %s\n", f.Message)
	fmt.Fprintln(&b, rule)

	if _, err := fh.WriteString(b.String()); err != nil {
		return errors.Errorf("writing log footer: %w", err)
	}
	return nil
}
