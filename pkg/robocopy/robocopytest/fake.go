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

// Package robocopytest provides an in-process stand-in for robocopy.
package robocopytest

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"gitlab.com/tozd/go/errors"

	"github.com/walteh/robomirror/pkg/robocopy"
)

var _ robocopy.Tool = (*Fake)(nil)

// Fake emulates the parts of robocopy this module relies on, on a real
// directory tree:
//
//   - new and changed files are copied (bit 1)
//   - destination entries missing from the source are extras (bit 2) and are
//     purged under /MIR
//   - a file on one side and a directory on the other is a mismatch (bit 4)
//   - /L reports without touching the destination
//   - a missing source exits 16
//   - /LOG+ appends the report to the log file
//
// The zero value is ready to use.
type Fake struct {
	// ExitCode, when set, replaces the computed exit code.
	ExitCode func(opts robocopy.Options) (int, bool)
	// LaunchErr makes every Run fail as if the executable were missing.
	LaunchErr error
	// Stdout receives the report when set.
	Stdout io.Writer

	mu    sync.Mutex
	calls [][]string
}

// Calls returns the argument lists of every Run so far.
func (f *Fake) Calls() [][]string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([][]string, len(f.calls))
	copy(out, f.calls)
	return out
}

func (f *Fake) Run(ctx context.Context, args []string) (robocopy.Result, error) {
	f.mu.Lock()
	f.calls = append(f.calls, append([]string{}, args...))
	f.mu.Unlock()

	if f.LaunchErr != nil {
		return robocopy.Result{ExitCode: robocopy.CodeLaunchFailed}, f.LaunchErr
	}

	opts, err := robocopy.Parse(args)
	if err != nil {
		return robocopy.Result{ExitCode: 16, Output: "ERROR : Invalid Parameter\n"}, nil
	}

	var out bytes.Buffer
	code := mirrorTree(&out, opts)

	if f.ExitCode != nil {
		if forced, ok := f.ExitCode(opts); ok {
			code = forced
		}
	}

	fmt.Fprintf(&out, "Exit code: %d\n", code)

	if opts.LogPath != "" {
		if err := appendFile(opts.LogPath, out.Bytes()); err != nil {
			return robocopy.Result{ExitCode: 16, Output: out.String()}, nil
		}
	}
	if f.Stdout != nil {
		_, _ = f.Stdout.Write(out.Bytes())
	}

	return robocopy.Result{ExitCode: code, Output: out.String()}, nil
}

func appendFile(path string, data []byte) error {
	fh, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return errors.Errorf("opening log: %w", err)
	}
	defer fh.Close()
	_, err = fh.Write(data)
	return err
}

type entry struct {
	dir  bool
	data []byte
}

func scan(root string) (map[string]entry, error) {
	entries := map[string]entry{}
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(root, path)
		if err != nil || rel == "." {
			return err
		}
		if d.IsDir() {
			entries[rel] = entry{dir: true}
			return nil
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		entries[rel] = entry{data: data}
		return nil
	})
	return entries, err
}

func sortedKeys(m map[string]entry) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func mirrorTree(out io.Writer, opts robocopy.Options) int {
	mode := "/E"
	if opts.Mirror {
		mode = "/MIR"
	}
	fmt.Fprintf(out, "Source : %s\nDest : %s\nOptions : %s", opts.Source, opts.Destination, mode)
	if opts.DryRun {
		fmt.Fprint(out, " /L")
	}
	fmt.Fprintln(out)

	info, err := os.Stat(opts.Source)
	if err != nil || !info.IsDir() {
		fmt.Fprintf(out, "ERROR : source directory %s does not exist.\n", opts.Source)
		return 16
	}

	src, err := scan(opts.Source)
	if err != nil {
		fmt.Fprintf(out, "ERROR : scanning source: %v\n", err)
		return 16
	}
	dst := map[string]entry{}
	if _, err := os.Stat(opts.Destination); err == nil {
		if dst, err = scan(opts.Destination); err != nil {
			fmt.Fprintf(out, "ERROR : scanning destination: %v\n", err)
			return 16
		}
	}

	code := 0
	failed := false

	for _, rel := range sortedKeys(src) {
		s := src[rel]
		d, exists := dst[rel]
		target := filepath.Join(opts.Destination, rel)

		switch {
		case exists && s.dir != d.dir:
			code |= 4
			fmt.Fprintf(out, "\t*MISMATCH\t%s\n", rel)
		case s.dir:
			if !exists && !opts.DryRun {
				if err := os.MkdirAll(target, 0755); err != nil {
					failed = true
				}
			}
		case !exists || !bytes.Equal(s.data, d.data):
			code |= 1
			label := "New File"
			if exists {
				label = "Newer"
			}
			fmt.Fprintf(out, "\t%s\t\t%s\n", label, rel)
			if opts.DryRun {
				continue
			}
			if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
				failed = true
				continue
			}
			if err := os.WriteFile(target, s.data, 0644); err != nil {
				failed = true
			}
		}
	}

	var purge []string
	for _, rel := range sortedKeys(dst) {
		if _, ok := src[rel]; ok {
			continue
		}
		code |= 2
		fmt.Fprintf(out, "\t*EXTRA File\t%s\n", rel)
		purge = append(purge, rel)
	}

	if opts.Mirror && !opts.DryRun {
		// Deepest first so directories are empty when removed.
		for i := len(purge) - 1; i >= 0; i-- {
			if err := os.RemoveAll(filepath.Join(opts.Destination, purge[i])); err != nil {
				failed = true
			}
		}
	}

	if failed {
		code |= 8
	}

	return code
}
