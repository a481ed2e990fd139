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

package robocopy

import (
	"strconv"
	"strings"

	"gitlab.com/tozd/go/errors"
)

const (
	// Retries is passed as /R:n. Per-file retry is delegated to the tool.
	Retries = 3
	// WaitSeconds is passed as /W:n.
	WaitSeconds = 10
)

const (
	FlagMirror   = "/MIR"
	FlagRecurse  = "/E"
	FlagTee      = "/TEE"
	FlagListOnly = "/L"
	prefixLog    = "/LOG+:"
	prefixRetry  = "/R:"
	prefixWait   = "/W:"
)

// Options describes one invocation of the tool.
type Options struct {
	Source      string
	Destination string
	Mirror      bool
	DryRun      bool
	// LogPath is appended to by the tool. Empty omits /LOG+.
	LogPath string
}

// 🔧 Args builds the fixed argument list:
//
//	src dst (/MIR | /E) /R:3 /W:10 [/LOG+:path] /TEE [/L]
func Args(opts Options) []string {
	args := []string{opts.Source, opts.Destination}

	if opts.Mirror {
		args = append(args, FlagMirror)
	} else {
		args = append(args, FlagRecurse)
	}

	args = append(args, prefixRetry+strconv.Itoa(Retries))
	args = append(args, prefixWait+strconv.Itoa(WaitSeconds))

	if opts.LogPath != "" {
		args = append(args, prefixLog+opts.LogPath)
	}

	args = append(args, FlagTee)

	if opts.DryRun {
		args = append(args, FlagListOnly)
	}

	return args
}

// Parse is the inverse of Args. Unknown switches are rejected.
func Parse(args []string) (Options, error) {
	if len(args) < 2 {
		return Options{}, errors.Errorf("expected source and destination, got %d argument(s)", len(args))
	}

	opts := Options{Source: args[0], Destination: args[1]}
	for _, a := range args[2:] {
		upper := strings.ToUpper(a)
		switch {
		case upper == FlagMirror:
			opts.Mirror = true
		case upper == FlagRecurse, upper == FlagTee:
		case upper == FlagListOnly:
			opts.DryRun = true
		case strings.HasPrefix(upper, prefixLog):
			opts.LogPath = a[len(prefixLog):]
		case strings.HasPrefix(upper, prefixRetry), strings.HasPrefix(upper, prefixWait):
		default:
			return Options{}, errors.Errorf("unsupported switch %q", a)
		}
	}

	return opts, nil
}
