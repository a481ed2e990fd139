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

package status

import (
	"bytes"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/pterm/pterm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/walteh/robomirror/pkg/operation"
	"github.com/walteh/robomirror/pkg/robocopy"
)

func result(job string, code int, mirror bool, logPath string) operation.Result {
	return operation.Result{
		Request: operation.Request{Job: job, Source: "s", Destination: "d", Mirror: mirror},
		Outcome: robocopy.Classify(code),
		LogPath: logPath,
	}
}

func TestOf(t *testing.T) {
	tests := []struct {
		name string
		code int
		want JobStatus
	}{
		{name: "no_change", code: 0, want: StatusOK},
		{name: "copied_with_extras", code: 3, want: StatusOK},
		{name: "mismatch", code: 4, want: StatusWarning},
		{name: "everything", code: 7, want: StatusWarning},
		{name: "fatal", code: 8, want: StatusFailed},
		{name: "launch_failure", code: robocopy.CodeLaunchFailed, want: StatusFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Of(result("j", tt.code, true, "")))
		})
	}
}

func TestSummary(t *testing.T) {
	color.NoColor = true
	defer func() { color.NoColor = false }()

	s := Summarize([]operation.Result{
		result("Docs", 1, true, "/logs/robomirror_1_Docs.log"),
		result("Photos", 6, false, ""),
		result("Broken", 16, true, "/logs/robomirror_2_Broken.log"),
		result("", 0, false, ""),
	})

	ok, warning, failed := s.Counts()
	assert.Equal(t, 2, ok)
	assert.Equal(t, 1, warning)
	assert.Equal(t, 1, failed)

	require.Len(t, s.Failed(), 1)
	assert.Equal(t, "Broken", s.Failed()[0].Name())
	assert.Equal(t, "4 job(s): 2 ok, 1 warning, 1 failed", s.Line())

	var buf bytes.Buffer
	require.NoError(t, s.Render(&buf))
	out := pterm.RemoveColorFromString(buf.String())

	row := func(name string) string {
		for _, line := range strings.Split(out, "\n") {
			if strings.Contains(line, name) {
				return line
			}
		}
		t.Fatalf("no row for %s in:\n%s", name, out)
		return ""
	}

	assert.Contains(t, row("Docs"), "robomirror_1_Docs.log")
	assert.Contains(t, row("Docs"), "✓")
	assert.Contains(t, row("Photos"), "MismatchAndExtras")
	assert.Contains(t, row("Photos"), "⚠")
	assert.Contains(t, row("Broken"), "Fatal")
	assert.Contains(t, row("Broken"), "✗")
	assert.Contains(t, row("manual"), "NoChange")
	assert.Less(t, strings.Index(out, "Docs"), strings.Index(out, "Photos"), "rows keep file order")
	assert.True(t, strings.HasSuffix(strings.TrimSpace(out), "4 job(s): 2 ok, 1 warning, 1 failed"))
}

func TestFormatMode(t *testing.T) {
	assert.Equal(t, "mirror", FormatMode(operation.Request{Mirror: true}))
	assert.Equal(t, "additive (dry)", FormatMode(operation.Request{DryRun: true}))
}
