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
	"fmt"
	"io"
	"path/filepath"

	"github.com/pterm/pterm"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/robomirror/pkg/operation"
)

// 📊 JobStatus is the display class of one result
type JobStatus int

const (
	StatusOK JobStatus = iota
	StatusWarning
	StatusFailed
)

// String returns a string representation of JobStatus
func (s JobStatus) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusWarning:
		return "warning"
	default:
		return "failed"
	}
}

// Of classifies a result for display.
func Of(res operation.Result) JobStatus {
	switch {
	case !res.Outcome.Success():
		return StatusFailed
	case res.Outcome.Warning():
		return StatusWarning
	default:
		return StatusOK
	}
}

// 📋 Summary collects the results of one batch
type Summary struct {
	Results []operation.Result
}

// Summarize wraps results in file order.
func Summarize(results []operation.Result) Summary {
	return Summary{Results: results}
}

// Counts returns how many results fall in each class.
func (s Summary) Counts() (ok, warning, failed int) {
	for _, res := range s.Results {
		switch Of(res) {
		case StatusOK:
			ok++
		case StatusWarning:
			warning++
		default:
			failed++
		}
	}
	return ok, warning, failed
}

// Failed returns the results with a fatal outcome.
func (s Summary) Failed() []operation.Result {
	var out []operation.Result
	for _, res := range s.Results {
		if Of(res) == StatusFailed {
			out = append(out, res)
		}
	}
	return out
}

// Line is a one-line tally such as "3 job(s): 1 ok, 1 warning, 1 failed".
func (s Summary) Line() string {
	ok, warning, failed := s.Counts()
	return fmt.Sprintf("%d job(s): %d ok, %d warning, %d failed", len(s.Results), ok, warning, failed)
}

// 🖨️ Render writes the summary table to w
func (s Summary) Render(w io.Writer) error {
	data := pterm.TableData{{"", "Job", "Mode", "Exit", "Result", "Log"}}
	for _, res := range s.Results {
		logName := "-"
		if res.LogPath != "" {
			logName = filepath.Base(res.LogPath)
		}
		data = append(data, []string{
			FormatSymbol(Of(res)),
			res.Name(),
			FormatMode(res.Request),
			fmt.Sprintf("%d", res.Outcome.Code),
			res.Outcome.Kind.String(),
			logName,
		})
	}

	table, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		return errors.Errorf("rendering summary table: %w", err)
	}

	if _, err := fmt.Fprintf(w, "%s\n%s\n", table, s.Line()); err != nil {
		return errors.Errorf("writing summary: %w", err)
	}
	return nil
}
