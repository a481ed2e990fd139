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
	"github.com/fatih/color"

	"github.com/walteh/robomirror/pkg/operation"
)

// 🎯 FormatSymbol returns the colored marker for a status
func FormatSymbol(s JobStatus) string {
	switch s {
	case StatusOK:
		return color.GreenString("✓")
	case StatusWarning:
		return color.YellowString("⚠")
	default:
		return color.RedString("✗")
	}
}

// FormatMode describes how a request was run.
func FormatMode(req operation.Request) string {
	mode := "additive"
	if req.Mirror {
		mode = "mirror"
	}
	if req.DryRun {
		mode += " (dry)"
	}
	return mode
}
