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

import "fmt"

// Kind is the classification of an exit code.
type Kind int

const (
	NoChange Kind = iota
	Copied
	ExtraFilesDetected
	CopiedWithExtras
	MismatchWarning
	CopiedWithMismatch
	MismatchAndExtras
	CopiedWithMismatchAndExtras
	Fatal
)

// CodeLaunchFailed is recorded when the tool could not be started at all.
const CodeLaunchFailed = -1

var kindNames = [...]string{
	NoChange:                    "NoChange",
	Copied:                      "Copied",
	ExtraFilesDetected:          "ExtraFilesDetected",
	CopiedWithExtras:            "CopiedWithExtras",
	MismatchWarning:             "MismatchWarning",
	CopiedWithMismatch:          "CopiedWithMismatch",
	MismatchAndExtras:           "MismatchAndExtras",
	CopiedWithMismatchAndExtras: "CopiedWithMismatchAndExtras",
	Fatal:                       "Fatal",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// messages for codes 0-7, in the wording of the robocopy documentation.
var messages = [...]string{
	"No files were copied. No failure was encountered. No files were mismatched.",
	"All files were copied successfully.",
	"Extra files were detected in the destination. No files were copied.",
	"Some files were copied. Additional files were present. No failure was encountered.",
	"Some mismatched files or directories were detected.",
	"Some files were copied. Some files were mismatched. No failure was encountered.",
	"Additional files and mismatched files exist. No files were copied and no failures were encountered.",
	"Files were copied, a file mismatch was present, and additional files were present.",
}

// Outcome is a classified exit code.
type Outcome struct {
	Code int
	Kind Kind
	// Err is set when the tool could not be started.
	Err error
}

// 🎯 Classify maps an exit code to its outcome. 0-7 are the documented bit
// combinations, everything else is Fatal.
func Classify(code int) Outcome {
	if code >= 0 && code < int(Fatal) {
		return Outcome{Code: code, Kind: Kind(code)}
	}
	return Outcome{Code: code, Kind: Fatal}
}

// LaunchFailed is the outcome of a tool that never ran.
func LaunchFailed(err error) Outcome {
	return Outcome{Code: CodeLaunchFailed, Kind: Fatal, Err: err}
}

// Success is true for every code below 8, warnings included.
func (o Outcome) Success() bool {
	return o.Kind != Fatal
}

// Warning is true when the mismatch bit (4) is set.
func (o Outcome) Warning() bool {
	return o.Success() && o.Code&4 != 0
}

func (o Outcome) Message() string {
	switch {
	case o.Kind != Fatal:
		return messages[o.Code]
	case o.Err != nil:
		return fmt.Sprintf("Fatal error: robocopy could not be started: %v", o.Err)
	case o.Code >= 16:
		return fmt.Sprintf("Fatal error (code %d): serious error, no files were copied.", o.Code)
	default:
		return fmt.Sprintf("Fatal error (code %d): some files or directories could not be copied.", o.Code)
	}
}

func (o Outcome) String() string {
	return fmt.Sprintf("%s (exit code %d)", o.Kind, o.Code)
}
