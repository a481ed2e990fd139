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

import "gitlab.com/tozd/go/errors"

var (
	// ErrUsage is returned for conflicting or incomplete mode flags.
	ErrUsage = errors.Base("invalid usage")

	// ErrJobNotFound is returned when a named job is not in the registry.
	ErrJobNotFound = errors.Base("job not found")

	// ErrNoConfigLoaded is returned when a job mode runs without any jobs.
	ErrNoConfigLoaded = errors.Base("no jobs configured")

	// ErrJobsFailed is returned after every requested job ran and at least
	// one of them ended with a fatal exit code.
	ErrJobsFailed = errors.Base("one or more jobs failed")
)
