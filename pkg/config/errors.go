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

package config

import "gitlab.com/tozd/go/errors"

var (
	// ErrConfigNotFound is returned when an explicitly requested job file does not exist.
	ErrConfigNotFound = errors.Base("config file not found")

	// ErrMalformedConfig is returned when the job file cannot be parsed or
	// lacks a recognized top-level job list.
	ErrMalformedConfig = errors.Base("malformed config")

	// ErrJobValidation is returned when a job entry is missing a required
	// field. The whole registry is rejected.
	ErrJobValidation = errors.Base("invalid job entry")

	// ErrConfigExists is returned by WriteTemplate when the target exists and
	// overwriting was not confirmed.
	ErrConfigExists = errors.Base("config file already exists")
)
