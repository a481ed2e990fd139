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

import (
	_ "embed"
	"os"
	"path/filepath"

	"gitlab.com/tozd/go/errors"
)

//go:embed template.json
var template []byte

// Template returns the bundled starter job file
func Template() []byte {
	out := make([]byte, len(template))
	copy(out, template)
	return out
}

// WriteTemplate writes the starter job file to path. An existing file is
// left untouched unless overwrite is set.
func WriteTemplate(path string, overwrite bool) error {
	if _, err := os.Stat(path); err == nil && !overwrite {
		return errors.Errorf("%w: %s", ErrConfigExists, path)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.Errorf("creating config directory: %w", err)
	}

	if err := os.WriteFile(path, template, 0644); err != nil {
		return errors.Errorf("writing config: %w", err)
	}

	return nil
}
