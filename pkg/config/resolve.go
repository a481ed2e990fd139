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
	"context"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// DefaultFileName is the job file created by init and searched for first.
const DefaultFileName = "robomirror.json"

// CandidateNames are searched in order in each search directory.
var CandidateNames = []string{
	DefaultFileName,
	"robomirror.yaml",
	"robomirror.yml",
	"robomirror.hcl",
}

// ResolveOptions controls where Resolve looks for a job file.
type ResolveOptions struct {
	// Explicit is a user-supplied path. When set it must exist and nothing
	// else is searched.
	Explicit string

	// WorkingDir is the invocation directory. Empty means os.Getwd.
	WorkingDir string

	// InstallDir is searched after WorkingDir when set. Empty skips it.
	InstallDir string
}

// 🔍 Resolve locates the job file. It returns "" with no error when no
// file exists and none was requested explicitly.
func Resolve(ctx context.Context, opts ResolveOptions) (string, error) {
	logger := zerolog.Ctx(ctx)

	wd := opts.WorkingDir
	if wd == "" {
		var err error
		wd, err = os.Getwd()
		if err != nil {
			return "", errors.Errorf("getting working directory: %w", err)
		}
	}

	if opts.Explicit != "" {
		p := opts.Explicit
		if !filepath.IsAbs(p) {
			p = filepath.Join(wd, p)
		}
		if !isFile(p) {
			return "", errors.Errorf("%w: %s", ErrConfigNotFound, p)
		}
		logger.Debug().Str("path", p).Msg("using explicit job file")
		return filepath.Clean(p), nil
	}

	dirs := []string{wd}
	if opts.InstallDir != "" && filepath.Clean(opts.InstallDir) != filepath.Clean(wd) {
		dirs = append(dirs, opts.InstallDir)
	}

	for _, dir := range dirs {
		for _, name := range CandidateNames {
			p := filepath.Join(dir, name)
			if isFile(p) {
				logger.Debug().Str("path", p).Msg("found job file")
				return p, nil
			}
		}
	}

	logger.Debug().Strs("searched", dirs).Msg("no job file found")
	return "", nil
}

func isFile(p string) bool {
	info, err := os.Stat(p)
	return err == nil && !info.IsDir()
}
