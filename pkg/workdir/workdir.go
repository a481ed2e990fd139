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

// Package workdir switches the process working directory for the duration of
// a scope and restores it on every exit path.
package workdir

import (
	"os"
	"sync"

	"gitlab.com/tozd/go/errors"
)

// Scope records the directory that was current before Enter.
type Scope struct {
	origin string
	dir    string
	once   sync.Once
	err    error
}

// 🚪 Enter changes the working directory to dir. The caller must defer
// Restore. An empty dir keeps the current directory but still returns a
// usable scope.
func Enter(dir string) (*Scope, error) {
	origin, err := os.Getwd()
	if err != nil {
		return nil, errors.Errorf("getting working directory: %w", err)
	}

	s := &Scope{origin: origin, dir: origin}
	if dir == "" {
		return s, nil
	}

	if err := os.Chdir(dir); err != nil {
		return nil, errors.Errorf("entering %s: %w", dir, err)
	}

	if s.dir, err = os.Getwd(); err != nil {
		s.dir = dir
	}

	return s, nil
}

// Restore returns to the original directory. It is safe to call more than once.
func (s *Scope) Restore() error {
	if s == nil {
		return nil
	}
	s.once.Do(func() {
		if err := os.Chdir(s.origin); err != nil {
			s.err = errors.Errorf("restoring working directory %s: %w", s.origin, err)
		}
	})
	return s.err
}

func (s *Scope) Origin() string { return s.origin }

func (s *Scope) Dir() string { return s.dir }

// 🔄 With runs fn inside dir and restores the previous directory afterwards,
// including when fn panics. A restore failure is reported only when fn
// itself succeeded.
func With(dir string, fn func() error) (err error) {
	scope, err := Enter(dir)
	if err != nil {
		return err
	}
	defer func() {
		if rerr := scope.Restore(); rerr != nil && err == nil {
			err = rerr
		}
	}()

	return fn()
}
