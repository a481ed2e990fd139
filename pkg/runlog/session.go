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

package runlog

import (
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/pterm/pterm"
	"gitlab.com/tozd/go/errors"
)

// Session is the transcript of one invocation. Everything written to it is
// stored without terminal color sequences.
type Session struct {
	mu   sync.Mutex
	file *os.File
	path string
}

// OpenSession creates a new transcript in dir.
func OpenSession(dir string, start time.Time) (*Session, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, errors.Errorf("creating log directory: %w", err)
	}

	path := SessionLogPath(dir, start)
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, errors.Errorf("creating session log: %w", err)
	}

	return &Session{file: f, path: filepath.Clean(path)}, nil
}

func (s *Session) Path() string { return s.path }

// Write implements io.Writer. It reports len(p) on success so that callers
// teeing colored output are not confused by the shorter stripped text.
func (s *Session) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.file == nil {
		return 0, os.ErrClosed
	}

	if _, err := s.file.WriteString(pterm.RemoveColorFromString(string(p))); err != nil {
		return 0, err
	}
	return len(p), nil
}

func (s *Session) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.file == nil {
		return nil
	}
	err := s.file.Close()
	s.file = nil
	return err
}
