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
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
	"gitlab.com/tozd/go/errors"
)

type logFile struct {
	name    string
	modTime int64
}

// 🧹 Prune keeps the keep most recent files in dir matching pattern and
// deletes the rest. Recency is modification time, newest first, with the
// file name as tie break. It returns how many files were deleted. A file
// that cannot be removed does not stop the prune; the first such error is
// returned alongside the count.
func Prune(dir, pattern string, keep int) (int, error) {
	if keep < 0 {
		keep = 0
	}

	matches, err := doublestar.Glob(os.DirFS(dir), pattern)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return 0, nil
		}
		return 0, errors.Errorf("listing %s in %s: %w", pattern, dir, err)
	}

	files := make([]logFile, 0, len(matches))
	for _, name := range matches {
		info, err := os.Stat(filepath.Join(dir, name))
		if err != nil || !info.Mode().IsRegular() {
			continue
		}
		files = append(files, logFile{name: name, modTime: info.ModTime().UnixNano()})
	}

	if len(files) <= keep {
		return 0, nil
	}

	sort.Slice(files, func(i, j int) bool {
		if files[i].modTime != files[j].modTime {
			return files[i].modTime > files[j].modTime
		}
		return files[i].name > files[j].name
	})

	deleted := 0
	var firstErr error
	for _, f := range files[keep:] {
		if err := os.Remove(filepath.Join(dir, f.name)); err != nil {
			if firstErr == nil {
				firstErr = errors.Errorf("removing old log %s: %w", f.name, err)
			}
			continue
		}
		deleted++
	}

	return deleted, firstErr
}
