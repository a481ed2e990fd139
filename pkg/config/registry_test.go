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
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJobResolve(t *testing.T) {
	base := t.TempDir()
	other := t.TempDir()

	tests := []struct {
		name    string
		job     Job
		baseDir string
		wantSrc string
		wantDst string
	}{
		{
			name:    "relative_paths_join_base",
			job:     Job{Source: "./a", Destination: "b/c"},
			baseDir: base,
			wantSrc: filepath.Join(base, "a"),
			wantDst: filepath.Join(base, "b", "c"),
		},
		{
			name:    "absolute_paths_untouched",
			job:     Job{Source: other, Destination: filepath.Join(other, "x")},
			baseDir: base,
			wantSrc: other,
			wantDst: filepath.Join(other, "x"),
		},
		{
			name:    "no_base_dir",
			job:     Job{Source: "a/../b", Destination: "c"},
			wantSrc: "b",
			wantDst: "c",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src, dst := tt.job.Resolve(tt.baseDir)
			assert.Equal(t, tt.wantSrc, src)
			assert.Equal(t, tt.wantDst, dst)
		})
	}
}

func TestRegistry(t *testing.T) {
	t.Run("nil_registry_is_empty", func(t *testing.T) {
		var reg *Registry
		assert.Equal(t, 0, reg.Len())
		assert.Nil(t, reg.Jobs())
		assert.Empty(t, reg.Names())
		_, ok := reg.Get("Docs")
		assert.False(t, ok)
		assert.Equal(t, "", reg.BaseDir())
	})

	t.Run("jobs_returns_a_copy", func(t *testing.T) {
		reg, err := NewRegistry("/cfg/robomirror.json", SchemaJobs, []Job{
			{Name: "a", Source: "s", Destination: "d"},
		})
		require.NoError(t, err)

		jobs := reg.Jobs()
		jobs[0].Name = "changed"
		job, ok := reg.Get("a")
		require.True(t, ok)
		assert.Equal(t, "a", job.Name)
		assert.Equal(t, filepath.Dir("/cfg/robomirror.json"), reg.BaseDir())
	})

	t.Run("duplicate_names_rejected", func(t *testing.T) {
		reg, err := NewRegistry("x.json", SchemaJobs, []Job{{Name: "a"}, {Name: "b"}, {Name: "a"}})
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrJobValidation)
		assert.Nil(t, reg)
	})
}

func TestJobString(t *testing.T) {
	assert.Equal(t, "Docs: ./a -> ./b (mirror)", Job{Name: "Docs", Source: "./a", Destination: "./b", Mirror: true}.String())
	assert.Equal(t, "Docs: ./a -> ./b (additive)", Job{Name: "Docs", Source: "./a", Destination: "./b"}.String())
}
