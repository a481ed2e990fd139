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

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestModeFromFlags(t *testing.T) {
	tests := []struct {
		name        string
		flags       Flags
		want        Mode
		errContains string
	}{
		{name: "no_flags_is_interactive", want: Interactive{}},
		{name: "named_job", flags: Flags{Job: "Docs"}, want: RunNamedJob{Name: "Docs"}},
		{name: "all_jobs", flags: Flags{All: true}, want: RunAllJobs{}},
		{
			name:  "manual_additive_by_default",
			flags: Flags{Source: "a", Destination: "b"},
			want:  RunManual{Source: "a", Destination: "b"},
		},
		{
			name:  "manual_mirror",
			flags: Flags{Source: "a", Destination: "b", Mirror: true},
			want:  RunManual{Source: "a", Destination: "b", Mirror: true},
		},
		{name: "init", flags: Flags{Init: true}, want: CreateConfig{}},
		{name: "logs", flags: Flags{Logs: true}, want: OpenLogs{}},
		{
			name:        "manual_needs_destination",
			flags:       Flags{Source: "a"},
			errContains: "--source and --destination are both required",
		},
		{
			name:        "mirror_without_manual",
			flags:       Flags{Job: "Docs", Mirror: true},
			errContains: "--mirror only applies",
		},
		{
			name:        "two_selectors",
			flags:       Flags{Job: "Docs", All: true},
			errContains: "--job, --all cannot be combined",
		},
		{
			name:        "three_selectors",
			flags:       Flags{Init: true, Logs: true, Source: "a", Destination: "b"},
			errContains: "--source/--destination, --init, --logs cannot be combined",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ModeFromFlags(tt.flags)
			if tt.errContains != "" {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrUsage)
				assert.Contains(t, err.Error(), tt.errContains)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestModesNeedingConfig(t *testing.T) {
	assert.True(t, RunNamedJob{}.needsConfig())
	assert.True(t, RunAllJobs{}.needsConfig())
	assert.True(t, Interactive{}.needsConfig())
	assert.False(t, RunManual{}.needsConfig())
	assert.False(t, CreateConfig{}.needsConfig())
	assert.False(t, OpenLogs{}.needsConfig())
}
