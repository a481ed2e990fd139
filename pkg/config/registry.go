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
	"fmt"
	"path/filepath"

	"gitlab.com/tozd/go/errors"
)

// 📑 Schema identifies which job file layout was loaded
type Schema int

const (
	// SchemaJobs is the current layout: a "jobs" array whose entries carry a
	// required "mirror" flag.
	SchemaJobs Schema = iota
	// SchemaLegacy is the original layout: a "backupJobs" array without a
	// mirror flag. Every legacy job mirrors.
	SchemaLegacy
)

// Key returns the top-level key holding the job list
func (s Schema) Key() string {
	if s == SchemaLegacy {
		return "backupJobs"
	}
	return "jobs"
}

func (s Schema) String() string {
	if s == SchemaLegacy {
		return "legacy"
	}
	return "current"
}

// 📦 Job is a named backup definition
type Job struct {
	Name        string `json:"name" yaml:"name"`
	Source      string `json:"source" yaml:"source"`
	Destination string `json:"destination" yaml:"destination"`
	Mirror      bool   `json:"mirror" yaml:"mirror"`
}

// Resolve returns absolute source and destination paths. Relative paths are
// taken relative to baseDir, which is the directory of the job file.
func (j Job) Resolve(baseDir string) (string, string) {
	return resolvePath(baseDir, j.Source), resolvePath(baseDir, j.Destination)
}

func resolvePath(baseDir, p string) string {
	if filepath.IsAbs(p) || baseDir == "" {
		return filepath.Clean(p)
	}
	return filepath.Join(baseDir, p)
}

// 📝 String returns a one-line description of the job
func (j Job) String() string {
	mode := "additive"
	if j.Mirror {
		mode = "mirror"
	}
	return fmt.Sprintf("%s: %s -> %s (%s)", j.Name, j.Source, j.Destination, mode)
}

// 🗂️ Registry is the ordered set of jobs loaded from one job file.
// Iteration order is file order. A nil *Registry is an empty registry.
type Registry struct {
	path    string
	baseDir string
	schema  Schema
	jobs    []Job
	index   map[string]int
}

// NewRegistry builds a registry from jobs in order. Job names must be unique.
func NewRegistry(path string, schema Schema, jobs []Job) (*Registry, error) {
	r := &Registry{
		path:   path,
		schema: schema,
		jobs:   make([]Job, 0, len(jobs)),
		index:  make(map[string]int, len(jobs)),
	}
	if path != "" {
		r.baseDir = filepath.Dir(path)
	}

	for _, job := range jobs {
		if _, dup := r.index[job.Name]; dup {
			return nil, errors.Errorf("%w: %s: duplicate job name %q", ErrJobValidation, path, job.Name)
		}
		r.index[job.Name] = len(r.jobs)
		r.jobs = append(r.jobs, job)
	}

	return r, nil
}

// Len returns the number of jobs
func (r *Registry) Len() int {
	if r == nil {
		return 0
	}
	return len(r.jobs)
}

// Jobs returns a copy of the jobs in file order
func (r *Registry) Jobs() []Job {
	if r == nil {
		return nil
	}
	out := make([]Job, len(r.jobs))
	copy(out, r.jobs)
	return out
}

// Names returns job names in file order
func (r *Registry) Names() []string {
	if r == nil {
		return nil
	}
	names := make([]string, len(r.jobs))
	for i, job := range r.jobs {
		names[i] = job.Name
	}
	return names
}

// Get looks up a job by name
func (r *Registry) Get(name string) (Job, bool) {
	if r == nil {
		return Job{}, false
	}
	i, ok := r.index[name]
	if !ok {
		return Job{}, false
	}
	return r.jobs[i], true
}

// Path returns the job file the registry was loaded from
func (r *Registry) Path() string {
	if r == nil {
		return ""
	}
	return r.path
}

// BaseDir returns the directory relative job paths resolve against
func (r *Registry) BaseDir() string {
	if r == nil {
		return ""
	}
	return r.baseDir
}

// Schema returns the detected file layout
func (r *Registry) Schema() Schema {
	if r == nil {
		return SchemaJobs
	}
	return r.schema
}
