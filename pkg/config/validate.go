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
	"strings"

	"gitlab.com/tozd/go/errors"
)

// 🔍 Validate turns a parsed document into a registry. The first entry with
// a missing or empty field rejects the whole file.
func Validate(path string, doc *Document) (*Registry, error) {
	if doc == nil {
		return nil, errors.Errorf("%w: %s: empty document", ErrMalformedConfig, path)
	}

	jobs := make([]Job, 0, len(doc.Entries))
	for i, e := range doc.Entries {
		missing := missingFields(doc.Schema, e)
		if len(missing) > 0 {
			label := ""
			if e.Name != nil && *e.Name != "" {
				label = " (" + *e.Name + ")"
			}
			return nil, errors.Errorf("%w: %s: %s[%d]%s is missing required field(s): %s",
				ErrJobValidation, path, doc.Schema.Key(), i, label, strings.Join(missing, ", "))
		}

		job := Job{
			Name:        *e.Name,
			Source:      *e.Source,
			Destination: *e.Destination,
			Mirror:      true,
		}
		if doc.Schema == SchemaJobs {
			job.Mirror = *e.Mirror
		}
		jobs = append(jobs, job)
	}

	return NewRegistry(path, doc.Schema, jobs)
}

func missingFields(schema Schema, e Entry) []string {
	var missing []string
	if e.Name == nil || strings.TrimSpace(*e.Name) == "" {
		missing = append(missing, "name")
	}
	if e.Source == nil || strings.TrimSpace(*e.Source) == "" {
		missing = append(missing, "source")
	}
	if e.Destination == nil || strings.TrimSpace(*e.Destination) == "" {
		missing = append(missing, "destination")
	}
	if schema == SchemaJobs && e.Mirror == nil {
		missing = append(missing, "mirror")
	}
	return missing
}
