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
	"gitlab.com/tozd/go/errors"
)

// documentFromMap converts a generically decoded JSON or YAML object into a
// Document. The "jobs" key wins over the legacy "backupJobs" key.
func documentFromMap(top map[string]any) (*Document, error) {
	schema := SchemaJobs
	raw, ok := top[SchemaJobs.Key()]
	if !ok {
		schema = SchemaLegacy
		raw, ok = top[SchemaLegacy.Key()]
	}
	if !ok {
		return nil, errors.Errorf("%w: missing top-level %q array", ErrMalformedConfig, SchemaJobs.Key())
	}

	list, ok := raw.([]any)
	if !ok {
		return nil, errors.Errorf("%w: %q must be an array", ErrMalformedConfig, schema.Key())
	}

	doc := &Document{
		Schema:  schema,
		Entries: make([]Entry, 0, len(list)),
	}
	for _, item := range list {
		doc.Entries = append(doc.Entries, entryFromMap(item))
	}

	return doc, nil
}

// entryFromMap keeps only fields of the expected type. Anything that is not
// an object yields an Entry with every field missing.
func entryFromMap(item any) Entry {
	m, ok := item.(map[string]any)
	if !ok {
		return Entry{}
	}

	return Entry{
		Name:        stringField(m, "name"),
		Source:      stringField(m, "source"),
		Destination: stringField(m, "destination"),
		Mirror:      boolField(m, "mirror"),
	}
}

func stringField(m map[string]any, key string) *string {
	s, ok := m[key].(string)
	if !ok {
		return nil
	}
	return &s
}

func boolField(m map[string]any, key string) *bool {
	b, ok := m[key].(bool)
	if !ok {
		return nil
	}
	return &b
}
