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

// 🔌 Parser is the interface for job file parsers
type Parser interface {
	// 📝 Parse decodes raw file bytes into an unvalidated document
	Parse(ctx context.Context, data []byte) (*Document, error)

	// 🔍 CanParse checks if this parser can handle the given file
	CanParse(filename string) bool
}

var (
	// 🗺️ parsers is a list of available parsers
	parsers []Parser
)

// 📝 Register registers a parser
func Register(p Parser) {
	parsers = append(parsers, p)
}

// 🎯 GetParser returns a parser that can handle the given file
func GetParser(filename string) Parser {
	for _, p := range parsers {
		if p.CanParse(filename) {
			return p
		}
	}
	return nil
}

// 📄 Entry is one job record as found in the file. A nil field means the
// field was absent or had the wrong type.
type Entry struct {
	Name        *string
	Source      *string
	Destination *string
	Mirror      *bool
}

// 📄 Document is a parsed but unvalidated job file
type Document struct {
	Schema  Schema
	Entries []Entry
}

// 🎯 Load reads, parses and validates the job file at path. Either every
// entry is valid and a registry is returned, or nothing is.
func Load(ctx context.Context, path string) (*Registry, error) {
	logger := zerolog.Ctx(ctx)

	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, errors.Errorf("resolving config path: %w", err)
	}

	logger.Debug().Str("path", absPath).Msg("loading job file")

	data, err := os.ReadFile(absPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Errorf("%w: %s", ErrConfigNotFound, absPath)
		}
		return nil, errors.Errorf("reading config file: %w", err)
	}

	p := GetParser(absPath)
	if p == nil {
		return nil, errors.Errorf("%w: %s: unsupported file extension %q", ErrMalformedConfig, absPath, filepath.Ext(absPath))
	}

	doc, err := p.Parse(ctx, data)
	if err != nil {
		return nil, errors.Errorf("%s: %w", absPath, err)
	}

	reg, err := Validate(absPath, doc)
	if err != nil {
		return nil, err
	}

	logger.Debug().
		Str("path", absPath).
		Str("schema", reg.Schema().String()).
		Int("jobs", reg.Len()).
		Msg("job file loaded")

	return reg, nil
}
