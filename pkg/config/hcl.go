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
	"path/filepath"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
	"gitlab.com/tozd/go/errors"
)

func init() {
	Register(&HCLParser{})
}

// 🔧 HCLParser implements the Parser interface for HCL files.
//
//	job "Docs" {
//	  source      = "./a"
//	  destination = "./b"
//	  mirror      = true
//	}
type HCLParser struct{}

// 🔍 CanParse checks if this parser can handle the given file
func (p *HCLParser) CanParse(filename string) bool {
	return strings.EqualFold(filepath.Ext(strings.TrimSpace(filename)), ".hcl")
}

// 📝 Parse parses the job file from HCL. HCL files always use the current
// schema.
func (p *HCLParser) Parse(ctx context.Context, data []byte) (*Document, error) {
	parser := hclparse.NewParser()
	hclFile, diags := parser.ParseHCL(data, "robomirror.hcl")
	if diags.HasErrors() {
		return nil, errors.Errorf("%w: parsing HCL: %s", ErrMalformedConfig, diags.Error())
	}

	// Create evaluation context
	evalCtx := &hcl.EvalContext{
		Variables: map[string]cty.Value{},
	}

	type hclJob struct {
		Name        string  `hcl:"name,label"`
		Source      *string `hcl:"source,optional"`
		Destination *string `hcl:"destination,optional"`
		Mirror      *bool   `hcl:"mirror,optional"`
	}

	type hclConfig struct {
		Jobs []hclJob `hcl:"job,block"`
	}

	var hclCfg hclConfig
	diags = gohcl.DecodeBody(hclFile.Body, evalCtx, &hclCfg)
	if diags.HasErrors() {
		return nil, errors.Errorf("%w: decoding HCL: %s", ErrMalformedConfig, diags.Error())
	}

	doc := &Document{
		Schema:  SchemaJobs,
		Entries: make([]Entry, 0, len(hclCfg.Jobs)),
	}
	for _, j := range hclCfg.Jobs {
		name := j.Name
		doc.Entries = append(doc.Entries, Entry{
			Name:        &name,
			Source:      j.Source,
			Destination: j.Destination,
			Mirror:      j.Mirror,
		})
	}

	return doc, nil
}
