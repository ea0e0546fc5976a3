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

// 🔧 HCLParser implements the Parser interface for HCL rule files
type HCLParser struct{}

// 🔍 CanParse checks if this parser can handle the given file
func (p *HCLParser) CanParse(filename string) bool {
	return strings.HasSuffix(filename, ".hcl")
}

// 📝 Parse parses the rule set from HCL
func (p *HCLParser) Parse(ctx context.Context, data []byte) (*RuleSet, error) {
	parser := hclparse.NewParser()
	hclFile, diags := parser.ParseHCL(data, "rules.hcl")
	if diags.HasErrors() {
		return nil, errors.Errorf("parsing HCL: %s", diags.Error())
	}

	// Create evaluation context
	evalCtx := &hcl.EvalContext{
		Variables: map[string]cty.Value{},
	}

	// Define HCL schema
	type hclRule struct {
		Old        string `hcl:"old"`
		New        string `hcl:"new"`
		Literal    bool   `hcl:"literal,optional"`
		IgnoreCase bool   `hcl:"ignore_case,optional"`
		Multiline  bool   `hcl:"multiline,optional"`
		DotAll     bool   `hcl:"dot_all,optional"`
		Slide      *int   `hcl:"slide,optional"`
		AllSlides  bool   `hcl:"all_slides,optional"`
		Shapes     string `hcl:"shapes,optional"`
		Warn       *bool  `hcl:"warn,optional"`
	}
	type hclRuleSet struct {
		Deck   string    `hcl:"deck,optional"`
		Output string    `hcl:"output,optional"`
		Rules  []hclRule `hcl:"rule,block"`
	}

	// Decode HCL
	var hclRS hclRuleSet
	diags = gohcl.DecodeBody(hclFile.Body, evalCtx, &hclRS)
	if diags.HasErrors() {
		return nil, errors.Errorf("decoding HCL: %s", diags.Error())
	}

	rs := &RuleSet{Deck: hclRS.Deck, Output: hclRS.Output}
	for _, hr := range hclRS.Rules {
		rs.Rules = append(rs.Rules, RuleSpec{
			Old:        hr.Old,
			New:        hr.New,
			Literal:    hr.Literal,
			IgnoreCase: hr.IgnoreCase,
			Multiline:  hr.Multiline,
			DotAll:     hr.DotAll,
			Slide:      hr.Slide,
			AllSlides:  hr.AllSlides,
			Shapes:     hr.Shapes,
			Warn:       hr.Warn,
		})
	}
	return rs, nil
}
