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

// Package config loads replacement-rule files. Rule files come in YAML
// and HCL flavors; the parser is picked by file extension through a
// registry.
package config

import (
	"context"
	"os"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// 🔌 Parser is the interface for rule-file parsers
type Parser interface {
	// Parse parses the rule set from bytes
	Parse(ctx context.Context, data []byte) (*RuleSet, error)

	// CanParse checks if this parser can handle the given file
	CanParse(filename string) bool
}

// 🗺️ parsers is the list of available parsers
var parsers []Parser

// Register registers a parser.
func Register(p Parser) {
	parsers = append(parsers, p)
}

// GetParser returns a parser that can handle the given file, or nil.
func GetParser(filename string) Parser {
	for _, p := range parsers {
		if p.CanParse(filename) {
			return p
		}
	}
	return nil
}

// 🔄 RuleSpec is one replacement rule as written in a rule file.
type RuleSpec struct {
	// Old is the search pattern
	Old string `yaml:"old"`
	// New is the literal replacement text
	New string `yaml:"new"`
	// Literal disables regex interpretation of Old
	Literal bool `yaml:"literal,omitempty"`
	// IgnoreCase matches case-insensitively
	IgnoreCase bool `yaml:"ignore_case,omitempty"`
	// Multiline makes ^ and $ match at line boundaries
	Multiline bool `yaml:"multiline,omitempty"`
	// DotAll makes . match newlines
	DotAll bool `yaml:"dot_all,omitempty"`
	// Slide targets an explicit 1-based slide index
	Slide *int `yaml:"slide,omitempty"`
	// AllSlides targets the whole deck
	AllSlides bool `yaml:"all_slides,omitempty"`
	// Shapes restricts the rule to shape names matching this glob
	Shapes string `yaml:"shapes,omitempty"`
	// Warn controls the no-match warning; defaults to true
	Warn *bool `yaml:"warn,omitempty"`
}

// WarnEnabled resolves the Warn default.
func (r RuleSpec) WarnEnabled() bool {
	if r.Warn == nil {
		return true
	}
	return *r.Warn
}

// 📚 RuleSet is a parsed rule file.
type RuleSet struct {
	// Deck is the deck file the rules apply to
	Deck string `yaml:"deck,omitempty"`
	// Output is where the rewritten deck is saved; empty means in place
	Output string `yaml:"output,omitempty"`
	// Rules are applied in order
	Rules []RuleSpec `yaml:"rules"`
}

// 🎯 Load loads a rule file from the given path.
func Load(ctx context.Context, path string) (*RuleSet, error) {
	logger := zerolog.Ctx(ctx)
	logger.Debug().Str("path", path).Msg("loading rule file")

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Errorf("reading rule file: %w", err)
	}

	parser := GetParser(path)
	if parser == nil {
		return nil, errors.Errorf("no parser for rule file %q", path)
	}

	rs, err := parser.Parse(ctx, data)
	if err != nil {
		return nil, errors.Errorf("parsing rule file %q: %w", path, err)
	}

	if err := Validate(ctx, rs); err != nil {
		return nil, errors.Errorf("validating rule file %q: %w", path, err)
	}

	logger.Debug().Int("rules", len(rs.Rules)).Msg("rule file loaded")
	return rs, nil
}

// Validate checks a rule set for structural problems.
func Validate(ctx context.Context, rs *RuleSet) error {
	if len(rs.Rules) == 0 {
		return errors.Errorf("rule set has no rules")
	}
	for i, rule := range rs.Rules {
		if rule.Old == "" {
			return errors.Errorf("rule %d: old is required", i)
		}
		if rule.Slide != nil && *rule.Slide < 1 {
			return errors.Errorf("rule %d: slide index must be positive, got %d", i, *rule.Slide)
		}
		if rule.Shapes != "" && !doublestar.ValidatePattern(rule.Shapes) {
			return errors.Errorf("rule %d: bad shapes glob %q", i, rule.Shapes)
		}
	}
	return nil
}
