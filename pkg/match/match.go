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

// Package match finds pattern occurrences in flattened paragraph text.
package match

import (
	"regexp"
	"unicode/utf8"

	"gitlab.com/tozd/go/errors"
)

// ErrInvalidPattern is returned when a pattern fails to compile as a
// regular expression. Only possible when Options.Literal is false.
var ErrInvalidPattern = errors.New("invalid pattern")

// 🔧 Options controls how a pattern is interpreted.
type Options struct {
	// Literal treats the pattern as literal text, escaping regex
	// metacharacters
	Literal bool
	// IgnoreCase matches case-insensitively
	IgnoreCase bool
	// Multiline makes ^ and $ match at line boundaries
	Multiline bool
	// DotAll makes . match newlines
	DotAll bool
}

// 📍 Span is a half-open [Start, End) byte range over flattened text.
type Span struct {
	Start int
	End   int
}

// Len returns the span length in bytes.
func (s Span) Len() int { return s.End - s.Start }

// 🎯 Pattern is a compiled search pattern.
type Pattern struct {
	re *regexp.Regexp
}

// Compile validates and compiles a pattern once, before any document is
// touched. Compile failure is wrapped in ErrInvalidPattern.
func Compile(pattern string, opts Options) (*Pattern, error) {
	expr := pattern
	if opts.Literal {
		expr = regexp.QuoteMeta(expr)
	}

	var flags string
	if opts.IgnoreCase {
		flags += "i"
	}
	if opts.Multiline {
		flags += "m"
	}
	if opts.DotAll {
		flags += "s"
	}
	if flags != "" {
		expr = "(?" + flags + ")" + expr
	}

	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, errors.Errorf("%w: %v", ErrInvalidPattern, err)
	}
	return &Pattern{re: re}, nil
}

// FindSpans returns every non-overlapping match in text, leftmost first,
// ordered by start offset. Zero-width matches are reported once per
// position; the scan then advances one rune so they can never loop.
func (p *Pattern) FindSpans(text string) []Span {
	var spans []Span
	pos := 0
	for pos <= len(text) {
		loc := p.re.FindStringIndex(text[pos:])
		if loc == nil {
			break
		}
		start, end := pos+loc[0], pos+loc[1]
		spans = append(spans, Span{Start: start, End: end})
		if end > start {
			pos = end
			continue
		}
		// zero-width match: step over one rune
		if end >= len(text) {
			break
		}
		_, size := utf8.DecodeRuneInString(text[end:])
		pos = end + size
	}
	return spans
}

// String returns the compiled regular expression source.
func (p *Pattern) String() string { return p.re.String() }
