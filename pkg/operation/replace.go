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

package operation

import (
	"context"
	"fmt"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"github.com/walteh/slidetext/pkg/deck"
	"github.com/walteh/slidetext/pkg/match"
	"github.com/walteh/slidetext/pkg/text"
	"gitlab.com/tozd/go/errors"
	"golang.org/x/sync/errgroup"
)

// ErrInvalidArgument is returned for a malformed replacement request,
// before any document access.
var ErrInvalidArgument = errors.New("invalid argument")

// 🔄 Rule is one replacement request.
type Rule struct {
	// Old is the search pattern (literal or regex per Match.Literal)
	Old string
	// New is the replacement text, always used literally: capture-group
	// references in New are never expanded
	New string
	// Match controls pattern interpretation
	Match match.Options
	// Slide targets an explicit 1-based slide; nil means the current slide
	Slide *int
	// AllSlides targets every slide and overrides Slide
	AllSlides bool
	// ShapeGlob optionally restricts the pass to shapes whose name
	// matches this doublestar glob
	ShapeGlob string
	// Warn requests a NoMatchWarning when the pass replaces nothing
	Warn bool
	// Parallel processes slides concurrently on a whole-document pass;
	// reported counts stay deterministic
	Parallel bool
}

// ⚠️ NoMatchWarning is the advisory signal for a zero-effect pass. It is
// carried on the Result, never returned as an error.
type NoMatchWarning struct {
	// Pattern is the search pattern that matched nothing
	Pattern string
	// Scope names the paragraphs that were searched
	Scope string
}

// String returns the warning message.
func (w NoMatchWarning) String() string {
	return fmt.Sprintf("no occurrence of %q found in %s", w.Pattern, w.Scope)
}

// 🔢 ShapeCount reports one shape's outcome within a pass.
type ShapeCount struct {
	// Slide is the shape's 1-based slide index
	Slide int
	// Shape is the shape name
	Shape string
	// Paragraphs is the number of paragraphs searched in the shape
	Paragraphs int
	// Replacements is the number of replacements made in the shape
	Replacements int
	// Skipped is set when the shape-name glob filtered the shape out
	Skipped bool
}

// 📊 Result reports one replacement pass.
type Result struct {
	// Count is the total number of replacements made
	Count int
	// PerSlide maps 1-based slide index to that slide's replacement count
	PerSlide map[int]int
	// Paragraphs is the number of paragraphs searched
	Paragraphs int
	// Shapes lists per-shape outcomes in document order
	Shapes []ShapeCount
	// Scope names the resolved scope, e.g. "slide 2 (current)"
	Scope string
	// Warning is set when Warn was requested and Count is zero
	Warning *NoMatchWarning
}

// Replace runs one replacement pass over the document. Validation,
// pattern compilation, and scope resolution all happen before the first
// paragraph is mutated, so a structural error leaves the document
// untouched. Paragraphs with zero matches are never modified.
func Replace(ctx context.Context, doc *deck.Document, rule Rule) (*Result, error) {
	logger := zerolog.Ctx(ctx)

	if err := validateRule(rule); err != nil {
		return nil, err
	}

	pattern, err := match.Compile(rule.Old, rule.Match)
	if err != nil {
		return nil, errors.Errorf("compiling pattern %q: %w", rule.Old, err)
	}

	scope, err := ResolveScope(doc, rule)
	if err != nil {
		return nil, err
	}

	logger.Debug().
		Str("pattern", rule.Old).
		Str("scope", scope.String()).
		Bool("literal", rule.Match.Literal).
		Msg("starting replacement pass")

	result := &Result{
		PerSlide: make(map[int]int, len(scope.Slides)),
		Scope:    scope.String(),
	}

	if rule.Parallel && len(scope.Slides) > 1 {
		if err := replaceParallel(ctx, scope, pattern, rule, result); err != nil {
			return nil, err
		}
	} else {
		for _, target := range scope.Slides {
			count, searched, shapes := replaceSlide(target, pattern, rule)
			result.PerSlide[target.Index] = count
			result.Count += count
			result.Paragraphs += searched
			result.Shapes = append(result.Shapes, shapes...)
		}
	}

	if result.Count == 0 && rule.Warn {
		result.Warning = &NoMatchWarning{Pattern: rule.Old, Scope: scope.String()}
		logger.Warn().
			Str("pattern", rule.Old).
			Str("scope", scope.String()).
			Msg("replacement pass made no changes")
	} else {
		logger.Debug().Int("count", result.Count).Msg("replacement pass done")
	}
	return result, nil
}

// replaceParallel fans one goroutine out per slide. Slides share no
// paragraphs, so the only coordination needed is merging counts after the
// barrier in scope order, which keeps the reported totals and per-shape
// listing deterministic.
func replaceParallel(ctx context.Context, scope Scope, pattern *match.Pattern, rule Rule, result *Result) error {
	counts := make([]int, len(scope.Slides))
	searched := make([]int, len(scope.Slides))
	shapes := make([][]ShapeCount, len(scope.Slides))

	g, _ := errgroup.WithContext(ctx)
	for i, target := range scope.Slides {
		i, target := i, target
		g.Go(func() error {
			counts[i], searched[i], shapes[i] = replaceSlide(target, pattern, rule)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return errors.Errorf("parallel pass: %w", err)
	}

	for i, target := range scope.Slides {
		result.PerSlide[target.Index] = counts[i]
		result.Count += counts[i]
		result.Paragraphs += searched[i]
		result.Shapes = append(result.Shapes, shapes[i]...)
	}
	return nil
}

// replaceSlide processes every paragraph on one slide and returns the
// replacement count, the number of paragraphs searched, and the per-shape
// outcomes in document order.
func replaceSlide(target TargetSlide, pattern *match.Pattern, rule Rule) (count, searched int, shapes []ShapeCount) {
	for _, shape := range target.Slide.Shapes() {
		if !shapeInScope(shape, rule.ShapeGlob) {
			shapes = append(shapes, ShapeCount{
				Slide:   target.Index,
				Shape:   shape.Name(),
				Skipped: true,
			})
			continue
		}
		sc := ShapeCount{Slide: target.Index, Shape: shape.Name()}
		for _, para := range shape.Paragraphs() {
			sc.Paragraphs++
			sc.Replacements += replaceParagraph(para, pattern, rule.New)
		}
		searched += sc.Paragraphs
		count += sc.Replacements
		shapes = append(shapes, sc)
	}
	return count, searched, shapes
}

// replaceParagraph is the per-paragraph pipeline: flatten, match, rewrite.
// Returns the number of spans replaced; zero means the paragraph was left
// exactly as it was.
func replaceParagraph(para *deck.Paragraph, pattern *match.Pattern, replacement string) int {
	runs := para.Runs()
	flat := text.Flatten(runs)

	spans := pattern.FindSpans(flat.Text)
	if len(spans) == 0 {
		return 0
	}

	edits := make([]text.Edit, len(spans))
	for i, span := range spans {
		edits[i] = text.Edit{Span: span, Replacement: replacement}
	}
	para.SetRuns(text.Rewrite(runs, edits))
	return len(spans)
}

// shapeInScope applies the optional shape-name glob filter.
func shapeInScope(shape *deck.Shape, glob string) bool {
	if glob == "" {
		return true
	}
	matched, err := doublestar.Match(glob, shape.Name())
	if err != nil {
		// bad glob patterns were rejected by validateRule
		return false
	}
	return matched
}

// validateRule rejects malformed requests before any document access.
func validateRule(rule Rule) error {
	if rule.Old == "" {
		return errors.Errorf("%w: search pattern must not be empty", ErrInvalidArgument)
	}
	if rule.ShapeGlob != "" {
		if !doublestar.ValidatePattern(rule.ShapeGlob) {
			return errors.Errorf("%w: bad shape glob %q", ErrInvalidArgument, rule.ShapeGlob)
		}
	}
	return nil
}
