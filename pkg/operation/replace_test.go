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

package operation_test

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/slidetext/pkg/deck"
	"github.com/walteh/slidetext/pkg/match"
	"github.com/walteh/slidetext/pkg/operation"
)

// 🧪 testContext creates a context with a test logger
func testContext(t *testing.T) context.Context {
	logger := zerolog.New(zerolog.NewTestWriter(t))
	return logger.WithContext(context.Background())
}

// 🧪 buildDeck creates a deck where each outer slice is a slide holding
// one shape, and each inner string becomes one single-run paragraph.
func buildDeck(slides ...[]string) *deck.Document {
	doc := deck.New()
	for i, paragraphs := range slides {
		slide := doc.CreateSlide()
		shape := slide.CreateShape("Content")
		for j, p := range paragraphs {
			para := shape.CreateParagraph()
			para.CreateRun(p, deck.Format{"slide": itoa(i + 1), "para": itoa(j)})
		}
	}
	return doc
}

func itoa(i int) string {
	return string(rune('0' + i))
}

// 🧪 deckTexts returns every paragraph's flattened text per slide.
func deckTexts(doc *deck.Document) [][]string {
	var out [][]string
	for _, slide := range doc.Slides() {
		var texts []string
		for _, para := range slide.Paragraphs() {
			texts = append(texts, para.Text())
		}
		out = append(out, texts)
	}
	return out
}

func TestReplaceOnCurrentSlide(t *testing.T) {
	doc := buildDeck(
		[]string{"hello PERSON. "},
		[]string{"PERSON again"},
	)
	require.NoError(t, doc.SetCursor(1), "set cursor")

	result, err := operation.Replace(testContext(t), doc, operation.Rule{
		Old:   "PERSON",
		New:   "Alice",
		Match: match.Options{Literal: true},
		Warn:  true,
	})
	require.NoError(t, err, "replace should succeed")

	assert.Equal(t, 1, result.Count, "one replacement on the current slide")
	assert.Nil(t, result.Warning, "no warning when something matched")
	assert.Equal(t, [][]string{
		{"hello Alice. "},
		{"PERSON again"}, // other slide untouched
	}, deckTexts(doc), "only the current slide should change")
}

func TestReplaceOnExplicitSlide(t *testing.T) {
	doc := buildDeck(
		[]string{"PERSON one"},
		[]string{"PERSON two", "and PERSON three"},
		[]string{"PERSON four"},
	)

	slide := 2
	result, err := operation.Replace(testContext(t), doc, operation.Rule{
		Old:   "PERSON",
		New:   "Bob",
		Match: match.Options{Literal: true},
		Slide: &slide,
	})
	require.NoError(t, err, "replace should succeed")

	assert.Equal(t, 2, result.Count, "both occurrences on slide 2 replaced")
	assert.Equal(t, map[int]int{2: 2}, result.PerSlide, "per-slide counts")
	assert.Equal(t, [][]string{
		{"PERSON one"},
		{"Bob two", "and Bob three"},
		{"PERSON four"},
	}, deckTexts(doc), "only slide 2 should change")
}

func TestReplaceAcrossWholeDeck(t *testing.T) {
	doc := buildDeck(
		[]string{"a x a"},
		[]string{"no match here"},
		[]string{"a"},
	)

	result, err := operation.Replace(testContext(t), doc, operation.Rule{
		Old:       "a",
		New:       "b",
		Match:     match.Options{Literal: true},
		AllSlides: true,
	})
	require.NoError(t, err, "replace should succeed")

	assert.Equal(t, 3, result.Count, "total across the deck")
	assert.Equal(t, map[int]int{1: 2, 2: 0, 3: 1}, result.PerSlide, "per-slide counts")
}

func TestReplaceParallelDeterministic(t *testing.T) {
	slides := make([][]string, 8)
	for i := range slides {
		slides[i] = []string{"x y x", "y x y", "x"}
	}
	sequential := buildDeck(slides...)
	parallel := buildDeck(slides...)

	rule := operation.Rule{
		Old:       "x",
		New:       "z",
		Match:     match.Options{Literal: true},
		AllSlides: true,
	}

	seqRes, err := operation.Replace(testContext(t), sequential, rule)
	require.NoError(t, err, "sequential pass")

	rule.Parallel = true
	parRes, err := operation.Replace(testContext(t), parallel, rule)
	require.NoError(t, err, "parallel pass")

	assert.Equal(t, seqRes.Count, parRes.Count, "counts must be deterministic")
	assert.Equal(t, seqRes.PerSlide, parRes.PerSlide, "per-slide counts must match")
	assert.Equal(t, seqRes.Shapes, parRes.Shapes, "per-shape outcomes must keep document order")
	assert.Equal(t, deckTexts(sequential), deckTexts(parallel), "documents must end up identical")
}

func TestReplaceSlideIndexOutOfRange(t *testing.T) {
	doc := buildDeck(
		[]string{"PERSON"},
		[]string{"PERSON"},
		[]string{"PERSON"},
	)
	before := deckTexts(doc)

	slide := 5
	_, err := operation.Replace(testContext(t), doc, operation.Rule{
		Old:   "PERSON",
		New:   "Alice",
		Match: match.Options{Literal: true},
		Slide: &slide,
	})
	require.Error(t, err, "slide 5 of 3 should fail")
	assert.True(t, errors.Is(err, deck.ErrSlideIndexOutOfRange), "error should be ErrSlideIndexOutOfRange")
	assert.Equal(t, before, deckTexts(doc), "document must be unchanged")
}

func TestReplaceNoCurrentSlide(t *testing.T) {
	doc := buildDeck([]string{"PERSON"})
	doc.ClearCursor()

	_, err := operation.Replace(testContext(t), doc, operation.Rule{
		Old:   "PERSON",
		New:   "Alice",
		Match: match.Options{Literal: true},
	})
	require.Error(t, err, "unset cursor should fail")
	assert.True(t, errors.Is(err, deck.ErrNoCurrentSlide), "error should be ErrNoCurrentSlide")
}

func TestReplaceBadPatternFailsBeforeMutation(t *testing.T) {
	doc := buildDeck([]string{"text ( text"})
	before := deckTexts(doc)

	_, err := operation.Replace(testContext(t), doc, operation.Rule{
		Old:       "unclosed(",
		New:       "x",
		AllSlides: true,
	})
	require.Error(t, err, "bad regex should fail")
	assert.True(t, errors.Is(err, match.ErrInvalidPattern), "error should be ErrInvalidPattern")
	assert.Equal(t, before, deckTexts(doc), "document must be unchanged")
}

func TestReplaceInvalidArguments(t *testing.T) {
	doc := buildDeck([]string{"text"})

	_, err := operation.Replace(testContext(t), doc, operation.Rule{
		Old:       "",
		New:       "x",
		AllSlides: true,
	})
	require.Error(t, err, "empty pattern should fail")
	assert.True(t, errors.Is(err, operation.ErrInvalidArgument), "error should be ErrInvalidArgument")

	_, err = operation.Replace(testContext(t), doc, operation.Rule{
		Old:       "text",
		New:       "x",
		ShapeGlob: "[bad",
		AllSlides: true,
	})
	require.Error(t, err, "bad glob should fail")
	assert.True(t, errors.Is(err, operation.ErrInvalidArgument), "error should be ErrInvalidArgument")
}

func TestReplaceNoMatchWarning(t *testing.T) {
	doc := buildDeck(
		[]string{"nothing to see"},
		[]string{"still nothing"},
	)
	before := deckTexts(doc)

	result, err := operation.Replace(testContext(t), doc, operation.Rule{
		Old:       "PERSON",
		New:       "Alice",
		Match:     match.Options{Literal: true},
		AllSlides: true,
		Warn:      true,
	})
	require.NoError(t, err, "a zero-effect pass still succeeds")

	assert.Equal(t, 0, result.Count, "no replacements")
	require.NotNil(t, result.Warning, "warning should be raised")
	assert.Contains(t, result.Warning.String(), "PERSON", "warning names the pattern")
	assert.Equal(t, before, deckTexts(doc), "document must be unchanged")

	// warn disabled: same pass, no warning
	result, err = operation.Replace(testContext(t), doc, operation.Rule{
		Old:       "PERSON",
		New:       "Alice",
		Match:     match.Options{Literal: true},
		AllSlides: true,
		Warn:      false,
	})
	require.NoError(t, err, "pass should succeed")
	assert.Nil(t, result.Warning, "no warning when not requested")
}

func TestReplaceNewValueIsLiteral(t *testing.T) {
	doc := buildDeck([]string{"say hello world"})

	result, err := operation.Replace(testContext(t), doc, operation.Rule{
		Old:       `(hello) (world)`,
		New:       "$1-$2",
		AllSlides: true,
	})
	require.NoError(t, err, "replace should succeed")

	assert.Equal(t, 1, result.Count, "one replacement")
	assert.Equal(t, [][]string{{"say $1-$2"}}, deckTexts(doc),
		"capture-group references in the replacement must not be expanded")
}

func TestReplaceShapeGlobFilter(t *testing.T) {
	doc := deck.New()
	slide := doc.CreateSlide()
	title := slide.CreateShape("Title 1")
	title.CreateParagraph().CreateRun("PERSON in title", nil)
	body := slide.CreateShape("Body 1")
	body.CreateParagraph().CreateRun("PERSON in body", nil)

	result, err := operation.Replace(testContext(t), doc, operation.Rule{
		Old:       "PERSON",
		New:       "Alice",
		Match:     match.Options{Literal: true},
		AllSlides: true,
		ShapeGlob: "Title*",
	})
	require.NoError(t, err, "replace should succeed")

	assert.Equal(t, 1, result.Count, "only the title shape is in scope")
	assert.Equal(t, "Alice in title", title.Paragraphs()[0].Text(), "title rewritten")
	assert.Equal(t, "PERSON in body", body.Paragraphs()[0].Text(), "body untouched")
}

func TestReplaceReportsShapeOutcomes(t *testing.T) {
	doc := deck.New()
	slide := doc.CreateSlide()
	title := slide.CreateShape("Title 1")
	title.CreateParagraph().CreateRun("PERSON here", nil)
	title.CreateParagraph().CreateRun("and PERSON there", nil)
	slide.CreateShape("Footer").CreateParagraph().CreateRun("PERSON hidden", nil)

	result, err := operation.Replace(testContext(t), doc, operation.Rule{
		Old:       "PERSON",
		New:       "Alice",
		Match:     match.Options{Literal: true},
		AllSlides: true,
		ShapeGlob: "Title*",
	})
	require.NoError(t, err, "replace should succeed")

	assert.Equal(t, "document", result.Scope, "resolved scope description")
	require.Len(t, result.Shapes, 2, "every shape appears in the outcome list")
	assert.Equal(t, operation.ShapeCount{
		Slide:        1,
		Shape:        "Title 1",
		Paragraphs:   2,
		Replacements: 2,
	}, result.Shapes[0], "in-scope shape outcome")
	assert.Equal(t, operation.ShapeCount{
		Slide:   1,
		Shape:   "Footer",
		Skipped: true,
	}, result.Shapes[1], "filtered shape is reported as skipped")
}

func TestReplaceChunkedParagraph(t *testing.T) {
	// the match is invisible to any single run: "PER" + "SON"
	doc := deck.New()
	slide := doc.CreateSlide()
	shape := slide.CreateShape("Content")
	para := shape.CreateParagraph()
	para.CreateRun("hello ", deck.Format{"sz": "1800"})
	para.CreateRun("PER", deck.Format{"b": "1"})
	para.CreateRun("SON", deck.Format{"i": "1"})
	para.CreateRun(". ", nil)

	result, err := operation.Replace(testContext(t), doc, operation.Rule{
		Old:   "PERSON",
		New:   "Alice",
		Match: match.Options{Literal: true},
	})
	require.NoError(t, err, "replace should succeed")

	assert.Equal(t, 1, result.Count, "match found across run boundary")
	assert.Equal(t, "hello Alice. ", para.Text(), "text rewritten")

	runs := para.Runs()
	require.Len(t, runs, 3, "matched runs collapse into one replacement run")
	assert.Equal(t, deck.Format{"sz": "1800"}, runs[0].Format(), "prefix keeps formatting")
	assert.Equal(t, deck.Format{"b": "1"}, runs[1].Format(), "replacement takes the start run's formatting")
	assert.Nil(t, runs[2].Format(), "suffix keeps formatting")
}

func TestResolveScope(t *testing.T) {
	doc := buildDeck([]string{"a"}, []string{"b"}, []string{"c"})
	require.NoError(t, doc.SetCursor(2), "set cursor")

	tests := []struct {
		name        string
		rule        operation.Rule
		wantIndices []int
		wantDesc    string
		wantErr     error
	}{
		{
			name:        "cursor_default",
			rule:        operation.Rule{},
			wantIndices: []int{2},
			wantDesc:    "slide 2 (current)",
		},
		{
			name:        "explicit_slide",
			rule:        operation.Rule{Slide: intPtr(3)},
			wantIndices: []int{3},
			wantDesc:    "slide 3",
		},
		{
			name:        "all_slides",
			rule:        operation.Rule{AllSlides: true},
			wantIndices: []int{1, 2, 3},
			wantDesc:    "document",
		},
		{
			name:        "all_slides_overrides_explicit",
			rule:        operation.Rule{AllSlides: true, Slide: intPtr(1)},
			wantIndices: []int{1, 2, 3},
			wantDesc:    "document",
		},
		{
			name:    "index_too_large",
			rule:    operation.Rule{Slide: intPtr(4)},
			wantErr: deck.ErrSlideIndexOutOfRange,
		},
		{
			name:    "index_zero",
			rule:    operation.Rule{Slide: intPtr(0)},
			wantErr: deck.ErrSlideIndexOutOfRange,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			scope, err := operation.ResolveScope(doc, tt.rule)
			if tt.wantErr != nil {
				require.Error(t, err, "scope resolution should fail")
				assert.True(t, errors.Is(err, tt.wantErr), "error should match")
				return
			}
			require.NoError(t, err, "scope resolution should succeed")

			var indices []int
			for _, target := range scope.Slides {
				indices = append(indices, target.Index)
			}
			assert.Equal(t, tt.wantIndices, indices, "scope slide indices")
			assert.Equal(t, tt.wantDesc, scope.String(), "scope description")
		})
	}
}

func intPtr(i int) *int { return &i }
