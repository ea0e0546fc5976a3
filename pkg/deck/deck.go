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

// Package deck models a slide deck as the replacement engine sees it:
// slides owning text-bearing shapes, shapes owning paragraphs, paragraphs
// owning runs. Formatting is carried as an opaque attribute bag that is
// cloned on run splits and never otherwise inspected.
package deck

import (
	"strings"

	"gitlab.com/tozd/go/errors"
)

var (
	// ErrNoCurrentSlide is returned when a scope needs the current slide
	// but the document cursor is unset.
	ErrNoCurrentSlide = errors.New("no current slide")

	// ErrSlideIndexOutOfRange is returned for a 1-based slide index
	// outside [1, slide count].
	ErrSlideIndexOutOfRange = errors.New("slide index out of range")
)

// 🎨 Format is an opaque run attribute bag. The replacement engine never
// interprets keys or values, it only clones the bag when a run is split.
type Format map[string]string

// Clone returns an independent copy of the format bag. A nil format
// clones to nil.
func (f Format) Clone() Format {
	if f == nil {
		return nil
	}
	out := make(Format, len(f))
	for k, v := range f {
		out[k] = v
	}
	return out
}

// 📝 Run is the smallest unit of styled text in a paragraph.
type Run struct {
	text   string
	format Format
}

// NewRun creates a run with the given text and format.
func NewRun(text string, format Format) *Run {
	return &Run{text: text, format: format}
}

// Text returns the run's text content.
func (r *Run) Text() string { return r.text }

// SetText sets the run's text content.
func (r *Run) SetText(text string) { r.text = text }

// Format returns the run's format bag.
func (r *Run) Format() Format { return r.format }

// SetFormat sets the run's format bag.
func (r *Run) SetFormat(f Format) { r.format = f }

// Clone returns a run with the same text and a cloned format bag.
func (r *Run) Clone() *Run {
	return &Run{text: r.text, format: r.format.Clone()}
}

// 📄 Paragraph owns an ordered run sequence. Concatenating the run texts
// in order yields the paragraph's full visible text, with no implicit
// separators.
type Paragraph struct {
	runs []*Run
}

// NewParagraph creates a paragraph from the given runs.
func NewParagraph(runs ...*Run) *Paragraph {
	return &Paragraph{runs: runs}
}

// Runs returns the paragraph's run sequence.
func (p *Paragraph) Runs() []*Run { return p.runs }

// SetRuns replaces the paragraph's run sequence.
func (p *Paragraph) SetRuns(runs []*Run) { p.runs = runs }

// CreateRun appends a new run and returns it.
func (p *Paragraph) CreateRun(text string, format Format) *Run {
	r := NewRun(text, format)
	p.runs = append(p.runs, r)
	return r
}

// Text returns the paragraph's visible text.
func (p *Paragraph) Text() string {
	var sb strings.Builder
	for _, r := range p.runs {
		sb.WriteString(r.text)
	}
	return sb.String()
}

// 🔲 Shape is a text-bearing shape on a slide.
type Shape struct {
	name       string
	paragraphs []*Paragraph
}

// NewShape creates a named shape with no paragraphs.
func NewShape(name string) *Shape {
	return &Shape{name: name}
}

// Name returns the shape name.
func (s *Shape) Name() string { return s.name }

// Paragraphs returns the shape's paragraphs in order.
func (s *Shape) Paragraphs() []*Paragraph { return s.paragraphs }

// AddParagraph appends a paragraph to the shape.
func (s *Shape) AddParagraph(p *Paragraph) *Paragraph {
	s.paragraphs = append(s.paragraphs, p)
	return p
}

// CreateParagraph appends a new empty paragraph and returns it.
func (s *Shape) CreateParagraph() *Paragraph {
	return s.AddParagraph(NewParagraph())
}

// 🖼️ Slide owns an ordered shape sequence.
type Slide struct {
	shapes []*Shape
}

// NewSlide creates an empty slide.
func NewSlide() *Slide {
	return &Slide{}
}

// Shapes returns the slide's shapes in order.
func (s *Slide) Shapes() []*Shape { return s.shapes }

// AddShape appends a shape to the slide.
func (s *Slide) AddShape(sh *Shape) *Shape {
	s.shapes = append(s.shapes, sh)
	return sh
}

// CreateShape appends a new named shape and returns it.
func (s *Slide) CreateShape(name string) *Shape {
	return s.AddShape(NewShape(name))
}

// Paragraphs returns every paragraph on the slide in shape-then-paragraph
// document order.
func (s *Slide) Paragraphs() []*Paragraph {
	var out []*Paragraph
	for _, sh := range s.shapes {
		out = append(out, sh.paragraphs...)
	}
	return out
}

// 📚 Document owns an ordered slide sequence plus a current-slide cursor.
// The cursor is 1-based; zero means unset. The replacement engine reads
// the cursor once per call and never mutates it.
type Document struct {
	slides []*Slide
	cursor int
}

// New creates an empty document with an unset cursor.
func New() *Document {
	return &Document{}
}

// CreateSlide appends a new slide, points the cursor at it, and returns it.
func (d *Document) CreateSlide() *Slide {
	s := NewSlide()
	d.slides = append(d.slides, s)
	d.cursor = len(d.slides)
	return s
}

// Slides returns all slides in order.
func (d *Document) Slides() []*Slide { return d.slides }

// SlideCount returns the number of slides.
func (d *Document) SlideCount() int { return len(d.slides) }

// Slide returns the slide at the given 1-based index.
func (d *Document) Slide(index int) (*Slide, error) {
	if index < 1 || index > len(d.slides) {
		return nil, errors.Errorf("slide %d of %d: %w", index, len(d.slides), ErrSlideIndexOutOfRange)
	}
	return d.slides[index-1], nil
}

// Cursor returns the current slide and its 1-based index, or
// ErrNoCurrentSlide when the cursor is unset.
func (d *Document) Cursor() (*Slide, int, error) {
	if d.cursor < 1 || d.cursor > len(d.slides) {
		return nil, 0, ErrNoCurrentSlide
	}
	return d.slides[d.cursor-1], d.cursor, nil
}

// SetCursor points the cursor at the given 1-based slide index.
func (d *Document) SetCursor(index int) error {
	if index < 1 || index > len(d.slides) {
		return errors.Errorf("cursor %d of %d: %w", index, len(d.slides), ErrSlideIndexOutOfRange)
	}
	d.cursor = index
	return nil
}

// ClearCursor unsets the cursor.
func (d *Document) ClearCursor() { d.cursor = 0 }
