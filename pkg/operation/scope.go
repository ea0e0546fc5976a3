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
	"fmt"

	"github.com/walteh/slidetext/pkg/deck"
	"gitlab.com/tozd/go/errors"
)

// 🎯 TargetSlide is one slide in a resolved scope, with its 1-based index.
type TargetSlide struct {
	Index int
	Slide *deck.Slide
}

// 🔭 Scope is the resolved, ordered set of slides a replacement pass
// operates over.
type Scope struct {
	Slides []TargetSlide

	// description names the scope in warnings and logs, e.g. "slide 3"
	description string
}

// String returns a human-readable scope description.
func (s Scope) String() string { return s.description }

// ResolveScope turns a rule's targeting fields into a concrete slide list.
// Resolution order: AllSlides wins, then an explicit 1-based slide index,
// otherwise the document cursor. It fails before any paragraph is touched:
// deck.ErrSlideIndexOutOfRange for a bad index, deck.ErrNoCurrentSlide for
// an unset cursor.
func ResolveScope(doc *deck.Document, rule Rule) (Scope, error) {
	if rule.AllSlides {
		scope := Scope{description: "document"}
		for i, slide := range doc.Slides() {
			scope.Slides = append(scope.Slides, TargetSlide{Index: i + 1, Slide: slide})
		}
		return scope, nil
	}

	if rule.Slide != nil {
		slide, err := doc.Slide(*rule.Slide)
		if err != nil {
			return Scope{}, errors.Errorf("resolving scope: %w", err)
		}
		return Scope{
			Slides:      []TargetSlide{{Index: *rule.Slide, Slide: slide}},
			description: fmt.Sprintf("slide %d", *rule.Slide),
		}, nil
	}

	slide, index, err := doc.Cursor()
	if err != nil {
		return Scope{}, errors.Errorf("resolving scope: %w", err)
	}
	return Scope{
		Slides:      []TargetSlide{{Index: index, Slide: slide}},
		description: fmt.Sprintf("slide %d (current)", index),
	}, nil
}
