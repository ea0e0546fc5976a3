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

// Package text bridges a paragraph's chunked run sequence and the flat
// string the matcher works on: flattening builds the offset map, rewriting
// applies match edits back onto the runs while keeping formatting intact
// outside the matched spans.
package text

import (
	"strings"

	"github.com/walteh/slidetext/pkg/deck"
)

// 📍 RunOffset locates one flattened byte inside the run sequence.
type RunOffset struct {
	// Run is the index into the run sequence
	Run int
	// Offset is the byte offset within that run's text
	Offset int
}

// 🗺️ FlatText is a paragraph's visible text as one contiguous string,
// plus the per-byte map back to (run index, intra-run offset). The map is
// only valid until the run sequence is rewritten.
type FlatText struct {
	// Text is the concatenation of every run's text, in order
	Text string

	offsets []RunOffset
}

// Flatten builds the flat string and offset map for a run sequence. Empty
// runs contribute no offsets but keep their position in the sequence.
// Flatten never mutates the runs.
func Flatten(runs []*deck.Run) FlatText {
	var sb strings.Builder
	total := 0
	for _, r := range runs {
		total += len(r.Text())
	}
	sb.Grow(total)

	offsets := make([]RunOffset, 0, total)
	for i, r := range runs {
		t := r.Text()
		sb.WriteString(t)
		for j := 0; j < len(t); j++ {
			offsets = append(offsets, RunOffset{Run: i, Offset: j})
		}
	}
	return FlatText{Text: sb.String(), offsets: offsets}
}

// Locate maps a flattened byte offset back to its run. The offset must be
// in [0, len(Text)).
func (f FlatText) Locate(offset int) (RunOffset, bool) {
	if offset < 0 || offset >= len(f.offsets) {
		return RunOffset{}, false
	}
	return f.offsets[offset], true
}

// Len returns the flattened text length in bytes.
func (f FlatText) Len() int { return len(f.Text) }
