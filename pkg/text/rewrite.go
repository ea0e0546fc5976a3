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

package text

import (
	"sort"

	"github.com/walteh/slidetext/pkg/deck"
	"github.com/walteh/slidetext/pkg/match"
)

// ✂️ Edit is one replacement to apply: the matched span in flattened
// offsets plus the literal text that replaces it.
type Edit struct {
	Span        match.Span
	Replacement string
}

// Rewrite applies edits to a run sequence and returns the new sequence.
// Edits must be non-overlapping; they are applied in descending start
// order so that offsets computed against the original flattening stay
// valid throughout (edits to the right never shift text to their left).
//
// Boundary convention: a match starting exactly on a run boundary belongs
// to the run containing its first character, and the replacement run takes
// that run's (cloned) formatting. Every character outside the matched
// spans keeps its original formatting.
//
// The input slice is not modified; untouched runs are carried over by
// reference, including empty ones.
func Rewrite(runs []*deck.Run, edits []Edit) []*deck.Run {
	if len(edits) == 0 {
		return runs
	}

	flat := Flatten(runs)

	ordered := make([]Edit, len(edits))
	copy(ordered, edits)
	sort.Slice(ordered, func(i, j int) bool {
		return ordered[i].Span.Start > ordered[j].Span.Start
	})

	out := make([]*deck.Run, len(runs))
	copy(out, runs)
	for _, e := range ordered {
		out = applyEdit(out, flat, e)
	}
	return out
}

// applyEdit splices one edit into the run sequence. Run indices at or
// left of the edit's first run are the same in out as in the original
// flattening, which is what makes right-to-left application sound.
func applyEdit(out []*deck.Run, flat FlatText, e Edit) []*deck.Run {
	s, end := e.Span.Start, e.Span.End
	if s == end {
		return applyInsert(out, flat, s, e.Replacement)
	}

	first, ok := flat.Locate(s)
	if !ok {
		return out
	}
	last, ok := flat.Locate(end - 1)
	if !ok {
		return out
	}
	endLocal := last.Offset + 1

	firstRun := out[first.Run]
	lastRun := out[last.Run]

	// Text to the left and right of the match inside the boundary runs.
	// Reading from the current (possibly already-edited) runs is correct:
	// prior edits only removed text at higher offsets.
	leftText := firstRun.Text()[:first.Offset]
	rightText := ""
	if endLocal <= len(lastRun.Text()) {
		rightText = lastRun.Text()[endLocal:]
	}

	segment := make([]*deck.Run, 0, 3)
	if leftText != "" {
		segment = append(segment, deck.NewRun(leftText, firstRun.Format()))
	}
	if e.Replacement != "" {
		segment = append(segment, deck.NewRun(e.Replacement, firstRun.Format().Clone()))
	}
	if rightText != "" {
		segment = append(segment, deck.NewRun(rightText, lastRun.Format()))
	}

	spliced := make([]*deck.Run, 0, len(out)+len(segment))
	spliced = append(spliced, out[:first.Run]...)
	spliced = append(spliced, segment...)
	spliced = append(spliced, out[last.Run+1:]...)
	return spliced
}

// applyInsert handles a zero-width match: pure insertion, no deletion.
func applyInsert(out []*deck.Run, flat FlatText, pos int, replacement string) []*deck.Run {
	if replacement == "" {
		return out
	}

	at, ok := flat.Locate(pos)
	if !ok {
		// insertion at end of text: formatting follows the last run
		var format deck.Format
		if len(out) > 0 {
			format = out[len(out)-1].Format().Clone()
		}
		return append(out, deck.NewRun(replacement, format))
	}

	run := out[at.Run]
	segment := make([]*deck.Run, 0, 3)
	if at.Offset > 0 {
		segment = append(segment, deck.NewRun(run.Text()[:at.Offset], run.Format()))
	}
	segment = append(segment, deck.NewRun(replacement, run.Format().Clone()))
	if at.Offset < len(run.Text()) {
		segment = append(segment, deck.NewRun(run.Text()[at.Offset:], run.Format()))
	}

	spliced := make([]*deck.Run, 0, len(out)+len(segment))
	spliced = append(spliced, out[:at.Run]...)
	spliced = append(spliced, segment...)
	spliced = append(spliced, out[at.Run+1:]...)
	return spliced
}
