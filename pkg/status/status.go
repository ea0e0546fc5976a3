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

// Package status renders the outcome of replacement passes for the user.
package status

import (
	"fmt"
	"sort"

	"github.com/pterm/pterm"
	"github.com/rs/zerolog"

	"github.com/walteh/slidetext/pkg/operation"
)

// 📊 Report aggregates one or more replacement passes over a deck.
type Report struct {
	// Deck is the deck file the passes ran against
	Deck string
	// Passes are the individual pass results, in rule order
	Passes []PassResult
}

// 📄 PassResult is one rule's outcome.
type PassResult struct {
	// Pattern is the search pattern of the rule
	Pattern string
	// Result is the orchestrator's result for the pass
	Result *operation.Result
}

// Add appends a pass result to the report.
func (r *Report) Add(pattern string, res *operation.Result) {
	r.Passes = append(r.Passes, PassResult{Pattern: pattern, Result: res})
}

// Total returns the replacement count across all passes.
func (r *Report) Total() int {
	total := 0
	for _, p := range r.Passes {
		total += p.Result.Count
	}
	return total
}

// Warnings returns every no-match warning raised across the passes.
func (r *Report) Warnings() []operation.NoMatchWarning {
	var out []operation.NoMatchWarning
	for _, p := range r.Passes {
		if p.Result.Warning != nil {
			out = append(out, *p.Result.Warning)
		}
	}
	return out
}

// 🖨️ Renderer prints a report to the terminal.
type Renderer struct {
	log zerolog.Logger
}

// NewRenderer creates a renderer that also mirrors output to zerolog.
func NewRenderer(log zerolog.Logger) *Renderer {
	return &Renderer{log: log}
}

// 📝 RenderPass prints one pass outcome with the matching prefix printer.
func (r *Renderer) RenderPass(p PassResult) {
	perSlide := describePerSlide(p.Result.PerSlide)

	switch {
	case p.Result.Warning != nil:
		pterm.Warning.WithPrefix(pterm.Prefix{Text: "⚠️"}).Println(p.Result.Warning.String())
		r.log.Warn().Str("pattern", p.Pattern).Msg("pass made no replacements")
	case p.Result.Count == 0:
		pterm.Debug.WithPrefix(pterm.Prefix{Text: "⏭️"}).Printfln("no occurrence of %q", p.Pattern)
		r.log.Debug().Str("pattern", p.Pattern).Msg("pass made no replacements")
	default:
		msg := fmt.Sprintf("replaced %d occurrence(s) of %q%s", p.Result.Count, p.Pattern, perSlide)
		pterm.Success.WithPrefix(pterm.Prefix{Text: "✨"}).Println(msg)
		r.log.Info().Str("pattern", p.Pattern).Int("count", p.Result.Count).Msg("pass complete")
	}
}

// 📝 Render prints the whole report plus a summary line.
func (r *Renderer) Render(report *Report) {
	pterm.Info.WithPrefix(pterm.Prefix{Text: "📦"}).Printfln("deck %s", report.Deck)
	for _, p := range report.Passes {
		r.RenderPass(p)
	}

	total := report.Total()
	if total > 0 {
		pterm.Success.WithPrefix(pterm.Prefix{Text: "✅"}).Printfln("%d replacement(s) in total", total)
	} else {
		pterm.Warning.WithPrefix(pterm.Prefix{Text: "⚠️"}).Println("no replacements were made")
	}
}

// describePerSlide formats per-slide counts in slide order, skipping
// slides where nothing changed.
func describePerSlide(perSlide map[int]int) string {
	indices := make([]int, 0, len(perSlide))
	for i, count := range perSlide {
		if count > 0 {
			indices = append(indices, i)
		}
	}
	if len(indices) < 2 {
		return ""
	}
	sort.Ints(indices)

	out := " ("
	for n, i := range indices {
		if n > 0 {
			out += ", "
		}
		out += fmt.Sprintf("slide %d: %d", i, perSlide[i])
	}
	return out + ")"
}
