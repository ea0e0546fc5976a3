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

package status

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/walteh/slidetext/pkg/operation"
)

func TestReportAggregation(t *testing.T) {
	report := &Report{Deck: "talk.yaml"}
	report.Add("PERSON", &operation.Result{
		Count:    3,
		PerSlide: map[int]int{1: 2, 2: 1},
	})
	report.Add("missing", &operation.Result{
		Warning: &operation.NoMatchWarning{Pattern: "missing", Scope: "document"},
	})
	report.Add("foo", &operation.Result{Count: 1})

	assert.Equal(t, 4, report.Total(), "total sums all passes")

	warnings := report.Warnings()
	require.Len(t, warnings, 1, "one pass warned")
	assert.Equal(t, "missing", warnings[0].Pattern, "warning carries its pattern")
}

func TestDescribePerSlide(t *testing.T) {
	tests := []struct {
		name     string
		perSlide map[int]int
		want     string
	}{
		{
			name:     "nil_map",
			perSlide: nil,
			want:     "",
		},
		{
			name:     "single_slide_omitted",
			perSlide: map[int]int{2: 5},
			want:     "",
		},
		{
			name:     "two_slides_in_order",
			perSlide: map[int]int{3: 1, 1: 2},
			want:     " (slide 1: 2, slide 3: 1)",
		},
		{
			name:     "zero_count_slides_skipped",
			perSlide: map[int]int{1: 2, 2: 0, 3: 4},
			want:     " (slide 1: 2, slide 3: 4)",
		},
		{
			name:     "all_zero",
			perSlide: map[int]int{1: 0, 2: 0},
			want:     "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, describePerSlide(tt.perSlide), "per-slide description")
		})
	}
}
