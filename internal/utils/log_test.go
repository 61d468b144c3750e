package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTruncateForLog(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		limit  int
		expect string
	}{
		{
			name:   "non-positive limit yields empty",
			input:  "essay draft preview",
			limit:  0,
			expect: "",
		},
		{
			name:   "shorter than limit passes through",
			input:  "short",
			limit:  40,
			expect: "short",
		},
		{
			name:   "truncates and marks the cut",
			input:  "a very long model reply about university fit",
			limit:  11,
			expect: "a very long...",
		},
		{
			name:   "trims surrounding whitespace first",
			input:  "  padded  ",
			limit:  6,
			expect: "padded",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expect, TruncateForLog(tt.input, tt.limit))
		})
	}
}
