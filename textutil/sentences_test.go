package textutil_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sevigo/gochunk/textutil"
)

func TestSplitSentences(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{
			name: "simple",
			in:   "First sentence. Second sentence. Third.",
			want: []string{"First sentence.", "Second sentence.", "Third."},
		},
		{
			name: "mixed terminators",
			in:   "Really? Yes! Good.",
			want: []string{"Really?", "Yes!", "Good."},
		},
		{
			name: "abbreviation not split",
			in:   "Dr. Smith arrived. He was late.",
			want: []string{"Dr. Smith arrived.", "He was late."},
		},
		{
			name: "initial not split",
			in:   "J. Smith wrote this. It is short.",
			want: []string{"J. Smith wrote this.", "It is short."},
		},
		{
			name: "terminator runs consumed whole",
			in:   "What?! Next one.",
			want: []string{"What?!", "Next one."},
		},
		{
			name: "no terminator",
			in:   "just a fragment",
			want: []string{"just a fragment"},
		},
		{
			name: "empty",
			in:   "   ",
			want: nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, textutil.SplitSentences(tt.in))
		})
	}
}
