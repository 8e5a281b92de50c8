package generation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanModelResponse(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "plain JSON array unchanged",
			input: `[{"caption":"test"}]`,
			want:  `[{"caption":"test"}]`,
		},
		{
			name:  "strips json fenced block",
			input: "```json\n[{\"caption\":\"test\"}]\n```",
			want:  `[{"caption":"test"}]`,
		},
		{
			name:  "strips plain fenced block",
			input: "```\n[{\"caption\":\"test\"}]\n```",
			want:  `[{"caption":"test"}]`,
		},
		{
			name:  "drops prose around the array",
			input: "Here are your posts:\n[{\"caption\":\"test\"}]\nEnjoy!",
			want:  `[{"caption":"test"}]`,
		},
		{
			name:  "trims surrounding whitespace",
			input: "  [{\"caption\":\"test\"}]  ",
			want:  `[{"caption":"test"}]`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, cleanModelResponse(tt.input))
		})
	}
}
