package upload

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseName(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantFirst string
		wantLast  string
	}{
		{
			name:      "comma separated last first",
			input:     "Smith, Jane",
			wantFirst: "Jane",
			wantLast:  "Smith",
		},
		{
			name:      "plain first last",
			input:     "John Doe",
			wantFirst: "John",
			wantLast:  "Doe",
		},
		{
			name:      "hyphenated first name survives",
			input:     "Jean-Pierre Renoir",
			wantFirst: "Jean-Pierre",
			wantLast:  "Renoir",
		},
		{
			name:      "multi word surname",
			input:     "Maria de la Cruz",
			wantFirst: "Maria",
			wantLast:  "de la Cruz",
		},
		{
			name:      "single token",
			input:     "Cher",
			wantFirst: "Cher",
			wantLast:  "",
		},
		{
			name:      "empty",
			input:     "",
			wantFirst: "",
			wantLast:  "",
		},
		{
			name:      "surrounding whitespace",
			input:     "  Smith ,  Jane  ",
			wantFirst: "Jane",
			wantLast:  "Smith",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			first, last := ParseName(tt.input)
			assert.Equal(t, tt.wantFirst, first)
			assert.Equal(t, tt.wantLast, last)
		})
	}
}
