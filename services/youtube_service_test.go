package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseISODuration(t *testing.T) {
	tests := []struct {
		input string
		want  int
	}{
		{"PT3M2S", 182},
		{"PT1H2M3S", 3723},
		{"PT45S", 45},
		{"PT4M", 240},
		{"PT2H", 7200},
		{"P0D", 0},
		{"", 0},
		{"garbage", 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseISODuration(tt.input), tt.input)
	}
}
