package matching

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContainsWholeWord(t *testing.T) {
	tests := []struct {
		name     string
		haystack string
		needle   string
		want     bool
	}{
		{"exact word", "Target Artist - Song Name", "Song Name", true},
		{"case insensitive", "TARGET ARTIST live", "target artist", true},
		{"inside longer word", "The artistry of sound", "artist", false},
		{"plural does not match", "All Songs here", "Song", false},
		{"phrase across hyphen", "Song-Name remix", "Song", true},
		{"empty needle", "anything", "", false},
		{"empty haystack", "", "word", false},
		{"parenthesized word", "Song (Live) 2023", "Live", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ContainsWholeWord(tt.haystack, tt.needle))
		})
	}
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, "some title", Normalize("  Some TITLE "))
}

func TestSplitCollaborators(t *testing.T) {
	tests := []struct {
		name  string
		title string
		want  []Segment
	}{
		{
			"no separators",
			"Song Name - Artist",
			[]Segment{{Text: "Song Name - Artist"}},
		},
		{
			"feat",
			"Drake feat. Future - Song",
			[]Segment{{Text: "Drake"}, {Sep: "feat.", Text: "Future - Song"}},
		},
		{
			"chained collaborators",
			"A x B feat. C",
			[]Segment{{Text: "A"}, {Sep: "x", Text: "B"}, {Sep: "feat.", Text: "C"}},
		},
		{
			"ampersand",
			"Alice & Bob - Duet",
			[]Segment{{Text: "Alice"}, {Sep: "&", Text: "Bob - Duet"}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SplitCollaborators(tt.title))
		})
	}
}
