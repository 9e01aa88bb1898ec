package matching

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"ugc-monitor/models"
)

func TestScoreDurationFactor(t *testing.T) {
	// Only the duration factor varies here; the title carries neither the
	// song nor the artist name.
	tests := []struct {
		name     string
		videoSec int
		refSec   int
		want     int
	}{
		{"exact", 200, 200, 40},
		{"within two seconds", 202, 200, 35},
		{"within five seconds", 195, 200, 30},
		{"within ten seconds", 210, 200, 20},
		{"within thirty seconds", 230, 200, 10},
		{"beyond thirty seconds", 300, 200, 0},
		{"unknown reference", 200, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Score("unrelated upload", "Midnight Sky", "Target Artist", tt.videoSec, tt.refSec)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestScoreTitleFactors(t *testing.T) {
	tests := []struct {
		name  string
		title string
		want  int
	}{
		// 35 song + 30 artist + 5 artist-leads
		{"full match artist first", "Target Artist - Midnight Sky", 70},
		// 35 song + 30 artist
		{"full match song first", "Midnight Sky - Target Artist", 65},
		// 20 substring song only
		{"song as substring", "midnight skyline timelapse", 20},
		// 35 song + 30 artist + 5 lead - 20 official marker
		{"official audio penalty", "Target Artist - Midnight Sky (Official Audio)", 50},
		// 35 song + 30 artist - 50 denylist
		{"denylisted category penalty", "Midnight Sky - Target Artist karaoke", 15},
		{"nothing matches", "completely unrelated", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Score(tt.title, "Midnight Sky", "Target Artist", 0, 0)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestScoreClampsAtHundred(t *testing.T) {
	got := Score("Target Artist - Midnight Sky", "Midnight Sky", "Target Artist", 200, 200)
	assert.Equal(t, 100, got)
}

func TestScoreNeverNegative(t *testing.T) {
	got := Score("nightcore karaoke mix", "Midnight Sky", "Target Artist", 0, 0)
	assert.Equal(t, 0, got)
}

func TestFilterAndScoreReupload(t *testing.T) {
	// A mislabeled "official audio" re-upload from a random channel passes
	// the filter and lands just below a perfect score.
	ref := &Reference{SongName: "Happiness", ArtistName: "Nkosazana Daughter", DurationSec: 240}
	v := candidate("Nkosazana Daughter - Happiness (Official Audio)", "Random Upload", 240)

	_, rejected := Reject(v, ref)
	assert.False(t, rejected)

	got := Score(v.Title, ref.SongName, ref.ArtistName, v.DurationSec, ref.DurationSec)
	assert.Equal(t, 90, got)
	assert.Equal(t, models.PriorityCritical, PriorityForScore(got))
}

func TestPriorityForScore(t *testing.T) {
	tests := []struct {
		score int
		want  string
	}{
		{100, models.PriorityCritical},
		{90, models.PriorityCritical},
		{89, models.PriorityHigh},
		{75, models.PriorityHigh},
		{74, models.PriorityMedium},
		{50, models.PriorityMedium},
		{49, models.PriorityLow},
		{0, models.PriorityLow},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, PriorityForScore(tt.score), "score %d", tt.score)
	}
}
