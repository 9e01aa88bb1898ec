package matching

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"ugc-monitor/models"
)

func candidate(title, channel string, durationSec int) *models.Video {
	return &models.Video{
		VideoID:     "abc123",
		Title:       title,
		ChannelName: channel,
		DurationSec: durationSec,
	}
}

func TestRejectSongPath(t *testing.T) {
	ref := &Reference{SongName: "Midnight Sky", ArtistName: "Target Artist", DurationSec: 200}

	tests := []struct {
		name       string
		video      *models.Video
		wantReject bool
		wantReason string
	}{
		{
			"clean re-upload kept",
			candidate("Target Artist - Midnight Sky", "randomuploader", 200),
			false, "",
		},
		{
			"song-first format kept",
			candidate("Midnight Sky - Target Artist", "someguy", 205),
			false, "",
		},
		{
			"vevo channel",
			candidate("Target Artist - Midnight Sky", "TargetVEVO", 200),
			true, "verified distributor channel",
		},
		{
			"artist's own channel",
			candidate("Midnight Sky", "Target Artist", 200),
			true, "official artist channel",
		},
		{
			"short-form clip",
			candidate("Target Artist - Midnight Sky", "someguy", 45),
			true, "short-form clip",
		},
		{
			"much shorter than reference",
			candidate("Target Artist - Midnight Sky", "someguy", 100),
			true, "duration too short for reference",
		},
		{
			"longer than reference kept",
			candidate("Target Artist - Midnight Sky extended cut", "someguy", 500),
			false, "",
		},
		{
			"song missing from title",
			candidate("Target Artist - some other tune", "someguy", 200),
			true, "song name not in title",
		},
		{
			"artist missing from title",
			candidate("Midnight Sky by somebody", "someguy", 200),
			true, "artist name not in title",
		},
		{
			"karaoke denylisted",
			candidate("Midnight Sky - Target Artist (Karaoke)", "someguy", 200),
			true, "unwanted category: karaoke",
		},
		{
			"featured guest only",
			candidate("Drake feat. Target Artist - Midnight Sky", "someguy", 200),
			true, "artist only featured",
		},
		{
			"missing fields",
			&models.Video{VideoID: "x", Title: "t"},
			true, "missing required fields",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reason, rejected := Reject(tt.video, ref)
			assert.Equal(t, tt.wantReject, rejected)
			assert.Equal(t, tt.wantReason, reason)
		})
	}
}

func TestRejectKeywordPath(t *testing.T) {
	// Without a reference only the official-source and category checks run.
	tests := []struct {
		name       string
		video      *models.Video
		wantReject bool
	}{
		{"short video allowed", candidate("leaked track", "someguy", 30), false},
		{"vevo still rejected", candidate("some title", "ArtistVEVO", 300), true},
		{"reaction rejected", candidate("reacting to the new single", "someguy", 300), true},
		{"plain upload kept", candidate("new single full audio", "someguy", 300), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, rejected := Reject(tt.video, nil)
			assert.Equal(t, tt.wantReject, rejected)
		})
	}
}

func TestFeaturedNotMain(t *testing.T) {
	tests := []struct {
		name   string
		title  string
		artist string
		want   bool
	}{
		{"artist leads", "Target Artist - Song", "Target Artist", false},
		{"feat marker", "Drake feat. Target Artist", "Target Artist", true},
		{"ft marker", "Drake ft. Target Artist - Song", "Target Artist", true},
		{"parenthesized feat", "Song (feat. Target Artist)", "Target Artist", true},
		{"conjunction second billing", "Drake x Target Artist live set", "Target Artist", true},
		{"song-dash-artist kept", "Midnight Sky - Target Artist", "Target Artist", false},
		{"artist absent", "Some other video", "Target Artist", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, featuredNotMain(tt.title, tt.artist))
		})
	}
}
