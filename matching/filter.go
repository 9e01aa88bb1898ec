package matching

import (
	"regexp"
	"strings"

	"ugc-monitor/models"
)

const (
	// MinDurationSec rejects short-form clips that cannot carry a full track.
	MinDurationSec = 60
	// DurationToleranceSec is how much shorter than the reference a video may
	// run before it is rejected. Longer videos are never rejected for length.
	DurationToleranceSec = 60
	// MinMatchScore is the lowest quality score a candidate may have and
	// still be ingested.
	MinMatchScore = 50
)

// Reference is the (song, artist, duration) a song-based search was seeded
// from. DurationSec is zero when the runtime is unknown.
type Reference struct {
	SongName    string
	ArtistName  string
	DurationSec int
}

// CategoryDenylist marks transformed or non-infringing works. A title
// containing any of these is not a candidate.
var CategoryDenylist = []string{
	"cover", "remix", "instrumental", "karaoke",
	"lyrics only", "lyric video", "lyrics video",
	"reaction", "reacting to", "react to", "review",
	"slowed", "reverb", "sped up", "speed up", "nightcore",
	"8d audio", "bass boosted", "boosted",
	"tutorial", "how to play", "lesson",
	"dance video", "choreography", "dance practice",
	"behind the scenes", "making of",
	"mashup", "vs", "versus", "parody",
}

// deniedCategory returns the first denylisted term found in the title.
func deniedCategory(titleLower string) (string, bool) {
	for _, term := range CategoryDenylist {
		if strings.Contains(titleLower, term) {
			return term, true
		}
	}
	return "", false
}

// Reject decides whether a candidate is a plausible infringement target.
// Checks run in a fixed order and the first failing one wins; the returned
// reason names it. With a nil reference (keyword search) only the
// official-source and category checks apply.
func Reject(v *models.Video, ref *Reference) (string, bool) {
	if v.VideoID == "" || v.Title == "" || v.ChannelName == "" {
		return "missing required fields", true
	}

	titleLower := Normalize(v.Title)
	channelLower := Normalize(v.ChannelName)

	// 1. Official / self uploads are not violations.
	if strings.Contains(channelLower, "vevo") {
		return "verified distributor channel", true
	}
	if ref != nil {
		artistLower := Normalize(ref.ArtistName)
		if artistLower != "" && strings.Contains(channelLower, artistLower) {
			return "official artist channel", true
		}
		if strings.Contains(channelLower, "official") && anyWordIn(artistLower, channelLower) {
			return "official channel", true
		}
	}

	if ref != nil {
		// 2. Short-form clips cannot carry a full track.
		if v.DurationSec < MinDurationSec {
			return "short-form clip", true
		}

		// 3. Significantly shorter than the reference recording; longer is
		// fine (bonus content).
		if ref.DurationSec > 0 && ref.DurationSec-v.DurationSec > DurationToleranceSec {
			return "duration too short for reference", true
		}

		// 4. Both the song and the artist must appear in the title.
		if !ContainsWholeWord(v.Title, ref.SongName) {
			return "song name not in title", true
		}
		if !ContainsWholeWord(v.Title, ref.ArtistName) {
			return "artist name not in title", true
		}
	}

	// 5. Transformed or non-infringing work categories.
	if term, ok := deniedCategory(titleLower); ok {
		return "unwanted category: " + term, true
	}

	// 6. The reference artist must be the main artist, not a featured guest.
	if ref != nil && featuredNotMain(v.Title, ref.ArtistName) {
		return "artist only featured", true
	}

	return "", false
}

func anyWordIn(words, haystack string) bool {
	for _, w := range strings.Fields(words) {
		if strings.Contains(haystack, w) {
			return true
		}
	}
	return false
}

// featuredNotMain reports whether the artist appears in the title only as a
// featured or secondary collaborator. A title that starts with the artist is
// always a main billing; "Song - Artist" keeps the artist main even in
// second position.
func featuredNotMain(title, artist string) bool {
	titleLower := Normalize(title)
	artistLower := Normalize(artist)
	if artistLower == "" || !strings.Contains(titleLower, artistLower) {
		return false
	}
	if strings.HasPrefix(titleLower, artistLower) {
		return false
	}

	quoted := regexp.QuoteMeta(artistLower)
	if re, err := regexp.Compile(`(feat\.|ft\.|feat|ft|featuring)\s+` + quoted); err == nil && re.MatchString(titleLower) {
		return true
	}
	if re, err := regexp.Compile(`[()\[\]]\s*(feat\.|ft\.|featuring)\s+` + quoted); err == nil && re.MatchString(titleLower) {
		return true
	}

	segs := SplitCollaborators(titleLower)
	idx := -1
	for i, seg := range segs {
		if strings.Contains(seg.Text, artistLower) {
			idx = i
			break
		}
	}
	if idx <= 0 {
		return false
	}

	sep := segs[idx].Sep
	if strings.Contains(sep, "feat") || strings.Contains(sep, "ft") {
		return true
	}
	if strings.ContainsAny(sep, "x&") {
		// "Song - Artist" is a common legitimate format where the artist
		// sits in the second dash part and is still the main billing.
		if strings.Contains(titleLower, "-") {
			dashParts := strings.Split(titleLower, "-")
			if len(dashParts) == 2 && strings.Contains(dashParts[1], artistLower) {
				return false
			}
		}
		return true
	}
	return false
}
