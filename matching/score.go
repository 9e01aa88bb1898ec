package matching

import (
	"strings"

	"ugc-monitor/models"
)

// officialMarkers in a title signal mislabeled uploads; official sources are
// already excluded at the channel level, so their presence lowers confidence.
var officialMarkers = []string{
	"official audio", "official video", "official music video", "official lyric video",
}

// Score rates how well a candidate matches the reference track, 0-100.
// Factors are additive and independently computed, then clamped.
// refDurationSec of zero skips the duration factor.
func Score(title, songName, artistName string, videoDurationSec, refDurationSec int) int {
	score := 0
	titleLower := Normalize(title)
	songLower := Normalize(songName)
	artistLower := Normalize(artistName)

	if refDurationSec > 0 {
		diff := videoDurationSec - refDurationSec
		if diff < 0 {
			diff = -diff
		}
		switch {
		case diff == 0:
			score += 40
		case diff <= 2:
			score += 35
		case diff <= 5:
			score += 30
		case diff <= 10:
			score += 20
		case diff <= 30:
			score += 10
		}
	}

	switch {
	case ContainsWholeWord(title, songName):
		score += 35
	case strings.Contains(titleLower, songLower):
		score += 20
	}

	switch {
	case ContainsWholeWord(title, artistName):
		score += 30
	case strings.Contains(titleLower, artistLower):
		score += 15
	}

	for _, marker := range officialMarkers {
		if strings.Contains(titleLower, marker) {
			score -= 20
			break
		}
	}

	// A re-upload often leads with the artist name.
	if strings.HasPrefix(titleLower, artistLower) {
		score += 5
	}

	// Denylisted categories should already be filtered out; scoring them
	// again disqualifies anything that slipped through.
	if _, ok := deniedCategory(titleLower); ok {
		score -= 50
	}

	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}
	return score
}

// PriorityForScore derives the initial review priority from match quality.
func PriorityForScore(score int) string {
	switch {
	case score >= 90:
		return models.PriorityCritical
	case score >= 75:
		return models.PriorityHigh
	case score >= 50:
		return models.PriorityMedium
	default:
		return models.PriorityLow
	}
}
