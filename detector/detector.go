// Package detector is a pattern-based classifier for unauthorized music
// uploads. It is pure and stateless: the same title/channel/description
// always yields the same assessment.
package detector

import (
	"fmt"
	"regexp"
	"strings"
)

// Assessment is the detector's verdict on a single video.
type Assessment struct {
	RiskScore  int      `json:"risk_score"`
	RiskLevel  string   `json:"risk_level"`
	ShouldFlag bool     `json:"should_flag"`
	Indicators []string `json:"indicators"`
	Reason     string   `json:"reason"`
}

// Risk levels, lowest to highest.
const (
	LevelLow      = "low"
	LevelMedium   = "medium"
	LevelHigh     = "high"
	LevelCritical = "critical"
)

// riskPattern pairs a pattern with an optional guard: when unless also
// matches the same text, the pattern does not count.
type riskPattern struct {
	re     *regexp.Regexp
	unless *regexp.Regexp
}

func rp(expr string) riskPattern {
	return riskPattern{re: regexp.MustCompile(`(?i)` + expr)}
}

func rpUnless(expr, guard string) riskPattern {
	return riskPattern{
		re:     regexp.MustCompile(`(?i)` + expr),
		unless: regexp.MustCompile(`(?i)` + guard),
	}
}

// Pattern tables are compiled once at process start and never mutated.
var (
	highRiskTitle = []riskPattern{
		rp(`\b(full\s+album)\b`),
		rp(`\b(complete\s+album)\b`),
		rp(`\b(entire\s+album)\b`),
		rp(`\b(all\s+songs)\b`),
		rp(`\b(discography)\b`),
		rp(`\b(mp3\s+download)\b`),
		rp(`\b(free\s+download)\b`),
		rp(`\b(download\s+free)\b`),
		rp(`\b(flac\s+download)\b`),
		rp(`\b(320kbps)\b`),
		rp(`\b(high\s+quality\s+audio)\b`),
		rp(`\b(leaked\s+album)\b`),
		rp(`\b(unreleased)\b`),
		rp(`\b(bootleg)\b`),
		rp(`\b(pirated)\b`),
		rp(`\b(unofficial\s+release)\b`),
		rp(`\b(ripped\s+from)\b`),
		rp(`\(\d{4}\)\s*full`),
		rp(`full\s+concert\s+recording`),
		rp(`entire\s+concert`),
		rp(`complete\s+concert`),
	}

	highRiskChannel = []riskPattern{
		rp(`\b(free\s*music)\b`),
		rp(`\b(mp3\s*downloads?)\b`),
		rp(`\b(music\s*pirate)\b`),
		rp(`\b(bootleg)\b`),
		rp(`\b(leaked\s*music)\b`),
		rp(`\b(unofficial)\b`),
		rp(`\b(album\s*uploads?)\b`),
		rp(`\b(full\s*albums?)\b`),
		rp(`pirat[ae]`),
		rp(`\b(torrent)\b`),
		rp(`\b(rip(ped)?)\b`),
	}

	highRiskDescription = []riskPattern{
		rp(`\b(download\s+link)\b`),
		rp(`\b(mega\.nz)\b`),
		rp(`\b(mediafire)\b`),
		rp(`\b(dropbox\.com/s/)\b`),
		rp(`\b(bit\.ly/)\b`),
		rp(`\b(free\s+mp3)\b`),
		rp(`\b(tracklist):?\s*\n`),
		rp(`\b(320\s*kbps)\b`),
		rp(`\b(flac)\b`),
		rp(`\b(wav\s+file)\b`),
	}

	mediumRiskTitle = []riskPattern{
		rp(`\b(live\s+concert)\b`),
		rp(`\b(live\s+performance)\b`),
		rp(`\b(live\s+at)\b`),
		rp(`\b(concert\s+\d{4})\b`),
		rp(`\b(tour\s+\d{4})\b`),
		rp(`\b(remastered)\b`),
		rp(`\b(extended\s+version)\b`),
		rp(`\b(full\s+version)\b`),
		rp(`\b(original\s+version)\b`),
		rp(`\b(audio\s+only)\b`),
		rp(`\b(lyrics?\s+video)\b`),
		// "official audio" with no legitimate-source marker nearby.
		rpUnless(`\b(official\s+audio)\b`, `\b(vevo|records?|music)\b`),
	}

	mediumRiskChannel = []riskPattern{
		rp(`\b(music\s+archive)\b`),
		rp(`\b(rare\s+music)\b`),
		rp(`\b(old\s+music)\b`),
		rp(`\b(classic\s+songs?)\b`),
		rp(`\b(audio\s+collection)\b`),
		rp(`\b(full\s+songs?)\b`),
	}

	trustedChannel = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\bvevo\b`),
		regexp.MustCompile(`(?i)\bofficial\s+artist\s+channel\b`),
		regexp.MustCompile(`(?i)\brecords?\b`),
		regexp.MustCompile(`(?i)\bentertainment\b`),
		regexp.MustCompile(`(?i)\bmusic\s+group\b`),
		regexp.MustCompile(`(?i)\b(warner|sony|universal)\b`),
		regexp.MustCompile(`(?i)\b(atlantic|columbia|republic)\b`),
		// YouTube auto-generated artist channels end with "Topic".
		regexp.MustCompile(`(?i)\btopic\b$`),
	}

	suspiciousChannel = []*regexp.Regexp{
		regexp.MustCompile(`(?i)^\d+[a-z]+\d+$`),
		regexp.MustCompile(`(?i)^[a-z]+\d{4,}$`),
		regexp.MustCompile(`(?i)\b(uploads?|uploader)\d+\b`),
		regexp.MustCompile(`(?i)\b(music|songs?|audio)\s*\d{2,}\b`),
	}
)

// Assess classifies a video by piracy risk from its metadata alone.
// description may be empty; durationSec of zero means unknown.
func Assess(title, channelName, description string, durationSec int) Assessment {
	if isTrustedChannel(channelName) {
		return Assessment{
			RiskScore:  0,
			RiskLevel:  LevelLow,
			ShouldFlag: false,
			Indicators: []string{"Trusted channel (VEVO/Official)"},
			Reason:     "Trusted official source",
		}
	}

	var indicators []string
	score := 0

	score += scanPatterns(title, highRiskTitle, 25, "High-risk title", &indicators)
	score += scanPatterns(channelName, highRiskChannel, 30, "High-risk channel", &indicators)
	if description != "" {
		score += scanPatterns(description, highRiskDescription, 20, "High-risk description", &indicators)
	}
	score += scanPatterns(title, mediumRiskTitle, 10, "Medium-risk title", &indicators)
	score += scanPatterns(channelName, mediumRiskChannel, 15, "Medium-risk channel", &indicators)

	if isSuspiciousChannel(channelName) {
		score += 15
		indicators = append(indicators, "Suspicious channel name pattern")
	}

	// Very long videos are often full albums or concert rips.
	if durationSec > 3600 {
		score += 10
		indicators = append(indicators, fmt.Sprintf("Long duration (%d minutes)", durationSec/60))
	}

	if len(indicators) >= 3 {
		score += 20
		indicators = append(indicators, "Multiple violation indicators")
	}

	if score > 100 {
		score = 100
	}

	a := Assessment{RiskScore: score, Indicators: indicators}
	switch {
	case score >= 70:
		a.RiskLevel = LevelCritical
		a.ShouldFlag = true
		a.Reason = "Critical: Multiple strong piracy indicators"
	case score >= 50:
		a.RiskLevel = LevelHigh
		a.ShouldFlag = true
		a.Reason = "High risk: Strong piracy indicators"
	case score >= 30:
		a.RiskLevel = LevelMedium
		a.Reason = "Medium risk: Some piracy indicators"
	default:
		a.RiskLevel = LevelLow
		a.Reason = "Low risk: Minimal indicators"
	}
	return a
}

func scanPatterns(text string, patterns []riskPattern, points int, label string, indicators *[]string) int {
	total := 0
	for _, p := range patterns {
		m := p.re.FindString(text)
		if m == "" {
			continue
		}
		if p.unless != nil && p.unless.MatchString(text) {
			continue
		}
		total += points
		*indicators = append(*indicators, fmt.Sprintf("%s: %q", label, strings.TrimSpace(m)))
	}
	return total
}

func isTrustedChannel(channelName string) bool {
	for _, re := range trustedChannel {
		if re.MatchString(channelName) {
			return true
		}
	}
	return false
}

func isSuspiciousChannel(channelName string) bool {
	for _, re := range suspiciousChannel {
		if re.MatchString(channelName) {
			return true
		}
	}
	return false
}
