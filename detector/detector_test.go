package detector

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAssessTrustedChannelShortCircuit(t *testing.T) {
	// Trusted channels bypass every other signal, even with a high-risk
	// title.
	for _, channel := range []string{
		"Taylor Swift - Topic",
		"XYZ Records",
		"Sony Music Entertainment",
		"Universal Music Group",
	} {
		a := Assess("Full Album free download 320kbps", channel, "", 7200)
		assert.Equal(t, 0, a.RiskScore, channel)
		assert.Equal(t, LevelLow, a.RiskLevel, channel)
		assert.False(t, a.ShouldFlag, channel)
		assert.Equal(t, "Trusted official source", a.Reason, channel)
	}
}

func TestAssessHighRisk(t *testing.T) {
	// Two high-risk title hits, no bonus (only two indicators).
	a := Assess("Complete Album 320kbps", "randomguy", "", 0)
	assert.Equal(t, 50, a.RiskScore)
	assert.Equal(t, LevelHigh, a.RiskLevel)
	assert.True(t, a.ShouldFlag)
	assert.Len(t, a.Indicators, 2)
}

func TestAssessCriticalWithIndicatorBonus(t *testing.T) {
	// 25 + 25 from the title, 10 for the long runtime, then +20 for
	// stacking three indicators.
	a := Assess("Full Album Download Free", "johnsmith", "", 7200)
	assert.Equal(t, 80, a.RiskScore)
	assert.Equal(t, LevelCritical, a.RiskLevel)
	assert.True(t, a.ShouldFlag)
	assert.Contains(t, a.Indicators, "Multiple violation indicators")
}

func TestAssessMediumRisk(t *testing.T) {
	a := Assess("Unreleased Extended Version", "johnsmith", "", 0)
	assert.Equal(t, 35, a.RiskScore)
	assert.Equal(t, LevelMedium, a.RiskLevel)
	assert.False(t, a.ShouldFlag)
}

func TestAssessLowRisk(t *testing.T) {
	a := Assess("my vacation vlog", "johnsmith", "", 300)
	assert.Equal(t, 0, a.RiskScore)
	assert.Equal(t, LevelLow, a.RiskLevel)
	assert.False(t, a.ShouldFlag)
	assert.Empty(t, a.Indicators)
}

func TestAssessOfficialAudioGuard(t *testing.T) {
	// "official audio" counts only when nothing in the title suggests a
	// legitimate source.
	flagged := Assess("Song Name (Official Audio)", "someuploader", "", 0)
	assert.Equal(t, 10, flagged.RiskScore)

	guarded := Assess("Song Name (Official Audio) - Universal Music", "someuploader", "", 0)
	assert.Equal(t, 0, guarded.RiskScore)
}

func TestAssessSuspiciousChannel(t *testing.T) {
	a := Assess("some song", "user12345", "", 0)
	assert.Equal(t, 15, a.RiskScore)
	assert.Contains(t, a.Indicators, "Suspicious channel name pattern")
}

func TestAssessDescriptionSignals(t *testing.T) {
	a := Assess("some song", "johnsmith", "grab it from mediafire today", 0)
	assert.Equal(t, 20, a.RiskScore)
}

func TestAssessDeterministic(t *testing.T) {
	first := Assess("Complete Album 320kbps", "randomguy", "", 0)
	second := Assess("Complete Album 320kbps", "randomguy", "", 0)
	assert.Equal(t, first, second)
}
