package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"ugc-monitor/detector"
	"ugc-monitor/models"
)

func TestRaise(t *testing.T) {
	assert.Equal(t, models.PriorityHigh, Raise(models.PriorityMedium, models.PriorityHigh))
	assert.Equal(t, models.PriorityCritical, Raise(models.PriorityCritical, models.PriorityLow))
	assert.Equal(t, models.PriorityMedium, Raise(models.PriorityMedium, "bogus"))
}

func TestRiskPriority(t *testing.T) {
	tests := []struct {
		level string
		want  string
	}{
		{detector.LevelCritical, models.PriorityCritical},
		{detector.LevelHigh, models.PriorityHigh},
		{detector.LevelMedium, models.PriorityMedium},
		{detector.LevelLow, models.PriorityLow},
		{"unknown", models.PriorityMedium},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, RiskPriority(tt.level), tt.level)
	}
}

func TestResolve(t *testing.T) {
	tests := []struct {
		name         string
		ruleFlag     bool
		rulePriority string
		assessment   detector.Assessment
		want         Decision
	}{
		{
			"detector raises priority",
			false, models.PriorityMedium,
			detector.Assessment{RiskLevel: detector.LevelCritical, ShouldFlag: true},
			Decision{AutoFlagged: true, Priority: models.PriorityCritical},
		},
		{
			"rules raise priority",
			true, models.PriorityHigh,
			detector.Assessment{RiskLevel: detector.LevelLow},
			Decision{AutoFlagged: true, Priority: models.PriorityHigh},
		},
		{
			"neither flags",
			false, models.PriorityLow,
			detector.Assessment{RiskLevel: detector.LevelLow},
			Decision{AutoFlagged: false, Priority: models.PriorityLow},
		},
		{
			"flags combine with or",
			true, models.PriorityMedium,
			detector.Assessment{RiskLevel: detector.LevelMedium, ShouldFlag: false},
			Decision{AutoFlagged: true, Priority: models.PriorityMedium},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Resolve(tt.ruleFlag, tt.rulePriority, tt.assessment))
		})
	}
}
