package detector_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ugc-monitor/detector"
	"ugc-monitor/models"
	"ugc-monitor/rules"
)

func TestRecommendedRulesDecode(t *testing.T) {
	recommended := detector.RecommendedRules()
	require.NotEmpty(t, recommended)

	names := make(map[string]bool)
	for _, stored := range recommended {
		rule, err := rules.Decode(stored)
		require.NoError(t, err, stored.Name)
		assert.NotEmpty(t, rule.Predicates, stored.Name)
		assert.Contains(t, []string{
			models.ActionFlag, models.ActionHighPriority, models.ActionCritical,
		}, stored.Action, stored.Name)
		assert.False(t, names[stored.Name], "duplicate rule name %q", stored.Name)
		names[stored.Name] = true
	}
}
