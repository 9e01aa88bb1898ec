package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ugc-monitor/models"
)

func TestDecodeConditions(t *testing.T) {
	preds, err := DecodeConditions(`{
		"channel_name_contains": "mp3",
		"unknown_key": "ignored",
		"title_contains": 42
	}`)
	require.NoError(t, err)
	// The unknown key and the non-string value are both dropped.
	assert.Equal(t, []Predicate{{Kind: KindChannelContains, Value: "mp3"}}, preds)
}

func TestDecodeConditionsInvalidJSON(t *testing.T) {
	_, err := DecodeConditions(`not json`)
	assert.Error(t, err)
}

func TestDecode(t *testing.T) {
	rule, err := Decode(models.AutoFlagRule{
		ID:         7,
		Name:       "flag full albums",
		Action:     models.ActionFlag,
		Conditions: `{"title_contains": "full album"}`,
	})
	require.NoError(t, err)
	assert.Equal(t, 7, rule.ID)
	assert.Len(t, rule.Predicates, 1)
}

func TestRuleMatches(t *testing.T) {
	video := &models.Video{
		Title:          "Artist - Full Album (2023)",
		ChannelName:    "Free Music Hub",
		MatchedKeyword: "artist leak",
	}

	tests := []struct {
		name  string
		preds []Predicate
		want  bool
	}{
		{
			"all conditions hold",
			[]Predicate{
				{Kind: KindTitleContains, Value: "full album"},
				{Kind: KindChannelContains, Value: "free music"},
			},
			true,
		},
		{
			"one condition fails",
			[]Predicate{
				{Kind: KindTitleContains, Value: "full album"},
				{Kind: KindChannelContains, Value: "vevo"},
			},
			false,
		},
		{
			"keyword exact match is case-insensitive",
			[]Predicate{{Kind: KindKeywordExact, Value: "Artist Leak"}},
			true,
		},
		{
			"keyword exact match rejects partial",
			[]Predicate{{Kind: KindKeywordExact, Value: "artist"}},
			false,
		},
		{
			"no recognized predicates matches vacuously",
			nil,
			true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := Rule{Predicates: tt.preds}
			assert.Equal(t, tt.want, r.Matches(video))
		})
	}
}

func TestEvaluateComposesRaiseOnly(t *testing.T) {
	video := &models.Video{
		Title:       "Artist - Full Album (2023)",
		ChannelName: "Free Music Hub",
		Priority:    models.PriorityMedium,
	}
	active := []Rule{
		{
			Name:       "flag full albums",
			Action:     models.ActionFlag,
			Predicates: []Predicate{{Kind: KindTitleContains, Value: "full album"}},
		},
		{
			Name:       "escalate piracy hubs",
			Action:     models.ActionCritical,
			Predicates: []Predicate{{Kind: KindChannelContains, Value: "free music"}},
		},
	}

	flag, priority := Evaluate(video, active)
	assert.True(t, flag)
	assert.Equal(t, models.PriorityCritical, priority)
}

func TestEvaluateNeverLowersPriority(t *testing.T) {
	video := &models.Video{
		Title:    "Artist - Full Album (2023)",
		Priority: models.PriorityCritical,
	}
	active := []Rule{{
		Action:     models.ActionHighPriority,
		Predicates: []Predicate{{Kind: KindTitleContains, Value: "full album"}},
	}}

	flag, priority := Evaluate(video, active)
	assert.False(t, flag)
	assert.Equal(t, models.PriorityCritical, priority)
}

func TestEvaluateNoMatchKeepsCurrentPriority(t *testing.T) {
	video := &models.Video{Title: "harmless", Priority: models.PriorityLow}
	active := []Rule{{
		Action:     models.ActionCritical,
		Predicates: []Predicate{{Kind: KindTitleContains, Value: "full album"}},
	}}

	flag, priority := Evaluate(video, active)
	assert.False(t, flag)
	assert.Equal(t, models.PriorityLow, priority)
}
