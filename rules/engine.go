// Package rules evaluates stored auto-flag rules against candidate videos
// and merges their outcome with the heuristic detector's assessment.
package rules

import (
	"encoding/json"
	"strings"

	"ugc-monitor/models"
)

// Recognized predicate kinds. Stored condition keys outside this set are
// dropped at decode time so that newer rule schemas stay loadable.
const (
	KindChannelContains = "channel_name_contains"
	KindTitleContains   = "title_contains"
	KindKeywordExact    = "keyword_exact_match"
)

// Predicate is one decoded rule condition.
type Predicate struct {
	Kind  string
	Value string
}

func (p Predicate) matches(v *models.Video) bool {
	switch p.Kind {
	case KindChannelContains:
		return strings.Contains(strings.ToLower(v.ChannelName), strings.ToLower(p.Value))
	case KindTitleContains:
		return strings.Contains(strings.ToLower(v.Title), strings.ToLower(p.Value))
	case KindKeywordExact:
		return strings.EqualFold(v.MatchedKeyword, p.Value)
	default:
		return false
	}
}

// Rule is an auto-flag rule with its conditions decoded.
type Rule struct {
	ID         int
	Name       string
	Action     string
	Predicates []Predicate
}

// DecodeConditions parses the stored key/value mapping into typed
// predicates. Unrecognized keys and non-string values are dropped, not
// errors.
func DecodeConditions(raw string) ([]Predicate, error) {
	var m map[string]any
	if err := json.Unmarshal([]byte(raw), &m); err != nil {
		return nil, err
	}
	var preds []Predicate
	for _, kind := range []string{KindChannelContains, KindTitleContains, KindKeywordExact} {
		if val, ok := m[kind].(string); ok {
			preds = append(preds, Predicate{Kind: kind, Value: val})
		}
	}
	return preds, nil
}

// Decode converts a stored rule into its evaluable form.
func Decode(r models.AutoFlagRule) (Rule, error) {
	preds, err := DecodeConditions(r.Conditions)
	if err != nil {
		return Rule{}, err
	}
	return Rule{ID: r.ID, Name: r.Name, Action: r.Action, Predicates: preds}, nil
}

// Matches reports whether every predicate of the rule holds for the video.
// A rule whose recognized predicate set is empty matches vacuously.
func (r Rule) Matches(v *models.Video) bool {
	for _, p := range r.Predicates {
		if !p.matches(v) {
			return false
		}
	}
	return true
}

// Evaluate applies the active rules to a video, starting from its current
// priority. Matching rules compose: a later rule can raise the flag state or
// priority but never lower what an earlier rule set.
func Evaluate(v *models.Video, active []Rule) (shouldFlag bool, priority string) {
	priority = v.Priority
	for _, rule := range active {
		if !rule.Matches(v) {
			continue
		}
		switch rule.Action {
		case models.ActionFlag:
			shouldFlag = true
		case models.ActionHighPriority:
			priority = Raise(priority, models.PriorityHigh)
		case models.ActionCritical:
			priority = Raise(priority, models.PriorityCritical)
			shouldFlag = true
		}
	}
	return shouldFlag, priority
}
