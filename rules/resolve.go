package rules

import (
	"ugc-monitor/detector"
	"ugc-monitor/models"
)

var priorityRank = map[string]int{
	models.PriorityCritical: 4,
	models.PriorityHigh:     3,
	models.PriorityMedium:   2,
	models.PriorityLow:      1,
}

// Rank returns the ordering weight of a priority; unknown values rank 0.
func Rank(priority string) int {
	return priorityRank[priority]
}

// Raise returns the higher-ranked of the two priorities.
func Raise(current, proposed string) string {
	if Rank(proposed) > Rank(current) {
		return proposed
	}
	return current
}

// RiskPriority maps a detector risk level to a review priority.
func RiskPriority(level string) string {
	switch level {
	case detector.LevelCritical:
		return models.PriorityCritical
	case detector.LevelHigh:
		return models.PriorityHigh
	case detector.LevelLow:
		return models.PriorityLow
	default:
		return models.PriorityMedium
	}
}

// Decision is the merged outcome of the rule engine and the detector.
type Decision struct {
	AutoFlagged bool
	Priority    string
}

// Resolve merges the two independent classifiers: the final priority is the
// higher-ranked of the two, and the flag is the OR of both flags.
func Resolve(ruleFlag bool, rulePriority string, a detector.Assessment) Decision {
	return Decision{
		AutoFlagged: ruleFlag || a.ShouldFlag,
		Priority:    Raise(rulePriority, RiskPriority(a.RiskLevel)),
	}
}
