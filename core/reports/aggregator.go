// Package reports computes the statistics behind the admin, manager and
// guardian report panels.
//
// Every aggregation is a pure function over an immutable snapshot of
// (courses, students, filter): no ambient state is read, empty inputs yield
// zero-valued summaries and unknown selections fall back to the first
// available option instead of failing. Activity metrics come from a
// synthetic.MetricsProvider until a real analytics source exists.
package reports

import (
	"github.com/szkolix/backend/core/enrollment"
	"github.com/szkolix/backend/core/synthetic"
)

// Risk labels (spreadsheet-visible; frozen)
const (
	RiskAtRisk    = "zagrożony"
	RiskAttention = "uwaga"
	RiskActive    = "aktywny"
)

// riskDays thresholds: above 14 days of inactivity a learner is at risk,
// above 7 they need attention.
const (
	riskAtRiskDays    = 14
	riskAttentionDays = 7
)

// topActiveLimit caps the "most active" ranking.
const topActiveLimit = 5

type Aggregator struct {
	metrics synthetic.MetricsProvider
}

func NewAggregator(metrics synthetic.MetricsProvider) *Aggregator {
	return &Aggregator{metrics: metrics}
}

// RiskLabel classifies an inactivity gap in days.
func RiskLabel(lastActivityDays int) string {
	switch {
	case lastActivityDays > riskAtRiskDays:
		return RiskAtRisk
	case lastActivityDays > riskAttentionDays:
		return RiskAttention
	default:
		return RiskActive
	}
}

// avgProgress is the mean progress over rows; 0 for an empty slice.
func avgProgress(rows []enrollment.Student) float64 {
	if len(rows) == 0 {
		return 0
	}
	var sum int
	for _, s := range rows {
		sum += s.Progress
	}
	return float64(sum) / float64(len(rows))
}

// completionRate is the share of rows with progress >= 100; 0 for an empty slice.
func completionRate(rows []enrollment.Student) float64 {
	if len(rows) == 0 {
		return 0
	}
	var done int
	for _, s := range rows {
		if s.Progress >= 100 {
			done++
		}
	}
	return float64(done) / float64(len(rows))
}
