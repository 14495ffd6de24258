package scoring

import (
	"github.com/rshade/greenprocure/internal/supplier"
)

// Trend descriptions.
const (
	TrendImproving = "Improving"
	TrendDeclining = "Declining"
	TrendStable    = "Stable"
)

// trendThreshold is the score change needed to leave "Stable".
const trendThreshold = 0.5

// Snapshot is a supplier's state on a date.
type Snapshot struct {
	Date     string            `json:"date"`
	Supplier supplier.Supplier `json:"supplier"`
}

// DatedScore is a computed score on a date.
type DatedScore struct {
	Date  string  `json:"date"`
	Score float64 `json:"score"`
}

// Trend summarizes score movement across snapshots.
type Trend struct {
	Scores      []DatedScore `json:"scores"`
	Change      float64      `json:"trend"`
	Description string       `json:"trendDescription"`
}

// ScoreTrend scores each snapshot in order and compares the last with the
// first. Fewer than two snapshots are Stable with zero change.
func (c *Calculator) ScoreTrend(history []Snapshot) Trend {
	scores := make([]DatedScore, 0, len(history))
	for _, h := range history {
		scores = append(scores, DatedScore{Date: h.Date, Score: c.ComputedScore(h.Supplier)})
	}

	change := 0.0
	if len(scores) > 1 {
		change = scores[len(scores)-1].Score - scores[0].Score
	}

	desc := TrendStable
	switch {
	case change > trendThreshold:
		desc = TrendImproving
	case change < -trendThreshold:
		desc = TrendDeclining
	}
	return Trend{Scores: scores, Change: change, Description: desc}
}
