package engine

import "fmt"

// ScoreResult is one player's score for a round.
type ScoreResult struct {
	Score int  `json:"score"`
	Exact bool `json:"exact"`
}

// Scorer applies the bid scoring formula from Rules.
type Scorer struct {
	rules Rules
}

func NewScorer(rules Rules) Scorer { return Scorer{rules: rules} }

// Score returns ExactBase + ExactPerBid*bid for an exact bid, otherwise
// MissPenaltyPerTrick times the absolute difference.
func (s Scorer) Score(bid, tricks int) ScoreResult {
	if bid == tricks {
		return ScoreResult{Score: s.rules.ExactBase + s.rules.ExactPerBid*bid, Exact: true}
	}
	diff := bid - tricks
	if diff < 0 {
		diff = -diff
	}
	return ScoreResult{Score: s.rules.MissPenaltyPerTrick * diff}
}

// RoundScores scores each player's bid against tricks taken.
func (s Scorer) RoundScores(bids, tricks []int) ([]ScoreResult, error) {
	if len(bids) != len(tricks) {
		return nil, fmt.Errorf("got %d bids and %d trick counts: %w", len(bids), len(tricks), ErrInvalidParameter)
	}
	out := make([]ScoreResult, len(bids))
	for i := range bids {
		out[i] = s.Score(bids[i], tricks[i])
	}
	return out, nil
}

// SumScores totals a set of results.
func SumScores(scores []ScoreResult) int {
	total := 0
	for _, r := range scores {
		total += r.Score
	}
	return total
}
