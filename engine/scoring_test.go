package engine

import (
	"errors"
	"testing"
)

func TestScore(t *testing.T) {
	s := NewScorer(DefaultRules())
	tests := []struct {
		bid, tricks int
		want        ScoreResult
	}{
		{0, 0, ScoreResult{Score: 20, Exact: true}},
		{1, 1, ScoreResult{Score: 30, Exact: true}},
		{3, 3, ScoreResult{Score: 50, Exact: true}},
		{2, 0, ScoreResult{Score: -20}},
		{0, 1, ScoreResult{Score: -10}},
		{1, 4, ScoreResult{Score: -30}},
	}
	for _, tt := range tests {
		if got := s.Score(tt.bid, tt.tricks); got != tt.want {
			t.Errorf("Score(%d, %d) = %+v, want %+v", tt.bid, tt.tricks, got, tt.want)
		}
	}
}

func TestRoundScores(t *testing.T) {
	s := NewScorer(DefaultRules())
	got, err := s.RoundScores([]int{1, 0, 2}, []int{1, 1, 0})
	if err != nil {
		t.Fatal(err)
	}
	if SumScores(got) != 30-10-20 {
		t.Errorf("SumScores = %d, want 0", SumScores(got))
	}

	if _, err := s.RoundScores([]int{1}, []int{1, 0}); !errors.Is(err, ErrInvalidParameter) {
		t.Errorf("mismatched lengths: err = %v", err)
	}
}

func TestRulesRoundLimit(t *testing.T) {
	r := DefaultRules()
	if got := r.RoundLimit(); got != 15 {
		t.Errorf("4 players auto = %d, want 15", got)
	}
	r.Players = 6
	if got := r.RoundLimit(); got != 10 {
		t.Errorf("6 players auto = %d, want 10", got)
	}
	r.MaxRounds = 7
	if got := r.RoundLimit(); got != 7 {
		t.Errorf("fixed max = %d, want 7", got)
	}
}

func TestParseWizardFlipMode(t *testing.T) {
	for _, m := range []WizardFlipMode{FlipDealerChooses, FlipLedSuit, FlipFixedNone} {
		got, err := ParseWizardFlipMode(m.String())
		if err != nil || got != m {
			t.Errorf("ParseWizardFlipMode(%q) = %v, %v", m.String(), got, err)
		}
	}
	if _, err := ParseWizardFlipMode("random"); err == nil {
		t.Error("accepted unknown mode")
	}
}
