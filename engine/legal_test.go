package engine

import "testing"

func sameCards(a, b []Card) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestLegalPlays(t *testing.T) {
	hand := []Card{twoSpades, aceSpades, NewCard(SuitHearts, 9), Jester, Wizard}

	tests := []struct {
		name string
		led  Suit
		want []Card
	}{
		{"nothing led", NoSuit, hand},
		{"must follow spades", SuitSpades, []Card{twoSpades, aceSpades, Jester, Wizard}},
		{"void in clubs", SuitClubs, hand},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := LegalPlays(hand, tt.led)
			if !sameCards(got, tt.want) {
				t.Errorf("LegalPlays = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestLegalPlaysCopies(t *testing.T) {
	hand := []Card{twoSpades, aceHearts}
	got := LegalPlays(hand, NoSuit)
	got[0] = Wizard
	if hand[0] != twoSpades {
		t.Error("LegalPlays aliased the hand")
	}
}

func TestIndexOf(t *testing.T) {
	hand := []Card{Jester, aceSpades, Jester}
	if got := IndexOf(hand, Jester); got != 0 {
		t.Errorf("IndexOf(Jester) = %d, want 0", got)
	}
	if got := IndexOf(hand, NewCard(SuitSpades, RankAce)); got != 1 {
		t.Errorf("IndexOf(A♠) = %d, want 1", got)
	}
	if got := IndexOf(hand, Wizard); got != -1 {
		t.Errorf("IndexOf(Wizard) = %d, want -1", got)
	}
}
