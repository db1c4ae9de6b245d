package engine

// Trick is an immutable snapshot of a trick in progress or complete.
// Cards[0] is the first play. Led and Trump are NoSuit when undefined.
type Trick struct {
	Cards []Card
	Led   Suit
	Trump Suit
}

// Winner returns the index into t.Cards of the winning play.
func (t Trick) Winner() (int, error) {
	return ResolveTrick(t.Cards, t.Led, t.Trump)
}

// ResolveTrick returns the index of the winning play. Precedence, with the
// earliest play taking ties at every tier:
//  1. first wizard
//  2. first card, if every card is a jester
//  3. highest trump
//  4. highest card of the led suit
//  5. first card
func ResolveTrick(cards []Card, led, trump Suit) (int, error) {
	if len(cards) == 0 {
		return -1, ErrEmptyTrick
	}

	allJesters := true
	for i, c := range cards {
		switch c.Kind() {
		case KindWizard:
			return i, nil
		case KindSuited:
			allJesters = false
		case KindJester:
		}
	}
	if allJesters {
		return 0, nil
	}

	if idx := highestOfSuit(cards, trump); idx >= 0 {
		return idx, nil
	}
	if idx := highestOfSuit(cards, led); idx >= 0 {
		return idx, nil
	}

	// No trump and no led-suit card. Unreachable in legal play.
	return 0, nil
}

// highestOfSuit returns the index of the highest suited card of suit s, or -1.
func highestOfSuit(cards []Card, s Suit) int {
	if !s.Valid() {
		return -1
	}
	best := -1
	var bestRank Rank
	for i, c := range cards {
		if c.IsSuited() && c.Suit() == s && c.Rank() > bestRank {
			best = i
			bestRank = c.Rank()
		}
	}
	return best
}
