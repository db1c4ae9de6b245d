package engine

// LegalPlays returns the cards a player may play given the led suit.
// Nothing led yet, or no card of the led suit in hand: the whole hand.
// Otherwise the led-suit cards followed by every wizard and jester.
func LegalPlays(hand []Card, led Suit) []Card {
	if !led.Valid() {
		return append([]Card(nil), hand...)
	}

	var follow []Card
	for _, c := range hand {
		if c.IsSuited() && c.Suit() == led {
			follow = append(follow, c)
		}
	}
	if len(follow) == 0 {
		return append([]Card(nil), hand...)
	}

	for _, c := range hand {
		if !c.IsSuited() {
			follow = append(follow, c)
		}
	}
	return follow
}

// IndexOf returns the index of the first card in hand equal to c, or -1.
func IndexOf(hand []Card, c Card) int {
	for i, h := range hand {
		if h == c {
			return i
		}
	}
	return -1
}
