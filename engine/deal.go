package engine

import "fmt"

// DealResult holds the dealt hands and the undealt remainder in post-shuffle order.
type DealResult struct {
	Hands     [][]Card
	Remaining []Card
}

// DealRound shuffles a fresh deck with rng and deals handSize cards to each
// of numPlayers.
func DealRound(numPlayers, handSize int, rng *RNG) (DealResult, error) {
	if numPlayers <= 0 {
		return DealResult{}, fmt.Errorf("number of players must be positive, got %d: %w", numPlayers, ErrInvalidParameter)
	}
	if handSize <= 0 {
		return DealResult{}, fmt.Errorf("hand size must be positive, got %d: %w", handSize, ErrInvalidParameter)
	}
	if numPlayers*handSize > DeckSize {
		return DealResult{}, fmt.Errorf("cannot deal %d cards to %d players from a %d-card deck: %w",
			handSize, numPlayers, DeckSize, ErrInvalidParameter)
	}

	shuffled := NewDeck().Shuffle(rng)
	hands := shuffled.Deal(numPlayers, handSize)
	dealt := numPlayers * handSize

	remaining := make([]Card, len(shuffled)-dealt)
	copy(remaining, shuffled[dealt:])

	return DealResult{Hands: hands, Remaining: remaining}, nil
}

// ValidateDeal re-checks a deal: numPlayers hands of handSize cards each, and
// dealt plus remaining equal to DeckSize.
func ValidateDeal(d DealResult, numPlayers, handSize int) bool {
	if len(d.Hands) != numPlayers {
		return false
	}
	total := len(d.Remaining)
	for _, h := range d.Hands {
		if len(h) != handSize {
			return false
		}
		total += len(h)
	}
	return total == DeckSize
}
