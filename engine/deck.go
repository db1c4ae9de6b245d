package engine

const (
	NumRanks   = 13
	NumWizards = 4
	NumJesters = 4
	DeckSize   = len(Suits)*NumRanks + NumWizards + NumJesters // 60
)

// Deck is an ordered sequence of cards. Methods never modify the receiver.
type Deck []Card

// NewDeck returns the fixed 60-card deck in build order: ranks 2-14 for each
// suit (♠ ♥ ♦ ♣), then four wizards, then four jesters.
func NewDeck() Deck {
	d := make(Deck, 0, DeckSize)
	for _, s := range Suits {
		for r := RankTwo; r <= RankAce; r++ {
			d = append(d, NewCard(s, r))
		}
	}
	for i := 0; i < NumWizards; i++ {
		d = append(d, Wizard)
	}
	for i := 0; i < NumJesters; i++ {
		d = append(d, Jester)
	}
	return d
}

// Shuffle returns a shuffled copy of d using a Fisher-Yates pass driven by rng.
func (d Deck) Shuffle(rng *RNG) Deck {
	out := make(Deck, len(d))
	copy(out, d)
	for i := len(out) - 1; i > 0; i-- {
		j := rng.IntN(i + 1)
		out[i], out[j] = out[j], out[i]
	}
	return out
}

// Deal distributes handSize cards to each of numPlayers in round-robin order:
// card k goes to player k mod numPlayers. The caller guarantees the deck is
// large enough.
func (d Deck) Deal(numPlayers, handSize int) [][]Card {
	hands := make([][]Card, numPlayers)
	for p := range hands {
		hands[p] = make([]Card, 0, handSize)
	}
	for k := 0; k < numPlayers*handSize; k++ {
		p := k % numPlayers
		hands[p] = append(hands[p], d[k])
	}
	return hands
}
