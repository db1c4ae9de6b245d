// Package engine implements the rules core of a Wizard-style trick-taking
// game: deck, dealing, trump interpretation and trick resolution.
//
// Everything here is deterministic given an *RNG, which is what lets the
// simulator replay a trick from a single seed.
package engine

import "strconv"

// Suit is one of the four card suits. Packed into the upper 4 bits of Card.
type Suit uint8

const (
	SuitSpades   Suit = 0
	SuitHearts   Suit = 1
	SuitDiamonds Suit = 2
	SuitClubs    Suit = 3

	// NoSuit marks an absent suit: no led suit yet, or no trump in effect.
	NoSuit Suit = 0x0F
)

// Suits lists the four suits in deck-build order.
var Suits = [4]Suit{SuitSpades, SuitHearts, SuitDiamonds, SuitClubs}

var suitSymbols = [4]string{"♠", "♥", "♦", "♣"}

// String returns the suit symbol, or "NONE" for NoSuit.
func (s Suit) String() string {
	if s.Valid() {
		return suitSymbols[s]
	}
	return "NONE"
}

// Valid reports whether s is one of the four real suits.
func (s Suit) Valid() bool { return s <= SuitClubs }

// ParseSuit accepts a suit symbol ("♠") or its ASCII letter ("S", "H", "D", "C").
func ParseSuit(v string) (Suit, bool) {
	switch v {
	case "♠", "S", "s":
		return SuitSpades, true
	case "♥", "H", "h":
		return SuitHearts, true
	case "♦", "D", "d":
		return SuitDiamonds, true
	case "♣", "C", "c":
		return SuitClubs, true
	case "NONE", "":
		return NoSuit, true
	}
	return NoSuit, false
}

// Rank is a suited card's rank, 2 through 14. Ace is 14 and ranks highest.
type Rank uint8

const (
	RankTwo   Rank = 2
	RankTen   Rank = 10
	RankJack  Rank = 11
	RankQueen Rank = 12
	RankKing  Rank = 13
	RankAce   Rank = 14
)

// String returns the short rank label used in card ids.
func (r Rank) String() string {
	switch r {
	case RankJack:
		return "J"
	case RankQueen:
		return "Q"
	case RankKing:
		return "K"
	case RankAce:
		return "A"
	}
	return strconv.Itoa(int(r))
}

// Kind distinguishes the three card variants.
type Kind uint8

const (
	KindSuited Kind = iota // ranked card of one of the four suits
	KindWizard             // always wins, earliest wizard takes ties
	KindJester             // always loses unless every card is a jester
)

// Card is a packed uint8: upper 4 bits = suit tag, lower 4 bits = rank.
// Tags 0-3 are the suits; wizards and jesters use their own tags and rank 0.
// Cards are plain values, so == is structural equality.
type Card uint8

const (
	tagWizard uint8 = 4
	tagJester uint8 = 5
)

const (
	Wizard Card = Card(tagWizard << 4)
	Jester Card = Card(tagJester << 4)

	// NoCard represents the absence of a card.
	NoCard Card = 0xFF
)

// NewCard constructs a suited Card.
func NewCard(suit Suit, rank Rank) Card {
	return Card(uint8(suit)<<4 | uint8(rank)&0x0F)
}

func (c Card) tag() uint8 { return uint8(c) >> 4 }

// Kind returns the card variant.
func (c Card) Kind() Kind {
	switch c.tag() {
	case tagWizard:
		return KindWizard
	case tagJester:
		return KindJester
	}
	return KindSuited
}

// Suit returns the card's suit, or NoSuit for wizards and jesters.
func (c Card) Suit() Suit {
	if c.Kind() != KindSuited {
		return NoSuit
	}
	return Suit(c.tag())
}

// Rank returns the card's rank, or 0 for wizards and jesters.
func (c Card) Rank() Rank {
	if c.Kind() != KindSuited {
		return 0
	}
	return Rank(uint8(c) & 0x0F)
}

func (c Card) IsWizard() bool { return c == Wizard }
func (c Card) IsJester() bool { return c == Jester }
func (c Card) IsSuited() bool { return c.Kind() == KindSuited }

// Valid reports whether c is a wizard, a jester, or a suited card with rank 2-14.
func (c Card) Valid() bool {
	switch c.Kind() {
	case KindWizard, KindJester:
		return uint8(c)&0x0F == 0
	}
	r := c.Rank()
	return c.Suit().Valid() && r >= RankTwo && r <= RankAce
}

// String returns the card id used in events, e.g. "A♠", "10♥", "Wizard".
func (c Card) String() string {
	switch c.Kind() {
	case KindWizard:
		return "Wizard"
	case KindJester:
		return "Jester"
	}
	if c == NoCard {
		return "-"
	}
	return c.Rank().String() + c.Suit().String()
}

// CardIDs maps cards to their string ids.
func CardIDs(cards []Card) []string {
	ids := make([]string, len(cards))
	for i, c := range cards {
		ids[i] = c.String()
	}
	return ids
}
