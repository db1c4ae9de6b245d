// Package agent defines the participant capability surface the simulator
// drives, plus the built-in strategies.
package agent

import (
	"fmt"

	engine "github.com/jason-s-yu/onetrick/engine"
)

// BidContext is what a participant sees when bidding.
type BidContext struct {
	Hand  []engine.Card
	RNG   *engine.RNG
	Rules engine.Rules
}

// PlayContext is what a participant sees when choosing a card.
// Led and Trump are engine.NoSuit when undefined.
type PlayContext struct {
	Hand       []engine.Card
	Led        engine.Suit
	Trump      engine.Suit
	PlaysSoFar []engine.Card // cards already played this trick, in order
	RNG        *engine.RNG
	Rules      engine.Rules
}

// ChooseTrumpContext is what a dealer sees when naming trump.
type ChooseTrumpContext struct {
	RNG   *engine.RNG
	Rules engine.Rules
}

// Agent is a seated participant. Bid must return a whole number of tricks;
// Play must return a card present in ctx.Hand.
type Agent interface {
	Name() string
	Bid(ctx BidContext) int
	Play(ctx PlayContext) engine.Card
}

// TrumpChooser is the optional capability of naming trump when a wizard is
// flipped under dealerChooses. Dealers without it get a uniform random suit.
type TrumpChooser interface {
	ChooseTrump(ctx ChooseTrumpContext) engine.Suit
}

// Kind names a built-in strategy.
type Kind string

const (
	KindRandom Kind = "random"
	KindNaive  Kind = "naive"
)

// New creates a built-in agent of the given kind.
func New(kind Kind, name string) (Agent, error) {
	switch kind {
	case KindRandom:
		return NewRandom(name), nil
	case KindNaive:
		return NewNaive(name), nil
	default:
		return nil, fmt.Errorf("unknown agent kind: %q", kind)
	}
}
