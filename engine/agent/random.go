package agent

import engine "github.com/jason-s-yu/onetrick/engine"

// Random bids and plays uniformly at random from its own RNG stream.
type Random struct {
	name string
}

func NewRandom(name string) *Random {
	if name == "" {
		name = "Random Agent"
	}
	return &Random{name: name}
}

func (r *Random) Name() string { return r.name }

// Bid returns a uniform value in [0, len(hand)].
func (r *Random) Bid(ctx BidContext) int {
	return ctx.RNG.IntN(len(ctx.Hand) + 1)
}

// Play picks uniformly among the legal plays.
func (r *Random) Play(ctx PlayContext) engine.Card {
	legal := engine.LegalPlays(ctx.Hand, ctx.Led)
	if len(legal) == 0 {
		return engine.NoCard
	}
	return legal[ctx.RNG.IntN(len(legal))]
}

// ChooseTrump picks uniformly among the four suits.
func (r *Random) ChooseTrump(ctx ChooseTrumpContext) engine.Suit {
	return engine.Suits[ctx.RNG.IntN(len(engine.Suits))]
}
