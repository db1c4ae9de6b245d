package agent

import engine "github.com/jason-s-yu/onetrick/engine"

// Naive counts sure winners when bidding and plays greedily: take the lead
// as cheaply as possible, otherwise dump the weakest card. It has no
// ChooseTrump, so the simulator picks trump for it.
type Naive struct {
	name string
}

func NewNaive(name string) *Naive {
	if name == "" {
		name = "Naive Agent"
	}
	return &Naive{name: name}
}

func (n *Naive) Name() string { return n.name }

// Bid counts wizards, aces and kings.
func (n *Naive) Bid(ctx BidContext) int {
	bid := 0
	for _, c := range ctx.Hand {
		if isNaiveWinner(c) {
			bid++
		}
	}
	return bid
}

// Play returns the cheapest winner (king < ace < wizard) that would take the
// current lead. With nothing to beat, or no such winner, it plays the
// lowest-value non-winner: jesters first, then lowest rank.
func (n *Naive) Play(ctx PlayContext) engine.Card {
	legal := engine.LegalPlays(ctx.Hand, ctx.Led)
	if len(legal) == 0 {
		return engine.NoCard
	}

	var winners, others []engine.Card
	for _, c := range legal {
		if isNaiveWinner(c) {
			winners = append(winners, c)
		} else {
			others = append(others, c)
		}
	}

	if len(ctx.PlaysSoFar) > 0 {
		best, bestCost := engine.NoCard, 0
		for _, c := range winners {
			if !takesLead(c, ctx) {
				continue
			}
			if cost := winnerCost(c); best == engine.NoCard || cost < bestCost {
				best, bestCost = c, cost
			}
		}
		if best != engine.NoCard {
			return best
		}
	}

	pool := others
	if len(pool) == 0 {
		pool = legal
	}
	pick := pool[0]
	for _, c := range pool[1:] {
		if dumpScore(c) < dumpScore(pick) {
			pick = c
		}
	}
	return pick
}

func isNaiveWinner(c engine.Card) bool {
	return c.IsWizard() || c.Rank() == engine.RankAce || c.Rank() == engine.RankKing
}

func winnerCost(c engine.Card) int {
	switch {
	case c.IsWizard():
		return 3
	case c.Rank() == engine.RankAce:
		return 2
	}
	return 1
}

func dumpScore(c engine.Card) int {
	switch c.Kind() {
	case engine.KindJester:
		return -1
	case engine.KindWizard:
		return 100
	}
	return int(c.Rank())
}

// takesLead reports whether c would be the winning card if played now.
func takesLead(c engine.Card, ctx PlayContext) bool {
	cards := append(append([]engine.Card(nil), ctx.PlaysSoFar...), c)
	led := ctx.Led
	if !led.Valid() && c.IsSuited() {
		led = c.Suit()
	}
	idx, err := engine.ResolveTrick(cards, led, ctx.Trump)
	return err == nil && idx == len(cards)-1
}
