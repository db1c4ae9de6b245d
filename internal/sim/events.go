package sim

import (
	"context"
	"slices"

	"github.com/google/uuid"
)

// EventType identifies one step of a trick run.
type EventType string

const (
	EventDeal        EventType = "deal"
	EventFlip        EventType = "flip"
	EventChooseTrump EventType = "chooseTrump" // only when the dealer had to name trump
	EventBid         EventType = "bid"
	EventPlay        EventType = "play"
	EventResolve     EventType = "resolve"
)

// Event is one immutable entry of the run's event log. Seq is 1-based and
// orders the log; exactly one payload pointer is set, matching Type.
type Event struct {
	Seq  int       `json:"seq"`
	Type EventType `json:"type"`

	Deal        *DealPayload        `json:"deal,omitempty"`
	Flip        *FlipPayload        `json:"flip,omitempty"`
	ChooseTrump *ChooseTrumpPayload `json:"chooseTrump,omitempty"`
	Bid         *BidPayload         `json:"bid,omitempty"`
	Play        *PlayPayload        `json:"play,omitempty"`
	Resolve     *ResolvePayload     `json:"resolve,omitempty"`
}

// Clone returns a deep copy of ev; nothing in the copy aliases ev.
func (ev Event) Clone() Event {
	out := Event{Seq: ev.Seq, Type: ev.Type}
	if ev.Deal != nil {
		d := *ev.Deal
		d.Hands = make([][]string, len(ev.Deal.Hands))
		for i, h := range ev.Deal.Hands {
			d.Hands[i] = slices.Clone(h)
		}
		out.Deal = &d
	}
	if ev.Flip != nil {
		f := *ev.Flip
		out.Flip = &f
	}
	if ev.ChooseTrump != nil {
		c := *ev.ChooseTrump
		out.ChooseTrump = &c
	}
	if ev.Bid != nil {
		b := *ev.Bid
		b.Hand = slices.Clone(ev.Bid.Hand)
		out.Bid = &b
	}
	if ev.Play != nil {
		p := *ev.Play
		p.HandAtDecision = slices.Clone(ev.Play.HandAtDecision)
		out.Play = &p
	}
	if ev.Resolve != nil {
		r := *ev.Resolve
		out.Resolve = &r
	}
	return out
}

type DealPayload struct {
	Dealer     int        `json:"dealer"`
	DealerName string     `json:"dealerName,omitempty"`
	Round      int        `json:"round"`
	Hands      [][]string `json:"hands"`
}

type FlipPayload struct {
	CardID string `json:"cardId"`
}

type ChooseTrumpPayload struct {
	Dealer     int    `json:"dealer"`
	DealerName string `json:"dealerName,omitempty"`
	Trump      string `json:"trump"`
}

type BidPayload struct {
	Player     int      `json:"player"`
	PlayerName string   `json:"playerName,omitempty"`
	Bid        int      `json:"bid"`
	Hand       []string `json:"hand"`
}

// PlayPayload carries the card played and who holds the lead after it.
type PlayPayload struct {
	Player               int      `json:"player"`
	PlayerName           string   `json:"playerName,omitempty"`
	CardID               string   `json:"cardId"`
	LedSuit              string   `json:"ledSuit,omitempty"` // empty until a suited card is played
	TrumpSuit            string   `json:"trumpSuit"`         // "NONE" when no trump
	CurrentWinner        int      `json:"currentWinner"`
	CurrentWinnerName    string   `json:"currentWinnerName,omitempty"`
	CurrentWinningCardID string   `json:"currentWinningCardId"`
	HandAtDecision       []string `json:"handAtDecision"`
	PlayNumber           int      `json:"playNumber"` // 1-based
	TotalPlayers         int      `json:"totalPlayers"`
}

type ResolvePayload struct {
	Winner     int    `json:"winner"`
	WinnerName string `json:"winnerName,omitempty"`
}

// Stepper is the suspension point after every emitted event. Pause blocks
// until the observer lets the run continue; it cannot divert the run.
type Stepper interface {
	Pause(ev Event)
}

type noopStepper struct{}

func (noopStepper) Pause(Event) {}

// StepperFunc adapts a function to Stepper.
type StepperFunc func(ev Event)

func (f StepperFunc) Pause(ev Event) { f(ev) }

// Sink receives every event as it is emitted, in order. A failing sink is
// logged and skipped; the in-memory log stays authoritative.
type Sink interface {
	Record(ctx context.Context, runID uuid.UUID, ev Event) error
}
