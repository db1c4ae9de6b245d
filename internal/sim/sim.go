// Package sim drives a single trick end to end: deal, trump flip, bidding,
// card play and resolution, recorded as an ordered event log.
package sim

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	engine "github.com/jason-s-yu/onetrick/engine"
	"github.com/jason-s-yu/onetrick/engine/agent"
)

var (
	// ErrParticipantCountMismatch is returned before any state is touched
	// when the number of agents differs from the table size.
	ErrParticipantCountMismatch = errors.New("participant count mismatch")

	// ErrPlayedCardNotInHand means an agent returned a card it does not hold.
	ErrPlayedCardNotInHand = errors.New("played card not found in hand")
)

// Mode selects whether the Stepper is consulted.
type Mode uint8

const (
	ModeFast Mode = iota // never pause
	ModeStep             // pause after every event
)

// Phase is the orchestrator's position in a run. Phases only move forward.
type Phase uint8

const (
	PhaseDeal Phase = iota
	PhaseFlip
	PhaseTrump
	PhaseBidding
	PhasePlay
	PhaseResolve
	PhaseDone
)

var phaseNames = [...]string{"deal", "flip", "trump", "bidding", "play", "resolve", "done"}

func (p Phase) String() string {
	if int(p) < len(phaseNames) {
		return phaseNames[p]
	}
	return fmt.Sprintf("Phase(%d)", uint8(p))
}

// RunOptions configures a single run.
type RunOptions struct {
	Agents  []agent.Agent
	RNG     *engine.RNG
	Dealer  int
	Round   int // cards per hand
	Mode    Mode
	Stepper Stepper     // used only in ModeStep
	OnEvent func(Event) // called for every event before the pause
	RunID   uuid.UUID   // zero value: a fresh random id
}

// Summary is the condensed outcome of a run.
type Summary struct {
	Winner int      `json:"winner"`
	Bids   []int    `json:"bids"`  // indexed by seat
	Plays  []string `json:"plays"` // in play order
	Trump  string   `json:"trump"`
	Dealer int      `json:"dealer"`
	Round  int      `json:"round"`

	// Scores is set only for one-card rounds, where this trick is the whole round.
	Scores []engine.ScoreResult `json:"scores,omitempty"`
}

// Result is the full record of a run.
type Result struct {
	RunID   uuid.UUID `json:"runId"`
	Events  []Event   `json:"events"`
	Summary Summary   `json:"summary"`
}

// Simulator runs single tricks under one set of rules.
type Simulator struct {
	rules engine.Rules
	log   logrus.FieldLogger
	sinks []Sink
}

// Option configures a Simulator.
type Option func(*Simulator)

// WithLogger sets the logger; the default is logrus.StandardLogger().
func WithLogger(l logrus.FieldLogger) Option {
	return func(s *Simulator) { s.log = l }
}

// WithSinks adds event sinks, called in order for every event.
func WithSinks(sinks ...Sink) Option {
	return func(s *Simulator) { s.sinks = append(s.sinks, sinks...) }
}

// New returns a Simulator. rules is treated as already validated.
func New(rules engine.Rules, opts ...Option) *Simulator {
	s := &Simulator{rules: rules, log: logrus.StandardLogger()}
	for _, o := range opts {
		o(s)
	}
	if s.log == nil {
		s.log = logrus.StandardLogger()
	}
	return s
}

// Rules returns the simulator's rules.
func (s *Simulator) Rules() engine.Rules { return s.rules }

type trickPlay struct {
	player int
	card   engine.Card
}

// run holds the mutable state of one Run call. Hands are owned here and
// only ever changed by the run itself.
type run struct {
	sim     *Simulator
	ctx     context.Context
	id      uuid.UUID
	opts    RunOptions
	stepper Stepper
	log     logrus.FieldLogger
	phase   Phase
	events  []Event

	hands  [][]engine.Card
	trump  engine.Suit
	led    engine.Suit
	bids   []int
	plays  []trickPlay
	leader int
}

// Run plays one trick. ctx scopes sink I/O only; a run is never cancelled
// part way. Every error is fatal to the run and no partial result is returned.
func (s *Simulator) Run(ctx context.Context, opts RunOptions) (*Result, error) {
	n := s.rules.Players
	if len(opts.Agents) != n {
		return nil, fmt.Errorf("expected %d agents, got %d: %w", n, len(opts.Agents), ErrParticipantCountMismatch)
	}
	if opts.RNG == nil {
		return nil, fmt.Errorf("nil RNG: %w", engine.ErrInvalidParameter)
	}
	if opts.Dealer < 0 || opts.Dealer >= n {
		return nil, fmt.Errorf("dealer index %d outside [0, %d): %w", opts.Dealer, n, engine.ErrInvalidParameter)
	}
	if limit := s.rules.RoundLimit(); opts.Round > limit {
		return nil, fmt.Errorf("round %d exceeds limit %d: %w", opts.Round, limit, engine.ErrInvalidParameter)
	}

	id := opts.RunID
	if id == uuid.Nil {
		id = uuid.New()
	}
	var stepper Stepper = noopStepper{}
	if opts.Mode == ModeStep && opts.Stepper != nil {
		stepper = opts.Stepper
	}

	r := &run{
		sim:     s,
		ctx:     ctx,
		id:      id,
		opts:    opts,
		stepper: stepper,
		log:     s.log.WithField("run_id", id.String()),
		trump:   engine.NoSuit,
		led:     engine.NoSuit,
		leader:  (opts.Dealer + 1) % n,
	}
	return r.execute()
}

func (r *run) execute() (*Result, error) {
	remaining, err := r.deal()
	if err != nil {
		return nil, err
	}
	flipped := r.flip(remaining)
	r.resolveTrump(flipped)
	r.collectBids()
	if err := r.playTrick(); err != nil {
		return nil, err
	}
	winner, err := r.resolve()
	if err != nil {
		return nil, err
	}
	r.enter(PhaseDone)
	return r.result(winner), nil
}

func (r *run) enter(p Phase) {
	r.phase = p
	r.log.WithField("phase", p.String()).Debug("entering phase")
}

// emit appends ev to the log, then notifies the callback, the sinks and the
// stepper, in that order. Each observer gets its own copy; the log entry is
// never shared.
func (r *run) emit(ev Event) {
	ev.Seq = len(r.events) + 1
	r.events = append(r.events, ev)

	if r.opts.OnEvent != nil {
		r.opts.OnEvent(ev.Clone())
	}
	for _, sink := range r.sim.sinks {
		if err := sink.Record(r.ctx, r.id, ev.Clone()); err != nil {
			r.log.WithFields(logrus.Fields{
				"event_seq":  ev.Seq,
				"event_type": ev.Type,
			}).WithError(err).Warn("event sink failed")
		}
	}
	r.stepper.Pause(ev.Clone())
}

func (r *run) name(seat int) string {
	return r.opts.Agents[seat].Name()
}

func (r *run) numPlayers() int { return r.sim.rules.Players }

func (r *run) deal() ([]engine.Card, error) {
	r.enter(PhaseDeal)
	d, err := engine.DealRound(r.numPlayers(), r.opts.Round, r.opts.RNG.Split())
	if err != nil {
		return nil, fmt.Errorf("deal: %w", err)
	}
	r.hands = d.Hands

	ids := make([][]string, len(d.Hands))
	for p, h := range d.Hands {
		ids[p] = engine.CardIDs(h)
	}
	r.emit(Event{Type: EventDeal, Deal: &DealPayload{
		Dealer:     r.opts.Dealer,
		DealerName: r.name(r.opts.Dealer),
		Round:      r.opts.Round,
		Hands:      ids,
	}})
	return d.Remaining, nil
}

// flip turns up the top remaining card. A deal that uses the whole deck
// leaves nothing to flip, which plays as no trump.
func (r *run) flip(remaining []engine.Card) engine.Card {
	r.enter(PhaseFlip)
	top := engine.NoCard
	if len(remaining) > 0 {
		top = remaining[0]
	}
	r.emit(Event{Type: EventFlip, Flip: &FlipPayload{CardID: top.String()}})
	return top
}

func (r *run) resolveTrump(flipped engine.Card) {
	r.enter(PhaseTrump)
	if flipped == engine.NoCard {
		return
	}
	res := engine.InterpretFlip(flipped, r.sim.rules)
	r.trump = res.Trump
	if !res.NeedsDealerChoice {
		return
	}

	rng := r.opts.RNG.Split()
	dealer := r.opts.Dealer
	var chosen engine.Suit
	if tc, ok := r.opts.Agents[dealer].(agent.TrumpChooser); ok {
		chosen = tc.ChooseTrump(agent.ChooseTrumpContext{RNG: rng, Rules: r.sim.rules})
	} else {
		chosen = engine.Suits[rng.IntN(len(engine.Suits))]
		r.log.WithField("player", dealer).Debug("dealer cannot choose trump, picked at random")
	}
	r.trump = chosen

	r.emit(Event{Type: EventChooseTrump, ChooseTrump: &ChooseTrumpPayload{
		Dealer:     dealer,
		DealerName: r.name(dealer),
		Trump:      chosen.String(),
	}})
}

// seatOrder returns every seat starting left of the dealer; the dealer is last.
func (r *run) seatOrder() []int {
	n := r.numPlayers()
	order := make([]int, n)
	for i := range order {
		order[i] = (r.opts.Dealer + 1 + i) % n
	}
	return order
}

func (r *run) collectBids() {
	r.enter(PhaseBidding)
	r.bids = make([]int, r.numPlayers())
	for _, p := range r.seatOrder() {
		rng := r.opts.RNG.Split()
		bid := r.opts.Agents[p].Bid(agent.BidContext{
			Hand:  slices.Clone(r.hands[p]),
			RNG:   rng,
			Rules: r.sim.rules,
		})
		r.bids[p] = bid
		r.log.WithFields(logrus.Fields{"player": p, "bid": bid}).Debug("bid")

		r.emit(Event{Type: EventBid, Bid: &BidPayload{
			Player:     p,
			PlayerName: r.name(p),
			Bid:        bid,
			Hand:       engine.CardIDs(r.hands[p]),
		}})
	}
}

func (r *run) playedCards() []engine.Card {
	cards := make([]engine.Card, len(r.plays))
	for i, pl := range r.plays {
		cards[i] = pl.card
	}
	return cards
}

func (r *run) playTrick() error {
	r.enter(PhasePlay)
	n := r.numPlayers()
	r.plays = make([]trickPlay, 0, n)

	for i, p := range r.seatOrder() {
		rng := r.opts.RNG.Split()
		hand := r.hands[p]
		chosen := r.opts.Agents[p].Play(agent.PlayContext{
			Hand:       slices.Clone(hand),
			Led:        r.led,
			Trump:      r.trump,
			PlaysSoFar: r.playedCards(),
			RNG:        rng,
			Rules:      r.sim.rules,
		})
		handBefore := engine.CardIDs(hand)

		idx := engine.IndexOf(hand, chosen)
		if idx < 0 {
			return fmt.Errorf("player %d played %v: %w", p, chosen, ErrPlayedCardNotInHand)
		}
		r.hands[p] = slices.Delete(hand, idx, idx+1)

		if !r.led.Valid() && chosen.IsSuited() {
			r.led = chosen.Suit()
			if !r.trump.Valid() && r.sim.rules.WizardFlip == engine.FlipLedSuit {
				r.trump = r.led
				r.log.WithField("trump", r.trump.String()).Debug("trump set from led suit")
			}
		}
		r.plays = append(r.plays, trickPlay{player: p, card: chosen})

		rel, winner, err := r.currentWinner()
		if err != nil {
			return err
		}
		r.emit(Event{Type: EventPlay, Play: &PlayPayload{
			Player:               p,
			PlayerName:           r.name(p),
			CardID:               chosen.String(),
			LedSuit:              ledID(r.led),
			TrumpSuit:            r.trump.String(),
			CurrentWinner:        winner,
			CurrentWinnerName:    r.name(winner),
			CurrentWinningCardID: r.plays[rel].card.String(),
			HandAtDecision:       handBefore,
			PlayNumber:           i + 1,
			TotalPlayers:         n,
		}})
	}
	return nil
}

// currentWinner resolves every play so far from scratch and returns the
// winning play's index and its seat.
func (r *run) currentWinner() (int, int, error) {
	rel, err := engine.ResolveTrick(r.playedCards(), r.led, r.trump)
	if err != nil {
		return 0, 0, fmt.Errorf("resolve trick: %w", err)
	}
	return rel, (r.leader + rel) % r.numPlayers(), nil
}

func (r *run) resolve() (int, error) {
	r.enter(PhaseResolve)
	_, winner, err := r.currentWinner()
	if err != nil {
		return 0, err
	}
	r.log.WithField("winner", winner).Debug("trick resolved")
	r.emit(Event{Type: EventResolve, Resolve: &ResolvePayload{
		Winner:     winner,
		WinnerName: r.name(winner),
	}})
	return winner, nil
}

func (r *run) result(winner int) *Result {
	plays := make([]string, len(r.plays))
	for i, pl := range r.plays {
		plays[i] = pl.card.String()
	}
	sum := Summary{
		Winner: winner,
		Bids:   r.bids,
		Plays:  plays,
		Trump:  r.trump.String(),
		Dealer: r.opts.Dealer,
		Round:  r.opts.Round,
	}
	if r.opts.Round == 1 {
		tricks := make([]int, r.numPlayers())
		tricks[winner] = 1
		if scores, err := engine.NewScorer(r.sim.rules).RoundScores(r.bids, tricks); err == nil {
			sum.Scores = scores
		}
	}
	return &Result{RunID: r.id, Events: r.events, Summary: sum}
}

func ledID(s engine.Suit) string {
	if !s.Valid() {
		return ""
	}
	return s.String()
}
