// Package config loads the table rules file and process settings.
package config

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"slices"
	"strconv"

	"gopkg.in/yaml.v3"

	engine "github.com/jason-s-yu/onetrick/engine"
)

// ErrInvalidRules is returned when a rules file parses but describes a table
// the engine cannot play.
var ErrInvalidRules = errors.New("invalid rules")

const (
	MinPlayers = 3
	MaxPlayers = 6
)

// RulesFile mirrors the on-disk rules document.
type RulesFile struct {
	Players int         `yaml:"players"`
	Deck    *DeckSpec   `yaml:"deck"`
	Rounds  *RoundsSpec `yaml:"rounds"`
	Trump   *TrumpSpec  `yaml:"trump"`
	Bidding *BidSpec    `yaml:"bidding"`
	Play    *PlaySpec   `yaml:"play"`
}

type DeckSpec struct {
	Suits   []string `yaml:"suits"`
	Ranks   []int    `yaml:"ranks"`
	Wizards int      `yaml:"wizards"`
	Jesters int      `yaml:"jesters"`
}

type RoundsSpec struct {
	Min int      `yaml:"min"`
	Max MaxRound `yaml:"max"`
}

// MaxRound is either a fixed number or "auto" (zero), which means
// DeckSize / players.
type MaxRound int

func (m *MaxRound) UnmarshalYAML(node *yaml.Node) error {
	if node.Value == "auto" {
		*m = 0
		return nil
	}
	n, err := strconv.Atoi(node.Value)
	if err != nil {
		return fmt.Errorf("rounds.max must be a number or \"auto\", got %q", node.Value)
	}
	*m = MaxRound(n)
	return nil
}

func (m MaxRound) MarshalYAML() (any, error) {
	if m == 0 {
		return "auto", nil
	}
	return int(m), nil
}

type TrumpSpec struct {
	FlipInterpretation struct {
		Jester string `yaml:"jester"`
		Wizard string `yaml:"wizard"`
	} `yaml:"flip_interpretation"`
}

type BidSpec struct {
	Scoring struct {
		Exact               string `yaml:"exact"`
		MissPenaltyPerTrick int    `yaml:"miss_penalty_per_trick"`
	} `yaml:"scoring"`
}

type PlaySpec struct {
	Priority                  []string `yaml:"priority"`
	FirstWizardWinsTies       bool     `yaml:"first_wizard_wins_ties"`
	AllJestersFirstJesterWins bool     `yaml:"all_jesters_first_jester_wins"`
}

var (
	standardSuits    = []string{"♠", "♥", "♦", "♣"}
	standardRanks    = []int{2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14}
	standardPriority = []string{"WIZARD", "TRUMP", "LED_SUIT", "OTHER"}

	exactFormula = regexp.MustCompile(`^\s*(-?\d+)\s*\+\s*(-?\d+)\s*\*\s*bid\s*$`)
)

// LoadRules reads and validates a rules file.
func LoadRules(path string) (engine.Rules, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return engine.Rules{}, fmt.Errorf("failed to load rules from %s: %w", path, err)
	}
	return ParseRules(data)
}

// ParseRules decodes a rules document and converts it to engine.Rules.
func ParseRules(data []byte) (engine.Rules, error) {
	var f RulesFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return engine.Rules{}, fmt.Errorf("failed to load rules: %w", err)
	}
	return f.Rules()
}

// Rules validates the file and returns the engine view of it.
func (f RulesFile) Rules() (engine.Rules, error) {
	if f.Deck == nil || f.Rounds == nil || f.Trump == nil || f.Bidding == nil || f.Play == nil {
		return engine.Rules{}, fmt.Errorf("missing required sections: %w", ErrInvalidRules)
	}
	if f.Players < MinPlayers || f.Players > MaxPlayers {
		return engine.Rules{}, fmt.Errorf("players must be %d-%d, got %d: %w", MinPlayers, MaxPlayers, f.Players, ErrInvalidRules)
	}
	if err := f.Deck.validate(); err != nil {
		return engine.Rules{}, err
	}

	r := engine.Rules{Players: f.Players, MinRounds: f.Rounds.Min, MaxRounds: int(f.Rounds.Max)}
	limit := engine.DeckSize / f.Players
	if r.MinRounds < 1 {
		return engine.Rules{}, fmt.Errorf("rounds.min must be at least 1, got %d: %w", r.MinRounds, ErrInvalidRules)
	}
	if r.MaxRounds < 0 || r.MaxRounds > limit {
		return engine.Rules{}, fmt.Errorf("rounds.max must be auto or 1-%d, got %d: %w", limit, r.MaxRounds, ErrInvalidRules)
	}
	if r.MinRounds > r.RoundLimit() {
		return engine.Rules{}, fmt.Errorf("rounds.min %d exceeds rounds.max %d: %w", r.MinRounds, r.RoundLimit(), ErrInvalidRules)
	}

	if j := f.Trump.FlipInterpretation.Jester; j != "NONE" {
		return engine.Rules{}, fmt.Errorf("trump.flip_interpretation.jester must be NONE, got %q: %w", j, ErrInvalidRules)
	}
	mode, err := engine.ParseWizardFlipMode(f.Trump.FlipInterpretation.Wizard)
	if err != nil {
		return engine.Rules{}, fmt.Errorf("trump.flip_interpretation.wizard: %v: %w", err, ErrInvalidRules)
	}
	r.WizardFlip = mode

	base, perBid, err := ParseExactFormula(f.Bidding.Scoring.Exact)
	if err != nil {
		return engine.Rules{}, err
	}
	r.ExactBase, r.ExactPerBid = base, perBid
	r.MissPenaltyPerTrick = f.Bidding.Scoring.MissPenaltyPerTrick

	if !slices.Equal(f.Play.Priority, standardPriority) {
		return engine.Rules{}, fmt.Errorf("play.priority must be %v, got %v: %w", standardPriority, f.Play.Priority, ErrInvalidRules)
	}
	if !f.Play.FirstWizardWinsTies || !f.Play.AllJestersFirstJesterWins {
		return engine.Rules{}, fmt.Errorf("play tie rules cannot be disabled: %w", ErrInvalidRules)
	}
	return r, nil
}

func (d *DeckSpec) validate() error {
	if !slices.Equal(d.Suits, standardSuits) || !slices.Equal(d.Ranks, standardRanks) {
		return fmt.Errorf("deck must use the four standard suits and ranks 2-14: %w", ErrInvalidRules)
	}
	if d.Wizards != engine.NumWizards || d.Jesters != engine.NumJesters {
		return fmt.Errorf("deck must have %d wizards and %d jesters, got %d and %d: %w",
			engine.NumWizards, engine.NumJesters, d.Wizards, d.Jesters, ErrInvalidRules)
	}
	return nil
}

// ParseExactFormula reads an exact-bid formula of the form "20 + 10*bid".
func ParseExactFormula(s string) (base, perBid int, err error) {
	m := exactFormula.FindStringSubmatch(s)
	if m == nil {
		return 0, 0, fmt.Errorf("bidding.scoring.exact %q is not of the form \"N + M*bid\": %w", s, ErrInvalidRules)
	}
	base, _ = strconv.Atoi(m[1])
	perBid, _ = strconv.Atoi(m[2])
	return base, perBid, nil
}

// DefaultRulesFile is the document equivalent of engine.DefaultRules.
func DefaultRulesFile() RulesFile {
	d := engine.DefaultRules()
	f := RulesFile{
		Players: d.Players,
		Deck: &DeckSpec{
			Suits:   slices.Clone(standardSuits),
			Ranks:   slices.Clone(standardRanks),
			Wizards: engine.NumWizards,
			Jesters: engine.NumJesters,
		},
		Rounds:  &RoundsSpec{Min: d.MinRounds, Max: MaxRound(d.MaxRounds)},
		Trump:   &TrumpSpec{},
		Bidding: &BidSpec{},
		Play: &PlaySpec{
			Priority:                  slices.Clone(standardPriority),
			FirstWizardWinsTies:       true,
			AllJestersFirstJesterWins: true,
		},
	}
	f.Trump.FlipInterpretation.Jester = "NONE"
	f.Trump.FlipInterpretation.Wizard = d.WizardFlip.String()
	f.Bidding.Scoring.Exact = fmt.Sprintf("%d + %d*bid", d.ExactBase, d.ExactPerBid)
	f.Bidding.Scoring.MissPenaltyPerTrick = d.MissPenaltyPerTrick
	return f
}
