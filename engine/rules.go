package engine

import "fmt"

// WizardFlipMode decides what a wizard turned up as the trump indicator means.
type WizardFlipMode uint8

const (
	FlipDealerChooses WizardFlipMode = iota // dealer names the trump suit
	FlipLedSuit                             // trump becomes the first suit led in play
	FlipFixedNone                           // no trump for the whole trick
)

var wizardFlipNames = [...]string{"dealerChooses", "ledSuit", "fixedNone"}

func (m WizardFlipMode) String() string {
	if int(m) < len(wizardFlipNames) {
		return wizardFlipNames[m]
	}
	return fmt.Sprintf("WizardFlipMode(%d)", uint8(m))
}

// ParseWizardFlipMode maps a rules-file value to a WizardFlipMode.
func ParseWizardFlipMode(v string) (WizardFlipMode, error) {
	for i, name := range wizardFlipNames {
		if v == name {
			return WizardFlipMode(i), nil
		}
	}
	return 0, fmt.Errorf("unknown wizard flip mode %q", v)
}

// Rules holds the validated table settings the engine and simulator read.
// It is a plain value; nothing in this module mutates a Rules after loading.
type Rules struct {
	Players    int
	MinRounds  int
	MaxRounds  int // 0 = auto, DeckSize / Players
	WizardFlip WizardFlipMode

	// Bid scoring: exact bid scores ExactBase + ExactPerBid*bid, a miss scores
	// MissPenaltyPerTrick for every trick of difference.
	ExactBase           int
	ExactPerBid         int
	MissPenaltyPerTrick int
}

// DefaultRules returns the standard four-player table.
func DefaultRules() Rules {
	return Rules{
		Players:             4,
		MinRounds:           1,
		MaxRounds:           0,
		WizardFlip:          FlipDealerChooses,
		ExactBase:           20,
		ExactPerBid:         10,
		MissPenaltyPerTrick: -10,
	}
}

// RoundLimit returns the largest hand size a round may use.
func (r Rules) RoundLimit() int {
	if r.MaxRounds > 0 {
		return r.MaxRounds
	}
	if r.Players <= 0 {
		return 0
	}
	return DeckSize / r.Players
}
