package engine

// FlipResult is the trump decision implied by the turned-up card.
type FlipResult struct {
	Trump             Suit
	NeedsDealerChoice bool
}

// InterpretFlip maps the flipped card to a trump decision:
//   - suited card: its suit is trump
//   - jester: no trump
//   - wizard: depends on rules.WizardFlip; only FlipDealerChooses asks the
//     dealer. FlipLedSuit defers trump to the first suit led, which the
//     simulator applies during play.
func InterpretFlip(c Card, rules Rules) FlipResult {
	switch c.Kind() {
	case KindSuited:
		return FlipResult{Trump: c.Suit()}
	case KindJester:
		return FlipResult{Trump: NoSuit}
	case KindWizard:
		if rules.WizardFlip == FlipDealerChooses {
			return FlipResult{Trump: NoSuit, NeedsDealerChoice: true}
		}
	}
	return FlipResult{Trump: NoSuit}
}
