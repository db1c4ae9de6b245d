package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jason-s-yu/onetrick/internal/sim"
)

var (
	clrBorder = lipgloss.Color("#30363d")
	clrSubtle = lipgloss.Color("#8b949e")
	clrGold   = lipgloss.Color("#e3b341")
	clrGreen  = lipgloss.Color("#3fb950")
	clrTitle  = lipgloss.Color("#58a6ff")
	clrWizard = lipgloss.Color("#bc8cff")

	suitColors = map[string]lipgloss.Color{
		"♠": lipgloss.Color("#50FA7B"),
		"♥": lipgloss.Color("#FF6B6B"),
		"♦": lipgloss.Color("#FFD700"),
		"♣": lipgloss.Color("#44AAFF"),
	}
)

func fg(c lipgloss.Color) lipgloss.Style { return lipgloss.NewStyle().Foreground(c) }

func bold(c lipgloss.Color) lipgloss.Style { return lipgloss.NewStyle().Foreground(c).Bold(true) }

func box(content string, borderClr lipgloss.Color) string {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(borderClr).
		Padding(0, 1).
		Render(content)
}

// cardText colours a card id by suit; wizards and jesters get their own colours.
func cardText(id string) string {
	switch id {
	case "Wizard":
		return bold(clrWizard).Render(id)
	case "Jester":
		return fg(clrSubtle).Render(id)
	}
	for sym, c := range suitColors {
		if strings.HasSuffix(id, sym) {
			return fg(c).Render(id)
		}
	}
	return id
}

func cardList(ids []string) string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = cardText(id)
	}
	return "[" + strings.Join(out, ", ") + "]"
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

// describeEvent is the one-line form of an event.
func describeEvent(ev sim.Event) string {
	switch ev.Type {
	case sim.EventDeal:
		return fmt.Sprintf("deal(dealer=%d, round=%d)", ev.Deal.Dealer, ev.Deal.Round)
	case sim.EventFlip:
		return fmt.Sprintf("flip(%s)", cardText(ev.Flip.CardID))
	case sim.EventChooseTrump:
		return fmt.Sprintf("chooseTrump(%s)", cardText(ev.ChooseTrump.Trump))
	case sim.EventBid:
		return fmt.Sprintf("bid(p%d=%d, hand=%s)", ev.Bid.Player, ev.Bid.Bid, cardList(ev.Bid.Hand))
	case sim.EventPlay:
		p := ev.Play
		return fmt.Sprintf("play(%d/%d, p%d=%s, led=%s, trump=%s, hand=%s)",
			p.PlayNumber, p.TotalPlayers, p.Player, cardText(p.CardID),
			orDash(p.LedSuit), p.TrumpSuit, cardList(p.HandAtDecision))
	case sim.EventResolve:
		return fmt.Sprintf("resolve(winner=%d)", ev.Resolve.Winner)
	}
	return string(ev.Type)
}

func renderEvent(ev sim.Event) string {
	return fmt.Sprintf("%s %s", fg(clrSubtle).Render(fmt.Sprintf("#%02d", ev.Seq)), describeEvent(ev))
}

// renderProgress reports the current leader or winner from the latest event.
func renderProgress(events []sim.Event) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s total events = %d", bold(clrTitle).Render("SUMMARY (so far):"), len(events))
	if len(events) == 0 {
		return b.String()
	}
	last := events[len(events)-1]
	switch last.Type {
	case sim.EventPlay:
		fmt.Fprintf(&b, "\nCurrent trick winner: p%d with %s", last.Play.CurrentWinner, cardText(last.Play.CurrentWinningCardID))
	case sim.EventResolve:
		fmt.Fprintf(&b, "\nTrick winner: %s", bold(clrGreen).Render(fmt.Sprintf("p%d", last.Resolve.Winner)))
	}
	return b.String()
}

// renderResult draws the final box for a finished run.
func renderResult(res *sim.Result, names []string) string {
	s := res.Summary
	var b strings.Builder
	fmt.Fprintf(&b, "%s  %s\n", bold(clrTitle).Render("ONE TRICK"), fg(clrSubtle).Render(res.RunID.String()))
	fmt.Fprintf(&b, "dealer p%d  round %d  trump %s\n\n", s.Dealer, s.Round, cardText(s.Trump))

	for seat, name := range names {
		line := fmt.Sprintf("p%d %-14s bid %d", seat, name, s.Bids[seat])
		if s.Scores != nil {
			line += fmt.Sprintf("  score %+d", s.Scores[seat].Score)
		}
		if seat == s.Winner {
			line = bold(clrGold).Render(line + "  ★")
		}
		b.WriteString(line + "\n")
	}
	fmt.Fprintf(&b, "\nplays %s", cardList(s.Plays))
	return box(b.String(), clrBorder)
}
