package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/jason-s-yu/onetrick/internal/sim"
)

const stepPrompt = "[Enter=next, s=summary, h=help, q=quit] "

// consoleStepper prints each event and waits for a command on in.
// End of input continues the run without further prompts.
type consoleStepper struct {
	in     *bufio.Scanner
	out    io.Writer
	quit   func()
	events []sim.Event
	eof    bool
}

func newConsoleStepper(in io.Reader, out io.Writer, quit func()) *consoleStepper {
	return &consoleStepper{in: bufio.NewScanner(in), out: out, quit: quit}
}

func (c *consoleStepper) Pause(ev sim.Event) {
	c.events = append(c.events, ev)
	fmt.Fprintln(c.out, "\nEVENT:", renderEvent(ev))

	for !c.eof {
		fmt.Fprint(c.out, stepPrompt)
		if !c.in.Scan() {
			c.eof = true
			fmt.Fprintln(c.out)
			return
		}
		switch strings.ToLower(strings.TrimSpace(c.in.Text())) {
		case "", "n", "next":
			return
		case "s", "summary":
			fmt.Fprintln(c.out, renderProgress(c.events))
		case "h", "help":
			fmt.Fprintln(c.out, "Commands: Enter/n/next = continue, s/summary = print summary, q/quit = exit")
		case "q", "quit":
			fmt.Fprintln(c.out, "Exiting...")
			c.quit()
			return
		default:
			fmt.Fprintln(c.out, "Unknown command. Type h for help.")
		}
	}
}
