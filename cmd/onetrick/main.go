// Command onetrick simulates a single trick between built-in agents and
// prints the event log, either all at once or one event at a time.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	engine "github.com/jason-s-yu/onetrick/engine"
	"github.com/jason-s-yu/onetrick/engine/agent"
	"github.com/jason-s-yu/onetrick/internal/bus"
	"github.com/jason-s-yu/onetrick/internal/cache"
	"github.com/jason-s-yu/onetrick/internal/config"
	"github.com/jason-s-yu/onetrick/internal/database"
	"github.com/jason-s-yu/onetrick/internal/sim"
	"github.com/jason-s-yu/onetrick/internal/watch"
)

func main() {
	settings := config.LoadSettings()

	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	log.SetLevel(settings.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	a := &app{
		settings: settings,
		in:       os.Stdin,
		out:      os.Stdout,
		log:      log,
		quit:     func() { os.Exit(0) },
	}
	if err := a.run(ctx, os.Args[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		log.WithError(err).Fatal("onetrick failed")
	}
}

type app struct {
	settings config.Settings
	in       io.Reader
	out      io.Writer
	log      logrus.FieldLogger
	quit     func()
}

type cliOptions struct {
	seed      uint64
	dealer    int
	round     int
	step      bool
	rulesPath string
	agents    string
	json      bool
}

func (a *app) parseFlags(args []string) (cliOptions, error) {
	var o cliOptions
	fs := flag.NewFlagSet("onetrick", flag.ContinueOnError)
	fs.SetOutput(a.out)
	fs.Uint64Var(&o.seed, "seed", 0, "RNG seed (0 picks one from the clock)")
	fs.IntVar(&o.dealer, "dealer", 0, "dealer seat")
	fs.IntVar(&o.round, "round", 1, "cards dealt to each player")
	fs.BoolVar(&o.step, "step", false, "pause after every event")
	fs.StringVar(&o.rulesPath, "rules", a.settings.RulesPath, "rules file (YAML); built-in defaults when empty")
	fs.StringVar(&o.agents, "agents", string(agent.KindRandom), "comma-separated agent kinds by seat; a single kind fills every seat")
	fs.BoolVar(&o.json, "json", false, "print the result as JSON")
	if err := fs.Parse(args); err != nil {
		return o, err
	}
	if o.seed == 0 {
		o.seed = uint64(time.Now().UnixNano())
	}
	return o, nil
}

func (a *app) run(ctx context.Context, args []string) error {
	opts, err := a.parseFlags(args)
	if err != nil {
		return err
	}

	rules := engine.DefaultRules()
	if opts.rulesPath != "" {
		if rules, err = config.LoadRules(opts.rulesPath); err != nil {
			return err
		}
	}

	agents, err := buildAgents(opts.agents, rules.Players)
	if err != nil {
		return err
	}
	names := make([]string, len(agents))
	for i, ag := range agents {
		names[i] = ag.Name()
	}

	sinks, closeSinks := a.connectSinks(ctx)
	defer closeSinks()

	simulator := sim.New(rules, sim.WithLogger(a.log), sim.WithSinks(sinks...))
	runOpts := sim.RunOptions{
		Agents: agents,
		RNG:    engine.NewRNG(opts.seed),
		Dealer: opts.dealer,
		Round:  opts.round,
		Mode:   sim.ModeFast,
	}
	if opts.step {
		runOpts.Mode = sim.ModeStep
		runOpts.Stepper = newConsoleStepper(a.in, a.out, quitAfter(closeSinks, a.quit))
	}

	a.log.WithFields(logrus.Fields{"seed": opts.seed, "dealer": opts.dealer, "round": opts.round}).Info("starting run")
	res, err := simulator.Run(ctx, runOpts)
	if err != nil {
		return err
	}
	a.archive(ctx, res)

	if opts.json {
		enc := json.NewEncoder(a.out)
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	}
	if !opts.step {
		for _, ev := range res.Events {
			fmt.Fprintln(a.out, renderEvent(ev))
		}
	}
	fmt.Fprintln(a.out, renderResult(res, names))
	fmt.Fprintf(a.out, "seed %d\n", opts.seed)
	return nil
}

// buildAgents expands "random,naive,..." into one agent per seat.
func buildAgents(spec string, players int) ([]agent.Agent, error) {
	kinds := strings.Split(spec, ",")
	if len(kinds) == 1 {
		for len(kinds) < players {
			kinds = append(kinds, kinds[0])
		}
	}
	if len(kinds) != players {
		return nil, fmt.Errorf("%d agents for %d seats: %w", len(kinds), players, sim.ErrParticipantCountMismatch)
	}

	agents := make([]agent.Agent, players)
	for i, k := range kinds {
		kind := agent.Kind(strings.ToLower(strings.TrimSpace(k)))
		ag, err := agent.New(kind, fmt.Sprintf("%s-%d", kind, i))
		if err != nil {
			return nil, err
		}
		agents[i] = ag
	}
	return agents, nil
}

// connectSinks wires whichever event sinks the environment enables. A sink
// that cannot connect is skipped with a warning. The returned close func is
// safe to call more than once.
func (a *app) connectSinks(ctx context.Context) ([]sim.Sink, func()) {
	var sinks []sim.Sink
	var closers []func()

	if url := a.settings.RedisURL; url != "" {
		if rdb, err := cache.Connect(ctx, url); err != nil {
			a.log.WithError(err).Warn("redis sink disabled")
		} else {
			sinks = append(sinks, cache.NewRedisSink(rdb))
			closers = append(closers, func() { _ = rdb.Close() })
		}
	}

	if url := a.settings.NATSURL; url != "" {
		if nc, err := bus.Connect(url, "onetrick"); err != nil {
			a.log.WithError(err).Warn("nats sink disabled")
		} else {
			sinks = append(sinks, bus.NewNATSSink(nc))
			closers = append(closers, func() { _ = nc.Drain() })
		}
	}

	if addr := a.settings.WatchAddr; addr != "" {
		hub := watch.NewHub(a.log, a.settings.WatchOrigins...)
		mux := http.NewServeMux()
		mux.Handle("/watch", hub)
		srv := &http.Server{Addr: addr, Handler: mux}
		go func() {
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				a.log.WithError(err).Warn("watch server stopped")
			}
		}()
		a.log.WithField("addr", addr).Info("spectators can connect to /watch")
		sinks = append(sinks, hub)
		closers = append(closers, func() {
			hub.Close()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			_ = srv.Shutdown(shutdownCtx)
		})
	}

	return sinks, sync.OnceFunc(func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	})
}

// quitAfter runs cleanup before exit; exit may end the process, skipping defers.
func quitAfter(cleanup, exit func()) func() {
	return func() {
		cleanup()
		exit()
	}
}

// archive stores the finished run when DATABASE_URL is set.
func (a *app) archive(ctx context.Context, res *sim.Result) {
	url := a.settings.DatabaseURL
	if url == "" {
		return
	}
	pool, err := database.Connect(ctx, url)
	if err != nil {
		a.log.WithError(err).Warn("run not archived")
		return
	}
	defer pool.Close()

	store := database.NewRunStore(pool)
	if err := store.Migrate(ctx); err != nil {
		a.log.WithError(err).Warn("run not archived")
		return
	}
	if err := store.SaveRun(ctx, res); err != nil {
		a.log.WithError(err).Warn("run not archived")
		return
	}
	a.log.WithField("run_id", res.RunID.String()).Info("run archived")
}
