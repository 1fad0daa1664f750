package main

import (
	"context"
	"draughts/communication/server"
	"draughts/config"
	"draughts/engine"
	"draughts/experiments"
	"draughts/game"
	"draughts/player"
	"draughts/searcher"
	"draughts/searcher/agent"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	configPath := flag.String("config", "", "YAML settings file, defaults when empty")
	mode := flag.String("mode", "play", "play, experiment or serve")
	experiment := flag.String("experiment", "depth", "depth, scoring, pruning or throughput")
	out := flag.String("out", "experiments", "experiment output directory")
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		var err error
		if cfg, err = config.Load(*configPath); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(2)
		}
	}

	closeLog, err := setupLogging(cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	defer closeLog()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	switch *mode {
	case "play":
		err = play(ctx, cfg)
	case "serve":
		err = server.New(cfg.Server.Addr).Run(ctx)
	case "experiment":
		err = runExperiment(ctx, *experiment, *out, cfg)
	default:
		err = fmt.Errorf("unknown mode %q", *mode)
	}
	if err != nil {
		log.Error().Err(err).Msgf("%s failed", *mode)
		closeLog()
		os.Exit(1)
	}
}

func setupLogging(cfg config.Config) (func(), error) {
	level, err := cfg.Level()
	if err != nil {
		return nil, err
	}
	zerolog.SetGlobalLevel(level)

	var w io.Writer = zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}
	closeLog := func() {}
	if cfg.Log.File != "" {
		f, err := os.OpenFile(cfg.Log.File, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
		if err != nil {
			return nil, fmt.Errorf("failed to open log file: %w", err)
		}
		w = zerolog.MultiLevelWriter(w, f)
		closeLog = func() { f.Close() }
	}
	log.Logger = zerolog.New(w).With().Timestamp().Logger()
	return closeLog, nil
}

func play(ctx context.Context, cfg config.Config) error {
	s := searcher.New(cfg.SearcherOptions()...)
	var agents [2]agent.Agent
	for _, side := range []game.Side{game.White, game.Black} {
		if cfg.Seat(side).Bot {
			agents[side] = agent.NewSearchAgent(s)
		} else {
			agents[side] = player.NewHuman(side.String(), os.Stdin, os.Stdout)
		}
	}

	e := engine.New(agents,
		engine.WithMaxTurns(cfg.Game.MaxTurns),
		engine.WithThinkDelay(cfg.Bot.Delay),
		engine.WithMoveDelay(cfg.Bot.Delay),
		engine.WithObserver(func(u engine.Update) {
			if len(u.Turn) > 0 && cfg.Seat(u.Side).Bot {
				fmt.Printf("%v played %v\n", u.Side, u.Turn)
			}
		}),
	)

	outcome, _, _, err := e.Run(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("%v\n", e.Board().Position())
	switch outcome {
	case engine.Draw:
		fmt.Println("draw")
	case engine.Aborted:
		fmt.Println("game abandoned")
	default:
		fmt.Printf("%v wins\n", outcome)
	}
	return nil
}

func runExperiment(ctx context.Context, name, dir string, cfg config.Config) error {
	settings := experiments.DefaultSettings(dir)
	settings.MaxTurns = cfg.Game.MaxTurns
	settings.Seed = cfg.Bot.Seed

	run := map[string]func(context.Context, experiments.Settings) (string, error){
		"depth":      experiments.RunDepthExperiment,
		"scoring":    experiments.RunScoringExperiment,
		"pruning":    experiments.RunPruningExperiment,
		"throughput": experiments.RunThroughputExperiment,
	}[name]
	if run == nil {
		return fmt.Errorf("unknown experiment %q", name)
	}

	out, err := run(ctx, settings)
	if err != nil {
		return err
	}
	fmt.Printf("results written to %s\n", out)
	return nil
}
