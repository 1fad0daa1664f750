package experiments

import (
	"context"
	"draughts/engine"
	"draughts/experiments/metrics"
	"draughts/game"
	"draughts/searcher"
	"draughts/searcher/agent"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
)

const (
	NumGames = 10 // Per match up
	MaxTurns = 120
)

// Settings controls how an experiment is run and where it is stored.
type Settings struct {
	Dir      string
	NumGames int    // per matchup
	MaxTurns int    // per game
	Seed     uint64 // 0 seeds from the clock
}

func DefaultSettings(dir string) Settings {
	return Settings{Dir: dir, NumGames: NumGames, MaxTurns: MaxTurns}
}

// RunDepthExperiment pairs a depth 2 baseline against deeper and shallower
// searches, and a random player.
func RunDepthExperiment(ctx context.Context, settings Settings) (string, error) {
	baseline := metrics.AgentConfig{ID: 0, Depth: 2, Pruning: true}
	depthConfigs := []metrics.AgentConfig{
		{ID: 1, Random: true},
		{ID: 2, Depth: 1, Pruning: true},
		{ID: 3, Depth: 3, Pruning: true},
		{ID: 4, Depth: 4, Pruning: true},
		{ID: 5, Depth: 5, Pruning: true},
	}

	// Each matchup pairs the baseline agent against a depth agent
	matchUps := [][]metrics.AgentConfig{}
	for _, config := range depthConfigs {
		matchUps = append(matchUps, []metrics.AgentConfig{baseline, config})
	}

	return runExperiment(ctx, "depth", settings, append(depthConfigs, baseline), matchUps)
}

// RunScoringExperiment pairs the two scoring modes at equal depths.
func RunScoringExperiment(ctx context.Context, settings Settings) (string, error) {
	configs := []metrics.AgentConfig{}
	matchUps := [][]metrics.AgentConfig{}
	for depth := 2; depth <= 4; depth++ {
		material := metrics.AgentConfig{ID: len(configs), Depth: depth, Scoring: game.Material, Pruning: true}
		potential := metrics.AgentConfig{ID: len(configs) + 1, Depth: depth, Scoring: game.MaterialAndPotential, Pruning: true}
		configs = append(configs, material, potential)
		matchUps = append(matchUps, []metrics.AgentConfig{material, potential})
	}

	return runExperiment(ctx, "scoring", settings, configs, matchUps)
}

// RunPruningExperiment plays pruned against unpruned searches of the same
// depth. Both choose equally strong turns, so the records compare search
// effort.
func RunPruningExperiment(ctx context.Context, settings Settings) (string, error) {
	configs := []metrics.AgentConfig{}
	matchUps := [][]metrics.AgentConfig{}
	for depth := 2; depth <= 4; depth++ {
		full := metrics.AgentConfig{ID: len(configs), Depth: depth}
		pruned := metrics.AgentConfig{ID: len(configs) + 1, Depth: depth, Pruning: true}
		configs = append(configs, full, pruned)
		matchUps = append(matchUps, []metrics.AgentConfig{full, pruned})
	}

	return runExperiment(ctx, "pruning", settings, configs, matchUps)
}

func runExperiment(ctx context.Context, name string, settings Settings, configs []metrics.AgentConfig, matchUps [][]metrics.AgentConfig) (string, error) {
	seed := settings.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}

	// Run a number of games for each matchup
	count := 0
	gameRecords := []metrics.GameRecord{}
	moveRecords := []metrics.MoveRecord{}
	start := time.Now()

	log.Info().Msgf("starting %s experiment...", name)

	for mi, matchup := range matchUps {
		log.Info().Msgf("starting matchup %d of %d between agent1=%+v and agent2=%+v...", mi+1, len(matchUps), matchup[0], matchup[1])

		for i := 0; i < settings.NumGames; i++ {
			// Alternate colours so neither agent always moves first
			white, black := matchup[0], matchup[1]
			if i%2 == 1 {
				white, black = black, white
			}

			count++
			gameSeed := seed + uint64(2*count)
			outcome, gameMetric, moveMetrics, err := runGame(ctx, settings.MaxTurns, white, black, gameSeed)
			if err != nil {
				return "", fmt.Errorf("matchup %d game %d failed: %w", mi+1, i+1, err)
			}

			gameRecords = append(gameRecords, metrics.GameRecord{
				White:      white.ID,
				Black:      black.ID,
				GameMetric: gameMetric,
			})
			for _, mm := range moveMetrics {
				moveRecords = append(moveRecords, metrics.MoveRecord{
					Game:       gameMetric.ID,
					MoveMetric: mm,
				})
			}

			log.Info().Msgf("completed matchup %d of %d game %d of %d with outcome: %v", mi+1, len(matchUps), i+1, settings.NumGames, outcome)
		}
	}

	log.Info().Dur("elapsed", time.Since(start)).Msgf("completed %s experiment", name)

	return store(name, settings, configs, matchUps, start, gameRecords, moveRecords)
}

func store(name string, settings Settings, configs []metrics.AgentConfig, matchUps [][]metrics.AgentConfig,
	start time.Time, gameRecords []metrics.GameRecord, moveRecords []metrics.MoveRecord) (string, error) {
	writer, err := metrics.NewWriter(settings.Dir, name)
	if err != nil {
		return "", fmt.Errorf("failed to create experiment writer: %w", err)
	}

	end := time.Now()
	err = writer.WriteSetup(metrics.Setup{
		Experiment: name,
		Matchups:   matchUps,
		NumGames:   settings.NumGames,
		StartTime:  start,
		EndTime:    end,
		Duration:   end.Sub(start),
	})
	if err != nil {
		return "", err
	}

	if err := writer.WriteAgentConfigs(configs); err != nil {
		return "", fmt.Errorf("failed to store agent configs: %w", err)
	}
	log.Info().Msg("stored agent configs")

	if err := writer.WriteGameRecords(gameRecords); err != nil {
		return "", fmt.Errorf("failed to write game records: %w", err)
	}
	log.Info().Msg("stored game records")

	if err := writer.WriteMoveRecords(moveRecords); err != nil {
		return "", fmt.Errorf("failed to write move records: %w", err)
	}
	log.Info().Msgf("stored move records in %s", writer.Dir())

	return writer.Dir(), nil
}

// runGame plays a single game between two agent configs.
func runGame(ctx context.Context, maxTurns int, white, black metrics.AgentConfig, seed uint64) (engine.Outcome, metrics.GameMetric, []metrics.MoveMetric, error) {
	agents := [2]agent.Agent{
		newAgent(white, seed),
		newAgent(black, seed+1),
	}
	e := engine.New(agents, engine.WithMaxTurns(maxTurns))
	return e.Run(ctx)
}

func newAgent(config metrics.AgentConfig, seed uint64) agent.Agent {
	if config.Random {
		return agent.NewRandomAgent(seed)
	}
	return agent.NewSearchAgent(searcher.New(
		searcher.WithDepth(game.White, config.Depth),
		searcher.WithDepth(game.Black, config.Depth),
		searcher.WithScoring(config.Scoring),
		searcher.WithPruning(config.Pruning),
		searcher.WithSeed(seed),
		searcher.WithMetrics(),
	))
}
