package experiments

import (
	"context"
	"draughts/experiments/metrics"
)

// RunThroughputExperiment plays each depth against itself, for the same
// playing strength and similar game length, to measure search effort per
// depth.
func RunThroughputExperiment(ctx context.Context, settings Settings) (string, error) {
	configs := []metrics.AgentConfig{}
	matchUps := [][]metrics.AgentConfig{}
	for depth := 1; depth <= 6; depth++ {
		config := metrics.AgentConfig{ID: depth, Depth: depth, Pruning: true}
		configs = append(configs, config)
		matchUps = append(matchUps, []metrics.AgentConfig{config, config})
	}

	return runExperiment(ctx, "throughput", settings, configs, matchUps)
}
