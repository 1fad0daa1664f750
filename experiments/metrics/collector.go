package metrics

import (
	"draughts/game"
	"sync/atomic"
	"time"
)

type SearchMetric struct {
	Depth    int
	Scoring  game.ScoringMode
	Pruning  bool
	Duration time.Duration
	Nodes    int
	Leaves   int
	Cutoffs  int
}

type MoveMetric struct {
	Step  int
	Side  game.Side
	Moves int // atomic moves in the turn
	SearchMetric
}

type GameMetric struct {
	ID           string // uuid
	StartingSide game.Side
	Outcome      string
	StartTime    time.Time
	EndTime      time.Time
	Duration     time.Duration
	TotalTurns   int
}

type Collector interface {
	Start(depth int, scoring game.ScoringMode, pruning bool)
	AddNode()
	AddLeaf()
	AddCutoff()
	Complete() SearchMetric
}

type collector struct {
	depth     int
	scoring   game.ScoringMode
	pruning   bool
	startTime time.Time
	nodes     atomic.Int64
	leaves    atomic.Int64
	cutoffs   atomic.Int64
}

func NewCollector() Collector {
	return &collector{}
}

func (m *collector) Start(depth int, scoring game.ScoringMode, pruning bool) {
	m.startTime = time.Now()
	m.depth = depth
	m.scoring = scoring
	m.pruning = pruning
}

func (m *collector) AddNode() {
	m.nodes.Add(1)
}

func (m *collector) AddLeaf() {
	m.leaves.Add(1)
}

func (m *collector) AddCutoff() {
	m.cutoffs.Add(1)
}

func (m *collector) Complete() SearchMetric {
	return SearchMetric{
		Depth:    m.depth,
		Scoring:  m.scoring,
		Pruning:  m.pruning,
		Duration: time.Since(m.startTime),
		Nodes:    int(m.nodes.Load()),
		Leaves:   int(m.leaves.Load()),
		Cutoffs:  int(m.cutoffs.Load()),
	}
}

type dummyCollector struct{}

func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (m *dummyCollector) Start(depth int, scoring game.ScoringMode, pruning bool) {}
func (m *dummyCollector) AddNode() {}
func (m *dummyCollector) AddLeaf() {}
func (m *dummyCollector) AddCutoff() {}
func (m *dummyCollector) Complete() SearchMetric { return SearchMetric{} }
