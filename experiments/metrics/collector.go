package metrics

import (
	"carcassonne/game"
	"sync/atomic"
	"time"
)

type SearchMetric struct {
	Policy     string
	Ensemble   int
	Duration   time.Duration
	Iterations int
	Playouts   int
	Nodes      int
}

type DecisionMetric struct {
	Step   int
	Player int // Player ID
	Move   int // index into the legal moves
	Token  int // token point or game.NoToken
	SearchMetric
}

type GameMetric struct {
	Scores     [game.NumPlayers]int
	Winner     int // Player ID or game.NoPlayer on a tie
	StartTime  time.Time
	EndTime    time.Time
	Duration   time.Duration
	TotalMoves int
	Redraws    int // tiles returned to the deck because they had no legal placement
}

// Collector gathers search statistics for one decision. Methods may be called
// from concurrent ensemble repetitions.
type Collector interface {
	Start(policy string, ensemble int)
	AddIteration()
	AddPlayout()
	AddNodes(n int)
	Complete() SearchMetric
}

type collector struct {
	policy     string
	ensemble   int
	startTime  time.Time
	iterations atomic.Int32
	playouts   atomic.Int32
	nodes      atomic.Int32
}

func NewCollector() Collector {
	return &collector{}
}

func (m *collector) Start(policy string, ensemble int) {
	m.startTime = time.Now()
	m.policy = policy
	m.ensemble = ensemble
	m.iterations.Store(0)
	m.playouts.Store(0)
	m.nodes.Store(0)
}

func (m *collector) AddIteration() {
	m.iterations.Add(1)
}

func (m *collector) AddPlayout() {
	m.playouts.Add(1)
}

func (m *collector) AddNodes(n int) {
	m.nodes.Add(int32(n))
}

func (m *collector) Complete() SearchMetric {
	return SearchMetric{
		Policy:     m.policy,
		Ensemble:   m.ensemble,
		Duration:   time.Since(m.startTime),
		Iterations: int(m.iterations.Load()),
		Playouts:   int(m.playouts.Load()),
		Nodes:      int(m.nodes.Load()),
	}
}

type dummyCollector struct{}

func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (m *dummyCollector) Start(policy string, ensemble int) {}
func (m *dummyCollector) AddIteration()                     {}
func (m *dummyCollector) AddPlayout()                       {}
func (m *dummyCollector) AddNodes(n int)                    {}
func (m *dummyCollector) Complete() SearchMetric            { return SearchMetric{} }
