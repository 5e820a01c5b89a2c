package metrics

import (
	"sync/atomic"
	"time"
)

type SearchMetric struct {
	Algorithm string
	Evaluator string
	Depth     int
	Duration  time.Duration
	Nodes     int // States expanded
	Leaves    int // Evaluations at terminal, cutoff or stuck states
	Cutoffs   int // Sibling loops abandoned by alpha-beta
}

type MoveMetric struct {
	Step   int
	Agent  int
	Action string
	Value  float64
	SearchMetric
}

type GameMetric struct {
	Layout     string
	Winner     string // "pacman", "ghosts" or "" when the turn limit was reached
	Score      float64
	StartTime  time.Time
	EndTime    time.Time
	Duration   time.Duration
	TotalMoves int
}

type Collector interface {
	Start(algorithm, evaluator string, depth int)
	AddNode()
	AddLeaf()
	AddCutoff()
	Complete() SearchMetric
}

type collector struct {
	algorithm string
	evaluator string
	depth     int
	startTime time.Time
	nodes     atomic.Int32
	leaves    atomic.Int32
	cutoffs   atomic.Int32
}

func NewCollector() Collector {
	return &collector{}
}

// Start resets the counters for a new search.
func (m *collector) Start(algorithm, evaluator string, depth int) {
	m.startTime = time.Now()
	m.algorithm = algorithm
	m.evaluator = evaluator
	m.depth = depth
	m.nodes.Store(0)
	m.leaves.Store(0)
	m.cutoffs.Store(0)
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
		Algorithm: m.algorithm,
		Evaluator: m.evaluator,
		Depth:     m.depth,
		Duration:  time.Since(m.startTime),
		Nodes:     int(m.nodes.Load()),
		Leaves:    int(m.leaves.Load()),
		Cutoffs:   int(m.cutoffs.Load()),
	}
}

type dummyCollector struct{}

func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (m *dummyCollector) Start(algorithm, evaluator string, depth int) {}
func (m *dummyCollector) AddNode()                                     {}
func (m *dummyCollector) AddLeaf()                                     {}
func (m *dummyCollector) AddCutoff()                                   {}
func (m *dummyCollector) Complete() SearchMetric                       { return SearchMetric{} }
