package metrics

import (
	"sync/atomic"
	"time"
)

// SearchMetric describes one move recommendation.
type SearchMetric struct {
	Budget       time.Duration
	Duration     time.Duration
	Tier         string
	Complexity   float64
	Nodes        int
	TableHits    int
	TableEntries int
}

type MoveMetric struct {
	Step   int
	Player string // colour to move, "w" or "b"
	Move   string
	SearchMetric
}

type GameMetric struct {
	Mode           string
	StartingPlayer string // name of the agent playing White
	Winner         string // agent name, "" for a draw
	Result         string // terminal classification
	StartTime      time.Time
	EndTime        time.Time
	Duration       time.Duration
	TotalMoves     int
}

type Collector interface {
	Start(budget time.Duration, complexity float64)
	SetTier(tier string)
	AddNodes(n int)
	AddTableHits(n int)
	SetTableEntries(n int)
	Complete() SearchMetric
}

type collector struct {
	budget       time.Duration
	complexity   float64
	startTime    time.Time
	tier         atomic.Value
	nodes        atomic.Int64
	tableHits    atomic.Int64
	tableEntries atomic.Int64
}

func NewCollector() Collector {
	return &collector{}
}

func (m *collector) Start(budget time.Duration, complexity float64) {
	m.startTime = time.Now()
	m.budget = budget
	m.complexity = complexity
	m.tier.Store("")
	m.nodes.Store(0)
	m.tableHits.Store(0)
	m.tableEntries.Store(0)
}

func (m *collector) SetTier(tier string) {
	m.tier.Store(tier)
}

func (m *collector) AddNodes(n int) {
	m.nodes.Add(int64(n))
}

func (m *collector) AddTableHits(n int) {
	m.tableHits.Add(int64(n))
}

func (m *collector) SetTableEntries(n int) {
	m.tableEntries.Store(int64(n))
}

func (m *collector) Complete() SearchMetric {
	tier, _ := m.tier.Load().(string)
	return SearchMetric{
		Budget:       m.budget,
		Duration:     time.Since(m.startTime),
		Tier:         tier,
		Complexity:   m.complexity,
		Nodes:        int(m.nodes.Load()),
		TableHits:    int(m.tableHits.Load()),
		TableEntries: int(m.tableEntries.Load()),
	}
}

type dummyCollector struct{}

func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (m *dummyCollector) Start(budget time.Duration, complexity float64) {}
func (m *dummyCollector) SetTier(tier string)                           {}
func (m *dummyCollector) AddNodes(n int)                                {}
func (m *dummyCollector) AddTableHits(n int)                            {}
func (m *dummyCollector) SetTableEntries(n int)                         {}
func (m *dummyCollector) Complete() SearchMetric                        { return SearchMetric{} }
