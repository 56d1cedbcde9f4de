package metrics

import (
	"sync/atomic"
	"time"

	"nmoku/game"
)

// TrainMetric summarizes one training run over the shared value table.
type TrainMetric struct {
	Alpha        float64
	Gamma        float64
	Epsilon      float64
	Episodes     int
	P1Wins       int
	P2Wins       int
	Draws        int
	TableEntries int
	Duration     time.Duration
}

// GameMetric summarizes one evaluation game.
type GameMetric struct {
	StartingMark string
	Winner       string // empty for a draw
	Moves        int
	StartTime    time.Time
	EndTime      time.Time
	Duration     time.Duration
}

// Collector accumulates training statistics. The trainer drives it once per
// episode; counters are atomic so a caller running training on a background
// goroutine can be reported on safely.
type Collector interface {
	Start(alpha, gamma, epsilon float64)
	AddEpisode(winner game.Mark)
	SetTableEntries(entries int)
	Complete() TrainMetric
}

type collector struct {
	alpha     float64
	gamma     float64
	epsilon   float64
	startTime time.Time
	episodes  atomic.Int32
	p1Wins    atomic.Int32
	p2Wins    atomic.Int32
	draws     atomic.Int32
	entries   atomic.Int32
}

func NewCollector() Collector {
	return &collector{}
}

func (c *collector) Start(alpha, gamma, epsilon float64) {
	c.startTime = time.Now()
	c.alpha = alpha
	c.gamma = gamma
	c.epsilon = epsilon
}

func (c *collector) AddEpisode(winner game.Mark) {
	c.episodes.Add(1)
	switch winner {
	case game.P1:
		c.p1Wins.Add(1)
	case game.P2:
		c.p2Wins.Add(1)
	default:
		c.draws.Add(1)
	}
}

func (c *collector) SetTableEntries(entries int) {
	c.entries.Store(int32(entries))
}

func (c *collector) Complete() TrainMetric {
	return TrainMetric{
		Alpha:        c.alpha,
		Gamma:        c.gamma,
		Epsilon:      c.epsilon,
		Episodes:     int(c.episodes.Load()),
		P1Wins:       int(c.p1Wins.Load()),
		P2Wins:       int(c.p2Wins.Load()),
		Draws:        int(c.draws.Load()),
		TableEntries: int(c.entries.Load()),
		Duration:     time.Since(c.startTime),
	}
}

type dummyCollector struct{}

func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (d *dummyCollector) Start(alpha, gamma, epsilon float64) {}
func (d *dummyCollector) AddEpisode(winner game.Mark)         {}
func (d *dummyCollector) SetTableEntries(entries int)         {}
func (d *dummyCollector) Complete() TrainMetric               { return TrainMetric{} }
