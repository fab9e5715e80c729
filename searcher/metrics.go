package searcher

import (
	"time"
)

type SearchMetric struct {
	StartTime    time.Time
	Duration     time.Duration
	Episodes     int
	FullPlayouts int // Episodes whose selection reached a terminal state
}

// SimsPerSecond is zero when no time elapsed.
func (m SearchMetric) SimsPerSecond() float64 {
	if m.Duration <= 0 {
		return 0
	}
	return float64(m.Episodes) / m.Duration.Seconds()
}

type Collector interface {
	Start()
	AddEpisode()
	AddFullPlayout()
	Complete() SearchMetric
}

type collector struct {
	startTime    time.Time
	episodes     int
	fullPlayouts int
}

func NewCollector() Collector {
	return &collector{}
}

func (m *collector) Start() {
	m.startTime = time.Now()
	m.episodes = 0
	m.fullPlayouts = 0
}

func (m *collector) AddEpisode() {
	m.episodes++
}

func (m *collector) AddFullPlayout() {
	m.fullPlayouts++
}

func (m *collector) Complete() SearchMetric {
	return SearchMetric{
		StartTime:    m.startTime,
		Duration:     time.Since(m.startTime),
		Episodes:     m.episodes,
		FullPlayouts: m.fullPlayouts,
	}
}

type dummyCollector struct{}

func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (m *dummyCollector) Start()                 {}
func (m *dummyCollector) AddEpisode()            {}
func (m *dummyCollector) AddFullPlayout()        {}
func (m *dummyCollector) Complete() SearchMetric { return SearchMetric{} }
