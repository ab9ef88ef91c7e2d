package timing

import (
	"sort"
	"sync"
	"time"

	"glitch-art-maker/internal/logger"
)

// DefaultHistory bounds how many samples are kept per stage
const DefaultHistory = 64

// Summary aggregates the recorded samples of one stage
type Summary struct {
	Stage   string
	Count   int
	Last    time.Duration
	Average time.Duration
	Max     time.Duration
}

// Tracker records how long each pipeline stage took across renders
type Tracker struct {
	timings map[string][]time.Duration
	history int
	mu      sync.RWMutex
	logger  logger.Logger
	enabled bool
}

func NewTracker(log logger.Logger, history int) *Tracker {
	if history <= 0 {
		history = DefaultHistory
	}
	if log == nil {
		log = logger.NewNop()
	}

	return &Tracker{
		timings: make(map[string][]time.Duration),
		history: history,
		logger:  log,
		enabled: true,
	}
}

// Start returns a function that records the elapsed time for stage when called
func (tt *Tracker) Start(stage string) func() time.Duration {
	start := time.Now()
	return func() time.Duration {
		elapsed := time.Since(start)
		tt.Record(stage, elapsed)
		return elapsed
	}
}

// Record stores one sample, dropping the oldest once the history is full
func (tt *Tracker) Record(stage string, elapsed time.Duration) {
	tt.mu.Lock()
	if !tt.enabled {
		tt.mu.Unlock()
		return
	}

	samples := append(tt.timings[stage], elapsed)
	if len(samples) > tt.history {
		samples = samples[len(samples)-tt.history:]
	}
	tt.timings[stage] = samples
	tt.mu.Unlock()

	tt.logger.Debug("Timing", "stage completed", map[string]interface{}{
		"stage":    stage,
		"duration": elapsed,
	})
}

func (tt *Tracker) GetTimings(stage string) []time.Duration {
	tt.mu.RLock()
	defer tt.mu.RUnlock()

	timings := tt.timings[stage]
	if timings == nil {
		return nil
	}

	result := make([]time.Duration, len(timings))
	copy(result, timings)
	return result
}

func (tt *Tracker) GetAverageTime(stage string) time.Duration {
	timings := tt.GetTimings(stage)
	if len(timings) == 0 {
		return 0
	}

	var total time.Duration
	for _, duration := range timings {
		total += duration
	}

	return total / time.Duration(len(timings))
}

// Summaries returns one entry per recorded stage, sorted by name
func (tt *Tracker) Summaries() []Summary {
	tt.mu.RLock()
	defer tt.mu.RUnlock()

	result := make([]Summary, 0, len(tt.timings))
	for stage, timings := range tt.timings {
		if len(timings) == 0 {
			continue
		}

		summary := Summary{Stage: stage, Count: len(timings), Last: timings[len(timings)-1]}
		var total time.Duration
		for _, d := range timings {
			total += d
			if d > summary.Max {
				summary.Max = d
			}
		}
		summary.Average = total / time.Duration(len(timings))
		result = append(result, summary)
	}

	sort.Slice(result, func(i, j int) bool { return result[i].Stage < result[j].Stage })
	return result
}

func (tt *Tracker) SetEnabled(enabled bool) {
	tt.mu.Lock()
	defer tt.mu.Unlock()
	tt.enabled = enabled
}

// Reset clears one stage, or everything when stage is empty
func (tt *Tracker) Reset(stage string) {
	tt.mu.Lock()
	defer tt.mu.Unlock()

	if stage == "" {
		tt.timings = make(map[string][]time.Duration)
	} else {
		delete(tt.timings, stage)
	}
}
