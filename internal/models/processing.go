package models

import (
	"sync"
	"time"
)

// Status is the coarse state of the recompute controller
type Status int

const (
	// StatusIdle means no image is loaded
	StatusIdle Status = iota
	// StatusReady means an image is loaded and the last render is displayed
	StatusReady
	// StatusProcessing covers the debounce window and the pipeline run
	StatusProcessing
)

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusReady:
		return "ready"
	case StatusProcessing:
		return "processing"
	default:
		return "unknown"
	}
}

// ProcessingState represents the current state of image processing
type ProcessingState struct {
	Status       Status
	CurrentStage string
	Progress     float64
	StartTime    time.Time
	LastDuration time.Duration
	Renders      int
}

// IsProcessing reports whether a recompute is pending or running
func (ps ProcessingState) IsProcessing() bool {
	return ps.Status == StatusProcessing
}

// ProcessingStateRepository manages processing state
type ProcessingStateRepository struct {
	mu    sync.RWMutex
	state ProcessingState
}

// NewProcessingStateRepository starts idle
func NewProcessingStateRepository() *ProcessingStateRepository {
	return &ProcessingStateRepository{
		state: ProcessingState{Status: StatusIdle},
	}
}

// GetState returns the current processing state
func (psr *ProcessingStateRepository) GetState() ProcessingState {
	psr.mu.RLock()
	defer psr.mu.RUnlock()
	return psr.state
}

// MarkReady moves to ready once an image is present
func (psr *ProcessingStateRepository) MarkReady() {
	psr.mu.Lock()
	defer psr.mu.Unlock()

	psr.state.Status = StatusReady
	psr.state.CurrentStage = ""
	psr.state.Progress = 0
}

// StartProcessing marks a recompute as requested. Repeated calls keep the
// original start time so the flag spans the whole debounce window.
func (psr *ProcessingStateRepository) StartProcessing() {
	psr.mu.Lock()
	defer psr.mu.Unlock()

	if psr.state.Status != StatusProcessing {
		psr.state.StartTime = time.Now()
	}
	psr.state.Status = StatusProcessing
	psr.state.CurrentStage = "Pending"
	psr.state.Progress = 0
}

// UpdateProgress updates processing progress and stage
func (psr *ProcessingStateRepository) UpdateProgress(stage string, progress float64) {
	psr.mu.Lock()
	defer psr.mu.Unlock()

	if psr.state.Status == StatusProcessing {
		psr.state.CurrentStage = stage
		psr.state.Progress = progress
	}
}

// CompleteProcessing returns to ready and records the pipeline duration
func (psr *ProcessingStateRepository) CompleteProcessing(duration time.Duration) {
	psr.mu.Lock()
	defer psr.mu.Unlock()

	psr.state.Status = StatusReady
	psr.state.CurrentStage = "Complete"
	psr.state.Progress = 1.0
	psr.state.LastDuration = duration
	psr.state.Renders++
}

// CancelProcessing drops back to ready without recording a render
func (psr *ProcessingStateRepository) CancelProcessing() {
	psr.mu.Lock()
	defer psr.mu.Unlock()

	if psr.state.Status == StatusProcessing {
		psr.state.Status = StatusReady
		psr.state.CurrentStage = "Cancelled"
	}
}

// IsProcessing returns true if a recompute is pending or running
func (psr *ProcessingStateRepository) IsProcessing() bool {
	psr.mu.RLock()
	defer psr.mu.RUnlock()
	return psr.state.Status == StatusProcessing
}
