package observability

import (
	"strconv"
	"sync"
	"time"
)

// Metrics provides basic in-memory counters for stage execution, run
// outcomes, and HTTP traffic.
type Metrics struct {
	mu            sync.Mutex
	stageSuccess  map[string]int64
	stageFailure  map[string]int64
	stageDuration map[string]time.Duration
	runCount      map[string]int64
	requestCount  map[string]int64
	errorCount    map[string]int64
}

// NewMetrics initializes metrics storage.
func NewMetrics() *Metrics {
	return &Metrics{
		stageSuccess:  make(map[string]int64),
		stageFailure:  make(map[string]int64),
		stageDuration: make(map[string]time.Duration),
		runCount:      make(map[string]int64),
		requestCount:  make(map[string]int64),
		errorCount:    make(map[string]int64),
	}
}

// RecordStage increments stage counters and accumulates duration.
func (m *Metrics) RecordStage(stage string, success bool, duration time.Duration) {
	if m == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if success {
		m.stageSuccess[stage]++
	} else {
		m.stageFailure[stage]++
	}
	m.stageDuration[stage] += duration
}

// RecordRun increments the per-status run counter.
func (m *Metrics) RecordRun(status string) {
	if m == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.runCount[status]++
}

// StageCounts returns a copy of the success/failure counters for a stage.
func (m *Metrics) StageCounts(stage string) (success, failure int64) {
	if m == nil {
		return 0, 0
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.stageSuccess[stage], m.stageFailure[stage]
}

// RunCount returns the run counter for the given terminal status.
func (m *Metrics) RunCount(status string) int64 {
	if m == nil {
		return 0
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.runCount[status]
}

// RecordRequest increments counters for HTTP requests.
func (m *Metrics) RecordRequest(path, method string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	key := pathKey(path, method, status)
	m.mu.Lock()
	defer m.mu.Unlock()
	m.requestCount[key]++
}

// RecordError increments HTTP error counters.
func (m *Metrics) RecordError(path, method, code string) {
	if m == nil {
		return
	}
	key := path + "|" + method + "|" + code
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errorCount[key]++
}

func pathKey(path, method string, status int) string {
	return path + "|" + method + "|" + strconv.Itoa(status)
}
