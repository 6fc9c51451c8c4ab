package metrics

import "sync"

var (
	_ Metrics      = (*Mock)(nil)
	_ MetricsStore = (*MockStore)(nil)
)

// Mock is a mock implementation of the Metrics interface for testing.
// It is safe for concurrent use.
type Mock struct {
	mu                   sync.Mutex
	drawsGenerated       map[string]int
	resultsRecorded      int
	generationDurations  []float64
	advancementConflicts int
	slackNotifSent       int
	slackNotifFailed     int
	startupTime          float64
}

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{
		drawsGenerated:      make(map[string]int),
		generationDurations: make([]float64, 0),
	}
}

func (m *Mock) IncDrawsGenerated(format string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.drawsGenerated[format]++
}

func (m *Mock) IncResultsRecorded() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.resultsRecorded++
}

func (m *Mock) ObserveDrawGenerationDuration(duration float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.generationDurations = append(m.generationDurations, duration)
}

func (m *Mock) IncAdvancementConflicts() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.advancementConflicts++
}

func (m *Mock) IncSlackNotifSent() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.slackNotifSent++
}

func (m *Mock) IncSlackNotifFailed() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.slackNotifFailed++
}

func (m *Mock) SetStartupTime(duration float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.startupTime = duration
}

// DrawsGenerated returns how often IncDrawsGenerated was called for format.
func (m *Mock) DrawsGenerated(format string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.drawsGenerated[format]
}

// ResultsRecorded returns the number of times IncResultsRecorded was called.
func (m *Mock) ResultsRecorded() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.resultsRecorded
}

// GenerationDurations returns every observed draw generation duration.
func (m *Mock) GenerationDurations() []float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]float64(nil), m.generationDurations...)
}

// AdvancementConflicts returns the number of times IncAdvancementConflicts was called.
func (m *Mock) AdvancementConflicts() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.advancementConflicts
}

// SlackNotifSent returns the number of times IncSlackNotifSent was called.
func (m *Mock) SlackNotifSent() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.slackNotifSent
}

// SlackNotifFailed returns the number of times IncSlackNotifFailed was called.
func (m *Mock) SlackNotifFailed() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.slackNotifFailed
}

// MockStore is an in-memory MetricsStore.
type MockStore struct {
	mu     sync.Mutex
	values map[string]int
}

func NewMockStore() *MockStore {
	return &MockStore{values: make(map[string]int)}
}

func (m *MockStore) Increment(key string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key]++
}

func (m *MockStore) GetAll() (map[string]int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make(map[string]int, len(m.values))
	for k, v := range m.values {
		out[k] = v
	}
	return out, nil
}
