package live

import "sync"

// Mock records broadcasts for tests.
type Mock struct {
	mu    sync.Mutex
	calls []MockBroadcast
}

// MockBroadcast is one recorded Broadcast call.
type MockBroadcast struct {
	TournamentID string
	Message      Message
}

func NewMock() *Mock {
	return &Mock{}
}

func (m *Mock) Broadcast(tournamentID string, msg Message) {
	m.mu.Lock()
	defer m.mu.Unlock()
	msg.TournamentID = tournamentID
	m.calls = append(m.calls, MockBroadcast{TournamentID: tournamentID, Message: msg})
}

// Calls returns a copy of the recorded broadcasts.
func (m *Mock) Calls() []MockBroadcast {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]MockBroadcast(nil), m.calls...)
}

// Types returns the message types broadcast so far, in order.
func (m *Mock) Types() []MessageType {
	m.mu.Lock()
	defer m.mu.Unlock()
	types := make([]MessageType, 0, len(m.calls))
	for _, c := range m.calls {
		types = append(types, c.Message.Type)
	}
	return types
}
