package club

import (
	"sync"

	"github.com/mauv0809/padel-draw/internal/tournament"
)

var _ ClubStore = (*MockStore)(nil)

// MockStore is a mock implementation of the ClubStore interface for testing.
// It is safe for concurrent use.
type MockStore struct {
	mu sync.Mutex

	// Spies for method calls
	CreateTournamentFunc       func(t *Tournament) error
	GetTournamentFunc          func(tournamentID string) (*Tournament, error)
	ListTournamentsFunc        func(clubID string, status TournamentStatus) ([]Tournament, error)
	UpdateTournamentStatusFunc func(tournamentID string, status TournamentStatus) error
	RegisterCoupleFunc         func(tournamentID string, couple tournament.Couple) error
	GetCouplesFunc             func(tournamentID string) ([]tournament.Couple, error)
	GetRegistrationsFunc       func(playerID string) ([]Registration, error)
	SetSeedsFunc               func(tournamentID string, seeds map[string]int) error
	SaveDrawFunc               func(d tournament.Draw) error
	GetDrawFunc                func(tournamentID string) (*StoredDraw, error)
	UpdateDrawFunc             func(tournamentID string, fn func(tournament.Draw) (tournament.Draw, error)) (*StoredDraw, error)
	UpsertPlayerLevelsFunc     func(levels []PlayerLevel) error
	GetPlayerLevelsFunc        func(playerIDs []string) (map[string]float64, error)

	// Call records
	CreateTournamentCalls       []*Tournament
	UpdateTournamentStatusCalls []struct {
		TournamentID string
		Status       TournamentStatus
	}
	RegisterCoupleCalls []struct {
		TournamentID string
		Couple       tournament.Couple
	}
	SetSeedsCalls []struct {
		TournamentID string
		Seeds        map[string]int
	}
	SaveDrawCalls           []tournament.Draw
	UpdateDrawCalls         []string
	UpsertPlayerLevelsCalls [][]PlayerLevel
}

// NewMock creates a new mock instance.
func NewMock() *MockStore {
	return &MockStore{}
}

// Reset clears all call records.
func (m *MockStore) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CreateTournamentCalls = nil
	m.UpdateTournamentStatusCalls = nil
	m.RegisterCoupleCalls = nil
	m.SetSeedsCalls = nil
	m.SaveDrawCalls = nil
	m.UpdateDrawCalls = nil
	m.UpsertPlayerLevelsCalls = nil
}

func (m *MockStore) CreateTournament(t *Tournament) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CreateTournamentCalls = append(m.CreateTournamentCalls, t)
	if m.CreateTournamentFunc != nil {
		return m.CreateTournamentFunc(t)
	}
	return nil
}

func (m *MockStore) GetTournament(tournamentID string) (*Tournament, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetTournamentFunc != nil {
		return m.GetTournamentFunc(tournamentID)
	}
	return nil, ErrTournamentNotFound
}

func (m *MockStore) ListTournaments(clubID string, status TournamentStatus) ([]Tournament, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ListTournamentsFunc != nil {
		return m.ListTournamentsFunc(clubID, status)
	}
	return nil, nil
}

func (m *MockStore) UpdateTournamentStatus(tournamentID string, status TournamentStatus) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.UpdateTournamentStatusCalls = append(m.UpdateTournamentStatusCalls, struct {
		TournamentID string
		Status       TournamentStatus
	}{tournamentID, status})
	if m.UpdateTournamentStatusFunc != nil {
		return m.UpdateTournamentStatusFunc(tournamentID, status)
	}
	return nil
}

func (m *MockStore) RegisterCouple(tournamentID string, couple tournament.Couple) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.RegisterCoupleCalls = append(m.RegisterCoupleCalls, struct {
		TournamentID string
		Couple       tournament.Couple
	}{tournamentID, couple})
	if m.RegisterCoupleFunc != nil {
		return m.RegisterCoupleFunc(tournamentID, couple)
	}
	return nil
}

func (m *MockStore) GetCouples(tournamentID string) ([]tournament.Couple, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetCouplesFunc != nil {
		return m.GetCouplesFunc(tournamentID)
	}
	return nil, nil
}

func (m *MockStore) GetRegistrations(playerID string) ([]Registration, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetRegistrationsFunc != nil {
		return m.GetRegistrationsFunc(playerID)
	}
	return nil, nil
}

func (m *MockStore) SetSeeds(tournamentID string, seeds map[string]int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SetSeedsCalls = append(m.SetSeedsCalls, struct {
		TournamentID string
		Seeds        map[string]int
	}{tournamentID, seeds})
	if m.SetSeedsFunc != nil {
		return m.SetSeedsFunc(tournamentID, seeds)
	}
	return nil
}

func (m *MockStore) SaveDraw(d tournament.Draw) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SaveDrawCalls = append(m.SaveDrawCalls, d)
	if m.SaveDrawFunc != nil {
		return m.SaveDrawFunc(d)
	}
	return nil
}

func (m *MockStore) GetDraw(tournamentID string) (*StoredDraw, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetDrawFunc != nil {
		return m.GetDrawFunc(tournamentID)
	}
	return nil, ErrDrawNotFound
}

// UpdateDraw records the call and runs UpdateDrawFunc without holding the
// mock lock, so the hook may call back into the mock.
func (m *MockStore) UpdateDraw(tournamentID string, fn func(tournament.Draw) (tournament.Draw, error)) (*StoredDraw, error) {
	m.mu.Lock()
	m.UpdateDrawCalls = append(m.UpdateDrawCalls, tournamentID)
	hook := m.UpdateDrawFunc
	m.mu.Unlock()
	if hook != nil {
		return hook(tournamentID, fn)
	}
	return nil, ErrDrawNotFound
}

func (m *MockStore) UpsertPlayerLevels(levels []PlayerLevel) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.UpsertPlayerLevelsCalls = append(m.UpsertPlayerLevelsCalls, levels)
	if m.UpsertPlayerLevelsFunc != nil {
		return m.UpsertPlayerLevelsFunc(levels)
	}
	return nil
}

func (m *MockStore) GetPlayerLevels(playerIDs []string) (map[string]float64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetPlayerLevelsFunc != nil {
		return m.GetPlayerLevelsFunc(playerIDs)
	}
	return map[string]float64{}, nil
}
