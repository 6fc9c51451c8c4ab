package notifier

import (
	"sync"

	"github.com/mauv0809/padel-draw/internal/club"
	"github.com/mauv0809/padel-draw/internal/tournament"
)

var _ Notifier = (*Mock)(nil)

// Mock is a mock implementation of the Notifier interface for testing.
// It is safe for concurrent use.
type Mock struct {
	mu sync.Mutex

	// Spies
	SendDrawPublishedFunc func(t *club.Tournament, d tournament.Draw, names Names, dryRun bool) error
	SendMatchResultFunc   func(t *club.Tournament, m tournament.Match, names Names, dryRun bool) error
	SendChampionFunc      func(t *club.Tournament, championID string, names Names, dryRun bool) error

	// Call records
	SendDrawPublishedCalls []struct {
		Tournament *club.Tournament
		Draw       tournament.Draw
		DryRun     bool
	}
	SendMatchResultCalls []struct {
		Tournament *club.Tournament
		Match      tournament.Match
		DryRun     bool
	}
	SendChampionCalls []struct {
		Tournament *club.Tournament
		ChampionID string
		DryRun     bool
	}
	FormatStandingsCalls []struct {
		ZoneID string
		Table  []tournament.Standing
	}
	FormatReadyMatchesCalls [][]tournament.Match
}

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{}
}

// Reset clears all call records.
func (m *Mock) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendDrawPublishedCalls = nil
	m.SendMatchResultCalls = nil
	m.SendChampionCalls = nil
	m.FormatStandingsCalls = nil
	m.FormatReadyMatchesCalls = nil
}

func (m *Mock) SendDrawPublished(t *club.Tournament, d tournament.Draw, names Names, dryRun bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendDrawPublishedCalls = append(m.SendDrawPublishedCalls, struct {
		Tournament *club.Tournament
		Draw       tournament.Draw
		DryRun     bool
	}{t, d, dryRun})
	if m.SendDrawPublishedFunc != nil {
		return m.SendDrawPublishedFunc(t, d, names, dryRun)
	}
	return nil
}

func (m *Mock) SendMatchResult(t *club.Tournament, match tournament.Match, names Names, dryRun bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendMatchResultCalls = append(m.SendMatchResultCalls, struct {
		Tournament *club.Tournament
		Match      tournament.Match
		DryRun     bool
	}{t, match, dryRun})
	if m.SendMatchResultFunc != nil {
		return m.SendMatchResultFunc(t, match, names, dryRun)
	}
	return nil
}

func (m *Mock) SendChampion(t *club.Tournament, championID string, names Names, dryRun bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendChampionCalls = append(m.SendChampionCalls, struct {
		Tournament *club.Tournament
		ChampionID string
		DryRun     bool
	}{t, championID, dryRun})
	if m.SendChampionFunc != nil {
		return m.SendChampionFunc(t, championID, names, dryRun)
	}
	return nil
}

func (m *Mock) FormatStandingsResponse(t *club.Tournament, zoneID string, table []tournament.Standing, names Names) (any, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.FormatStandingsCalls = append(m.FormatStandingsCalls, struct {
		ZoneID string
		Table  []tournament.Standing
	}{zoneID, table})
	return map[string]any{"zone": zoneID, "rows": len(table)}, nil
}

func (m *Mock) FormatReadyMatchesResponse(t *club.Tournament, matches []tournament.Match, names Names) (any, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.FormatReadyMatchesCalls = append(m.FormatReadyMatchesCalls, matches)
	return map[string]any{"matches": len(matches)}, nil
}
