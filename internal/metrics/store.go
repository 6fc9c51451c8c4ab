package metrics

import (
	"database/sql"
	"sync"

	"github.com/charmbracelet/log"
)

var _ MetricsStore = (*store)(nil)

// store persists activity totals in the activity_totals table.
type store struct {
	db *sql.DB
	mu sync.Mutex
}

// New creates a new metrics Store.
func New(db *sql.DB) MetricsStore {
	return &store{db: db}
}

// Increment bumps the total for key, creating it at 1.
func (s *store) Increment(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(`
		INSERT INTO activity_totals (key, value) VALUES (?, 1)
		ON CONFLICT(key) DO UPDATE SET value = value + 1`, key)
	if err != nil {
		log.Error("Failed to increment activity total", "error", err, "key", key)
		return
	}
	log.Debug("Incremented activity total", "key", key)
}

// GetAll returns every stored total.
func (s *store) GetAll() (map[string]int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.db.Query("SELECT key, value FROM activity_totals")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	totals := make(map[string]int)
	for rows.Next() {
		var key string
		var value int
		if err := rows.Scan(&key, &value); err != nil {
			return nil, err
		}
		totals[key] = value
	}
	return totals, rows.Err()
}
