package club

import (
	"strings"
	"time"

	"github.com/charmbracelet/log"
)

// UpsertPlayerLevels stores the latest known level of each player.
func (s *store) UpsertPlayerLevels(levels []PlayerLevel) error {
	if len(levels) == 0 {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT INTO player_levels (player_id, name, level, updated_at) VALUES (?, ?, ?, ?)
		ON CONFLICT(player_id) DO UPDATE SET
			name = CASE WHEN excluded.name != '' THEN excluded.name ELSE player_levels.name END,
			level = excluded.level,
			updated_at = excluded.updated_at`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	now := time.Now().Unix()
	for _, l := range levels {
		updatedAt := l.UpdatedAt
		if updatedAt == 0 {
			updatedAt = now
		}
		if _, err := stmt.Exec(l.PlayerID, l.Name, l.Level, updatedAt); err != nil {
			return err
		}
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	log.Debug("Player levels stored", "count", len(levels))
	return nil
}

// GetPlayerLevels returns the stored level of every known player in playerIDs.
func (s *store) GetPlayerLevels(playerIDs []string) (map[string]float64, error) {
	levels := make(map[string]float64)
	if len(playerIDs) == 0 {
		return levels, nil
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(playerIDs)), ",")
	rows, err := s.db.Query("SELECT player_id, level FROM player_levels WHERE player_id IN ("+placeholders+")", ToAnySlice(playerIDs)...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var id string
		var level float64
		if err := rows.Scan(&id, &level); err != nil {
			return nil, err
		}
		levels[id] = level
	}
	return levels, rows.Err()
}
