package club

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/padel-draw/internal/tournament"
)

var _ ClubStore = (*store)(nil)

// New creates a new ClubStore.
func New(db *sql.DB) ClubStore {
	return &store{
		db: db,
	}
}

// CreateTournament inserts a tournament in the REGISTRATION state. CreatedAt
// and Status are filled in when unset.
func (s *store) CreateTournament(t *Tournament) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if t.Status == "" {
		t.Status = StatusRegistration
	}
	if t.CreatedAt == 0 {
		t.CreatedAt = time.Now().Unix()
	}
	configJSON, err := json.Marshal(t.Config)
	if err != nil {
		return err
	}

	_, err = s.db.Exec(`
		INSERT INTO tournaments (id, club_id, name, category, status, config_json, slack_channel, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		t.ID, t.ClubID, t.Name, t.Category, t.Status, string(configJSON), t.SlackChannel, t.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert tournament %s: %w", t.ID, err)
	}
	log.Debug("Tournament created", "tournamentID", t.ID, "clubID", t.ClubID)
	return nil
}

// GetTournament returns the tournament or ErrTournamentNotFound.
func (s *store) GetTournament(tournamentID string) (*Tournament, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.getTournament(s.db, tournamentID)
}

func (s *store) getTournament(q querier, tournamentID string) (*Tournament, error) {
	row := q.QueryRow(`
		SELECT id, club_id, name, category, status, config_json, slack_channel, created_at
		FROM tournaments WHERE id = ?`, tournamentID)
	t, err := scanTournament(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrTournamentNotFound, tournamentID)
	}
	return t, err
}

// ListTournaments returns the tournaments of a club, newest first. An empty
// clubID or status matches every club or status.
func (s *store) ListTournaments(clubID string, status TournamentStatus) ([]Tournament, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := `SELECT id, club_id, name, category, status, config_json, slack_channel, created_at FROM tournaments`
	var where []string
	var args []any
	if clubID != "" {
		where = append(where, "club_id = ?")
		args = append(args, clubID)
	}
	if status != "" {
		where = append(where, "status = ?")
		args = append(args, status)
	}
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY created_at DESC, id"

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tournaments []Tournament
	for rows.Next() {
		t, err := scanTournament(rows)
		if err != nil {
			log.Error("Failed to scan tournament row", "error", err)
			continue
		}
		tournaments = append(tournaments, *t)
	}
	return tournaments, rows.Err()
}

// UpdateTournamentStatus moves a tournament to a new state.
func (s *store) UpdateTournamentStatus(tournamentID string, status TournamentStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.Exec("UPDATE tournaments SET status = ? WHERE id = ?", status, tournamentID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%w: %s", ErrTournamentNotFound, tournamentID)
	}
	return nil
}

// RegisterCouple adds a couple to a tournament that is still open. Each
// player may only be in one couple per tournament and category.
func (s *store) RegisterCouple(tournamentID string, c tournament.Couple) error {
	if c.Player1ID == "" || c.Player2ID == "" || c.Player1ID == c.Player2ID {
		return ErrInvalidCouple
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	t, err := s.getTournament(tx, tournamentID)
	if err != nil {
		return err
	}
	if t.Status != StatusRegistration {
		return fmt.Errorf("%w: tournament %s is %s", ErrRegistrationClosed, tournamentID, t.Status)
	}
	// A tournament draws a single category.
	if c.Category == "" {
		c.Category = t.Category
	}
	if c.Category != t.Category {
		return fmt.Errorf("%w: category %q does not match tournament category %q", ErrInvalidCouple, c.Category, t.Category)
	}
	if c.RegisteredAt.IsZero() {
		c.RegisteredAt = time.Now().UTC()
	}

	var existing string
	err = tx.QueryRow(`
		SELECT player_id FROM tournament_players
		WHERE tournament_id = ? AND category = ? AND player_id IN (?, ?)
		LIMIT 1`, tournamentID, c.Category, c.Player1ID, c.Player2ID).Scan(&existing)
	switch {
	case err == nil:
		return fmt.Errorf("%w: %s", ErrPlayerAlreadyRegistered, existing)
	case !errors.Is(err, sql.ErrNoRows):
		return err
	}

	var seed sql.NullInt64
	if c.Seed != nil {
		seed = sql.NullInt64{Int64: int64(*c.Seed), Valid: true}
	}
	if _, err := tx.Exec(`
		INSERT INTO couples (id, tournament_id, player1_id, player2_id, name, seed, category, registered_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		c.ID, tournamentID, c.Player1ID, c.Player2ID, c.Name, seed, c.Category, c.RegisteredAt.UnixNano()); err != nil {
		return fmt.Errorf("failed to insert couple %s: %w", c.ID, err)
	}

	stmt, err := tx.Prepare(`INSERT INTO tournament_players (tournament_id, category, player_id, couple_id) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()
	for _, playerID := range []string{c.Player1ID, c.Player2ID} {
		if _, err := stmt.Exec(tournamentID, c.Category, playerID, c.ID); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	log.Debug("Couple registered", "tournamentID", tournamentID, "coupleID", c.ID, "category", c.Category)
	return nil
}

// GetCouples returns the couples of a tournament in registration order.
func (s *store) GetCouples(tournamentID string) ([]tournament.Couple, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`
		SELECT id, player1_id, player2_id, name, seed, category, registered_at
		FROM couples WHERE tournament_id = ?
		ORDER BY registered_at, id`, tournamentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	couples := []tournament.Couple{}
	for rows.Next() {
		c, err := scanCouple(rows)
		if err != nil {
			return nil, err
		}
		couples = append(couples, c)
	}
	return couples, rows.Err()
}

// GetRegistrations returns every couple the player belongs to.
func (s *store) GetRegistrations(playerID string) ([]Registration, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`
		SELECT c.tournament_id, c.id, c.player1_id, c.player2_id, c.name, c.seed, c.category, c.registered_at
		FROM couples c
		JOIN tournament_players tp ON tp.couple_id = c.id
		WHERE tp.player_id = ?
		ORDER BY c.registered_at DESC`, playerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var regs []Registration
	for rows.Next() {
		var r Registration
		var seed sql.NullInt64
		var registeredAt int64
		if err := rows.Scan(&r.TournamentID, &r.Couple.ID, &r.Couple.Player1ID, &r.Couple.Player2ID,
			&r.Couple.Name, &seed, &r.Couple.Category, &registeredAt); err != nil {
			return nil, err
		}
		r.Couple.Seed = seedPtr(seed)
		r.Couple.RegisteredAt = time.Unix(0, registeredAt).UTC()
		regs = append(regs, r)
	}
	return regs, rows.Err()
}

// SetSeeds replaces every seed of the tournament: couples listed in seeds
// get that rank, all others become unseeded.
func (s *store) SetSeeds(tournamentID string, seeds map[string]int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	t, err := s.getTournament(tx, tournamentID)
	if err != nil {
		return err
	}
	if t.Status != StatusRegistration {
		return fmt.Errorf("%w: tournament %s is %s", ErrRegistrationClosed, tournamentID, t.Status)
	}
	if _, err := tx.Exec("UPDATE couples SET seed = NULL WHERE tournament_id = ?", tournamentID); err != nil {
		return err
	}
	stmt, err := tx.Prepare("UPDATE couples SET seed = ? WHERE tournament_id = ? AND id = ?")
	if err != nil {
		return err
	}
	defer stmt.Close()
	for coupleID, rank := range seeds {
		if _, err := stmt.Exec(rank, tournamentID, coupleID); err != nil {
			return err
		}
	}
	return tx.Commit()
}

type querier interface {
	QueryRow(query string, args ...any) *sql.Row
}

// scanTournament is a helper function to scan a single tournament row.
func scanTournament(scanner interface{ Scan(...any) error }) (*Tournament, error) {
	var t Tournament
	var configJSON string
	if err := scanner.Scan(&t.ID, &t.ClubID, &t.Name, &t.Category, &t.Status, &configJSON, &t.SlackChannel, &t.CreatedAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(configJSON), &t.Config); err != nil {
		log.Error("Failed to unmarshal config_json", "error", err, "tournamentID", t.ID)
		t.Config = tournament.DefaultConfig()
	}
	return &t, nil
}

func scanCouple(scanner interface{ Scan(...any) error }) (tournament.Couple, error) {
	var c tournament.Couple
	var seed sql.NullInt64
	var registeredAt int64
	if err := scanner.Scan(&c.ID, &c.Player1ID, &c.Player2ID, &c.Name, &seed, &c.Category, &registeredAt); err != nil {
		return c, err
	}
	c.Seed = seedPtr(seed)
	c.RegisteredAt = time.Unix(0, registeredAt).UTC()
	return c, nil
}

func seedPtr(v sql.NullInt64) *int {
	if !v.Valid {
		return nil
	}
	n := int(v.Int64)
	return &n
}

// ToAnySlice converts a typed slice into query arguments.
func ToAnySlice[T any](s []T) []any {
	out := make([]any, len(s))
	for i, v := range s {
		out[i] = v
	}
	return out
}
