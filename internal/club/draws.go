package club

import (
	"bytes"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/padel-draw/internal/tournament"
	"github.com/vmihailenco/msgpack/v5"
)

// SaveDraw stores the first version of a tournament's draw and closes its
// registration.
func (s *store) SaveDraw(d tournament.Draw) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	blob, err := encodeDraw(d)
	if err != nil {
		return err
	}

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	t, err := s.getTournament(tx, d.TournamentID)
	if err != nil {
		return err
	}
	var exists int
	err = tx.QueryRow("SELECT 1 FROM draws WHERE tournament_id = ?", d.TournamentID).Scan(&exists)
	switch {
	case err == nil:
		return fmt.Errorf("%w: %s", ErrDrawExists, d.TournamentID)
	case !errors.Is(err, sql.ErrNoRows):
		return err
	}

	if _, err := tx.Exec(`
		INSERT INTO draws (tournament_id, format, data, version, updated_at) VALUES (?, ?, ?, 1, ?)`,
		d.TournamentID, d.Format, blob, time.Now().Unix()); err != nil {
		return fmt.Errorf("failed to insert draw for %s: %w", d.TournamentID, err)
	}
	if _, err := tx.Exec("UPDATE tournaments SET status = ? WHERE id = ?", StatusDrawn, t.ID); err != nil {
		return err
	}
	return tx.Commit()
}

// GetDraw returns the current draw of a tournament.
func (s *store) GetDraw(tournamentID string) (*StoredDraw, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var blob []byte
	var sd StoredDraw
	err := s.db.QueryRow("SELECT data, version, updated_at FROM draws WHERE tournament_id = ?", tournamentID).
		Scan(&blob, &sd.Version, &sd.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrDrawNotFound, tournamentID)
	}
	if err != nil {
		return nil, err
	}
	if sd.Draw, err = decodeDraw(blob); err != nil {
		return nil, err
	}
	return &sd, nil
}

// UpdateDraw reads the draw, applies fn and writes the result back as the
// next version. Updates of one tournament are serialized; a write that finds
// the version moved on fails with ErrConcurrentUpdate and nothing is stored.
// An error from fn is returned unchanged.
func (s *store) UpdateDraw(tournamentID string, fn func(tournament.Draw) (tournament.Draw, error)) (*StoredDraw, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	var blob []byte
	var version int
	err = tx.QueryRow("SELECT data, version FROM draws WHERE tournament_id = ?", tournamentID).Scan(&blob, &version)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrDrawNotFound, tournamentID)
	}
	if err != nil {
		return nil, err
	}
	current, err := decodeDraw(blob)
	if err != nil {
		return nil, err
	}

	next, err := fn(current)
	if err != nil {
		return nil, err
	}
	if blob, err = encodeDraw(next); err != nil {
		return nil, err
	}

	now := time.Now().Unix()
	res, err := tx.Exec(`
		UPDATE draws SET data = ?, version = version + 1, updated_at = ?
		WHERE tournament_id = ? AND version = ?`, blob, now, tournamentID, version)
	if err != nil {
		return nil, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, fmt.Errorf("%w: %s at version %d", ErrConcurrentUpdate, tournamentID, version)
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}

	log.Debug("Draw updated", "tournamentID", tournamentID, "version", version+1)
	return &StoredDraw{Draw: next, Version: version + 1, UpdatedAt: now}, nil
}

// Draws are stored as msgpack using the json field names.
func encodeDraw(d tournament.Draw) ([]byte, error) {
	var buf bytes.Buffer
	enc := msgpack.NewEncoder(&buf)
	enc.SetCustomStructTag("json")
	if err := enc.Encode(d); err != nil {
		return nil, fmt.Errorf("failed to encode draw %s: %w", d.TournamentID, err)
	}
	return buf.Bytes(), nil
}

func decodeDraw(blob []byte) (tournament.Draw, error) {
	var d tournament.Draw
	dec := msgpack.NewDecoder(bytes.NewReader(blob))
	dec.SetCustomStructTag("json")
	if err := dec.Decode(&d); err != nil {
		return d, fmt.Errorf("failed to decode draw: %w", err)
	}
	return d, nil
}
