package playtomic

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"
)

const (
	defaultLookback    = 90 * 24 * time.Hour
	defaultConcurrency = 8
)

// Level is the most recent level Playtomic reported for a player.
type Level struct {
	PlayerID   string
	Name       string
	Level      float64
	MatchStart int64
}

// LevelLookup reads player levels from the recent matches played at a club.
type LevelLookup struct {
	client      PlaytomicClient
	tenantID    string
	lookback    time.Duration
	concurrency int
	now         func() time.Time
}

// NewLevelLookup creates a lookup over the matches of the Playtomic tenant.
func NewLevelLookup(client PlaytomicClient, tenantID string) *LevelLookup {
	return &LevelLookup{
		client:      client,
		tenantID:    tenantID,
		lookback:    defaultLookback,
		concurrency: defaultConcurrency,
		now:         time.Now,
	}
}

// Levels returns the latest known level of every requested player found in
// the club's matches. Players without a reported level are left out. A match
// that cannot be fetched is skipped.
func (l *LevelLookup) Levels(ctx context.Context, playerIDs []string) (map[string]Level, error) {
	wanted := make(map[string]bool, len(playerIDs))
	for _, id := range playerIDs {
		wanted[id] = true
	}
	levels := make(map[string]Level)
	if len(wanted) == 0 {
		return levels, nil
	}

	summaries, err := l.client.GetMatches(ctx, &SearchMatchesParams{
		SportID:       "PADEL",
		HasPlayers:    true,
		Sort:          "start_date,DESC",
		TenantIDs:     []string{l.tenantID},
		FromStartDate: l.now().Add(-l.lookback).Format("2006-01-02T15:04:05"),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to search matches: %w", err)
	}

	var mu sync.Mutex
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(l.concurrency)
	for _, summary := range summaries {
		g.Go(func() error {
			match, err := l.client.GetSpecificMatch(ctx, summary.MatchID)
			if err != nil {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				log.Warn("Skipping match in level lookup", "matchID", summary.MatchID, "error", err)
				return nil
			}
			mu.Lock()
			defer mu.Unlock()
			for _, team := range match.Teams {
				for _, p := range team.Players {
					if !wanted[p.UserID] || !p.HasLevel {
						continue
					}
					if cur, ok := levels[p.UserID]; ok && cur.MatchStart >= match.Start {
						continue
					}
					levels[p.UserID] = Level{PlayerID: p.UserID, Name: p.Name, Level: p.Level, MatchStart: match.Start}
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	log.Info("Player levels looked up", "matches", len(summaries), "requested", len(wanted), "found", len(levels))
	return levels, nil
}
