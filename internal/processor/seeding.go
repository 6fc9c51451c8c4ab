package processor

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/padel-draw/internal/club"
	"github.com/mauv0809/padel-draw/internal/seeding"
)

// AutoSeed ranks the registered couples by the combined level of their
// players and stores the seeds. Fresh levels come from the level source when
// one is configured; stored levels fill the gaps.
func (p *Processor) AutoSeed(ctx context.Context, tournamentID string, dryRun bool) (map[string]int, error) {
	t, err := p.store.GetTournament(tournamentID)
	if err != nil {
		return nil, err
	}
	if t.Status != club.StatusRegistration {
		return nil, fmt.Errorf("%w: tournament %s is %s", club.ErrRegistrationClosed, tournamentID, t.Status)
	}
	couples, err := p.store.GetCouples(tournamentID)
	if err != nil {
		return nil, fmt.Errorf("failed to load couples: %w", err)
	}

	playerIDs := make([]string, 0, 2*len(couples))
	for _, c := range couples {
		playerIDs = append(playerIDs, c.Player1ID, c.Player2ID)
	}

	levels, err := p.store.GetPlayerLevels(playerIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to load player levels: %w", err)
	}
	if p.levels != nil {
		fresh, err := p.levels.Levels(ctx, playerIDs)
		if err != nil {
			log.Warn("Level lookup failed, using stored levels", "tournamentID", tournamentID, "error", err)
		}
		updates := make([]club.PlayerLevel, 0, len(fresh))
		for id, l := range fresh {
			levels[id] = l.Level
			updates = append(updates, club.PlayerLevel{PlayerID: id, Name: l.Name, Level: l.Level, UpdatedAt: time.Now().Unix()})
		}
		if len(updates) > 0 && !dryRun {
			if err := p.store.UpsertPlayerLevels(updates); err != nil {
				log.Error("Failed to store player levels", "error", err)
			}
		}
	}

	seeds := make(map[string]int)
	for _, c := range seeding.RankByLevel(couples, levels) {
		if c.Seed != nil {
			seeds[c.ID] = *c.Seed
		}
	}
	if dryRun {
		log.Info("[Dry Run] Would store seeds", "tournamentID", tournamentID, "seeded", len(seeds), "couples", len(couples))
		return seeds, nil
	}
	if err := p.store.SetSeeds(tournamentID, seeds); err != nil {
		return nil, err
	}
	log.Info("Couples seeded by level", "tournamentID", tournamentID, "seeded", len(seeds), "couples", len(couples))
	return seeds, nil
}
