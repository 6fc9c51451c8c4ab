package processor

import (
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/padel-draw/internal/club"
	"github.com/mauv0809/padel-draw/internal/draw"
	"github.com/mauv0809/padel-draw/internal/live"
	"github.com/mauv0809/padel-draw/internal/metrics"
	"github.com/mauv0809/padel-draw/internal/pubsub"
	"github.com/mauv0809/padel-draw/internal/tournament"
)

// GenerateDraw builds the draw from the registered couples, stores it and
// closes registration.
func (p *Processor) GenerateDraw(tournamentID string, dryRun bool) (tournament.Draw, error) {
	t, err := p.store.GetTournament(tournamentID)
	if err != nil {
		return tournament.Draw{}, err
	}
	couples, err := p.store.GetCouples(tournamentID)
	if err != nil {
		return tournament.Draw{}, fmt.Errorf("failed to load couples: %w", err)
	}

	start := time.Now()
	d, err := draw.Generate(t.ID, couples, t.Config, p.newRand())
	p.metrics.ObserveDrawGenerationDuration(time.Since(start).Seconds())
	if err != nil {
		log.Warn("Draw rejected", "tournamentID", tournamentID, "error", err)
		return tournament.Draw{}, err
	}

	if dryRun {
		log.Info("[Dry Run] Would save draw", "tournamentID", tournamentID, "format", d.Format)
		return d, nil
	}
	if err := p.store.SaveDraw(d); err != nil {
		return tournament.Draw{}, err
	}
	p.metrics.IncDrawsGenerated(string(d.Format))
	p.totals.Increment(metrics.KeyDrawsGenerated)

	phase := tournament.PhaseElimination
	if d.Format == tournament.FormatZones {
		phase = tournament.PhaseZone
	}
	p.publish(pubsub.EventDrawGenerated, pubsub.DrawGenerated{
		TournamentID: tournamentID,
		Format:       d.Format,
		Phase:        phase,
		Version:      1,
	}, dryRun)
	p.broadcast(tournamentID, live.MessageDrawGenerated, d, dryRun)
	return d, nil
}

// GetDraw returns the stored draw and its version.
func (p *Processor) GetDraw(tournamentID string) (*club.StoredDraw, error) {
	return p.store.GetDraw(tournamentID)
}

// BuildKnockout seeds the cross-zone elimination once every zone is done.
func (p *Processor) BuildKnockout(tournamentID string, dryRun bool) (tournament.Draw, error) {
	t, err := p.store.GetTournament(tournamentID)
	if err != nil {
		return tournament.Draw{}, err
	}
	build := func(d tournament.Draw) (tournament.Draw, error) {
		return draw.Knockout(d, t.Config, lotRand(tournamentID))
	}

	if dryRun {
		stored, err := p.store.GetDraw(tournamentID)
		if err != nil {
			return tournament.Draw{}, err
		}
		d, err := build(stored.Draw)
		if err != nil {
			return tournament.Draw{}, err
		}
		log.Info("[Dry Run] Would save knockout", "tournamentID", tournamentID, "size", d.Knockout.Size)
		return d, nil
	}

	stored, err := p.updateDraw(tournamentID, build)
	if err != nil {
		return tournament.Draw{}, err
	}
	if err := p.store.UpdateTournamentStatus(tournamentID, club.StatusKnockout); err != nil {
		log.Error("Failed to update tournament status", "tournamentID", tournamentID, "error", err)
	}
	p.publish(pubsub.EventDrawGenerated, pubsub.DrawGenerated{
		TournamentID: tournamentID,
		Format:       stored.Draw.Format,
		Phase:        tournament.PhaseKnockout,
		Version:      stored.Version,
	}, dryRun)
	p.broadcast(tournamentID, live.MessageKnockoutBuilt, stored.Draw.Knockout, dryRun)
	return stored.Draw, nil
}

// StartMatch marks a ready match as being played.
func (p *Processor) StartMatch(tournamentID, matchID string, dryRun bool) (tournament.Match, error) {
	fn := func(d tournament.Draw) (tournament.Draw, error) {
		return draw.Start(d, matchID)
	}
	d, _, err := p.apply(tournamentID, fn, dryRun)
	if err != nil {
		return tournament.Match{}, err
	}
	m, _ := draw.Find(d, matchID)
	log.Info("Match started", "tournamentID", tournamentID, "matchID", matchID)
	p.broadcast(tournamentID, live.MessageMatchUpdated, m, dryRun)
	return m, nil
}

// RecordResult stores the result of a match and advances the winner. The
// tournament is finished once its champion is known.
func (p *Processor) RecordResult(tournamentID, matchID string, res tournament.Result, dryRun bool) (tournament.Match, error) {
	fn := func(d tournament.Draw) (tournament.Draw, error) {
		return draw.RecordResult(d, matchID, res)
	}
	d, version, err := p.apply(tournamentID, fn, dryRun)
	if err != nil {
		return tournament.Match{}, err
	}
	m, _ := draw.Find(d, matchID)
	championID, finished := draw.Champion(d)
	log.Info("Result recorded", "tournamentID", tournamentID, "matchID", matchID, "winnerID", m.WinnerID, "version", version)
	if dryRun {
		return m, nil
	}

	p.metrics.IncResultsRecorded()
	p.totals.Increment(metrics.KeyResultsRecorded)
	if finished {
		if err := p.store.UpdateTournamentStatus(tournamentID, club.StatusFinished); err != nil {
			log.Error("Failed to update tournament status", "tournamentID", tournamentID, "error", err)
		}
		log.Info("Tournament finished", "tournamentID", tournamentID, "championID", championID)
	}
	p.publish(pubsub.EventMatchCompleted, pubsub.MatchCompleted{
		TournamentID: tournamentID,
		MatchID:      matchID,
		WinnerID:     m.WinnerID,
		LoserID:      m.LoserID(),
		Sets:         m.Sets,
		Walkover:     m.Status == tournament.MatchWalkover,
		ChampionID:   championID,
		Version:      version,
	}, dryRun)
	p.broadcast(tournamentID, live.MessageMatchUpdated, m, dryRun)
	if finished {
		p.broadcast(tournamentID, live.MessageChampion, map[string]string{"champion_id": championID}, dryRun)
	}
	return m, nil
}

// ReadyMatches lists the matches that can be played now.
func (p *Processor) ReadyMatches(tournamentID string) ([]tournament.Match, error) {
	stored, err := p.store.GetDraw(tournamentID)
	if err != nil {
		return nil, err
	}
	return draw.Ready(stored.Draw), nil
}

// Standings returns the current table of a zone.
func (p *Processor) Standings(tournamentID, zoneID string) ([]tournament.Standing, error) {
	stored, err := p.store.GetDraw(tournamentID)
	if err != nil {
		return nil, err
	}
	table, ok := draw.ZoneStandings(stored.Draw.Zones, zoneID, lotRand(tournamentID))
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrZoneNotFound, zoneID)
	}
	return table, nil
}

// apply runs fn against the stored draw. Without dryRun the new draw is
// saved under the store's version check.
func (p *Processor) apply(tournamentID string, fn func(tournament.Draw) (tournament.Draw, error), dryRun bool) (tournament.Draw, int, error) {
	if dryRun {
		stored, err := p.store.GetDraw(tournamentID)
		if err != nil {
			return tournament.Draw{}, 0, err
		}
		d, err := fn(stored.Draw)
		if err != nil {
			return tournament.Draw{}, 0, err
		}
		return d, stored.Version, nil
	}
	stored, err := p.updateDraw(tournamentID, fn)
	if err != nil {
		return tournament.Draw{}, 0, err
	}
	return stored.Draw, stored.Version, nil
}

func (p *Processor) updateDraw(tournamentID string, fn func(tournament.Draw) (tournament.Draw, error)) (*club.StoredDraw, error) {
	stored, err := p.store.UpdateDraw(tournamentID, fn)
	if errors.Is(err, club.ErrConcurrentUpdate) {
		p.metrics.IncAdvancementConflicts()
		log.Warn("Draw changed concurrently", "tournamentID", tournamentID)
	}
	return stored, err
}
