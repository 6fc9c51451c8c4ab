package processor

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/padel-draw/internal/club"
	"github.com/mauv0809/padel-draw/internal/draw"
	"github.com/mauv0809/padel-draw/internal/notifier"
	"github.com/mauv0809/padel-draw/internal/pubsub"
	"github.com/mauv0809/padel-draw/internal/tournament"
)

// HandleDrawGenerated announces a new draw or knockout phase.
func (p *Processor) HandleDrawGenerated(ev pubsub.DrawGenerated, dryRun bool) error {
	t, d, names, err := p.load(ev.TournamentID)
	if err != nil {
		return err
	}
	if ev.Phase != tournament.PhaseKnockout {
		// Announce the first phase only, even if the knockout exists by now.
		d.Knockout = nil
	}
	log.Info("Announcing draw", "tournamentID", ev.TournamentID, "phase", ev.Phase)
	return p.notifier.SendDrawPublished(t, d, names, dryRun)
}

// HandleMatchCompleted announces a result and, when it decided the
// tournament, the champion.
func (p *Processor) HandleMatchCompleted(ev pubsub.MatchCompleted, dryRun bool) error {
	t, d, names, err := p.load(ev.TournamentID)
	if err != nil {
		return err
	}
	m, ok := draw.Find(d, ev.MatchID)
	if !ok {
		return fmt.Errorf("%w: %s", tournament.ErrMatchNotFound, ev.MatchID)
	}
	if err := p.notifier.SendMatchResult(t, m, names, dryRun); err != nil {
		return err
	}
	if ev.ChampionID != "" {
		return p.notifier.SendChampion(t, ev.ChampionID, names, dryRun)
	}
	return nil
}

// StandingsResponse formats a zone table for a Slack slash command.
func (p *Processor) StandingsResponse(tournamentID, zoneID string) (any, error) {
	t, _, names, err := p.load(tournamentID)
	if err != nil {
		return nil, err
	}
	table, err := p.Standings(tournamentID, zoneID)
	if err != nil {
		return nil, err
	}
	return p.notifier.FormatStandingsResponse(t, zoneID, table, names)
}

// ReadyResponse formats the schedulable matches for a Slack slash command.
func (p *Processor) ReadyResponse(tournamentID string) (any, error) {
	t, d, names, err := p.load(tournamentID)
	if err != nil {
		return nil, err
	}
	return p.notifier.FormatReadyMatchesResponse(t, draw.Ready(d), names)
}

func (p *Processor) load(tournamentID string) (*club.Tournament, tournament.Draw, notifier.Names, error) {
	t, err := p.store.GetTournament(tournamentID)
	if err != nil {
		return nil, tournament.Draw{}, nil, err
	}
	stored, err := p.store.GetDraw(tournamentID)
	if err != nil {
		return nil, tournament.Draw{}, nil, err
	}
	couples, err := p.store.GetCouples(tournamentID)
	if err != nil {
		return nil, tournament.Draw{}, nil, fmt.Errorf("failed to load couples: %w", err)
	}
	return t, stored.Draw, notifier.NamesFor(couples), nil
}
