package bracket

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/padel-draw/internal/tournament"
)

// RecordResult returns a copy of the bracket with the result applied and the
// winner moved into the next round. The given bracket is not modified.
func RecordResult(b *tournament.Bracket, matchID string, res tournament.Result) (*tournament.Bracket, error) {
	r, i, ok := locate(b, matchID)
	if !ok {
		return nil, fmt.Errorf("%w: %s", tournament.ErrMatchNotFound, matchID)
	}
	out := b.Clone()
	m, err := out.Rounds[r].Matches[i].Apply(res)
	if err != nil {
		return nil, err
	}
	out.Rounds[r].Matches[i] = m
	advance(out, r, i)

	log.Debug("Bracket advanced", "matchID", matchID, "winner", m.WinnerID, "next", m.NextMatchID)
	if out.ChampionID != "" {
		log.Info("Bracket decided", "champion", out.ChampionID)
	}
	return out, nil
}

// Start returns a copy of the bracket with the match marked in progress.
func Start(b *tournament.Bracket, matchID string) (*tournament.Bracket, error) {
	r, i, ok := locate(b, matchID)
	if !ok {
		return nil, fmt.Errorf("%w: %s", tournament.ErrMatchNotFound, matchID)
	}
	out := b.Clone()
	m, err := out.Rounds[r].Matches[i].Begin()
	if err != nil {
		return nil, err
	}
	out.Rounds[r].Matches[i] = m
	return out, nil
}

// Ready lists the matches whose couples are both known and that have not
// started yet, in round order.
func Ready(b *tournament.Bracket) []tournament.Match {
	var ready []tournament.Match
	for _, m := range b.Matches() {
		if m.Ready() && m.Status == tournament.MatchPending {
			ready = append(ready, m)
		}
	}
	return ready
}

// Find returns the match with the given id.
func Find(b *tournament.Bracket, matchID string) (tournament.Match, bool) {
	r, i, ok := locate(b, matchID)
	if !ok {
		return tournament.Match{}, false
	}
	return b.Rounds[r].Matches[i], true
}

// Contains reports whether the bracket holds the match.
func Contains(b *tournament.Bracket, matchID string) bool {
	_, _, ok := locate(b, matchID)
	return ok
}

func locate(b *tournament.Bracket, matchID string) (int, int, bool) {
	if b == nil {
		return 0, 0, false
	}
	for r, round := range b.Rounds {
		for i, m := range round.Matches {
			if m.ID == matchID {
				return r, i, true
			}
		}
	}
	return 0, 0, false
}
