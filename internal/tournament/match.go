package tournament

import "fmt"

// SetsWon counts the sets each side took.
func SetsWon(sets []SetScore) (a, b int) {
	for _, s := range sets {
		switch {
		case s.A > s.B:
			a++
		case s.B > s.A:
			b++
		}
	}
	return a, b
}

// Apply returns the match with the result recorded. The match must be ready,
// the winner must be one of its couples and any reported sets must agree
// with the winner.
func (m Match) Apply(res Result) (Match, error) {
	if m.Decided() {
		return m, fmt.Errorf("%w: %s", ErrMatchAlreadyDecided, m.ID)
	}
	if !m.A.Resolved() || !m.B.Resolved() {
		return m, fmt.Errorf("%w: %s", ErrMatchNotReady, m.ID)
	}
	if !m.Involves(res.WinnerID) {
		return m, fmt.Errorf("%w: %s in %s", ErrInvalidWinner, res.WinnerID, m.ID)
	}
	for _, s := range res.Sets {
		if s.A < 0 || s.B < 0 {
			return m, fmt.Errorf("%w: negative games in %s", ErrInvalidScore, m.ID)
		}
	}
	if !res.Walkover && len(res.Sets) > 0 {
		a, b := SetsWon(res.Sets)
		winnerSets, loserSets := a, b
		if res.WinnerID == m.B.CoupleID {
			winnerSets, loserSets = b, a
		}
		if winnerSets <= loserSets {
			return m, fmt.Errorf("%w: %s", ErrInvalidScore, m.ID)
		}
	}

	m.WinnerID = res.WinnerID
	m.Sets = append([]SetScore(nil), res.Sets...)
	m.Status = MatchCompleted
	if res.Walkover {
		m.Status = MatchWalkover
	}
	return m, nil
}

// Begin returns the match marked as in progress.
func (m Match) Begin() (Match, error) {
	if m.Decided() {
		return m, fmt.Errorf("%w: %s", ErrMatchAlreadyDecided, m.ID)
	}
	if !m.A.Resolved() || !m.B.Resolved() {
		return m, fmt.Errorf("%w: %s", ErrMatchNotReady, m.ID)
	}
	m.Status = MatchInProgress
	return m, nil
}
