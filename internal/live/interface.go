package live

// Broadcaster pushes draw updates to everyone watching a tournament.
type Broadcaster interface {
	Broadcast(tournamentID string, msg Message)
}

var (
	_ Broadcaster = (*Hub)(nil)
	_ Broadcaster = (*Mock)(nil)
)
