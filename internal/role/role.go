// Package role models who is using the platform. The set of roles is closed:
// only the types in this package satisfy Role.
package role

import (
	"errors"
	"fmt"
	"strings"
)

var ErrUnknownRole = errors.New("unknown role")

// Role is one of Player, Club, Coach or Guest.
type Role interface {
	Kind() string
	role()
}

// Player is a registered player.
type Player struct{ ID string }

// Club is a club account that runs tournaments.
type Club struct{ ID string }

// Coach trains players and follows their tournaments.
type Coach struct{ ID string }

// Guest is an anonymous visitor.
type Guest struct{}

func (Player) Kind() string { return "player" }
func (Club) Kind() string { return "club" }
func (Coach) Kind() string { return "coach" }
func (Guest) Kind() string { return "guest" }

func (Player) role() {}
func (Club) role() {}
func (Coach) role() {}
func (Guest) role() {}

// Parse builds a role from its kind and subject id.
func Parse(kind, id string) (Role, error) {
	switch strings.ToLower(strings.TrimSpace(kind)) {
	case "player":
		return Player{ID: id}, nil
	case "club":
		return Club{ID: id}, nil
	case "coach":
		return Coach{ID: id}, nil
	case "guest", "":
		return Guest{}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownRole, kind)
}

// Dashboard slots.
const (
	SlotTournaments      = "tournaments"
	SlotCreateTournament = "create-tournament"
	SlotRegistrations    = "registrations"
	SlotMyCouples        = "my-couples"
	SlotOpenTournaments  = "open-tournaments"
)

// Slots returns the dashboard sections shown to r. Coaches see what guests see.
func Slots(r Role) []string {
	switch r.(type) {
	case Club:
		return []string{SlotTournaments, SlotCreateTournament, SlotRegistrations}
	case Player:
		return []string{SlotMyCouples, SlotOpenTournaments}
	default:
		return []string{SlotOpenTournaments}
	}
}

// CanManage reports whether r may configure and draw the club's tournaments.
func CanManage(r Role, clubID string) bool {
	c, ok := r.(Club)
	return ok && c.ID != "" && c.ID == clubID
}

// CanRegister reports whether r may register a couple.
func CanRegister(r Role) bool {
	_, ok := r.(Player)
	return ok
}

// CanReport reports whether r may start matches and record results for the
// club's tournaments. Coaches may report for any club.
func CanReport(r Role, clubID string) bool {
	switch r.(type) {
	case Club:
		return CanManage(r, clubID)
	case Coach:
		return true
	}
	return false
}
