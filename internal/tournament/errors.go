package tournament

import "errors"

// Draw validation errors. They are deterministic input failures and are
// never retried.
var (
	ErrInvalidPolicy        = errors.New("invalid seeding policy")
	ErrEmptyEntrantList     = errors.New("no couples registered")
	ErrAmbiguousSeed        = errors.New("couples share seed rank and registration time")
	ErrBracketSizeOverflow  = errors.New("too many couples for the bracket")
	ErrInvalidZoneSize      = errors.New("invalid zone size")
	ErrInsufficientEntrants = errors.New("not enough couples to fill a zone")
	ErrInvalidFormat        = errors.New("invalid tournament format")
	ErrInvalidByeAssignment = errors.New("invalid bye assignment")
	ErrDuplicateCouple      = errors.New("couple appears twice in the entrant list")
)

// Advancement errors.
var (
	ErrMatchNotFound       = errors.New("match not found")
	ErrMatchNotReady       = errors.New("match is waiting for its couples")
	ErrMatchAlreadyDecided = errors.New("match already has a winner")
	ErrInvalidWinner       = errors.New("winner does not play in this match")
	ErrInvalidScore        = errors.New("score does not match the reported winner")
	ErrZonesIncomplete     = errors.New("zone matches are still pending")
	ErrKnockoutExists      = errors.New("knockout phase already generated")
)

// IsValidation reports whether err is one of the draw validation errors.
func IsValidation(err error) bool {
	for _, target := range []error{
		ErrInvalidPolicy, ErrEmptyEntrantList, ErrAmbiguousSeed, ErrBracketSizeOverflow,
		ErrInvalidZoneSize, ErrInsufficientEntrants, ErrInvalidFormat, ErrInvalidByeAssignment,
		ErrDuplicateCouple,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
