package tournament

import (
	"fmt"
	"strings"
)

// SeedingPolicy decides how registered couples are ordered before the draw.
type SeedingPolicy string

const (
	SeedRanked            SeedingPolicy = "RANKED"
	SeedRandom            SeedingPolicy = "RANDOM"
	SeedRegistrationOrder SeedingPolicy = "REGISTRATION_ORDER"
)

// Format is the shape of the draw.
type Format string

const (
	FormatElimination Format = "ELIMINATION"
	FormatZones       Format = "ZONES"
)

// ByeAssignment decides which couples receive first-round byes.
type ByeAssignment string

const (
	ByeHighestSeedFirst ByeAssignment = "HIGHEST_SEED_FIRST"
)

// PartialZonePolicy decides how zone sizes are chosen when the couples do
// not divide evenly by the zone size.
type PartialZonePolicy string

const (
	// ZonesFill keeps every zone full and puts the remainder in the last one.
	ZonesFill PartialZonePolicy = "FILL"
	// ZonesBalanced spreads couples so zone sizes differ by at most one.
	ZonesBalanced PartialZonePolicy = "BALANCED"
)

const (
	DefaultZoneSize          = 4
	DefaultMaxEntrants       = 128
	DefaultQualifiersPerZone = 2
)

// Config holds the per-tournament draw options.
type Config struct {
	SeedingPolicy     SeedingPolicy     `json:"seeding_policy"`
	Format            Format            `json:"format"`
	ZoneSize          int               `json:"zone_size"`
	MaxEntrants       int               `json:"max_entrants"`
	ByeAssignment     ByeAssignment     `json:"bye_assignment"`
	PartialZones      PartialZonePolicy `json:"partial_zones"`
	AllowEmpty        bool              `json:"allow_empty"`
	QualifiersPerZone int               `json:"qualifiers_per_zone"`
	// AllowPartialZone lets a zones draw go ahead with fewer couples than
	// one full zone.
	AllowPartialZone bool `json:"allow_partial_zone"`
}

// DefaultConfig returns the options a club gets when it does not pick any.
func DefaultConfig() Config {
	return Config{
		SeedingPolicy:     SeedRanked,
		Format:            FormatElimination,
		ZoneSize:          DefaultZoneSize,
		MaxEntrants:       DefaultMaxEntrants,
		ByeAssignment:     ByeHighestSeedFirst,
		PartialZones:      ZonesFill,
		QualifiersPerZone: DefaultQualifiersPerZone,
	}
}

// WithDefaults fills zero-valued fields from DefaultConfig.
func (c Config) WithDefaults() Config {
	def := DefaultConfig()
	if c.SeedingPolicy == "" {
		c.SeedingPolicy = def.SeedingPolicy
	}
	if c.Format == "" {
		c.Format = def.Format
	}
	if c.ZoneSize == 0 {
		c.ZoneSize = def.ZoneSize
	}
	if c.MaxEntrants == 0 {
		c.MaxEntrants = def.MaxEntrants
	}
	if c.ByeAssignment == "" {
		c.ByeAssignment = def.ByeAssignment
	}
	if c.PartialZones == "" {
		c.PartialZones = def.PartialZones
	}
	if c.QualifiersPerZone == 0 {
		c.QualifiersPerZone = def.QualifiersPerZone
	}
	return c
}

// Validate checks that every option holds a recognised value.
func (c Config) Validate() error {
	if _, err := ParseSeedingPolicy(string(c.SeedingPolicy)); err != nil {
		return err
	}
	switch c.Format {
	case FormatElimination, FormatZones:
	default:
		return fmt.Errorf("%w: %q", ErrInvalidFormat, c.Format)
	}
	if c.ByeAssignment != ByeHighestSeedFirst {
		return fmt.Errorf("%w: %q", ErrInvalidByeAssignment, c.ByeAssignment)
	}
	if c.MaxEntrants < 0 {
		return fmt.Errorf("%w: max entrants must not be negative", ErrBracketSizeOverflow)
	}
	if c.Format == FormatZones {
		if c.ZoneSize < 2 {
			return fmt.Errorf("%w: %d", ErrInvalidZoneSize, c.ZoneSize)
		}
		switch c.PartialZones {
		case ZonesFill, ZonesBalanced:
		default:
			return fmt.Errorf("%w: unknown partial zone policy %q", ErrInvalidZoneSize, c.PartialZones)
		}
		if c.QualifiersPerZone < 1 {
			return fmt.Errorf("%w: qualifiers per zone must be at least 1", ErrInvalidZoneSize)
		}
	}
	return nil
}

// ParseSeedingPolicy converts user input into a SeedingPolicy.
func ParseSeedingPolicy(s string) (SeedingPolicy, error) {
	switch p := SeedingPolicy(strings.ToUpper(strings.TrimSpace(s))); p {
	case SeedRanked, SeedRandom, SeedRegistrationOrder:
		return p, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidPolicy, s)
}
