// Package seeding orders registered couples before they are placed in a
// bracket or dealt into zones.
package seeding

import (
	"fmt"
	"math/rand/v2"
	"sort"
	"time"

	"github.com/mauv0809/padel-draw/internal/tournament"
)

// Options tunes a Seed call.
type Options struct {
	// Rand drives the RANDOM policy. A time-seeded source is used when nil.
	Rand *rand.Rand
	// AllowEmpty accepts a tournament with no couples.
	AllowEmpty bool
}

// Seed returns the couples ordered by policy. The input slice is not modified.
func Seed(couples []tournament.Couple, policy tournament.SeedingPolicy, opts Options) ([]tournament.Couple, error) {
	policy, err := tournament.ParseSeedingPolicy(string(policy))
	if err != nil {
		return nil, err
	}
	if len(couples) == 0 && !opts.AllowEmpty {
		return nil, tournament.ErrEmptyEntrantList
	}

	out := make([]tournament.Couple, len(couples))
	copy(out, couples)

	switch policy {
	case tournament.SeedRanked:
		if err := CheckAmbiguous(out); err != nil {
			return nil, err
		}
		sort.SliceStable(out, func(i, j int) bool { return rankedLess(out[i], out[j]) })
	case tournament.SeedRandom:
		rng := opts.Rand
		if rng == nil {
			rng = NewRand(uint64(time.Now().UnixNano()))
		}
		rng.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	case tournament.SeedRegistrationOrder:
		sort.SliceStable(out, func(i, j int) bool { return out[i].RegisteredAt.Before(out[j].RegisteredAt) })
	}
	return out, nil
}

// NewRand returns a deterministic source for the given seed.
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// CheckAmbiguous fails when two seeded couples share both their seed rank and
// their registration time, since no rule can order them.
func CheckAmbiguous(couples []tournament.Couple) error {
	type key struct {
		seed int
		at   int64
	}
	seen := make(map[key]string, len(couples))
	for _, c := range couples {
		if c.Seed == nil {
			continue
		}
		k := key{seed: *c.Seed, at: c.RegisteredAt.UnixNano()}
		if other, ok := seen[k]; ok {
			return fmt.Errorf("%w: %s and %s (seed %d)", tournament.ErrAmbiguousSeed, other, c.ID, *c.Seed)
		}
		seen[k] = c.ID
	}
	return nil
}

// rankedLess puts seeded couples first by ascending rank, then unseeded
// couples. Ties fall back to registration time.
func rankedLess(a, b tournament.Couple) bool {
	switch {
	case a.Seed != nil && b.Seed == nil:
		return true
	case a.Seed == nil && b.Seed != nil:
		return false
	case a.Seed != nil && b.Seed != nil && *a.Seed != *b.Seed:
		return *a.Seed < *b.Seed
	}
	return a.RegisteredAt.Before(b.RegisteredAt)
}
