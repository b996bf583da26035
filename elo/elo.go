// Package elo implements the rating computation used for event leaderboards.
// All functions are pure: ratings go in, ratings come out. Persisting the
// results is the caller's job, inside whatever transaction it runs.
package elo

import (
	"errors"
	"math"
)

const (
	// KFactor bounds the rating swing of a single match. Fixed system-wide.
	KFactor = 32.0

	// DefaultRating is assigned to players enrolled without an explicit
	// starting rating.
	DefaultRating = 1600.0
)

// ErrInvalidWinner is returned when a winner id matches neither player of
// the pairing.
var ErrInvalidWinner = errors.New("winner is not a participant of the match")

// Rated is the minimal view of a player the engine needs.
type Rated struct {
	ID     int
	Rating float64
}

// ExpectedScore returns the probability, in (0,1), that the player rated a
// defeats the player rated b. ExpectedScore(a, b) + ExpectedScore(b, a) == 1.
func ExpectedScore(a, b float64) float64 {
	return 1.0 / (1.0 + math.Pow(10, (b-a)/400.0))
}

// Delta returns the non-negative rating amount transferred from loser to
// winner for one decided match.
func Delta(winnerRating, loserRating, kFactor float64) float64 {
	return kFactor * (1.0 - ExpectedScore(winnerRating, loserRating))
}

// ApplyOutcome computes both players' ratings after a match. A nil winnerID
// means the match is undecided and leaves both ratings untouched. The change
// is zero-sum and the results are not clamped.
func ApplyOutcome(p1, p2 Rated, winnerID *int) (Rated, Rated, error) {
	if winnerID == nil {
		return p1, p2, nil
	}

	switch *winnerID {
	case p1.ID:
		delta := Delta(p1.Rating, p2.Rating, KFactor)
		p1.Rating += delta
		p2.Rating -= delta
	case p2.ID:
		delta := Delta(p2.Rating, p1.Rating, KFactor)
		p2.Rating += delta
		p1.Rating -= delta
	default:
		return p1, p2, ErrInvalidWinner
	}
	return p1, p2, nil
}

// ReverseOutcome backs out a previously applied result. The delta is
// recomputed from the ratings as they stand now, not from the values at
// apply time, so reversing after other matches have moved either rating is
// not a perfect undo of the original apply. Match edits depend on exactly
// this behavior: reverse with current ratings, then reapply.
func ReverseOutcome(p1, p2 Rated, prevWinnerID *int) (Rated, Rated, error) {
	if prevWinnerID == nil {
		return p1, p2, nil
	}

	switch *prevWinnerID {
	case p1.ID:
		delta := Delta(p1.Rating, p2.Rating, KFactor)
		p1.Rating -= delta
		p2.Rating += delta
	case p2.ID:
		delta := Delta(p2.Rating, p1.Rating, KFactor)
		p2.Rating -= delta
		p1.Rating += delta
	default:
		return p1, p2, ErrInvalidWinner
	}
	return p1, p2, nil
}
