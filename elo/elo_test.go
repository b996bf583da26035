package elo

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int { return &v }

func TestExpectedScoreSymmetry(t *testing.T) {
	cases := [][2]float64{
		{1600, 1600},
		{1800, 1600},
		{1600, 1800},
		{2400, 1000},
		{1234.5, 1567.8},
	}

	for _, c := range cases {
		sum := ExpectedScore(c[0], c[1]) + ExpectedScore(c[1], c[0])
		assert.InDelta(t, 1.0, sum, 1e-12, "E(%v,%v)+E(%v,%v)", c[0], c[1], c[1], c[0])
	}
}

func TestExpectedScoreKnownValues(t *testing.T) {
	assert.InDelta(t, 0.5, ExpectedScore(1600, 1600), 1e-12)
	// 200 points of difference ~ 0.76 for the favorite.
	assert.InDelta(t, 0.7597, ExpectedScore(1800, 1600), 1e-4)
	assert.InDelta(t, 0.2403, ExpectedScore(1600, 1800), 1e-4)
}

func TestDeltaFavoriteGainsLess(t *testing.T) {
	favoriteWins := Delta(1800, 1600, KFactor)
	underdogWins := Delta(1600, 1800, KFactor)

	assert.Less(t, favoriteWins, KFactor/2)
	assert.Greater(t, underdogWins, KFactor/2)
	assert.InDelta(t, 7.68, favoriteWins, 0.01)
	assert.InDelta(t, 24.32, underdogWins, 0.01)
}

func TestApplyOutcomeZeroSum(t *testing.T) {
	cases := []struct {
		name   string
		r1, r2 float64
	}{
		{"equal ratings", 1600, 1600},
		{"favorite wins", 1812.3, 1544.9},
		{"underdog wins", 1100, 2200},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			p1 := Rated{ID: 1, Rating: c.r1}
			p2 := Rated{ID: 2, Rating: c.r2}

			n1, n2, err := ApplyOutcome(p1, p2, intPtr(1))
			require.NoError(t, err)

			gained := n1.Rating - p1.Rating
			lost := n2.Rating - p2.Rating
			assert.InDelta(t, gained, -lost, 1e-12)
			assert.Greater(t, gained, 0.0)
		})
	}
}

func TestApplyOutcomeNoWinnerIsNoOp(t *testing.T) {
	p1 := Rated{ID: 1, Rating: 1700}
	p2 := Rated{ID: 2, Rating: 1500}

	n1, n2, err := ApplyOutcome(p1, p2, nil)
	require.NoError(t, err)
	assert.Equal(t, p1, n1)
	assert.Equal(t, p2, n2)
}

func TestApplyOutcomeInvalidWinner(t *testing.T) {
	p1 := Rated{ID: 1, Rating: 1700}
	p2 := Rated{ID: 2, Rating: 1500}

	n1, n2, err := ApplyOutcome(p1, p2, intPtr(99))
	require.ErrorIs(t, err, ErrInvalidWinner)
	assert.Equal(t, p1, n1)
	assert.Equal(t, p2, n2)
}

func TestApplyOutcomeEqualRatings(t *testing.T) {
	p1 := Rated{ID: 1, Rating: 1600}
	p2 := Rated{ID: 2, Rating: 1600}

	n1, n2, err := ApplyOutcome(p1, p2, intPtr(1))
	require.NoError(t, err)
	assert.InDelta(t, 1616.0, n1.Rating, 1e-9)
	assert.InDelta(t, 1584.0, n2.Rating, 1e-9)
}

func TestReverseImmediatelyRestoresRatings(t *testing.T) {
	p1 := Rated{ID: 1, Rating: 1650.5}
	p2 := Rated{ID: 2, Rating: 1590.25}

	a1, a2, err := ApplyOutcome(p1, p2, intPtr(2))
	require.NoError(t, err)

	r1, r2, err := ReverseOutcome(a1, a2, intPtr(2))
	require.NoError(t, err)

	// The reversal delta is recomputed from the post-apply ratings, where
	// the gap is wider, so an immediate reverse lands close to but not
	// byte-exactly on the pre-match values.
	assert.InDelta(t, p1.Rating, r1.Rating, 2.0)
	assert.InDelta(t, p2.Rating, r2.Rating, 2.0)

	exactDelta := a2.Rating - p2.Rating
	recomputed := Delta(a2.Rating, a1.Rating, KFactor)
	assert.NotEqual(t, exactDelta, recomputed)
}

func TestReverseRecomputesFromCurrentRatings(t *testing.T) {
	// Two players start at 1600; player 1 wins, ratings become 1616/1584.
	p1 := Rated{ID: 1, Rating: 1600}
	p2 := Rated{ID: 2, Rating: 1600}

	a1, a2, err := ApplyOutcome(p1, p2, intPtr(1))
	require.NoError(t, err)
	require.InDelta(t, 1616.0, a1.Rating, 1e-9)
	require.InDelta(t, 1584.0, a2.Rating, 1e-9)

	// Editing the result to player 2 reverses with the CURRENT ratings
	// (1616 vs 1584), not the original 1600/1600 snapshot.
	reverseDelta := Delta(a1.Rating, a2.Rating, KFactor)
	r1, r2, err := ReverseOutcome(a1, a2, intPtr(1))
	require.NoError(t, err)
	assert.InDelta(t, a1.Rating-reverseDelta, r1.Rating, 1e-12)
	assert.InDelta(t, a2.Rating+reverseDelta, r2.Rating, 1e-12)

	// Then the new winner is applied on the post-reversal ratings.
	applyDelta := Delta(r2.Rating, r1.Rating, KFactor)
	f1, f2, err := ApplyOutcome(r1, r2, intPtr(2))
	require.NoError(t, err)
	assert.InDelta(t, r2.Rating+applyDelta, f2.Rating, 1e-12)
	assert.InDelta(t, r1.Rating-applyDelta, f1.Rating, 1e-12)

	// The edit is not a naive undo to 1600/1600 followed by a fresh apply.
	assert.False(t, math.Abs(f1.Rating-1584.0) < 1e-9 && math.Abs(f2.Rating-1616.0) < 1e-9)
}

func TestReverseOutcomeNilWinnerIsNoOp(t *testing.T) {
	p1 := Rated{ID: 1, Rating: 1700}
	p2 := Rated{ID: 2, Rating: 1500}

	n1, n2, err := ReverseOutcome(p1, p2, nil)
	require.NoError(t, err)
	assert.Equal(t, p1, n1)
	assert.Equal(t, p2, n2)
}
