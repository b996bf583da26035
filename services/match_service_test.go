package services

import (
	"context"
	"log/slog"
	"testing"

	"github.com/hirohaya/racket-hero/models"
	"github.com/hirohaya/racket-hero/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeMatchRepo struct {
	repositories.MatchRepository
	matches map[int]*models.Match
}

func (f *fakeMatchRepo) GetByID(_ context.Context, id int) (*models.Match, error) {
	match, ok := f.matches[id]
	if !ok {
		return nil, repositories.ErrMatchNotFound
	}
	clone := *match
	return &clone, nil
}

type fakeNotifier struct {
	events []int
}

func (f *fakeNotifier) RankingChanged(eventID int) {
	f.events = append(f.events, eventID)
}

func newTestMatchService(matches map[int]*models.Match, notifier RankingNotifier) MatchService {
	// The db handle is only reached after precondition checks pass, so the
	// rejection paths under test run fine without one.
	return NewMatchService(nil, &fakeMatchRepo{matches: matches}, nil, notifier, slog.Default())
}

func TestCreateMatchRejectsSamePlayer(t *testing.T) {
	notifier := &fakeNotifier{}
	svc := newTestMatchService(nil, notifier)

	_, err := svc.Create(context.Background(), CreateMatchInput{
		EventID:   1,
		Player1ID: 5,
		Player2ID: 5,
	})
	require.ErrorIs(t, err, ErrSamePlayer)
	assert.Empty(t, notifier.events)
}

func TestCreateMatchRejectsForeignWinner(t *testing.T) {
	notifier := &fakeNotifier{}
	svc := newTestMatchService(nil, notifier)

	winner := 99
	_, err := svc.Create(context.Background(), CreateMatchInput{
		EventID:   1,
		Player1ID: 5,
		Player2ID: 6,
		WinnerID:  &winner,
	})
	require.ErrorIs(t, err, ErrMatchInvalidWinner)
	assert.Empty(t, notifier.events)
}

func TestUpdateMatchRejectsForeignWinner(t *testing.T) {
	notifier := &fakeNotifier{}
	svc := newTestMatchService(map[int]*models.Match{
		10: {ID: 10, EventID: 1, Player1ID: 5, Player2ID: 6},
	}, notifier)

	winner := 42
	_, err := svc.Update(context.Background(), 10, UpdateMatchInput{WinnerID: &winner})
	require.ErrorIs(t, err, ErrMatchInvalidWinner)
	assert.Empty(t, notifier.events)
}

func TestUpdateMatchNotFound(t *testing.T) {
	svc := newTestMatchService(nil, nil)

	_, err := svc.Update(context.Background(), 404, UpdateMatchInput{})
	require.ErrorIs(t, err, ErrMatchNotFound)
}

func TestDeleteMatchNotFound(t *testing.T) {
	svc := newTestMatchService(nil, nil)

	err := svc.Delete(context.Background(), 404)
	require.ErrorIs(t, err, ErrMatchNotFound)
}
