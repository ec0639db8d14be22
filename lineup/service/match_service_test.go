package service

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/futbolformaciones/lineup-service/shared/models"
)

func newMatchFixture(t *testing.T) (*MatchService, *fakeMatchStore, *fakePlayerStore) {
	t.Helper()
	matches := newFakeMatchStore()
	players := newFakePlayerStore()
	return NewMatchService(matches, players, zerolog.Nop()), matches, players
}

func validMatch() *models.Match {
	return &models.Match{LocalName: "Rojo", VisitingName: "Azul"}
}

func TestCreateMatchDefaults(t *testing.T) {
	svc, _, _ := newMatchFixture(t)
	m, err := svc.CreateMatch(context.Background(), validMatch())
	require.NoError(t, err)
	assert.False(t, m.ID.IsZero())
	assert.Equal(t, models.MatchStateScheduled, m.State)
	assert.False(t, m.Date.IsZero())
}

func TestCreateMatchValidation(t *testing.T) {
	svc, _, _ := newMatchFixture(t)
	ctx := context.Background()

	m := validMatch()
	m.LocalName = ""
	_, err := svc.CreateMatch(ctx, m)
	assert.ErrorIs(t, err, ErrValidation)

	m = validMatch()
	m.State = "suspendido"
	_, err = svc.CreateMatch(ctx, m)
	assert.ErrorIs(t, err, ErrValidation)

	m = validMatch()
	m.LocalGoals = -1
	_, err = svc.CreateMatch(ctx, m)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestSetResultAndState(t *testing.T) {
	svc, _, _ := newMatchFixture(t)
	ctx := context.Background()

	m, err := svc.CreateMatch(ctx, validMatch())
	require.NoError(t, err)

	m, err = svc.SetResult(ctx, m.ID, 3, 1)
	require.NoError(t, err)
	assert.Equal(t, 3, m.LocalGoals)

	m, err = svc.SetState(ctx, m.ID, models.MatchStateFinished)
	require.NoError(t, err)
	assert.Equal(t, models.MatchStateFinished, m.State)

	_, err = svc.SetState(ctx, m.ID, "suspendido")
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.SetResult(ctx, primitive.NewObjectID(), 1, 1)
	assert.ErrorIs(t, err, ErrMatchNotFound)
}

func TestAddGoalCreditsScorer(t *testing.T) {
	svc, matches, players := newMatchFixture(t)
	ctx := context.Background()

	scorer := players.add(models.Player{Name: "Diego", Team: models.TeamRed})
	m, err := svc.CreateMatch(ctx, validMatch())
	require.NoError(t, err)

	m, err = svc.AddGoal(ctx, m.ID, scorer.ID, 23, "")
	require.NoError(t, err)
	require.Len(t, m.Goals, 1)
	assert.Equal(t, models.GoalTypeGoal, m.Goals[0].Type)

	got, err := players.GetByID(ctx, scorer.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.Goals)

	stored, err := matches.GetByID(ctx, m.ID)
	require.NoError(t, err)
	assert.Len(t, stored.Goals, 1)
}

func TestAddOwnGoalNotCredited(t *testing.T) {
	svc, _, players := newMatchFixture(t)
	ctx := context.Background()

	scorer := players.add(models.Player{Name: "Diego", Team: models.TeamRed})
	m, err := svc.CreateMatch(ctx, validMatch())
	require.NoError(t, err)

	m, err = svc.AddGoal(ctx, m.ID, scorer.ID, 50, models.GoalTypeOwnGoal)
	require.NoError(t, err)
	require.Len(t, m.Goals, 1)

	got, err := players.GetByID(ctx, scorer.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, got.Goals, "own goals stay out of career totals")
}

func TestAddGoalUnknownPlayer(t *testing.T) {
	svc, _, _ := newMatchFixture(t)
	ctx := context.Background()

	m, err := svc.CreateMatch(ctx, validMatch())
	require.NoError(t, err)

	_, err = svc.AddGoal(ctx, m.ID, primitive.NewObjectID(), 10, "")
	assert.ErrorIs(t, err, ErrPlayerNotFound)
}

func TestAddAssistCreditsPlayer(t *testing.T) {
	svc, _, players := newMatchFixture(t)
	ctx := context.Background()

	p := players.add(models.Player{Name: "Juan", Team: models.TeamBlue})
	m, err := svc.CreateMatch(ctx, validMatch())
	require.NoError(t, err)

	m, err = svc.AddAssist(ctx, m.ID, p.ID, 40)
	require.NoError(t, err)
	require.Len(t, m.Assists, 1)

	got, err := players.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.Assists)
}

func TestDeleteMatch(t *testing.T) {
	svc, _, _ := newMatchFixture(t)
	ctx := context.Background()

	m, err := svc.CreateMatch(ctx, validMatch())
	require.NoError(t, err)
	require.NoError(t, svc.DeleteMatch(ctx, m.ID))

	_, err = svc.GetMatch(ctx, m.ID)
	assert.ErrorIs(t, err, ErrMatchNotFound)
	assert.ErrorIs(t, svc.DeleteMatch(ctx, m.ID), ErrMatchNotFound)
}
