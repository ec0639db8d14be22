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

func newPlayerFixture(t *testing.T) (*PlayerService, *fakePlayerStore) {
	t.Helper()
	store := newFakePlayerStore()
	return NewPlayerService(store, nil, zerolog.Nop()), store
}

func TestCreatePlayer(t *testing.T) {
	svc, _ := newPlayerFixture(t)
	ctx := context.Background()

	p, err := svc.CreatePlayer(ctx, PlayerInput{Name: "Diego", Number: 10, Team: models.TeamRed})
	require.NoError(t, err)
	assert.False(t, p.ID.IsZero())
	assert.True(t, p.Active)
	assert.False(t, p.CreatedAt.IsZero())
}

func TestCreatePlayerRejectsUnknownTeam(t *testing.T) {
	svc, _ := newPlayerFixture(t)
	_, err := svc.CreatePlayer(context.Background(), PlayerInput{Name: "Diego", Team: "verde"})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestCreatePlayerNumberUniquePerTeam(t *testing.T) {
	svc, _ := newPlayerFixture(t)
	ctx := context.Background()

	_, err := svc.CreatePlayer(ctx, PlayerInput{Name: "Diego", Number: 10, Team: models.TeamRed})
	require.NoError(t, err)

	// same number on the same team is rejected
	_, err = svc.CreatePlayer(ctx, PlayerInput{Name: "Juan", Number: 10, Team: models.TeamRed})
	assert.ErrorIs(t, err, ErrNumberTaken)

	// the other team has its own number space
	_, err = svc.CreatePlayer(ctx, PlayerInput{Name: "Juan", Number: 10, Team: models.TeamBlue})
	assert.NoError(t, err)
}

func TestUpdatePlayerKeepsOwnNumber(t *testing.T) {
	svc, _ := newPlayerFixture(t)
	ctx := context.Background()

	p, err := svc.CreatePlayer(ctx, PlayerInput{Name: "Diego", Number: 10, Team: models.TeamRed})
	require.NoError(t, err)

	// re-submitting the player's own number is not a conflict
	updated, err := svc.UpdatePlayer(ctx, p.ID, PlayerInput{Name: "Diego A.", Number: 10, Team: models.TeamRed})
	require.NoError(t, err)
	assert.Equal(t, "Diego A.", updated.Name)

	other, err := svc.CreatePlayer(ctx, PlayerInput{Name: "Juan", Number: 7, Team: models.TeamRed})
	require.NoError(t, err)
	_, err = svc.UpdatePlayer(ctx, other.ID, PlayerInput{Name: "Juan", Number: 10, Team: models.TeamRed})
	assert.ErrorIs(t, err, ErrNumberTaken)
}

func TestDeletePlayerIsSoft(t *testing.T) {
	svc, store := newPlayerFixture(t)
	ctx := context.Background()

	p, err := svc.CreatePlayer(ctx, PlayerInput{Name: "Diego", Number: 10, Team: models.TeamRed})
	require.NoError(t, err)
	require.NoError(t, svc.DeletePlayer(ctx, p.ID))

	// the record survives for old formations to resolve
	stored, err := store.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.False(t, stored.Active)

	// but it no longer shows up in listings
	players, err := svc.ListPlayers(ctx)
	require.NoError(t, err)
	assert.Empty(t, players)

	assert.ErrorIs(t, svc.DeletePlayer(ctx, primitive.NewObjectID()), ErrPlayerNotFound)
}

func TestListPlayersByTeam(t *testing.T) {
	svc, _ := newPlayerFixture(t)
	ctx := context.Background()

	_, err := svc.CreatePlayer(ctx, PlayerInput{Name: "Diego", Team: models.TeamRed})
	require.NoError(t, err)
	_, err = svc.CreatePlayer(ctx, PlayerInput{Name: "Juan", Team: models.TeamBlue})
	require.NoError(t, err)

	reds, err := svc.ListPlayersByTeam(ctx, models.TeamRed)
	require.NoError(t, err)
	require.Len(t, reds, 1)
	assert.Equal(t, "Diego", reds[0].Name)

	_, err = svc.ListPlayersByTeam(ctx, "verde")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestTopScorers(t *testing.T) {
	svc, store := newPlayerFixture(t)
	ctx := context.Background()

	store.add(models.Player{Name: "Cero", Team: models.TeamRed})
	store.add(models.Player{Name: "Dos", Team: models.TeamRed, Goals: 2})
	store.add(models.Player{Name: "Cinco", Team: models.TeamBlue, Goals: 5})

	scorers, err := svc.TopScorers(ctx, 0) // default limit
	require.NoError(t, err)
	require.Len(t, scorers, 2, "players without goals stay out")
	assert.Equal(t, "Cinco", scorers[0].Name)

	scorers, err = svc.TopScorers(ctx, 1)
	require.NoError(t, err)
	require.Len(t, scorers, 1)
}

func TestAddGoalsAndAssists(t *testing.T) {
	svc, store := newPlayerFixture(t)
	ctx := context.Background()

	p := store.add(models.Player{Name: "Diego", Team: models.TeamRed})

	got, err := svc.AddGoals(ctx, p.ID, 2)
	require.NoError(t, err)
	assert.Equal(t, 2, got.Goals)

	got, err = svc.AddAssists(ctx, p.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, got.Assists)

	// career bumps never touch appearances
	assert.Equal(t, 0, got.MatchesPlayed)

	_, err = svc.AddGoals(ctx, primitive.NewObjectID(), 1)
	assert.ErrorIs(t, err, ErrPlayerNotFound)
}
