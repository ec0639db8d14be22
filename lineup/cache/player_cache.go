package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/futbolformaciones/lineup-service/shared/models"
)

// Key constants for cached player lists.
const (
	activePlayersKey  = "jugadores:activos"
	teamPlayersPrefix = "jugadores:equipo:%s"
)

// PlayerCache is a read-through Redis cache for the player lists the
// formation editor polls constantly. Any cache failure degrades to the
// store: reads report a miss, writes are dropped.
type PlayerCache struct {
	client *redis.Client
	ttl    time.Duration
	logger zerolog.Logger
}

// New creates a PlayerCache backed by the given Redis client.
func New(client *redis.Client, ttl time.Duration, logger zerolog.Logger) *PlayerCache {
	return &PlayerCache{
		client: client,
		ttl:    ttl,
		logger: logger,
	}
}

// GetActive returns the cached active-player list, reporting a miss when
// absent or unreadable.
func (c *PlayerCache) GetActive(ctx context.Context) ([]models.Player, bool) {
	return c.get(ctx, activePlayersKey)
}

// SetActive caches the active-player list.
func (c *PlayerCache) SetActive(ctx context.Context, players []models.Player) {
	c.set(ctx, activePlayersKey, players)
}

// GetTeam returns the cached player list for one team.
func (c *PlayerCache) GetTeam(ctx context.Context, team string) ([]models.Player, bool) {
	return c.get(ctx, fmt.Sprintf(teamPlayersPrefix, team))
}

// SetTeam caches the player list for one team.
func (c *PlayerCache) SetTeam(ctx context.Context, team string, players []models.Player) {
	c.set(ctx, fmt.Sprintf(teamPlayersPrefix, team), players)
}

// Invalidate drops every cached list. Called after any player write.
func (c *PlayerCache) Invalidate(ctx context.Context) {
	keys := []string{
		activePlayersKey,
		fmt.Sprintf(teamPlayersPrefix, models.TeamRed),
		fmt.Sprintf(teamPlayersPrefix, models.TeamBlue),
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		c.logger.Warn().Err(err).Msg("failed to invalidate player cache")
	}
}

func (c *PlayerCache) get(ctx context.Context, key string) ([]models.Player, bool) {
	raw, err := c.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		c.logger.Warn().Err(err).Str("key", key).Msg("player cache read failed")
		return nil, false
	}

	var players []models.Player
	if err := json.Unmarshal(raw, &players); err != nil {
		c.logger.Warn().Err(err).Str("key", key).Msg("player cache entry corrupt, dropping")
		c.client.Del(ctx, key)
		return nil, false
	}
	return players, true
}

func (c *PlayerCache) set(ctx context.Context, key string, players []models.Player) {
	raw, err := json.Marshal(players)
	if err != nil {
		c.logger.Warn().Err(err).Str("key", key).Msg("failed to encode player cache entry")
		return
	}
	if err := c.client.Set(ctx, key, raw, c.ttl).Err(); err != nil {
		c.logger.Warn().Err(err).Str("key", key).Msg("player cache write failed")
	}
}
