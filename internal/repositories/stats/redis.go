package stats

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/KirkDiggler/pokerledger/internal/models"
	"github.com/redis/go-redis/v9"
)

const (
	// Key prefixes for Redis
	playerStatsKeyPrefix  = "pokerledger:stats:player:"
	sessionStatsKeyPrefix = "pokerledger:stats:session:"
	leaderboardKey        = "pokerledger:stats:leaderboard"

	fieldName       = "name"
	fieldGames      = "games"
	fieldNetChips   = "netChips"
	fieldWins       = "wins"
	fieldLosses     = "losses"
	fieldBreakEvens = "breakEvens"
)

// ErrStatsNotFound is returned when a player has no recorded sessions
var ErrStatsNotFound = errors.New("player stats not found")

// Config holds configuration for the Redis stats repository
type Config struct {
	// Redis client
	RedisClient *redis.Client
}

// redisRepository implements the Repository interface using Redis
type redisRepository struct {
	client *redis.Client
}

// NewRedis creates a new Redis-backed stats repository
func NewRedis(cfg *Config) (*redisRepository, error) {
	// Validate config
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.RedisClient == nil {
		return nil, errors.New("redis client cannot be nil")
	}

	// Test connection
	if err := cfg.RedisClient.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &redisRepository{
		client: cfg.RedisClient,
	}, nil
}

func memberFor(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

func outcomeField(balance int64) string {
	switch {
	case balance > 0:
		return fieldWins
	case balance < 0:
		return fieldLosses
	}
	return fieldBreakEvens
}

// RecordSettlement applies the session's balances to each player's totals in
// one transaction, backing out whatever the session contributed before
func (r *redisRepository) RecordSettlement(ctx context.Context, input *RecordSettlementInput) error {
	if input == nil || input.SessionID == "" || input.Settlement == nil {
		return errors.New("input, session ID and settlement cannot be empty")
	}

	current := make([]contribution, 0, len(input.Settlement.Players))
	for _, p := range input.Settlement.Players {
		current = append(current, contribution{Name: p.Name, Balance: p.Balance})
	}
	currentJSON, err := json.Marshal(current)
	if err != nil {
		return fmt.Errorf("failed to marshal contribution: %w", err)
	}

	sessionKey := sessionStatsKeyPrefix + input.SessionID
	err = r.client.Watch(ctx, func(tx *redis.Tx) error {
		// Get what this session recorded last time, if anything
		var previous []contribution
		previousJSON, err := tx.Get(ctx, sessionKey).Result()
		switch {
		case err == redis.Nil:
		case err != nil:
			return err
		default:
			if err := json.Unmarshal([]byte(previousJSON), &previous); err != nil {
				return fmt.Errorf("failed to unmarshal previous contribution: %w", err)
			}
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			for _, c := range previous {
				key := playerStatsKeyPrefix + memberFor(c.Name)
				pipe.HIncrBy(ctx, key, fieldGames, -1)
				pipe.HIncrBy(ctx, key, fieldNetChips, -c.Balance)
				pipe.HIncrBy(ctx, key, outcomeField(c.Balance), -1)
				pipe.ZIncrBy(ctx, leaderboardKey, float64(-c.Balance), memberFor(c.Name))
			}
			for _, c := range current {
				key := playerStatsKeyPrefix + memberFor(c.Name)
				pipe.HSetNX(ctx, key, fieldName, c.Name)
				pipe.HIncrBy(ctx, key, fieldGames, 1)
				pipe.HIncrBy(ctx, key, fieldNetChips, c.Balance)
				pipe.HIncrBy(ctx, key, outcomeField(c.Balance), 1)
				pipe.ZIncrBy(ctx, leaderboardKey, float64(c.Balance), memberFor(c.Name))
			}
			pipe.Set(ctx, sessionKey, currentJSON, 0)
			return nil
		})
		return err
	}, sessionKey)
	if err != nil {
		return fmt.Errorf("failed to record settlement: %w", err)
	}

	return nil
}

// GetPlayerStats retrieves one player's stats from Redis
func (r *redisRepository) GetPlayerStats(ctx context.Context, input *GetPlayerStatsInput) (*models.PlayerStats, error) {
	if input == nil || strings.TrimSpace(input.Name) == "" {
		return nil, errors.New("input and name cannot be empty")
	}

	fields, err := r.client.HGetAll(ctx, playerStatsKeyPrefix+memberFor(input.Name)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get player stats: %w", err)
	}

	stats, err := decodeStats(fields)
	if err != nil {
		return nil, err
	}
	if stats == nil {
		return nil, ErrStatsNotFound
	}

	return stats, nil
}

// GetLeaderboard reads the ZSET highest first and loads each player's stats
func (r *redisRepository) GetLeaderboard(ctx context.Context, input *GetLeaderboardInput) (*models.Leaderboard, error) {
	stop := int64(-1)
	if input != nil && input.Limit > 0 {
		stop = input.Limit - 1
	}

	members, err := r.client.ZRevRange(ctx, leaderboardKey, 0, stop).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get leaderboard: %w", err)
	}

	if len(members) == 0 {
		return &models.Leaderboard{
			Entries: []*models.PlayerStats{},
		}, nil
	}

	// Get all stats records using a pipeline
	pipe := r.client.Pipeline()
	commands := make([]*redis.MapStringStringCmd, 0, len(members))
	for _, member := range members {
		commands = append(commands, pipe.HGetAll(ctx, playerStatsKeyPrefix+member))
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, fmt.Errorf("failed to get leaderboard stats: %w", err)
	}

	entries := make([]*models.PlayerStats, 0, len(members))
	for i, cmd := range commands {
		stats, err := decodeStats(cmd.Val())
		if err != nil {
			return nil, fmt.Errorf("failed to decode stats for %s: %w", members[i], err)
		}
		// Players whose only session was re-settled without them
		if stats == nil {
			continue
		}
		entries = append(entries, stats)
	}

	return &models.Leaderboard{
		Entries: entries,
	}, nil
}

// decodeStats returns nil when the hash is empty or records no games
func decodeStats(fields map[string]string) (*models.PlayerStats, error) {
	if len(fields) == 0 {
		return nil, nil
	}

	stats := &models.PlayerStats{Name: fields[fieldName]}
	targets := map[string]*int64{
		fieldGames:      &stats.Games,
		fieldNetChips:   &stats.NetChips,
		fieldWins:       &stats.Wins,
		fieldLosses:     &stats.Losses,
		fieldBreakEvens: &stats.BreakEvens,
	}
	for field, target := range targets {
		v, ok := fields[field]
		if !ok || v == "" {
			continue
		}
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", field, err)
		}
		*target = n
	}

	if stats.Games <= 0 {
		return nil, nil
	}
	return stats, nil
}
