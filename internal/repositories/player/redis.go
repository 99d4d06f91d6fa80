package player

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/KirkDiggler/pokerledger/internal/models"
	"github.com/redis/go-redis/v9"
)

const (
	// Key prefixes for Redis
	profileKeyPrefix = "pokerledger:profile:"
	quickAddKey      = "pokerledger:quick_add"

	fieldName      = "name"
	fieldPaymentID = "paymentId"
	fieldQuickAdd  = "isQuickAdd"
)

// ErrProfileNotFound is returned when a profile is not found
var ErrProfileNotFound = errors.New("profile not found")

// Config holds configuration for the Redis player repository
type Config struct {
	// Redis client
	RedisClient *redis.Client
}

// redisRepository implements the Repository interface using Redis
type redisRepository struct {
	client *redis.Client
}

// NewRedis creates a new Redis-backed player repository
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

// profileKey is case-insensitive so "alice" and "Alice" share a profile
func profileKey(name string) string {
	return profileKeyPrefix + strings.ToLower(name)
}

func normalizeName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", errors.New("name cannot be empty")
	}
	return name, nil
}

// GetProfile retrieves a profile by name from Redis
func (r *redisRepository) GetProfile(ctx context.Context, input *GetProfileInput) (*models.PlayerProfile, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}
	name, err := normalizeName(input.Name)
	if err != nil {
		return nil, err
	}

	fields, err := r.client.HGetAll(ctx, profileKey(name)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	if len(fields) == 0 {
		return nil, ErrProfileNotFound
	}

	quickAdd, _ := strconv.ParseBool(fields[fieldQuickAdd])
	profile := &models.PlayerProfile{
		Name:      fields[fieldName],
		PaymentID: fields[fieldPaymentID],
		QuickAdd:  quickAdd,
	}
	if profile.Name == "" {
		profile.Name = name
	}

	return profile, nil
}

// SavePaymentID merges the payment ID into the profile
func (r *redisRepository) SavePaymentID(ctx context.Context, input *SavePaymentIDInput) error {
	if input == nil {
		return errors.New("input cannot be nil")
	}
	name, err := normalizeName(input.Name)
	if err != nil {
		return err
	}

	key := profileKey(name)
	pipe := r.client.TxPipeline()
	pipe.HSetNX(ctx, key, fieldName, name)
	pipe.HSet(ctx, key, fieldPaymentID, strings.TrimSpace(input.PaymentID))
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save payment ID: %w", err)
	}

	return nil
}

// ToggleQuickAdd flips the flag on the profile and keeps the roster set in step
func (r *redisRepository) ToggleQuickAdd(ctx context.Context, input *ToggleQuickAddInput) (*ToggleQuickAddOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}
	name, err := normalizeName(input.Name)
	if err != nil {
		return nil, err
	}

	key := profileKey(name)
	var enabled bool
	err = r.client.Watch(ctx, func(tx *redis.Tx) error {
		current, err := tx.HMGet(ctx, key, fieldName, fieldQuickAdd).Result()
		if err != nil {
			return err
		}

		// Keep the spelling the profile was created with
		storedName := name
		if v, ok := current[0].(string); ok && v != "" {
			storedName = v
		}
		flag, _ := current[1].(string)
		wasEnabled, _ := strconv.ParseBool(flag)
		enabled = !wasEnabled

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.HSet(ctx, key, fieldName, storedName, fieldQuickAdd, strconv.FormatBool(enabled))
			if enabled {
				pipe.SAdd(ctx, quickAddKey, storedName)
			} else {
				pipe.SRem(ctx, quickAddKey, storedName)
			}
			return nil
		})
		return err
	}, key)
	if err != nil {
		return nil, fmt.Errorf("failed to toggle quick add: %w", err)
	}

	return &ToggleQuickAddOutput{
		QuickAdd: enabled,
	}, nil
}

// ListQuickAdd returns every quick-add name sorted alphabetically
func (r *redisRepository) ListQuickAdd(ctx context.Context, input *ListQuickAddInput) (*ListQuickAddOutput, error) {
	names, err := r.client.SMembers(ctx, quickAddKey).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list quick add names: %w", err)
	}

	sort.Slice(names, func(i, j int) bool {
		return strings.ToLower(names[i]) < strings.ToLower(names[j])
	})

	return &ListQuickAddOutput{
		Names: names,
	}, nil
}
