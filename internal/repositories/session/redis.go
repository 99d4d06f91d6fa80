package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/KirkDiggler/pokerledger/internal/models"
	"github.com/redis/go-redis/v9"
)

// Config holds configuration for the Redis session repository
type Config struct {
	// Redis client
	RedisClient *redis.Client

	// Logger is optional; defaults to slog.Default()
	Logger *slog.Logger
}

// redisRepository implements the Repository interface using Redis
type redisRepository struct {
	client *redis.Client
	logger *slog.Logger
}

// NewRedis creates a new Redis-backed session repository
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

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &redisRepository{
		client: cfg.RedisClient,
		logger: logger.With("component", "session_repository"),
	}, nil
}

// NextSessionID increments the counter for the day and formats the ID
func (r *redisRepository) NextSessionID(ctx context.Context, input *NextSessionIDInput) (*NextSessionIDOutput, error) {
	if input == nil || input.Date.IsZero() {
		return nil, errors.New("input and date cannot be empty")
	}

	datePrefix := input.Date.Format("20060102")
	seq, err := r.client.Incr(ctx, sessionSeqKey(datePrefix)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to allocate session ID: %w", err)
	}

	return &NextSessionIDOutput{
		SessionID:  fmt.Sprintf("%s-%d", datePrefix, seq),
		DatePrefix: datePrefix,
	}, nil
}

// CreateSession stores a new session and indexes it by creation time
func (r *redisRepository) CreateSession(ctx context.Context, input *CreateSessionInput) error {
	if input == nil || input.Session == nil {
		return errors.New("input and session cannot be nil")
	}
	if input.Session.ID == "" {
		return errors.New("session ID cannot be empty")
	}

	fields, err := encodeFields(input.Session, true)
	if err != nil {
		return err
	}

	key := sessionKey(input.Session.ID)
	err = r.client.Watch(ctx, func(tx *redis.Tx) error {
		// Refuse to overwrite an existing session
		exists, err := tx.Exists(ctx, key).Result()
		if err != nil {
			return err
		}
		if exists > 0 {
			return ErrSessionExists
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.HSet(ctx, key, fields)
			pipe.ZAdd(ctx, sessionsIndexKey(), redis.Z{
				Score:  float64(input.Session.CreatedAt.Unix()),
				Member: input.Session.ID,
			})
			return nil
		})
		return err
	}, key)
	if err != nil {
		if errors.Is(err, ErrSessionExists) || errors.Is(err, redis.TxFailedErr) {
			return ErrSessionExists
		}
		return fmt.Errorf("failed to create session: %w", err)
	}

	r.publish(ctx, input.Session.ID)
	return nil
}

// GetSession retrieves a session by ID from Redis
func (r *redisRepository) GetSession(ctx context.Context, input *GetSessionInput) (*models.Session, error) {
	if input == nil || input.SessionID == "" {
		return nil, errors.New("input and session ID cannot be empty")
	}

	fields, err := r.client.HGetAll(ctx, sessionKey(input.SessionID)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}
	if len(fields) == 0 {
		return nil, ErrSessionNotFound
	}

	session, err := decodeFields(fields)
	if err != nil {
		return nil, fmt.Errorf("failed to decode session %s: %w", input.SessionID, err)
	}

	return session, nil
}

// saveAttempts bounds how often a guarded merge is retried when another
// writer touches the key between WATCH and EXEC
const saveAttempts = 3

// SaveSession merges the non-state fields of the session into Redis. When
// input.ExpectedState is set the merge only applies while the stored game
// state still matches it.
func (r *redisRepository) SaveSession(ctx context.Context, input *SaveSessionInput) error {
	if input == nil || input.Session == nil {
		return errors.New("input and session cannot be nil")
	}
	if input.Session.ID == "" {
		return errors.New("session ID cannot be empty")
	}

	fields, err := encodeFields(input.Session, false)
	if err != nil {
		return err
	}

	key := sessionKey(input.Session.ID)

	// Only merge into documents that exist, otherwise a save could create a
	// session with no game state
	merge := func(tx *redis.Tx) error {
		if input.ExpectedState == "" {
			exists, err := tx.Exists(ctx, key).Result()
			if err != nil {
				return err
			}
			if exists == 0 {
				return ErrSessionNotFound
			}
		} else {
			current, err := tx.HGet(ctx, key, fieldGameState).Result()
			if err != nil {
				if err == redis.Nil {
					return ErrSessionNotFound
				}
				return err
			}
			if models.GameState(current) != input.ExpectedState {
				return ErrStateConflict
			}
		}

		_, err := tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.HSet(ctx, key, fields)
			return nil
		})
		return err
	}

	for attempt := 1; ; attempt++ {
		err = r.client.Watch(ctx, merge, key)
		if !errors.Is(err, redis.TxFailedErr) || attempt == saveAttempts {
			break
		}
	}

	switch {
	case err == nil:
	case errors.Is(err, ErrSessionNotFound):
		return ErrSessionNotFound
	case errors.Is(err, ErrStateConflict):
		return ErrStateConflict
	case errors.Is(err, redis.TxFailedErr):
		if input.ExpectedState != "" {
			return ErrStateConflict
		}
		// Unguarded saves are last write wins
		if err := r.client.HSet(ctx, key, fields).Err(); err != nil {
			return fmt.Errorf("failed to save session: %w", err)
		}
	default:
		return fmt.Errorf("failed to save session: %w", err)
	}

	r.publish(ctx, input.Session.ID)
	return nil
}

// TransitionGameState writes the full document if the stored state is still input.From
func (r *redisRepository) TransitionGameState(ctx context.Context, input *TransitionGameStateInput) error {
	if input == nil || input.Session == nil {
		return errors.New("input and session cannot be nil")
	}
	if input.Session.ID == "" {
		return errors.New("session ID cannot be empty")
	}

	fields, err := encodeFields(input.Session, true)
	if err != nil {
		return err
	}

	key := sessionKey(input.Session.ID)
	err = r.client.Watch(ctx, func(tx *redis.Tx) error {
		// Compare
		current, err := tx.HGet(ctx, key, fieldGameState).Result()
		if err != nil {
			if err == redis.Nil {
				return ErrSessionNotFound
			}
			return err
		}
		if models.GameState(current) != input.From {
			return ErrStateConflict
		}

		// Swap
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.HSet(ctx, key, fields)
			return nil
		})
		return err
	}, key)
	if err != nil {
		switch {
		case errors.Is(err, ErrSessionNotFound):
			return ErrSessionNotFound
		case errors.Is(err, ErrStateConflict), errors.Is(err, redis.TxFailedErr):
			return ErrStateConflict
		}
		return fmt.Errorf("failed to transition session: %w", err)
	}

	r.publish(ctx, input.Session.ID)
	return nil
}

// ListSessions returns IDs from the creation-time index, newest first
func (r *redisRepository) ListSessions(ctx context.Context, input *ListSessionsInput) (*ListSessionsOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	opt := &redis.ZRangeBy{
		Min: strconv.FormatInt(input.Since.Unix(), 10),
		Max: "+inf",
	}
	if input.Since.IsZero() {
		opt.Min = "-inf"
	}
	if input.Limit > 0 {
		opt.Count = input.Limit
	}

	ids, err := r.client.ZRevRangeByScore(ctx, sessionsIndexKey(), opt).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}

	return &ListSessionsOutput{
		SessionIDs: ids,
	}, nil
}

// Subscribe listens on the session's update channel and reloads the document
// for every notification. The subscription ends when ctx is done or Close is called.
func (r *redisRepository) Subscribe(ctx context.Context, input *SubscribeInput) (*Subscription, error) {
	if input == nil || input.SessionID == "" {
		return nil, errors.New("input and session ID cannot be empty")
	}

	pubsub := r.client.Subscribe(ctx, updatesChannel(input.SessionID))

	// Wait for the subscription to be confirmed so no update is missed
	if _, err := pubsub.Receive(ctx); err != nil {
		_ = pubsub.Close()
		return nil, fmt.Errorf("failed to subscribe to session: %w", err)
	}

	updates := make(chan *models.Session, 1)
	go func() {
		defer close(updates)
		messages := pubsub.Channel()
		for {
			select {
			case <-ctx.Done():
				_ = pubsub.Close()
				return
			case _, ok := <-messages:
				if !ok {
					return
				}

				session, err := r.GetSession(ctx, &GetSessionInput{SessionID: input.SessionID})
				if err != nil {
					r.logger.Warn("failed to reload session for subscriber",
						"session_id", input.SessionID,
						"error", err)
					continue
				}

				// Keep only the newest document for slow readers
				select {
				case <-updates:
				default:
				}
				select {
				case updates <- session:
				case <-ctx.Done():
					_ = pubsub.Close()
					return
				}
			}
		}
	}()

	return NewSubscription(updates, pubsub.Close), nil
}

func (r *redisRepository) publish(ctx context.Context, sessionID string) {
	if err := r.client.Publish(ctx, updatesChannel(sessionID), sessionID).Err(); err != nil {
		r.logger.Warn("failed to publish session update",
			"session_id", sessionID,
			"error", err)
	}
}
