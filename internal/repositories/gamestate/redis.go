package gamestate

import (
	"context"
	"encoding/json"
	"log/slog"

	redis "github.com/redis/go-redis/v9"

	"github.com/oakmund/grindstone/internal/content"
	"github.com/oakmund/grindstone/internal/entities"
	"github.com/oakmund/grindstone/internal/errors"
	"github.com/oakmund/grindstone/internal/pkg/clock"
	redisclient "github.com/oakmund/grindstone/internal/redis"
)

const (
	saveKeyPrefix = "save:"

	// Error messages
	errSlotEmpty = "slot cannot be empty"
	errBundleNil = "bundle cannot be nil"
	errPlayerNil = "bundle player cannot be nil"
)

type redisRepository struct {
	client redisclient.Client
	clock  clock.Clock
}

// RedisConfig holds the dependencies for the Redis-backed repository
type RedisConfig struct {
	Client redisclient.Client
	// Clock defaults to the real clock
	Clock clock.Clock
}

// Validate ensures all required dependencies are provided
func (c *RedisConfig) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.Client == nil {
		vb.RequiredField("Client")
	}

	return vb.Build()
}

// NewRedisRepository creates a new Redis-backed save-slot repository
func NewRedisRepository(cfg *RedisConfig) (Repository, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	c := cfg.Clock
	if c == nil {
		c = clock.New()
	}

	return &redisRepository{
		client: cfg.Client,
		clock:  c,
	}, nil
}

func (r *redisRepository) Save(ctx context.Context, input SaveInput) (*SaveOutput, error) {
	if input.Slot == "" {
		return nil, errors.InvalidArgument(errSlotEmpty)
	}
	if input.Bundle == nil {
		return nil, errors.InvalidArgument(errBundleNil)
	}
	if input.Bundle.Player == nil {
		return nil, errors.InvalidArgument(errPlayerNil)
	}

	// Stamp a copy so the caller's bundle is untouched.
	bundle := *input.Bundle
	bundle.Version = entities.SaveBundleVersion
	bundle.SavedAt = r.clock.Now().UTC()

	data, err := json.Marshal(&bundle)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to marshal save bundle")
	}

	if err := r.client.Set(ctx, saveKeyPrefix+input.Slot, data, 0).Err(); err != nil {
		return nil, errors.Wrapf(err, "failed to save slot %s", input.Slot)
	}

	return &SaveOutput{}, nil
}

func (r *redisRepository) Load(ctx context.Context, input LoadInput) (*LoadOutput, error) {
	if input.Slot == "" {
		return nil, errors.InvalidArgument(errSlotEmpty)
	}

	result, err := r.client.Get(ctx, saveKeyPrefix+input.Slot).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, errors.NotFoundf("slot %s not found", input.Slot)
		}
		return nil, errors.Wrapf(err, "failed to load slot %s", input.Slot)
	}

	var bundle entities.SaveBundle
	if err := json.Unmarshal([]byte(result), &bundle); err != nil {
		slog.Warn("corrupted save blob, starting fresh",
			"slot", input.Slot, "error", err)
		return &LoadOutput{Bundle: r.defaultBundle()}, nil
	}
	if bundle.Player == nil {
		slog.Warn("save bundle missing player, starting fresh", "slot", input.Slot)
		return &LoadOutput{Bundle: r.defaultBundle()}, nil
	}

	return &LoadOutput{Bundle: &bundle}, nil
}

func (r *redisRepository) Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error) {
	if input.Slot == "" {
		return nil, errors.InvalidArgument(errSlotEmpty)
	}

	if err := r.client.Del(ctx, saveKeyPrefix+input.Slot).Err(); err != nil {
		return nil, errors.Wrapf(err, "failed to delete slot %s", input.Slot)
	}

	return &DeleteOutput{}, nil
}

func (r *redisRepository) defaultBundle() *entities.SaveBundle {
	return entities.NewSaveBundle(content.NewDefaultPlayer(), nil, r.clock.Now().UTC())
}
