package saves

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/pixil98/go-tilequest/internal/game"
)

const DefaultKeyPrefix = "tilequest:save:"

// RedisStore keeps each slot as a JSON string under prefix+slotN.
type RedisStore struct {
	client *redis.Client
	prefix string
}

type RedisOpt func(*RedisStore)

func WithKeyPrefix(prefix string) RedisOpt {
	return func(s *RedisStore) {
		s.prefix = prefix
	}
}

// DialRedis connects to a redis:// URL and checks the server answers.
func DialRedis(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parsing redis url: %w", err)
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("pinging redis: %w", err)
	}
	return client, nil
}

func NewRedisStore(client *redis.Client, opts ...RedisOpt) *RedisStore {
	s := &RedisStore{client: client, prefix: DefaultKeyPrefix}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *RedisStore) key(slot int) string {
	return s.prefix + slotID(slot)
}

func (s *RedisStore) Save(ctx context.Context, slot int, snap *game.Snapshot) error {
	if err := checkSlot(slot); err != nil {
		return err
	}
	if err := snap.Validate(); err != nil {
		return fmt.Errorf("validating save: %w", err)
	}

	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("marshalling save: %w", err)
	}
	if err := s.client.Set(ctx, s.key(slot), data, 0).Err(); err != nil {
		return fmt.Errorf("saving slot %d: %w", slot, err)
	}

	slog.InfoContext(ctx, "game saved", "slot", slot, "session", snap.ID)
	return nil
}

func (s *RedisStore) Load(ctx context.Context, slot int) (*game.Snapshot, error) {
	if err := checkSlot(slot); err != nil {
		return nil, err
	}

	data, err := s.client.Get(ctx, s.key(slot)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrEmptySlot
	}
	if err != nil {
		return nil, fmt.Errorf("loading slot %d: %w", slot, err)
	}
	return decode(data)
}

func (s *RedisStore) List(ctx context.Context) (map[int]*game.Snapshot, error) {
	keys := make([]string, Slots)
	for i := range keys {
		keys[i] = s.key(i + 1)
	}

	vals, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("listing saves: %w", err)
	}

	used := map[int]*game.Snapshot{}
	for i, v := range vals {
		str, ok := v.(string)
		if !ok {
			continue
		}
		snap, err := decode([]byte(str))
		if err != nil {
			// A broken slot shows as empty so it can be overwritten.
			slog.WarnContext(ctx, "skipping unreadable save", "slot", i+1, "error", err)
			continue
		}
		used[i+1] = snap
	}
	return used, nil
}

func decode(data []byte) (*game.Snapshot, error) {
	snap := &game.Snapshot{}
	if err := json.Unmarshal(data, snap); err != nil {
		return nil, fmt.Errorf("%w: %w", game.ErrCorruptSnapshot, err)
	}
	return snap, nil
}
