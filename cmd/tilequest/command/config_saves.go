package command

import (
	"context"
	"fmt"
	"os"

	"github.com/pixil98/go-errors"

	"github.com/pixil98/go-tilequest/internal/saves"
)

type SavesBackend string

const (
	SavesBackendFile  SavesBackend = "file"
	SavesBackendRedis SavesBackend = "redis"
)

type SavesConfig struct {
	Backend   SavesBackend `json:"backend"`
	Path      string       `json:"path,omitempty"`
	RedisURL  string       `json:"redis_url,omitempty"`
	KeyPrefix string       `json:"key_prefix,omitempty"`
}

func (c *SavesConfig) validate() error {
	el := errors.NewErrorList()

	switch c.Backend {
	case SavesBackendFile, "":
		if c.Path == "" {
			el.Add(fmt.Errorf("saves: path is required for the file backend"))
		}
	case SavesBackendRedis:
		if c.RedisURL == "" {
			el.Add(fmt.Errorf("saves: redis_url is required for the redis backend"))
		}
	default:
		el.Add(fmt.Errorf("saves: unknown backend %q", c.Backend))
	}

	return el.Err()
}

// BuildStore opens the save backend. The returned func releases it.
func (c *SavesConfig) BuildStore(ctx context.Context) (saves.Store, func() error, error) {
	switch c.Backend {
	case SavesBackendRedis:
		client, err := saves.DialRedis(ctx, c.RedisURL)
		if err != nil {
			return nil, nil, err
		}
		var opts []saves.RedisOpt
		if c.KeyPrefix != "" {
			opts = append(opts, saves.WithKeyPrefix(c.KeyPrefix))
		}
		return saves.NewRedisStore(client, opts...), client.Close, nil

	default:
		if err := os.MkdirAll(c.Path, 0o755); err != nil {
			return nil, nil, fmt.Errorf("creating save directory: %w", err)
		}
		st, err := saves.NewFileStore(c.Path)
		if err != nil {
			return nil, nil, err
		}
		return st, func() error { return nil }, nil
	}
}
