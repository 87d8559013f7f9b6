package command

import (
	"fmt"
	"time"

	"github.com/pixil98/go-errors"
)

const (
	defaultTickInterval = "100ms"
	minTickInterval     = 10 * time.Millisecond
)

type Config struct {
	TickInterval string           `json:"tick_interval"`
	Listeners    []ListenerConfig `json:"listeners"`
	Storage      StorageConfig    `json:"storage"`
	Saves        SavesConfig      `json:"saves"`
	Nats         NatsConfig       `json:"nats"`
	Game         GameConfig       `json:"game"`
}

func (c *Config) Validate() error {
	el := errors.NewErrorList()

	if _, err := c.tickInterval(); err != nil {
		el.Add(err)
	}

	if len(c.Listeners) == 0 {
		el.Add(fmt.Errorf("at least one listener is required"))
	}
	ports := map[uint16]bool{}
	for i, l := range c.Listeners {
		if err := l.validate(); err != nil {
			el.Add(fmt.Errorf("listener %d: %w", i, err))
		}
		if l.Port != 0 && ports[l.Port] {
			el.Add(fmt.Errorf("listener %d: port %d is used twice", i, l.Port))
		}
		ports[l.Port] = true
	}

	el.Add(c.Storage.validate())
	el.Add(c.Saves.validate())
	el.Add(c.Nats.validate())
	el.Add(c.Game.validate())

	return el.Err()
}

func (c *Config) tickInterval() (time.Duration, error) {
	s := c.TickInterval
	if s == "" {
		s = defaultTickInterval
	}

	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("parsing tick_interval: %w", err)
	}
	if d < minTickInterval {
		return 0, fmt.Errorf("tick_interval must be at least %s", minTickInterval)
	}
	return d, nil
}

type GameConfig struct {
	// AllowCheats enables the warp command.
	AllowCheats bool `json:"allow_cheats"`
	LineWidth   int  `json:"line_width"`
	// MaxPlayers caps concurrent connections; 0 means no limit.
	MaxPlayers int `json:"max_players"`
}

func (c *GameConfig) validate() error {
	el := errors.NewErrorList()
	if c.LineWidth < 0 {
		el.Add(fmt.Errorf("game: line_width cannot be negative"))
	}
	if c.MaxPlayers < 0 {
		el.Add(fmt.Errorf("game: max_players cannot be negative"))
	}
	return el.Err()
}
