package command

import (
	"context"
	"encoding/json"
	"path/filepath"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/pixil98/go-testutil"

	"github.com/pixil98/go-tilequest/internal/commands"
	"github.com/pixil98/go-tilequest/internal/game"
	"github.com/pixil98/go-tilequest/internal/saves"
	"github.com/pixil98/go-tilequest/internal/story"
	"github.com/pixil98/go-tilequest/internal/world"
)

func validConfig(dir string) Config {
	return Config{
		TickInterval: "50ms",
		Listeners:    []ListenerConfig{{Protocol: ListenerTypeTelnet, Port: 4000}},
		Storage: StorageConfig{
			Storyline: StorylineConfig{AssetConfig: AssetConfig[*story.Book]{Path: dir}},
			Maps:      AssetConfig[*world.AreaSpec]{Path: dir},
			Commands:  AssetConfig[*commands.Command]{Path: dir},
		},
		Saves: SavesConfig{Backend: SavesBackendFile, Path: filepath.Join(dir, "saves")},
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := map[string]struct {
		mutate func(c *Config)
		expErr string
	}{
		"valid": {
			mutate: func(c *Config) {},
		},
		"default tick interval": {
			mutate: func(c *Config) { c.TickInterval = "" },
		},
		"bad tick interval": {
			mutate: func(c *Config) { c.TickInterval = "fast" },
			expErr: "parsing tick_interval",
		},
		"tick interval too short": {
			mutate: func(c *Config) { c.TickInterval = "1ms" },
			expErr: "tick_interval must be at least",
		},
		"no listeners": {
			mutate: func(c *Config) { c.Listeners = nil },
			expErr: "at least one listener",
		},
		"listener without port": {
			mutate: func(c *Config) { c.Listeners[0].Port = 0 },
			expErr: "listener 0: port must be set",
		},
		"duplicate port": {
			mutate: func(c *Config) {
				c.Listeners = append(c.Listeners, ListenerConfig{Protocol: ListenerTypeSSH, Port: 4000})
			},
			expErr: "port 4000 is used twice",
		},
		"host key on telnet": {
			mutate: func(c *Config) { c.Listeners[0].HostKeyPath = "key" },
			expErr: "only used by ssh",
		},
		"missing storage path": {
			mutate: func(c *Config) { c.Storage.Maps.Path = "" },
			expErr: "maps: path is required",
		},
		"storage path does not exist": {
			mutate: func(c *Config) { c.Storage.Commands.Path = "/does/not/exist" },
			expErr: "commands: invalid path",
		},
		"file saves without path": {
			mutate: func(c *Config) { c.Saves.Path = "" },
			expErr: "path is required for the file backend",
		},
		"redis saves without url": {
			mutate: func(c *Config) { c.Saves.Backend = SavesBackendRedis },
			expErr: "redis_url is required",
		},
		"unknown saves backend": {
			mutate: func(c *Config) { c.Saves.Backend = "floppy" },
			expErr: `unknown backend "floppy"`,
		},
		"bad nats timeout": {
			mutate: func(c *Config) { c.Nats.StartTimeout = "soon" },
			expErr: "parsing start_timeout",
		},
		"bad nats port": {
			mutate: func(c *Config) { c.Nats.Port = 70000 },
			expErr: "out of range",
		},
		"negative line width": {
			mutate: func(c *Config) { c.Game.LineWidth = -1 },
			expErr: "line_width cannot be negative",
		},
		"negative max players": {
			mutate: func(c *Config) { c.Game.MaxPlayers = -1 },
			expErr: "max_players cannot be negative",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			cfg := validConfig(t.TempDir())
			tt.mutate(&cfg)

			err := cfg.Validate()
			if tt.expErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			testutil.AssertErrorContains(t, err, tt.expErr)
		})
	}
}

func TestConfig_Decode(t *testing.T) {
	dir := t.TempDir()
	raw := map[string]any{
		"tick_interval": "100ms",
		"listeners": []map[string]any{
			{"protocol": "telnet", "port": 4000},
			{"protocol": "ssh", "port": 4022, "banner": "hello"},
		},
		"storage": map[string]any{
			"storyline": map[string]any{"path": dir, "id": "main"},
			"maps":      map[string]any{"path": dir},
			"commands":  map[string]any{"path": dir},
		},
		"saves": map[string]any{"backend": "file", "path": dir},
		"nats":  map[string]any{"in_process": true},
		"game":  map[string]any{"allow_cheats": true, "line_width": 60},
	}
	data, err := json.Marshal(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	cfg := &Config{}
	if err := json.Unmarshal(data, cfg); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testutil.AssertEqual(t, "listeners", len(cfg.Listeners), 2)
	testutil.AssertEqual(t, "ssh", cfg.Listeners[1].Protocol, ListenerTypeSSH)
	testutil.AssertEqual(t, "banner", cfg.Listeners[1].Banner, "hello")
	testutil.AssertEqual(t, "storyline id", cfg.Storage.Storyline.ID, "main")
	testutil.AssertEqual(t, "storyline path", cfg.Storage.Storyline.Path, dir)
	testutil.AssertEqual(t, "in process", cfg.Nats.InProcess, true)
	testutil.AssertEqual(t, "cheats", cfg.Game.AllowCheats, true)
	testutil.AssertEqual(t, "width", cfg.Game.LineWidth, 60)
}

func TestConfig_DecodeUnknownProtocol(t *testing.T) {
	cfg := &Config{}
	err := json.Unmarshal([]byte(`{"listeners": [{"protocol": "gopher", "port": 70}]}`), cfg)
	testutil.AssertErrorContains(t, err, "unknown listener type: gopher")
}

func TestBuildWorkers(t *testing.T) {
	assets := filepath.Join("..", "..", "..", "assets")
	cfg := &Config{
		Listeners: []ListenerConfig{{Protocol: ListenerTypeTelnet, Port: 4000}},
		Storage: StorageConfig{
			Storyline: StorylineConfig{AssetConfig: AssetConfig[*story.Book]{Path: filepath.Join(assets, "storyline")}},
			Maps:      AssetConfig[*world.AreaSpec]{Path: filepath.Join(assets, "maps")},
			Commands:  AssetConfig[*commands.Command]{Path: filepath.Join(assets, "commands")},
		},
		Saves: SavesConfig{Backend: SavesBackendFile, Path: filepath.Join(t.TempDir(), "saves")},
		Nats:  NatsConfig{InProcess: true},
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	workers, err := BuildWorkers(cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, name := range []string{"nats", "events", "players", "driver", "saves", "listeners"} {
		if _, ok := workers[name]; !ok {
			t.Errorf("missing worker %q", name)
		}
	}

	_, err = BuildWorkers(Config{})
	testutil.AssertErrorContains(t, err, "unable to cast config")
}

func TestCloseOnDone(t *testing.T) {
	closed := make(chan struct{})
	w := &closeOnDone{close: func() error {
		close(closed)
		return nil
	}}

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- w.Start(ctx) }()

	select {
	case <-closed:
		t.Fatal("closed before shutdown")
	case <-time.After(20 * time.Millisecond):
	}

	cancel()
	if err := <-errCh; err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	select {
	case <-closed:
	default:
		t.Fatal("not closed after shutdown")
	}
}

func TestSavesConfig_BuildStore(t *testing.T) {
	ctx := context.Background()
	snap := game.NewGameSnapshot(&story.Book{})
	snap.Quest.Quest = "q0"

	mr := miniredis.RunT(t)

	tests := map[string]SavesConfig{
		"file": {Backend: SavesBackendFile, Path: filepath.Join(t.TempDir(), "nested", "saves")},
		"redis": {Backend: SavesBackendRedis, RedisURL: "redis://" + mr.Addr(), KeyPrefix: "test:"},
	}

	for name, cfg := range tests {
		t.Run(name, func(t *testing.T) {
			st, closeStore, err := cfg.BuildStore(ctx)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			defer func() { _ = closeStore() }()

			if err := st.Save(ctx, 3, snap); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			got, err := st.Load(ctx, 3)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			testutil.AssertEqual(t, "session", got.ID, snap.ID)

			_, err = st.Load(ctx, 4)
			testutil.AssertErrorContains(t, err, saves.ErrEmptySlot.Error())
		})
	}

	testutil.AssertEqual(t, "redis key", mr.Exists("test:slot3"), true)
}

func TestSavesConfig_BuildStoreRedisDown(t *testing.T) {
	cfg := SavesConfig{Backend: SavesBackendRedis, RedisURL: "redis://127.0.0.1:1"}
	_, _, err := cfg.BuildStore(context.Background())
	testutil.AssertErrorContains(t, err, "pinging redis")
}
