package command

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/pixil98/go-service"
	"github.com/sirupsen/logrus"

	"github.com/pixil98/go-tilequest/internal/commands"
	"github.com/pixil98/go-tilequest/internal/driver"
	"github.com/pixil98/go-tilequest/internal/game"
	"github.com/pixil98/go-tilequest/internal/listener"
	"github.com/pixil98/go-tilequest/internal/messaging"
	"github.com/pixil98/go-tilequest/internal/player"
)

const savesDialTimeout = 10 * time.Second

func BuildWorkers(config any) (service.WorkerList, error) {
	cfg, ok := config.(*Config)
	if !ok {
		return nil, fmt.Errorf("unable to cast config")
	}

	logger := newLogger()

	// Load the world and compile commands
	book, maps, err := cfg.Storage.LoadWorld()
	if err != nil {
		return nil, err
	}

	cmdStore, err := cfg.Storage.Commands.BuildFileStore()
	if err != nil {
		return nil, fmt.Errorf("creating command store: %w", err)
	}
	cmdHandler := commands.NewHandler(cmdStore)
	if err := cmdHandler.CompileAll(); err != nil {
		return nil, err
	}

	natsServer, err := cfg.Nats.buildNatsServer()
	if err != nil {
		return nil, fmt.Errorf("creating nats server: %w", err)
	}
	events := messaging.NewEventPublisher(natsServer)

	tick, err := cfg.tickInterval()
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), savesDialTimeout)
	defer cancel()
	saveStore, closeSaves, err := cfg.Saves.BuildStore(ctx)
	if err != nil {
		return nil, fmt.Errorf("opening saves: %w", err)
	}

	pm := player.NewManager(book, game.NewStoredMaps(maps), saveStore, cmdHandler,
		player.WithNotifier(events),
		player.WithCheats(cfg.Game.AllowCheats),
		player.WithLineWidth(cfg.Game.LineWidth),
	)

	// Setup the frame driver
	frameDriver := driver.NewFrameDriver([]driver.Manager{pm}, driver.WithTickLength(tick))

	// Create Listeners
	cm := listener.NewConnectionManager(pm, cfg.Game.MaxPlayers)
	listeners := make(service.WorkerList, len(cfg.Listeners))
	for i, l := range cfg.Listeners {
		w, err := l.BuildListener(cm, logger)
		if err != nil {
			_ = closeSaves()
			return nil, fmt.Errorf("creating listener %d: %w", i, err)
		}
		listeners[fmt.Sprintf("listener-%d-%s", i, l.Protocol)] = w
	}

	return service.WorkerList{
		"nats":      natsServer,
		"events":    &eventLog{server: natsServer, events: events, logger: logger},
		"players":   pm,
		"driver":    frameDriver,
		"saves":     &closeOnDone{close: closeSaves},
		"listeners": &listeners,
	}, nil
}

// newLogger builds the logrus logger for the listeners and the event log at
// the level given to the service on the command line.
func newLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	if slog.Default().Enabled(context.Background(), slog.LevelDebug) {
		logger.SetLevel(logrus.DebugLevel)
	}
	return logger
}

// closeOnDone releases a resource once the service shuts down.
type closeOnDone struct {
	close func() error
}

func (c *closeOnDone) Start(ctx context.Context) error {
	<-ctx.Done()
	return c.close()
}

// eventLog writes every game event published on the bus to the server log.
type eventLog struct {
	server *messaging.NatsServer
	events *messaging.EventPublisher
	logger logrus.FieldLogger
}

func (e *eventLog) Start(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return nil
	case <-e.server.Ready():
	}

	unsubscribe, err := e.events.Subscribe(messaging.AllSessions, func(ev messaging.Event) {
		e.logger.WithFields(logrus.Fields{
			"session": ev.Session,
			"goal":    ev.Goal,
			"final":   ev.Final,
		}).Info(ev.Type)
	})
	if err != nil {
		return fmt.Errorf("subscribing to session events: %w", err)
	}
	defer unsubscribe()

	<-ctx.Done()
	return nil
}
