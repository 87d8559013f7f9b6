package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/pixil98/go-tilequest/internal/story"
)

const (
	subjectPrefix = "tilequest.session."
	subjectSuffix = ".events"

	EventGoalCompleted = "goal_completed"
)

// SessionSubject is where events for one game session are published.
func SessionSubject(id uuid.UUID) string {
	return subjectPrefix + id.String() + subjectSuffix
}

// AllSessions matches the events of every session.
const AllSessions = subjectPrefix + "*" + subjectSuffix

type Event struct {
	Type    string    `json:"type"`
	Session uuid.UUID `json:"session"`
	Goal    int       `json:"goal"`
	Final   bool      `json:"final"`
	At      time.Time `json:"at"`
}

type publisher interface {
	Publish(subject string, data []byte) error
	Subscribe(subject string, handler func(subject string, data []byte)) (func(), error)
}

// EventPublisher sends game events over NATS. It satisfies game.Notifier.
type EventPublisher struct {
	server publisher
	now    func() time.Time
}

func NewEventPublisher(server publisher) *EventPublisher {
	return &EventPublisher{server: server, now: time.Now}
}

func (p *EventPublisher) GoalCompleted(ctx context.Context, session uuid.UUID, ev story.GoalCompleted) error {
	data, err := json.Marshal(Event{
		Type:    EventGoalCompleted,
		Session: session,
		Goal:    ev.Goal,
		Final:   ev.Final,
		At:      p.now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("marshalling event: %w", err)
	}

	subject := SessionSubject(session)
	if err := p.server.Publish(subject, data); err != nil {
		return fmt.Errorf("publishing to %s: %w", subject, err)
	}
	slog.DebugContext(ctx, "published event", "subject", subject, "goal", ev.Goal)
	return nil
}

// Subscribe decodes events on subject and hands them to fn. Messages that
// are not events are logged and skipped.
func (p *EventPublisher) Subscribe(subject string, fn func(Event)) (func(), error) {
	return p.server.Subscribe(subject, func(subj string, data []byte) {
		var ev Event
		if err := json.Unmarshal(data, &ev); err != nil {
			slog.Warn("dropping malformed event", "subject", subj, "error", err)
			return
		}
		if ev.Session == uuid.Nil {
			ev.Session = sessionFromSubject(subj)
		}
		fn(ev)
	})
}

func sessionFromSubject(subject string) uuid.UUID {
	s := strings.TrimSuffix(strings.TrimPrefix(subject, subjectPrefix), subjectSuffix)
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil
	}
	return id
}
