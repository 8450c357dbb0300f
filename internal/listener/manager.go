package listener

import (
	"context"
	"log/slog"

	"github.com/gorilla/websocket"
	"github.com/pixil98/go-town/internal/auth"
	"github.com/pixil98/go-town/internal/messaging"
	"github.com/pixil98/go-town/internal/town"
)

// Subscriber provides the ability to subscribe to broker subjects.
type Subscriber interface {
	Subscribe(subject string, handler func(data []byte)) (unsubscribe func(), err error)
}

// ConnectionManager admits websocket connections and runs one client
// session per connection until it ends.
type ConnectionManager struct {
	town    *town.Town
	gate    *auth.Gatekeeper
	sub     Subscriber
	emitter *messaging.Emitter
}

func NewConnectionManager(t *town.Town, gate *auth.Gatekeeper, sub Subscriber, em *messaging.Emitter) *ConnectionManager {
	return &ConnectionManager{
		town:    t,
		gate:    gate,
		sub:     sub,
		emitter: em,
	}
}

func (m *ConnectionManager) AcceptConnection(ctx context.Context, conn *websocket.Conn) {
	s := newClientSession(conn, m.town, m.gate, m.sub, m.emitter)
	if err := s.run(ctx); err != nil {
		slog.WarnContext(ctx, "client session", "error", err)
	}
}
