package messaging

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/nats-io/nats-server/v2/server"
	"github.com/nats-io/nats.go"
)

// Broker runs an embedded NATS server and owns the internal client
// connection used for all town event traffic. It is a service worker:
// Start blocks until the context is canceled.
type Broker struct {
	ns   *server.Server
	conn *nats.Conn

	startupTimeout time.Duration
	host           string
	port           int
}

func NewBroker(opts ...BrokerOpt) (*Broker, error) {
	b := &Broker{
		startupTimeout: 10 * time.Second,
		host:           "127.0.0.1",
	}

	for _, opt := range opts {
		opt(b)
	}

	ns, err := server.NewServer(&server.Options{
		Host:   b.host,
		Port:   b.port,
		NoSigs: true, // Let the application handle signals
	})
	if err != nil {
		return nil, err
	}
	b.ns = ns

	return b, nil
}

func (b *Broker) Start(ctx context.Context) error {
	b.ns.Start()

	if !b.ns.ReadyForConnections(b.startupTimeout) {
		return fmt.Errorf("nats server not ready for connections")
	}

	conn, err := nats.Connect(b.ns.ClientURL())
	if err != nil {
		return fmt.Errorf("creating nats client connection: %w", err)
	}
	b.conn = conn

	slog.InfoContext(ctx, "message broker listening", "addr", b.ns.Addr())

	<-ctx.Done()
	b.conn.Close()
	b.ns.Shutdown()
	b.ns.WaitForShutdown()

	return nil
}

// Subscribe registers a handler for a subject. Subjects may contain NATS
// wildcards. Returns an unsubscribe function.
func (b *Broker) Subscribe(subject string, handler func(data []byte)) (func(), error) {
	if b.conn == nil {
		return nil, fmt.Errorf("broker not started")
	}
	sub, err := b.conn.Subscribe(subject, func(msg *nats.Msg) {
		handler(msg.Data)
	})
	if err != nil {
		return nil, err
	}
	return func() { _ = sub.Unsubscribe() }, nil
}

// Publish sends a message to the given subject. Per-subject publish order
// is preserved, which is what gives areas their in-order broadcasts.
func (b *Broker) Publish(subject string, data []byte) error {
	if b.conn == nil {
		return fmt.Errorf("broker not started")
	}
	return b.conn.Publish(subject, data)
}
