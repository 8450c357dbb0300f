package messaging

import "time"

type BrokerOpt func(*Broker)

// WithStartTimeout sets the startup timeout for the embedded server
func WithStartTimeout(d time.Duration) BrokerOpt {
	return func(b *Broker) {
		b.startupTimeout = d
	}
}

// WithHost sets the host for the embedded server
func WithHost(host string) BrokerOpt {
	return func(b *Broker) {
		b.host = host
	}
}

// WithPort sets the port for the embedded server
func WithPort(port int) BrokerOpt {
	return func(b *Broker) {
		b.port = port
	}
}
