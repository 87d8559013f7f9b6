package messaging

import "time"

type NatsServerOpt func(*NatsServer)

// WithStartTimeout sets how long to wait for the server to accept connections.
func WithStartTimeout(d time.Duration) NatsServerOpt {
	return func(n *NatsServer) {
		n.startupTimeout = d
	}
}

func WithHost(host string) NatsServerOpt {
	return func(n *NatsServer) {
		n.host = host
	}
}

// WithPort sets the client port. Use -1 for a random port.
func WithPort(port int) NatsServerOpt {
	return func(n *NatsServer) {
		n.port = port
	}
}

// WithInProcess skips the network listener; only the internal client can
// connect.
func WithInProcess(enabled bool) NatsServerOpt {
	return func(n *NatsServer) {
		n.inProcess = enabled
	}
}
