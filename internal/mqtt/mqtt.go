// Package mqtt provides the MQTT transport client with abstraction
// for testing, plus the wire payload encoding for sensor snapshots.
package mqtt

import "time"

// ConnectRetryInterval is the fixed delay between connection attempts
// while the broker is unreachable.
const ConnectRetryInterval = 5 * time.Second

// Client is the narrow transport interface consumed by the main
// cycle. Protocol keep-alive is serviced internally by the
// implementation; there is no per-cycle housekeeping call.
type Client interface {
	// IsConnected reports whether the broker connection is up.
	IsConnected() bool

	// Connect blocks until a broker connection is established,
	// retrying indefinitely at ConnectRetryInterval. Connectivity is
	// assumed eventually recoverable, or the device is power-cycled
	// externally.
	Connect() error

	// Publish sends a retained status payload to the topic,
	// best-effort with no delivery confirmation beyond the broker
	// handshake.
	Publish(topic string, payload []byte) error

	// Close disconnects from the broker.
	Close() error
}
