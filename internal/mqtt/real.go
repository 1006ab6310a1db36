package mqtt

import (
	"fmt"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"
)

const publishTimeout = 5 * time.Second

// RealClient publishes to an actual MQTT broker via paho.
type RealClient struct {
	client paho.Client
}

// NewRealClient creates a client for the given broker. The connection
// is not attempted until Connect is called.
func NewRealClient(server string, port int, username, password, clientID string) *RealClient {
	opts := paho.NewClientOptions().
		AddBroker(fmt.Sprintf("tcp://%s:%d", server, port)).
		SetClientID(clientID).
		SetUsername(username).
		SetPassword(password).
		SetAutoReconnect(true).
		SetConnectRetry(true).
		SetConnectRetryInterval(ConnectRetryInterval)

	return &RealClient{client: paho.NewClient(opts)}
}

// IsConnected reports whether the broker connection is up.
func (c *RealClient) IsConnected() bool {
	return c.client.IsConnected()
}

// Connect blocks until the broker accepts the connection. paho's
// connect-retry supplies the fixed 5-second backoff between attempts.
func (c *RealClient) Connect() error {
	token := c.client.Connect()
	token.Wait()
	if err := token.Error(); err != nil {
		return fmt.Errorf("connect to broker: %w", err)
	}
	return nil
}

// Publish sends the payload to the topic at QoS 0, retained so the
// last state stays available to late subscribers.
func (c *RealClient) Publish(topic string, payload []byte) error {
	token := c.client.Publish(topic, 0, true, payload)
	if !token.WaitTimeout(publishTimeout) {
		return fmt.Errorf("publish timeout")
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("publish: %w", err)
	}
	return nil
}

// Close disconnects from the broker.
func (c *RealClient) Close() error {
	c.client.Disconnect(1000) // 1 second timeout
	return nil
}
