package mqtt

// Publication records one published message.
type Publication struct {
	Topic   string
	Payload []byte
}

// FakeClient records published payloads for test assertions.
type FakeClient struct {
	// Connected controls the return value of IsConnected. Connect
	// sets it to true unless ConnectError is set.
	Connected bool

	// ConnectCalls counts Connect calls.
	ConnectCalls int

	// ConnectError, if set, is returned by Connect.
	ConnectError error

	// Published contains all published messages in order.
	Published []Publication

	// PublishError, if set, is returned by Publish.
	PublishError error

	// Closed tracks if Close was called.
	Closed bool
}

// NewFakeClient creates a FakeClient for testing.
func NewFakeClient() *FakeClient {
	return &FakeClient{}
}

// IsConnected reports the fake connection state.
func (f *FakeClient) IsConnected() bool {
	return f.Connected
}

// Connect marks the fake as connected.
func (f *FakeClient) Connect() error {
	f.ConnectCalls++
	if f.ConnectError != nil {
		return f.ConnectError
	}
	f.Connected = true
	return nil
}

// Publish records the message.
func (f *FakeClient) Publish(topic string, payload []byte) error {
	if f.PublishError != nil {
		return f.PublishError
	}
	f.Published = append(f.Published, Publication{Topic: topic, Payload: payload})
	return nil
}

// Close marks the client as closed.
func (f *FakeClient) Close() error {
	f.Closed = true
	return nil
}

// Reset clears recorded state.
func (f *FakeClient) Reset() {
	f.Connected = false
	f.ConnectCalls = 0
	f.ConnectError = nil
	f.Published = nil
	f.PublishError = nil
	f.Closed = false
}
