package wifi

import "context"

// FakeManager is a test double recording wireless operations.
type FakeManager struct {
	// Credentials controls HasCredentials.
	Credentials bool

	// JoinErr, if set, is returned by Join.
	JoinErr error

	// JoinCalls counts Join calls.
	JoinCalls int

	// SSID and Password record the last SetCredentials call.
	SSID     string
	Password string

	// ResetCalls counts ResetCredentials calls.
	ResetCalls int

	// APName records the SSID passed to StartAccessPoint.
	APName string

	// APRunning tracks the access point state.
	APRunning bool
}

// HasCredentials reports the configured flag.
func (f *FakeManager) HasCredentials() bool {
	return f.Credentials
}

// Join returns the configured error.
func (f *FakeManager) Join(ctx context.Context) error {
	f.JoinCalls++
	return f.JoinErr
}

// SetCredentials records the credentials.
func (f *FakeManager) SetCredentials(ssid, password string) error {
	f.SSID = ssid
	f.Password = password
	f.Credentials = true
	return nil
}

// ResetCredentials forgets the credentials.
func (f *FakeManager) ResetCredentials() error {
	f.ResetCalls++
	f.Credentials = false
	f.SSID = ""
	f.Password = ""
	return nil
}

// StartAccessPoint records the access point SSID.
func (f *FakeManager) StartAccessPoint(ssid string) error {
	f.APName = ssid
	f.APRunning = true
	return nil
}

// StopAccessPoint marks the access point stopped.
func (f *FakeManager) StopAccessPoint() error {
	f.APRunning = false
	return nil
}
