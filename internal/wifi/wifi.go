// Package wifi wraps host wireless management behind a narrow
// interface. The real implementation drives NetworkManager via nmcli;
// the fake implementation allows testing without a radio. Connection
// and retry mechanics belong to NetworkManager, not to this module.
package wifi

import "context"

// Manager manages the module's wireless state.
type Manager interface {
	// HasCredentials reports whether a host network is configured.
	HasCredentials() bool

	// Join connects to the configured host network, blocking until
	// connected or failed.
	Join(ctx context.Context) error

	// SetCredentials replaces the stored host network credentials.
	SetCredentials(ssid, password string) error

	// ResetCredentials forgets any stored host network.
	ResetCredentials() error

	// StartAccessPoint opens a local open access point with the given
	// SSID, with the module addressable on its own subnet.
	StartAccessPoint(ssid string) error

	// StopAccessPoint tears the access point down.
	StopAccessPoint() error
}
