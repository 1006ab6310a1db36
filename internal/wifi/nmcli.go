package wifi

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// Connection profile names owned by this module.
const (
	uplinkConnection = "multisensor-uplink"
	apConnection     = "multisensor-ap"
)

// NMCli manages wireless state through NetworkManager's nmcli tool.
type NMCli struct {
	// Interface is the wireless interface name, e.g. "wlan0".
	Interface string
}

func (n *NMCli) run(ctx context.Context, args ...string) (string, error) {
	out, err := exec.CommandContext(ctx, "nmcli", args...).CombinedOutput()
	if err != nil {
		return "", fmt.Errorf("nmcli %s: %w (%s)", strings.Join(args, " "), err, strings.TrimSpace(string(out)))
	}
	return string(out), nil
}

// HasCredentials reports whether the uplink connection profile exists.
func (n *NMCli) HasCredentials() bool {
	out, err := n.run(context.Background(), "-t", "-f", "NAME", "connection", "show")
	if err != nil {
		return false
	}
	for _, name := range strings.Split(out, "\n") {
		if strings.TrimSpace(name) == uplinkConnection {
			return true
		}
	}
	return false
}

// Join brings the uplink connection up, blocking until NetworkManager
// reports success or failure.
func (n *NMCli) Join(ctx context.Context) error {
	_, err := n.run(ctx, "connection", "up", uplinkConnection)
	return err
}

// SetCredentials replaces the uplink profile with one for the given
// network.
func (n *NMCli) SetCredentials(ssid, password string) error {
	ctx := context.Background()
	// Ignore delete failure: the profile may not exist yet.
	n.run(ctx, "connection", "delete", uplinkConnection)

	args := []string{
		"connection", "add",
		"type", "wifi",
		"ifname", n.Interface,
		"con-name", uplinkConnection,
		"ssid", ssid,
	}
	if password != "" {
		args = append(args,
			"wifi-sec.key-mgmt", "wpa-psk",
			"wifi-sec.psk", password,
		)
	}
	_, err := n.run(ctx, args...)
	return err
}

// ResetCredentials deletes the uplink profile if present.
func (n *NMCli) ResetCredentials() error {
	if !n.HasCredentials() {
		return nil
	}
	_, err := n.run(context.Background(), "connection", "delete", uplinkConnection)
	return err
}

// StartAccessPoint creates and activates an open access point with a
// shared-address subnet so portal clients can reach the module.
func (n *NMCli) StartAccessPoint(ssid string) error {
	ctx := context.Background()
	n.run(ctx, "connection", "delete", apConnection)

	if _, err := n.run(ctx,
		"connection", "add",
		"type", "wifi",
		"ifname", n.Interface,
		"con-name", apConnection,
		"autoconnect", "no",
		"ssid", ssid,
		"802-11-wireless.mode", "ap",
		"802-11-wireless.band", "bg",
		"ipv4.method", "shared",
	); err != nil {
		return err
	}
	_, err := n.run(ctx, "connection", "up", apConnection)
	return err
}

// StopAccessPoint deactivates and removes the access point profile.
func (n *NMCli) StopAccessPoint() error {
	ctx := context.Background()
	n.run(ctx, "connection", "down", apConnection)
	_, err := n.run(ctx, "connection", "delete", apConnection)
	return err
}
