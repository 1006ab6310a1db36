// Package provision implements the startup configuration state
// machine: load any persisted configuration, try the configured
// network, and fall back to an access point with a captive
// configuration form when either is missing. Unrecoverable outcomes
// are signalled upward; a full restart is the recovery mechanism, not
// an in-process retry loop.
package provision

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/sweeney/multisensor/internal/config"
	"github.com/sweeney/multisensor/internal/portal"
	"github.com/sweeney/multisensor/internal/wifi"
)

// PortalTimeout bounds how long the portal waits for a save before
// the controller gives up and asks for a restart.
const PortalTimeout = 180 * time.Second

// Provisioning outcomes that require a device restart. A fresh boot
// re-enters the state machine with the new stored state.
var (
	// ErrRestartRequired means a new configuration was saved.
	ErrRestartRequired = errors.New("provision: configuration saved, restart required")

	// ErrPortalTimeout means the portal expired with no save.
	ErrPortalTimeout = errors.New("provision: portal timed out without a save")
)

// Store is the configuration persistence consumed by the controller.
type Store interface {
	// Load returns the persisted configuration, or (nil, nil) when
	// none is present.
	Load() (*config.Configuration, error)
	Save(*config.Configuration) error
}

// Portal runs the captive configuration form for one provisioning
// session.
type Portal interface {
	Run(ctx context.Context, prefill portal.Submission, timeout time.Duration) (portal.Submission, error)
}

// Controller runs the provisioning state machine once at startup.
type Controller struct {
	store    Store
	wifi     wifi.Manager
	portal   Portal
	deviceID string
}

// NewController creates a Controller. deviceID is the module's
// hardware identity as 12 lowercase hex digits.
func NewController(store Store, w wifi.Manager, p Portal, deviceID string) *Controller {
	return &Controller{
		store:    store,
		wifi:     w,
		portal:   p,
		deviceID: deviceID,
	}
}

// AccessPointName returns the SSID the module advertises while in
// provisioning mode.
func (c *Controller) AccessPointName() string {
	return "MULTISENSOR-" + c.deviceID
}

// DefaultTopic returns the generated publish topic offered to the
// user when none is configured.
func (c *Controller) DefaultTopic() string {
	return c.deviceID + "/status"
}

// Run executes the state machine and returns the validated
// configuration on the Connected path. Every other path returns an
// error; ErrRestartRequired and ErrPortalTimeout instruct the caller
// to restart the device.
func (c *Controller) Run(ctx context.Context) (*config.Configuration, error) {
	cfg, err := c.store.Load()
	if err != nil {
		return nil, fmt.Errorf("load configuration: %w", err)
	}

	if cfg == nil {
		// Never configured, or storage was corrupt. Any stored
		// network credentials belong to an unknown past life.
		log.Printf("provision: no stored configuration")
		if err := c.wifi.ResetCredentials(); err != nil {
			log.Printf("provision: reset credentials: %v", err)
		}
		return nil, c.runPortal(ctx, nil)
	}

	if !c.wifi.HasCredentials() {
		log.Printf("provision: no host network configured")
		return nil, c.runPortal(ctx, cfg)
	}

	if err := c.wifi.Join(ctx); err != nil {
		log.Printf("provision: cannot join configured network: %v", err)
		return nil, c.runPortal(ctx, cfg)
	}

	log.Printf("provision: connected to configured network")
	return cfg, nil
}

// runPortal opens the access point and configuration form, persists a
// submission if one arrives, and reports the outcome as an error the
// caller acts on by restarting.
func (c *Controller) runPortal(ctx context.Context, existing *config.Configuration) error {
	apName := c.AccessPointName()
	if err := c.wifi.StartAccessPoint(apName); err != nil {
		return fmt.Errorf("start access point: %w", err)
	}
	defer func() {
		if err := c.wifi.StopAccessPoint(); err != nil {
			log.Printf("provision: stop access point: %v", err)
		}
	}()

	log.Printf("provision: access point %s up, portal open for %v", apName, PortalTimeout)

	sub, err := c.portal.Run(ctx, c.prefill(existing), PortalTimeout)
	if err != nil {
		if errors.Is(err, portal.ErrTimeout) {
			return ErrPortalTimeout
		}
		return fmt.Errorf("portal: %w", err)
	}

	if sub.SSID != "" {
		if err := c.wifi.SetCredentials(sub.SSID, sub.WifiPassword); err != nil {
			return fmt.Errorf("store network credentials: %w", err)
		}
	}

	cfg := &config.Configuration{
		ServerName:    sub.ServerName,
		ServerPort:    sub.ServerPort,
		Username:      sub.Username,
		Password:      sub.Password,
		Topic:         sub.Topic,
		PropertyNames: sub.PropertyNames,
	}
	if err := c.store.Save(cfg); err != nil {
		return fmt.Errorf("save configuration: %w", err)
	}

	log.Printf("provision: configuration saved")
	return ErrRestartRequired
}

// prefill builds the form defaults: existing field values when a
// configuration is present, otherwise the generated topic and the
// conventional broker port.
func (c *Controller) prefill(existing *config.Configuration) portal.Submission {
	pre := portal.Submission{
		ServerPort: config.DefaultServerPort,
		Topic:      c.DefaultTopic(),
	}
	if existing == nil {
		return pre
	}

	pre.ServerName = existing.ServerName
	pre.ServerPort = existing.ServerPort
	pre.Username = existing.Username
	pre.Password = existing.Password
	if existing.Topic != "" {
		pre.Topic = existing.Topic
	}
	pre.PropertyNames = existing.PropertyNames
	return pre
}
