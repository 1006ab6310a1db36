// Package config defines the persisted module configuration and the
// durable store that holds it. The on-disk layout is a fixed 512-byte
// record with a leading validity marker so that blank or corrupted
// storage reads back as "absent" rather than silently parsing.
package config

import "github.com/sweeney/multisensor/internal/sensor"

// DefaultServerPort is the conventional MQTT broker port.
const DefaultServerPort = 1883

// Configuration is the module's persisted configuration record.
type Configuration struct {
	// ServerName is the MQTT broker hostname or IP address.
	ServerName string
	// ServerPort is the MQTT broker port.
	ServerPort int
	// Username and Password authenticate against the broker.
	Username string
	Password string
	// Topic is the MQTT topic readings are published to.
	Topic string
	// PropertyNames maps switch channels to JSON field names. An
	// empty name disables the channel: it is never sensed and never
	// serialized.
	PropertyNames [sensor.NumSwitches]string
}

// ChannelEnabled reports whether the given switch channel has a
// property name configured.
func (c *Configuration) ChannelEnabled(channel int) bool {
	return c.PropertyNames[channel] != ""
}

// EnabledChannels returns the per-channel enable flags.
func (c *Configuration) EnabledChannels() [sensor.NumSwitches]bool {
	var enabled [sensor.NumSwitches]bool
	for i := range c.PropertyNames {
		enabled[i] = c.PropertyNames[i] != ""
	}
	return enabled
}
