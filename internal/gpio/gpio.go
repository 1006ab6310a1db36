// Package gpio provides switch input reading with hardware
// abstraction. The real implementation uses the Linux GPIO character
// device; the fake implementation allows testing without hardware.
package gpio

import "github.com/sweeney/multisensor/internal/sensor"

// Reader reads switch channel levels.
type Reader interface {
	// Read returns the raw level (0 or 1) of the given channel.
	// Reading a channel that was not requested is an error.
	Read(channel int) (int, error)

	// Close releases GPIO resources.
	Close() error
}

// DefaultChip is the GPIO character device on Raspberry Pi class
// hardware.
const DefaultChip = "gpiochip0"

// DefaultPins holds the default BCM pin assignment for each switch
// channel. Each channel has its own pin.
var DefaultPins = [sensor.NumSwitches]int{5, 6, 13, 19}
