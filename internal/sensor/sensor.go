// Package sensor defines channel readings and the per-cycle snapshot
// capture. This package has no hardware dependencies; the real sensors
// are injected through the EnvReader and SwitchReader interfaces.
package sensor

import "time"

// Undefined is the serialized sentinel for a failed or disabled
// reading. It lies outside every legal measurement range (humidity
// 0..100, temperature -40..80, switch 0..1).
const Undefined = 999

// NumSwitches is the number of switch/tilt input channels.
const NumSwitches = 4

// Reading is the value of one monitored channel. A reading with
// Valid=false is "undefined": the underlying read failed or the
// channel is disabled.
type Reading struct {
	Value int
	Valid bool
}

// Serialized returns the wire value for the reading: the measured
// value, or the Undefined sentinel when the reading is not valid.
func (r Reading) Serialized() int {
	if !r.Valid {
		return Undefined
	}
	return r.Value
}

// Equal reports whether two readings carry the same value. Undefined
// compares equal only to undefined; the stale Value of an invalid
// reading is ignored.
func (r Reading) Equal(o Reading) bool {
	if r.Valid != o.Valid {
		return false
	}
	return !r.Valid || r.Value == o.Value
}

// Snapshot is one synchronous capture of all channel readings.
// Immutable once captured; superseded by the next capture.
type Snapshot struct {
	Humidity    Reading
	Temperature Reading
	Switches    [NumSwitches]Reading
	Time        time.Time
}

// Equal compares two snapshots fieldwise. The capture time is not
// part of the comparison.
func (s Snapshot) Equal(o Snapshot) bool {
	if !s.Humidity.Equal(o.Humidity) || !s.Temperature.Equal(o.Temperature) {
		return false
	}
	for i := range s.Switches {
		if !s.Switches[i].Equal(o.Switches[i]) {
			return false
		}
	}
	return true
}

// EnvReader reads the ambient humidity/temperature sensor.
type EnvReader interface {
	// Read returns relative humidity in percent and temperature in
	// degrees Celsius. A failure invalidates both values for the
	// cycle; partial success is not representable.
	Read() (humidity, temperature int, err error)
}

// SwitchReader reads one switch channel's raw level.
type SwitchReader interface {
	Read(channel int) (int, error)
}

// Capture reads every enabled channel once and returns the resulting
// snapshot. Disabled channels are never sensed and stay undefined.
// Read failures yield an undefined reading for this cycle only; there
// are no retries at this layer.
func Capture(env EnvReader, switches SwitchReader, enabled [NumSwitches]bool, now time.Time) Snapshot {
	snap := Snapshot{Time: now}

	if hum, temp, err := env.Read(); err == nil {
		snap.Humidity = Reading{Value: hum, Valid: true}
		snap.Temperature = Reading{Value: temp, Valid: true}
	}

	for i := 0; i < NumSwitches; i++ {
		if !enabled[i] {
			continue
		}
		if v, err := switches.Read(i); err == nil {
			snap.Switches[i] = Reading{Value: v, Valid: true}
		}
	}

	return snap
}
