// Package am2320 reads the AM2320 humidity/temperature sensor with
// hardware abstraction. The real implementation speaks the sensor's
// register protocol over a periph.io I2C bus; the fake implementation
// allows testing without hardware.
package am2320

// Sensor reads ambient humidity and temperature.
type Sensor interface {
	// Read returns relative humidity in percent (0..100) and
	// temperature in degrees Celsius (-40..80), both rounded to the
	// nearest integer. A failed read invalidates both values; the
	// sensor cannot report one without the other.
	Read() (humidity, temperature int, err error)

	// Close releases the underlying bus.
	Close() error
}

// DefaultAddr is the fixed I2C address of the AM2320.
const DefaultAddr = 0x5c
