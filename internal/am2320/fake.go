package am2320

// FakeSensor is a test double with settable readings.
type FakeSensor struct {
	// Humidity and Temperature are returned by Read.
	Humidity    int
	Temperature int

	// Err, if set, is returned by Read.
	Err error

	// Reads counts Read calls.
	Reads int

	// Closed tracks if Close was called.
	Closed bool
}

// NewFakeSensor creates a FakeSensor returning the given values.
func NewFakeSensor(humidity, temperature int) *FakeSensor {
	return &FakeSensor{Humidity: humidity, Temperature: temperature}
}

// Read returns the configured readings or error.
func (f *FakeSensor) Read() (int, int, error) {
	f.Reads++
	if f.Err != nil {
		return 0, 0, f.Err
	}
	return f.Humidity, f.Temperature, nil
}

// Close marks the sensor as closed.
func (f *FakeSensor) Close() error {
	f.Closed = true
	return nil
}
