package gpio

import (
	"fmt"

	"github.com/sweeney/multisensor/internal/sensor"
)

// FakeReader is a test double with settable channel levels.
type FakeReader struct {
	// Values holds the level returned for each channel.
	Values [sensor.NumSwitches]int

	// Errs, when set for a channel, is returned by Read.
	Errs [sensor.NumSwitches]error

	// Reads counts Read calls per channel, so tests can assert that
	// disabled channels are never sensed.
	Reads [sensor.NumSwitches]int

	// Closed tracks if Close was called.
	Closed bool
}

// NewFakeReader creates a FakeReader with all channels at level 0.
func NewFakeReader() *FakeReader {
	return &FakeReader{}
}

// Set sets the level returned for a channel.
func (f *FakeReader) Set(channel, value int) {
	f.Values[channel] = value
}

// Read returns the configured level or error for the channel.
func (f *FakeReader) Read(channel int) (int, error) {
	if channel < 0 || channel >= sensor.NumSwitches {
		return 0, fmt.Errorf("no such switch channel %d", channel)
	}
	f.Reads[channel]++
	if f.Errs[channel] != nil {
		return 0, f.Errs[channel]
	}
	return f.Values[channel], nil
}

// Close marks the reader as closed.
func (f *FakeReader) Close() error {
	f.Closed = true
	return nil
}
