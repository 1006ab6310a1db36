//go:build linux

package gpio

import (
	"fmt"

	"github.com/warthog618/go-gpiocdev"

	"github.com/sweeney/multisensor/internal/sensor"
)

// RealReader reads switch inputs from actual hardware using the Linux
// GPIO character device. Only enabled channels have their lines
// requested; disabled channels are never touched.
type RealReader struct {
	chip  *gpiocdev.Chip
	lines [sensor.NumSwitches]*gpiocdev.Line
}

// NewRealReader opens the named GPIO chip and requests the pins of
// the enabled channels as pulled-up inputs (the switch shorts the pin
// to ground when tripped).
func NewRealReader(chipName string, pins [sensor.NumSwitches]int, enabled [sensor.NumSwitches]bool) (*RealReader, error) {
	chip, err := gpiocdev.NewChip(chipName)
	if err != nil {
		return nil, fmt.Errorf("open gpio chip %s: %w", chipName, err)
	}

	r := &RealReader{chip: chip}
	for i := range pins {
		if !enabled[i] {
			continue
		}
		line, err := chip.RequestLine(pins[i], gpiocdev.AsInput, gpiocdev.WithPullUp)
		if err != nil {
			r.Close()
			return nil, fmt.Errorf("request switch %d pin %d: %w", i, pins[i], err)
		}
		r.lines[i] = line
	}
	return r, nil
}

// Read returns the raw level of the given channel.
func (r *RealReader) Read(channel int) (int, error) {
	if channel < 0 || channel >= sensor.NumSwitches {
		return 0, fmt.Errorf("no such switch channel %d", channel)
	}
	line := r.lines[channel]
	if line == nil {
		return 0, fmt.Errorf("switch channel %d not requested", channel)
	}
	v, err := line.Value()
	if err != nil {
		return 0, fmt.Errorf("read switch %d: %w", channel, err)
	}
	return v, nil
}

// Close releases all requested lines and the chip.
func (r *RealReader) Close() error {
	var errs []error
	for i, line := range r.lines {
		if line == nil {
			continue
		}
		if err := line.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close switch %d: %w", i, err))
		}
		r.lines[i] = nil
	}
	if r.chip != nil {
		if err := r.chip.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close chip: %w", err))
		}
		r.chip = nil
	}
	if len(errs) > 0 {
		return fmt.Errorf("close errors: %v", errs)
	}
	return nil
}
