package am2320

import (
	"encoding/binary"
	"fmt"
	"time"

	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/host/v3"
)

// AM2320 function code and register addresses.
const (
	funcReadRegisters = 0x03
	regHumidityHigh   = 0x00
	readLength        = 0x04
)

// RealSensor reads an AM2320 over an I2C bus.
type RealSensor struct {
	bus i2c.BusCloser
	dev i2c.Dev
}

// NewRealSensor opens the named I2C bus (empty selects the first
// available) and verifies the sensor answers at the given address.
// An unreachable sensor is a startup failure: the module is useless
// without it.
func NewRealSensor(busName string, addr uint16) (*RealSensor, error) {
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("init host: %w", err)
	}
	bus, err := i2creg.Open(busName)
	if err != nil {
		return nil, fmt.Errorf("open i2c bus: %w", err)
	}

	s := &RealSensor{
		bus: bus,
		dev: i2c.Dev{Bus: bus, Addr: addr},
	}
	if _, _, err := s.Read(); err != nil {
		bus.Close()
		return nil, fmt.Errorf("probe sensor at %#02x: %w", addr, err)
	}
	return s, nil
}

// Read performs one wake / request / fetch cycle against the sensor.
func (s *RealSensor) Read() (int, int, error) {
	// Wake write. The sensor NAKs this while asleep, so the error is
	// ignored.
	s.dev.Tx([]byte{0x00}, nil)
	time.Sleep(time.Millisecond)

	if err := s.dev.Tx([]byte{funcReadRegisters, regHumidityHigh, readLength}, nil); err != nil {
		return 0, 0, fmt.Errorf("request registers: %w", err)
	}
	time.Sleep(2 * time.Millisecond)

	// Response: function code, byte count, 4 data bytes, CRC16.
	buf := make([]byte, 8)
	if err := s.dev.Tx(nil, buf); err != nil {
		return 0, 0, fmt.Errorf("read registers: %w", err)
	}
	if buf[0] != funcReadRegisters || buf[1] != readLength {
		return 0, 0, fmt.Errorf("unexpected response header % x", buf[:2])
	}
	if got, want := binary.LittleEndian.Uint16(buf[6:8]), crc16(buf[:6]); got != want {
		return 0, 0, fmt.Errorf("crc mismatch: got %#04x, want %#04x", got, want)
	}

	// Both values arrive in tenths; temperature sign lives in bit 15.
	hum := int(binary.BigEndian.Uint16(buf[2:4]))
	rawTemp := binary.BigEndian.Uint16(buf[4:6])
	temp := int(rawTemp & 0x7fff)
	if rawTemp&0x8000 != 0 {
		temp = -temp
	}

	return roundTenths(hum), roundTenths(temp), nil
}

// Close releases the I2C bus.
func (s *RealSensor) Close() error {
	return s.bus.Close()
}

// roundTenths rounds a value expressed in tenths to the nearest whole
// unit, away from zero on ties.
func roundTenths(v int) int {
	if v < 0 {
		return -((-v + 5) / 10)
	}
	return (v + 5) / 10
}

// crc16 is the CRC-16/MODBUS checksum the AM2320 appends to its
// responses.
func crc16(data []byte) uint16 {
	crc := uint16(0xffff)
	for _, b := range data {
		crc ^= uint16(b)
		for i := 0; i < 8; i++ {
			if crc&1 != 0 {
				crc = (crc >> 1) ^ 0xa001
			} else {
				crc >>= 1
			}
		}
	}
	return crc
}
