package am2320

import (
	"errors"
	"testing"
)

func TestCRC16(t *testing.T) {
	// CRC-16/MODBUS check value.
	if got := crc16([]byte("123456789")); got != 0x4b37 {
		t.Errorf("crc16: got %#04x, want 0x4b37", got)
	}
	if got := crc16(nil); got != 0xffff {
		t.Errorf("crc16 of empty input: got %#04x, want 0xffff", got)
	}
}

func TestRoundTenths(t *testing.T) {
	tests := []struct {
		in, want int
	}{
		{0, 0},
		{214, 21},
		{215, 22},
		{550, 55},
		{-400, -40},
		{-405, -41},
		{-404, -40},
		{1000, 100},
	}
	for _, tt := range tests {
		if got := roundTenths(tt.in); got != tt.want {
			t.Errorf("roundTenths(%d): got %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestFakeSensor(t *testing.T) {
	f := NewFakeSensor(55, 21)

	hum, temp, err := f.Read()
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if hum != 55 || temp != 21 {
		t.Errorf("got %d/%d, want 55/21", hum, temp)
	}
	if f.Reads != 1 {
		t.Errorf("read count: got %d, want 1", f.Reads)
	}

	f.Err = errors.New("bus stuck")
	if _, _, err := f.Read(); err == nil {
		t.Error("expected configured error")
	}

	if err := f.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if !f.Closed {
		t.Error("Closed not set")
	}
}
