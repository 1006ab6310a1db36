package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func testConfig() *Configuration {
	return &Configuration{
		ServerName:    "mqtt.example.com",
		ServerPort:    1883,
		Username:      "node1",
		Password:      "secret",
		Topic:         "node1/status",
		PropertyNames: [4]string{"tilt", "", "", "door"},
	}
}

func storePath(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "config.dat")
}

func TestRoundTrip(t *testing.T) {
	s := NewStore(storePath(t))
	want := testConfig()

	if err := s.Save(want); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := s.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got == nil {
		t.Fatal("load returned absent after save")
	}
	if *got != *want {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", *got, *want)
	}
}

func TestLoadVirginStorage(t *testing.T) {
	s := NewStore(storePath(t))

	got, err := s.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got != nil {
		t.Errorf("expected absent on virgin storage, got %+v", *got)
	}
}

func TestLoadBadMarker(t *testing.T) {
	path := storePath(t)
	buf := encode(testConfig())
	buf[0] = 0x00
	if err := os.WriteFile(path, buf, 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	got, err := NewStore(path).Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got != nil {
		t.Errorf("expected absent with invalid marker, got %+v", *got)
	}
}

func TestLoadTruncatedRecord(t *testing.T) {
	path := storePath(t)
	buf := encode(testConfig())
	if err := os.WriteFile(path, buf[:10], 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	got, err := NewStore(path).Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got != nil {
		t.Errorf("expected absent on truncated record, got %+v", *got)
	}
}

func TestSaveOverwrites(t *testing.T) {
	s := NewStore(storePath(t))

	first := testConfig()
	if err := s.Save(first); err != nil {
		t.Fatalf("save: %v", err)
	}

	second := testConfig()
	second.ServerName = "broker.local"
	second.ServerPort = 8883
	second.PropertyNames = [4]string{"", "window", "", ""}
	if err := s.Save(second); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := s.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got == nil {
		t.Fatal("load returned absent")
	}
	if *got != *second {
		t.Errorf("got %+v, want %+v", *got, *second)
	}
}

func TestSaveCreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "config.dat")
	s := NewStore(path)

	if err := s.Save(testConfig()); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := s.Load()
	if err != nil || got == nil {
		t.Fatalf("load after save: cfg=%v err=%v", got, err)
	}
}

func TestEncodeLayout(t *testing.T) {
	buf := encode(testConfig())

	if len(buf) != RecordSize {
		t.Errorf("record size: got %d, want %d", len(buf), RecordSize)
	}
	if buf[0] != markerValue {
		t.Errorf("marker: got %#02x, want %#02x", buf[0], markerValue)
	}
	// servername starts at offset 1, null-terminated.
	if got := string(buf[1 : 1+len("mqtt.example.com")]); got != "mqtt.example.com" {
		t.Errorf("servername field: got %q", got)
	}
	if buf[1+len("mqtt.example.com")] != 0 {
		t.Error("servername not null-terminated")
	}
	// serverport at offset 41, little-endian: 1883 = 0x075B.
	if buf[41] != 0x5b || buf[42] != 0x07 || buf[43] != 0 || buf[44] != 0 {
		t.Errorf("serverport field: got % x", buf[41:45])
	}
}

func TestOverlongFieldsTruncate(t *testing.T) {
	cfg := testConfig()
	cfg.ServerName = strings.Repeat("a", 80)
	cfg.Topic = strings.Repeat("t", 100)
	cfg.PropertyNames[0] = strings.Repeat("p", 40)

	got := decode(encode(cfg))

	if len(got.ServerName) != serverNameLen-1 {
		t.Errorf("servername length: got %d, want %d", len(got.ServerName), serverNameLen-1)
	}
	if len(got.Topic) != topicLen-1 {
		t.Errorf("topic length: got %d, want %d", len(got.Topic), topicLen-1)
	}
	if len(got.PropertyNames[0]) != propertyNameLen-1 {
		t.Errorf("property name length: got %d, want %d", len(got.PropertyNames[0]), propertyNameLen-1)
	}
}

func TestChannelEnabled(t *testing.T) {
	cfg := testConfig()

	if !cfg.ChannelEnabled(0) {
		t.Error("channel 0 should be enabled")
	}
	if cfg.ChannelEnabled(1) {
		t.Error("channel 1 should be disabled")
	}

	want := [4]bool{true, false, false, true}
	if got := cfg.EnabledChannels(); got != want {
		t.Errorf("enabled channels: got %v, want %v", got, want)
	}
}
