package provision

import (
	"encoding/hex"
	"errors"
	"net"
)

// DeviceID returns the module's hardware identity: the MAC address of
// the first non-loopback interface, formatted as 12 lowercase hex
// digits. It names the access point, the MQTT client id, and the
// default topic.
func DeviceID() (string, error) {
	ifaces, err := net.Interfaces()
	if err != nil {
		return "", err
	}
	for _, ifc := range ifaces {
		if ifc.Flags&net.FlagLoopback != 0 {
			continue
		}
		if len(ifc.HardwareAddr) != 6 {
			continue
		}
		return hex.EncodeToString(ifc.HardwareAddr), nil
	}
	return "", errors.New("no hardware interface found")
}
