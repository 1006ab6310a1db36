package mqtt

import (
	"encoding/json"

	"github.com/sweeney/multisensor/internal/sensor"
)

// FormatPayload serializes a snapshot as the published JSON object:
// "humidity" and "temperature" always, plus one key per enabled
// switch channel named by its configured property name. Disabled
// channels are omitted entirely. Undefined readings serialize as the
// 999 sentinel.
func FormatPayload(snap sensor.Snapshot, propertyNames [sensor.NumSwitches]string) ([]byte, error) {
	obj := map[string]int{
		"humidity":    snap.Humidity.Serialized(),
		"temperature": snap.Temperature.Serialized(),
	}
	for i, name := range propertyNames {
		if name == "" {
			continue
		}
		obj[name] = snap.Switches[i].Serialized()
	}
	return json.Marshal(obj)
}
