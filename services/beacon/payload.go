// Package beacon encodes the node's measurement into the advertisement it
// broadcasts: a fixed 14-byte manufacturer-data value inside standard AD
// element framing.
package beacon

import (
	"encoding/binary"
	"errors"

	"beaconnode/drivers/bme280x"
	"beaconnode/services/battery"
	"beaconnode/x/mathx"
)

const (
	// PayloadVersion is bumped on any wire layout change.
	PayloadVersion = 1
	// PayloadLen is the fixed encoded size in bytes.
	PayloadLen = 14
)

var ErrShortPayload = errors.New("beacon: short payload")

// Payload is the manufacturer-data value. All integers are little-endian on
// the wire; the layout is frozen, hosts decode it positionally.
type Payload struct {
	Version           uint8
	Tier              uint8
	BatteryMilliVolts uint16
	TempCenti         int16  // °C × 100
	PressureDeci      uint16 // hPa × 10
	HumidityCenti     uint16 // %RH × 100
	Timestamp         uint32 // seconds since boot
}

// New scales a compensated reading into the wire fixed-point fields,
// rounding half away from zero and saturating at the field limits.
func New(tier battery.Tier, batteryMilliV uint16, r bme280x.Reading, timestamp uint32) Payload {
	return Payload{
		Version:           PayloadVersion,
		Tier:              uint8(tier),
		BatteryMilliVolts: batteryMilliV,
		TempCenti:         int16(mathx.Clamp(scaleRound(r.Temperature, 100), -32768, 32767)),
		PressureDeci:      uint16(mathx.Clamp(scaleRound(r.Pressure, 10), 0, 65535)),
		HumidityCenti:     uint16(mathx.Clamp(scaleRound(r.Humidity, 100), 0, 65535)),
		Timestamp:         timestamp,
	}
}

func scaleRound(v, scale float32) int32 {
	x := v * scale
	if x >= 0 {
		return int32(x + 0.5)
	}
	return int32(x - 0.5)
}

// AppendBinary appends the 14-byte encoding to dst and returns the extended
// slice. Deterministic: identical payloads produce identical bytes.
func (p Payload) AppendBinary(dst []byte) []byte {
	dst = append(dst, p.Version, p.Tier)
	dst = binary.LittleEndian.AppendUint16(dst, p.BatteryMilliVolts)
	dst = binary.LittleEndian.AppendUint16(dst, uint16(p.TempCenti))
	dst = binary.LittleEndian.AppendUint16(dst, p.PressureDeci)
	dst = binary.LittleEndian.AppendUint16(dst, p.HumidityCenti)
	dst = binary.LittleEndian.AppendUint32(dst, p.Timestamp)
	return dst
}

// Decode parses a 14-byte payload. Extra trailing bytes are ignored so a
// host can pass the whole manufacturer-data value.
func Decode(b []byte) (Payload, error) {
	if len(b) < PayloadLen {
		return Payload{}, ErrShortPayload
	}
	return Payload{
		Version:           b[0],
		Tier:              b[1],
		BatteryMilliVolts: binary.LittleEndian.Uint16(b[2:4]),
		TempCenti:         int16(binary.LittleEndian.Uint16(b[4:6])),
		PressureDeci:      binary.LittleEndian.Uint16(b[6:8]),
		HumidityCenti:     binary.LittleEndian.Uint16(b[8:10]),
		Timestamp:         binary.LittleEndian.Uint32(b[10:14]),
	}, nil
}
