package beacon

import (
	"encoding/binary"
	"errors"
)

// FrameCapacity is the legacy advertisement PDU budget.
const FrameCapacity = 31

// Defaults for the advertisement identity. The name must stay short: flags
// (3) + name element (2+len) + manufacturer data (18) has to fit in 31.
const (
	DefaultName      = "EnvBcn"
	DefaultCompanyID = 0x0059
)

// AD element types and flag bits (Bluetooth assigned numbers).
const (
	adTypeFlags            = 0x01
	adTypeNameComplete     = 0x09
	adTypeManufacturerData = 0xFF

	flagLEGeneralDiscoverable = 0x02
	flagNoBREDR               = 0x04
)

var ErrFrameOverflow = errors.New("beacon: advertisement frame overflow")

// frame accumulates length-prefixed AD elements in a fixed buffer.
type frame struct {
	buf [FrameCapacity]byte
	n   int
}

// element appends one AD element: length, type, value parts. Capacity is
// checked before anything is written, so a failed append leaves the frame
// unchanged.
func (f *frame) element(adType byte, parts ...[]byte) error {
	size := 1 // the type byte counts toward the element length
	for _, p := range parts {
		size += len(p)
	}
	if f.n+1+size > len(f.buf) {
		return ErrFrameOverflow
	}
	f.buf[f.n] = byte(size)
	f.buf[f.n+1] = adType
	f.n += 2
	for _, p := range parts {
		f.n += copy(f.buf[f.n:], p)
	}
	return nil
}

// BuildFrame encodes the full advertisement: flags, complete local name, and
// manufacturer data (company ID little-endian, then the payload). Pure and
// deterministic; returns ErrFrameOverflow rather than truncating.
func BuildFrame(name string, companyID uint16, p Payload) ([]byte, error) {
	var f frame

	if err := f.element(adTypeFlags, []byte{flagLEGeneralDiscoverable | flagNoBREDR}); err != nil {
		return nil, err
	}
	if err := f.element(adTypeNameComplete, []byte(name)); err != nil {
		return nil, err
	}

	var buf [2 + PayloadLen]byte
	binary.LittleEndian.PutUint16(buf[:2], companyID)
	mfg := p.AppendBinary(buf[:2])
	if err := f.element(adTypeManufacturerData, mfg); err != nil {
		return nil, err
	}

	out := make([]byte, f.n)
	copy(out, f.buf[:f.n])
	return out, nil
}
