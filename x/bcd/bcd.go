// Package bcd converts between binary-coded-decimal register fields and
// plain binary values. RTC time/alarm registers are BCD on the wire.
package bcd

// ToBin decodes a packed BCD byte.
func ToBin(b uint8) uint8 {
	return (b>>4)*10 + (b & 0x0F)
}

// FromBin encodes a value 0..99 as packed BCD.
func FromBin(v uint8) uint8 {
	return ((v / 10) << 4) | (v % 10)
}
