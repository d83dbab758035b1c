// Package rv3028 drives the RV-3028-C7 extreme-low-power RTC. The chip is
// the only always-powered peripheral on the node: it keeps wall-clock time
// through the deep power-off sleep, wakes the board through its interrupt
// pin, and its user RAM bytes are the one place state can survive a cycle.
package rv3028

import (
	"errors"

	"tinygo.org/x/drivers"

	"beaconnode/x/bcd"
)

var ErrBadSlot = errors.New("rv3028: user ram slot out of range")

// Time is one wall-clock reading. All fields are plain binary; BCD register
// coding is handled by the driver.
type Time struct {
	Seconds uint8
	Minutes uint8
	Hours   uint8 // 24h
	Weekday uint8 // 0..6
	Date    uint8 // day of month 1..31
	Month   uint8
	Year    uint16
}

// Alarm is an absolute time-of-day alarm. Weekday and date are carried from
// the current reading; the chip has no calendar rollover for alarms.
type Alarm struct {
	Seconds uint8
	Minutes uint8
	Hours   uint8
	Weekday uint8
	Date    uint8
}

// Config controls non-hardware behaviour. All fields are optional.
type Config struct {
	// Address defaults to 0x52 if zero.
	Address uint16
}

// Device wraps an I2C connection to an RV-3028. The I2C bus must already be
// configured.
type Device struct {
	bus  drivers.I2C
	addr uint16

	// Fixed buffers to avoid per-call heap allocations.
	w [8]byte
	r [7]byte
}

func New(bus drivers.I2C) *Device {
	return &Device{bus: bus, addr: AddressDefault}
}

// Configure puts the clock in 24-hour mode with the clock interrupt enabled
// and clears any stale alarm/timer/update flags left from before the last
// power-off.
func (d *Device) Configure(cfgs ...Config) error {
	if len(cfgs) > 0 && cfgs[0].Address != 0 {
		d.addr = cfgs[0].Address
	}

	ctrl1, err := d.readReg8(regControl1)
	if err != nil {
		return err
	}
	if err := d.writeReg(regControl1, ctrl1|ctrl1Mode24|ctrl1ClkInt); err != nil {
		return err
	}

	ctrl2, err := d.readReg8(regControl2)
	if err != nil {
		return err
	}
	return d.writeReg(regControl2, ctrl2&^(ctrl2AF|ctrl2TF|ctrl2UF))
}

// VoltageLow reports the VLF status bit. When set, the backup supply dropped
// too low at some point and the kept time can no longer be trusted.
func (d *Device) VoltageLow() (bool, error) {
	st, err := d.readReg8(regStatus)
	if err != nil {
		return false, err
	}
	return st&statusVLF != 0, nil
}

// ReadTime reads the seven clock registers in one burst.
func (d *Device) ReadTime() (Time, error) {
	if err := d.readReg(regSeconds, d.r[:7]); err != nil {
		return Time{}, err
	}
	return Time{
		Seconds: bcd.ToBin(d.r[0] & 0x7F),
		Minutes: bcd.ToBin(d.r[1] & 0x7F),
		Hours:   bcd.ToBin(d.r[2] & 0x3F),
		Weekday: d.r[3] & 0x07,
		Date:    bcd.ToBin(d.r[4] & 0x3F),
		Month:   bcd.ToBin(d.r[5] & 0x1F),
		Year:    2000 + uint16(bcd.ToBin(d.r[6])),
	}, nil
}

// SetTime writes the clock registers. The clock is stopped for the write so
// the seconds chain does not advance mid-update.
func (d *Device) SetTime(t Time) error {
	ctrl2, err := d.readReg8(regControl2)
	if err != nil {
		return err
	}
	if err := d.writeReg(regControl2, ctrl2|ctrl2Stop); err != nil {
		return err
	}

	d.w[0] = regSeconds
	d.w[1] = bcd.FromBin(t.Seconds)
	d.w[2] = bcd.FromBin(t.Minutes)
	d.w[3] = bcd.FromBin(t.Hours)
	d.w[4] = t.Weekday & 0x07
	d.w[5] = bcd.FromBin(t.Date)
	d.w[6] = bcd.FromBin(t.Month)
	d.w[7] = bcd.FromBin(uint8(t.Year % 100))
	if err := d.bus.Tx(d.addr, d.w[:8], nil); err != nil {
		return err
	}

	return d.writeReg(regControl2, ctrl2&^ctrl2Stop)
}

// SetAlarm writes the five alarm registers. It does not touch the alarm flag
// or interrupt enable; callers clear the flag first and enable the interrupt
// after (see ClearAlarmFlag and EnableAlarmInterrupt).
func (d *Device) SetAlarm(a Alarm) error {
	d.w[0] = regAlarmSeconds
	d.w[1] = bcd.FromBin(a.Seconds)
	d.w[2] = bcd.FromBin(a.Minutes)
	d.w[3] = bcd.FromBin(a.Hours)
	d.w[4] = a.Weekday & 0x07
	d.w[5] = bcd.FromBin(a.Date)
	return d.bus.Tx(d.addr, d.w[:6], nil)
}

// ClearAlarmFlag clears a pending alarm so a freshly armed alarm cannot
// re-trigger immediately off the stale flag.
func (d *Device) ClearAlarmFlag() error {
	return d.updateControl2(0, ctrl2AF)
}

func (d *Device) EnableAlarmInterrupt() error {
	return d.updateControl2(ctrl2AIE, 0)
}

func (d *Device) DisableAlarmInterrupt() error {
	return d.updateControl2(0, ctrl2AIE)
}

// ReadUserRAM returns one of the always-powered user RAM bytes.
func (d *Device) ReadUserRAM(slot int) (byte, error) {
	if slot < 0 || slot >= UserRAMSlots {
		return 0, ErrBadSlot
	}
	return d.readReg8(regUserRAM1 + byte(slot))
}

// WriteUserRAM stores one byte in always-powered user RAM.
func (d *Device) WriteUserRAM(slot int, b byte) error {
	if slot < 0 || slot >= UserRAMSlots {
		return ErrBadSlot
	}
	return d.writeReg(regUserRAM1+byte(slot), b)
}

// read-modify-write on control 2.
func (d *Device) updateControl2(set, clear byte) error {
	ctrl2, err := d.readReg8(regControl2)
	if err != nil {
		return err
	}
	return d.writeReg(regControl2, (ctrl2|set)&^clear)
}

// I2C register operations (pointer write, then read).

func (d *Device) readReg(reg byte, dst []byte) error {
	d.w[0] = reg
	return d.bus.Tx(d.addr, d.w[:1], dst)
}

func (d *Device) readReg8(reg byte) (byte, error) {
	if err := d.readReg(reg, d.r[:1]); err != nil {
		return 0, err
	}
	return d.r[0], nil
}

func (d *Device) writeReg(reg, val byte) error {
	d.w[0] = reg
	d.w[1] = val
	return d.bus.Tx(d.addr, d.w[:2], nil)
}
