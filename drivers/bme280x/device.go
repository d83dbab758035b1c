// Package bme280x drives a BME280 in forced mode for a duty-cycled sensor
// node: configure once, then one triggered measurement per wake cycle.
//
// Design notes (datasheet references):
// • I2C, register pointer write then read; calibration words little-endian.
// • Forced mode: each write of ctrl_meas mode=01 runs one conversion, then
//   the part returns to sleep on its own.
// • Raw P/T/H must be captured in a single 8-byte burst at 0xF7 before any
//   compensation runs; t_fine from the temperature stage feeds both the
//   pressure and humidity stages.
// • Integer-only compensation pipeline; see compensate.go.
package bme280x

import (
	"errors"
	"time"

	"tinygo.org/x/drivers"
)

var (
	ErrBadChipID = errors.New("bme280x: unexpected chip id")
	ErrNotReady  = errors.New("bme280x: measurement not finished")
)

// Config controls non-hardware behaviour. All fields are optional.
type Config struct {
	// Address defaults to 0x76 if zero.
	Address uint16
	// ConversionWait bounds the forced-mode conversion time. Default 10 ms,
	// enough for 1x oversampling on all three channels.
	ConversionWait time.Duration
}

// Reading holds one compensated measurement in engineering units.
type Reading struct {
	Temperature float32 // °C
	Pressure    float32 // hPa
	Humidity    float32 // %RH
}

// Device wraps an I2C connection to a BME280. The I2C bus must already be
// configured.
type Device struct {
	bus   drivers.I2C
	addr  uint16
	cfg   Config
	calib Calibration

	// Fixed buffers to avoid per-call heap allocations.
	w [2]byte
	r [26]byte
}

func New(bus drivers.I2C) *Device {
	return &Device{bus: bus, addr: AddressDefault}
}

// Configure probes the chip, loads the calibration coefficients and programs
// oversampling for forced-mode operation. Must be called once per boot before
// ReadForced; the calibration copy is volatile and does not survive the
// node's power-off sleep.
func (d *Device) Configure(cfgs ...Config) error {
	if len(cfgs) > 0 {
		c := cfgs[0]
		if c.Address != 0 {
			d.addr = c.Address
		}
		if c.ConversionWait <= 0 {
			c.ConversionWait = 10 * time.Millisecond
		}
		d.cfg = c
	} else {
		d.cfg = Config{Address: d.addr, ConversionWait: 10 * time.Millisecond}
	}

	id, err := d.readReg8(regChipID)
	if err != nil {
		return err
	}
	if id != ChipID {
		return ErrBadChipID
	}

	if err := d.readCalibration(); err != nil {
		return err
	}

	// osrs_h must be written before ctrl_meas to take effect.
	if err := d.writeReg(regCtrlHum, ctrlHumOsrs1x); err != nil {
		return err
	}
	return d.writeReg(regCtrlMeas, ctrlMeasOsrsT1|ctrlMeasOsrsP1|ctrlMeasForced)
}

// Calibration returns a copy of the loaded trimming coefficients.
func (d *Device) Calibration() Calibration { return d.calib }

// ReadForced triggers one forced-mode conversion, waits for it to finish and
// returns the compensated reading. The raw triplet is captured as one burst
// before compensation starts.
func (d *Device) ReadForced() (Reading, error) {
	if err := d.writeReg(regCtrlMeas, ctrlMeasOsrsT1|ctrlMeasOsrsP1|ctrlMeasForced); err != nil {
		return Reading{}, err
	}
	time.Sleep(d.conversionWait())

	raw := d.r[:8]
	if err := d.readReg(regPressMSB, raw); err != nil {
		return Reading{}, err
	}

	adcP := int32(raw[0])<<12 | int32(raw[1])<<4 | int32(raw[2])>>4
	adcT := int32(raw[3])<<12 | int32(raw[4])<<4 | int32(raw[5])>>4
	adcH := int32(raw[6])<<8 | int32(raw[7])

	centiC, tFine := compensateTemp(adcT, &d.calib)
	pa, err := compensatePressure(adcP, tFine, &d.calib)
	if err != nil {
		return Reading{}, err
	}
	hum := compensateHumidity(adcH, tFine, &d.calib)

	return Reading{
		Temperature: float32(centiC) / 100,
		Pressure:    float32(pa) / 100,
		Humidity:    float32(hum) / 1024,
	}, nil
}

func (d *Device) conversionWait() time.Duration {
	if d.cfg.ConversionWait > 0 {
		return d.cfg.ConversionWait
	}
	return 10 * time.Millisecond
}

func (d *Device) readCalibration() error {
	if err := d.readReg(regCalib00, d.r[:calib00Len]); err != nil {
		return err
	}
	var blk1 [calib26Len]byte
	if err := d.readReg(regCalib26, blk1[:]); err != nil {
		return err
	}
	d.calib = decodeCalib(d.r[:calib00Len], blk1[:])
	return nil
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
