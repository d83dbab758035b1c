package bme280x

import "errors"

// ErrCompensation is returned when the pressure pipeline hits a zero
// intermediate divisor (raw data captured before the first conversion, or a
// corrupt calibration block).
var ErrCompensation = errors.New("bme280x: compensation failed")

// Fixed-point compensation, ported from the vendor's reference integer
// formulas. Shift order and truncation are load-bearing: the reference test
// vectors are defined over these exact intermediates, so nothing here may be
// reordered or widened to floating point.

// compensateTemp returns the temperature in centi-°C and the t_fine
// intermediate shared by the pressure and humidity stages.
func compensateTemp(adcT int32, c *Calibration) (centiC, tFine int32) {
	var1 := (((adcT >> 3) - (int32(c.T1) << 1)) * int32(c.T2)) >> 11
	var2 := (((((adcT >> 4) - int32(c.T1)) * ((adcT >> 4) - int32(c.T1))) >> 12) * int32(c.T3)) >> 14
	tFine = var1 + var2
	centiC = (tFine*5 + 128) >> 8
	return centiC, tFine
}

// compensatePressure returns pressure in Pa. It needs t_fine from the
// temperature stage. A zero var1 intermediate would divide by zero; it is
// surfaced as ErrCompensation instead.
func compensatePressure(adcP, tFine int32, c *Calibration) (uint32, error) {
	var1 := (tFine >> 1) - 64000
	var2 := (((var1 >> 2) * (var1 >> 2)) >> 11) * int32(c.P6)
	var2 = var2 + ((var1 * int32(c.P5)) << 1)
	var2 = (var2 >> 2) + (int32(c.P4) << 16)
	var1 = (((int32(c.P3) * (((var1 >> 2) * (var1 >> 2)) >> 13)) >> 3) +
		((int32(c.P2) * var1) >> 1)) >> 18
	var1 = ((32768 + var1) * int32(c.P1)) >> 15
	if var1 == 0 {
		return 0, ErrCompensation
	}
	p := uint32(int32(1048576)-adcP-(var2>>12)) * 3125
	if p < 0x80000000 {
		p = (p << 1) / uint32(var1)
	} else {
		p = (p / uint32(var1)) * 2
	}
	var1 = (int32(c.P9) * int32(((p>>3)*(p>>3))>>13)) >> 12
	var2 = (int32(p>>2) * int32(c.P8)) >> 13
	p = uint32(int32(p) + ((var1 + var2 + int32(c.P7)) >> 4))
	return p, nil
}

// compensateHumidity returns relative humidity in Q22.10 (%RH × 1024).
// The intermediate is clamped to [0, 419430400] before the final shift.
func compensateHumidity(adcH, tFine int32, c *Calibration) uint32 {
	v := tFine - 76800
	v = ((((adcH << 14) - (int32(c.H4) << 20) - (int32(c.H5) * v)) + 16384) >> 15) *
		(((((((v * int32(c.H6)) >> 10) * (((v * int32(c.H3)) >> 11) + 32768)) >> 10) +
			2097152) * int32(c.H2) + 8192) >> 14)
	v = v - (((((v >> 15) * (v >> 15)) >> 7) * int32(c.H1)) >> 4)
	if v < 0 {
		v = 0
	}
	if v > 419430400 {
		v = 419430400
	}
	return uint32(v) >> 12
}
