// Package bme280x provides constants for register addresses and control
// values used in the operation of the BME280 environmental sensor.
package bme280x

const (
	// 7-bit I2C address (SDO low). AddressHigh is the SDO-high variant.
	AddressDefault = 0x76
	AddressHigh    = 0x77

	// Expected CHIP_ID value.
	ChipID = 0x60

	// --- Register sub-addresses ---

	regChipID   = 0xD0 // R
	regReset    = 0xE0 // W, write 0xB6 for soft reset
	regCtrlHum  = 0xF2 // R/W, osrs_h
	regStatus   = 0xF3 // R, measuring/im_update
	regCtrlMeas = 0xF4 // R/W, osrs_t | osrs_p | mode
	regConfig   = 0xF5 // R/W, t_sb | filter | spi3w_en

	// Burst readout: press_msb..hum_lsb, 8 bytes.
	regPressMSB = 0xF7

	// Calibration blocks.
	regCalib00 = 0x88 // 26 bytes: T1..T3, P1..P9, (reserved), H1
	regCalib26 = 0xE1 // 7 bytes: H2..H6

	calib00Len = 26
	calib26Len = 7
)

// Control register values (1x oversampling, forced mode).
const (
	ctrlHumOsrs1x  = 0x01
	ctrlMeasOsrsT1 = 0x20
	ctrlMeasOsrsP1 = 0x04
	ctrlMeasForced = 0x01

	statusMeasuring = 0x08

	resetWord = 0xB6
)
