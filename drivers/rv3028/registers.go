// Package rv3028 provides constants for register addresses and bitfields
// used in the operation of the RV-3028-C7 real-time clock.
package rv3028

const (
	// 7-bit I2C address.
	AddressDefault = 0x52

	// --- Register sub-addresses ---

	// Clock and calendar (BCD).
	regSeconds = 0x00
	regMinutes = 0x01
	regHours   = 0x02
	regWeekday = 0x03
	regDate    = 0x04
	regMonth   = 0x05
	regYear    = 0x06

	// Alarm (BCD).
	regAlarmSeconds = 0x07
	regAlarmMinutes = 0x08
	regAlarmHours   = 0x09
	regAlarmWeekday = 0x0A
	regAlarmDate    = 0x0B

	regStatus   = 0x0E
	regControl1 = 0x0F
	regControl2 = 0x10
	regControl3 = 0x11

	// Always-powered user RAM bytes. Contents survive VDD loss as long as
	// the backup domain is up; the node parks its power tier here.
	regUserRAM1 = 0x1F
	regUserRAM2 = 0x20

	// UserRAMSlots is the number of user RAM bytes available.
	UserRAMSlots = 2
)

// Control 1 register bits.
const (
	ctrl1WADA   = 0x40 // week/date alarm select
	ctrl1Mode24 = 0x10 // 12/24 hour mode
	ctrl1ClkInt = 0x01 // clock interrupt enable
)

// Control 2 register bits.
const (
	ctrl2AF   = 0x40 // alarm flag
	ctrl2TF   = 0x20 // timer flag
	ctrl2UF   = 0x10 // update flag
	ctrl2AIE  = 0x08 // alarm interrupt enable
	ctrl2TIE  = 0x04 // timer interrupt enable
	ctrl2UIE  = 0x02 // update interrupt enable
	ctrl2Stop = 0x01 // stop clock
)

// Status register bits.
const (
	statusVLF    = 0x80 // voltage low flag: time data may be corrupt
	statusAF     = 0x40
	statusTF     = 0x20
	statusUF     = 0x10
	statusBSF    = 0x08 // battery switchover happened
	statusClkF   = 0x04
	statusEEBusy = 0x02
	statusBusy   = 0x01
)
