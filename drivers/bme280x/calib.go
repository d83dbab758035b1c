package bme280x

// Calibration holds the factory trimming coefficients. They are burnt into
// the sensor's NVM and must be re-read on every boot; volatile copies do not
// survive the node's power-off sleep.
type Calibration struct {
	T1 uint16
	T2 int16
	T3 int16

	P1 uint16
	P2 int16
	P3 int16
	P4 int16
	P5 int16
	P6 int16
	P7 int16
	P8 int16
	P9 int16

	H1 uint8
	H2 int16
	H3 uint8
	H4 int16 // 12 bits: 0xE4<<4 | 0xE5[3:0]
	H5 int16 // 12 bits: 0xE6<<4 | 0xE5[7:4]
	H6 int8
}

// decodeCalib parses the two raw calibration blocks. blk0 is the 26-byte
// block at 0x88 (word fields little-endian), blk1 the 7-byte block at 0xE1
// holding the humidity coefficients, including the two nibble-split 12-bit
// values H4/H5.
func decodeCalib(blk0, blk1 []byte) Calibration {
	var c Calibration

	c.T1 = uint16(blk0[1])<<8 | uint16(blk0[0])
	c.T2 = int16(uint16(blk0[3])<<8 | uint16(blk0[2]))
	c.T3 = int16(uint16(blk0[5])<<8 | uint16(blk0[4]))

	c.P1 = uint16(blk0[7])<<8 | uint16(blk0[6])
	c.P2 = int16(uint16(blk0[9])<<8 | uint16(blk0[8]))
	c.P3 = int16(uint16(blk0[11])<<8 | uint16(blk0[10]))
	c.P4 = int16(uint16(blk0[13])<<8 | uint16(blk0[12]))
	c.P5 = int16(uint16(blk0[15])<<8 | uint16(blk0[14]))
	c.P6 = int16(uint16(blk0[17])<<8 | uint16(blk0[16]))
	c.P7 = int16(uint16(blk0[19])<<8 | uint16(blk0[18]))
	c.P8 = int16(uint16(blk0[21])<<8 | uint16(blk0[20]))
	c.P9 = int16(uint16(blk0[23])<<8 | uint16(blk0[22]))

	c.H1 = blk0[25]
	c.H2 = int16(uint16(blk1[1])<<8 | uint16(blk1[0]))
	c.H3 = blk1[2]
	c.H4 = int16(blk1[3])<<4 | int16(blk1[4]&0x0F)
	c.H5 = int16(blk1[5])<<4 | int16(blk1[4]>>4)
	c.H6 = int8(blk1[6])

	return c
}
