package rv3028

import (
	"errors"
	"testing"
)

// fakeI2C serves a small register file. A single write byte selects the
// register pointer for a read; longer writes store bytes from that address.
type fakeI2C struct {
	file [0x30]byte
	err  error
}

func (f *fakeI2C) Tx(addr uint16, w, r []byte) error {
	if f.err != nil {
		return f.err
	}
	switch {
	case len(w) == 1 && len(r) > 0:
		copy(r, f.file[w[0]:])
	case len(w) >= 2 && len(r) == 0:
		copy(f.file[w[0]:], w[1:])
	default:
		return errors.New("fakeI2C: unexpected transaction shape")
	}
	return nil
}

func TestReadTimeDecodesBCD(t *testing.T) {
	f := &fakeI2C{}
	// 2026-08-31 10:15:42, Monday (weekday 1).
	f.file[regSeconds] = 0x42
	f.file[regMinutes] = 0x15
	f.file[regHours] = 0x10
	f.file[regWeekday] = 0x01
	f.file[regDate] = 0x31
	f.file[regMonth] = 0x08
	f.file[regYear] = 0x26

	got, err := New(f).ReadTime()
	if err != nil {
		t.Fatalf("ReadTime: %v", err)
	}
	want := Time{Seconds: 42, Minutes: 15, Hours: 10, Weekday: 1, Date: 31, Month: 8, Year: 2026}
	if got != want {
		t.Fatalf("ReadTime = %+v, want %+v", got, want)
	}
}

func TestSetTimeStopsClockAroundWrite(t *testing.T) {
	f := &fakeI2C{}
	d := New(f)
	if err := d.SetTime(Time{Seconds: 5, Minutes: 59, Hours: 23, Weekday: 6, Date: 12, Month: 1, Year: 2027}); err != nil {
		t.Fatalf("SetTime: %v", err)
	}
	if f.file[regSeconds] != 0x05 || f.file[regMinutes] != 0x59 || f.file[regHours] != 0x23 {
		t.Fatalf("time registers = % x", f.file[regSeconds:regYear+1])
	}
	if f.file[regYear] != 0x27 {
		t.Fatalf("year register = 0x%02x, want 0x27", f.file[regYear])
	}
	if f.file[regControl2]&ctrl2Stop != 0 {
		t.Fatal("stop bit left set after SetTime")
	}
}

func TestSetAlarmEncodesBCD(t *testing.T) {
	f := &fakeI2C{}
	if err := New(f).SetAlarm(Alarm{Seconds: 0, Minutes: 15, Hours: 10, Weekday: 1, Date: 31}); err != nil {
		t.Fatalf("SetAlarm: %v", err)
	}
	want := []byte{0x00, 0x15, 0x10, 0x01, 0x31}
	for i, b := range want {
		if f.file[regAlarmSeconds+byte(i)] != b {
			t.Fatalf("alarm registers = % x, want % x", f.file[regAlarmSeconds:regAlarmDate+1], want)
		}
	}
}

func TestAlarmFlagAndInterruptBits(t *testing.T) {
	f := &fakeI2C{}
	f.file[regControl2] = ctrl2AF | ctrl2TIE
	d := New(f)

	if err := d.ClearAlarmFlag(); err != nil {
		t.Fatalf("ClearAlarmFlag: %v", err)
	}
	if f.file[regControl2]&ctrl2AF != 0 {
		t.Fatal("alarm flag not cleared")
	}
	if f.file[regControl2]&ctrl2TIE == 0 {
		t.Fatal("unrelated bit clobbered")
	}

	if err := d.EnableAlarmInterrupt(); err != nil {
		t.Fatalf("EnableAlarmInterrupt: %v", err)
	}
	if f.file[regControl2]&ctrl2AIE == 0 {
		t.Fatal("AIE not set")
	}
	if err := d.DisableAlarmInterrupt(); err != nil {
		t.Fatalf("DisableAlarmInterrupt: %v", err)
	}
	if f.file[regControl2]&ctrl2AIE != 0 {
		t.Fatal("AIE not cleared")
	}
}

func TestConfigureSets24hModeAndClearsFlags(t *testing.T) {
	f := &fakeI2C{}
	f.file[regControl2] = ctrl2AF | ctrl2TF | ctrl2UF | ctrl2AIE
	if err := New(f).Configure(); err != nil {
		t.Fatalf("Configure: %v", err)
	}
	if f.file[regControl1]&(ctrl1Mode24|ctrl1ClkInt) != ctrl1Mode24|ctrl1ClkInt {
		t.Fatalf("control1 = 0x%02x", f.file[regControl1])
	}
	if f.file[regControl2]&(ctrl2AF|ctrl2TF|ctrl2UF) != 0 {
		t.Fatalf("stale flags not cleared: control2 = 0x%02x", f.file[regControl2])
	}
	if f.file[regControl2]&ctrl2AIE == 0 {
		t.Fatal("AIE should be left alone by Configure")
	}
}

func TestUserRAMRoundTripAndBounds(t *testing.T) {
	f := &fakeI2C{}
	d := New(f)
	if err := d.WriteUserRAM(0, 0xB2); err != nil {
		t.Fatalf("WriteUserRAM: %v", err)
	}
	b, err := d.ReadUserRAM(0)
	if err != nil || b != 0xB2 {
		t.Fatalf("ReadUserRAM = 0x%02x, %v", b, err)
	}
	if err := d.WriteUserRAM(UserRAMSlots, 0); err != ErrBadSlot {
		t.Fatalf("out-of-range write err = %v, want ErrBadSlot", err)
	}
	if _, err := d.ReadUserRAM(-1); err != ErrBadSlot {
		t.Fatalf("out-of-range read err = %v, want ErrBadSlot", err)
	}
}

func TestVoltageLow(t *testing.T) {
	f := &fakeI2C{}
	f.file[regStatus] = statusVLF
	d := New(f)
	vlf, err := d.VoltageLow()
	if err != nil || !vlf {
		t.Fatalf("VoltageLow = %v, %v", vlf, err)
	}
}
