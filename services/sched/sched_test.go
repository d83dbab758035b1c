package sched

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"beaconnode/drivers/rv3028"
	"beaconnode/errcode"
)

// fakeClock records the order of RTC calls.
type fakeClock struct {
	now   rv3028.Time
	alarm rv3028.Alarm
	calls []string

	readErr error
	setErr  error
}

func (f *fakeClock) ReadTime() (rv3028.Time, error) {
	f.calls = append(f.calls, "read")
	return f.now, f.readErr
}
func (f *fakeClock) SetAlarm(a rv3028.Alarm) error {
	f.calls = append(f.calls, "set")
	f.alarm = a
	return f.setErr
}
func (f *fakeClock) ClearAlarmFlag() error {
	f.calls = append(f.calls, "clear")
	return nil
}
func (f *fakeClock) EnableAlarmInterrupt() error {
	f.calls = append(f.calls, "enable")
	return nil
}

func TestArmFifteenMinutes(t *testing.T) {
	clk := &fakeClock{now: rv3028.Time{Hours: 10, Weekday: 2, Date: 14, Month: 7, Year: 2026}}
	alarm, err := New(clk).Arm(900 * time.Second)
	require.NoError(t, err)

	assert.Equal(t, rv3028.Alarm{Hours: 10, Minutes: 15, Seconds: 0, Weekday: 2, Date: 14}, alarm)
	// Pending flag must be cleared before the alarm is written, interrupt
	// enabled last.
	assert.Equal(t, []string{"read", "clear", "set", "enable"}, clk.calls)
}

func TestArmWrapsAcrossMidnight(t *testing.T) {
	clk := &fakeClock{now: rv3028.Time{Hours: 23, Minutes: 50, Seconds: 30, Weekday: 0, Date: 31}}
	alarm, err := New(clk).Arm(30 * time.Minute)
	require.NoError(t, err)

	// 23:50:30 + 30 min = 00:20:30 next day, but weekday/date are carried
	// over unchanged: alarm arithmetic is time-of-day only.
	assert.Equal(t, rv3028.Alarm{Hours: 0, Minutes: 20, Seconds: 30, Weekday: 0, Date: 31}, alarm)
}

func TestArmRejectsOutOfContractIntervals(t *testing.T) {
	clk := &fakeClock{}
	s := New(clk)

	for _, iv := range []time.Duration{0, -time.Minute, 24 * time.Hour, 48 * time.Hour} {
		_, err := s.Arm(iv)
		require.Error(t, err, "interval %v", iv)
		assert.Equal(t, errcode.InvalidParams, errcode.Of(err))
	}
	assert.Empty(t, clk.calls, "rejected intervals must not touch the RTC")
}

func TestArmPropagatesClockErrors(t *testing.T) {
	clk := &fakeClock{readErr: errors.New("bus nak")}
	_, err := New(clk).Arm(time.Minute)
	require.Error(t, err)
	assert.Equal(t, errcode.I2CError, errcode.Of(err))

	clk = &fakeClock{setErr: errors.New("bus nak")}
	_, err = New(clk).Arm(time.Minute)
	require.Error(t, err)
	assert.Equal(t, errcode.I2CError, errcode.Of(err))
}

func TestArmSecondsGranularity(t *testing.T) {
	clk := &fakeClock{now: rv3028.Time{Hours: 1, Minutes: 2, Seconds: 3}}
	alarm, err := New(clk).Arm(61 * time.Second)
	require.NoError(t, err)
	assert.Equal(t, uint8(1), alarm.Hours)
	assert.Equal(t, uint8(3), alarm.Minutes)
	assert.Equal(t, uint8(4), alarm.Seconds)
}
