// Package sched arms the RTC alarm that wakes the node from its power-off
// sleep. Alarm arithmetic is time-of-day only: the interval is added modulo
// 24 hours and weekday/date are carried over unchanged, so intervals must
// stay inside one calendar day.
package sched

import (
	"time"

	"beaconnode/drivers/rv3028"
	"beaconnode/errcode"
)

// Clock is the subset of the RTC the scheduler needs.
type Clock interface {
	ReadTime() (rv3028.Time, error)
	SetAlarm(rv3028.Alarm) error
	ClearAlarmFlag() error
	EnableAlarmInterrupt() error
}

type Scheduler struct {
	clk Clock
}

func New(clk Clock) *Scheduler {
	return &Scheduler{clk: clk}
}

const secondsPerDay = 24 * 60 * 60

// Arm programs the wake alarm interval from now. It clears any pending alarm
// flag before writing the alarm so a stale flag cannot re-trigger the wake
// pin immediately, then enables the alarm interrupt. The armed alarm is
// returned for logging.
func (s *Scheduler) Arm(interval time.Duration) (rv3028.Alarm, error) {
	secs := int64(interval / time.Second)
	if secs <= 0 || secs >= secondsPerDay {
		return rv3028.Alarm{}, &errcode.E{
			C:   errcode.InvalidParams,
			Op:  "sched.Arm",
			Msg: "interval must be within (0, 24h)",
		}
	}

	now, err := s.clk.ReadTime()
	if err != nil {
		return rv3028.Alarm{}, errcode.Wrap(errcode.I2CError, "sched.Arm", err)
	}

	target := (int64(now.Hours)*3600 + int64(now.Minutes)*60 + int64(now.Seconds) + secs) % secondsPerDay
	alarm := rv3028.Alarm{
		Seconds: uint8(target % 60),
		Minutes: uint8((target / 60) % 60),
		Hours:   uint8(target / 3600),
		Weekday: now.Weekday,
		Date:    now.Date,
	}

	if err := s.clk.ClearAlarmFlag(); err != nil {
		return rv3028.Alarm{}, errcode.Wrap(errcode.I2CError, "sched.Arm", err)
	}
	if err := s.clk.SetAlarm(alarm); err != nil {
		return rv3028.Alarm{}, errcode.Wrap(errcode.I2CError, "sched.Arm", err)
	}
	if err := s.clk.EnableAlarmInterrupt(); err != nil {
		return rv3028.Alarm{}, errcode.Wrap(errcode.I2CError, "sched.Arm", err)
	}
	return alarm, nil
}
