// Package node sequences one wake cycle of the beacon:
//
//	INIT → SAMPLE → ENCODE → ADVERTISE → SCHEDULE → SLEEP
//
// Execution is single-threaded and blocking; the only in-cycle wait is the
// fixed advertising window. SLEEP is a hardware power-off, not a suspend:
// volatile state is gone when the RTC alarm brings the board back up, and
// the whole program runs again from INIT. The power tier is the one value
// carried across that boundary, through the tier store.
package node

import (
	"time"

	"beaconnode/drivers/bme280x"
	"beaconnode/drivers/rv3028"
	"beaconnode/errcode"
	"beaconnode/services/battery"
	"beaconnode/services/beacon"
)

// Collaborator interfaces. Concrete wiring lives in cmd; tests and the host
// simulator inject their own.

// Sampler reads pack voltage in millivolts.
type Sampler interface {
	Read() (uint16, error)
}

// Sensor performs one forced-mode measurement.
type Sensor interface {
	ReadForced() (bme280x.Reading, error)
}

// Radio starts and stops the non-connectable advertisement.
type Radio interface {
	Start(p beacon.Payload, interval time.Duration) error
	Stop() error
}

// AlarmClock arms the wake alarm.
type AlarmClock interface {
	Arm(interval time.Duration) (rv3028.Alarm, error)
}

// Sleeper enters the deep power-off state. On hardware PowerOff does not
// return; host implementations return to emulate the next wake.
type Sleeper interface {
	PowerOff()
}

// Initializer is implemented by collaborators that need peripheral bring-up
// during INIT.
type Initializer interface {
	Configure() error
}

// Fallback reading used when the sensor fails mid-cycle: the cycle still
// advertises battery state with recognizable placeholder environment data.
var fallbackReading = bme280x.Reading{Temperature: 0, Pressure: 1013.25, Humidity: 50}

// Config tunes the controller. Zero values fall back to defaults.
type Config struct {
	// AdvWindow is the fixed advertising window per cycle. Default 30 s.
	AdvWindow time.Duration
	// Cycles bounds how many wake cycles Run executes; 0 means forever.
	// On hardware this is moot (SLEEP never returns), but the host
	// simulator and tests need Run to come back.
	Cycles int
	// Now supplies the payload timestamp in seconds. Defaults to seconds
	// since controller construction.
	Now func() uint32
}

// Controller owns the cycle state machine.
type Controller struct {
	cfg   Config
	batt  Sampler
	store battery.TierStore
	sens  Sensor
	radio Radio
	alarm AlarmClock
	sleep Sleeper

	inits []Initializer

	tier battery.Tier
}

func New(cfg Config, batt Sampler, store battery.TierStore, sens Sensor, radio Radio, alarm AlarmClock, sleep Sleeper, inits ...Initializer) *Controller {
	if cfg.AdvWindow <= 0 {
		cfg.AdvWindow = 30 * time.Second
	}
	if cfg.Now == nil {
		boot := time.Now()
		cfg.Now = func() uint32 { return uint32(time.Since(boot) / time.Second) }
	}
	return &Controller{
		cfg:   cfg,
		batt:  batt,
		store: store,
		sens:  sens,
		radio: radio,
		alarm: alarm,
		sleep: sleep,
		inits: inits,
	}
}

// Run executes INIT once and then cycles until Cycles is exhausted. Any
// INIT failure is fatal: the error is returned and no cycle runs.
func (c *Controller) Run() error {
	if err := c.init(); err != nil {
		println("node: init failed:", err.Error())
		return err
	}

	for n := 0; c.cfg.Cycles == 0 || n < c.cfg.Cycles; n++ {
		c.cycle()
		// SLEEP: on hardware this is the end; the RTC alarm resets the
		// board and the entry point runs again.
		c.sleep.PowerOff()
	}
	return nil
}

func (c *Controller) init() error {
	for _, in := range c.inits {
		if err := in.Configure(); err != nil {
			return errcode.Wrap(errcode.InitFailed, "node.init", err)
		}
	}

	// Restore the tier persisted before the last power-off so hysteresis
	// works across sleep, not just within one window.
	tier, ok, err := c.store.Load()
	switch {
	case err != nil:
		println("node: tier restore failed:", err.Error())
		c.tier = battery.TierNormal
	case !ok:
		println("node: no stored tier, starting normal")
		c.tier = battery.TierNormal
	default:
		println("node: restored tier:", tier.String())
		c.tier = tier
	}
	return nil
}

// cycle runs SAMPLE → ENCODE → ADVERTISE → SCHEDULE for one wake.
func (c *Controller) cycle() {
	// SAMPLE: battery first, the tier gates everything after it.
	mv, err := c.batt.Read()
	if err != nil {
		// Voltage unavailable. Hold the current tier rather than treating
		// a dead ADC as a critical battery.
		println("node: battery read failed:", err.Error())
		mv = 0
	} else {
		c.tier = battery.Next(c.tier, mv)
		if err := c.store.Save(c.tier); err != nil {
			println("node: tier persist failed:", err.Error())
		}
	}
	plan := c.tier.Plan()
	println("node: battery mV:", mv, "tier:", c.tier.String())

	reading, err := c.sens.ReadForced()
	if err != nil {
		println("node: sensor read failed, using defaults:", err.Error())
		reading = fallbackReading
	}

	// ENCODE.
	payload := beacon.New(c.tier, mv, reading, c.cfg.Now())

	// ADVERTISE: a frame/radio failure costs this cycle's broadcast only.
	if err := c.radio.Start(payload, plan.AdvInterval); err != nil {
		println("node: advertise failed:", err.Error())
	} else {
		time.Sleep(c.cfg.AdvWindow)
		if err := c.radio.Stop(); err != nil {
			println("node: advertise stop failed:", err.Error())
		}
	}

	// SCHEDULE: even a failed arm falls through to SLEEP; a node that
	// cannot schedule its wake has nothing better to do than power down.
	if alarm, err := c.alarm.Arm(plan.WakeInterval); err != nil {
		println("node: wake schedule failed:", err.Error())
	} else {
		println("node: next wake at", int(alarm.Hours), ":", int(alarm.Minutes), ":", int(alarm.Seconds))
	}
}
