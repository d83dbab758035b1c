//go:build rp2040 || rp2350

// Firmware entry point for the beacon node on RP2 boards. Wires the real
// peripherals (I2C sensor and RTC, battery ADC, BLE radio, power latch) into
// the cycle controller and runs it. Each run is one wake: the controller ends
// the cycle by dropping the power latch, and the RTC alarm starts the next.
package main

import (
	"machine"
	"time"

	"tinygo.org/x/bluetooth"

	"beaconnode/drivers/bme280x"
	"beaconnode/drivers/rv3028"
	"beaconnode/services/battery"
	"beaconnode/services/beacon"
	"beaconnode/services/node"
	"beaconnode/services/sched"
)

const (
	battSensePin  = machine.ADC0 // GP26, battery divider tap
	powerLatchPin = machine.GP15 // high holds the regulator enabled

	adcOversample = 4
)

// adcConverter reads the battery sense channel. Convert averages a few
// back-to-back samples; the divider is high-impedance and single samples
// jitter a couple of counts.
type adcConverter struct {
	adc machine.ADC
}

func (c *adcConverter) Convert() (uint16, error) {
	// machine.ADC.Get returns left-justified 16-bit samples; fold them back
	// to the native 12-bit range before averaging.
	var sum uint32
	for i := 0; i < adcOversample; i++ {
		sum += uint32(c.adc.Get() >> 4)
	}
	return uint16(sum / adcOversample), nil
}

// latchSleeper powers the board off by releasing its own supply latch.
type latchSleeper struct {
	pin machine.Pin
}

func (s latchSleeper) PowerOff() {
	println("node: releasing power latch")
	s.pin.Low()
	// The rail takes a few ms to collapse. Nothing runs after this.
	for {
		time.Sleep(time.Second)
	}
}

// initFn adapts a closure to the controller's Initializer.
type initFn func() error

func (f initFn) Configure() error { return f() }

func main() {
	// Grab the latch first: until it is high we are running on whatever
	// charge the alarm pulse left in the regulator.
	latch := powerLatchPin
	latch.Configure(machine.PinConfig{Mode: machine.PinOutput})
	latch.High()

	machine.Serial.Configure(machine.UARTConfig{})
	time.Sleep(100 * time.Millisecond)
	println("boot: beacon-node")

	bus := machine.I2C0
	if err := bus.Configure(machine.I2CConfig{
		Frequency: 400 * machine.KHz,
		SDA:       machine.I2C0_SDA_PIN,
		SCL:       machine.I2C0_SCL_PIN,
	}); err != nil {
		halt("i2c configure failed", err)
	}

	machine.InitADC()
	adc := machine.ADC{Pin: battSensePin}
	adc.Configure(machine.ADCConfig{})

	sensor := bme280x.New(bus)
	rtc := rv3028.New(bus)
	sampler := battery.NewSampler(&adcConverter{adc: adc})
	store := battery.NewRAMStore(rtc, 0)
	adv := beacon.NewAdvertiser(bluetooth.DefaultAdapter)
	scheduler := sched.New(rtc)

	ctl := node.New(node.Config{},
		sampler, store, sensor, adv, scheduler, latchSleeper{pin: latch},
		initFn(func() error { return sensor.Configure() }),
		initFn(func() error { return configureRTC(rtc) }),
		initFn(adv.Configure),
	)

	// On hardware Run only returns on a fatal init error.
	if err := ctl.Run(); err != nil {
		halt("controller failed", err)
	}
}

// configureRTC brings up the RTC and recovers from backup power loss: when
// the voltage-low flag is set the clock registers are garbage, so seed a
// known time. Absolute time is cosmetic here, the wake alarm only needs a
// consistently ticking clock.
func configureRTC(rtc *rv3028.Device) error {
	if err := rtc.Configure(); err != nil {
		return err
	}
	low, err := rtc.VoltageLow()
	if err != nil {
		return err
	}
	if low {
		println("rtc: backup power was lost, seeding clock")
		return rtc.SetTime(rv3028.Time{Weekday: 1, Date: 1, Month: 1, Year: 2025})
	}
	return nil
}

// halt logs the fault and parks. The watchdog-free board has no safe retry
// here; leave the serial log up for whoever plugs in.
func halt(msg string, err error) {
	for {
		println("FATAL:", msg, ":", err.Error())
		time.Sleep(5 * time.Second)
	}
}
