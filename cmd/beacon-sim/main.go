// beacon-sim runs the full cycle controller on a host with simulated
// peripherals: a draining battery, a slowly drifting environment, and a
// radio that prints every frame it would have put on the air. Useful for
// watching the tier machine walk down a discharge curve without waiting for
// a real cell to drain.
package main

import (
	"encoding/hex"
	"flag"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"beaconnode/drivers/bme280x"
	"beaconnode/drivers/rv3028"
	"beaconnode/services/battery"
	"beaconnode/services/beacon"
	"beaconnode/services/node"
	"beaconnode/services/sched"
)

// Config drives the simulation. Loaded from YAML; missing fields fall back
// to the defaults below.
type Config struct {
	Cycles          int           `yaml:"cycles"`
	AdvWindow       time.Duration `yaml:"adv_window"`
	StartMilliVolts int           `yaml:"start_millivolts"`
	DrainMilliVolts int           `yaml:"drain_millivolts"` // per cycle
	TemperatureC    float64       `yaml:"temperature_c"`
	PressureHPa     float64       `yaml:"pressure_hpa"`
	HumidityPct     float64       `yaml:"humidity_pct"`
}

func defaultConfig() *Config {
	return &Config{
		Cycles:          24,
		AdvWindow:       200 * time.Millisecond,
		StartMilliVolts: 4100,
		DrainMilliVolts: 60,
		TemperatureC:    21.4,
		PressureHPa:     1008.6,
		HumidityPct:     43.0,
	}
}

func loadConfig(path string) (*Config, error) {
	cfg := defaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	def := defaultConfig()
	if cfg.Cycles <= 0 {
		cfg.Cycles = def.Cycles
	}
	if cfg.AdvWindow <= 0 {
		cfg.AdvWindow = def.AdvWindow
	}
	if cfg.StartMilliVolts <= 0 {
		cfg.StartMilliVolts = def.StartMilliVolts
	}
	return cfg, nil
}

// simBattery implements battery.Converter over a linear discharge. It holds
// millivolts and inverts the sampler's conversion to produce raw counts, so
// the real integer pipeline still runs.
type simBattery struct {
	mv    int
	drain int
}

func (b *simBattery) Convert() (uint16, error) {
	raw := uint64(b.mv) * 1870 << 12 / (3300 * 6090)
	b.mv -= b.drain
	if b.mv < 0 {
		b.mv = 0
	}
	return uint16(raw), nil
}

// simSensor returns the configured baseline with a small per-cycle drift.
type simSensor struct {
	cfg   *Config
	cycle int
}

func (s *simSensor) ReadForced() (bme280x.Reading, error) {
	s.cycle++
	drift := float32(s.cycle%7) * 0.05
	return bme280x.Reading{
		Temperature: float32(s.cfg.TemperatureC) + drift,
		Pressure:    float32(s.cfg.PressureHPa) - drift,
		Humidity:    float32(s.cfg.HumidityPct) + drift,
	}, nil
}

// simRadio prints the exact frame the advertiser would broadcast.
type simRadio struct {
	name      string
	companyID uint16
}

func (r *simRadio) Start(p beacon.Payload, interval time.Duration) error {
	frame, err := beacon.BuildFrame(r.name, r.companyID, p)
	if err != nil {
		return err
	}
	fmt.Printf("adv: interval=%v frame=%s\n", interval, hex.EncodeToString(frame))
	fmt.Printf("     tier=%d batt=%dmV (%d%%) temp=%.2fC press=%.1fhPa hum=%.2f%% ts=%d\n",
		p.Tier, p.BatteryMilliVolts, battery.Percent(p.BatteryMilliVolts),
		float64(p.TempCenti)/100, float64(p.PressureDeci)/10,
		float64(p.HumidityCenti)/100, p.Timestamp)
	return nil
}

func (r *simRadio) Stop() error { return nil }

// simClock backs the scheduler with the host clock.
type simClock struct{}

func (simClock) ReadTime() (rv3028.Time, error) {
	now := time.Now()
	return rv3028.Time{
		Seconds: uint8(now.Second()),
		Minutes: uint8(now.Minute()),
		Hours:   uint8(now.Hour()),
		Weekday: uint8(now.Weekday()),
		Date:    uint8(now.Day()),
		Month:   uint8(now.Month()),
		Year:    uint16(now.Year()),
	}, nil
}

func (simClock) SetAlarm(a rv3028.Alarm) error {
	fmt.Printf("rtc: alarm armed for %02d:%02d:%02d\n", a.Hours, a.Minutes, a.Seconds)
	return nil
}

func (simClock) ClearAlarmFlag() error       { return nil }
func (simClock) EnableAlarmInterrupt() error { return nil }

// simRAM is the always-powered tier byte. It survives the simulated
// power-off because the process does.
type simRAM struct {
	bytes [rv3028.UserRAMSlots]byte
}

func (r *simRAM) ReadUserRAM(slot int) (byte, error)  { return r.bytes[slot], nil }
func (r *simRAM) WriteUserRAM(slot int, b byte) error { r.bytes[slot] = b; return nil }

// simSleeper compresses the power-off into a short pause.
type simSleeper struct{}

func (simSleeper) PowerOff() {
	fmt.Println("node: power off (simulated)")
	time.Sleep(50 * time.Millisecond)
}

func main() {
	configPath := flag.String("config", "beacon-sim.yaml", "simulation config file")
	flag.Parse()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "beacon-sim:", err)
		os.Exit(1)
	}

	batt := &simBattery{mv: cfg.StartMilliVolts, drain: cfg.DrainMilliVolts}
	ram := &simRAM{}
	start := time.Now()

	ctl := node.New(node.Config{
		AdvWindow: cfg.AdvWindow,
		Cycles:    cfg.Cycles,
		Now:       func() uint32 { return uint32(time.Since(start) / time.Second) },
	},
		battery.NewSampler(batt),
		battery.NewRAMStore(ram, 0),
		&simSensor{cfg: cfg},
		&simRadio{name: beacon.DefaultName, companyID: beacon.DefaultCompanyID},
		sched.New(simClock{}),
		simSleeper{},
	)

	if err := ctl.Run(); err != nil {
		fmt.Fprintln(os.Stderr, "beacon-sim:", err)
		os.Exit(1)
	}
	fmt.Printf("beacon-sim: %d cycles done, battery at %d mV\n", cfg.Cycles, batt.mv)
}
