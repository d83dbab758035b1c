// Package battery measures pack voltage and maps it onto the node's power
// tier. The tier drives how often the node wakes and how hard the radio
// works, so this package is the authority on the node's energy policy.
package battery

import "beaconnode/x/mathx"

// Converter performs one oversampled ADC conversion on the battery sense
// channel and returns the raw count. Channel setup happens in the concrete
// implementation's constructor.
type Converter interface {
	Convert() (uint16, error)
}

// SamplerConfig fixes the raw-count to millivolt conversion. All fields are
// optional; zero values fall back to the board defaults below.
type SamplerConfig struct {
	// ReferenceMilliVolts is the ADC reference. Default 3300.
	ReferenceMilliVolts uint32
	// ResolutionBits is the conversion width. Default 12.
	ResolutionBits uint8
	// GainNum/GainDen express the sense divider ratio as a rational so the
	// conversion stays in integer math. Defaults 6090/1870, the
	// (4.22 MΩ + 1.87 MΩ)/1.87 MΩ divider on the battery sense rail.
	GainNum uint32
	GainDen uint32
}

// Sampler converts raw battery ADC counts into millivolts.
type Sampler struct {
	conv Converter
	cfg  SamplerConfig
}

func NewSampler(conv Converter, cfgs ...SamplerConfig) *Sampler {
	var cfg SamplerConfig
	if len(cfgs) > 0 {
		cfg = cfgs[0]
	}
	if cfg.ReferenceMilliVolts == 0 {
		cfg.ReferenceMilliVolts = 3300
	}
	if cfg.ResolutionBits == 0 {
		cfg.ResolutionBits = 12
	}
	if cfg.GainNum == 0 || cfg.GainDen == 0 {
		cfg.GainNum, cfg.GainDen = 6090, 1870
	}
	return &Sampler{conv: conv, cfg: cfg}
}

// MilliVolts converts a raw count: raw * reference * gain / 2^resolution.
// Monotonically non-decreasing in raw.
func (s *Sampler) MilliVolts(raw uint16) uint16 {
	mv := uint64(raw) * uint64(s.cfg.ReferenceMilliVolts) * uint64(s.cfg.GainNum) /
		(uint64(s.cfg.GainDen) << s.cfg.ResolutionBits)
	if mv > 0xFFFF {
		mv = 0xFFFF
	}
	return uint16(mv)
}

// Read performs one conversion and returns millivolts. A conversion failure
// is surfaced as an error; callers that want the legacy 0 mV sentinel use
// ReadMilliVolts.
func (s *Sampler) Read() (uint16, error) {
	raw, err := s.conv.Convert()
	if err != nil {
		return 0, err
	}
	return s.MilliVolts(raw), nil
}

// ReadMilliVolts returns 0 when the conversion fails. 0 mV means "voltage
// unavailable", never a literal reading; tier decisions must not be made
// from it.
func (s *Sampler) ReadMilliVolts() uint16 {
	mv, err := s.Read()
	if err != nil {
		return 0
	}
	return mv
}

// Pack voltage range used for the coarse charge estimate.
const (
	voltageMaxMilliV = 4200
	voltageMinMilliV = 3500
)

// Percent linearly maps pack millivolts onto a 0..100 charge estimate.
func Percent(mv uint16) uint8 {
	v := mathx.Clamp(uint32(mv), voltageMinMilliV, voltageMaxMilliV)
	return uint8((v - voltageMinMilliV) * 100 / (voltageMaxMilliV - voltageMinMilliV))
}
