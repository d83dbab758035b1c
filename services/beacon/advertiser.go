package beacon

import (
	"time"

	"tinygo.org/x/bluetooth"
)

// AdvertiserConfig controls the advertisement identity. Zero values fall
// back to the package defaults.
type AdvertiserConfig struct {
	Name      string
	CompanyID uint16
}

// Advertiser runs non-connectable advertisements through the platform BLE
// adapter. One instance owns the adapter's default advertisement.
type Advertiser struct {
	adapter *bluetooth.Adapter
	adv     *bluetooth.Advertisement
	cfg     AdvertiserConfig

	// Fixed buffer for the encoded payload to avoid per-cycle allocations.
	data [PayloadLen]byte
}

func NewAdvertiser(adapter *bluetooth.Adapter, cfgs ...AdvertiserConfig) *Advertiser {
	var cfg AdvertiserConfig
	if len(cfgs) > 0 {
		cfg = cfgs[0]
	}
	if cfg.Name == "" {
		cfg.Name = DefaultName
	}
	if cfg.CompanyID == 0 {
		cfg.CompanyID = DefaultCompanyID
	}
	return &Advertiser{adapter: adapter, cfg: cfg}
}

// Configure enables the radio. Must be called once before Start.
func (a *Advertiser) Configure() error {
	if err := a.adapter.Enable(); err != nil {
		return err
	}
	a.adv = a.adapter.DefaultAdvertisement()
	return nil
}

// Start begins advertising the payload at the given interval. The frame is
// validated against the 31-byte budget first, so an oversized configuration
// fails cleanly without touching the radio.
func (a *Advertiser) Start(p Payload, interval time.Duration) error {
	if _, err := BuildFrame(a.cfg.Name, a.cfg.CompanyID, p); err != nil {
		return err
	}

	data := p.AppendBinary(a.data[:0])
	opts := bluetooth.AdvertisementOptions{
		AdvertisementType: bluetooth.AdvertisingTypeNonConnInd,
		LocalName:         a.cfg.Name,
		Interval:          bluetooth.NewDuration(interval),
		ManufacturerData: []bluetooth.ManufacturerDataElement{
			{CompanyID: a.cfg.CompanyID, Data: data},
		},
	}
	if err := a.adv.Configure(opts); err != nil {
		return err
	}
	return a.adv.Start()
}

// Stop ends the advertising window.
func (a *Advertiser) Stop() error {
	return a.adv.Stop()
}
