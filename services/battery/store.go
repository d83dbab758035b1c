package battery

// The deep power-off sleep discards all volatile memory, so the remembered
// tier that hysteresis depends on cannot live in an ordinary variable. It is
// parked in a domain that stays powered through the sleep: a user RAM byte
// on the RTC.

// UserRAM is the always-powered byte store (see rv3028.Device).
type UserRAM interface {
	ReadUserRAM(slot int) (byte, error)
	WriteUserRAM(slot int, b byte) error
}

// TierStore persists the power tier across power-off sleeps.
type TierStore interface {
	// Load returns the stored tier. ok is false when the slot holds no
	// valid tier (first boot, or backup power was lost).
	Load() (tier Tier, ok bool, err error)
	Save(Tier) error
}

// Tier byte layout: magic in the high nibble, tier in the low nibble. The
// magic distinguishes a stored tier from the power-on reset value.
const tierMagic = 0xB0

// RAMStore keeps the tier in one RTC user RAM byte.
type RAMStore struct {
	ram  UserRAM
	slot int
}

func NewRAMStore(ram UserRAM, slot int) *RAMStore {
	return &RAMStore{ram: ram, slot: slot}
}

func (s *RAMStore) Load() (Tier, bool, error) {
	b, err := s.ram.ReadUserRAM(s.slot)
	if err != nil {
		return TierNormal, false, err
	}
	if b&0xF0 != tierMagic {
		return TierNormal, false, nil
	}
	t := Tier(b & 0x0F)
	if !t.Valid() {
		return TierNormal, false, nil
	}
	return t, true, nil
}

func (s *RAMStore) Save(t Tier) error {
	return s.ram.WriteUserRAM(s.slot, tierMagic|byte(t))
}
