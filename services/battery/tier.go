package battery

import "time"

// Tier is the node's operating mode, ordered by increasing conservatism.
type Tier uint8

const (
	TierNormal Tier = iota
	TierConserve
	TierReserve
	TierSurvival

	tierCount = 4
)

func (t Tier) String() string {
	switch t {
	case TierNormal:
		return "normal"
	case TierConserve:
		return "conserve"
	case TierReserve:
		return "reserve"
	case TierSurvival:
		return "survival"
	}
	return "invalid"
}

// Valid reports whether t is one of the four defined tiers.
func (t Tier) Valid() bool { return t < tierCount }

// Plan is the duty cycle a tier buys: how long to sleep between wakes and
// how fast to advertise during the window.
type Plan struct {
	WakeInterval time.Duration
	AdvInterval  time.Duration
}

// Lookup table instead of a switch: every tier has an entry, so there is no
// default case to mis-handle.
var plans = [tierCount]Plan{
	TierNormal:   {WakeInterval: 5 * time.Minute, AdvInterval: 1000 * time.Millisecond},
	TierConserve: {WakeInterval: 15 * time.Minute, AdvInterval: 5000 * time.Millisecond},
	TierReserve:  {WakeInterval: 30 * time.Minute, AdvInterval: 10000 * time.Millisecond},
	TierSurvival: {WakeInterval: 60 * time.Minute, AdvInterval: 10000 * time.Millisecond},
}

// Plan returns the duty cycle for t. An invalid tier gets the survival plan;
// a corrupted tier value must never make the node burn harder.
func (t Tier) Plan() Plan {
	if !t.Valid() {
		return plans[TierSurvival]
	}
	return plans[t]
}

// Dual thresholds, one pair per boundary. Descending (toward Survival) uses
// the low edge of the current tier; ascending (toward Normal) uses the high
// edge of the tier above. The 200 mV gap between a boundary's two thresholds
// is the hysteresis band.
var (
	descendAt = [tierCount]uint16{
		TierNormal:   3600,
		TierConserve: 3400,
		TierReserve:  3200,
		TierSurvival: 0, // nowhere further down
	}
	ascendAt = [tierCount]uint16{
		TierNormal:   0xFFFF, // nowhere further up
		TierConserve: 3800,
		TierReserve:  3600,
		TierSurvival: 3400,
	}
)

// Next is one step of the tier Mealy machine: given the current tier and a
// voltage sample it returns the next tier. At most one tier of movement per
// decision; a large voltage swing converges over subsequent cycles.
func Next(cur Tier, mv uint16) Tier {
	if !cur.Valid() {
		return TierSurvival
	}
	if cur < TierSurvival && mv <= descendAt[cur] {
		return cur + 1
	}
	if cur > TierNormal && mv >= ascendAt[cur] {
		return cur - 1
	}
	return cur
}

// Step runs one decision and returns the new tier together with its plan.
func Step(cur Tier, mv uint16) (Tier, Plan) {
	next := Next(cur, mv)
	return next, next.Plan()
}
