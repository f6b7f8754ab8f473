package domain

import (
	"fmt"
	"time"
)

// Profile is a named ingestion performance preset. It fixes the initial
// batch size and inter-batch delay; when Adaptive is set the engine is
// allowed to tune the effective values during a run. The named profile
// itself is never mutated.
type Profile struct {
	// Name is the preset name.
	Name string

	// BatchSize is the initial number of chunks per embedding call.
	BatchSize int

	// BatchDelay is the initial pause between embedding calls.
	BatchDelay time.Duration

	// Adaptive enables speculative delay lowering during a run.
	Adaptive bool
}

// PacingFloor is the lowest inter-batch delay adaptive tuning will
// speculatively drop to.
const PacingFloor = 100 * time.Millisecond

// DefaultProfile is the conservative preset used when none is named:
// small batches, long pauses, no tuning.
var DefaultProfile = Profile{
	Name:       "default",
	BatchSize:  5,
	BatchDelay: 15 * time.Second,
	Adaptive:   false,
}

// profiles is the fixed preset table. All aggressive presets start at
// the pacing floor and rely on adaptive recovery when throttled.
var profiles = map[string]Profile{
	"turbo":   {Name: "turbo", BatchSize: 100, BatchDelay: PacingFloor, Adaptive: true},
	"extreme": {Name: "extreme", BatchSize: 200, BatchDelay: PacingFloor, Adaptive: true},
	"ultra":   {Name: "ultra", BatchSize: 300, BatchDelay: PacingFloor, Adaptive: true},
	"maximum": {Name: "maximum", BatchSize: 400, BatchDelay: PacingFloor, Adaptive: true},
	"insane":  {Name: "insane", BatchSize: 500, BatchDelay: PacingFloor, Adaptive: true},
}

// ProfileByName looks up a preset by name. The empty string and
// "default" return DefaultProfile.
func ProfileByName(name string) (Profile, error) {
	if name == "" || name == DefaultProfile.Name {
		return DefaultProfile, nil
	}
	p, ok := profiles[name]
	if !ok {
		return Profile{}, fmt.Errorf("%w: unknown profile %q", ErrInvalidInput, name)
	}
	return p, nil
}

// ProfileNames returns the preset names in escalation order.
func ProfileNames() []string {
	return []string{"default", "turbo", "extreme", "ultra", "maximum", "insane"}
}
