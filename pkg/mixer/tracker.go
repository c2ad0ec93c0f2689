package mixer

import (
	"sync"

	"github.com/noLimitFDN/nolimit-solana-sdk/pkg/model"
	"github.com/noLimitFDN/nolimit-solana-sdk/pkg/nlerr"
)

// Tracker merges successive status observations of mix jobs, guaranteeing
// callers two invariants the raw polls cannot: progress never regresses for
// a given mix id, and a terminal observation freezes the job — later updates
// are ignored.
type Tracker struct {
	mu   sync.Mutex
	last map[string]model.MixStatus
}

// NewTracker returns an empty tracker.
func NewTracker() *Tracker {
	return &Tracker{last: make(map[string]model.MixStatus)}
}

// Update folds a fresh observation into the tracked state and returns the
// merged view. Observations with out-of-range progress or a current hop
// beyond the total are rejected as mixer errors.
func (t *Tracker) Update(s *model.MixStatus) (*model.MixStatus, error) {
	if s.Progress < 0 || s.Progress > 100 {
		return nil, nlerr.Mixer("mix progress out of range", s.MixID)
	}
	if s.TotalHops > 0 && s.CurrentHop > s.TotalHops {
		return nil, nlerr.Mixer("mix current hop exceeds total hops", s.MixID)
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	prev, seen := t.last[s.MixID]
	if seen && prev.Status.Terminal() {
		frozen := prev
		return &frozen, nil
	}

	merged := *s
	if seen {
		if merged.Progress < prev.Progress {
			merged.Progress = prev.Progress
		}
		if merged.CurrentHop < prev.CurrentHop {
			merged.CurrentHop = prev.CurrentHop
		}
	}
	t.last[s.MixID] = merged

	out := merged
	return &out, nil
}

// Last returns the tracked view of a mix, or nil if it was never observed.
func (t *Tracker) Last(mixID string) *model.MixStatus {
	t.mu.Lock()
	defer t.mu.Unlock()
	if st, ok := t.last[mixID]; ok {
		out := st
		return &out
	}
	return nil
}
