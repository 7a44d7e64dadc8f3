package narrative

import "github.com/satyalabs/trustmem/internal/model"

// computeState classifies the narrative lifecycle from the item count and
// the gap between the reference year and the last observed year. This is a
// derived classification, not a stored state machine: it can flip between
// evaluations purely because nowYear advanced.
func computeState(count, lastSeen int, resurfacing bool, nowYear int) model.NarrativeState {
	if lastSeen == 0 {
		// No item carries a usable year
		return model.StateNew
	}
	if count == 1 {
		return model.StateNew
	}

	gap := nowYear - lastSeen
	if gap >= 2 {
		if resurfacing {
			return model.StateResurfaced
		}
		return model.StateDormant
	}
	return model.StateActive
}
