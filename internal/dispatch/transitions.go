package dispatch

import "github.com/arjunvn/sahaya/internal/models"

// ValidTransitions maps each slot status to its valid next statuses.
// The lifecycle only moves forward; resolved and unassigned are terminal.
var ValidTransitions = map[string][]string{
	models.SlotAutoDispatched: {models.SlotInProgress, models.SlotResolved},
	models.SlotInProgress:     {models.SlotResolved},
	models.SlotResolved:       {},
	models.SlotUnassigned:     {},
}

// ValidSlotStatus reports whether s is a member of the per-slot lifecycle
// a volunteer may request.
func ValidSlotStatus(s string) bool {
	switch s {
	case models.SlotAutoDispatched, models.SlotInProgress, models.SlotResolved:
		return true
	}
	return false
}

// isValidTransition reports whether from → to is allowed.
func isValidTransition(from, to string) bool {
	for _, allowed := range ValidTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}
