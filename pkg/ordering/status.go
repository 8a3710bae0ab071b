package ordering

import "github.com/example/fastbite/pkg/models"

var statusRank = map[string]int{
	models.StatusNotDelivered:   0,
	models.StatusBeingDelivered: 1,
	models.StatusDelivered:      2,
}

// ValidStatus reports whether s is one of the known delivery statuses.
func ValidStatus(s string) bool {
	_, ok := statusRank[s]
	return ok
}

// CanTransition reports whether an order may move from one status to
// another. Transitions are forward-only; skipping an intermediate status
// is allowed (NotDelivered straight to Delivered), moving backward is not.
func CanTransition(from, to string) bool {
	fromRank, ok := statusRank[from]
	if !ok {
		return false
	}
	toRank, ok := statusRank[to]
	if !ok {
		return false
	}
	return toRank > fromRank
}
