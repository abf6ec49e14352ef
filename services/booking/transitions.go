package booking

import "homeserve/models"

var allowedTransitions = map[models.BookingStatus][]models.BookingStatus{
	models.StatusPending:    {models.StatusAccepted, models.StatusRejected, models.StatusCancelled},
	models.StatusAccepted:   {models.StatusInProgress, models.StatusCancelled},
	models.StatusInProgress: {models.StatusCompleted, models.StatusCancelled},
}

// CanTransition reports whether from may move to to. Terminal states have no targets.
func CanTransition(from, to models.BookingStatus) bool {
	for _, target := range allowedTransitions[from] {
		if target == to {
			return true
		}
	}
	return false
}
