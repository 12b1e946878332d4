package contracts

import "time"

// ComputeProgress derives the delivery countdown for a contract snapshot.
// It is total over its inputs and never mutates c.
func ComputeProgress(c Contract, now time.Time) DeliveryProgress {
	if c.Status == StatusDelivered {
		// Delivery closes the countdown unconditionally, even when the
		// event-completion timestamp is missing. A missing timestamp here can
		// only come from a data write that bypassed Transition.
		remaining := 0
		percent := 100.0
		return DeliveryProgress{
			DaysRemaining:         &remaining,
			PercentComplete:       &percent,
			DeliveryStatus:        DeliveryDelivered,
			EstimatedDeliveryDate: estimatedDelivery(c),
		}
	}

	if c.EventCompletedAt == nil {
		return DeliveryProgress{DeliveryStatus: DeliveryPendingEvent}
	}

	window := c.DeliveryWindowDays
	if window <= 0 {
		window = 1
	}

	elapsed := int(now.Sub(*c.EventCompletedAt).Hours() / 24)
	if elapsed < 0 {
		elapsed = 0
	}
	remaining := window - elapsed

	// Percent measures progress through the promised window, so it stays
	// clamped at 100 even once the contract is overdue.
	percent := float64(elapsed) / float64(window) * 100
	if percent > 100 {
		percent = 100
	}

	due := c.EventCompletedAt.AddDate(0, 0, window)
	return DeliveryProgress{
		DaysElapsed:           &elapsed,
		DaysRemaining:         &remaining,
		PercentComplete:       &percent,
		IsOverdue:             remaining < 0,
		DeliveryStatus:        DeliveryInProgress,
		EstimatedDeliveryDate: &due,
	}
}
