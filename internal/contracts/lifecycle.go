package contracts

import (
	"fmt"
	"time"
)

// allowedTransitions enforces the contract lifecycle. Archived is terminal
// and reachable from every non-terminal status.
var allowedTransitions = map[ContractStatus][]ContractStatus{
	StatusDraft:      {StatusSent, StatusArchived},
	StatusSent:       {StatusViewed, StatusSigned, StatusArchived},
	StatusViewed:     {StatusSigned, StatusArchived},
	StatusSigned:     {StatusInProgress, StatusArchived},
	StatusInProgress: {StatusEditing, StatusArchived},
	StatusEditing:    {StatusReady, StatusArchived},
	StatusReady:      {StatusDelivered, StatusArchived},
	StatusDelivered:  {StatusArchived},
	StatusArchived:   {},
}

// InvalidTransitionError reports a transition request that is not in the
// allowed-transitions table. The attempted contract is left unchanged.
type InvalidTransitionError struct {
	Current   ContractStatus
	Attempted ContractStatus
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("contract status cannot change from %q to %q", e.Current, e.Attempted)
}

// CanTransition checks if a status transition is allowed.
func CanTransition(from, to ContractStatus) bool {
	allowed, exists := allowedTransitions[from]
	if !exists {
		return false
	}
	for _, allowedTo := range allowed {
		if allowedTo == to {
			return true
		}
	}
	return false
}

// AllowedTransitions returns the legal next statuses for a given status.
func AllowedTransitions(from ContractStatus) []ContractStatus {
	allowed, exists := allowedTransitions[from]
	if !exists {
		return nil
	}
	out := make([]ContractStatus, len(allowed))
	copy(out, allowed)
	return out
}

// TransitionOptions carries per-transition inputs.
type TransitionOptions struct {
	// DeliveryWindowDays replaces the contract's delivery window when the
	// event is marked completed (signed -> in_progress). Zero or negative
	// keeps the current value.
	DeliveryWindowDays int
}

// Transition validates target against the current status of c and returns an
// updated copy. On an illegal pair it returns c unmodified together with an
// *InvalidTransitionError. Persistence is the caller's responsibility.
//
// Side effects on success:
//   - entering signed stamps SignedAt once; an existing SignedAt is kept
//   - signed -> in_progress stamps EventCompletedAt and applies the
//     delivery-window override from opts
//   - EstimatedDeliveryDate is recomputed from the resulting fields
func Transition(c Contract, target ContractStatus, now time.Time, opts TransitionOptions) (Contract, error) {
	if !CanTransition(c.Status, target) {
		return c, &InvalidTransitionError{Current: c.Status, Attempted: target}
	}

	if target == StatusSigned && c.SignedAt == nil {
		signedAt := now
		c.SignedAt = &signedAt
	}

	if c.Status == StatusSigned && target == StatusInProgress {
		completedAt := now
		c.EventCompletedAt = &completedAt
		if opts.DeliveryWindowDays > 0 {
			c.DeliveryWindowDays = opts.DeliveryWindowDays
		} else if c.DeliveryWindowDays <= 0 {
			c.DeliveryWindowDays = DefaultDeliveryWindowDays
		}
	}

	c.Status = target
	c.EstimatedDeliveryDate = estimatedDelivery(c)
	return c, nil
}

func estimatedDelivery(c Contract) *time.Time {
	if c.EventCompletedAt == nil {
		return nil
	}
	window := c.DeliveryWindowDays
	if window <= 0 {
		window = 1
	}
	due := c.EventCompletedAt.AddDate(0, 0, window)
	return &due
}
