package contracts

import (
	"time"

	"github.com/google/uuid"
)

type ContractStatus string

const (
	StatusDraft      ContractStatus = "draft"
	StatusSent       ContractStatus = "sent"
	StatusViewed     ContractStatus = "viewed"
	StatusSigned     ContractStatus = "signed"
	StatusInProgress ContractStatus = "in_progress"
	StatusEditing    ContractStatus = "editing"
	StatusReady      ContractStatus = "ready"
	StatusDelivered  ContractStatus = "delivered"
	StatusArchived   ContractStatus = "archived"
)

// AllStatuses lists every contract status in normal progression order.
var AllStatuses = []ContractStatus{
	StatusDraft,
	StatusSent,
	StatusViewed,
	StatusSigned,
	StatusInProgress,
	StatusEditing,
	StatusReady,
	StatusDelivered,
	StatusArchived,
}

// ParseStatus maps an inbound string to a ContractStatus.
func ParseStatus(s string) (ContractStatus, bool) {
	status := ContractStatus(s)
	for _, known := range AllStatuses {
		if status == known {
			return status, true
		}
	}
	return "", false
}

// DefaultDeliveryWindowDays is the delivery commitment applied when a
// contract does not specify its own window.
const DefaultDeliveryWindowDays = 60

type Contract struct {
	ID                    uuid.UUID      `json:"id" db:"id"`
	PhotographerID        uuid.UUID      `json:"photographer_id" db:"photographer_id"`
	ClientName            string         `json:"client_name" db:"client_name"`
	ClientEmail           string         `json:"client_email" db:"client_email"`
	Title                 string         `json:"title" db:"title"`
	EventDate             *time.Time     `json:"event_date,omitempty" db:"event_date"`
	Status                ContractStatus `json:"status" db:"status"`
	SignedAt              *time.Time     `json:"signed_at,omitempty" db:"signed_at"`
	EventCompletedAt      *time.Time     `json:"event_completed_at,omitempty" db:"event_completed_at"`
	DeliveryWindowDays    int            `json:"delivery_window_days" db:"delivery_window_days"`
	EstimatedDeliveryDate *time.Time     `json:"estimated_delivery_date,omitempty" db:"estimated_delivery_date"`
	CreatedAt             time.Time      `json:"created_at" db:"created_at"`
	UpdatedAt             time.Time      `json:"updated_at" db:"updated_at"`
}

// DeliveryState describes where a contract sits in its delivery countdown.
type DeliveryState string

const (
	DeliveryPendingEvent DeliveryState = "pending_event"
	DeliveryInProgress   DeliveryState = "in_progress"
	DeliveryDelivered    DeliveryState = "delivered"
)

// DeliveryProgress is a derived, read-only view of the delivery countdown.
// Day counts and percent are nil until the event-completion timestamp is set.
type DeliveryProgress struct {
	DaysElapsed           *int          `json:"days_elapsed,omitempty"`
	DaysRemaining         *int          `json:"days_remaining,omitempty"`
	PercentComplete       *float64      `json:"percent_complete,omitempty"`
	IsOverdue             bool          `json:"is_overdue"`
	DeliveryStatus        DeliveryState `json:"delivery_status"`
	EstimatedDeliveryDate *time.Time    `json:"estimated_delivery_date,omitempty"`
}
