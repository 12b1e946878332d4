package notifications

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Template is the stored message template for one contract event.
type Template struct {
	ID        uuid.UUID      `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	Event     string         `json:"event" gorm:"not null;uniqueIndex"`
	Name      string         `json:"name" gorm:"not null"`
	Subject   string         `json:"subject" gorm:"not null"`
	Body      string         `json:"body" gorm:"not null"`
	Metadata  datatypes.JSON `json:"metadata" gorm:"type:jsonb"`
	IsActive  bool           `json:"is_active" gorm:"default:true"`
	CreatedAt time.Time      `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time      `json:"updated_at" gorm:"autoUpdateTime"`
}

// SentNotification records one dispatched message.
type SentNotification struct {
	ID         uuid.UUID  `json:"id" gorm:"primaryKey;type:uuid"`
	ContractID uuid.UUID  `json:"contract_id" gorm:"not null;index"`
	Recipient  string     `json:"recipient" gorm:"not null"`
	Event      string     `json:"event" gorm:"not null;index"`
	Subject    string     `json:"subject"`
	Body       string     `json:"body"`
	Status     string     `json:"status" gorm:"not null"` // 'pending', 'sent', 'failed'
	SentAt     *time.Time `json:"sent_at,omitempty"`
	CreatedAt  time.Time  `json:"created_at" gorm:"autoCreateTime"`
}
