package notifications

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"text/template"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"lumenfolio/studio-portal/studio-portal-backend/internal/contracts"
)

// EmailSender delivers a rendered message. The production implementation
// talks to the studio's email provider; tests and workers can use LogSender.
type EmailSender interface {
	Send(ctx context.Context, to, subject, body string) error
}

// LogSender writes messages to the log instead of delivering them.
type LogSender struct {
	Logger *zap.Logger
}

func (s *LogSender) Send(ctx context.Context, to, subject, body string) error {
	s.Logger.Info("notification dispatched",
		zap.String("to", to),
		zap.String("subject", subject))
	return nil
}

// Service renders and records contract event notifications. It implements
// contracts.Notifier.
type Service struct {
	db     *gorm.DB
	sender EmailSender
	logger *zap.Logger
}

func NewService(db *gorm.DB, sender EmailSender, logger *zap.Logger) (*Service, error) {
	if err := db.AutoMigrate(&Template{}, &SentNotification{}); err != nil {
		return nil, fmt.Errorf("failed to migrate notification tables: %w", err)
	}

	if err := seedDefaultTemplates(db); err != nil {
		logger.Warn("failed to seed default templates", zap.Error(err))
	}

	return &Service{
		db:     db,
		sender: sender,
		logger: logger,
	}, nil
}

// ContractEvent looks up the template for event, renders it against the
// contract and dispatches the result to the client. Events without an active
// template are skipped silently; not every transition is client-facing.
func (s *Service) ContractEvent(ctx context.Context, c *contracts.Contract, event string) error {
	var tmpl Template
	err := s.db.WithContext(ctx).Where("event = ? AND is_active = ?", event, true).First(&tmpl).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to load template for %s: %w", event, err)
	}

	data := templateData(c)
	subject, err := render(tmpl.Subject, data)
	if err != nil {
		return fmt.Errorf("failed to render subject for %s: %w", event, err)
	}
	body, err := render(tmpl.Body, data)
	if err != nil {
		return fmt.Errorf("failed to render body for %s: %w", event, err)
	}

	record := &SentNotification{
		ID:         uuid.New(),
		ContractID: c.ID,
		Recipient:  c.ClientEmail,
		Event:      event,
		Subject:    subject,
		Body:       body,
		Status:     "pending",
	}
	if err := s.db.WithContext(ctx).Create(record).Error; err != nil {
		return fmt.Errorf("failed to record notification: %w", err)
	}

	if err := s.sender.Send(ctx, c.ClientEmail, subject, body); err != nil {
		s.db.WithContext(ctx).Model(record).Update("status", "failed")
		return fmt.Errorf("failed to send %s notification: %w", event, err)
	}

	now := time.Now().UTC()
	return s.db.WithContext(ctx).Model(record).
		Updates(map[string]interface{}{"status": "sent", "sent_at": &now}).Error
}

// History returns the notifications recorded for a contract, newest first.
func (s *Service) History(ctx context.Context, contractID uuid.UUID) ([]SentNotification, error) {
	var list []SentNotification
	err := s.db.WithContext(ctx).
		Where("contract_id = ?", contractID).
		Order("created_at DESC").
		Find(&list).Error
	return list, err
}

func templateData(c *contracts.Contract) map[string]interface{} {
	data := map[string]interface{}{
		"ClientName":         c.ClientName,
		"Title":              c.Title,
		"Status":             string(c.Status),
		"DeliveryWindowDays": c.DeliveryWindowDays,
	}
	if meta, ok := contracts.MetadataFor(c.Status); ok {
		data["StatusLabel"] = meta.Label
	}
	if c.EstimatedDeliveryDate != nil {
		data["EstimatedDeliveryDate"] = c.EstimatedDeliveryDate.Format("January 2, 2006")
	}
	return data
}

func render(text string, data map[string]interface{}) (string, error) {
	tmpl, err := template.New("notification").Option("missingkey=zero").Parse(text)
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func seedDefaultTemplates(db *gorm.DB) error {
	defaults := []Template{
		{
			Event:   "contract.sent",
			Name:    "Contract sent",
			Subject: "Your contract for {{.Title}} is ready to review",
			Body:    "Hi {{.ClientName}},\n\nYour photography contract for {{.Title}} is ready. Please review and sign at your earliest convenience.",
		},
		{
			Event:   "contract.signed",
			Name:    "Contract signed",
			Subject: "Contract signed: {{.Title}}",
			Body:    "Hi {{.ClientName}},\n\nThanks for signing! We're all set for {{.Title}}.",
		},
		{
			Event:   "contract.in_progress",
			Name:    "Event completed",
			Subject: "Your photos are in production",
			Body:    "Hi {{.ClientName}},\n\nYour gallery for {{.Title}} is in production. Estimated delivery: {{.EstimatedDeliveryDate}}.",
		},
		{
			Event:   "contract.delivered",
			Name:    "Gallery delivered",
			Subject: "Your gallery is ready!",
			Body:    "Hi {{.ClientName}},\n\nYour final gallery for {{.Title}} has been delivered. Enjoy!",
		},
		{
			Event:   "delivery.reminder",
			Name:    "Delivery reminder",
			Subject: "Delivery window closing for {{.Title}}",
			Body:    "The delivery window for {{.Title}} closes on {{.EstimatedDeliveryDate}}.",
		},
		{
			Event:   "delivery.overdue",
			Name:    "Delivery overdue",
			Subject: "Delivery overdue: {{.Title}}",
			Body:    "The delivery window for {{.Title}} has passed. The gallery is overdue.",
		},
	}

	for _, tmpl := range defaults {
		var existing Template
		err := db.Where("event = ?", tmpl.Event).First(&existing).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			tmpl.ID = uuid.New()
			tmpl.IsActive = true
			if err := db.Create(&tmpl).Error; err != nil {
				return err
			}
			continue
		}
		if err != nil {
			return err
		}
	}
	return nil
}
