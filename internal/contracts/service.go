package contracts

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"lumenfolio/studio-portal/studio-portal-backend/pkg/pdf"
)

// ErrContractNotFound reports a lookup for a contract id that does not exist.
var ErrContractNotFound = errors.New("contract not found")

// Notifier dispatches a contract event to the notification layer. Delivery
// failures are the notification layer's concern and never roll back a
// transition.
type Notifier interface {
	ContractEvent(ctx context.Context, c *Contract, event string) error
}

// AgreementRenderer renders a printable agreement summary.
type AgreementRenderer interface {
	RenderAgreement(data pdf.AgreementData) ([]byte, error)
}

type Service interface {
	CreateContract(ctx context.Context, req CreateRequest) (*Contract, error)
	GetContract(ctx context.Context, id uuid.UUID) (*Contract, error)
	ListContracts(ctx context.Context, photographerID *uuid.UUID, status *ContractStatus) ([]Contract, error)
	TransitionContract(ctx context.Context, id uuid.UUID, target ContractStatus, opts TransitionOptions) (*Contract, error)
	GetProgress(ctx context.Context, id uuid.UUID) (*DeliveryProgress, error)
	GenerateAgreementPDF(ctx context.Context, id uuid.UUID) ([]byte, error)
}

type CreateRequest struct {
	PhotographerID     uuid.UUID
	ClientName         string
	ClientEmail        string
	Title              string
	EventDate          *time.Time
	DeliveryWindowDays int
}

type contractService struct {
	repo     Repository
	notifier Notifier
	renderer AgreementRenderer
	clock    Clock
	logger   *zap.Logger
}

func NewService(repo Repository, notifier Notifier, renderer AgreementRenderer, clock Clock, logger *zap.Logger) Service {
	return &contractService{
		repo:     repo,
		notifier: notifier,
		renderer: renderer,
		clock:    clock,
		logger:   logger,
	}
}

func (s *contractService) CreateContract(ctx context.Context, req CreateRequest) (*Contract, error) {
	now := s.clock.Now()
	window := req.DeliveryWindowDays
	if window <= 0 {
		window = DefaultDeliveryWindowDays
	}

	c := &Contract{
		ID:                 uuid.New(),
		PhotographerID:     req.PhotographerID,
		ClientName:         strings.TrimSpace(req.ClientName),
		ClientEmail:        strings.TrimSpace(req.ClientEmail),
		Title:              strings.TrimSpace(req.Title),
		EventDate:          req.EventDate,
		Status:             StatusDraft,
		DeliveryWindowDays: window,
		CreatedAt:          now,
		UpdatedAt:          now,
	}

	if err := s.repo.CreateContract(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *contractService) GetContract(ctx context.Context, id uuid.UUID) (*Contract, error) {
	c, err := s.repo.GetContractByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, ErrContractNotFound
	}
	return c, nil
}

func (s *contractService) ListContracts(ctx context.Context, photographerID *uuid.UUID, status *ContractStatus) ([]Contract, error) {
	return s.repo.ListContracts(ctx, photographerID, status)
}

// TransitionContract applies a lifecycle transition to the stored snapshot
// and persists the result under an expected-status precondition. Concurrent
// writers surface as ErrStaleContract; the caller re-reads and retries.
func (s *contractService) TransitionContract(ctx context.Context, id uuid.UUID, target ContractStatus, opts TransitionOptions) (*Contract, error) {
	snapshot, err := s.GetContract(ctx, id)
	if err != nil {
		return nil, err
	}

	updated, err := Transition(*snapshot, target, s.clock.Now(), opts)
	if err != nil {
		return nil, err
	}

	if err := s.repo.UpdateContractStatus(ctx, &updated, snapshot.Status); err != nil {
		return nil, err
	}

	event := "contract." + string(target)
	if err := s.notifier.ContractEvent(ctx, &updated, event); err != nil {
		s.logger.Warn("contract event notification failed",
			zap.String("contract_id", updated.ID.String()),
			zap.String("event", event),
			zap.Error(err))
	}

	return &updated, nil
}

func (s *contractService) GetProgress(ctx context.Context, id uuid.UUID) (*DeliveryProgress, error) {
	c, err := s.GetContract(ctx, id)
	if err != nil {
		return nil, err
	}
	progress := ComputeProgress(*c, s.clock.Now())
	return &progress, nil
}

func (s *contractService) GenerateAgreementPDF(ctx context.Context, id uuid.UUID) ([]byte, error) {
	c, err := s.GetContract(ctx, id)
	if err != nil {
		return nil, err
	}

	meta, _ := MetadataFor(c.Status)
	return s.renderer.RenderAgreement(pdf.AgreementData{
		ContractID:            c.ID.String(),
		Title:                 c.Title,
		ClientName:            c.ClientName,
		ClientEmail:           c.ClientEmail,
		StatusLabel:           meta.Label,
		EventDate:             c.EventDate,
		SignedAt:              c.SignedAt,
		DeliveryWindowDays:    c.DeliveryWindowDays,
		EstimatedDeliveryDate: c.EstimatedDeliveryDate,
		GeneratedAt:           s.clock.Now(),
	})
}
