package contracts

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// ErrStaleContract reports that the status precondition of an update no
// longer held at write time. The caller should re-read and retry.
var ErrStaleContract = errors.New("contract was modified concurrently")

type Repository interface {
	CreateContract(ctx context.Context, c *Contract) error
	GetContractByID(ctx context.Context, id uuid.UUID) (*Contract, error)
	ListContracts(ctx context.Context, photographerID *uuid.UUID, status *ContractStatus) ([]Contract, error)

	// UpdateContractStatus persists the lifecycle fields of c only if the
	// stored status still equals expected. Returns ErrStaleContract when the
	// row was concurrently moved past the snapshot.
	UpdateContractStatus(ctx context.Context, c *Contract, expected ContractStatus) error

	// ListDeliveriesDue returns active contracts whose estimated delivery
	// date falls on or before cutoff.
	ListDeliveriesDue(ctx context.Context, cutoff time.Time, limit int) ([]Contract, error)
}

type postgresRepository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &postgresRepository{db: db}
}

func (r *postgresRepository) CreateContract(ctx context.Context, c *Contract) error {
	query := `
		INSERT INTO contracts (
			id, photographer_id, client_name, client_email, title, event_date,
			status, signed_at, event_completed_at, delivery_window_days,
			estimated_delivery_date, created_at, updated_at
		) VALUES (
			:id, :photographer_id, :client_name, :client_email, :title, :event_date,
			:status, :signed_at, :event_completed_at, :delivery_window_days,
			:estimated_delivery_date, :created_at, :updated_at
		)`
	_, err := r.db.NamedExecContext(ctx, query, c)
	return err
}

func (r *postgresRepository) GetContractByID(ctx context.Context, id uuid.UUID) (*Contract, error) {
	var c Contract
	err := r.db.GetContext(ctx, &c, "SELECT * FROM contracts WHERE id = $1", id)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return &c, err
}

func (r *postgresRepository) ListContracts(ctx context.Context, photographerID *uuid.UUID, status *ContractStatus) ([]Contract, error) {
	var list []Contract
	query := "SELECT * FROM contracts WHERE 1=1"
	var args []interface{}
	argCount := 1

	if photographerID != nil {
		query += fmt.Sprintf(" AND photographer_id = $%d", argCount)
		args = append(args, *photographerID)
		argCount++
	}
	if status != nil {
		query += fmt.Sprintf(" AND status = $%d", argCount)
		args = append(args, *status)
		argCount++
	}
	query += " ORDER BY created_at DESC"

	err := r.db.SelectContext(ctx, &list, query, args...)
	return list, err
}

func (r *postgresRepository) UpdateContractStatus(ctx context.Context, c *Contract, expected ContractStatus) error {
	query := `
		UPDATE contracts SET
			status = $1,
			signed_at = $2,
			event_completed_at = $3,
			delivery_window_days = $4,
			estimated_delivery_date = $5,
			updated_at = NOW()
		WHERE id = $6 AND status = $7`
	res, err := r.db.ExecContext(ctx, query,
		c.Status,
		c.SignedAt,
		c.EventCompletedAt,
		c.DeliveryWindowDays,
		c.EstimatedDeliveryDate,
		c.ID,
		expected,
	)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrStaleContract
	}
	return nil
}

func (r *postgresRepository) ListDeliveriesDue(ctx context.Context, cutoff time.Time, limit int) ([]Contract, error) {
	var list []Contract
	query := `
		SELECT * FROM contracts
		WHERE status IN ('in_progress', 'editing', 'ready')
		  AND estimated_delivery_date IS NOT NULL
		  AND estimated_delivery_date <= $1
		ORDER BY estimated_delivery_date ASC
		LIMIT $2`
	err := r.db.SelectContext(ctx, &list, query, cutoff, limit)
	return list, err
}
