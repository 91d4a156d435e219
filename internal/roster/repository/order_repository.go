package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"wardsync/internal/domain"
	"wardsync/internal/errors"
)

type MySQLOrderRepository struct {
	db *sql.DB
}

func NewMySQLOrderRepository(db *sql.DB) *MySQLOrderRepository {
	return &MySQLOrderRepository{db: db}
}

func (r *MySQLOrderRepository) FindByPatientExternalID(ctx context.Context, externalID string) ([]domain.OrderRecord, error) {
	query := `
		SELECT internalId, patientExternalId, message, createdByUser, updatedByUser, createdAt, updatedAt
		FROM PatientOrders
		WHERE patientExternalId = ?
		ORDER BY createdAt
	`

	rows, err := r.db.QueryContext(ctx, query, externalID)
	if err != nil {
		return nil, fmt.Errorf("querying orders by patient: %w", err)
	}
	defer rows.Close()

	orders := []domain.OrderRecord{}
	for rows.Next() {
		var o domain.OrderRecord
		if err := rows.Scan(
			&o.InternalID, &o.PatientExternalID, &o.Message,
			&o.CreatedByUser, &o.UpdatedByUser, &o.CreatedAt, &o.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scanning order row: %w", err)
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating order rows: %w", err)
	}

	return orders, nil
}

func (r *MySQLOrderRepository) Insert(ctx context.Context, record domain.OrderRecord) error {
	query := `
		INSERT INTO PatientOrders (internalId, patientExternalId, message, createdByUser, updatedByUser, createdAt, updatedAt)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query,
		record.InternalID, record.PatientExternalID, record.Message,
		record.CreatedByUser, record.UpdatedByUser, record.CreatedAt, record.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("inserting order: %w", err)
	}

	return nil
}

func (r *MySQLOrderRepository) UpdateMessage(ctx context.Context, internalID, message, updatedByUser string, updatedAt time.Time) error {
	query := `UPDATE PatientOrders SET message = ?, updatedByUser = ?, updatedAt = ? WHERE internalId = ?`

	result, err := r.db.ExecContext(ctx, query, message, updatedByUser, updatedAt, internalID)
	if err != nil {
		return fmt.Errorf("updating order message: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return errors.NewNotFoundError(fmt.Sprintf("order with id %s not found", internalID))
	}

	return nil
}
