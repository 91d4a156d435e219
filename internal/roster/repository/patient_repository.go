package repository

import (
	"context"
	"database/sql"
	"fmt"

	"wardsync/internal/domain"
	"wardsync/internal/errors"
)

type MySQLPatientRepository struct {
	db *sql.DB
}

func NewMySQLPatientRepository(db *sql.DB) *MySQLPatientRepository {
	return &MySQLPatientRepository{db: db}
}

func (r *MySQLPatientRepository) FindAll(ctx context.Context) ([]domain.Patient, error) {
	query := `
		SELECT internalId, externalId, name, createdByUser, createdAt
		FROM Patients
		ORDER BY createdAt
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying patients: %w", err)
	}
	defer rows.Close()

	patients := []domain.Patient{}
	for rows.Next() {
		var p domain.Patient
		if err := rows.Scan(&p.InternalID, &p.ExternalID, &p.Name, &p.CreatedByUser, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning patient row: %w", err)
		}
		patients = append(patients, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating patient rows: %w", err)
	}

	return patients, nil
}

func (r *MySQLPatientRepository) FindByInternalID(ctx context.Context, internalID string) (*domain.Patient, error) {
	query := `
		SELECT internalId, externalId, name, createdByUser, createdAt
		FROM Patients
		WHERE internalId = ?
	`

	var p domain.Patient
	err := r.db.QueryRowContext(ctx, query, internalID).Scan(
		&p.InternalID, &p.ExternalID, &p.Name, &p.CreatedByUser, &p.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, errors.NewNotFoundError(fmt.Sprintf("patient with id %s not found", internalID))
	}
	if err != nil {
		return nil, fmt.Errorf("querying patient by id: %w", err)
	}

	return &p, nil
}

func (r *MySQLPatientRepository) FindByExternalID(ctx context.Context, externalID string) (*domain.Patient, error) {
	query := `
		SELECT internalId, externalId, name, createdByUser, createdAt
		FROM Patients
		WHERE externalId = ?
	`

	var p domain.Patient
	err := r.db.QueryRowContext(ctx, query, externalID).Scan(
		&p.InternalID, &p.ExternalID, &p.Name, &p.CreatedByUser, &p.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, errors.NewNotFoundError(fmt.Sprintf("patient with external id %s not found", externalID))
	}
	if err != nil {
		return nil, fmt.Errorf("querying patient by external id: %w", err)
	}

	return &p, nil
}
