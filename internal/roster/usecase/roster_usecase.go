package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"wardsync/internal/domain"
	apperrors "wardsync/internal/errors"
)

type PatientRepository interface {
	FindAll(ctx context.Context) ([]domain.Patient, error)
	FindByInternalID(ctx context.Context, internalID string) (*domain.Patient, error)
	FindByExternalID(ctx context.Context, externalID string) (*domain.Patient, error)
}

type OrderRepository interface {
	FindByPatientExternalID(ctx context.Context, externalID string) ([]domain.OrderRecord, error)
	Insert(ctx context.Context, record domain.OrderRecord) error
	UpdateMessage(ctx context.Context, internalID, message, updatedByUser string, updatedAt time.Time) error
}

// RosterUseCase serves the store boundary the sync client consumes: the
// patient roster, per-patient orders, and order create/update. The store is
// authoritative for order internal ids and updatedAt timestamps.
type RosterUseCase struct {
	patientRepo PatientRepository
	orderRepo   OrderRepository
	logger      *zap.Logger
}

func NewRosterUseCase(patientRepo PatientRepository, orderRepo OrderRepository, logger *zap.Logger) *RosterUseCase {
	return &RosterUseCase{
		patientRepo: patientRepo,
		orderRepo:   orderRepo,
		logger:      logger,
	}
}

func (uc *RosterUseCase) ListPatients(ctx context.Context) ([]domain.Patient, error) {
	return uc.patientRepo.FindAll(ctx)
}

func (uc *RosterUseCase) GetPatientOrders(ctx context.Context, patientInternalID string) ([]domain.OrderRecord, error) {
	patient, err := uc.patientRepo.FindByInternalID(ctx, patientInternalID)
	if err != nil {
		return nil, err
	}

	return uc.orderRepo.FindByPatientExternalID(ctx, patient.ExternalID)
}

func (uc *RosterUseCase) CreateOrder(ctx context.Context, patientExternalID, message, createdByUser, updatedByUser string) (*domain.OrderRecord, error) {
	if _, err := uc.patientRepo.FindByExternalID(ctx, patientExternalID); err != nil {
		if _, ok := apperrors.IsNotFoundError(err); ok {
			return nil, apperrors.NewNotFoundError("patient not found")
		}
		return nil, err
	}

	now := time.Now().UTC()
	record := domain.OrderRecord{
		InternalID:        uuid.New().String(),
		PatientExternalID: patientExternalID,
		Message:           message,
		CreatedByUser:     createdByUser,
		UpdatedByUser:     updatedByUser,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	if err := uc.orderRepo.Insert(ctx, record); err != nil {
		return nil, err
	}

	uc.logger.Info("order created",
		zap.String("orderId", record.InternalID),
		zap.String("patientExternalId", patientExternalID),
	)

	return &record, nil
}

func (uc *RosterUseCase) UpdateOrder(ctx context.Context, orderInternalID, message, updatedByUser string) error {
	if err := uc.orderRepo.UpdateMessage(ctx, orderInternalID, message, updatedByUser, time.Now().UTC()); err != nil {
		return err
	}

	uc.logger.Info("order updated", zap.String("orderId", orderInternalID))
	return nil
}
