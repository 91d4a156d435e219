package controller

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"wardsync/internal/domain"
	"wardsync/internal/dto"
	apperrors "wardsync/internal/errors"
)

type RosterUseCase interface {
	ListPatients(ctx context.Context) ([]domain.Patient, error)
	GetPatientOrders(ctx context.Context, patientInternalID string) ([]domain.OrderRecord, error)
	CreateOrder(ctx context.Context, patientExternalID, message, createdByUser, updatedByUser string) (*domain.OrderRecord, error)
	UpdateOrder(ctx context.Context, orderInternalID, message, updatedByUser string) error
}

type RosterController struct {
	useCase RosterUseCase
	logger  *zap.Logger
}

func NewRosterController(useCase RosterUseCase, logger *zap.Logger) *RosterController {
	return &RosterController{
		useCase: useCase,
		logger:  logger,
	}
}

// HandleListPatients serves GET /patients.
func (c *RosterController) HandleListPatients(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))

	patients, err := c.useCase.ListPatients(r.Context())
	if err != nil {
		c.handleUseCaseError(w, err, logger)
		return
	}

	data := make([]dto.PatientDTO, len(patients))
	for i, p := range patients {
		data[i] = dto.PatientDTO{
			InternalID:    p.InternalID,
			ExternalID:    p.ExternalID,
			Name:          p.Name,
			CreatedByUser: p.CreatedByUser,
			CreatedAt:     p.CreatedAt,
		}
	}

	c.writeJSON(w, http.StatusOK, dto.ListPatientsResponse{Data: data})
}

// HandleGetPatientOrders serves GET /patients/{internalId}.
func (c *RosterController) HandleGetPatientOrders(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))

	internalID := chi.URLParam(r, "internalId")
	if internalID == "" {
		c.writeValidationError(w, "invalid patient id", apperrors.ValidationDetail{
			Field:   "internalId",
			Message: "internalId is required",
		})
		return
	}

	orders, err := c.useCase.GetPatientOrders(r.Context(), internalID)
	if err != nil {
		c.handleUseCaseError(w, err, logger)
		return
	}

	data := dto.PatientOrdersData{Orders: make([]dto.OrderDTO, len(orders))}
	for i, o := range orders {
		data.Orders[i] = dto.OrderDTO{
			InternalID: o.InternalID,
			Message:    o.Message,
			UpdatedAt:  o.UpdatedAt,
		}
	}

	c.writeJSON(w, http.StatusOK, dto.GetPatientOrdersResponse{Data: data})
}

// HandleCreateOrder serves POST /orders.
func (c *RosterController) HandleCreateOrder(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))

	var req dto.CreateOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("invalid JSON body", zap.Error(err))
		c.writeValidationError(w, "invalid JSON body", apperrors.ValidationDetail{
			Field:   "body",
			Message: "request body must be valid JSON",
		})
		return
	}

	if validationErr := c.validateCreateOrderRequest(req); validationErr != nil {
		ve, _ := apperrors.IsValidationError(validationErr)
		c.writeValidationError(w, ve.Message, ve.Details...)
		return
	}

	record, err := c.useCase.CreateOrder(r.Context(), req.PatientExternalID, req.Message, req.CreatedByUser, req.UpdatedByUser)
	if err != nil {
		c.handleUseCaseError(w, err, logger)
		return
	}

	c.writeJSON(w, http.StatusCreated, dto.CreateOrderResponse{
		Data: &dto.OrderDTO{
			InternalID: record.InternalID,
			Message:    record.Message,
			UpdatedAt:  record.UpdatedAt,
		},
	})
}

// HandleUpdateOrder serves PATCH /orders/{internalId}.
func (c *RosterController) HandleUpdateOrder(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))

	internalID := chi.URLParam(r, "internalId")
	if internalID == "" {
		c.writeValidationError(w, "invalid order id", apperrors.ValidationDetail{
			Field:   "internalId",
			Message: "internalId is required",
		})
		return
	}

	var req dto.UpdateOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("invalid JSON body", zap.Error(err))
		c.writeValidationError(w, "invalid JSON body", apperrors.ValidationDetail{
			Field:   "body",
			Message: "request body must be valid JSON",
		})
		return
	}

	if err := c.useCase.UpdateOrder(r.Context(), internalID, req.Message, req.UpdatedByUser); err != nil {
		c.handleUseCaseError(w, err, logger)
		return
	}

	c.writeJSON(w, http.StatusOK, dto.UpdateOrderResponse{Success: true})
}

func (c *RosterController) validateCreateOrderRequest(req dto.CreateOrderRequest) error {
	var details []apperrors.ValidationDetail

	if strings.TrimSpace(req.PatientExternalID) == "" {
		details = append(details, apperrors.ValidationDetail{
			Field:   "patientExternalId",
			Message: "patientExternalId is required",
		})
	}

	if strings.TrimSpace(req.Message) == "" {
		details = append(details, apperrors.ValidationDetail{
			Field:   "message",
			Message: "message must not be empty or whitespace-only",
		})
	}

	if len(details) > 0 {
		return apperrors.NewValidationError("validation failed", details...)
	}

	return nil
}

func (c *RosterController) handleUseCaseError(w http.ResponseWriter, err error, logger *zap.Logger) {
	if nfe, ok := apperrors.IsNotFoundError(err); ok {
		c.writeJSON(w, http.StatusNotFound, map[string]string{
			"error":   "NOT_FOUND",
			"message": nfe.Message,
		})
		return
	}

	logger.Error("unexpected error", zap.Error(err))
	c.writeJSON(w, http.StatusInternalServerError, map[string]string{
		"error":   "INTERNAL_ERROR",
		"message": "an unexpected error occurred",
	})
}

type validationErrorResponse struct {
	Error   string                       `json:"error"`
	Message string                       `json:"message"`
	Details []apperrors.ValidationDetail `json:"details"`
}

func (c *RosterController) writeValidationError(w http.ResponseWriter, message string, details ...apperrors.ValidationDetail) {
	c.writeJSON(w, http.StatusBadRequest, validationErrorResponse{
		Error:   "VALIDATION_ERROR",
		Message: message,
		Details: details,
	})
}

func (c *RosterController) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		c.logger.Error("failed to encode response", zap.Error(err))
	}
}
