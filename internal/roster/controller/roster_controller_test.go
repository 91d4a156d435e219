package controller

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"wardsync/internal/domain"
	"wardsync/internal/dto"
	apperrors "wardsync/internal/errors"
)

// Mock implementations

type mockRosterUseCase struct {
	ListPatientsFunc     func(ctx context.Context) ([]domain.Patient, error)
	GetPatientOrdersFunc func(ctx context.Context, patientInternalID string) ([]domain.OrderRecord, error)
	CreateOrderFunc      func(ctx context.Context, patientExternalID, message, createdByUser, updatedByUser string) (*domain.OrderRecord, error)
	UpdateOrderFunc      func(ctx context.Context, orderInternalID, message, updatedByUser string) error
}

func (m *mockRosterUseCase) ListPatients(ctx context.Context) ([]domain.Patient, error) {
	return m.ListPatientsFunc(ctx)
}

func (m *mockRosterUseCase) GetPatientOrders(ctx context.Context, patientInternalID string) ([]domain.OrderRecord, error) {
	return m.GetPatientOrdersFunc(ctx, patientInternalID)
}

func (m *mockRosterUseCase) CreateOrder(ctx context.Context, patientExternalID, message, createdByUser, updatedByUser string) (*domain.OrderRecord, error) {
	return m.CreateOrderFunc(ctx, patientExternalID, message, createdByUser, updatedByUser)
}

func (m *mockRosterUseCase) UpdateOrder(ctx context.Context, orderInternalID, message, updatedByUser string) error {
	return m.UpdateOrderFunc(ctx, orderInternalID, message, updatedByUser)
}

func newTestRouter(useCase RosterUseCase) http.Handler {
	c := NewRosterController(useCase, zap.NewNop())
	r := chi.NewRouter()
	r.Get("/patients", c.HandleListPatients)
	r.Get("/patients/{internalId}", c.HandleGetPatientOrders)
	r.Post("/orders", c.HandleCreateOrder)
	r.Patch("/orders/{internalId}", c.HandleUpdateOrder)
	return r
}

// Tests

func TestHandleListPatients_Success(t *testing.T) {
	router := newTestRouter(&mockRosterUseCase{
		ListPatientsFunc: func(ctx context.Context) ([]domain.Patient, error) {
			return []domain.Patient{
				{InternalID: "p1", ExternalID: "ext-1", Name: "Ann Chen", CreatedByUser: "admin"},
			}, nil
		},
	})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/patients", nil))

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp dto.ListPatientsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Data, 1)
	assert.Equal(t, "p1", resp.Data[0].InternalID)
	assert.Equal(t, "ext-1", resp.Data[0].ExternalID)
}

func TestHandleGetPatientOrders_Success(t *testing.T) {
	router := newTestRouter(&mockRosterUseCase{
		GetPatientOrdersFunc: func(ctx context.Context, id string) ([]domain.OrderRecord, error) {
			assert.Equal(t, "p1", id)
			return []domain.OrderRecord{{InternalID: "o1", Message: "take aspirin", UpdatedAt: time.Now()}}, nil
		},
	})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/patients/p1", nil))

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp dto.GetPatientOrdersResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Data.Orders, 1)
	assert.Equal(t, "o1", resp.Data.Orders[0].InternalID)
}

func TestHandleGetPatientOrders_NotFound(t *testing.T) {
	router := newTestRouter(&mockRosterUseCase{
		GetPatientOrdersFunc: func(ctx context.Context, id string) ([]domain.OrderRecord, error) {
			return nil, apperrors.NewNotFoundError("patient not found")
		},
	})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/patients/missing", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "NOT_FOUND")
}

func TestHandleCreateOrder_Success(t *testing.T) {
	router := newTestRouter(&mockRosterUseCase{
		CreateOrderFunc: func(ctx context.Context, externalID, message, createdBy, updatedBy string) (*domain.OrderRecord, error) {
			assert.Equal(t, "ext-1", externalID)
			assert.Equal(t, "follow-up in 2 weeks", message)
			assert.Equal(t, "nurse-lin", createdBy)
			return &domain.OrderRecord{InternalID: "o9", Message: message, UpdatedAt: time.Now()}, nil
		},
	})

	body := `{"patientExternalId":"ext-1","message":"follow-up in 2 weeks","createdByUser":"nurse-lin","updatedByUser":"nurse-lin"}`
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/orders", strings.NewReader(body)))

	assert.Equal(t, http.StatusCreated, rec.Code)

	var resp dto.CreateOrderResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotNil(t, resp.Data)
	assert.Equal(t, "o9", resp.Data.InternalID)
}

func TestHandleCreateOrder_WhitespaceMessageRejected(t *testing.T) {
	router := newTestRouter(&mockRosterUseCase{
		CreateOrderFunc: func(ctx context.Context, externalID, message, createdBy, updatedBy string) (*domain.OrderRecord, error) {
			t.Fatal("use case must not be called for whitespace-only message")
			return nil, nil
		},
	})

	body := `{"patientExternalId":"ext-1","message":"   "}`
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/orders", strings.NewReader(body)))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "VALIDATION_ERROR")
}

func TestHandleCreateOrder_InvalidJSON(t *testing.T) {
	router := newTestRouter(&mockRosterUseCase{})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/orders", strings.NewReader("{not json")))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleUpdateOrder_Success(t *testing.T) {
	router := newTestRouter(&mockRosterUseCase{
		UpdateOrderFunc: func(ctx context.Context, orderID, message, updatedBy string) error {
			assert.Equal(t, "o1", orderID)
			assert.Equal(t, "take ibuprofen", message)
			return nil
		},
	})

	body := `{"message":"take ibuprofen","updatedByUser":"nurse-lin"}`
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPatch, "/orders/o1", strings.NewReader(body)))

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp dto.UpdateOrderResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
}

func TestHandleUpdateOrder_NotFound(t *testing.T) {
	router := newTestRouter(&mockRosterUseCase{
		UpdateOrderFunc: func(ctx context.Context, orderID, message, updatedBy string) error {
			return apperrors.NewNotFoundError("order not found")
		},
	})

	body := `{"message":"anything"}`
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPatch, "/orders/missing", strings.NewReader(body)))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
