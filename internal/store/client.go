package store

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"wardsync/internal/domain"
	apperrors "wardsync/internal/errors"
)

// Client talks to the remote order store over HTTP. Every response envelope
// is decoded and schema-validated at this boundary; malformed shapes surface
// as DecodeError rather than leaking into the sync core.
type Client struct {
	baseURL    string
	httpClient *http.Client
	validate   *validator.Validate
	logger     *zap.Logger
}

func NewClient(baseURL string, timeout time.Duration, logger *zap.Logger) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		validate:   validator.New(),
		logger:     logger,
	}
}

func (c *Client) ListPatients(ctx context.Context) ([]domain.Patient, error) {
	body, err := c.do(ctx, http.MethodGet, "/patients", nil)
	if err != nil {
		return nil, err
	}

	var resp listPatientsResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, apperrors.NewDecodeError("decoding patient list", err)
	}
	if resp.Data == nil {
		return nil, apperrors.NewDecodeError("patient list response missing data", nil)
	}

	patients := make([]domain.Patient, 0, len(resp.Data))
	for _, dto := range resp.Data {
		if err := c.validate.Struct(dto); err != nil {
			return nil, apperrors.NewDecodeError("invalid patient in response", err)
		}
		patients = append(patients, dto.toDomain())
	}

	return patients, nil
}

func (c *Client) GetPatientOrders(ctx context.Context, patientInternalID string) ([]domain.Order, error) {
	body, err := c.do(ctx, http.MethodGet, "/patients/"+patientInternalID, nil)
	if err != nil {
		return nil, err
	}

	var resp patientDetailResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, apperrors.NewDecodeError("decoding patient orders", err)
	}
	if resp.Data == nil || resp.Data.Orders == nil {
		return nil, apperrors.NewDecodeError("patient orders response missing data.orders", nil)
	}

	orders := make([]domain.Order, 0, len(resp.Data.Orders))
	for _, dto := range resp.Data.Orders {
		if err := c.validate.Struct(dto); err != nil {
			return nil, apperrors.NewDecodeError("invalid order in response", err)
		}
		orders = append(orders, dto.toDomain())
	}

	return orders, nil
}

// CreateOrder returns (nil, nil) when the store answers with the legacy
// "success with null data" shape; the caller falls back to the locally-known
// message and expects an internalId on a subsequent read.
func (c *Client) CreateOrder(ctx context.Context, patientExternalID, message string, audit domain.AuditContext) (*domain.Order, error) {
	now := time.Now().UTC()
	req := createOrderRequest{
		PatientExternalID: patientExternalID,
		Message:           message,
		CreatedByUser:     audit.Actor,
		UpdatedByUser:     audit.Actor,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	body, err := c.do(ctx, http.MethodPost, "/orders", req)
	if err != nil {
		return nil, err
	}

	var resp createOrderResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, apperrors.NewDecodeError("decoding create order response", err)
	}
	if resp.Data == nil {
		return nil, nil
	}
	if err := c.validate.Struct(*resp.Data); err != nil {
		return nil, apperrors.NewDecodeError("invalid order in create response", err)
	}

	order := resp.Data.toDomain()
	return &order, nil
}

func (c *Client) UpdateOrder(ctx context.Context, orderInternalID, message string, audit domain.AuditContext) error {
	req := updateOrderRequest{
		Message:       message,
		UpdatedByUser: audit.Actor,
		UpdatedAt:     time.Now().UTC(),
	}

	_, err := c.do(ctx, http.MethodPatch, "/orders/"+orderInternalID, req)
	return err
}

func (c *Client) do(ctx context.Context, method, path string, payload interface{}) ([]byte, error) {
	requestID := uuid.New().String()
	logger := c.logger.With(
		zap.String("requestId", requestID),
		zap.String("method", method),
		zap.String("path", path),
	)

	var reqBody io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, apperrors.NewInternalError("marshaling request body", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return nil, apperrors.NewInternalError("creating HTTP request", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-Id", requestID)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		logger.Warn("store request failed", zap.Error(err))
		return nil, apperrors.NewUnreachableError("sending store request", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		logger.Warn("reading store response failed", zap.Error(err))
		return nil, apperrors.NewUnreachableError("reading store response", err)
	}

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("%s %s: not found", method, path))
	case resp.StatusCode >= http.StatusBadRequest:
		logger.Warn("store returned error status", zap.Int("status", resp.StatusCode))
		return nil, apperrors.NewUnreachableError(fmt.Sprintf("store returned status %d", resp.StatusCode), nil)
	}

	logger.Debug("store request completed", zap.Int("status", resp.StatusCode))
	return body, nil
}
