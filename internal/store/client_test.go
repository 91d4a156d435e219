package store

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"wardsync/internal/domain"
	apperrors "wardsync/internal/errors"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewClient(server.URL, 5*time.Second, zap.NewNop())
}

func TestListPatients_Success(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/patients", r.URL.Path)
		assert.NotEmpty(t, r.Header.Get("X-Request-Id"))

		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"data":[{"_id":"p1","id":"ext-1","name":"Ann Chen","createdByUser":"admin","createdAt":"2026-08-01T08:00:00Z"}]}`)
	})

	patients, err := client.ListPatients(context.Background())
	require.NoError(t, err)
	require.Len(t, patients, 1)
	assert.Equal(t, "p1", patients[0].InternalID)
	assert.Equal(t, "ext-1", patients[0].ExternalID)
	assert.Equal(t, "Ann Chen", patients[0].Name)
	assert.Equal(t, "admin", patients[0].CreatedByUser)
}

func TestListPatients_MissingData(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"items":[]}`)
	})

	_, err := client.ListPatients(context.Background())
	require.Error(t, err)
	_, ok := apperrors.IsDecodeError(err)
	assert.True(t, ok)
}

func TestListPatients_InvalidPatientShape(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"data":[{"name":"No Ids"}]}`)
	})

	_, err := client.ListPatients(context.Background())
	require.Error(t, err)
	_, ok := apperrors.IsDecodeError(err)
	assert.True(t, ok)
}

func TestGetPatientOrders_Success(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/patients/p1", r.URL.Path)
		io.WriteString(w, `{"data":{"orders":[{"_id":"o1","message":"take aspirin","updatedAt":"2026-08-02T09:30:00Z"}]}}`)
	})

	orders, err := client.GetPatientOrders(context.Background(), "p1")
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, "o1", orders[0].InternalID)
	assert.Equal(t, "take aspirin", orders[0].Message)
}

func TestGetPatientOrders_NotFound(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	_, err := client.GetPatientOrders(context.Background(), "missing")
	require.Error(t, err)
	_, ok := apperrors.IsNotFoundError(err)
	assert.True(t, ok)
}

func TestGetPatientOrders_Unreachable(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	server.Close()
	client := NewClient(server.URL, time.Second, zap.NewNop())

	_, err := client.GetPatientOrders(context.Background(), "p1")
	require.Error(t, err)
	_, ok := apperrors.IsUnreachableError(err)
	assert.True(t, ok)
}

func TestGetPatientOrders_MissingOrders(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"data":{}}`)
	})

	_, err := client.GetPatientOrders(context.Background(), "p1")
	require.Error(t, err)
	_, ok := apperrors.IsDecodeError(err)
	assert.True(t, ok)
}

func TestCreateOrder_Success(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/orders", r.URL.Path)

		var body map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "ext-1", body["patientExternalId"])
		assert.Equal(t, "follow-up in 2 weeks", body["message"])
		assert.Equal(t, "nurse-lin", body["createdByUser"])
		assert.Equal(t, "nurse-lin", body["updatedByUser"])

		io.WriteString(w, `{"data":{"_id":"o9","message":"follow-up in 2 weeks","updatedAt":"2026-08-02T10:00:00Z"}}`)
	})

	order, err := client.CreateOrder(context.Background(), "ext-1", "follow-up in 2 weeks", domain.AuditContext{Actor: "nurse-lin"})
	require.NoError(t, err)
	require.NotNil(t, order)
	assert.Equal(t, "o9", order.InternalID)
	assert.Equal(t, "follow-up in 2 weeks", order.Message)
}

func TestCreateOrder_NullData(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"success":true,"data":null}`)
	})

	order, err := client.CreateOrder(context.Background(), "ext-1", "follow-up in 2 weeks", domain.AuditContext{Actor: "nurse-lin"})
	require.NoError(t, err)
	assert.Nil(t, order)
}

func TestUpdateOrder_Success(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPatch, r.Method)
		assert.Equal(t, "/orders/o1", r.URL.Path)

		var body map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "take ibuprofen", body["message"])
		assert.Equal(t, "nurse-lin", body["updatedByUser"])

		io.WriteString(w, `{"success":true}`)
	})

	err := client.UpdateOrder(context.Background(), "o1", "take ibuprofen", domain.AuditContext{Actor: "nurse-lin"})
	assert.NoError(t, err)
}

func TestUpdateOrder_NotFound(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	err := client.UpdateOrder(context.Background(), "missing", "text", domain.AuditContext{Actor: "nurse-lin"})
	require.Error(t, err)
	_, ok := apperrors.IsNotFoundError(err)
	assert.True(t, ok)
}
