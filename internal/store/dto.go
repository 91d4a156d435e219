package store

import (
	"time"

	"wardsync/internal/domain"
)

type patientDTO struct {
	InternalID    string    `json:"_id" validate:"required"`
	ExternalID    string    `json:"id" validate:"required"`
	Name          string    `json:"name" validate:"required"`
	CreatedByUser string    `json:"createdByUser"`
	CreatedAt     time.Time `json:"createdAt"`
}

func (p patientDTO) toDomain() domain.Patient {
	return domain.Patient{
		InternalID:    p.InternalID,
		ExternalID:    p.ExternalID,
		Name:          p.Name,
		CreatedByUser: p.CreatedByUser,
		CreatedAt:     p.CreatedAt,
	}
}

type orderDTO struct {
	InternalID string    `json:"_id" validate:"required"`
	Message    string    `json:"message"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

func (o orderDTO) toDomain() domain.Order {
	return domain.Order{
		InternalID: o.InternalID,
		Message:    o.Message,
		UpdatedAt:  o.UpdatedAt,
	}
}

type listPatientsResponse struct {
	Data []patientDTO `json:"data"`
}

type patientOrdersData struct {
	Orders []orderDTO `json:"orders"`
}

type patientDetailResponse struct {
	Data *patientOrdersData `json:"data"`
}

type createOrderRequest struct {
	PatientExternalID string    `json:"patientExternalId"`
	Message           string    `json:"message"`
	CreatedByUser     string    `json:"createdByUser"`
	UpdatedByUser     string    `json:"updatedByUser"`
	CreatedAt         time.Time `json:"createdAt"`
	UpdatedAt         time.Time `json:"updatedAt"`
}

// createOrderResponse tolerates the legacy "success with null data" shape:
// Data stays nil and the caller falls back to the locally-known message.
type createOrderResponse struct {
	Data *orderDTO `json:"data"`
}

type updateOrderRequest struct {
	Message       string    `json:"message"`
	UpdatedByUser string    `json:"updatedByUser"`
	UpdatedAt     time.Time `json:"updatedAt"`
}
