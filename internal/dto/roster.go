package dto

import "time"

type PatientDTO struct {
	InternalID    string    `json:"_id"`
	ExternalID    string    `json:"id"`
	Name          string    `json:"name"`
	CreatedByUser string    `json:"createdByUser"`
	CreatedAt     time.Time `json:"createdAt"`
}

type OrderDTO struct {
	InternalID string    `json:"_id"`
	Message    string    `json:"message"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

type ListPatientsResponse struct {
	Data []PatientDTO `json:"data"`
}

type PatientOrdersData struct {
	Orders []OrderDTO `json:"orders"`
}

type GetPatientOrdersResponse struct {
	Data PatientOrdersData `json:"data"`
}

type CreateOrderRequest struct {
	PatientExternalID string    `json:"patientExternalId"`
	Message           string    `json:"message"`
	CreatedByUser     string    `json:"createdByUser"`
	UpdatedByUser     string    `json:"updatedByUser"`
	CreatedAt         time.Time `json:"createdAt"`
	UpdatedAt         time.Time `json:"updatedAt"`
}

type CreateOrderResponse struct {
	Data *OrderDTO `json:"data"`
}

type UpdateOrderRequest struct {
	Message       string    `json:"message"`
	UpdatedByUser string    `json:"updatedByUser"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

type UpdateOrderResponse struct {
	Success bool `json:"success"`
}
