package dto

import "time"

// CreateCompanyRequest entrada para crear una empresa.
type CreateCompanyRequest struct {
	Name        string `json:"name" validate:"required,min=1,max=200"`
	Industry    string `json:"industry" validate:"required,max=200"`
	Location    string `json:"location" validate:"required,max=200"`
	Website     string `json:"website" validate:"omitempty,url"`
	Description string `json:"description"`
}

// UpdateCompanyRequest entrada para actualizar una empresa (solo se reemplazan los campos presentes).
type UpdateCompanyRequest struct {
	Name        *string `json:"name" validate:"omitempty,min=1,max=200"`
	Industry    *string `json:"industry" validate:"omitempty,max=200"`
	Location    *string `json:"location" validate:"omitempty,max=200"`
	Website     *string `json:"website" validate:"omitempty,url"`
	Description *string `json:"description"`
	Active      *bool   `json:"active"`
}

// CompanyResponse salida de una empresa.
type CompanyResponse struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Industry    string    `json:"industry"`
	Location    string    `json:"location"`
	Website     string    `json:"website,omitempty"`
	Description string    `json:"description,omitempty"`
	Active      bool      `json:"active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	CreatedByID *int64    `json:"created_by_id,omitempty"`
	UpdatedByID *int64    `json:"updated_by_id,omitempty"`
}

// CompanyListResponse lista paginada de empresas.
type CompanyListResponse struct {
	Items []CompanyResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
