package dto

import "time"

// CreateCandidateRequest entrada para registrar un candidato.
// Password es opcional: si falta se genera una contraseña aleatoria para la cuenta.
type CreateCandidateRequest struct {
	FirstName       string     `json:"first_name" validate:"required,max=100"`
	LastName        string     `json:"last_name" validate:"required,max=100"`
	Email           string     `json:"email" validate:"required,email"`
	Phone           string     `json:"phone" validate:"max=50"`
	ResumeURL       string     `json:"resume_url" validate:"omitempty,url"`
	LinkedinURL     string     `json:"linkedin_url" validate:"omitempty,url"`
	Skills          string     `json:"skills" validate:"required"`
	ExperienceYears int        `json:"experience_years" validate:"min=0,max=80"`
	CurrentCompany  string     `json:"current_company"`
	CurrentPosition string     `json:"current_position"`
	Education       string     `json:"education" validate:"required"`
	AvailableFrom   *time.Time `json:"available_from"`
	Notes           string     `json:"notes"`
	Password        string     `json:"password,omitempty" validate:"omitempty,min=8,max=72"`
}

// UpdateCandidateRequest entrada para actualizar un candidato (campos opcionales).
type UpdateCandidateRequest struct {
	FirstName       *string    `json:"first_name" validate:"omitempty,max=100"`
	LastName        *string    `json:"last_name" validate:"omitempty,max=100"`
	Email           *string    `json:"email" validate:"omitempty,email"`
	Phone           *string    `json:"phone" validate:"omitempty,max=50"`
	ResumeURL       *string    `json:"resume_url" validate:"omitempty,url"`
	LinkedinURL     *string    `json:"linkedin_url" validate:"omitempty,url"`
	Skills          *string    `json:"skills"`
	ExperienceYears *int       `json:"experience_years" validate:"omitempty,min=0,max=80"`
	CurrentCompany  *string    `json:"current_company"`
	CurrentPosition *string    `json:"current_position"`
	Education       *string    `json:"education"`
	AvailableFrom   *time.Time `json:"available_from"`
	Notes           *string    `json:"notes"`
}

// CandidateResponse salida de un candidato.
type CandidateResponse struct {
	ID              int64      `json:"id"`
	UserID          int64      `json:"user_id"`
	FirstName       string     `json:"first_name"`
	LastName        string     `json:"last_name"`
	Email           string     `json:"email"`
	Phone           string     `json:"phone,omitempty"`
	ResumeURL       string     `json:"resume_url,omitempty"`
	LinkedinURL     string     `json:"linkedin_url,omitempty"`
	Skills          string     `json:"skills"`
	ExperienceYears int        `json:"experience_years"`
	CurrentCompany  string     `json:"current_company,omitempty"`
	CurrentPosition string     `json:"current_position,omitempty"`
	Education       string     `json:"education"`
	AvailableFrom   *time.Time `json:"available_from,omitempty"`
	Notes           string     `json:"notes,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

// CandidateListResponse lista paginada de candidatos.
type CandidateListResponse struct {
	Items []CandidateResponse `json:"items"`
	Page  PageResponse        `json:"page"`
}
