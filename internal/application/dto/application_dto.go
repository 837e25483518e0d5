package dto

import "time"

// CreateApplicationRequest entrada para postular un candidato a una vacante.
type CreateApplicationRequest struct {
	CandidateID       int64  `json:"candidate_id" validate:"required,gt=0"`
	JobOpeningID      int64  `json:"job_opening_id" validate:"required,gt=0"`
	ResumeVersion     string `json:"resume_version" validate:"max=100"`
	CoverLetter       string `json:"cover_letter"`
	Notes             string `json:"notes"`
	SalaryExpectation string `json:"salary_expectation" validate:"max=100"`
}

// UpdateApplicationStatusRequest cambio de etapa con feedback y notas opcionales.
type UpdateApplicationStatusRequest struct {
	Status            string  `json:"status" validate:"required,application_status"`
	InterviewFeedback *string `json:"interview_feedback"`
	Notes             *string `json:"notes"`
}

// UpdateApplicationRequest actualización parcial de una postulación.
type UpdateApplicationRequest struct {
	Status            *string `json:"status" validate:"omitempty,application_status"`
	ResumeVersion     *string `json:"resume_version" validate:"omitempty,max=100"`
	CoverLetter       *string `json:"cover_letter"`
	Notes             *string `json:"notes"`
	InterviewFeedback *string `json:"interview_feedback"`
	SalaryExpectation *string `json:"salary_expectation" validate:"omitempty,max=100"`
}

// ApplicationResponse salida de una postulación. Los campos de candidato/vacante
// solo se rellenan en las consultas individuales.
type ApplicationResponse struct {
	ID                int64     `json:"id"`
	CandidateID       int64     `json:"candidate_id"`
	JobOpeningID      int64     `json:"job_opening_id"`
	Status            string    `json:"status"`
	AppliedDate       time.Time `json:"applied_date"`
	ResumeVersion     string    `json:"resume_version,omitempty"`
	CoverLetter       string    `json:"cover_letter,omitempty"`
	Notes             string    `json:"notes,omitempty"`
	InterviewFeedback string    `json:"interview_feedback,omitempty"`
	SalaryExpectation string    `json:"salary_expectation,omitempty"`
	UpdatedAt         time.Time `json:"updated_at"`
	CandidateName     string    `json:"candidate_name,omitempty"`
	CandidateEmail    string    `json:"candidate_email,omitempty"`
	JobTitle          string    `json:"job_title,omitempty"`
	CompanyName       string    `json:"company_name,omitempty"`
}

// ApplicationListResponse lista paginada de postulaciones.
type ApplicationListResponse struct {
	Items []ApplicationResponse `json:"items"`
	Page  PageResponse          `json:"page"`
}
