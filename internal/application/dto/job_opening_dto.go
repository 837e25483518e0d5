package dto

import "time"

// CreateJobOpeningRequest entrada para publicar una vacante.
type CreateJobOpeningRequest struct {
	CompanyID           int64  `json:"company_id" validate:"required,gt=0"`
	InterviewTemplateID *int64 `json:"interview_template_id" validate:"omitempty,gt=0"`
	Title               string `json:"title" validate:"required,min=1,max=200"`
	Description         string `json:"description" validate:"required"`
	Requirements        string `json:"requirements" validate:"required"`
	Location            string `json:"location" validate:"required,max=200"`
	SalaryRange         string `json:"salary_range" validate:"max=100"`
	JobType             string `json:"job_type" validate:"required,job_type"`
	ExperienceLevel     string `json:"experience_level" validate:"required,max=100"`
	Status              string `json:"status" validate:"omitempty,job_status"`
}

// UpdateJobOpeningRequest entrada para actualizar una vacante (campos opcionales).
type UpdateJobOpeningRequest struct {
	InterviewTemplateID *int64  `json:"interview_template_id" validate:"omitempty,gt=0"`
	Title               *string `json:"title" validate:"omitempty,min=1,max=200"`
	Description         *string `json:"description"`
	Requirements        *string `json:"requirements"`
	Location            *string `json:"location" validate:"omitempty,max=200"`
	SalaryRange         *string `json:"salary_range" validate:"omitempty,max=100"`
	JobType             *string `json:"job_type" validate:"omitempty,job_type"`
	ExperienceLevel     *string `json:"experience_level" validate:"omitempty,max=100"`
	Status              *string `json:"status" validate:"omitempty,job_status"`
}

// JobOpeningResponse salida de una vacante.
type JobOpeningResponse struct {
	ID                  int64     `json:"id"`
	CompanyID           int64     `json:"company_id"`
	InterviewTemplateID *int64    `json:"interview_template_id"`
	Title               string    `json:"title"`
	Description         string    `json:"description"`
	Requirements        string    `json:"requirements"`
	Location            string    `json:"location"`
	SalaryRange         string    `json:"salary_range,omitempty"`
	JobType             string    `json:"job_type"`
	ExperienceLevel     string    `json:"experience_level"`
	Status              string    `json:"status"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`
}

// JobOpeningListResponse lista paginada de vacantes.
type JobOpeningListResponse struct {
	Items []JobOpeningResponse `json:"items"`
	Page  PageResponse         `json:"page"`
}
