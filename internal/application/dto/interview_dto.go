package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// TemplateStepRequest etapa de una plantilla nueva.
type TemplateStepRequest struct {
	Name                 string           `json:"name" validate:"required,max=200"`
	Description          string           `json:"description"`
	StepType             string           `json:"step_type" validate:"required,step_type"`
	Order                int              `json:"order" validate:"required,min=1"`
	DurationMinutes      int              `json:"duration_minutes" validate:"required,min=1,max=1440"`
	RequiredParticipants []string         `json:"required_participants"`
	EvaluationCriteria   []string         `json:"evaluation_criteria"`
	PassingScore         *decimal.Decimal `json:"passing_score"`
}

// CreateInterviewTemplateRequest plantilla con sus etapas.
type CreateInterviewTemplateRequest struct {
	Name        string                `json:"name" validate:"required,max=200"`
	Description string                `json:"description"`
	IsActive    *bool                 `json:"is_active"`
	Steps       []TemplateStepRequest `json:"steps" validate:"required,min=1,dive"`
}

// UpdateInterviewTemplateRequest cambios de cabecera (las etapas son inmutables).
type UpdateInterviewTemplateRequest struct {
	Name        *string `json:"name" validate:"omitempty,max=200"`
	Description *string `json:"description"`
	IsActive    *bool   `json:"is_active"`
}

// InterviewTemplateStepResponse salida de una etapa de plantilla.
type InterviewTemplateStepResponse struct {
	ID                   int64            `json:"id"`
	Name                 string           `json:"name"`
	Description          string           `json:"description,omitempty"`
	StepType             string           `json:"step_type"`
	Order                int              `json:"order"`
	DurationMinutes      int              `json:"duration_minutes"`
	RequiredParticipants []string         `json:"required_participants"`
	EvaluationCriteria   []string         `json:"evaluation_criteria"`
	PassingScore         *decimal.Decimal `json:"passing_score"`
}

// InterviewTemplateResponse salida de una plantilla.
type InterviewTemplateResponse struct {
	ID          int64                           `json:"id"`
	Name        string                          `json:"name"`
	Description string                          `json:"description,omitempty"`
	IsActive    bool                            `json:"is_active"`
	Steps       []InterviewTemplateStepResponse `json:"steps"`
	CreatedAt   time.Time                       `json:"created_at"`
	UpdatedAt   time.Time                       `json:"updated_at"`
}

// UpdateInterviewStepRequest actualización parcial: solo se aplican los campos presentes.
type UpdateInterviewStepRequest struct {
	Status        *string          `json:"status" validate:"omitempty,step_status"`
	ScheduledAt   *time.Time       `json:"scheduled_at"`
	InterviewerID *int64           `json:"interviewer_id" validate:"omitempty,gt=0"`
	Location      *string          `json:"location" validate:"omitempty,max=200"`
	MeetingLink   *string          `json:"meeting_link" validate:"omitempty,url"`
	Score         *decimal.Decimal `json:"score"`
	Feedback      *string          `json:"feedback"`
}

// InterviewStepResponse salida de una etapa de proceso.
type InterviewStepResponse struct {
	ID             int64            `json:"id"`
	ProcessID      int64            `json:"process_id"`
	TemplateStepID int64            `json:"template_step_id"`
	Order          int              `json:"order"`
	Status         string           `json:"status"`
	ScheduledAt    *time.Time       `json:"scheduled_at"`
	CompletedAt    *time.Time       `json:"completed_at"`
	InterviewerID  *int64           `json:"interviewer_id"`
	Location       string           `json:"location,omitempty"`
	MeetingLink    string           `json:"meeting_link,omitempty"`
	Score          *decimal.Decimal `json:"score"`
	Feedback       string           `json:"feedback,omitempty"`
	UpdatedAt      time.Time        `json:"updated_at"`
}

// InterviewProcessResponse proceso con sus etapas ordenadas.
type InterviewProcessResponse struct {
	ID            int64                   `json:"id"`
	ApplicationID int64                   `json:"application_id"`
	TemplateID    int64                   `json:"template_id"`
	CurrentStep   int                     `json:"current_step"`
	Status        string                  `json:"status"`
	Steps         []InterviewStepResponse `json:"steps"`
	CreatedAt     time.Time               `json:"created_at"`
	UpdatedAt     time.Time               `json:"updated_at"`
}
