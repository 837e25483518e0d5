package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// StepType tipo de etapa de entrevista.
type StepType string

const (
	StepTypeScreening  StepType = "screening"
	StepTypeTechnical  StepType = "technical"
	StepTypeBehavioral StepType = "behavioral"
	StepTypeCultureFit StepType = "culture_fit"
	StepTypeFinal      StepType = "final"
)

func (t StepType) IsValid() bool {
	switch t {
	case StepTypeScreening, StepTypeTechnical, StepTypeBehavioral, StepTypeCultureFit, StepTypeFinal:
		return true
	}
	return false
}

// StepStatus estado de una etapa (y del proceso que la contiene).
type StepStatus string

const (
	StepStatusPending   StepStatus = "pending"
	StepStatusScheduled StepStatus = "scheduled"
	StepStatusCompleted StepStatus = "completed"
	StepStatusCancelled StepStatus = "cancelled"
	StepStatusFailed    StepStatus = "failed"
	StepStatusPassed    StepStatus = "passed"
)

func (s StepStatus) IsValid() bool {
	switch s {
	case StepStatusPending, StepStatusScheduled, StepStatusCompleted,
		StepStatusCancelled, StepStatusFailed, StepStatusPassed:
		return true
	}
	return false
}

// IsResult indica si el estado es un veredicto (passed / failed).
func (s StepStatus) IsResult() bool {
	return s == StepStatusPassed || s == StepStatusFailed
}

// InterviewTemplate plantilla reutilizable de proceso de selección.
type InterviewTemplate struct {
	ID          int64
	Name        string
	Description string
	IsActive    bool
	Steps       []InterviewTemplateStep // ordenadas por Order
	Audit
}

// InterviewTemplateStep etapa de una plantilla. Order empieza en 1.
type InterviewTemplateStep struct {
	ID                   int64
	TemplateID           int64
	Name                 string
	Description          string
	StepType             StepType
	Order                int
	DurationMinutes      int
	RequiredParticipants []string
	EvaluationCriteria   []string
	PassingScore         *decimal.Decimal
	Audit
}

// InterviewProcess instancia de una plantilla para una postulación (una por postulación).
type InterviewProcess struct {
	ID            int64
	ApplicationID int64
	TemplateID    int64
	CurrentStep   int
	Status        StepStatus
	Audit
}

// InterviewStep etapa concreta de un proceso, copia ordenada de una etapa de plantilla.
type InterviewStep struct {
	ID             int64
	ProcessID      int64
	TemplateStepID int64
	Order          int
	Status         StepStatus
	ScheduledAt    *time.Time
	CompletedAt    *time.Time
	InterviewerID  *int64
	Location       string
	MeetingLink    string
	Score          *decimal.Decimal
	Feedback       string
	Audit
}

// ProcessDetail proceso con sus etapas ordenadas.
type ProcessDetail struct {
	Process InterviewProcess
	Steps   []InterviewStep
}

// StepContext datos relacionados de una etapa que necesitan las notificaciones y reportes.
// Se arma con un join explícito (etapa → plantilla → proceso → postulación → candidato/vacante/empresa).
type StepContext struct {
	StepName          string
	DurationMinutes   int
	TemplateStepOrder int
	TemplateStepCount int
	ApplicationID     int64
	CandidateFirst    string
	CandidateLast     string
	CandidateEmail    string
	JobTitle          string
	CompanyName       string
}
