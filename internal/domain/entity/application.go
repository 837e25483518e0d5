package entity

import "time"

// ApplicationStatus etapa de una postulación:
// applied → screening → interviewing → offered → hired, o rejected / withdrawn.
type ApplicationStatus string

const (
	ApplicationStatusApplied      ApplicationStatus = "applied"
	ApplicationStatusScreening    ApplicationStatus = "screening"
	ApplicationStatusInterviewing ApplicationStatus = "interviewing"
	ApplicationStatusOffered      ApplicationStatus = "offered"
	ApplicationStatusHired        ApplicationStatus = "hired"
	ApplicationStatusRejected     ApplicationStatus = "rejected"
	ApplicationStatusWithdrawn    ApplicationStatus = "withdrawn"
)

func (s ApplicationStatus) IsValid() bool {
	switch s {
	case ApplicationStatusApplied, ApplicationStatusScreening, ApplicationStatusInterviewing,
		ApplicationStatusOffered, ApplicationStatusHired, ApplicationStatusRejected, ApplicationStatusWithdrawn:
		return true
	}
	return false
}

// Application postulación de un candidato a una vacante; única por (candidato, vacante).
type Application struct {
	ID                int64
	CandidateID       int64
	JobOpeningID      int64
	Status            ApplicationStatus
	AppliedDate       time.Time
	ResumeVersion     string
	CoverLetter       string
	Notes             string
	InterviewFeedback string
	SalaryExpectation string
	Audit
}

// ApplicationDetail vista con los datos relacionados, obtenida con un join explícito.
type ApplicationDetail struct {
	Application
	CandidateName  string
	CandidateEmail string
	JobTitle       string
	CompanyID      int64
	CompanyName    string
}
