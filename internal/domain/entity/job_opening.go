package entity

// JobStatus estado de publicación de una vacante.
type JobStatus string

const (
	JobStatusOpen   JobStatus = "open"
	JobStatusClosed JobStatus = "closed"
	JobStatusOnHold JobStatus = "on_hold"
)

func (s JobStatus) IsValid() bool {
	switch s {
	case JobStatusOpen, JobStatusClosed, JobStatusOnHold:
		return true
	}
	return false
}

// JobType modalidad de contratación.
type JobType string

const (
	JobTypeFullTime JobType = "full-time"
	JobTypePartTime JobType = "part-time"
	JobTypeContract JobType = "contract"
)

func (t JobType) IsValid() bool {
	switch t {
	case JobTypeFullTime, JobTypePartTime, JobTypeContract:
		return true
	}
	return false
}

// JobOpening vacante de una empresa. InterviewTemplateID es opcional; sin plantilla
// no se puede iniciar un proceso de entrevistas.
type JobOpening struct {
	ID                  int64
	CompanyID           int64
	InterviewTemplateID *int64
	Title               string
	Description         string
	Requirements        string
	Location            string
	SalaryRange         string
	JobType             JobType
	ExperienceLevel     string
	Status              JobStatus
	Audit
}

// AcceptsApplications indica si la vacante admite nuevas postulaciones.
func (j *JobOpening) AcceptsApplications() bool {
	return j.Status == JobStatusOpen
}
