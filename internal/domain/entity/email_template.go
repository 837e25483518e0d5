package entity

// Tipos de plantilla que dispara el flujo de entrevistas.
const (
	EmailTypeProcessStarted   = "interview_process_started"
	EmailTypeInterviewSched   = "interview_scheduled"
	EmailTypeInterviewSuccess = "interview_success"
	EmailTypeInterviewFailure = "interview_failure"
)

// EmailTemplate asunto y cuerpo HTML con sintaxis de plantillas tipo Jinja.
type EmailTemplate struct {
	ID              int64
	Name            string
	Description     string
	Type            string
	SubjectTemplate string
	HTMLContent     string
	IsActive        bool
	Audit
}
