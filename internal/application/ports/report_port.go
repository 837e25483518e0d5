package ports

import (
	"context"

	"github.com/jhoicas/recruitment-api/internal/domain/entity"
)

// ProcessReport datos del informe PDF de un proceso de entrevistas.
type ProcessReport struct {
	Process       entity.InterviewProcess
	Steps         []ProcessReportStep
	CandidateName string
	CandidateMail string
	JobTitle      string
	CompanyName   string
	TemplateName  string
}

// ProcessReportStep fila de la tabla de etapas del informe.
type ProcessReportStep struct {
	entity.InterviewStep
	Name string
}

// SpreadsheetExporter genera la hoja de cálculo de postulaciones.
type SpreadsheetExporter interface {
	ExportApplications(ctx context.Context, rows []*entity.ApplicationDetail) ([]byte, error)
}

// ProcessReportGenerator genera el PDF de un proceso de entrevistas.
type ProcessReportGenerator interface {
	GenerateProcessReport(ctx context.Context, report ProcessReport) ([]byte, error)
}
