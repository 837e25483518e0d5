package report

import (
	"context"
	"sort"

	"github.com/rs/zerolog"

	"github.com/jhoicas/recruitment-api/internal/application/ports"
	"github.com/jhoicas/recruitment-api/internal/domain"
	"github.com/jhoicas/recruitment-api/internal/domain/entity"
	"github.com/jhoicas/recruitment-api/internal/domain/policy"
	"github.com/jhoicas/recruitment-api/internal/domain/repository"
)

// exportBatch tamaño de página al recorrer todas las postulaciones para exportar.
const exportBatch = repository.MaxLimit

// ReportUseCase exportaciones: hoja de cálculo de postulaciones e informe PDF de procesos.
type ReportUseCase struct {
	tx    ports.TxRunner
	sheet ports.SpreadsheetExporter
	pdf   ports.ProcessReportGenerator
	log   zerolog.Logger
}

// NewReportUseCase construye el caso de uso con los generadores de documentos.
func NewReportUseCase(tx ports.TxRunner, sheet ports.SpreadsheetExporter, pdf ports.ProcessReportGenerator, log zerolog.Logger) *ReportUseCase {
	return &ReportUseCase{tx: tx, sheet: sheet, pdf: pdf, log: log}
}

// ExportApplications genera el xlsx con todas las postulaciones que cumplen el filtro.
func (uc *ReportUseCase) ExportApplications(ctx context.Context, actor *entity.User, filter repository.ApplicationFilter) ([]byte, error) {
	if err := authorize(actor, policy.Export, policy.Application); err != nil {
		return nil, err
	}
	var rows []*entity.ApplicationDetail
	err := uc.tx.Run(ctx, func(repos repository.Repositories) error {
		for skip := 0; ; skip += exportBatch {
			batch, err := repos.Applications.ListDetailed(ctx, filter, repository.Page{Skip: skip, Limit: exportBatch})
			if err != nil {
				return err
			}
			rows = append(rows, batch...)
			if len(batch) < exportBatch {
				return nil
			}
		}
	})
	if err != nil {
		return nil, err
	}
	out, err := uc.sheet.ExportApplications(ctx, rows)
	if err != nil {
		uc.log.Error().Err(err).Msg("exportar postulaciones")
		return nil, err
	}
	uc.log.Info().Int("rows", len(rows)).Int64("actor_id", actor.ID).Msg("postulaciones exportadas")
	return out, nil
}

// ProcessReport genera el PDF de un proceso con candidato, vacante y tabla de etapas.
func (uc *ReportUseCase) ProcessReport(ctx context.Context, actor *entity.User, processID int64) ([]byte, error) {
	if err := authorize(actor, policy.Read, policy.InterviewProcess); err != nil {
		return nil, err
	}
	var rep ports.ProcessReport
	err := uc.tx.Run(ctx, func(repos repository.Repositories) error {
		process, err := repos.InterviewProcesses.GetByID(ctx, processID)
		if err != nil {
			return err
		}
		if process == nil {
			return domain.NotFound("Interview process")
		}
		rep.Process = *process

		app, err := repos.Applications.GetDetail(ctx, process.ApplicationID)
		if err != nil {
			return err
		}
		if app != nil {
			rep.CandidateName = app.CandidateName
			rep.CandidateMail = app.CandidateEmail
			rep.JobTitle = app.JobTitle
			rep.CompanyName = app.CompanyName
		}

		names := map[int64]string{}
		tpl, err := repos.InterviewTemplates.GetByID(ctx, process.TemplateID)
		if err != nil {
			return err
		}
		if tpl != nil {
			rep.TemplateName = tpl.Name
			for _, ts := range tpl.Steps {
				names[ts.ID] = ts.Name
			}
		}

		steps, err := repos.InterviewProcesses.ListSteps(ctx, processID)
		if err != nil {
			return err
		}
		sort.SliceStable(steps, func(i, j int) bool { return steps[i].Order < steps[j].Order })
		for _, s := range steps {
			rep.Steps = append(rep.Steps, ports.ProcessReportStep{InterviewStep: s, Name: names[s.TemplateStepID]})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	out, err := uc.pdf.GenerateProcessReport(ctx, rep)
	if err != nil {
		uc.log.Error().Err(err).Int64("process_id", processID).Msg("generar informe de proceso")
		return nil, err
	}
	return out, nil
}

func authorize(actor *entity.User, action policy.Action, resource policy.Resource) error {
	if actor == nil {
		return domain.ErrUnauthenticated
	}
	return policy.Authorize(actor.Role, action, resource)
}
