package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/recruitment-api/internal/application/report"
)

const (
	mimeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	mimePDF  = "application/pdf"
)

// ReportHandler descargas: Excel de postulaciones y PDF de un proceso.
type ReportHandler struct {
	uc *report.ReportUseCase
}

func NewReportHandler(uc *report.ReportUseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

// ExportApplications godoc
// @Summary      Exportar postulaciones a Excel
// @Tags         applications
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security     BearerAuth
// @Param        candidate_id    query  int     false  "Filtrar por candidato"
// @Param        job_opening_id  query  int     false  "Filtrar por vacante"
// @Param        status          query  string  false  "Estado"
// @Success      200  {file}    file
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /v1/applications/export [get]
func (h *ReportHandler) ExportApplications(c *fiber.Ctx) error {
	filter, err := applicationFilter(c)
	if err != nil {
		return err
	}
	data, err := h.uc.ExportApplications(c.UserContext(), GetUser(c), filter)
	if err != nil {
		return err
	}
	c.Attachment("applications.xlsx")
	c.Set(fiber.HeaderContentType, mimeXLSX)
	return c.Send(data)
}

// ProcessReport godoc
// @Summary      Reporte PDF de un proceso de entrevistas
// @Tags         interviews
// @Produce      application/pdf
// @Security     BearerAuth
// @Param        id   path  int  true  "ID del proceso"
// @Success      200  {file}    file
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /v1/interviews/processes/{id}/report [get]
func (h *ReportHandler) ProcessReport(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	data, err := h.uc.ProcessReport(c.UserContext(), GetUser(c), id)
	if err != nil {
		return err
	}
	c.Attachment(fmt.Sprintf("interview-process-%d.pdf", id))
	c.Set(fiber.HeaderContentType, mimePDF)
	return c.Send(data)
}
