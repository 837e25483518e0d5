package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/recruitment-api/internal/application/dto"
	"github.com/jhoicas/recruitment-api/internal/application/interview"
)

// InterviewHandler plantillas de entrevista y procesos por postulación.
type InterviewHandler struct {
	templates *interview.TemplateUseCase
	processes *interview.ProcessUseCase
}

func NewInterviewHandler(templates *interview.TemplateUseCase, processes *interview.ProcessUseCase) *InterviewHandler {
	return &InterviewHandler{templates: templates, processes: processes}
}

// ListTemplates godoc
// @Summary      Listar plantillas activas
// @Tags         interviews
// @Produce      json
// @Param        skip   query  int  false  "Desplazamiento"  default(0)
// @Param        limit  query  int  false  "Límite"          default(100)
// @Success      200    {array}  dto.InterviewTemplateResponse
// @Router       /v1/interviews/templates [get]
func (h *InterviewHandler) ListTemplates(c *fiber.Ctx) error {
	out, err := h.templates.ListActive(c.UserContext(), pageFrom(c))
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// GetTemplate godoc
// @Summary      Obtener plantilla con sus etapas
// @Tags         interviews
// @Produce      json
// @Param        id   path  int  true  "ID de la plantilla"
// @Success      200  {object}  dto.InterviewTemplateResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /v1/interviews/templates/{id} [get]
func (h *InterviewHandler) GetTemplate(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	out, err := h.templates.GetByID(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// CreateTemplate godoc
// @Summary      Crear plantilla de entrevistas
// @Description  Las etapas deben tener órdenes únicos 1..N.
// @Tags         interviews
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.CreateInterviewTemplateRequest  true  "Plantilla"
// @Success      201   {object}  dto.InterviewTemplateResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /v1/interviews/templates [post]
func (h *InterviewHandler) CreateTemplate(c *fiber.Ctx) error {
	var in dto.CreateInterviewTemplateRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}
	out, err := h.templates.Create(c.UserContext(), GetUser(c), in)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// UpdateTemplate godoc
// @Summary      Actualizar cabecera de plantilla
// @Tags         interviews
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  int                                 true  "ID de la plantilla"
// @Param        body  body  dto.UpdateInterviewTemplateRequest  true  "Campos a cambiar"
// @Success      200   {object}  dto.InterviewTemplateResponse
// @Router       /v1/interviews/templates/{id} [put]
func (h *InterviewHandler) UpdateTemplate(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	var in dto.UpdateInterviewTemplateRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}
	out, err := h.templates.Update(c.UserContext(), GetUser(c), id, in)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// DeleteTemplate godoc
// @Summary      Eliminar plantilla sin procesos
// @Tags         interviews
// @Security     BearerAuth
// @Param        id   path  int  true  "ID de la plantilla"
// @Success      200  {object}  dto.MessageResponse
// @Router       /v1/interviews/templates/{id} [delete]
func (h *InterviewHandler) DeleteTemplate(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	if err := h.templates.Delete(c.UserContext(), GetUser(c), id); err != nil {
		return err
	}
	return deleted(c, "Interview template")
}

// StartProcess godoc
// @Summary      Iniciar proceso de entrevistas de una postulación
// @Description  Usa la primera plantilla activa, crea las etapas y notifica al candidato.
// @Tags         interviews
// @Produce      json
// @Security     BearerAuth
// @Param        id   path  int  true  "ID de la postulación"
// @Success      201  {object}  dto.InterviewProcessResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /v1/interviews/applications/{id}/start [post]
func (h *InterviewHandler) StartProcess(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	out, err := h.processes.Start(c.UserContext(), GetUser(c), id)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetApplicationProcess godoc
// @Summary      Proceso de una postulación
// @Tags         interviews
// @Produce      json
// @Security     BearerAuth
// @Param        id   path  int  true  "ID de la postulación"
// @Success      200  {object}  dto.InterviewProcessResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /v1/interviews/applications/{id}/process [get]
func (h *InterviewHandler) GetApplicationProcess(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	out, err := h.processes.GetByApplication(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// GetProcess godoc
// @Summary      Obtener proceso con sus etapas
// @Tags         interviews
// @Produce      json
// @Security     BearerAuth
// @Param        id   path  int  true  "ID del proceso"
// @Success      200  {object}  dto.InterviewProcessResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /v1/interviews/processes/{id} [get]
func (h *InterviewHandler) GetProcess(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	out, err := h.processes.GetProcess(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// DeleteProcess godoc
// @Summary      Eliminar proceso (y sus etapas)
// @Tags         interviews
// @Security     BearerAuth
// @Param        id   path  int  true  "ID del proceso"
// @Success      200  {object}  dto.MessageResponse
// @Router       /v1/interviews/processes/{id} [delete]
func (h *InterviewHandler) DeleteProcess(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	if err := h.processes.Delete(c.UserContext(), GetUser(c), id); err != nil {
		return err
	}
	return deleted(c, "Interview process")
}

// UpdateStep godoc
// @Summary      Actualizar etapa de un proceso
// @Description  Programar envía el aviso de entrevista; completar o calificar envía el resultado.
// @Tags         interviews
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  int                             true  "ID de la etapa"
// @Param        body  body  dto.UpdateInterviewStepRequest  true  "Campos a cambiar"
// @Success      200   {object}  dto.InterviewStepResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      500   {object}  dto.ErrorResponse
// @Router       /v1/interviews/steps/{id} [put]
func (h *InterviewHandler) UpdateStep(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	var in dto.UpdateInterviewStepRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}
	out, err := h.processes.UpdateStep(c.UserContext(), GetUser(c), id, in)
	if err != nil {
		return err
	}
	return c.JSON(out)
}
