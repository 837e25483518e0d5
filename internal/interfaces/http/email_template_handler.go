package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/recruitment-api/internal/application/dto"
	"github.com/jhoicas/recruitment-api/internal/application/usecase"
	"github.com/jhoicas/recruitment-api/internal/domain/repository"
)

// EmailTemplateHandler plantillas de correo.
type EmailTemplateHandler struct {
	uc *usecase.EmailTemplateUseCase
}

func NewEmailTemplateHandler(uc *usecase.EmailTemplateUseCase) *EmailTemplateHandler {
	return &EmailTemplateHandler{uc: uc}
}

// List godoc
// @Summary      Listar plantillas de correo
// @Tags         email-templates
// @Produce      json
// @Security     BearerAuth
// @Param        type       query  string  false  "Tipo (interview_scheduled, ...)"
// @Param        is_active  query  bool    false  "Solo activas"  default(true)
// @Param        skip       query  int     false  "Desplazamiento"  default(0)
// @Param        limit      query  int     false  "Límite"          default(100)
// @Success      200        {array}  dto.EmailTemplateResponse
// @Router       /v1/email-templates [get]
func (h *EmailTemplateHandler) List(c *fiber.Ctx) error {
	active, err := queryBool(c, "is_active")
	if err != nil {
		return err
	}
	if active == nil {
		t := true
		active = &t
	}
	filter := repository.EmailTemplateFilter{Type: c.Query("type"), IsActive: active}
	out, err := h.uc.List(c.UserContext(), filter, pageFrom(c))
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener plantilla de correo
// @Tags         email-templates
// @Produce      json
// @Security     BearerAuth
// @Param        id   path  int  true  "ID de la plantilla"
// @Success      200  {object}  dto.EmailTemplateResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /v1/email-templates/{id} [get]
func (h *EmailTemplateHandler) GetByID(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	out, err := h.uc.GetByID(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Crear plantilla de correo
// @Tags         email-templates
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.CreateEmailTemplateRequest  true  "Plantilla"
// @Success      201   {object}  dto.EmailTemplateResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /v1/email-templates [post]
func (h *EmailTemplateHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateEmailTemplateRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}
	out, err := h.uc.Create(c.UserContext(), GetUser(c), in)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Update godoc
// @Summary      Actualizar plantilla de correo
// @Tags         email-templates
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  int                             true  "ID de la plantilla"
// @Param        body  body  dto.UpdateEmailTemplateRequest  true  "Campos a cambiar"
// @Success      200   {object}  dto.EmailTemplateResponse
// @Router       /v1/email-templates/{id} [put]
func (h *EmailTemplateHandler) Update(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	var in dto.UpdateEmailTemplateRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}
	out, err := h.uc.Update(c.UserContext(), GetUser(c), id, in)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar plantilla de correo
// @Tags         email-templates
// @Security     BearerAuth
// @Param        id   path  int  true  "ID de la plantilla"
// @Success      200  {object}  dto.MessageResponse
// @Router       /v1/email-templates/{id} [delete]
func (h *EmailTemplateHandler) Delete(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	if err := h.uc.Delete(c.UserContext(), GetUser(c), id); err != nil {
		return err
	}
	return deleted(c, "Email template")
}

// Preview godoc
// @Summary      Vista previa con variables
// @Tags         email-templates
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  int                              true  "ID de la plantilla"
// @Param        body  body  dto.PreviewEmailTemplateRequest  true  "Variables"
// @Success      200   {object}  dto.PreviewEmailTemplateResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /v1/email-templates/{id}/preview [post]
func (h *EmailTemplateHandler) Preview(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	var in dto.PreviewEmailTemplateRequest
	if len(c.Body()) > 0 {
		if err := parseBody(c, &in); err != nil {
			return err
		}
	}
	out, err := h.uc.Preview(c.UserContext(), GetUser(c), id, in.Variables)
	if err != nil {
		return err
	}
	return c.JSON(out)
}
