package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/recruitment-api/internal/application/dto"
	"github.com/jhoicas/recruitment-api/internal/application/usecase"
)

// ApplicationHandler postulaciones.
type ApplicationHandler struct {
	uc *usecase.ApplicationUseCase
}

func NewApplicationHandler(uc *usecase.ApplicationUseCase) *ApplicationHandler {
	return &ApplicationHandler{uc: uc}
}

// Create godoc
// @Summary      Postular un candidato a una vacante abierta
// @Description  Un CANDIDATE solo puede postular con su propio perfil.
// @Tags         applications
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.CreateApplicationRequest  true  "Postulación"
// @Success      201   {object}  dto.ApplicationResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /v1/applications [post]
func (h *ApplicationHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateApplicationRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}
	out, err := h.uc.Create(c.UserContext(), GetUser(c), in)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener postulación
// @Tags         applications
// @Produce      json
// @Security     BearerAuth
// @Param        id   path  int  true  "ID de la postulación"
// @Success      200  {object}  dto.ApplicationResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /v1/applications/{id} [get]
func (h *ApplicationHandler) GetByID(c *fiber.Ctx) error {
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

// List godoc
// @Summary      Listar postulaciones
// @Tags         applications
// @Produce      json
// @Security     BearerAuth
// @Param        candidate_id    query  int     false  "Filtrar por candidato"
// @Param        job_opening_id  query  int     false  "Filtrar por vacante"
// @Param        status          query  string  false  "Estado"
// @Param        skip            query  int     false  "Desplazamiento"  default(0)
// @Param        limit           query  int     false  "Límite"          default(100)
// @Success      200             {object}  dto.ApplicationListResponse
// @Router       /v1/applications [get]
func (h *ApplicationHandler) List(c *fiber.Ctx) error {
	filter, err := applicationFilter(c)
	if err != nil {
		return err
	}
	out, err := h.uc.List(c.UserContext(), filter, pageFrom(c))
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// UpdateStatus godoc
// @Summary      Cambiar el estado de una postulación
// @Tags         applications
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  int                                 true  "ID de la postulación"
// @Param        body  body  dto.UpdateApplicationStatusRequest  true  "Nuevo estado"
// @Success      200   {object}  dto.ApplicationResponse
// @Router       /v1/applications/{id}/status [put]
func (h *ApplicationHandler) UpdateStatus(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	var in dto.UpdateApplicationStatusRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}
	out, err := h.uc.UpdateStatus(c.UserContext(), GetUser(c), id, in)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar postulación
// @Tags         applications
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  int                           true  "ID de la postulación"
// @Param        body  body  dto.UpdateApplicationRequest  true  "Campos a cambiar"
// @Success      200   {object}  dto.ApplicationResponse
// @Router       /v1/applications/{id} [put]
func (h *ApplicationHandler) Update(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	var in dto.UpdateApplicationRequest
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
// @Summary      Eliminar postulación
// @Tags         applications
// @Security     BearerAuth
// @Param        id   path  int  true  "ID de la postulación"
// @Success      200  {object}  dto.MessageResponse
// @Router       /v1/applications/{id} [delete]
func (h *ApplicationHandler) Delete(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	if err := h.uc.Delete(c.UserContext(), GetUser(c), id); err != nil {
		return err
	}
	return deleted(c, "Application")
}
