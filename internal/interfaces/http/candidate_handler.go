package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/recruitment-api/internal/application/dto"
	"github.com/jhoicas/recruitment-api/internal/application/usecase"
)

// CandidateHandler perfiles de candidatos (solo personal).
type CandidateHandler struct {
	uc *usecase.CandidateUseCase
}

func NewCandidateHandler(uc *usecase.CandidateUseCase) *CandidateHandler {
	return &CandidateHandler{uc: uc}
}

// Create godoc
// @Summary      Crear candidato (y su cuenta CANDIDATE)
// @Tags         candidates
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.CreateCandidateRequest  true  "Candidato"
// @Success      201   {object}  dto.CandidateResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /v1/candidates [post]
func (h *CandidateHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateCandidateRequest
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
// @Summary      Obtener candidato
// @Tags         candidates
// @Produce      json
// @Security     BearerAuth
// @Param        id   path  int  true  "ID del candidato"
// @Success      200  {object}  dto.CandidateResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /v1/candidates/{id} [get]
func (h *CandidateHandler) GetByID(c *fiber.Ctx) error {
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
// @Summary      Listar candidatos
// @Tags         candidates
// @Produce      json
// @Security     BearerAuth
// @Param        skip   query  int  false  "Desplazamiento"  default(0)
// @Param        limit  query  int  false  "Límite"          default(100)
// @Success      200    {object}  dto.CandidateListResponse
// @Router       /v1/candidates [get]
func (h *CandidateHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext(), pageFrom(c))
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar candidato
// @Tags         candidates
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  int                         true  "ID del candidato"
// @Param        body  body  dto.UpdateCandidateRequest  true  "Campos a cambiar"
// @Success      200   {object}  dto.CandidateResponse
// @Router       /v1/candidates/{id} [put]
func (h *CandidateHandler) Update(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	var in dto.UpdateCandidateRequest
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
// @Summary      Eliminar candidato
// @Tags         candidates
// @Security     BearerAuth
// @Param        id   path  int  true  "ID del candidato"
// @Success      200  {object}  dto.MessageResponse
// @Router       /v1/candidates/{id} [delete]
func (h *CandidateHandler) Delete(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	if err := h.uc.Delete(c.UserContext(), GetUser(c), id); err != nil {
		return err
	}
	return deleted(c, "Candidate")
}
