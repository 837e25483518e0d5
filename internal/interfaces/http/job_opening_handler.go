package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/recruitment-api/internal/application/dto"
	"github.com/jhoicas/recruitment-api/internal/application/usecase"
	"github.com/jhoicas/recruitment-api/internal/domain"
	"github.com/jhoicas/recruitment-api/internal/domain/entity"
	"github.com/jhoicas/recruitment-api/internal/domain/repository"
)

// JobOpeningHandler vacantes.
type JobOpeningHandler struct {
	uc *usecase.JobOpeningUseCase
}

func NewJobOpeningHandler(uc *usecase.JobOpeningUseCase) *JobOpeningHandler {
	return &JobOpeningHandler{uc: uc}
}

// Create godoc
// @Summary      Publicar vacante
// @Tags         job-openings
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.CreateJobOpeningRequest  true  "Vacante"
// @Success      201   {object}  dto.JobOpeningResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /v1/job-openings [post]
func (h *JobOpeningHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateJobOpeningRequest
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
// @Summary      Obtener vacante
// @Tags         job-openings
// @Produce      json
// @Param        id   path  int  true  "ID de la vacante"
// @Success      200  {object}  dto.JobOpeningResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /v1/job-openings/{id} [get]
func (h *JobOpeningHandler) GetByID(c *fiber.Ctx) error {
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
// @Summary      Listar vacantes
// @Tags         job-openings
// @Produce      json
// @Param        company_id  query  int     false  "Filtrar por empresa"
// @Param        status      query  string  false  "open, closed u on_hold"
// @Param        skip        query  int     false  "Desplazamiento"  default(0)
// @Param        limit       query  int     false  "Límite"          default(100)
// @Success      200         {object}  dto.JobOpeningListResponse
// @Router       /v1/job-openings [get]
func (h *JobOpeningHandler) List(c *fiber.Ctx) error {
	var filter repository.JobOpeningFilter
	var err error
	if filter.CompanyID, err = queryInt64(c, "company_id"); err != nil {
		return err
	}
	if raw := c.Query("status"); raw != "" {
		st := entity.JobStatus(raw)
		if !st.IsValid() {
			return domain.Errorf(domain.ErrValidation, "Invalid job status %q", raw)
		}
		filter.Status = &st
	}
	out, err := h.uc.List(c.UserContext(), filter, pageFrom(c))
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar vacante
// @Tags         job-openings
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  int                          true  "ID de la vacante"
// @Param        body  body  dto.UpdateJobOpeningRequest  true  "Campos a cambiar"
// @Success      200   {object}  dto.JobOpeningResponse
// @Router       /v1/job-openings/{id} [put]
func (h *JobOpeningHandler) Update(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	var in dto.UpdateJobOpeningRequest
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
// @Summary      Eliminar vacante
// @Tags         job-openings
// @Security     BearerAuth
// @Param        id   path  int  true  "ID de la vacante"
// @Success      200  {object}  dto.MessageResponse
// @Router       /v1/job-openings/{id} [delete]
func (h *JobOpeningHandler) Delete(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	if err := h.uc.Delete(c.UserContext(), GetUser(c), id); err != nil {
		return err
	}
	return deleted(c, "Job opening")
}
