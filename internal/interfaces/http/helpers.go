package http

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/recruitment-api/internal/application/dto"
	"github.com/jhoicas/recruitment-api/internal/domain"
	"github.com/jhoicas/recruitment-api/internal/domain/entity"
	"github.com/jhoicas/recruitment-api/internal/domain/repository"
)

var validate = MustValidator()

// parseBody decodifica el cuerpo (JSON o form) y valida la estructura.
func parseBody(c *fiber.Ctx, out any) error {
	if err := c.BodyParser(out); err != nil {
		return errInvalidBody
	}
	return validate.Validate(out)
}

// parseID lee un parámetro de ruta entero positivo.
func parseID(c *fiber.Ctx, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Params(name), 10, 64)
	if err != nil || id < 1 {
		return 0, &ValidationError{Fields: map[string]string{name: "must be a positive integer"}}
	}
	return id, nil
}

// pageFrom lee skip/limit del query string.
func pageFrom(c *fiber.Ctx) repository.Page {
	return repository.NewPage(c.QueryInt("skip", 0), c.QueryInt("limit", repository.DefaultLimit))
}

// queryInt64 parámetro opcional; nil si no viene.
func queryInt64(c *fiber.Ctx, name string) (*int64, error) {
	raw := c.Query(name)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, &ValidationError{Fields: map[string]string{name: "must be an integer"}}
	}
	return &v, nil
}

// queryBool parámetro opcional; nil si no viene.
func queryBool(c *fiber.Ctx, name string) (*bool, error) {
	raw := c.Query(name)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, &ValidationError{Fields: map[string]string{name: "must be a boolean"}}
	}
	return &v, nil
}

// applicationFilter filtros comunes del listado y la exportación de postulaciones.
func applicationFilter(c *fiber.Ctx) (repository.ApplicationFilter, error) {
	var f repository.ApplicationFilter
	var err error
	if f.CandidateID, err = queryInt64(c, "candidate_id"); err != nil {
		return f, err
	}
	if f.JobOpeningID, err = queryInt64(c, "job_opening_id"); err != nil {
		return f, err
	}
	if raw := c.Query("status"); raw != "" {
		st := entity.ApplicationStatus(raw)
		if !st.IsValid() {
			return f, domain.Errorf(domain.ErrValidation, "Invalid application status %q", raw)
		}
		f.Status = &st
	}
	return f, nil
}

func deleted(c *fiber.Ctx, what string) error {
	return c.JSON(dto.MessageResponse{Message: what + " deleted successfully"})
}
