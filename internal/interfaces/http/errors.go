package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/recruitment-api/internal/application/dto"
	"github.com/jhoicas/recruitment-api/internal/domain"
)

// Códigos de error expuestos en dto.ErrorResponse.
const (
	CodeNotFound        = "NOT_FOUND"
	CodeValidation      = "VALIDATION"
	CodeInvalidBody     = "INVALID_BODY"
	CodeOperationFailed = "OPERATION_FAILED"
	CodeUnauthenticated = "UNAUTHENTICATED"
	CodeInvalidLogin    = "INVALID_CREDENTIALS"
	CodeInactiveUser    = "INACTIVE_USER"
	CodeForbidden       = "FORBIDDEN"
	CodeEmailDelivery   = "EMAIL_DELIVERY"
	CodeInternal        = "INTERNAL"
)

// errInvalidBody el cuerpo no se pudo decodificar.
var errInvalidBody = errors.New("Invalid request body")

// mapError traduce un error de dominio a status + cuerpo JSON.
func mapError(err error) (int, dto.ErrorResponse) {
	var verr *ValidationError
	switch {
	case errors.Is(err, errInvalidBody):
		return fiber.StatusBadRequest, dto.ErrorResponse{Code: CodeInvalidBody, Detail: err.Error()}
	case errors.As(err, &verr):
		return fiber.StatusBadRequest, dto.ErrorResponse{Code: CodeValidation, Detail: verr.Error()}
	case errors.Is(err, domain.ErrNotFound):
		return fiber.StatusNotFound, dto.ErrorResponse{Code: CodeNotFound, Detail: domain.Detail(err)}
	case errors.Is(err, domain.ErrValidation):
		return fiber.StatusBadRequest, dto.ErrorResponse{Code: CodeValidation, Detail: domain.Detail(err)}
	case errors.Is(err, domain.ErrIntegrity):
		// El detalle del driver no se expone.
		return fiber.StatusBadRequest, dto.ErrorResponse{Code: CodeOperationFailed, Detail: "Operation failed"}
	case errors.Is(err, domain.ErrUnauthenticated):
		return fiber.StatusUnauthorized, dto.ErrorResponse{Code: CodeUnauthenticated, Detail: domain.Detail(err)}
	case errors.Is(err, domain.ErrInvalidCredentials):
		return fiber.StatusUnauthorized, dto.ErrorResponse{Code: CodeInvalidLogin, Detail: domain.Detail(err)}
	case errors.Is(err, domain.ErrInactiveAccount):
		return fiber.StatusBadRequest, dto.ErrorResponse{Code: CodeInactiveUser, Detail: domain.Detail(err)}
	case errors.Is(err, domain.ErrForbidden):
		return fiber.StatusForbidden, dto.ErrorResponse{Code: CodeForbidden, Detail: domain.Detail(err)}
	case errors.Is(err, domain.ErrEmailDelivery):
		return fiber.StatusInternalServerError, dto.ErrorResponse{Code: CodeEmailDelivery, Detail: domain.Detail(err)}
	}
	return fiber.StatusInternalServerError, dto.ErrorResponse{Code: CodeInternal, Detail: "Internal server error"}
}

// ErrorHandler manejador global de fiber: errores de fiber (404 de ruta, 405, body
// demasiado grande) conservan su status; el resto pasa por mapError.
func ErrorHandler(log zerolog.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var fe *fiber.Error
		if errors.As(err, &fe) {
			return c.Status(fe.Code).JSON(dto.ErrorResponse{Code: fiberCode(fe.Code), Detail: fe.Message})
		}
		status, body := mapError(err)
		if status == fiber.StatusInternalServerError {
			log.Error().Err(err).
				Str("method", c.Method()).
				Str("path", c.Path()).
				Str("request_id", requestID(c)).
				Msg("error no controlado")
		}
		if status == fiber.StatusUnauthorized {
			c.Set(fiber.HeaderWWWAuthenticate, "Bearer")
		}
		return c.Status(status).JSON(body)
	}
}

func fiberCode(status int) string {
	switch status {
	case fiber.StatusNotFound:
		return CodeNotFound
	case fiber.StatusBadRequest, fiber.StatusUnprocessableEntity, fiber.StatusRequestEntityTooLarge:
		return CodeValidation
	case fiber.StatusUnauthorized:
		return CodeUnauthenticated
	case fiber.StatusForbidden:
		return CodeForbidden
	}
	if status >= 500 {
		return CodeInternal
	}
	return "HTTP_ERROR"
}
