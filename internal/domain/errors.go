package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas). La capa HTTP los traduce con errors.Is.
var (
	ErrNotFound           = errors.New("resource not found")
	ErrValidation         = errors.New("validation error")
	ErrUnauthenticated    = errors.New("could not validate credentials")
	ErrInvalidCredentials = errors.New("incorrect username or password")
	ErrInactiveAccount    = errors.New("inactive user")
	ErrForbidden          = errors.New("forbidden")
	ErrIntegrity          = errors.New("operation failed")
	ErrEmailDelivery      = errors.New("email send failed")
	ErrTemplateNotFound   = fmt.Errorf("%w: email template", ErrNotFound)
)

// Error asocia un error centinela con un detalle legible para el cliente.
type Error struct {
	Kind   error
	Detail string
}

func (e *Error) Error() string {
	if e.Detail == "" {
		return e.Kind.Error()
	}
	return e.Detail
}

func (e *Error) Unwrap() error { return e.Kind }

// Errorf construye un *Error del tipo kind con el detalle formateado.
func Errorf(kind error, format string, args ...any) error {
	return &Error{Kind: kind, Detail: fmt.Sprintf(format, args...)}
}

// NotFound atajo para el caso más común: "<What> not found".
func NotFound(what string) error {
	return &Error{Kind: ErrNotFound, Detail: what + " not found"}
}

// Detail devuelve el mensaje que se expone al cliente para err.
func Detail(err error) string {
	var de *Error
	if errors.As(err, &de) {
		return de.Error()
	}
	return err.Error()
}
