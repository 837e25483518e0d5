package ports

import "context"

// EmailMessage correo ya renderizado, listo para entregar.
type EmailMessage struct {
	To       string
	Subject  string
	HTMLBody string
}

// Mailer define el puerto de salida para la entrega de correo (SMTP u otro transporte).
// Un error de entrega se propaga tal cual; no hay reintentos.
type Mailer interface {
	Send(ctx context.Context, msg EmailMessage) error
}

// TemplateRenderer sustituye variables en plantillas de asunto y cuerpo.
// Las variables no definidas se renderizan vacías.
type TemplateRenderer interface {
	Render(source string, vars map[string]any) (string, error)
	// Validate compila la plantilla sin renderizarla para detectar errores de sintaxis.
	Validate(source string) error
}
