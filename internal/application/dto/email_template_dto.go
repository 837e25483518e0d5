package dto

import "time"

// CreateEmailTemplateRequest entrada para crear una plantilla de correo.
type CreateEmailTemplateRequest struct {
	Name            string `json:"name" validate:"required,max=200"`
	Description     string `json:"description"`
	Type            string `json:"type" validate:"required,max=100"`
	SubjectTemplate string `json:"subject_template" validate:"required"`
	HTMLContent     string `json:"html_content" validate:"required"`
	IsActive        *bool  `json:"is_active"`
}

// UpdateEmailTemplateRequest actualización parcial.
type UpdateEmailTemplateRequest struct {
	Name            *string `json:"name" validate:"omitempty,max=200"`
	Description     *string `json:"description"`
	Type            *string `json:"type" validate:"omitempty,max=100"`
	SubjectTemplate *string `json:"subject_template"`
	HTMLContent     *string `json:"html_content"`
	IsActive        *bool   `json:"is_active"`
}

// EmailTemplateResponse salida de una plantilla.
type EmailTemplateResponse struct {
	ID              int64     `json:"id"`
	Name            string    `json:"name"`
	Description     string    `json:"description,omitempty"`
	Type            string    `json:"type"`
	SubjectTemplate string    `json:"subject_template"`
	HTMLContent     string    `json:"html_content"`
	IsActive        bool      `json:"is_active"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// PreviewEmailTemplateRequest variables para renderizar una vista previa.
type PreviewEmailTemplateRequest struct {
	Variables map[string]any `json:"variables"`
}

// PreviewEmailTemplateResponse asunto y cuerpo renderizados.
type PreviewEmailTemplateResponse struct {
	Subject     string `json:"subject"`
	HTMLContent string `json:"html_content"`
}
