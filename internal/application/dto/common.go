package dto

// PageResponse metadatos de página en respuestas (skip/limit efectivos).
type PageResponse struct {
	Skip  int `json:"skip"`
	Limit int `json:"limit"`
}

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code   string `json:"code"`
	Detail string `json:"detail"`
}

// MessageResponse respuesta simple con mensaje.
type MessageResponse struct {
	Message string `json:"message"`
}
