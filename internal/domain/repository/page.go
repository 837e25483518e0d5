package repository

// Page paginación skip/limit usada por todos los listados (orden de inserción).
type Page struct {
	Skip  int
	Limit int
}

// Límites de paginación.
const (
	DefaultLimit = 100
	MaxLimit     = 100
)

// NewPage normaliza skip/limit: skip negativo pasa a 0; limit fuera de 1..100 pasa al máximo.
func NewPage(skip, limit int) Page {
	if skip < 0 {
		skip = 0
	}
	if limit <= 0 || limit > MaxLimit {
		limit = DefaultLimit
	}
	return Page{Skip: skip, Limit: limit}
}
