package entity

// Company empresa que publica vacantes.
type Company struct {
	ID          int64
	Name        string
	Industry    string
	Location    string
	Website     string
	Description string
	Active      bool
	Audit
}
