package entity

import "time"

// Candidate perfil profesional ligado 1:1 a un User con rol CANDIDATE.
// Email replica el email del usuario propietario.
type Candidate struct {
	ID              int64
	UserID          int64
	FirstName       string
	LastName        string
	Email           string
	Phone           string
	ResumeURL       string
	LinkedinURL     string
	Skills          string
	ExperienceYears int
	CurrentCompany  string
	CurrentPosition string
	Education       string
	AvailableFrom   *time.Time
	Notes           string
	Audit
}

// FullName nombre y apellido separados por espacio.
func (c *Candidate) FullName() string {
	if c.LastName == "" {
		return c.FirstName
	}
	return c.FirstName + " " + c.LastName
}
