package entity

// Role rol de un usuario del sistema.
type Role string

// Roles válidos para User.
const (
	RoleAdmin       Role = "ADMIN"
	RoleRecruiter   Role = "RECRUITER"
	RoleInterviewer Role = "INTERVIEWER"
	RoleCandidate   Role = "CANDIDATE"
)

func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleRecruiter, RoleInterviewer, RoleCandidate:
		return true
	}
	return false
}

// IsStaff indica si el rol pertenece al equipo de selección.
func (r Role) IsStaff() bool {
	return r == RoleAdmin || r == RoleRecruiter || r == RoleInterviewer
}

// User cuenta de acceso. Un usuario CANDIDATE tiene como máximo un Candidate asociado.
type User struct {
	ID           int64
	Email        string
	PasswordHash string // bcrypt
	Role         Role
	IsActive     bool
	Audit
}

// ActorID devuelve el puntero usado en el sellado de auditoría; nil si u es nil.
func (u *User) ActorID() *int64 {
	if u == nil {
		return nil
	}
	id := u.ID
	return &id
}
