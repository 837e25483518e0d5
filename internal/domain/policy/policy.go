// Package policy centraliza qué roles pueden ejecutar cada acción sobre cada recurso.
package policy

import (
	"strings"

	"github.com/jhoicas/recruitment-api/internal/domain"
	"github.com/jhoicas/recruitment-api/internal/domain/entity"
)

// Resource recurso protegido.
type Resource string

const (
	Company           Resource = "company"
	JobOpening        Resource = "job_opening"
	Candidate         Resource = "candidate"
	Application       Resource = "application"
	InterviewTemplate Resource = "interview_template"
	InterviewProcess  Resource = "interview_process"
	InterviewStep     Resource = "interview_step"
	EmailTemplate     Resource = "email_template"
	User              Resource = "user"
)

// Action operación sobre un recurso.
type Action string

const (
	Read   Action = "read"
	Create Action = "create"
	Update Action = "update"
	Delete Action = "delete"
	Start  Action = "start"
	Export Action = "export"
)

var (
	admin       = entity.RoleAdmin
	recruiter   = entity.RoleRecruiter
	interviewer = entity.RoleInterviewer
	candidate   = entity.RoleCandidate
)

// Table (recurso, acción) → roles permitidos. Lo que no aparece está prohibido para todos.
// Las lecturas públicas (empresas, vacantes, plantillas activas) no pasan por aquí.
var Table = map[Resource]map[Action][]entity.Role{
	Company: {
		Create: {admin, recruiter},
		Update: {admin, recruiter},
		Delete: {admin},
	},
	JobOpening: {
		Create: {admin, recruiter},
		Update: {admin, recruiter},
		Delete: {admin},
	},
	Candidate: {
		Read:   {admin, recruiter, interviewer},
		Create: {admin, recruiter},
		Update: {admin, recruiter},
		Delete: {admin},
	},
	Application: {
		Read:   {admin, recruiter, interviewer},
		Create: {admin, recruiter, candidate},
		Update: {admin, recruiter},
		Delete: {admin},
		Export: {admin, recruiter},
	},
	InterviewTemplate: {
		Read:   {admin, recruiter, interviewer},
		Create: {admin, recruiter},
		Update: {admin, recruiter},
		Delete: {admin},
	},
	InterviewProcess: {
		Read:   {admin, recruiter, interviewer},
		Start:  {recruiter, admin},
		Delete: {admin},
	},
	InterviewStep: {
		Update: {recruiter, admin},
	},
	EmailTemplate: {
		Read:   {admin, recruiter},
		Create: {admin},
		Update: {admin},
		Delete: {admin},
	},
	User: {
		Read:   {admin},
		Create: {admin},
		Update: {admin},
	},
}

// Allowed indica si role puede ejecutar action sobre resource.
func Allowed(role entity.Role, action Action, resource Resource) bool {
	for _, r := range Table[resource][action] {
		if r == role {
			return true
		}
	}
	return false
}

// Authorize es la única puerta de autorización: nil si está permitido, ErrForbidden si no.
func Authorize(role entity.Role, action Action, resource Resource) error {
	if Allowed(role, action, resource) {
		return nil
	}
	roles := Table[resource][action]
	if len(roles) == 0 {
		return domain.Errorf(domain.ErrForbidden, "Not enough permissions")
	}
	return domain.Errorf(domain.ErrForbidden, "Only %s can %s %s", rolesPhrase(roles), action, resource.plural())
}

func (r Resource) plural() string {
	switch r {
	case Company:
		return "companies"
	case InterviewProcess:
		return "interview processes"
	}
	return strings.ReplaceAll(string(r), "_", " ") + "s"
}

func rolesPhrase(roles []entity.Role) string {
	names := make([]string, len(roles))
	for i, r := range roles {
		names[i] = strings.ToLower(string(r)) + "s"
	}
	if len(names) == 1 {
		return names[0]
	}
	return strings.Join(names[:len(names)-1], ", ") + " and " + names[len(names)-1]
}
