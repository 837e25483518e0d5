package http

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/jhoicas/recruitment-api/internal/domain/entity"
)

// ValidationError errores por campo (nombre según el tag json).
type ValidationError struct {
	Fields map[string]string
}

// Error resume los campos en orden alfabético para que la respuesta sea estable.
func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	msgs := make([]string, 0, len(names))
	for _, name := range names {
		msgs = append(msgs, fmt.Sprintf("%s: %s", name, e.Fields[name]))
	}
	return "Validation failed: " + strings.Join(msgs, "; ")
}

// Validator envoltorio de go-playground/validator con las reglas de los enums del dominio.
type Validator struct {
	validate *validator.Validate
}

// NewValidator construye el validador. Falla solo si una regla no se puede registrar.
func NewValidator() (*Validator, error) {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	rules := map[string]func(string) bool{
		"job_type":           func(s string) bool { return entity.JobType(s).IsValid() },
		"job_status":         func(s string) bool { return entity.JobStatus(s).IsValid() },
		"application_status": func(s string) bool { return entity.ApplicationStatus(s).IsValid() },
		"step_type":          func(s string) bool { return entity.StepType(s).IsValid() },
		"step_status":        func(s string) bool { return entity.StepStatus(s).IsValid() },
		"user_role":          func(s string) bool { return entity.Role(s).IsValid() },
	}
	for tag, ok := range rules {
		ok := ok
		err := v.RegisterValidation(tag, func(fl validator.FieldLevel) bool {
			return ok(fl.Field().String())
		})
		if err != nil {
			return nil, fmt.Errorf("validator: registrar %q: %w", tag, err)
		}
	}
	return &Validator{validate: v}, nil
}

// MustValidator igual que NewValidator pero entra en pánico; se usa al armar el router.
func MustValidator() *Validator {
	v, err := NewValidator()
	if err != nil {
		panic(err)
	}
	return v
}

// Validate valida la estructura y devuelve *ValidationError con los campos inválidos.
func (v *Validator) Validate(i any) error {
	err := v.validate.Struct(i)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		fields[fieldPath(fe)] = fieldMessage(fe)
	}
	return &ValidationError{Fields: fields}
}

// fieldPath quita el nombre del struct raíz: "CreateX.steps[0].name" → "steps[0].name".
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "field required"
	case "email":
		return "value is not a valid email address"
	case "url":
		return "value is not a valid URL"
	case "min":
		if k := fe.Kind(); k == reflect.String || k == reflect.Slice || k == reflect.Map {
			return fmt.Sprintf("must have at least %s items/characters", fe.Param())
		}
		return fmt.Sprintf("must be greater than or equal to %s", fe.Param())
	case "max":
		if k := fe.Kind(); k == reflect.String || k == reflect.Slice || k == reflect.Map {
			return fmt.Sprintf("must have at most %s items/characters", fe.Param())
		}
		return fmt.Sprintf("must be less than or equal to %s", fe.Param())
	case "gt":
		return fmt.Sprintf("must be greater than %s", fe.Param())
	case "job_type", "job_status", "application_status", "step_type", "step_status", "user_role":
		return fmt.Sprintf("%q is not a valid %s", fe.Value(), strings.ReplaceAll(fe.Tag(), "_", " "))
	default:
		return fmt.Sprintf("failed on '%s'", fe.Tag())
	}
}
