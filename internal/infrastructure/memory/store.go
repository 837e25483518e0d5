// Package memory implementa los puertos de persistencia en memoria para las pruebas
// de casos de uso y de HTTP. Run serializa las transacciones y restaura el estado
// previo si fn devuelve error.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/jhoicas/recruitment-api/internal/application/ports"
	"github.com/jhoicas/recruitment-api/internal/domain/entity"
	"github.com/jhoicas/recruitment-api/internal/domain/repository"
)

var _ ports.TxRunner = (*Store)(nil)

// table filas de una entidad indexadas por id, con secuencia propia.
type table[T any] struct {
	seq  int64
	rows map[int64]T
}

func newTable[T any]() *table[T] {
	return &table[T]{rows: map[int64]T{}}
}

func (t *table[T]) clone() *table[T] {
	c := &table[T]{seq: t.seq, rows: make(map[int64]T, len(t.rows))}
	for k, v := range t.rows {
		c.rows[k] = v
	}
	return c
}

func (t *table[T]) nextID() int64 {
	t.seq++
	return t.seq
}

// ids en orden de inserción.
func (t *table[T]) ids() []int64 {
	out := make([]int64, 0, len(t.rows))
	for id := range t.rows {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// scan recorre en orden de inserción las filas que cumplen match y aplica la página.
func (t *table[T]) scan(page repository.Page, match func(T) bool) []T {
	var out []T
	skipped := 0
	for _, id := range t.ids() {
		row := t.rows[id]
		if match != nil && !match(row) {
			continue
		}
		if skipped < page.Skip {
			skipped++
			continue
		}
		if page.Limit > 0 && len(out) >= page.Limit {
			break
		}
		out = append(out, row)
	}
	return out
}

func (t *table[T]) find(match func(T) bool) (T, bool) {
	for _, id := range t.ids() {
		if row := t.rows[id]; match(row) {
			return row, true
		}
	}
	var zero T
	return zero, false
}

type state struct {
	users          *table[entity.User]
	companies      *table[entity.Company]
	jobs           *table[entity.JobOpening]
	candidates     *table[entity.Candidate]
	applications   *table[entity.Application]
	templates      *table[entity.InterviewTemplate]
	templateSteps  *table[entity.InterviewTemplateStep]
	processes      *table[entity.InterviewProcess]
	steps          *table[entity.InterviewStep]
	emailTemplates *table[entity.EmailTemplate]
}

func newState() *state {
	return &state{
		users:          newTable[entity.User](),
		companies:      newTable[entity.Company](),
		jobs:           newTable[entity.JobOpening](),
		candidates:     newTable[entity.Candidate](),
		applications:   newTable[entity.Application](),
		templates:      newTable[entity.InterviewTemplate](),
		templateSteps:  newTable[entity.InterviewTemplateStep](),
		processes:      newTable[entity.InterviewProcess](),
		steps:          newTable[entity.InterviewStep](),
		emailTemplates: newTable[entity.EmailTemplate](),
	}
}

func (s *state) clone() *state {
	return &state{
		users:          s.users.clone(),
		companies:      s.companies.clone(),
		jobs:           s.jobs.clone(),
		candidates:     s.candidates.clone(),
		applications:   s.applications.clone(),
		templates:      s.templates.clone(),
		templateSteps:  s.templateSteps.clone(),
		processes:      s.processes.clone(),
		steps:          s.steps.clone(),
		emailTemplates: s.emailTemplates.clone(),
	}
}

// Store base de datos en memoria.
type Store struct {
	mu sync.Mutex
	st *state
}

// NewStore crea un almacén vacío.
func NewStore() *Store {
	return &Store{st: newState()}
}

// Run ejecuta fn con repositorios sobre el estado actual; si fn falla se descartan sus cambios.
func (s *Store) Run(ctx context.Context, fn func(repos repository.Repositories) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	snapshot := s.st.clone()
	if err := fn(s.repositories()); err != nil {
		s.st = snapshot
		return err
	}
	return nil
}

// Repositories repositorios fuera de transacción (cada llamada ve el estado vigente).
// Útil para preparar datos en pruebas.
func (s *Store) Repositories() repository.Repositories {
	return s.repositories()
}

func (s *Store) repositories() repository.Repositories {
	return repository.Repositories{
		Users:              &userRepo{s: s},
		Companies:          &companyRepo{s: s},
		JobOpenings:        &jobOpeningRepo{s: s},
		Candidates:         &candidateRepo{s: s},
		Applications:       &applicationRepo{s: s},
		InterviewTemplates: &interviewTemplateRepo{s: s},
		InterviewProcesses: &interviewProcessRepo{s: s},
		EmailTemplates:     &emailTemplateRepo{s: s},
	}
}
