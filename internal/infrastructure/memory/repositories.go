package memory

import (
	"context"
	"sort"

	"github.com/jhoicas/recruitment-api/internal/domain"
	"github.com/jhoicas/recruitment-api/internal/domain/entity"
	"github.com/jhoicas/recruitment-api/internal/domain/repository"
)

var (
	_ repository.UserRepository              = (*userRepo)(nil)
	_ repository.CompanyRepository           = (*companyRepo)(nil)
	_ repository.JobOpeningRepository        = (*jobOpeningRepo)(nil)
	_ repository.CandidateRepository         = (*candidateRepo)(nil)
	_ repository.ApplicationRepository       = (*applicationRepo)(nil)
	_ repository.InterviewTemplateRepository = (*interviewTemplateRepo)(nil)
	_ repository.InterviewProcessRepository  = (*interviewProcessRepo)(nil)
	_ repository.EmailTemplateRepository     = (*emailTemplateRepo)(nil)
)

func ptr[T any](v T) *T { return &v }

// ── users ──────────────────────────────────────────────────────────────────

type userRepo struct{ s *Store }

func (r *userRepo) Create(_ context.Context, u *entity.User) error {
	t := r.s.st.users
	if _, dup := t.find(func(x entity.User) bool { return x.Email == u.Email }); dup {
		return domain.ErrIntegrity
	}
	u.ID = t.nextID()
	t.rows[u.ID] = *u
	return nil
}

func (r *userRepo) GetByID(_ context.Context, id int64) (*entity.User, error) {
	if u, ok := r.s.st.users.rows[id]; ok {
		return &u, nil
	}
	return nil, nil
}

func (r *userRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	if u, ok := r.s.st.users.find(func(x entity.User) bool { return x.Email == email }); ok {
		return &u, nil
	}
	return nil, nil
}

func (r *userRepo) Update(_ context.Context, u *entity.User) error {
	t := r.s.st.users
	if _, ok := t.rows[u.ID]; !ok {
		return nil
	}
	if other, dup := t.find(func(x entity.User) bool { return x.Email == u.Email }); dup && other.ID != u.ID {
		return domain.ErrIntegrity
	}
	t.rows[u.ID] = *u
	return nil
}

func (r *userRepo) List(_ context.Context, page repository.Page) ([]*entity.User, error) {
	return pointers(r.s.st.users.scan(page, nil)), nil
}

// ── companies ──────────────────────────────────────────────────────────────

type companyRepo struct{ s *Store }

func (r *companyRepo) Create(_ context.Context, c *entity.Company) error {
	c.ID = r.s.st.companies.nextID()
	r.s.st.companies.rows[c.ID] = *c
	return nil
}

func (r *companyRepo) GetByID(_ context.Context, id int64) (*entity.Company, error) {
	if c, ok := r.s.st.companies.rows[id]; ok {
		return &c, nil
	}
	return nil, nil
}

func (r *companyRepo) Update(_ context.Context, c *entity.Company) error {
	if _, ok := r.s.st.companies.rows[c.ID]; ok {
		r.s.st.companies.rows[c.ID] = *c
	}
	return nil
}

func (r *companyRepo) List(_ context.Context, page repository.Page) ([]*entity.Company, error) {
	return pointers(r.s.st.companies.scan(page, nil)), nil
}

func (r *companyRepo) Delete(_ context.Context, id int64) error {
	st := r.s.st
	for _, jobID := range st.jobs.ids() {
		if st.jobs.rows[jobID].CompanyID == id {
			st.deleteJob(jobID)
		}
	}
	delete(st.companies.rows, id)
	return nil
}

// ── job openings ───────────────────────────────────────────────────────────

type jobOpeningRepo struct{ s *Store }

func (r *jobOpeningRepo) Create(_ context.Context, j *entity.JobOpening) error {
	st := r.s.st
	if err := st.checkJobRefs(j); err != nil {
		return err
	}
	j.ID = st.jobs.nextID()
	st.jobs.rows[j.ID] = *j
	return nil
}

func (r *jobOpeningRepo) GetByID(_ context.Context, id int64) (*entity.JobOpening, error) {
	if j, ok := r.s.st.jobs.rows[id]; ok {
		return &j, nil
	}
	return nil, nil
}

func (r *jobOpeningRepo) Update(_ context.Context, j *entity.JobOpening) error {
	st := r.s.st
	if _, ok := st.jobs.rows[j.ID]; !ok {
		return nil
	}
	if err := st.checkJobRefs(j); err != nil {
		return err
	}
	st.jobs.rows[j.ID] = *j
	return nil
}

func (r *jobOpeningRepo) List(_ context.Context, f repository.JobOpeningFilter, page repository.Page) ([]*entity.JobOpening, error) {
	rows := r.s.st.jobs.scan(page, func(j entity.JobOpening) bool {
		if f.CompanyID != nil && j.CompanyID != *f.CompanyID {
			return false
		}
		return f.Status == nil || j.Status == *f.Status
	})
	return pointers(rows), nil
}

func (r *jobOpeningRepo) Delete(_ context.Context, id int64) error {
	r.s.st.deleteJob(id)
	return nil
}

// ── candidates ─────────────────────────────────────────────────────────────

type candidateRepo struct{ s *Store }

func (r *candidateRepo) Create(_ context.Context, c *entity.Candidate) error {
	st := r.s.st
	if err := st.checkCandidateUnique(c); err != nil {
		return err
	}
	if _, ok := st.users.rows[c.UserID]; !ok {
		return domain.ErrIntegrity
	}
	c.ID = st.candidates.nextID()
	st.candidates.rows[c.ID] = *c
	return nil
}

func (r *candidateRepo) GetByID(_ context.Context, id int64) (*entity.Candidate, error) {
	if c, ok := r.s.st.candidates.rows[id]; ok {
		return &c, nil
	}
	return nil, nil
}

func (r *candidateRepo) GetByEmail(_ context.Context, email string) (*entity.Candidate, error) {
	if c, ok := r.s.st.candidates.find(func(x entity.Candidate) bool { return x.Email == email }); ok {
		return &c, nil
	}
	return nil, nil
}

func (r *candidateRepo) GetByUserID(_ context.Context, userID int64) (*entity.Candidate, error) {
	if c, ok := r.s.st.candidates.find(func(x entity.Candidate) bool { return x.UserID == userID }); ok {
		return &c, nil
	}
	return nil, nil
}

func (r *candidateRepo) Update(_ context.Context, c *entity.Candidate) error {
	st := r.s.st
	if _, ok := st.candidates.rows[c.ID]; !ok {
		return nil
	}
	if err := st.checkCandidateUnique(c); err != nil {
		return err
	}
	st.candidates.rows[c.ID] = *c
	return nil
}

func (r *candidateRepo) List(_ context.Context, page repository.Page) ([]*entity.Candidate, error) {
	return pointers(r.s.st.candidates.scan(page, nil)), nil
}

func (r *candidateRepo) Delete(_ context.Context, id int64) error {
	st := r.s.st
	for _, appID := range st.applications.ids() {
		if st.applications.rows[appID].CandidateID == id {
			st.deleteApplication(appID)
		}
	}
	delete(st.candidates.rows, id)
	return nil
}

// ── applications ───────────────────────────────────────────────────────────

type applicationRepo struct{ s *Store }

func (r *applicationRepo) Create(_ context.Context, a *entity.Application) error {
	st := r.s.st
	if err := st.checkApplication(a); err != nil {
		return err
	}
	a.ID = st.applications.nextID()
	st.applications.rows[a.ID] = *a
	return nil
}

func (r *applicationRepo) GetByID(_ context.Context, id int64) (*entity.Application, error) {
	if a, ok := r.s.st.applications.rows[id]; ok {
		return &a, nil
	}
	return nil, nil
}

func (r *applicationRepo) GetByCandidateAndJob(_ context.Context, candidateID, jobOpeningID int64) (*entity.Application, error) {
	a, ok := r.s.st.applications.find(func(x entity.Application) bool {
		return x.CandidateID == candidateID && x.JobOpeningID == jobOpeningID
	})
	if !ok {
		return nil, nil
	}
	return &a, nil
}

func (r *applicationRepo) Update(_ context.Context, a *entity.Application) error {
	st := r.s.st
	if _, ok := st.applications.rows[a.ID]; !ok {
		return nil
	}
	if err := st.checkApplication(a); err != nil {
		return err
	}
	st.applications.rows[a.ID] = *a
	return nil
}

func (r *applicationRepo) List(_ context.Context, f repository.ApplicationFilter, page repository.Page) ([]*entity.Application, error) {
	return pointers(r.s.st.applications.scan(page, applicationMatch(f))), nil
}

func (r *applicationRepo) ListDetailed(_ context.Context, f repository.ApplicationFilter, page repository.Page) ([]*entity.ApplicationDetail, error) {
	rows := r.s.st.applications.scan(page, applicationMatch(f))
	out := make([]*entity.ApplicationDetail, 0, len(rows))
	for _, a := range rows {
		out = append(out, r.s.st.applicationDetail(a))
	}
	return out, nil
}

func (r *applicationRepo) GetDetail(_ context.Context, id int64) (*entity.ApplicationDetail, error) {
	a, ok := r.s.st.applications.rows[id]
	if !ok {
		return nil, nil
	}
	return r.s.st.applicationDetail(a), nil
}

func (r *applicationRepo) Delete(_ context.Context, id int64) error {
	r.s.st.deleteApplication(id)
	return nil
}

func applicationMatch(f repository.ApplicationFilter) func(entity.Application) bool {
	return func(a entity.Application) bool {
		if f.CandidateID != nil && a.CandidateID != *f.CandidateID {
			return false
		}
		if f.JobOpeningID != nil && a.JobOpeningID != *f.JobOpeningID {
			return false
		}
		return f.Status == nil || a.Status == *f.Status
	}
}

// ── interview templates ────────────────────────────────────────────────────

type interviewTemplateRepo struct{ s *Store }

func (r *interviewTemplateRepo) Create(_ context.Context, tpl *entity.InterviewTemplate) error {
	st := r.s.st
	tpl.ID = st.templates.nextID()
	header := *tpl
	header.Steps = nil
	st.templates.rows[tpl.ID] = header
	for i := range tpl.Steps {
		step := &tpl.Steps[i]
		step.ID = st.templateSteps.nextID()
		step.TemplateID = tpl.ID
		st.templateSteps.rows[step.ID] = *step
	}
	return nil
}

func (r *interviewTemplateRepo) GetByID(_ context.Context, id int64) (*entity.InterviewTemplate, error) {
	tpl, ok := r.s.st.templates.rows[id]
	if !ok {
		return nil, nil
	}
	tpl.Steps = r.s.st.stepsOf(id)
	return &tpl, nil
}

func (r *interviewTemplateRepo) Update(_ context.Context, tpl *entity.InterviewTemplate) error {
	if _, ok := r.s.st.templates.rows[tpl.ID]; ok {
		header := *tpl
		header.Steps = nil
		r.s.st.templates.rows[tpl.ID] = header
	}
	return nil
}

func (r *interviewTemplateRepo) List(_ context.Context, activeOnly bool, page repository.Page) ([]*entity.InterviewTemplate, error) {
	rows := r.s.st.templates.scan(page, func(t entity.InterviewTemplate) bool {
		return !activeOnly || t.IsActive
	})
	out := make([]*entity.InterviewTemplate, 0, len(rows))
	for _, t := range rows {
		t.Steps = r.s.st.stepsOf(t.ID)
		out = append(out, ptr(t))
	}
	return out, nil
}

func (r *interviewTemplateRepo) Delete(_ context.Context, id int64) error {
	st := r.s.st
	if _, used := st.processes.find(func(p entity.InterviewProcess) bool { return p.TemplateID == id }); used {
		return domain.ErrIntegrity
	}
	for _, jobID := range st.jobs.ids() {
		j := st.jobs.rows[jobID]
		if j.InterviewTemplateID != nil && *j.InterviewTemplateID == id {
			j.InterviewTemplateID = nil
			st.jobs.rows[jobID] = j
		}
	}
	for _, sid := range st.templateSteps.ids() {
		if st.templateSteps.rows[sid].TemplateID == id {
			delete(st.templateSteps.rows, sid)
		}
	}
	delete(st.templates.rows, id)
	return nil
}

// ── interview processes ────────────────────────────────────────────────────

type interviewProcessRepo struct{ s *Store }

func (r *interviewProcessRepo) Create(_ context.Context, p *entity.InterviewProcess) error {
	st := r.s.st
	if _, ok := st.applications.rows[p.ApplicationID]; !ok {
		return domain.ErrIntegrity
	}
	if _, dup := st.processes.find(func(x entity.InterviewProcess) bool { return x.ApplicationID == p.ApplicationID }); dup {
		return domain.ErrIntegrity
	}
	p.ID = st.processes.nextID()
	st.processes.rows[p.ID] = *p
	return nil
}

func (r *interviewProcessRepo) GetByID(_ context.Context, id int64) (*entity.InterviewProcess, error) {
	if p, ok := r.s.st.processes.rows[id]; ok {
		return &p, nil
	}
	return nil, nil
}

func (r *interviewProcessRepo) GetByApplicationID(_ context.Context, applicationID int64) (*entity.InterviewProcess, error) {
	p, ok := r.s.st.processes.find(func(x entity.InterviewProcess) bool { return x.ApplicationID == applicationID })
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (r *interviewProcessRepo) Update(_ context.Context, p *entity.InterviewProcess) error {
	if _, ok := r.s.st.processes.rows[p.ID]; ok {
		r.s.st.processes.rows[p.ID] = *p
	}
	return nil
}

func (r *interviewProcessRepo) Delete(_ context.Context, id int64) error {
	r.s.st.deleteProcess(id)
	return nil
}

func (r *interviewProcessRepo) CreateStep(_ context.Context, s *entity.InterviewStep) error {
	st := r.s.st
	if _, ok := st.processes.rows[s.ProcessID]; !ok {
		return domain.ErrIntegrity
	}
	s.ID = st.steps.nextID()
	st.steps.rows[s.ID] = *s
	return nil
}

func (r *interviewProcessRepo) GetStep(_ context.Context, id int64) (*entity.InterviewStep, error) {
	if s, ok := r.s.st.steps.rows[id]; ok {
		return &s, nil
	}
	return nil, nil
}

func (r *interviewProcessRepo) UpdateStep(_ context.Context, s *entity.InterviewStep) error {
	if _, ok := r.s.st.steps.rows[s.ID]; ok {
		r.s.st.steps.rows[s.ID] = *s
	}
	return nil
}

func (r *interviewProcessRepo) ListSteps(_ context.Context, processID int64) ([]entity.InterviewStep, error) {
	rows := r.s.st.steps.scan(repository.Page{}, func(s entity.InterviewStep) bool { return s.ProcessID == processID })
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].Order < rows[j].Order })
	return rows, nil
}

func (r *interviewProcessRepo) StepContext(_ context.Context, stepID int64) (*entity.StepContext, error) {
	st := r.s.st
	step, ok := st.steps.rows[stepID]
	if !ok {
		return nil, nil
	}
	ts := st.templateSteps.rows[step.TemplateStepID]
	sc := &entity.StepContext{
		StepName:          ts.Name,
		DurationMinutes:   ts.DurationMinutes,
		TemplateStepOrder: ts.Order,
		TemplateStepCount: len(st.stepsOf(ts.TemplateID)),
	}
	process := st.processes.rows[step.ProcessID]
	app, ok := st.applications.rows[process.ApplicationID]
	if !ok {
		return sc, nil
	}
	sc.ApplicationID = app.ID
	detail := st.applicationDetail(app)
	if c, ok := st.candidates.rows[app.CandidateID]; ok {
		sc.CandidateFirst = c.FirstName
		sc.CandidateLast = c.LastName
		sc.CandidateEmail = c.Email
	}
	sc.JobTitle = detail.JobTitle
	sc.CompanyName = detail.CompanyName
	return sc, nil
}

// ── email templates ────────────────────────────────────────────────────────

type emailTemplateRepo struct{ s *Store }

func (r *emailTemplateRepo) Create(_ context.Context, tpl *entity.EmailTemplate) error {
	t := r.s.st.emailTemplates
	if _, dup := t.find(func(x entity.EmailTemplate) bool { return x.Name == tpl.Name }); dup {
		return domain.ErrIntegrity
	}
	tpl.ID = t.nextID()
	t.rows[tpl.ID] = *tpl
	return nil
}

func (r *emailTemplateRepo) GetByID(_ context.Context, id int64) (*entity.EmailTemplate, error) {
	if t, ok := r.s.st.emailTemplates.rows[id]; ok {
		return &t, nil
	}
	return nil, nil
}

func (r *emailTemplateRepo) GetActive(_ context.Context, templateType, name string) (*entity.EmailTemplate, error) {
	t, ok := r.s.st.emailTemplates.find(func(x entity.EmailTemplate) bool {
		return x.IsActive && x.Type == templateType && (name == "" || x.Name == name)
	})
	if !ok {
		return nil, nil
	}
	return &t, nil
}

func (r *emailTemplateRepo) Update(_ context.Context, tpl *entity.EmailTemplate) error {
	t := r.s.st.emailTemplates
	if _, ok := t.rows[tpl.ID]; !ok {
		return nil
	}
	if other, dup := t.find(func(x entity.EmailTemplate) bool { return x.Name == tpl.Name }); dup && other.ID != tpl.ID {
		return domain.ErrIntegrity
	}
	t.rows[tpl.ID] = *tpl
	return nil
}

func (r *emailTemplateRepo) List(_ context.Context, f repository.EmailTemplateFilter, page repository.Page) ([]*entity.EmailTemplate, error) {
	rows := r.s.st.emailTemplates.scan(page, func(t entity.EmailTemplate) bool {
		if f.Type != "" && t.Type != f.Type {
			return false
		}
		return f.IsActive == nil || t.IsActive == *f.IsActive
	})
	return pointers(rows), nil
}

func (r *emailTemplateRepo) Delete(_ context.Context, id int64) error {
	delete(r.s.st.emailTemplates.rows, id)
	return nil
}

// ── integridad y cascadas ──────────────────────────────────────────────────

func (st *state) checkJobRefs(j *entity.JobOpening) error {
	if _, ok := st.companies.rows[j.CompanyID]; !ok {
		return domain.ErrIntegrity
	}
	if j.InterviewTemplateID != nil {
		if _, ok := st.templates.rows[*j.InterviewTemplateID]; !ok {
			return domain.ErrIntegrity
		}
	}
	return nil
}

func (st *state) checkCandidateUnique(c *entity.Candidate) error {
	_, dup := st.candidates.find(func(x entity.Candidate) bool {
		return x.ID != c.ID && (x.Email == c.Email || x.UserID == c.UserID)
	})
	if dup {
		return domain.ErrIntegrity
	}
	return nil
}

func (st *state) checkApplication(a *entity.Application) error {
	if _, ok := st.candidates.rows[a.CandidateID]; !ok {
		return domain.ErrIntegrity
	}
	if _, ok := st.jobs.rows[a.JobOpeningID]; !ok {
		return domain.ErrIntegrity
	}
	_, dup := st.applications.find(func(x entity.Application) bool {
		return x.ID != a.ID && x.CandidateID == a.CandidateID && x.JobOpeningID == a.JobOpeningID
	})
	if dup {
		return domain.ErrIntegrity
	}
	return nil
}

func (st *state) deleteJob(id int64) {
	for _, appID := range st.applications.ids() {
		if st.applications.rows[appID].JobOpeningID == id {
			st.deleteApplication(appID)
		}
	}
	delete(st.jobs.rows, id)
}

func (st *state) deleteApplication(id int64) {
	for _, pid := range st.processes.ids() {
		if st.processes.rows[pid].ApplicationID == id {
			st.deleteProcess(pid)
		}
	}
	delete(st.applications.rows, id)
}

func (st *state) deleteProcess(id int64) {
	for _, sid := range st.steps.ids() {
		if st.steps.rows[sid].ProcessID == id {
			delete(st.steps.rows, sid)
		}
	}
	delete(st.processes.rows, id)
}

func (st *state) stepsOf(templateID int64) []entity.InterviewTemplateStep {
	steps := st.templateSteps.scan(repository.Page{}, func(s entity.InterviewTemplateStep) bool {
		return s.TemplateID == templateID
	})
	sort.SliceStable(steps, func(i, j int) bool { return steps[i].Order < steps[j].Order })
	return steps
}

func (st *state) applicationDetail(a entity.Application) *entity.ApplicationDetail {
	d := &entity.ApplicationDetail{Application: a}
	if c, ok := st.candidates.rows[a.CandidateID]; ok {
		d.CandidateName = c.FullName()
		d.CandidateEmail = c.Email
	}
	if j, ok := st.jobs.rows[a.JobOpeningID]; ok {
		d.JobTitle = j.Title
		d.CompanyID = j.CompanyID
		if co, ok := st.companies.rows[j.CompanyID]; ok {
			d.CompanyName = co.Name
		}
	}
	return d
}

func pointers[T any](rows []T) []*T {
	out := make([]*T, 0, len(rows))
	for _, r := range rows {
		out = append(out, ptr(r))
	}
	return out
}
