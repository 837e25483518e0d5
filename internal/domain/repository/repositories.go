package repository

// Repositories conjunto de repositorios atados a una misma transacción.
type Repositories struct {
	Users              UserRepository
	Companies          CompanyRepository
	JobOpenings        JobOpeningRepository
	Candidates         CandidateRepository
	Applications       ApplicationRepository
	InterviewTemplates InterviewTemplateRepository
	InterviewProcesses InterviewProcessRepository
	EmailTemplates     EmailTemplateRepository
}
