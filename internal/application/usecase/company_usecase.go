package usecase

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/jhoicas/recruitment-api/internal/application/dto"
	"github.com/jhoicas/recruitment-api/internal/application/ports"
	"github.com/jhoicas/recruitment-api/internal/domain"
	"github.com/jhoicas/recruitment-api/internal/domain/entity"
	"github.com/jhoicas/recruitment-api/internal/domain/policy"
	"github.com/jhoicas/recruitment-api/internal/domain/repository"
)

// CompanyUseCase aplica reglas de negocio para empresas (casos de uso).
type CompanyUseCase struct {
	tx  ports.TxRunner
	log zerolog.Logger
}

// NewCompanyUseCase construye el caso de uso con el runner transaccional.
func NewCompanyUseCase(tx ports.TxRunner, log zerolog.Logger) *CompanyUseCase {
	return &CompanyUseCase{tx: tx, log: log}
}

// Create crea una nueva empresa activa sellando la auditoría con el actor.
func (uc *CompanyUseCase) Create(ctx context.Context, actor *entity.User, in dto.CreateCompanyRequest) (*dto.CompanyResponse, error) {
	if err := authorize(actor, policy.Create, policy.Company); err != nil {
		return nil, err
	}
	company := &entity.Company{
		Name:        in.Name,
		Industry:    in.Industry,
		Location:    in.Location,
		Website:     in.Website,
		Description: in.Description,
		Active:      true,
	}
	company.StampCreated(actor.ActorID(), time.Now().UTC())

	err := uc.tx.Run(ctx, func(repos repository.Repositories) error {
		return repos.Companies.Create(ctx, company)
	})
	if err != nil {
		uc.log.Error().Err(err).Str("name", in.Name).Msg("crear empresa")
		return nil, err
	}
	uc.log.Info().Int64("company_id", company.ID).Int64("actor_id", actor.ID).Msg("empresa creada")
	return entityToCompanyResponse(company), nil
}

// GetByID obtiene una empresa por ID; ErrNotFound si no existe.
func (uc *CompanyUseCase) GetByID(ctx context.Context, id int64) (*dto.CompanyResponse, error) {
	var company *entity.Company
	err := uc.tx.Run(ctx, func(repos repository.Repositories) error {
		var err error
		company, err = mustCompany(ctx, repos, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return entityToCompanyResponse(company), nil
}

// List lista empresas en orden de inserción.
func (uc *CompanyUseCase) List(ctx context.Context, page repository.Page) (*dto.CompanyListResponse, error) {
	var list []*entity.Company
	err := uc.tx.Run(ctx, func(repos repository.Repositories) error {
		var err error
		list, err = repos.Companies.List(ctx, page)
		return err
	})
	if err != nil {
		return nil, err
	}
	items := make([]dto.CompanyResponse, 0, len(list))
	for _, c := range list {
		items = append(items, *entityToCompanyResponse(c))
	}
	return &dto.CompanyListResponse{Items: items, Page: pageResponse(page)}, nil
}

// Update reemplaza los campos presentes y vuelve a sellar el actualizador.
func (uc *CompanyUseCase) Update(ctx context.Context, actor *entity.User, id int64, in dto.UpdateCompanyRequest) (*dto.CompanyResponse, error) {
	if err := authorize(actor, policy.Update, policy.Company); err != nil {
		return nil, err
	}
	var company *entity.Company
	err := uc.tx.Run(ctx, func(repos repository.Repositories) error {
		var err error
		company, err = mustCompany(ctx, repos, id)
		if err != nil {
			return err
		}
		setString(&company.Name, in.Name)
		setString(&company.Industry, in.Industry)
		setString(&company.Location, in.Location)
		setString(&company.Website, in.Website)
		setString(&company.Description, in.Description)
		if in.Active != nil {
			company.Active = *in.Active
		}
		company.StampUpdated(actor.ActorID(), time.Now().UTC())
		return repos.Companies.Update(ctx, company)
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Int64("company_id", id).Int64("actor_id", actor.ID).Msg("empresa actualizada")
	return entityToCompanyResponse(company), nil
}

// Delete elimina la empresa; las vacantes, postulaciones y procesos caen en cascada.
func (uc *CompanyUseCase) Delete(ctx context.Context, actor *entity.User, id int64) error {
	if err := authorize(actor, policy.Delete, policy.Company); err != nil {
		return err
	}
	err := uc.tx.Run(ctx, func(repos repository.Repositories) error {
		if _, err := mustCompany(ctx, repos, id); err != nil {
			return err
		}
		return repos.Companies.Delete(ctx, id)
	})
	if err != nil {
		return err
	}
	uc.log.Info().Int64("company_id", id).Int64("actor_id", actor.ID).Msg("empresa eliminada")
	return nil
}

func mustCompany(ctx context.Context, repos repository.Repositories, id int64) (*entity.Company, error) {
	company, err := repos.Companies.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, domain.NotFound("Company")
	}
	return company, nil
}

func entityToCompanyResponse(c *entity.Company) *dto.CompanyResponse {
	if c == nil {
		return nil
	}
	return &dto.CompanyResponse{
		ID:          c.ID,
		Name:        c.Name,
		Industry:    c.Industry,
		Location:    c.Location,
		Website:     c.Website,
		Description: c.Description,
		Active:      c.Active,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
		CreatedByID: c.CreatedByID,
		UpdatedByID: c.UpdatedByID,
	}
}
