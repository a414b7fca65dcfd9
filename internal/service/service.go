package service

import (
	"context"

	"checklist-service/internal/model"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// ProjectRepository is the storage the project service needs
type ProjectRepository interface {
	Create(ctx context.Context, project *model.Project, actor string) error
	FindByID(ctx context.Context, id string) (*model.Project, error)
	Exists(ctx context.Context, id string) (bool, error)
	List(ctx context.Context, page, limit int) ([]model.Project, int64, error)
	Update(ctx context.Context, project *model.Project, actor string) error
	Delete(ctx context.Context, id string) error
}

// ServiceProviderRepository is the storage the provider service needs
type ServiceProviderRepository interface {
	Create(ctx context.Context, provider *model.ServiceProvider, actor string) error
	FindByCode(ctx context.Context, code string) (*model.ServiceProvider, error)
	List(ctx context.Context, page, limit int) ([]model.ServiceProvider, int64, error)
	Update(ctx context.Context, provider *model.ServiceProvider, actor string) error
	Delete(ctx context.Context, code string) error
}

// ChecklistRepository is the storage the checklist service needs
type ChecklistRepository interface {
	Create(ctx context.Context, checklist *model.Checklist, provider *model.ServiceProvider, actor string) error
	FindByID(ctx context.Context, id string) (*model.Checklist, error)
	ListByProject(ctx context.Context, projectID string) ([]model.Checklist, error)
	Update(ctx context.Context, checklist *model.Checklist, actor string) error
	Delete(ctx context.Context, id string) error
}

// Validator checks request structs against their declared rules
type Validator interface {
	Validate(i interface{}) error
}

// Services groups the application services
type Services struct {
	Project         *ProjectService
	ServiceProvider *ServiceProviderService
	Checklist       *ChecklistService
}

// NewServices wires the application services over the given repositories
func NewServices(projects ProjectRepository, providers ServiceProviderRepository, checklists ChecklistRepository, validate Validator) *Services {
	return &Services{
		Project:         NewProjectService(projects, validate),
		ServiceProvider: NewServiceProviderService(providers, validate),
		Checklist:       NewChecklistService(checklists, projects, validate),
	}
}

// NormalizePage clamps pagination parameters to the supported range
func NormalizePage(page, limit int) (int, int) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 || limit > maxPageSize {
		limit = defaultPageSize
	}
	return page, limit
}
