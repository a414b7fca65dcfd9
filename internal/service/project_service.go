package service

import (
	"context"
	"errors"

	"checklist-service/internal/apperror"
	"checklist-service/internal/dto"
	"checklist-service/internal/model"
	"checklist-service/prometheus"
)

// ProjectService implements project use cases
type ProjectService struct {
	projects ProjectRepository
	validate Validator
}

func NewProjectService(projects ProjectRepository, validate Validator) *ProjectService {
	return &ProjectService{projects: projects, validate: validate}
}

// Create validates the request and stores a new project attributed to actor
func (s *ProjectService) Create(ctx context.Context, req dto.CreateProjectRequest, actor string) (*model.Project, error) {
	prometheus.RecordOperation("project", "create")

	if err := s.validate.Validate(&req); err != nil {
		return nil, err
	}

	project := &model.Project{
		Name:       req.Name,
		Region:     req.Region,
		Checklists: []model.Checklist{},
	}
	if err := s.projects.Create(ctx, project, actor); err != nil {
		return nil, err
	}
	return project, nil
}

// Get returns the project with its checklists
func (s *ProjectService) Get(ctx context.Context, id string) (*model.Project, error) {
	prometheus.RecordOperation("project", "get")
	return s.projects.FindByID(ctx, id)
}

// List returns one page of projects plus the total count
func (s *ProjectService) List(ctx context.Context, page, limit int) ([]model.Project, int64, error) {
	prometheus.RecordOperation("project", "list")
	page, limit = NormalizePage(page, limit)
	return s.projects.List(ctx, page, limit)
}

// Update applies the provided fields to an existing project
func (s *ProjectService) Update(ctx context.Context, id string, req dto.UpdateProjectRequest, actor string) (*model.Project, error) {
	prometheus.RecordOperation("project", "update")

	if err := s.validate.Validate(&req); err != nil {
		return nil, err
	}
	if req.Name == nil && req.Region == nil {
		return nil, apperror.NewValidationError("body", "at least one of name, region must be provided")
	}

	project, err := s.projects.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		project.Name = *req.Name
	}
	if req.Region != nil {
		project.Region = *req.Region
	}

	if err := s.projects.Update(ctx, project, actor); err != nil {
		return nil, err
	}
	return project, nil
}

// Delete removes the project and, through the store, its checklists
func (s *ProjectService) Delete(ctx context.Context, id string) error {
	prometheus.RecordOperation("project", "delete")

	err := s.projects.Delete(ctx, id)
	if errors.Is(err, apperror.ErrConflict) {
		prometheus.RecordConflict("project")
	}
	return err
}
