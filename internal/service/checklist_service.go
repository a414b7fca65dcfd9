package service

import (
	"context"
	"errors"

	"checklist-service/internal/apperror"
	"checklist-service/internal/dto"
	"checklist-service/internal/model"
	"checklist-service/prometheus"
)

// ChecklistService implements checklist use cases
type ChecklistService struct {
	checklists ChecklistRepository
	projects   ProjectRepository
	validate   Validator
}

func NewChecklistService(checklists ChecklistRepository, projects ProjectRepository, validate Validator) *ChecklistService {
	return &ChecklistService{checklists: checklists, projects: projects, validate: validate}
}

// Create adds a checklist to a project. An unknown supplier code registers
// the provider in the same unit of work, named after SupplierName or, when
// that is empty, the code itself.
func (s *ChecklistService) Create(ctx context.Context, projectID string, req dto.CreateChecklistRequest, actor string) (*model.Checklist, error) {
	prometheus.RecordOperation("checklist", "create")

	if err := s.validate.Validate(&req); err != nil {
		return nil, err
	}
	if err := s.requireProject(ctx, projectID); err != nil {
		return nil, err
	}

	supplierName := req.SupplierName
	if supplierName == "" {
		supplierName = req.SupplierCode
	}
	provider := &model.ServiceProvider{
		SupplierCode: req.SupplierCode,
		SupplierName: supplierName,
	}
	checklist := &model.Checklist{
		ProjectID:    projectID,
		SupplierCode: req.SupplierCode,
		DocumentName: req.DocumentName,
		IsChecked:    req.IsChecked,
	}

	if err := s.checklists.Create(ctx, checklist, provider, actor); err != nil {
		if errors.Is(err, apperror.ErrConflict) {
			prometheus.RecordConflict("checklist")
		}
		return nil, err
	}

	// reload so the representation carries the stored provider name
	return s.checklists.FindByID(ctx, checklist.ID)
}

// ListByProject returns the checklists of an existing project
func (s *ChecklistService) ListByProject(ctx context.Context, projectID string) ([]model.Checklist, error) {
	prometheus.RecordOperation("checklist", "list")

	if err := s.requireProject(ctx, projectID); err != nil {
		return nil, err
	}
	return s.checklists.ListByProject(ctx, projectID)
}

func (s *ChecklistService) Get(ctx context.Context, id string) (*model.Checklist, error) {
	prometheus.RecordOperation("checklist", "get")
	return s.checklists.FindByID(ctx, id)
}

// Update applies the provided fields. Renaming the document onto an
// existing (project, supplier, document) triple is a conflict.
func (s *ChecklistService) Update(ctx context.Context, id string, req dto.UpdateChecklistRequest, actor string) (*model.Checklist, error) {
	prometheus.RecordOperation("checklist", "update")

	if err := s.validate.Validate(&req); err != nil {
		return nil, err
	}
	if req.IsChecked == nil && req.DocumentName == nil {
		return nil, apperror.NewValidationError("body", "at least one of isChecked, documentName must be provided")
	}

	checklist, err := s.checklists.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.IsChecked != nil {
		checklist.IsChecked = *req.IsChecked
	}
	if req.DocumentName != nil {
		checklist.DocumentName = *req.DocumentName
	}

	if err := s.checklists.Update(ctx, checklist, actor); err != nil {
		if errors.Is(err, apperror.ErrConflict) {
			prometheus.RecordConflict("checklist")
		}
		return nil, err
	}
	return checklist, nil
}

func (s *ChecklistService) Delete(ctx context.Context, id string) error {
	prometheus.RecordOperation("checklist", "delete")
	return s.checklists.Delete(ctx, id)
}

func (s *ChecklistService) requireProject(ctx context.Context, projectID string) error {
	exists, err := s.projects.Exists(ctx, projectID)
	if err != nil {
		return err
	}
	if !exists {
		return apperror.ErrNotFound
	}
	return nil
}
