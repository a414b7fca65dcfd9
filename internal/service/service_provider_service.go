package service

import (
	"context"
	"errors"

	"checklist-service/internal/apperror"
	"checklist-service/internal/dto"
	"checklist-service/internal/model"
	"checklist-service/prometheus"
)

// ServiceProviderService implements service provider use cases
type ServiceProviderService struct {
	providers ServiceProviderRepository
	validate  Validator
}

func NewServiceProviderService(providers ServiceProviderRepository, validate Validator) *ServiceProviderService {
	return &ServiceProviderService{providers: providers, validate: validate}
}

// Register stores a new provider; the supplier code must be unused
func (s *ServiceProviderService) Register(ctx context.Context, req dto.CreateServiceProviderRequest, actor string) (*model.ServiceProvider, error) {
	prometheus.RecordOperation("service_provider", "create")

	if err := s.validate.Validate(&req); err != nil {
		return nil, err
	}

	provider := &model.ServiceProvider{
		SupplierCode: req.SupplierCode,
		SupplierName: req.SupplierName,
	}
	if err := s.providers.Create(ctx, provider, actor); err != nil {
		if errors.Is(err, apperror.ErrConflict) {
			prometheus.RecordConflict("service_provider")
		}
		return nil, err
	}
	return provider, nil
}

func (s *ServiceProviderService) Get(ctx context.Context, code string) (*model.ServiceProvider, error) {
	prometheus.RecordOperation("service_provider", "get")
	return s.providers.FindByCode(ctx, code)
}

func (s *ServiceProviderService) List(ctx context.Context, page, limit int) ([]model.ServiceProvider, int64, error) {
	prometheus.RecordOperation("service_provider", "list")
	page, limit = NormalizePage(page, limit)
	return s.providers.List(ctx, page, limit)
}

// Update renames a provider
func (s *ServiceProviderService) Update(ctx context.Context, code string, req dto.UpdateServiceProviderRequest, actor string) (*model.ServiceProvider, error) {
	prometheus.RecordOperation("service_provider", "update")

	if err := s.validate.Validate(&req); err != nil {
		return nil, err
	}
	if req.SupplierName == nil {
		return nil, apperror.NewValidationError("supplierName", "is required")
	}

	provider, err := s.providers.FindByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	provider.SupplierName = *req.SupplierName

	if err := s.providers.Update(ctx, provider, actor); err != nil {
		return nil, err
	}
	return provider, nil
}

// Delete removes a provider that no checklist references
func (s *ServiceProviderService) Delete(ctx context.Context, code string) error {
	prometheus.RecordOperation("service_provider", "delete")

	err := s.providers.Delete(ctx, code)
	if errors.Is(err, apperror.ErrConflict) {
		prometheus.RecordConflict("service_provider")
	}
	return err
}
