package repository

import (
	"context"
	"time"

	"checklist-service/internal/apperror"
	"checklist-service/internal/model"
	"checklist-service/prometheus"

	"gorm.io/gorm"
)

// ServiceProviderRepository persists service providers, keyed by supplier code
type ServiceProviderRepository struct {
	db  *gorm.DB
	now Clock
}

func NewServiceProviderRepository(db *gorm.DB) *ServiceProviderRepository {
	return &ServiceProviderRepository{db: db, now: defaultClock}
}

// Create inserts a provider; an existing supplier code is a conflict
func (r *ServiceProviderRepository) Create(ctx context.Context, provider *model.ServiceProvider, actor string) error {
	provider.MarkCreated(actor, r.now())
	provider.LastUpdatedAt = nil
	provider.LastUpdatedBy = nil

	defer prometheus.TrackDBOperation("insert")(time.Now())
	err := r.db.WithContext(ctx).Create(provider).Error
	return translateWrite("create service provider", err)
}

// FindByCode loads one provider
func (r *ServiceProviderRepository) FindByCode(ctx context.Context, code string) (*model.ServiceProvider, error) {
	defer prometheus.TrackDBOperation("query")(time.Now())

	var provider model.ServiceProvider
	err := r.db.WithContext(ctx).Where("supplier_code = ?", code).First(&provider).Error
	if err != nil {
		return nil, translateRead("find service provider", err)
	}
	return &provider, nil
}

// List returns a page of providers ordered by code, and the total count
func (r *ServiceProviderRepository) List(ctx context.Context, page, limit int) ([]model.ServiceProvider, int64, error) {
	defer prometheus.TrackDBOperation("query")(time.Now())

	var total int64
	query := r.db.WithContext(ctx).Model(&model.ServiceProvider{})
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, translateRead("count service providers", err)
	}

	var providers []model.ServiceProvider
	err := query.
		Order("supplier_code ASC").
		Offset(pageOffset(page, limit)).
		Limit(limit).
		Find(&providers).Error
	if err != nil {
		return nil, 0, translateRead("list service providers", err)
	}
	return providers, total, nil
}

// Update writes the supplier name and refreshes last-updated metadata
func (r *ServiceProviderRepository) Update(ctx context.Context, provider *model.ServiceProvider, actor string) error {
	provider.MarkUpdated(actor, r.now())

	defer prometheus.TrackDBOperation("update")(time.Now())
	result := r.db.WithContext(ctx).
		Model(&model.ServiceProvider{}).
		Where("supplier_code = ?", provider.SupplierCode).
		Updates(map[string]interface{}{
			"supplier_name":   provider.SupplierName,
			"last_updated_at": provider.LastUpdatedAt,
			"last_updated_by": provider.LastUpdatedBy,
		})
	if result.Error != nil {
		return translateWrite("update service provider", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperror.ErrNotFound
	}
	return nil
}

// Delete removes a provider. Providers still referenced by a checklist are
// protected by ON DELETE RESTRICT and surface as a conflict.
func (r *ServiceProviderRepository) Delete(ctx context.Context, code string) error {
	defer prometheus.TrackDBOperation("delete")(time.Now())

	result := r.db.WithContext(ctx).Where("supplier_code = ?", code).Delete(&model.ServiceProvider{})
	if result.Error != nil {
		return translateDelete("delete service provider", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperror.ErrNotFound
	}
	return nil
}
