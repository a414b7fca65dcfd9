package repository

import (
	"context"
	"time"

	"checklist-service/internal/apperror"
	"checklist-service/internal/model"
	"checklist-service/prometheus"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ChecklistRepository persists checklists
type ChecklistRepository struct {
	db  *gorm.DB
	now Clock
}

func NewChecklistRepository(db *gorm.DB) *ChecklistRepository {
	return &ChecklistRepository{db: db, now: defaultClock}
}

// Create inserts the checklist in one transaction with its provider. When
// provider is non-nil it is inserted only if the supplier code is unknown;
// an existing provider row is left untouched. A duplicate
// (project, supplier, document) triple is a conflict.
func (r *ChecklistRepository) Create(ctx context.Context, checklist *model.Checklist, provider *model.ServiceProvider, actor string) error {
	now := r.now()
	if checklist.ID == "" {
		checklist.ID = uuid.NewString()
	}
	checklist.MarkCreated(actor, now)
	checklist.LastUpdatedAt = nil
	checklist.LastUpdatedBy = nil

	defer prometheus.TrackDBOperation("insert")(time.Now())
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if provider != nil {
			provider.MarkCreated(actor, now)
			if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(provider).Error; err != nil {
				return err
			}
		}
		return tx.Omit(clause.Associations).Create(checklist).Error
	})
	return translateWrite("create checklist", err)
}

// FindByID loads one checklist with its provider
func (r *ChecklistRepository) FindByID(ctx context.Context, id string) (*model.Checklist, error) {
	defer prometheus.TrackDBOperation("query")(time.Now())

	var checklist model.Checklist
	err := r.db.WithContext(ctx).
		Preload("ServiceProvider").
		Where("id = ?", id).
		First(&checklist).Error
	if err != nil {
		return nil, translateRead("find checklist", err)
	}
	return &checklist, nil
}

// ListByProject returns the checklists of one project, oldest first
func (r *ChecklistRepository) ListByProject(ctx context.Context, projectID string) ([]model.Checklist, error) {
	defer prometheus.TrackDBOperation("query")(time.Now())

	var checklists []model.Checklist
	err := r.db.WithContext(ctx).
		Preload("ServiceProvider").
		Where("project_id = ?", projectID).
		Order("created_at ASC, id ASC").
		Find(&checklists).Error
	if err != nil {
		return nil, translateRead("list checklists", err)
	}
	return checklists, nil
}

// Update writes the mutable columns and refreshes last-updated metadata
func (r *ChecklistRepository) Update(ctx context.Context, checklist *model.Checklist, actor string) error {
	checklist.MarkUpdated(actor, r.now())

	defer prometheus.TrackDBOperation("update")(time.Now())
	result := r.db.WithContext(ctx).
		Model(&model.Checklist{}).
		Where("id = ?", checklist.ID).
		Updates(map[string]interface{}{
			"document_name":   checklist.DocumentName,
			"is_checked":      checklist.IsChecked,
			"last_updated_at": checklist.LastUpdatedAt,
			"last_updated_by": checklist.LastUpdatedBy,
		})
	if result.Error != nil {
		return translateWrite("update checklist", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperror.ErrNotFound
	}
	return nil
}

// Delete removes one checklist
func (r *ChecklistRepository) Delete(ctx context.Context, id string) error {
	defer prometheus.TrackDBOperation("delete")(time.Now())

	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Checklist{})
	if result.Error != nil {
		return translateDelete("delete checklist", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperror.ErrNotFound
	}
	return nil
}
