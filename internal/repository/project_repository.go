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

// ProjectRepository persists projects
type ProjectRepository struct {
	db  *gorm.DB
	now Clock
}

func NewProjectRepository(db *gorm.DB) *ProjectRepository {
	return &ProjectRepository{db: db, now: defaultClock}
}

// Create assigns an id when missing, stamps creation metadata and inserts
// the project. Child checklists are never written through this call.
func (r *ProjectRepository) Create(ctx context.Context, project *model.Project, actor string) error {
	if project.ID == "" {
		project.ID = uuid.NewString()
	}
	project.MarkCreated(actor, r.now())
	project.LastUpdatedAt = nil
	project.LastUpdatedBy = nil

	defer prometheus.TrackDBOperation("insert")(time.Now())
	err := r.db.WithContext(ctx).Omit(clause.Associations).Create(project).Error
	return translateWrite("create project", err)
}

// FindByID loads a project with its checklists, oldest first
func (r *ProjectRepository) FindByID(ctx context.Context, id string) (*model.Project, error) {
	defer prometheus.TrackDBOperation("query")(time.Now())

	var project model.Project
	err := r.db.WithContext(ctx).
		Preload("Checklists", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC, id ASC")
		}).
		Preload("Checklists.ServiceProvider").
		Where("id = ?", id).
		First(&project).Error
	if err != nil {
		return nil, translateRead("find project", err)
	}
	return &project, nil
}

// Exists reports whether a project with id is stored
func (r *ProjectRepository) Exists(ctx context.Context, id string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Project{}).Where("id = ?", id).Count(&count).Error
	if err != nil {
		return false, translateRead("count project", err)
	}
	return count > 0, nil
}

// List returns a page of projects, newest first, and the total count
func (r *ProjectRepository) List(ctx context.Context, page, limit int) ([]model.Project, int64, error) {
	defer prometheus.TrackDBOperation("query")(time.Now())

	var total int64
	query := r.db.WithContext(ctx).Model(&model.Project{})
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, translateRead("count projects", err)
	}

	var projects []model.Project
	err := query.
		Order("created_at DESC, id ASC").
		Offset(pageOffset(page, limit)).
		Limit(limit).
		Find(&projects).Error
	if err != nil {
		return nil, 0, translateRead("list projects", err)
	}
	return projects, total, nil
}

// Update writes the mutable columns and refreshes last-updated metadata.
// Creation metadata is never part of the statement.
func (r *ProjectRepository) Update(ctx context.Context, project *model.Project, actor string) error {
	project.MarkUpdated(actor, r.now())

	defer prometheus.TrackDBOperation("update")(time.Now())
	result := r.db.WithContext(ctx).
		Model(&model.Project{}).
		Where("id = ?", project.ID).
		Updates(map[string]interface{}{
			"name":            project.Name,
			"region":          project.Region,
			"last_updated_at": project.LastUpdatedAt,
			"last_updated_by": project.LastUpdatedBy,
		})
	if result.Error != nil {
		return translateWrite("update project", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperror.ErrNotFound
	}
	return nil
}

// Delete removes the project; its checklists go with it via ON DELETE CASCADE
func (r *ProjectRepository) Delete(ctx context.Context, id string) error {
	defer prometheus.TrackDBOperation("delete")(time.Now())

	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Project{})
	if result.Error != nil {
		return translateDelete("delete project", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperror.ErrNotFound
	}
	return nil
}
