package repository

import (
	"errors"
	"fmt"
	"time"

	"checklist-service/internal/apperror"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// PostgreSQL SQLSTATE codes for constraint violations
const (
	uniqueViolation     = "23505"
	foreignKeyViolation = "23503"
)

// Clock supplies the timestamp used for audit stamping
type Clock func() time.Time

// defaultClock matches PostgreSQL's microsecond timestamp precision so a
// stamped value reads back unchanged.
func defaultClock() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}

// Repositories groups the repositories backed by one connection pool
type Repositories struct {
	Project         *ProjectRepository
	ServiceProvider *ServiceProviderRepository
	Checklist       *ChecklistRepository
}

// NewRepositories creates all repositories for db
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		Project:         NewProjectRepository(db),
		ServiceProvider: NewServiceProviderRepository(db),
		Checklist:       NewChecklistRepository(db),
	}
}

// WithClock swaps the audit clock on every repository
func (r *Repositories) WithClock(clock Clock) *Repositories {
	r.Project.now = clock
	r.ServiceProvider.now = clock
	r.Checklist.now = clock
	return r
}

func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

func isForeignKeyViolation(err error) bool {
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == foreignKeyViolation
}

// translateWrite classifies an insert/update failure. A missing parent row
// surfaces as not found.
func translateWrite(op string, err error) error {
	switch {
	case err == nil:
		return nil
	case isUniqueViolation(err):
		return fmt.Errorf("%s: %w", op, apperror.ErrConflict)
	case isForeignKeyViolation(err):
		return fmt.Errorf("%s: %w", op, apperror.ErrNotFound)
	default:
		return fmt.Errorf("%s: %w", op, err)
	}
}

// translateDelete classifies a delete failure. A row that is still
// referenced surfaces as a conflict.
func translateDelete(op string, err error) error {
	switch {
	case err == nil:
		return nil
	case isForeignKeyViolation(err):
		return fmt.Errorf("%s: %w", op, apperror.ErrConflict)
	default:
		return fmt.Errorf("%s: %w", op, err)
	}
}

// translateRead maps a missing row to apperror.ErrNotFound
func translateRead(op string, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return fmt.Errorf("%s: %w", op, apperror.ErrNotFound)
	default:
		return fmt.Errorf("%s: %w", op, err)
	}
}

func pageOffset(page, limit int) int {
	if page < 1 {
		page = 1
	}
	return (page - 1) * limit
}
