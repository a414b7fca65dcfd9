package model

import "time"

// SystemActor is recorded when a write carries no caller identity
const SystemActor = "system"

// AuditFields is embedded in every persisted entity. Only the repository
// save path writes these columns.
type AuditFields struct {
	CreatedAt     time.Time  `gorm:"not null"`
	CreatedBy     string     `gorm:"type:varchar(100);not null"`
	LastUpdatedAt *time.Time `gorm:"index"`
	LastUpdatedBy *string    `gorm:"type:varchar(100)"`
}

// ResolveActor returns actor, or SystemActor when actor is empty
func ResolveActor(actor string) string {
	if actor == "" {
		return SystemActor
	}
	return actor
}

// MarkCreated stamps creation metadata. Used on the insert path only.
func (a *AuditFields) MarkCreated(actor string, at time.Time) {
	a.CreatedAt = at
	a.CreatedBy = ResolveActor(actor)
}

// MarkUpdated stamps modification metadata and leaves creation metadata alone.
func (a *AuditFields) MarkUpdated(actor string, at time.Time) {
	by := ResolveActor(actor)
	a.LastUpdatedAt = &at
	a.LastUpdatedBy = &by
}
