package model

// Checklist records whether a supplier has delivered a named document for a
// project. (ProjectID, SupplierCode, DocumentName) is unique.
type Checklist struct {
	ID           string `gorm:"type:varchar(36);primaryKey"`
	ProjectID    string `gorm:"type:varchar(36);not null;uniqueIndex:idx_checklist_project_supplier_document,priority:1"`
	SupplierCode string `gorm:"column:supplier_code;type:varchar(50);not null;index;uniqueIndex:idx_checklist_project_supplier_document,priority:2"`
	DocumentName string `gorm:"type:varchar(200);not null;uniqueIndex:idx_checklist_project_supplier_document,priority:3"`
	IsChecked    bool   `gorm:"not null;default:false"`
	AuditFields  `gorm:"embedded"`

	// Relations
	ServiceProvider *ServiceProvider `gorm:"foreignKey:SupplierCode;references:SupplierCode;constraint:OnDelete:RESTRICT,OnUpdate:CASCADE"`
}

func (Checklist) TableName() string {
	return "checklists"
}
