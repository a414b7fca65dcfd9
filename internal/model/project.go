package model

// Project groups the document checklists collected for one piece of work
type Project struct {
	ID          string `gorm:"type:varchar(36);primaryKey"`
	Name        string `gorm:"type:varchar(200);not null"`
	Region      string `gorm:"type:varchar(100);not null;index"`
	AuditFields `gorm:"embedded"`

	Checklists []Checklist `gorm:"foreignKey:ProjectID;references:ID;constraint:OnDelete:CASCADE,OnUpdate:CASCADE"`
}

func (Project) TableName() string {
	return "projects"
}
