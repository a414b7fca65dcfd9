package model

// ServiceProvider is a supplier identified by its supplier code
type ServiceProvider struct {
	SupplierCode string `gorm:"column:supplier_code;type:varchar(50);primaryKey"`
	SupplierName string `gorm:"column:supplier_name;type:varchar(200);not null"`
	AuditFields  `gorm:"embedded"`
}

func (ServiceProvider) TableName() string {
	return "service_providers"
}
