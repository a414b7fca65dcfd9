package dto

// CreateProjectRequest is the body of POST /projects
type CreateProjectRequest struct {
	Name   string `json:"name" validate:"required,notblank,max=200"`
	Region string `json:"region" validate:"required,notblank,max=100"`
}

// UpdateProjectRequest is the body of PUT /projects/:id. Absent fields are
// left unchanged.
type UpdateProjectRequest struct {
	Name   *string `json:"name" validate:"omitnil,notblank,max=200"`
	Region *string `json:"region" validate:"omitnil,notblank,max=100"`
}

// CreateServiceProviderRequest is the body of POST /service-providers
type CreateServiceProviderRequest struct {
	SupplierCode string `json:"supplierCode" validate:"required,notblank,max=50"`
	SupplierName string `json:"supplierName" validate:"required,notblank,max=200"`
}

// UpdateServiceProviderRequest is the body of PUT /service-providers/:code
type UpdateServiceProviderRequest struct {
	SupplierName *string `json:"supplierName" validate:"omitnil,notblank,max=200"`
}

// CreateChecklistRequest is the body of POST /projects/:id/checklists.
// SupplierName is only used when the supplier code is seen for the first time.
type CreateChecklistRequest struct {
	SupplierCode string `json:"supplierCode" validate:"required,notblank,max=50"`
	DocumentName string `json:"documentName" validate:"required,notblank,max=200"`
	IsChecked    bool   `json:"isChecked"`
	SupplierName string `json:"supplierName" validate:"max=200"`
}

// UpdateChecklistRequest is the body of PUT /checklists/:id
type UpdateChecklistRequest struct {
	IsChecked    *bool   `json:"isChecked"`
	DocumentName *string `json:"documentName" validate:"omitnil,notblank,max=200"`
}
