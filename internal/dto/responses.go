package dto

import (
	"time"

	"checklist-service/internal/model"
)

// AuditResponse is flattened into every entity representation
type AuditResponse struct {
	CreatedAt     time.Time  `json:"createdAt"`
	CreatedBy     string     `json:"createdBy"`
	LastUpdatedAt *time.Time `json:"lastUpdatedAt,omitempty"`
	LastUpdatedBy *string    `json:"lastUpdatedBy,omitempty"`
}

type ProjectResponse struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Region string `json:"region"`
	AuditResponse
	Checklists []ChecklistResponse `json:"checklists"`
}

// ProjectSummaryResponse is a project without its checklists, used in listings
type ProjectSummaryResponse struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Region string `json:"region"`
	AuditResponse
}

type ChecklistResponse struct {
	ID           string `json:"id"`
	ProjectID    string `json:"projectId"`
	SupplierCode string `json:"supplierCode"`
	SupplierName string `json:"supplierName,omitempty"`
	DocumentName string `json:"documentName"`
	IsChecked    bool   `json:"isChecked"`
	AuditResponse
}

type ServiceProviderResponse struct {
	SupplierCode string `json:"supplierCode"`
	SupplierName string `json:"supplierName"`
	AuditResponse
}

type Pagination struct {
	CurrentPage int   `json:"currentPage"`
	Limit       int   `json:"limit"`
	Total       int64 `json:"total"`
	TotalPages  int   `json:"totalPages"`
}

type ProjectListResponse struct {
	Projects   []ProjectSummaryResponse `json:"projects"`
	Pagination Pagination               `json:"pagination"`
}

type ServiceProviderListResponse struct {
	ServiceProviders []ServiceProviderResponse `json:"serviceProviders"`
	Pagination       Pagination                `json:"pagination"`
}

func NewPagination(page, limit int, total int64) Pagination {
	pages := 0
	if limit > 0 {
		pages = (int(total) + limit - 1) / limit
	}
	return Pagination{CurrentPage: page, Limit: limit, Total: total, TotalPages: pages}
}

func toAuditResponse(a model.AuditFields) AuditResponse {
	return AuditResponse{
		CreatedAt:     a.CreatedAt,
		CreatedBy:     a.CreatedBy,
		LastUpdatedAt: a.LastUpdatedAt,
		LastUpdatedBy: a.LastUpdatedBy,
	}
}

// ToProjectResponse maps a project and its loaded checklists
func ToProjectResponse(p *model.Project) ProjectResponse {
	return ProjectResponse{
		ID:            p.ID,
		Name:          p.Name,
		Region:        p.Region,
		AuditResponse: toAuditResponse(p.AuditFields),
		Checklists:    ToChecklistResponses(p.Checklists),
	}
}

func ToProjectSummaryResponse(p *model.Project) ProjectSummaryResponse {
	return ProjectSummaryResponse{
		ID:            p.ID,
		Name:          p.Name,
		Region:        p.Region,
		AuditResponse: toAuditResponse(p.AuditFields),
	}
}

func ToProjectListResponse(projects []model.Project, page, limit int, total int64) ProjectListResponse {
	out := make([]ProjectSummaryResponse, 0, len(projects))
	for i := range projects {
		out = append(out, ToProjectSummaryResponse(&projects[i]))
	}
	return ProjectListResponse{Projects: out, Pagination: NewPagination(page, limit, total)}
}

func ToChecklistResponse(c *model.Checklist) ChecklistResponse {
	resp := ChecklistResponse{
		ID:            c.ID,
		ProjectID:     c.ProjectID,
		SupplierCode:  c.SupplierCode,
		DocumentName:  c.DocumentName,
		IsChecked:     c.IsChecked,
		AuditResponse: toAuditResponse(c.AuditFields),
	}
	if c.ServiceProvider != nil {
		resp.SupplierName = c.ServiceProvider.SupplierName
	}
	return resp
}

// ToChecklistResponses never returns nil so empty lists encode as []
func ToChecklistResponses(checklists []model.Checklist) []ChecklistResponse {
	out := make([]ChecklistResponse, 0, len(checklists))
	for i := range checklists {
		out = append(out, ToChecklistResponse(&checklists[i]))
	}
	return out
}

func ToServiceProviderResponse(sp *model.ServiceProvider) ServiceProviderResponse {
	return ServiceProviderResponse{
		SupplierCode:  sp.SupplierCode,
		SupplierName:  sp.SupplierName,
		AuditResponse: toAuditResponse(sp.AuditFields),
	}
}

func ToServiceProviderListResponse(providers []model.ServiceProvider, page, limit int, total int64) ServiceProviderListResponse {
	out := make([]ServiceProviderResponse, 0, len(providers))
	for i := range providers {
		out = append(out, ToServiceProviderResponse(&providers[i]))
	}
	return ServiceProviderListResponse{ServiceProviders: out, Pagination: NewPagination(page, limit, total)}
}
