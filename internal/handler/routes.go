package handler

import (
	"checklist-service/internal/service"

	"github.com/labstack/echo/v4"
)

// Handlers groups the HTTP handlers of the service
type Handlers struct {
	Project         *ProjectHandler
	ServiceProvider *ServiceProviderHandler
	Checklist       *ChecklistHandler
}

// NewHandlers builds the handlers over the application services
func NewHandlers(svcs *service.Services) *Handlers {
	return &Handlers{
		Project:         NewProjectHandler(svcs.Project),
		ServiceProvider: NewServiceProviderHandler(svcs.ServiceProvider),
		Checklist:       NewChecklistHandler(svcs.Checklist),
	}
}

// RegisterRoutes mounts the API on g
func (h *Handlers) RegisterRoutes(g *echo.Group) {
	projects := g.Group("/projects")
	projects.POST("", h.Project.CreateProject)
	projects.GET("", h.Project.ListProjects)
	projects.GET("/:id", h.Project.GetProject)
	projects.PUT("/:id", h.Project.UpdateProject)
	projects.DELETE("/:id", h.Project.DeleteProject)

	projects.POST("/:id/checklists", h.Checklist.CreateChecklist)
	projects.GET("/:id/checklists", h.Checklist.ListChecklists)
	projects.GET("/:id/checklists/export", h.Checklist.ExportChecklists)

	checklists := g.Group("/checklists")
	checklists.GET("/:id", h.Checklist.GetChecklist)
	checklists.PUT("/:id", h.Checklist.UpdateChecklist)
	checklists.DELETE("/:id", h.Checklist.DeleteChecklist)

	providers := g.Group("/service-providers")
	providers.POST("", h.ServiceProvider.CreateServiceProvider)
	providers.GET("", h.ServiceProvider.ListServiceProviders)
	providers.GET("/:code", h.ServiceProvider.GetServiceProvider)
	providers.PUT("/:code", h.ServiceProvider.UpdateServiceProvider)
	providers.DELETE("/:code", h.ServiceProvider.DeleteServiceProvider)
}
