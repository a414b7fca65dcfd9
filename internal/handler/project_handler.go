package handler

import (
	"net/http"
	"strconv"

	"checklist-service/internal/dto"
	"checklist-service/internal/middleware"
	"checklist-service/internal/service"
	"checklist-service/pkg/logger"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

const projectConflict = "Project conflicts with an existing project"

// ProjectHandler serves /projects
type ProjectHandler struct {
	projects *service.ProjectService
}

func NewProjectHandler(projects *service.ProjectService) *ProjectHandler {
	return &ProjectHandler{projects: projects}
}

// CreateProject handles POST /projects
func (h *ProjectHandler) CreateProject(c echo.Context) error {
	log := logger.FromContext(c)

	var req dto.CreateProjectRequest
	if err := c.Bind(&req); err != nil {
		return bindError(c, log, err)
	}

	project, err := h.projects.Create(c.Request().Context(), req, middleware.ActorFromContext(c))
	if err != nil {
		return respondError(c, log, "Project", projectConflict, err)
	}

	log.Info("Project created successfully",
		zap.String("project_id", project.ID),
		zap.String("name", project.Name),
		zap.String("region", project.Region))
	return c.JSON(http.StatusCreated, dto.ToProjectResponse(project))
}

// GetProject handles GET /projects/:id
func (h *ProjectHandler) GetProject(c echo.Context) error {
	log := logger.FromContext(c)
	id := c.Param("id")

	project, err := h.projects.Get(c.Request().Context(), id)
	if err != nil {
		return respondError(c, log.With(zap.String("project_id", id)), "Project", projectConflict, err)
	}

	log.Debug("Project retrieved successfully",
		zap.String("project_id", id),
		zap.Int("checklists", len(project.Checklists)))
	return c.JSON(http.StatusOK, dto.ToProjectResponse(project))
}

// ListProjects handles GET /projects
func (h *ProjectHandler) ListProjects(c echo.Context) error {
	log := logger.FromContext(c)
	page, limit := pageParams(c)

	projects, total, err := h.projects.List(c.Request().Context(), page, limit)
	if err != nil {
		return respondError(c, log, "Project", projectConflict, err)
	}

	page, limit = service.NormalizePage(page, limit)
	log.Debug("Projects retrieved successfully",
		zap.Int("count", len(projects)),
		zap.Int64("total", total))
	return c.JSON(http.StatusOK, dto.ToProjectListResponse(projects, page, limit, total))
}

// UpdateProject handles PUT /projects/:id
func (h *ProjectHandler) UpdateProject(c echo.Context) error {
	log := logger.FromContext(c)
	id := c.Param("id")

	var req dto.UpdateProjectRequest
	if err := c.Bind(&req); err != nil {
		return bindError(c, log, err)
	}

	project, err := h.projects.Update(c.Request().Context(), id, req, middleware.ActorFromContext(c))
	if err != nil {
		return respondError(c, log.With(zap.String("project_id", id)), "Project", projectConflict, err)
	}

	log.Info("Project updated successfully", zap.String("project_id", id))
	return c.JSON(http.StatusOK, dto.ToProjectResponse(project))
}

// DeleteProject handles DELETE /projects/:id. Checklists go with it.
func (h *ProjectHandler) DeleteProject(c echo.Context) error {
	log := logger.FromContext(c)
	id := c.Param("id")

	if err := h.projects.Delete(c.Request().Context(), id); err != nil {
		return respondError(c, log.With(zap.String("project_id", id)), "Project", projectConflict, err)
	}

	log.Info("Project deleted successfully", zap.String("project_id", id))
	return c.NoContent(http.StatusNoContent)
}

// pageParams reads ?page and ?limit; the service clamps them
func pageParams(c echo.Context) (int, int) {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	return page, limit
}
