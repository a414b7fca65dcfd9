package handler

import (
	"fmt"
	"net/http"

	"checklist-service/internal/dto"
	"checklist-service/internal/middleware"
	"checklist-service/internal/service"
	"checklist-service/pkg/logger"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

const (
	checklistConflict = "Checklist with this supplier and document already exists for this project"
	xlsxMIME          = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// ChecklistHandler serves checklists, both nested under a project and by id
type ChecklistHandler struct {
	checklists *service.ChecklistService
}

func NewChecklistHandler(checklists *service.ChecklistService) *ChecklistHandler {
	return &ChecklistHandler{checklists: checklists}
}

// CreateChecklist handles POST /projects/:id/checklists
func (h *ChecklistHandler) CreateChecklist(c echo.Context) error {
	projectID := c.Param("id")
	log := logger.FromContext(c).With(zap.String("project_id", projectID))

	var req dto.CreateChecklistRequest
	if err := c.Bind(&req); err != nil {
		return bindError(c, log, err)
	}

	checklist, err := h.checklists.Create(c.Request().Context(), projectID, req, middleware.ActorFromContext(c))
	if err != nil {
		return respondError(c, log, "Project", checklistConflict, err)
	}

	log.Info("Checklist created successfully",
		zap.String("checklist_id", checklist.ID),
		zap.String("supplier_code", checklist.SupplierCode),
		zap.String("document_name", checklist.DocumentName))
	return c.JSON(http.StatusCreated, dto.ToChecklistResponse(checklist))
}

// ListChecklists handles GET /projects/:id/checklists
func (h *ChecklistHandler) ListChecklists(c echo.Context) error {
	projectID := c.Param("id")
	log := logger.FromContext(c).With(zap.String("project_id", projectID))

	checklists, err := h.checklists.ListByProject(c.Request().Context(), projectID)
	if err != nil {
		return respondError(c, log, "Project", checklistConflict, err)
	}

	log.Debug("Checklists retrieved successfully", zap.Int("count", len(checklists)))
	return c.JSON(http.StatusOK, dto.ToChecklistResponses(checklists))
}

// ExportChecklists handles GET /projects/:id/checklists/export
func (h *ChecklistHandler) ExportChecklists(c echo.Context) error {
	projectID := c.Param("id")
	log := logger.FromContext(c).With(zap.String("project_id", projectID))

	buf, filename, err := h.checklists.Export(c.Request().Context(), projectID)
	if err != nil {
		return respondError(c, log, "Project", checklistConflict, err)
	}

	log.Info("Checklists exported", zap.String("file", filename), zap.Int("bytes", buf.Len()))
	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	return c.Blob(http.StatusOK, xlsxMIME, buf.Bytes())
}

// GetChecklist handles GET /checklists/:id
func (h *ChecklistHandler) GetChecklist(c echo.Context) error {
	id := c.Param("id")
	log := logger.FromContext(c).With(zap.String("checklist_id", id))

	checklist, err := h.checklists.Get(c.Request().Context(), id)
	if err != nil {
		return respondError(c, log, "Checklist", checklistConflict, err)
	}
	return c.JSON(http.StatusOK, dto.ToChecklistResponse(checklist))
}

// UpdateChecklist handles PUT /checklists/:id
func (h *ChecklistHandler) UpdateChecklist(c echo.Context) error {
	id := c.Param("id")
	log := logger.FromContext(c).With(zap.String("checklist_id", id))

	var req dto.UpdateChecklistRequest
	if err := c.Bind(&req); err != nil {
		return bindError(c, log, err)
	}

	checklist, err := h.checklists.Update(c.Request().Context(), id, req, middleware.ActorFromContext(c))
	if err != nil {
		return respondError(c, log, "Checklist", checklistConflict, err)
	}

	log.Info("Checklist updated successfully",
		zap.Bool("is_checked", checklist.IsChecked),
		zap.String("document_name", checklist.DocumentName))
	return c.NoContent(http.StatusNoContent)
}

// DeleteChecklist handles DELETE /checklists/:id
func (h *ChecklistHandler) DeleteChecklist(c echo.Context) error {
	id := c.Param("id")
	log := logger.FromContext(c).With(zap.String("checklist_id", id))

	if err := h.checklists.Delete(c.Request().Context(), id); err != nil {
		return respondError(c, log, "Checklist", checklistConflict, err)
	}

	log.Info("Checklist deleted successfully")
	return c.NoContent(http.StatusNoContent)
}
