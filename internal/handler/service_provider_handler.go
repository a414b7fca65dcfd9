package handler

import (
	"net/http"

	"checklist-service/internal/dto"
	"checklist-service/internal/middleware"
	"checklist-service/internal/service"
	"checklist-service/pkg/logger"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

const (
	providerExists     = "Service provider with this code already exists"
	providerReferenced = "Service provider is still referenced by checklists"
)

// ServiceProviderHandler serves /service-providers
type ServiceProviderHandler struct {
	providers *service.ServiceProviderService
}

func NewServiceProviderHandler(providers *service.ServiceProviderService) *ServiceProviderHandler {
	return &ServiceProviderHandler{providers: providers}
}

// CreateServiceProvider handles POST /service-providers
func (h *ServiceProviderHandler) CreateServiceProvider(c echo.Context) error {
	log := logger.FromContext(c)

	var req dto.CreateServiceProviderRequest
	if err := c.Bind(&req); err != nil {
		return bindError(c, log, err)
	}

	provider, err := h.providers.Register(c.Request().Context(), req, middleware.ActorFromContext(c))
	if err != nil {
		return respondError(c, log.With(zap.String("supplier_code", req.SupplierCode)), "Service provider", providerExists, err)
	}

	log.Info("Service provider created successfully",
		zap.String("supplier_code", provider.SupplierCode),
		zap.String("supplier_name", provider.SupplierName))
	return c.JSON(http.StatusCreated, dto.ToServiceProviderResponse(provider))
}

// GetServiceProvider handles GET /service-providers/:code
func (h *ServiceProviderHandler) GetServiceProvider(c echo.Context) error {
	code := c.Param("code")
	log := logger.FromContext(c).With(zap.String("supplier_code", code))

	provider, err := h.providers.Get(c.Request().Context(), code)
	if err != nil {
		return respondError(c, log, "Service provider", providerExists, err)
	}
	return c.JSON(http.StatusOK, dto.ToServiceProviderResponse(provider))
}

// ListServiceProviders handles GET /service-providers
func (h *ServiceProviderHandler) ListServiceProviders(c echo.Context) error {
	log := logger.FromContext(c)
	page, limit := pageParams(c)

	providers, total, err := h.providers.List(c.Request().Context(), page, limit)
	if err != nil {
		return respondError(c, log, "Service provider", providerExists, err)
	}

	page, limit = service.NormalizePage(page, limit)
	log.Debug("Service providers retrieved successfully",
		zap.Int("count", len(providers)),
		zap.Int64("total", total))
	return c.JSON(http.StatusOK, dto.ToServiceProviderListResponse(providers, page, limit, total))
}

// UpdateServiceProvider handles PUT /service-providers/:code
func (h *ServiceProviderHandler) UpdateServiceProvider(c echo.Context) error {
	code := c.Param("code")
	log := logger.FromContext(c).With(zap.String("supplier_code", code))

	var req dto.UpdateServiceProviderRequest
	if err := c.Bind(&req); err != nil {
		return bindError(c, log, err)
	}

	provider, err := h.providers.Update(c.Request().Context(), code, req, middleware.ActorFromContext(c))
	if err != nil {
		return respondError(c, log, "Service provider", providerExists, err)
	}

	log.Info("Service provider updated successfully", zap.String("supplier_name", provider.SupplierName))
	return c.JSON(http.StatusOK, dto.ToServiceProviderResponse(provider))
}

// DeleteServiceProvider handles DELETE /service-providers/:code
func (h *ServiceProviderHandler) DeleteServiceProvider(c echo.Context) error {
	code := c.Param("code")
	log := logger.FromContext(c).With(zap.String("supplier_code", code))

	if err := h.providers.Delete(c.Request().Context(), code); err != nil {
		return respondError(c, log, "Service provider", providerReferenced, err)
	}

	log.Info("Service provider deleted successfully")
	return c.NoContent(http.StatusNoContent)
}
