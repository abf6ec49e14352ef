package handlers

import (
	"context"
	"net/http"

	"homeserve/middleware"
	"homeserve/models"
	"homeserve/services/catalog"
	"homeserve/utils"

	"github.com/gin-gonic/gin"
)

// CatalogHandler serves services and add-ons.
type CatalogHandler struct {
	CatalogService catalog.CatalogService
}

func NewCatalogHandler(cs catalog.CatalogService) *CatalogHandler {
	return &CatalogHandler{CatalogService: cs}
}

// GetAvailableServices handles GET /services. Anonymous callers see active services only.
func (h *CatalogHandler) GetAvailableServices(c *gin.Context) {
	actor, _ := middleware.GetActor(c)
	services, err := h.CatalogService.ListServices(c.Request.Context(), actor)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, "Services retrieved successfully", services)
}

// GetServiceByID handles GET /services/:id.
func (h *CatalogHandler) GetServiceByID(c *gin.Context) {
	service, err := h.CatalogService.GetService(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, "Service retrieved successfully", service)
}

// CreateService handles POST /admin/services.
func (h *CatalogHandler) CreateService(c *gin.Context) {
	actor, ok := actorOf(c)
	if !ok {
		return
	}
	var req catalog.ServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	service, err := h.CatalogService.CreateService(c.Request.Context(), actor, req)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, "Service created successfully", service)
}

// GetAddons handles GET /addons.
func (h *CatalogHandler) GetAddons(c *gin.Context) {
	actor, _ := middleware.GetActor(c)
	addons, err := h.CatalogService.ListAddons(c.Request.Context(), actor)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, "Addons retrieved successfully", addons)
}

// CreateAddon handles POST /admin/addons.
func (h *CatalogHandler) CreateAddon(c *gin.Context) {
	actor, ok := actorOf(c)
	if !ok {
		return
	}
	var req catalog.AddonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	addon, err := h.CatalogService.CreateAddon(c.Request.Context(), actor, req)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, "Addon created successfully", addon)
}

type activeBody struct {
	Active *bool `json:"active" binding:"required"`
}

// SetServiceActive handles PATCH /admin/services/:id/active.
func (h *CatalogHandler) SetServiceActive(c *gin.Context) {
	h.toggle(c, h.CatalogService.SetServiceActive, "Service updated successfully")
}

// SetAddonActive handles PATCH /admin/addons/:id/active.
func (h *CatalogHandler) SetAddonActive(c *gin.Context) {
	h.toggle(c, h.CatalogService.SetAddonActive, "Addon updated successfully")
}

func (h *CatalogHandler) toggle(c *gin.Context, set func(ctx context.Context, actor models.Actor, id string, active bool) error, message string) {
	actor, ok := actorOf(c)
	if !ok {
		return
	}
	var body activeBody
	if err := c.ShouldBindJSON(&body); err != nil {
		badRequest(c, err.Error())
		return
	}
	if err := set(c.Request.Context(), actor, c.Param("id"), *body.Active); err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, message, gin.H{"id": c.Param("id"), "active": *body.Active})
}

// UpdateService handles PUT /admin/services/:id.
func (h *CatalogHandler) UpdateService(c *gin.Context) {
	actor, ok := actorOf(c)
	if !ok {
		return
	}
	var patch catalog.ServicePatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		badRequest(c, err.Error())
		return
	}
	service, err := h.CatalogService.UpdateService(c.Request.Context(), actor, c.Param("id"), patch)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, "Service updated successfully", service)
}

// DeleteService handles DELETE /admin/services/:id.
func (h *CatalogHandler) DeleteService(c *gin.Context) {
	actor, ok := actorOf(c)
	if !ok {
		return
	}
	if err := h.CatalogService.DeleteService(c.Request.Context(), actor, c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, "Service deleted successfully", gin.H{"id": c.Param("id")})
}

// UpdateAddon handles PUT /admin/addons/:id.
func (h *CatalogHandler) UpdateAddon(c *gin.Context) {
	actor, ok := actorOf(c)
	if !ok {
		return
	}
	var patch catalog.AddonPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		badRequest(c, err.Error())
		return
	}
	addon, err := h.CatalogService.UpdateAddon(c.Request.Context(), actor, c.Param("id"), patch)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, "Addon updated successfully", addon)
}

// DeleteAddon handles DELETE /admin/addons/:id.
func (h *CatalogHandler) DeleteAddon(c *gin.Context) {
	actor, ok := actorOf(c)
	if !ok {
		return
	}
	if err := h.CatalogService.DeleteAddon(c.Request.Context(), actor, c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, "Addon deleted successfully", gin.H{"id": c.Param("id")})
}
