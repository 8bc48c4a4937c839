// File: handlers/resource.go
package handlers

import (
	"net/http"

	resourceRepo "innoviahub/database/repository/resource"
	"innoviahub/models"
	"innoviahub/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ResourceHandler serves the resource directory.
type ResourceHandler struct {
	Repo   resourceRepo.ResourceRepository
	Logger *zap.Logger
}

func NewResourceHandler(repo resourceRepo.ResourceRepository, logger *zap.Logger) *ResourceHandler {
	return &ResourceHandler{Repo: repo, Logger: logger}
}

// GetResources handles GET /api/resources.
func (h *ResourceHandler) GetResources(c *gin.Context) {
	resources, err := h.Repo.GetAll(c.Request.Context())
	if err != nil {
		h.Logger.Error("Failed to list resources", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Failed to list resources", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"resources": resources})
}

// GetResourceTypes handles GET /api/resources/types.
func (h *ResourceHandler) GetResourceTypes(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"resourceTypes": models.ResourceTypes()})
}
