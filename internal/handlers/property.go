// internal/handlers/property.go
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/prodcat/catalog-backend/internal/models"
	"github.com/prodcat/catalog-backend/internal/services"
	"github.com/prodcat/catalog-backend/internal/utils"
)

type PropertyHandler struct {
	propertyService *services.PropertyService
}

func NewPropertyHandler(propertyService *services.PropertyService) *PropertyHandler {
	return &PropertyHandler{propertyService: propertyService}
}

// GET /properties/
func (h *PropertyHandler) GetProperties(c *gin.Context) {
	properties, err := h.propertyService.ListProperties(c.Request.Context())
	if err != nil {
		logrus.WithError(err).Error("listing properties failed")
		utils.InternalErrorResponse(c)
		return
	}

	if properties == nil {
		properties = []models.Property{}
	}
	c.JSON(http.StatusOK, properties)
}

// POST /properties/
func (h *PropertyHandler) CreateProperty(c *gin.Context) {
	var req services.CreatePropertyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	property, err := h.propertyService.AddProperty(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, services.ErrBadNumericValue) {
			utils.BadRequestResponse(c, err.Error(), nil)
			return
		}
		logrus.WithError(err).Error("creating property failed")
		utils.InternalErrorResponse(c)
		return
	}

	c.JSON(http.StatusCreated, property)
}

// GET /properties/:uid
func (h *PropertyHandler) GetProperty(c *gin.Context) {
	property, err := h.propertyService.GetProperty(c.Request.Context(), c.Param("uid"))
	if err != nil {
		if errors.Is(err, services.ErrPropertyNotFound) {
			utils.NotFoundResponse(c, "Property not found")
			return
		}
		logrus.WithError(err).Error("fetching property failed")
		utils.InternalErrorResponse(c)
		return
	}

	c.JSON(http.StatusOK, property)
}

// DELETE /properties/:uid
func (h *PropertyHandler) DeleteProperty(c *gin.Context) {
	if err := h.propertyService.DeleteProperty(c.Request.Context(), c.Param("uid")); err != nil {
		if errors.Is(err, services.ErrPropertyNotFound) {
			utils.NotFoundResponse(c, "Property not found")
			return
		}
		logrus.WithError(err).Error("deleting property failed")
		utils.InternalErrorResponse(c)
		return
	}

	c.Status(http.StatusNoContent)
}
