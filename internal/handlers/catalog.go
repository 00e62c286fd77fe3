// internal/handlers/catalog.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/prodcat/catalog-backend/internal/services"
	"github.com/prodcat/catalog-backend/internal/utils"
)

type CatalogHandler struct {
	catalogService *services.CatalogService
}

func NewCatalogHandler(catalogService *services.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService}
}

// GET /catalog/
func (h *CatalogHandler) GetCatalog(c *gin.Context) {
	params, err := utils.GetPageParams(c)
	if err != nil {
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	filters, err := utils.ParseFilterTokens(c.QueryArray("filters"))
	if err != nil {
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	page, err := h.catalogService.ListProducts(c.Request.Context(), services.CatalogParams{
		Page:     params.Page,
		PageSize: params.PageSize,
		Filters:  filters,
		Name:     c.Query("name"),
		Sort:     params.Sort,
	})
	if err != nil {
		logrus.WithError(err).Error("catalog query failed")
		utils.InternalErrorResponse(c)
		return
	}

	c.JSON(http.StatusOK, page)
}

// GET /catalog/filter/
func (h *CatalogHandler) GetFilterStatistics(c *gin.Context) {
	filters, err := utils.ParseFilterTokens(c.QueryArray("filters"))
	if err != nil {
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	stats, err := h.catalogService.FilterStatistics(c.Request.Context(), filters, c.Query("name"))
	if err != nil {
		logrus.WithError(err).Error("filter statistics failed")
		utils.InternalErrorResponse(c)
		return
	}

	c.JSON(http.StatusOK, stats)
}
