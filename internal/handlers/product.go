// internal/handlers/product.go
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

type ProductHandler struct {
	productService *services.ProductService
}

func NewProductHandler(productService *services.ProductService) *ProductHandler {
	return &ProductHandler{productService: productService}
}

// GET /products/
func (h *ProductHandler) GetProducts(c *gin.Context) {
	products, err := h.productService.ListProducts(c.Request.Context())
	if err != nil {
		logrus.WithError(err).Error("listing products failed")
		utils.InternalErrorResponse(c)
		return
	}

	if products == nil {
		products = []models.Product{}
	}
	c.JSON(http.StatusOK, products)
}

// POST /products/
func (h *ProductHandler) CreateProduct(c *gin.Context) {
	var req services.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	product, err := h.productService.AddProduct(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, services.ErrBadNumericValue) {
			utils.BadRequestResponse(c, err.Error(), nil)
			return
		}
		logrus.WithError(err).Error("creating product failed")
		utils.InternalErrorResponse(c)
		return
	}

	c.JSON(http.StatusCreated, product)
}

// GET /products/product/:uid
func (h *ProductHandler) GetProduct(c *gin.Context) {
	product, err := h.productService.GetProduct(c.Request.Context(), c.Param("uid"))
	if err != nil {
		if errors.Is(err, services.ErrProductNotFound) {
			utils.NotFoundResponse(c, "Product not found")
			return
		}
		logrus.WithError(err).Error("fetching product failed")
		utils.InternalErrorResponse(c)
		return
	}

	c.JSON(http.StatusOK, product)
}

// DELETE /products/product/:uid
func (h *ProductHandler) DeleteProduct(c *gin.Context) {
	if err := h.productService.DeleteProduct(c.Request.Context(), c.Param("uid")); err != nil {
		if errors.Is(err, services.ErrProductNotFound) {
			utils.NotFoundResponse(c, "Product not found")
			return
		}
		logrus.WithError(err).Error("deleting product failed")
		utils.InternalErrorResponse(c)
		return
	}

	c.Status(http.StatusNoContent)
}
