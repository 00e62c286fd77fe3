// internal/handlers/handlers_test.go
package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/prodcat/catalog-backend/internal/database"
	"github.com/prodcat/catalog-backend/internal/models"
	"github.com/prodcat/catalog-backend/internal/services"
	"github.com/prodcat/catalog-backend/internal/store"
)

// newTestRouter wires the handlers onto a bare engine against an in-memory
// database, without the global middleware chain.
func newTestRouter(t *testing.T) *gin.Engine {
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.RunMigrations(db))

	productStore := store.NewProductStore(db)
	propertyStore := store.NewPropertyStore(db)

	catalogHandler := NewCatalogHandler(services.NewCatalogService(productStore, nil, time.Minute))
	productHandler := NewProductHandler(services.NewProductService(productStore, nil))
	propertyHandler := NewPropertyHandler(services.NewPropertyService(propertyStore, nil))

	r := gin.New()
	v1 := r.Group("/v1")
	{
		catalog := v1.Group("/catalog")
		{
			catalog.GET("/", catalogHandler.GetCatalog)
			catalog.GET("/filter/", catalogHandler.GetFilterStatistics)
		}

		products := v1.Group("/products")
		{
			products.GET("/", productHandler.GetProducts)
			products.POST("/", productHandler.CreateProduct)
			products.GET("/product/:uid", productHandler.GetProduct)
			products.DELETE("/product/:uid", productHandler.DeleteProduct)
		}

		properties := v1.Group("/properties")
		{
			properties.GET("/", propertyHandler.GetProperties)
			properties.POST("/", propertyHandler.CreateProperty)
			properties.GET("/:uid", propertyHandler.GetProperty)
			properties.DELETE("/:uid", propertyHandler.DeleteProperty)
		}
	}
	return r
}

type HandlerSuite struct {
	suite.Suite
	router *gin.Engine
}

func (s *HandlerSuite) SetupTest() {
	s.router = newTestRouter(s.T())
}

func (s *HandlerSuite) request(method, path string, body interface{}) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		s.Require().NoError(err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *HandlerSuite) decode(w *httptest.ResponseRecorder, dest interface{}) {
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), dest))
}

func (s *HandlerSuite) createProduct(uid, name string, properties ...services.PropertyInput) {
	w := s.request(http.MethodPost, "/v1/products/", services.CreateProductRequest{
		UID: uid, Name: name, Properties: properties,
	})
	s.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
}

func colorInput(values ...string) services.PropertyInput {
	p := services.PropertyInput{UID: "prop-color", Name: "Color", Type: "string"}
	for i, v := range values {
		p.Values = append(p.Values, services.PropertyValueInput{
			ValueUID: "color-" + string(rune('a'+i)), Value: v,
		})
	}
	return p
}

func (s *HandlerSuite) TestCreateProductEchoesResource() {
	w := s.request(http.MethodPost, "/v1/products/", services.CreateProductRequest{
		Name:       "Chair",
		Properties: []services.PropertyInput{colorInput("red")},
	})
	s.Require().Equal(http.StatusCreated, w.Code, w.Body.String())

	var product models.Product
	s.decode(w, &product)
	s.NotEmpty(product.UID)
	s.Equal("Chair", product.Name)
	s.Require().Len(product.Properties, 1)
	s.Equal("prop-color", product.Properties[0].UID)
}

func (s *HandlerSuite) TestCreateProductValidation() {
	w := s.request(http.MethodPost, "/v1/products/", map[string]interface{}{
		"uid": "prod-1",
	})
	s.Equal(http.StatusBadRequest, w.Code)
	s.Contains(w.Body.String(), "VALIDATION_ERROR")
}

func (s *HandlerSuite) TestCreateProductBadNumericValue() {
	w := s.request(http.MethodPost, "/v1/products/", services.CreateProductRequest{
		UID: "prod-1", Name: "Chair",
		Properties: []services.PropertyInput{{
			UID: "prop-weight", Name: "Weight", Type: "int",
			Values: []services.PropertyValueInput{{ValueUID: "w1", Value: "heavy"}},
		}},
	})
	s.Equal(http.StatusBadRequest, w.Code)
}

func (s *HandlerSuite) TestGetProductNotFound() {
	w := s.request(http.MethodGet, "/v1/products/product/nope", nil)
	s.Equal(http.StatusNotFound, w.Code)
}

func (s *HandlerSuite) TestDeleteProduct() {
	s.createProduct("prod-1", "Chair")

	w := s.request(http.MethodDelete, "/v1/products/product/prod-1", nil)
	s.Equal(http.StatusNoContent, w.Code)

	w = s.request(http.MethodDelete, "/v1/products/product/prod-1", nil)
	s.Equal(http.StatusNotFound, w.Code)
}

func (s *HandlerSuite) TestListProductsEmptyArray() {
	w := s.request(http.MethodGet, "/v1/products/", nil)
	s.Require().Equal(http.StatusOK, w.Code)
	s.Equal("[]", w.Body.String())
}

func (s *HandlerSuite) TestCatalogPagination() {
	for _, uid := range []string{"p1", "p2", "p3"} {
		s.createProduct(uid, "Product "+uid)
	}

	w := s.request(http.MethodGet, "/v1/catalog/?page=2&page_size=2", nil)
	s.Require().Equal(http.StatusOK, w.Code)

	var page services.CatalogPage
	s.decode(w, &page)
	s.EqualValues(3, page.Count)
	s.Require().Len(page.Products, 1)
	s.Equal("p3", page.Products[0].UID)
}

func (s *HandlerSuite) TestCatalogRejectsBadPaging() {
	for _, path := range []string{
		"/v1/catalog/?page=0",
		"/v1/catalog/?page=abc",
		"/v1/catalog/?page_size=0",
		"/v1/catalog/?page_size=101",
	} {
		w := s.request(http.MethodGet, path, nil)
		s.Equal(http.StatusBadRequest, w.Code, path)
	}
}

func (s *HandlerSuite) TestCatalogRejectsMalformedFilterToken() {
	w := s.request(http.MethodGet, "/v1/catalog/?filters=noseparator", nil)
	s.Equal(http.StatusBadRequest, w.Code)
}

func (s *HandlerSuite) TestCatalogFilterByProperty() {
	s.createProduct("prod-red", "Red Chair", colorInput("red"))
	s.createProduct("prod-blue", "Blue Chair", services.PropertyInput{
		UID: "prop-shade", Name: "Shade", Type: "string",
		Values: []services.PropertyValueInput{{ValueUID: "shade-a", Value: "blue"}},
	})

	w := s.request(http.MethodGet, "/v1/catalog/?filters=prop-color:red", nil)
	s.Require().Equal(http.StatusOK, w.Code)

	var page services.CatalogPage
	s.decode(w, &page)
	s.EqualValues(1, page.Count)
	s.Require().Len(page.Products, 1)
	s.Equal("prod-red", page.Products[0].UID)
}

func (s *HandlerSuite) TestFilterStatistics() {
	s.createProduct("prod-1", "Chair",
		colorInput("red", "red", "blue"),
		services.PropertyInput{
			UID: "prop-weight", Name: "Weight", Type: "int",
			Values: []services.PropertyValueInput{
				{ValueUID: "w1", Value: "3"},
				{ValueUID: "w2", Value: "10"},
			},
		})

	w := s.request(http.MethodGet, "/v1/catalog/filter/", nil)
	s.Require().Equal(http.StatusOK, w.Code)

	var stats map[string]json.RawMessage
	s.decode(w, &stats)

	var count int64
	s.Require().NoError(json.Unmarshal(stats["count"], &count))
	s.EqualValues(1, count)

	var weight services.NumericStats
	s.Require().NoError(json.Unmarshal(stats["prop-weight"], &weight))
	s.Equal(3, weight.MinValue)
	s.Equal(10, weight.MaxValue)

	var colors map[string]int
	s.Require().NoError(json.Unmarshal(stats["prop-color"], &colors))
	s.Equal(map[string]int{"red": 2, "blue": 1}, colors)
}

func (s *HandlerSuite) TestCreateAndDeleteProperty() {
	w := s.request(http.MethodPost, "/v1/properties/", services.CreatePropertyRequest{
		Name: "Color", Type: "string",
		Values: []services.PropertyValueInput{{Value: "red"}},
	})
	s.Require().Equal(http.StatusCreated, w.Code, w.Body.String())

	var property models.Property
	s.decode(w, &property)
	s.NotEmpty(property.UID)

	w = s.request(http.MethodGet, "/v1/properties/"+property.UID, nil)
	s.Equal(http.StatusOK, w.Code)

	w = s.request(http.MethodDelete, "/v1/properties/"+property.UID, nil)
	s.Equal(http.StatusNoContent, w.Code)

	w = s.request(http.MethodGet, "/v1/properties/"+property.UID, nil)
	s.Equal(http.StatusNotFound, w.Code)
}

func (s *HandlerSuite) TestCreatePropertyValidation() {
	w := s.request(http.MethodPost, "/v1/properties/", map[string]interface{}{
		"name": "Color",
	})
	s.Equal(http.StatusBadRequest, w.Code)
	s.Contains(w.Body.String(), "VALIDATION_ERROR")
}

func (s *HandlerSuite) TestListPropertiesEmptyArray() {
	w := s.request(http.MethodGet, "/v1/properties/", nil)
	s.Require().Equal(http.StatusOK, w.Code)
	s.Equal("[]", w.Body.String())
}

func TestHandlerSuite(t *testing.T) {
	suite.Run(t, new(HandlerSuite))
}
