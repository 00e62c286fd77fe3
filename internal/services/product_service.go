// internal/services/product_service.go
package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"gorm.io/gorm"

	"github.com/prodcat/catalog-backend/internal/cache"
	"github.com/prodcat/catalog-backend/internal/models"
	"github.com/prodcat/catalog-backend/internal/store"
)

type ProductService struct {
	store *store.ProductStore
	cache *cache.Cache
}

type PropertyValueInput struct {
	ValueUID string `json:"value_uid"`
	Value    string `json:"value" validate:"required"`
}

type PropertyInput struct {
	UID    string               `json:"uid"`
	Name   string               `json:"name" validate:"required"`
	Type   string               `json:"type" validate:"required"`
	Values []PropertyValueInput `json:"values" validate:"dive"`
}

type CreateProductRequest struct {
	UID        string          `json:"uid"`
	Name       string          `json:"name" validate:"required"`
	Properties []PropertyInput `json:"properties" validate:"dive"`
}

func NewProductService(store *store.ProductStore, cache *cache.Cache) *ProductService {
	return &ProductService{store: store, cache: cache}
}

func (s *ProductService) ListProducts(ctx context.Context) ([]models.Product, error) {
	return s.store.All(ctx)
}

// AddProduct upserts a product from the request, generating identifiers
// where absent. Referenced properties are linked if they exist and created
// otherwise; new values on int-typed properties must parse as integers.
func (s *ProductService) AddProduct(ctx context.Context, req *CreateProductRequest) (*models.Product, error) {
	product := models.Product{
		UID:        req.UID,
		Name:       req.Name,
		Properties: make([]models.Property, 0, len(req.Properties)),
	}

	for _, p := range req.Properties {
		typ := models.PropertyType(p.Type)
		if err := checkNumericValues(typ, p.Values); err != nil {
			return nil, err
		}

		prop := models.Property{
			UID:    p.UID,
			Name:   p.Name,
			Type:   typ,
			Values: make([]models.PropertyValue, 0, len(p.Values)),
		}
		for _, v := range p.Values {
			prop.Values = append(prop.Values, models.PropertyValue{
				ValueUID: v.ValueUID,
				Value:    v.Value,
			})
		}
		product.Properties = append(product.Properties, prop)
	}

	if err := s.store.CreateOrUpdate(ctx, &product); err != nil {
		return nil, err
	}

	s.cache.DelPrefix(ctx, statsCachePrefix)
	return &product, nil
}

func (s *ProductService) GetProduct(ctx context.Context, uid string) (*models.Product, error) {
	product, err := s.store.ByUID(ctx, uid)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to fetch product: %w", err)
	}
	return product, nil
}

func (s *ProductService) DeleteProduct(ctx context.Context, uid string) error {
	existed, err := s.store.Delete(ctx, uid)
	if err != nil {
		return err
	}
	if !existed {
		return ErrProductNotFound
	}

	s.cache.DelPrefix(ctx, statsCachePrefix)
	return nil
}

// checkNumericValues enforces the write-time contract that every value of an
// int-typed property is integer-parseable.
func checkNumericValues(typ models.PropertyType, values []PropertyValueInput) error {
	if !typ.Numeric() {
		return nil
	}
	for _, v := range values {
		if _, err := strconv.Atoi(v.Value); err != nil {
			return fmt.Errorf("%w: %q", ErrBadNumericValue, v.Value)
		}
	}
	return nil
}
