// internal/services/property_service.go
package services

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/prodcat/catalog-backend/internal/cache"
	"github.com/prodcat/catalog-backend/internal/models"
	"github.com/prodcat/catalog-backend/internal/store"
)

type PropertyService struct {
	store *store.PropertyStore
	cache *cache.Cache
}

type CreatePropertyRequest struct {
	UID    string               `json:"uid"`
	Name   string               `json:"name" validate:"required"`
	Type   string               `json:"type" validate:"required"`
	Values []PropertyValueInput `json:"values" validate:"dive"`
}

func NewPropertyService(store *store.PropertyStore, cache *cache.Cache) *PropertyService {
	return &PropertyService{store: store, cache: cache}
}

func (s *PropertyService) ListProperties(ctx context.Context) ([]models.Property, error) {
	return s.store.All(ctx)
}

func (s *PropertyService) AddProperty(ctx context.Context, req *CreatePropertyRequest) (*models.Property, error) {
	typ := models.PropertyType(req.Type)
	if err := checkNumericValues(typ, req.Values); err != nil {
		return nil, err
	}

	property := models.Property{
		UID:    req.UID,
		Name:   req.Name,
		Type:   typ,
		Values: make([]models.PropertyValue, 0, len(req.Values)),
	}
	for _, v := range req.Values {
		property.Values = append(property.Values, models.PropertyValue{
			ValueUID: v.ValueUID,
			Value:    v.Value,
		})
	}

	if err := s.store.Create(ctx, &property); err != nil {
		return nil, err
	}

	s.cache.DelPrefix(ctx, statsCachePrefix)
	return &property, nil
}

func (s *PropertyService) GetProperty(ctx context.Context, uid string) (*models.Property, error) {
	property, err := s.store.ByUID(ctx, uid)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPropertyNotFound
		}
		return nil, fmt.Errorf("failed to fetch property: %w", err)
	}
	return property, nil
}

func (s *PropertyService) DeleteProperty(ctx context.Context, uid string) error {
	existed, err := s.store.Delete(ctx, uid)
	if err != nil {
		return err
	}
	if !existed {
		return ErrPropertyNotFound
	}

	s.cache.DelPrefix(ctx, statsCachePrefix)
	return nil
}
