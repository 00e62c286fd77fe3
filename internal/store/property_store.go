// internal/store/property_store.go
package store

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/prodcat/catalog-backend/internal/models"
)

// PropertyStore handles standalone property reads and writes. Values are
// owned exclusively by their property, so they are written and deleted
// together with it.
type PropertyStore struct {
	db *gorm.DB
}

func NewPropertyStore(db *gorm.DB) *PropertyStore {
	return &PropertyStore{db: db}
}

func (s *PropertyStore) All(ctx context.Context) ([]models.Property, error) {
	var properties []models.Property
	if err := s.db.WithContext(ctx).
		Preload("Values").
		Find(&properties).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch properties: %w", err)
	}
	for i := range properties {
		if properties[i].Values == nil {
			properties[i].Values = []models.PropertyValue{}
		}
	}
	return properties, nil
}

func (s *PropertyStore) ByUID(ctx context.Context, uid string) (*models.Property, error) {
	var property models.Property
	if err := s.db.WithContext(ctx).
		Preload("Values").
		Where("uid = ?", uid).
		First(&property).Error; err != nil {
		return nil, err
	}
	if property.Values == nil {
		property.Values = []models.PropertyValue{}
	}
	return &property, nil
}

// Create writes the property and its values as one unit, generating missing
// identifiers.
func (s *PropertyStore) Create(ctx context.Context, property *models.Property) error {
	if property.UID == "" {
		property.UID = uuid.NewString()
	}
	for i := range property.Values {
		if property.Values[i].ValueUID == "" {
			property.Values[i].ValueUID = uuid.NewString()
		}
		property.Values[i].PropertyUID = property.UID
	}

	if err := s.db.WithContext(ctx).Create(property).Error; err != nil {
		return fmt.Errorf("failed to create property: %w", err)
	}
	return nil
}

// Delete removes the property, its values and its product associations.
// Returns whether a property row existed.
func (s *PropertyStore) Delete(ctx context.Context, uid string) (bool, error) {
	var existed bool
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("property_uid = ?", uid).Delete(&models.PropertyValue{}).Error; err != nil {
			return fmt.Errorf("failed to delete property values: %w", err)
		}
		if err := tx.Where("property_uid = ?", uid).Delete(&models.ProductProperty{}).Error; err != nil {
			return fmt.Errorf("failed to delete property associations: %w", err)
		}

		res := tx.Where("uid = ?", uid).Delete(&models.Property{})
		if res.Error != nil {
			return fmt.Errorf("failed to delete property: %w", res.Error)
		}
		existed = res.RowsAffected > 0
		return nil
	})
	return existed, err
}
