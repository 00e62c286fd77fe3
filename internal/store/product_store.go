// internal/store/product_store.go
package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/prodcat/catalog-backend/internal/models"
)

// ProductStore executes queries over the product/property/value schema. It
// applies predicates, sorting, pagination and counting but carries no
// business logic beyond that.
type ProductStore struct {
	db *gorm.DB
}

func NewProductStore(db *gorm.DB) *ProductStore {
	return &ProductStore{db: db}
}

func (s *ProductStore) All(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	if err := s.db.WithContext(ctx).
		Preload("Properties.Values").
		Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch products: %w", err)
	}
	normalizeProducts(products)
	return products, nil
}

func (s *ProductStore) ByUID(ctx context.Context, uid string) (*models.Product, error) {
	var product models.Product
	if err := s.db.WithContext(ctx).
		Preload("Properties.Values").
		Where("uid = ?", uid).
		First(&product).Error; err != nil {
		return nil, err
	}
	normalizeProduct(&product)
	return &product, nil
}

// normalizeProduct keeps empty associations as empty slices rather than nil
// so they serialize as [] instead of null.
func normalizeProduct(p *models.Product) {
	if p.Properties == nil {
		p.Properties = []models.Property{}
	}
	for i := range p.Properties {
		if p.Properties[i].Values == nil {
			p.Properties[i].Values = []models.PropertyValue{}
		}
	}
}

func normalizeProducts(products []models.Product) {
	for i := range products {
		normalizeProduct(&products[i])
	}
}

// CreateOrUpdate upserts a product and its attached properties and values by
// identifier inside a single transaction. Missing identifiers are generated.
// Existing properties are linked (idempotently), never duplicated; a value is
// written only when no row with the same (property uid, value uid) pair
// exists. On any failure the whole operation rolls back.
func (s *ProductStore) CreateOrUpdate(ctx context.Context, product *models.Product) error {
	if product.UID == "" {
		product.UID = uuid.NewString()
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing models.Product
		err := tx.Where("uid = ?", product.UID).First(&existing).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			if err := tx.Create(&models.Product{UID: product.UID, Name: product.Name}).Error; err != nil {
				return fmt.Errorf("failed to create product: %w", err)
			}
		} else if err != nil {
			return fmt.Errorf("failed to look up product: %w", err)
		}

		for i := range product.Properties {
			prop := &product.Properties[i]
			if prop.UID == "" {
				prop.UID = uuid.NewString()
			}

			var dbProp models.Property
			err := tx.Where("uid = ?", prop.UID).First(&dbProp).Error
			if errors.Is(err, gorm.ErrRecordNotFound) {
				if err := tx.Create(&models.Property{UID: prop.UID, Name: prop.Name, Type: prop.Type}).Error; err != nil {
					return fmt.Errorf("failed to create property: %w", err)
				}
			} else if err != nil {
				return fmt.Errorf("failed to look up property: %w", err)
			}

			// Re-linking an existing pair must be a no-op, not a duplicate row.
			link := models.ProductProperty{ProductUID: product.UID, PropertyUID: prop.UID}
			if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&link).Error; err != nil {
				return fmt.Errorf("failed to link property: %w", err)
			}

			for j := range prop.Values {
				val := &prop.Values[j]
				if val.ValueUID == "" {
					val.ValueUID = uuid.NewString()
				}

				var count int64
				if err := tx.Model(&models.PropertyValue{}).
					Where("property_uid = ? AND value_uid = ?", prop.UID, val.ValueUID).
					Count(&count).Error; err != nil {
					return fmt.Errorf("failed to look up property value: %w", err)
				}
				if count == 0 {
					value := models.PropertyValue{
						ValueUID:    val.ValueUID,
						Value:       val.Value,
						PropertyUID: prop.UID,
					}
					if err := tx.Create(&value).Error; err != nil {
						return fmt.Errorf("failed to create property value: %w", err)
					}
				}
			}
		}

		return nil
	})
	if err != nil {
		return err
	}

	// Reload so the caller sees the stored state, including values that
	// already existed on linked properties.
	created, err := s.ByUID(ctx, product.UID)
	if err != nil {
		return fmt.Errorf("failed to reload product after create: %w", err)
	}
	*product = *created
	return nil
}

// Delete removes the product and its association rows. Properties and values
// stay untouched since they may be shared with other products. Returns
// whether a product row existed.
func (s *ProductStore) Delete(ctx context.Context, uid string) (bool, error) {
	var existed bool
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("product_uid = ?", uid).Delete(&models.ProductProperty{}).Error; err != nil {
			return fmt.Errorf("failed to delete product associations: %w", err)
		}

		res := tx.Where("uid = ?", uid).Delete(&models.Product{})
		if res.Error != nil {
			return fmt.Errorf("failed to delete product: %w", res.Error)
		}
		existed = res.RowsAffected > 0
		return nil
	})
	return existed, err
}

// Filtered returns one page of matching products plus the total distinct
// match count computed before pagination. Each property clause becomes an
// EXISTS subquery so a product joining several matching values is still
// counted once.
func (s *ProductStore) Filtered(ctx context.Context, q FilterQuery) ([]models.Product, int64, error) {
	query := s.db.WithContext(ctx).Model(&models.Product{})

	if q.Name != "" {
		query = query.Where("LOWER(products.name) LIKE ?", "%"+strings.ToLower(q.Name)+"%")
	}

	const matchProperty = "EXISTS (SELECT 1 FROM product_property pp" +
		" JOIN property_values pv ON pv.property_uid = pp.property_uid" +
		" WHERE pp.product_uid = products.uid AND pp.property_uid = ?"

	for _, propUID := range q.filterUIDs() {
		filter := q.Filters[propUID]
		switch {
		case filter.Range != nil:
			query = query.Where(matchProperty+" AND pv.value BETWEEN ? AND ?)",
				propUID, filter.Range.From, filter.Range.To)
		case len(filter.Values) > 0:
			query = query.Where(matchProperty+" AND pv.value IN ?)", propUID, filter.Values)
		}
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count products: %w", err)
	}

	if q.Sort == "name" {
		query = query.Order("products.name ASC")
	} else {
		// Default and fallback for unrecognized sort keys.
		query = query.Order("products.uid ASC")
	}

	if q.Limit > 0 {
		query = query.Offset(q.Offset).Limit(q.Limit)
	}

	var products []models.Product
	if err := query.Preload("Properties.Values").Find(&products).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to fetch products: %w", err)
	}

	normalizeProducts(products)
	return products, total, nil
}
