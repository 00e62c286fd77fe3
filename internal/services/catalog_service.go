// internal/services/catalog_service.go
package services

import (
	"context"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/prodcat/catalog-backend/internal/cache"
	"github.com/prodcat/catalog-backend/internal/models"
	"github.com/prodcat/catalog-backend/internal/store"
)

const statsCachePrefix = "catalog:stats:"

// CatalogService is the query engine: it translates filter expressions, name
// search and sort order into store queries, computes pagination, and
// aggregates matching products into per-property statistics.
type CatalogService struct {
	store    *store.ProductStore
	cache    *cache.Cache
	statsTTL time.Duration
}

type CatalogParams struct {
	Page     int
	PageSize int
	Filters  map[string]store.PropertyFilter
	Name     string
	Sort     string
}

type CatalogPage struct {
	Products []models.Product `json:"products"`
	Count    int64            `json:"count"`
}

// NumericStats holds the integer min/max observed for an "int"-typed
// property across a filtered product set.
type NumericStats struct {
	MinValue int `json:"min_value"`
	MaxValue int `json:"max_value"`
}

// FrequencyStats maps each distinct value of a categorical property to its
// occurrence count across a filtered product set.
type FrequencyStats map[string]int

func NewCatalogService(store *store.ProductStore, cache *cache.Cache, statsTTL time.Duration) *CatalogService {
	return &CatalogService{store: store, cache: cache, statsTTL: statsTTL}
}

// ListProducts returns the requested page of filtered products together with
// the total distinct match count. Filters combine with AND across properties
// and OR within a property's accepted values; the name search is ANDed in.
func (s *CatalogService) ListProducts(ctx context.Context, params CatalogParams) (*CatalogPage, error) {
	products, total, err := s.store.Filtered(ctx, store.FilterQuery{
		Filters: params.Filters,
		Name:    params.Name,
		Sort:    params.Sort,
		Offset:  (params.Page - 1) * params.PageSize,
		Limit:   params.PageSize,
	})
	if err != nil {
		return nil, err
	}

	if products == nil {
		products = []models.Product{}
	}
	return &CatalogPage{Products: products, Count: total}, nil
}

// FilterStatistics runs the filter and name predicates without pagination
// and reduces the matched products to per-property statistics: integer
// min/max for "int"-typed properties, value frequency counts otherwise. The
// result carries the total match count under "count".
func (s *CatalogService) FilterStatistics(ctx context.Context, filters map[string]store.PropertyFilter, name string) (map[string]interface{}, error) {
	key := statsCacheKey(filters, name)
	var cached map[string]interface{}
	if s.cache.Get(ctx, key, &cached) {
		return cached, nil
	}

	products, total, err := s.store.Filtered(ctx, store.FilterQuery{
		Filters: filters,
		Name:    name,
	})
	if err != nil {
		return nil, err
	}

	numeric := make(map[string]*NumericStats)
	frequency := make(map[string]FrequencyStats)
	types := make(map[string]models.PropertyType)

	for _, product := range products {
		for _, prop := range product.Properties {
			types[prop.UID] = prop.Type

			if prop.Type.Numeric() {
				for _, v := range prop.Values {
					n, err := strconv.Atoi(v.Value)
					if err != nil {
						// Writes reject non-integer values for int-typed
						// properties; a legacy row is skipped, not fatal.
						logrus.WithFields(logrus.Fields{
							"property_uid": prop.UID,
							"value":        v.Value,
						}).Warn("skipping non-integer value during aggregation")
						continue
					}
					acc, ok := numeric[prop.UID]
					if !ok {
						numeric[prop.UID] = &NumericStats{MinValue: n, MaxValue: n}
						continue
					}
					if n < acc.MinValue {
						acc.MinValue = n
					}
					if n > acc.MaxValue {
						acc.MaxValue = n
					}
				}
			} else {
				acc, ok := frequency[prop.UID]
				if !ok {
					acc = make(FrequencyStats)
					frequency[prop.UID] = acc
				}
				for _, v := range prop.Values {
					acc[v.Value]++
				}
			}
		}
	}

	stats := map[string]interface{}{"count": total}
	for uid, typ := range types {
		if typ.Numeric() {
			if acc, ok := numeric[uid]; ok {
				stats[uid] = acc
			} else {
				stats[uid] = map[string]interface{}{}
			}
		} else {
			stats[uid] = frequency[uid]
		}
	}

	if err := s.cache.Set(ctx, key, stats, s.statsTTL); err != nil {
		logrus.WithError(err).Warn("failed to cache filter statistics")
	}
	return stats, nil
}

// statsCacheKey builds a canonical key for a filter+name combination:
// property clauses sorted by uid, values sorted within each clause.
func statsCacheKey(filters map[string]store.PropertyFilter, name string) string {
	uids := make([]string, 0, len(filters))
	for uid := range filters {
		uids = append(uids, uid)
	}
	sort.Strings(uids)

	var b strings.Builder
	b.WriteString(statsCachePrefix)
	for _, uid := range uids {
		f := filters[uid]
		b.WriteString(uid)
		b.WriteByte('=')
		if f.Range != nil {
			b.WriteString(f.Range.From)
			b.WriteString("..")
			b.WriteString(f.Range.To)
		} else {
			values := append([]string(nil), f.Values...)
			sort.Strings(values)
			b.WriteString(strings.Join(values, ","))
		}
		b.WriteByte(';')
	}
	b.WriteString("name=")
	b.WriteString(strings.ToLower(name))
	return b.String()
}
