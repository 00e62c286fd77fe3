// internal/utils/filters.go
package utils

import (
	"fmt"
	"strings"

	"github.com/prodcat/catalog-backend/internal/store"
)

// ParseFilterTokens turns repeated "propertyUid:value" query tokens into
// membership filters. Tokens naming the same property accumulate into one
// clause; the value part may itself contain colons.
func ParseFilterTokens(tokens []string) (map[string]store.PropertyFilter, error) {
	if len(tokens) == 0 {
		return nil, nil
	}

	filters := make(map[string]store.PropertyFilter, len(tokens))
	for _, token := range tokens {
		propUID, value, found := strings.Cut(token, ":")
		if !found || propUID == "" {
			return nil, fmt.Errorf("malformed filter token %q, expected \"propertyUid:value\"", token)
		}

		filter := filters[propUID]
		filter.Values = append(filter.Values, value)
		filters[propUID] = filter
	}

	return filters, nil
}
