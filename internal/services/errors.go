// internal/services/errors.go
package services

import "errors"

var (
	ErrProductNotFound  = errors.New("product not found")
	ErrPropertyNotFound = errors.New("property not found")

	// ErrBadNumericValue rejects a non-integer value on an "int"-typed
	// property at write time, so aggregation never sees one.
	ErrBadNumericValue = errors.New("value is not an integer for an int-typed property")
)
