// Package errors provides sentinel errors for catalog operations.
package errors

import "errors"

var (
	ErrCategoryNotFound = errors.New("category not found")
	ErrProductNotFound  = errors.New("product not found")

	// ErrCategoryInUse is returned when a category still has products referencing it.
	ErrCategoryInUse = errors.New("category is referenced by products")

	// ErrIDMismatch means the id carried in a request body disagrees with the id in the path.
	ErrIDMismatch = errors.New("id in body does not match id in path")
)
