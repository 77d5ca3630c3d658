// Package rest exposes the catalog over HTTP.
package rest

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Middleware wraps a handler, typically to enforce authorization.
type Middleware func(http.Handler) http.Handler

// RegisterRoutes mounts both catalog resources. Write routes are wrapped with admin.
func RegisterRoutes(r chi.Router, categories *CategoryHandler, products *ProductHandler, admin Middleware) {
	r.Route("/categories", func(r chi.Router) {
		categories.RegisterRoutes(r, admin)
	})
	r.Route("/products", func(r chi.Router) {
		products.RegisterRoutes(r, admin)
	})
}
