// Package service provides the catalog business logic on top of the stores.
package service

import (
	"encoding/json"

	"github.com/abgdnv/gocatalog/internal/catalog/store"
	"github.com/shopspring/decimal"
)

// CategoryDto is the wire form of a category. ID is ignored on input.
type CategoryDto struct {
	ID          int    `json:"categoryId"`
	Name        string `json:"name"        validate:"required,max=100"`
	Description string `json:"description"`
}

// ProductDto is the wire form of a product. On update a non-zero ID must match the target.
type ProductDto struct {
	ID          int             `json:"productId"`
	Name        string          `json:"name"        validate:"required,max=100"`
	Price       decimal.Decimal `json:"price"       validate:"gte=0"`
	CategoryID  int             `json:"categoryId"  validate:"gte=1"`
	Description string          `json:"description"`
	Color       string          `json:"color"`
	Stock       int             `json:"stock"       validate:"gte=0"`
	Featured    bool            `json:"featured"`
	ImageURL    string          `json:"imageUrl"`
}

// MarshalJSON writes the price as a JSON number with its exact decimal digits.
func (p ProductDto) MarshalJSON() ([]byte, error) {
	type plain ProductDto
	return json.Marshal(struct {
		plain
		Price json.Number `json:"price"`
	}{plain: plain(p), Price: json.Number(p.Price.String())})
}

// ProductFilter narrows a product search. Nil fields are not applied.
type ProductFilter struct {
	CategoryID *int
	MinPrice   *decimal.Decimal
	MaxPrice   *decimal.Decimal
	Color      *string
}

func toCategoryDto(c *store.Category) *CategoryDto {
	return &CategoryDto{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
	}
}

func toProductDto(p *store.Product) *ProductDto {
	return &ProductDto{
		ID:          p.ID,
		Name:        p.Name,
		Price:       p.Price,
		CategoryID:  p.CategoryID,
		Description: p.Description,
		Color:       p.Color,
		Stock:       p.Stock,
		Featured:    p.Featured,
		ImageURL:    p.ImageURL,
	}
}

func toProductDtos(products []store.Product) []ProductDto {
	dtos := make([]ProductDto, len(products))
	for i := range products {
		dtos[i] = *toProductDto(&products[i])
	}
	return dtos
}

func toProductParams(p ProductDto) store.ProductParams {
	return store.ProductParams{
		Name:        p.Name,
		Price:       p.Price,
		CategoryID:  p.CategoryID,
		Description: p.Description,
		Color:       p.Color,
		Stock:       p.Stock,
		Featured:    p.Featured,
		ImageURL:    p.ImageURL,
	}
}
