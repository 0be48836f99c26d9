package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateArticleRequest entrada para crear un artículo.
type CreateArticleRequest struct {
	Code             string          `json:"code" validate:"required,min=1,max=50"`
	Name             string          `json:"name" validate:"required,min=1,max=200"`
	Type             string          `json:"type" validate:"omitempty,oneof=simple kit"`
	StorageUnit      string          `json:"storage_unit"`
	RetailUnit       string          `json:"retail_unit"`
	ConversionFactor decimal.Decimal `json:"conversion_factor"`
	Cost             decimal.Decimal `json:"cost"`
	Price            decimal.Decimal `json:"price"`
}

// UpdateArticleRequest entrada para actualizar un artículo. El costo solo cambia vía compras.
type UpdateArticleRequest struct {
	Name             *string          `json:"name" validate:"omitempty,min=1,max=200"`
	StorageUnit      *string          `json:"storage_unit"`
	RetailUnit       *string          `json:"retail_unit"`
	ConversionFactor *decimal.Decimal `json:"conversion_factor"`
	Price            *decimal.Decimal `json:"price"`
	Active           *bool            `json:"active"`
}

// ArticleResponse salida de un artículo.
type ArticleResponse struct {
	ID               string          `json:"id"`
	Code             string          `json:"code"`
	Name             string          `json:"name"`
	Type             string          `json:"type"`
	StorageUnit      string          `json:"storage_unit"`
	RetailUnit       string          `json:"retail_unit"`
	ConversionFactor decimal.Decimal `json:"conversion_factor"`
	Cost             decimal.Decimal `json:"cost"`
	Price            decimal.Decimal `json:"price"`
	Active           bool            `json:"active"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

// ArticleListResponse lista paginada de artículos.
type ArticleListResponse struct {
	Items []ArticleResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}

// KitComponentRequest componente de un kit en unidades de detalle por unidad de kit.
type KitComponentRequest struct {
	ComponentCode string          `json:"component_code"`
	Quantity      decimal.Decimal `json:"quantity"`
}

// ReplaceKitComponentsRequest body para PUT /api/articles/:code/components.
type ReplaceKitComponentsRequest struct {
	Components []KitComponentRequest `json:"components"`
}

// KitComponentResponse componente de un kit.
type KitComponentResponse struct {
	ComponentCode string          `json:"component_code"`
	Quantity      decimal.Decimal `json:"quantity"`
}

// KitResponse kit con su lista de componentes.
type KitResponse struct {
	KitCode    string                 `json:"kit_code"`
	Components []KitComponentResponse `json:"components"`
}
