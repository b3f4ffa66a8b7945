package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/printforge/configurator-backend/pkg/enums"
	"github.com/printforge/configurator-backend/pkg/types"
)

// Product is the canonical catalog record. Pricing, options, production and
// dimensions arrive as jsonb sub-documents authored in the admin; the
// configurator normalizes them with safe fallbacks, so malformed documents
// are tolerated here.
type Product struct {
	ID              uuid.UUID          `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Slug            string             `gorm:"column:slug;not null;uniqueIndex"`
	Name            string             `gorm:"column:name;not null"`
	Description     *string            `gorm:"column:description"`
	LongDescription *string            `gorm:"column:long_description"`
	Type            enums.ProductType  `gorm:"column:type;not null;default:STANDARD"`
	IsActive        bool               `gorm:"column:is_active;not null;default:true"`
	BasePrice       decimal.Decimal    `gorm:"column:base_price;type:numeric(12,2);not null"`
	Pricing         types.JSONDocument `gorm:"column:pricing;type:jsonb"`
	Options         types.JSONDocument `gorm:"column:options;type:jsonb"`
	Production      types.JSONDocument `gorm:"column:production;type:jsonb"`
	Dimensions      types.JSONDocument `gorm:"column:dimensions;type:jsonb"`
	SEO             types.JSONDocument `gorm:"column:seo;type:jsonb"`
	Materials       []ProductMaterial  `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	PrintMethods    []ProductPrintMethod `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	Finishing       []ProductFinishing `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	Images          []ProductImage     `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	CreatedAt       time.Time          `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time          `gorm:"column:updated_at;autoUpdateTime"`
}

// ProductImage is an ordered storefront image.
type ProductImage struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	ProductID uuid.UUID `gorm:"column:product_id;type:uuid;not null;index"`
	URL       string    `gorm:"column:url;not null"`
	Position  int       `gorm:"column:position;not null;default:0"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}
