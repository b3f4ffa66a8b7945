package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/printforge/configurator-backend/pkg/enums"
)

// Material is a printable substrate shared across the catalog.
type Material struct {
	ID          uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Slug        string          `gorm:"column:slug;not null;uniqueIndex"`
	Name        string          `gorm:"column:name;not null"`
	CostPerUnit decimal.Decimal `gorm:"column:cost_per_unit;type:numeric(12,4);not null"`
	IsActive    bool            `gorm:"column:is_active;not null;default:true"`
	CreatedAt   time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}

// ProductMaterial is the product-scoped compatibility edge to a material,
// decorated with an optional flat price modifier and dimension bounds.
type ProductMaterial struct {
	ID            uuid.UUID           `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	ProductID     uuid.UUID           `gorm:"column:product_id;type:uuid;not null;index"`
	MaterialID    uuid.UUID           `gorm:"column:material_id;type:uuid;not null"`
	PriceModifier decimal.Decimal     `gorm:"column:price_modifier;type:numeric(12,2);not null;default:0"`
	MinWidth      *float64            `gorm:"column:min_width"`
	MaxWidth      *float64            `gorm:"column:max_width"`
	MinHeight     *float64            `gorm:"column:min_height"`
	MaxHeight     *float64            `gorm:"column:max_height"`
	Unit          enums.DimensionUnit `gorm:"column:unit;not null;default:mm"`
	Position      int                 `gorm:"column:position;not null;default:0"`
	Material      *Material           `gorm:"foreignKey:MaterialID"`
	CreatedAt     time.Time           `gorm:"column:created_at;autoCreateTime"`
}
