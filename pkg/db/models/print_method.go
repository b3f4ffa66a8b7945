package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

// PrintMethod is a shared printing technique with its cost basis. CostPerM2
// is nullable: when absent the flat sheet cost applies.
type PrintMethod struct {
	ID           uuid.UUID        `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Slug         string           `gorm:"column:slug;not null;uniqueIndex"`
	Name         string           `gorm:"column:name;not null"`
	CostPerM2    *decimal.Decimal `gorm:"column:cost_per_m2;type:numeric(12,4)"`
	CostPerSheet decimal.Decimal  `gorm:"column:cost_per_sheet;type:numeric(12,4);not null;default:0"`
	IsActive     bool             `gorm:"column:is_active;not null;default:true"`
	CreatedAt    time.Time        `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time        `gorm:"column:updated_at;autoUpdateTime"`
}

// ProductPrintMethod links a product to a print method. MaterialSlugs is an
// allow-list of compatible material slugs; empty means any material.
type ProductPrintMethod struct {
	ID            uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	ProductID     uuid.UUID       `gorm:"column:product_id;type:uuid;not null;index"`
	PrintMethodID uuid.UUID       `gorm:"column:print_method_id;type:uuid;not null"`
	PriceModifier decimal.Decimal `gorm:"column:price_modifier;type:numeric(12,2);not null;default:0"`
	MaterialSlugs pq.StringArray  `gorm:"column:material_slugs;type:text[]"`
	Position      int             `gorm:"column:position;not null;default:0"`
	PrintMethod   *PrintMethod    `gorm:"foreignKey:PrintMethodID"`
	CreatedAt     time.Time       `gorm:"column:created_at;autoCreateTime"`
}
