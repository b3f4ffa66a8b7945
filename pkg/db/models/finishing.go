package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

// Finishing is a post-print operation (lamination, cutting, binding).
type Finishing struct {
	ID          uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Slug        string          `gorm:"column:slug;not null;uniqueIndex"`
	Name        string          `gorm:"column:name;not null"`
	CostFix     decimal.Decimal `gorm:"column:cost_fix;type:numeric(12,4);not null;default:0"`
	CostPerUnit decimal.Decimal `gorm:"column:cost_per_unit;type:numeric(12,4);not null;default:0"`
	CostPerM2   decimal.Decimal `gorm:"column:cost_per_m2;type:numeric(12,4);not null;default:0"`
	IsActive    bool            `gorm:"column:is_active;not null;default:true"`
	CreatedAt   time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}

// ProductFinishing links a product to a finishing operation. Both slug
// arrays are allow-lists; empty means compatible with everything.
type ProductFinishing struct {
	ID                   uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	ProductID            uuid.UUID       `gorm:"column:product_id;type:uuid;not null;index"`
	FinishingID          uuid.UUID       `gorm:"column:finishing_id;type:uuid;not null"`
	PriceModifier        decimal.Decimal `gorm:"column:price_modifier;type:numeric(12,2);not null;default:0"`
	MaterialSlugs        pq.StringArray  `gorm:"column:material_slugs;type:text[]"`
	PrintMethodSlugs     pq.StringArray  `gorm:"column:print_method_slugs;type:text[]"`
	Position             int             `gorm:"column:position;not null;default:0"`
	Finishing            *Finishing      `gorm:"foreignKey:FinishingID"`
	CreatedAt            time.Time       `gorm:"column:created_at;autoCreateTime"`
}
