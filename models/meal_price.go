package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// MealPrice is the effective price per meal from Date until a later-dated row supersedes it.
type MealPrice struct {
	ID           uint            `gorm:"primaryKey" json:"id"`
	Date         string          `gorm:"type:varchar(10);uniqueIndex;not null" json:"date"` // YYYY-MM-DD
	PricePerMeal decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price_per_meal"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}
