package models

import "time"

type MealRecord struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	MemberID  uint      `gorm:"not null;uniqueIndex:idx_meal_member_date,priority:1" json:"member_id"`
	Member    Member    `gorm:"foreignKey:MemberID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	Date      string    `gorm:"type:varchar(10);not null;uniqueIndex:idx_meal_member_date,priority:2;index" json:"date"` // YYYY-MM-DD
	AteMeal   bool      `gorm:"not null" json:"ate_meal"`
	MealCount int       `gorm:"not null;default:1" json:"meal_count"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
