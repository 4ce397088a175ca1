package models

import (
	"fmt"
	"time"
)

type Member struct {
	ID           uint         `gorm:"primaryKey" json:"id"`
	Name         string       `gorm:"type:varchar(100);not null" json:"name"`
	SerialNumber int          `gorm:"uniqueIndex;not null" json:"serial_number"`
	IsActive     bool         `gorm:"not null;default:true" json:"is_active"`
	MealRecords  []MealRecord `gorm:"foreignKey:MemberID" json:"-"`
	Payments     []Payment    `gorm:"foreignKey:MemberID" json:"-"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
}

// Label renders the member the way lists show it, e.g. "3. Rahim".
func (m Member) Label() string {
	return fmt.Sprintf("%d. %s", m.SerialNumber, m.Name)
}
