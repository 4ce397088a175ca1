package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Payment is an immutable cash entry credited to one member's running tab.
type Payment struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	MemberID    uint            `gorm:"not null;index" json:"member_id"`
	Member      Member          `gorm:"foreignKey:MemberID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"member"`
	Amount      decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"amount"`
	PaymentDate string          `gorm:"type:varchar(10);not null;index" json:"payment_date"` // YYYY-MM-DD
	Note        *string         `gorm:"type:text" json:"note,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
}
