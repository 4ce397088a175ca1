package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/mealtracker/meal-tracker/calendar"
	"github.com/mealtracker/meal-tracker/models"
	"github.com/mealtracker/meal-tracker/utils"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// PaymentService is the append-only payment ledger.
type PaymentService struct {
	db *gorm.DB
}

func NewPaymentService(db *gorm.DB) *PaymentService {
	return &PaymentService{
		db: db,
	}
}

// Record stores a payment and returns its ID. An empty note is stored as NULL.
func (s *PaymentService) Record(ctx context.Context, memberID uint, amount decimal.Decimal, date time.Time, note string) (uint, error) {
	if err := checkAmount("amount", amount); err != nil {
		return 0, err
	}

	payment := models.Payment{
		MemberID:    memberID,
		Amount:      amount,
		PaymentDate: calendar.Key(date),
	}
	if n := strings.TrimSpace(note); n != "" {
		payment.Note = &n
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ensureMember(tx, memberID); err != nil {
			return err
		}
		return tx.Omit("Member").Create(&payment).Error
	})
	if err != nil {
		if IsNotFound(err) {
			return 0, err
		}
		return 0, fmt.Errorf("record payment for member %d: %w", memberID, err)
	}

	utils.InfoLogger.WithFields(logrus.Fields{
		"payment_id": payment.ID,
		"member_id":  memberID,
		"amount":     amount.StringFixed(2),
		"date":       payment.PaymentDate,
	}).Info("payment recorded")
	return payment.ID, nil
}

// TotalPaid sums every payment the member has ever made. Summation happens in
// decimal so the result is exact regardless of how the driver returns numerics.
func (s *PaymentService) TotalPaid(ctx context.Context, memberID uint) (decimal.Decimal, error) {
	var amounts []decimal.Decimal
	err := s.db.WithContext(ctx).Model(&models.Payment{}).
		Where("member_id = ?", memberID).
		Pluck("amount", &amounts).Error
	if err != nil {
		return decimal.Zero, fmt.Errorf("total paid for member %d: %w", memberID, err)
	}
	return decimal.Sum(decimal.Zero, amounts...), nil
}

// Recent lists the latest limit payments with their members, newest first.
func (s *PaymentService) Recent(ctx context.Context, limit int) ([]models.Payment, error) {
	var payments []models.Payment
	err := s.db.WithContext(ctx).Preload("Member").
		Order("payment_date DESC").Order("id DESC").
		Limit(limit).
		Find(&payments).Error
	if err != nil {
		return nil, fmt.Errorf("list recent payments: %w", err)
	}
	return payments, nil
}

// ForMember lists one member's payments, newest first.
func (s *PaymentService) ForMember(ctx context.Context, memberID uint) ([]models.Payment, error) {
	var payments []models.Payment
	err := s.db.WithContext(ctx).
		Where("member_id = ?", memberID).
		Order("payment_date DESC").Order("id DESC").
		Find(&payments).Error
	if err != nil {
		return nil, fmt.Errorf("list payments for member %d: %w", memberID, err)
	}
	return payments, nil
}
