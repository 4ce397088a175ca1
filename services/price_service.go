package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/mealtracker/meal-tracker/calendar"
	"github.com/mealtracker/meal-tracker/models"
	"github.com/mealtracker/meal-tracker/utils"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PriceService is the price table: one price per calendar date, effective until superseded.
type PriceService struct {
	db *gorm.DB
}

func NewPriceService(db *gorm.DB) *PriceService {
	return &PriceService{db: db}
}

// SetPrice upserts the price for date. It reports whether a new row was created.
func (s *PriceService) SetPrice(ctx context.Context, date time.Time, amount decimal.Decimal) (bool, error) {
	if err := checkAmount("price", amount); err != nil {
		return false, err
	}

	key := calendar.Key(date)
	created := false
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.MealPrice{}).Where("date = ?", key).Count(&count).Error; err != nil {
			return err
		}
		created = count == 0

		price := models.MealPrice{Date: key, PricePerMeal: amount}
		return tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "date"}},
			DoUpdates: clause.AssignmentColumns([]string{"price_per_meal", "updated_at"}),
		}).Create(&price).Error
	})
	if err != nil {
		return false, fmt.Errorf("set price for %s: %w", key, err)
	}

	utils.InfoLogger.WithFields(logrus.Fields{
		"date":    key,
		"price":   amount.StringFixed(2),
		"created": created,
	}).Info("meal price saved")
	return created, nil
}

// PriceFor resolves the effective price on date: the exact entry, else the most recent
// earlier one, else zero.
func (s *PriceService) PriceFor(ctx context.Context, date time.Time) (decimal.Decimal, error) {
	var price models.MealPrice
	err := s.db.WithContext(ctx).
		Where("date <= ?", calendar.Key(date)).
		Order("date DESC").
		First(&price).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return decimal.Zero, nil
	}
	if err != nil {
		return decimal.Zero, fmt.Errorf("price for %s: %w", calendar.Key(date), err)
	}
	return price.PricePerMeal, nil
}

// Recent lists the latest limit prices, newest first.
func (s *PriceService) Recent(ctx context.Context, limit int) ([]models.MealPrice, error) {
	var prices []models.MealPrice
	if err := s.db.WithContext(ctx).Order("date DESC").Limit(limit).Find(&prices).Error; err != nil {
		return nil, fmt.Errorf("list recent prices: %w", err)
	}
	return prices, nil
}
