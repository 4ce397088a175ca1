package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/mealtracker/meal-tracker/calendar"
	"github.com/mealtracker/meal-tracker/models"
	"github.com/mealtracker/meal-tracker/utils"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// AttendanceService is the attendance ledger: at most one meal record per member per date.
type AttendanceService struct {
	db *gorm.DB
}

func NewAttendanceService(db *gorm.DB) *AttendanceService {
	return &AttendanceService{db: db}
}

// Toggle creates the record with ate=true on first call and flips it on every later call.
func (s *AttendanceService) Toggle(ctx context.Context, memberID uint, date time.Time) (bool, error) {
	key := calendar.Key(date)
	var record models.MealRecord

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ensureMember(tx, memberID); err != nil {
			return err
		}

		seed := models.MealRecord{MemberID: memberID, Date: key, AteMeal: true, MealCount: 1}
		err := tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "member_id"}, {Name: "date"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"ate_meal":   gorm.Expr("NOT ate_meal"),
				"updated_at": time.Now(),
			}),
		}).Create(&seed).Error
		if err != nil {
			return err
		}

		return tx.Where("member_id = ? AND date = ?", memberID, key).First(&record).Error
	})
	if err != nil {
		if IsNotFound(err) {
			return false, err
		}
		return false, fmt.Errorf("toggle meal for member %d on %s: %w", memberID, key, err)
	}

	utils.InfoLogger.WithFields(logrus.Fields{
		"member_id": memberID,
		"date":      key,
		"ate":       record.AteMeal,
	}).Info("meal toggled")
	return record.AteMeal, nil
}

// SetDecision stores ate for the member on date, creating the record if needed.
// Repeating the call with the same value leaves the ledger unchanged.
func (s *AttendanceService) SetDecision(ctx context.Context, memberID uint, date time.Time, ate bool) error {
	key := calendar.Key(date)

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ensureMember(tx, memberID); err != nil {
			return err
		}

		record := models.MealRecord{MemberID: memberID, Date: key, AteMeal: ate, MealCount: 1}
		return tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "member_id"}, {Name: "date"}},
			DoUpdates: clause.AssignmentColumns([]string{"ate_meal", "updated_at"}),
		}).Create(&record).Error
	})
	if err != nil {
		if IsNotFound(err) {
			return err
		}
		return fmt.Errorf("set meal decision for member %d on %s: %w", memberID, key, err)
	}

	utils.InfoLogger.WithFields(logrus.Fields{
		"member_id": memberID,
		"date":      key,
		"ate":       ate,
	}).Info("meal decision saved")
	return nil
}

// RecordFor returns the member's record on date, or nil when none exists.
func (s *AttendanceService) RecordFor(ctx context.Context, memberID uint, date time.Time) (*models.MealRecord, error) {
	var record models.MealRecord
	err := s.db.WithContext(ctx).
		Where("member_id = ? AND date = ?", memberID, calendar.Key(date)).
		First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("meal record for member %d: %w", memberID, err)
	}
	return &record, nil
}

// CountEaten counts days in [from, to] on which the member ate.
func (s *AttendanceService) CountEaten(ctx context.Context, memberID uint, from, to time.Time) (int, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.MealRecord{}).
		Where("member_id = ? AND date >= ? AND date <= ? AND ate_meal = ?",
			memberID, calendar.Key(from), calendar.Key(to), true).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("count meals for member %d: %w", memberID, err)
	}
	return int(count), nil
}

// EatenDates lists the dates in [from, to] on which the member ate, ascending.
func (s *AttendanceService) EatenDates(ctx context.Context, memberID uint, from, to time.Time) ([]string, error) {
	var dates []string
	err := s.db.WithContext(ctx).Model(&models.MealRecord{}).
		Where("member_id = ? AND date >= ? AND date <= ? AND ate_meal = ?",
			memberID, calendar.Key(from), calendar.Key(to), true).
		Order("date").
		Pluck("date", &dates).Error
	if err != nil {
		return nil, fmt.Errorf("eaten dates for member %d: %w", memberID, err)
	}
	return dates, nil
}

// Range returns every record in [from, to] keyed by member ID and then by date.
func (s *AttendanceService) Range(ctx context.Context, from, to time.Time) (map[uint]map[string]models.MealRecord, error) {
	var records []models.MealRecord
	err := s.db.WithContext(ctx).
		Where("date >= ? AND date <= ?", calendar.Key(from), calendar.Key(to)).
		Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("meal records %s..%s: %w", calendar.Key(from), calendar.Key(to), err)
	}

	grid := make(map[uint]map[string]models.MealRecord)
	for _, r := range records {
		if grid[r.MemberID] == nil {
			grid[r.MemberID] = make(map[string]models.MealRecord)
		}
		grid[r.MemberID][r.Date] = r
	}
	return grid, nil
}

func ensureMember(tx *gorm.DB, memberID uint) error {
	var count int64
	if err := tx.Model(&models.Member{}).Where("id = ?", memberID).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return &NotFoundError{Resource: "member", ID: memberID}
	}
	return nil
}
