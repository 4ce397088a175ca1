package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/mealtracker/meal-tracker/models"
	"github.com/mealtracker/meal-tracker/utils"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// MemberService manages the member registry. Members are never deleted;
// deactivation only hides them from the active views.
type MemberService struct {
	db *gorm.DB
}

func NewMemberService(db *gorm.DB) *MemberService {
	return &MemberService{db: db}
}

func (s *MemberService) Create(ctx context.Context, name string, serial int) (*models.Member, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, newValidationError("name", "name is required")
	}
	if len(name) > 100 {
		return nil, newValidationError("name", "name is too long (max 100 characters)")
	}
	if serial <= 0 {
		return nil, newValidationError("serial_number", "serial number must be positive")
	}

	member := models.Member{Name: name, SerialNumber: serial, IsActive: true}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Member{}).Where("serial_number = ?", serial).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return newValidationError("serial_number", "serial number %d is already taken", serial)
		}
		return tx.Create(&member).Error
	})
	if err != nil {
		if IsValidation(err) {
			return nil, err
		}
		return nil, fmt.Errorf("create member: %w", err)
	}

	utils.InfoLogger.WithFields(logrus.Fields{
		"member_id": member.ID,
		"serial":    serial,
	}).Info("member created")
	return &member, nil
}

// Rename changes the member's name and returns the previous one.
func (s *MemberService) Rename(ctx context.Context, id uint, name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", newValidationError("name", "name is required")
	}

	member, err := s.Get(ctx, id)
	if err != nil {
		return "", err
	}
	old := member.Name
	if err := s.db.WithContext(ctx).Model(member).Update("name", name).Error; err != nil {
		return "", fmt.Errorf("rename member %d: %w", id, err)
	}
	return old, nil
}

// ToggleActive flips the active flag and returns the new value.
func (s *MemberService) ToggleActive(ctx context.Context, id uint) (bool, error) {
	member, err := s.Get(ctx, id)
	if err != nil {
		return false, err
	}
	active := !member.IsActive
	if err := s.db.WithContext(ctx).Model(member).Update("is_active", active).Error; err != nil {
		return false, fmt.Errorf("toggle member %d: %w", id, err)
	}

	utils.InfoLogger.WithFields(logrus.Fields{
		"member_id": id,
		"active":    active,
	}).Info("member activation changed")
	return active, nil
}

func (s *MemberService) Get(ctx context.Context, id uint) (*models.Member, error) {
	var member models.Member
	err := s.db.WithContext(ctx).First(&member, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, &NotFoundError{Resource: "member", ID: id}
	}
	if err != nil {
		return nil, fmt.Errorf("get member %d: %w", id, err)
	}
	return &member, nil
}

func (s *MemberService) ListActive(ctx context.Context) ([]models.Member, error) {
	var members []models.Member
	if err := s.db.WithContext(ctx).Where("is_active = ?", true).Order("serial_number").Find(&members).Error; err != nil {
		return nil, fmt.Errorf("list active members: %w", err)
	}
	return members, nil
}

func (s *MemberService) ListAll(ctx context.Context) ([]models.Member, error) {
	var members []models.Member
	if err := s.db.WithContext(ctx).Order("serial_number").Find(&members).Error; err != nil {
		return nil, fmt.Errorf("list members: %w", err)
	}
	return members, nil
}
