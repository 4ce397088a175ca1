package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/mealtracker/meal-tracker/models"
	"github.com/mealtracker/meal-tracker/utils"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrAdminExists        = errors.New("an admin already exists")
)

// UserService owns login accounts: the admins and the member self-service logins.
type UserService struct {
	db *gorm.DB
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{db: db}
}

func (s *UserService) AdminExists(ctx context.Context) (bool, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&models.User{}).Where("role = ?", models.RoleAdmin).Count(&count).Error; err != nil {
		return false, fmt.Errorf("count admins: %w", err)
	}
	return count > 0, nil
}

// CreateFirstAdmin creates the initial admin account. It fails with ErrAdminExists
// once any admin has been created.
func (s *UserService) CreateFirstAdmin(ctx context.Context, username, email, password, confirm string) (*models.User, error) {
	exists, err := s.AdminExists(ctx)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrAdminExists
	}
	if password != confirm {
		return nil, newValidationError("password", "passwords do not match")
	}
	return s.create(ctx, username, email, password, models.RoleAdmin, nil)
}

// CreateMemberAccount gives a member a self-service login.
func (s *UserService) CreateMemberAccount(ctx context.Context, memberID uint, username, password string) (*models.User, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&models.Member{}).Where("id = ?", memberID).Count(&count).Error; err != nil {
		return nil, fmt.Errorf("check member %d: %w", memberID, err)
	}
	if count == 0 {
		return nil, &NotFoundError{Resource: "member", ID: memberID}
	}
	if err := s.db.WithContext(ctx).Model(&models.User{}).Where("member_id = ?", memberID).Count(&count).Error; err != nil {
		return nil, fmt.Errorf("check account for member %d: %w", memberID, err)
	}
	if count > 0 {
		return nil, newValidationError("member_id", "member already has an account")
	}
	return s.create(ctx, username, "", password, models.RoleMember, &memberID)
}

func (s *UserService) create(ctx context.Context, username, email, password, role string, memberID *uint) (*models.User, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, newValidationError("username", "username and password are required")
	}

	var count int64
	if err := s.db.WithContext(ctx).Model(&models.User{}).Where("username = ?", username).Count(&count).Error; err != nil {
		return nil, fmt.Errorf("check username: %w", err)
	}
	if count > 0 {
		return nil, newValidationError("username", "username already taken")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := models.User{
		Username:     username,
		Email:        strings.TrimSpace(email),
		PasswordHash: string(hashed),
		Role:         role,
		MemberID:     memberID,
	}
	if err := s.db.WithContext(ctx).Omit("Member").Create(&user).Error; err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	utils.InfoLogger.Printf("New user registered: %s (role=%s)", user.Username, user.Role)
	return &user, nil
}

// Authenticate checks the credentials and returns the matching user.
func (s *UserService) Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).Where("username = ?", strings.TrimSpace(username)).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return &user, nil
}

func (s *UserService) Get(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).Preload("Member").First(&user, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, &NotFoundError{Resource: "user", ID: id}
	}
	if err != nil {
		return nil, fmt.Errorf("get user %d: %w", id, err)
	}
	return &user, nil
}

// AccountsByMember maps member IDs to the username linked to them.
func (s *UserService) AccountsByMember(ctx context.Context) (map[uint]string, error) {
	var users []models.User
	if err := s.db.WithContext(ctx).Where("member_id IS NOT NULL").Find(&users).Error; err != nil {
		return nil, fmt.Errorf("list member accounts: %w", err)
	}
	accounts := make(map[uint]string, len(users))
	for _, u := range users {
		accounts[*u.MemberID] = u.Username
	}
	return accounts, nil
}
