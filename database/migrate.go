package database

import (
	"fmt"

	"github.com/mealtracker/meal-tracker/models"
	"github.com/mealtracker/meal-tracker/utils"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Migrate creates or updates every table and verifies the uniqueness
// constraints the ledgers rely on for their upserts.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(models.All()...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}

	required := []struct {
		model interface{}
		index string
	}{
		{&models.MealRecord{}, "idx_meal_member_date"},
		{&models.MealPrice{}, "idx_meal_prices_date"},
		{&models.Member{}, "idx_members_serial_number"},
	}
	for _, r := range required {
		if !db.Migrator().HasIndex(r.model, r.index) {
			return fmt.Errorf("missing unique index %s", r.index)
		}
	}

	utils.InfoLogger.Println("AutoMigrate completed.")
	return nil
}

// OpenMemory opens a private in-memory SQLite database named name and migrates it.
// Each distinct name is an independent database for the lifetime of the process.
func OpenMemory(name string) (*gorm.DB, error) {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=on", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		return nil, fmt.Errorf("open in-memory sqlite: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(1)

	if err := Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}
