package services

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/mealtracker/meal-tracker/calendar"
	"github.com/mealtracker/meal-tracker/database"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	db, err := database.OpenMemory(name)
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

func setupServices(t *testing.T) *Services {
	t.Helper()
	return New(setupTestDB(t), NewMealCutoff(10, 30, time.UTC))
}

func day(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := calendar.Parse(s, time.UTC)
	require.NoError(t, err)
	return d
}

func money(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	require.NoError(t, err)
	return d
}

func addMember(t *testing.T, svc *Services, name string, serial int) uint {
	t.Helper()
	m, err := svc.Members.Create(context.Background(), name, serial)
	require.NoError(t, err)
	return m.ID
}
