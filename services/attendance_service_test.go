package services

import (
	"context"
	"testing"

	"github.com/mealtracker/meal-tracker/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToggleFlipsOnEveryCall(t *testing.T) {
	svc := setupServices(t)
	ctx := context.Background()
	id := addMember(t, svc, "Rahim", 1)
	d := day(t, "2024-01-08")

	rec, err := svc.Attendance.RecordFor(ctx, id, d)
	require.NoError(t, err)
	assert.Nil(t, rec)

	want := []bool{true, false, true, false}
	for i, w := range want {
		ate, err := svc.Attendance.Toggle(ctx, id, d)
		require.NoError(t, err)
		assert.Equal(t, w, ate, "toggle #%d", i+1)
	}

	rec, err = svc.Attendance.RecordFor(ctx, id, d)
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.False(t, rec.AteMeal)
	assert.Equal(t, 1, rec.MealCount)

	var count int64
	require.NoError(t, svc.Attendance.db.Model(&models.MealRecord{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestToggleUnknownMember(t *testing.T) {
	svc := setupServices(t)

	_, err := svc.Attendance.Toggle(context.Background(), 42, day(t, "2024-01-08"))
	require.Error(t, err)
	assert.True(t, IsNotFound(err))
}

func TestSetDecisionIsIdempotent(t *testing.T) {
	svc := setupServices(t)
	ctx := context.Background()
	id := addMember(t, svc, "Karim", 1)
	d := day(t, "2024-01-08")
	week := day(t, "2024-01-06")

	require.NoError(t, svc.Attendance.SetDecision(ctx, id, d, true))
	require.NoError(t, svc.Attendance.SetDecision(ctx, id, d, true))

	n, err := svc.Attendance.CountEaten(ctx, id, week, week.AddDate(0, 0, 6))
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	require.NoError(t, svc.Attendance.SetDecision(ctx, id, d, false))
	n, err = svc.Attendance.CountEaten(ctx, id, week, week.AddDate(0, 0, 6))
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	rec, err := svc.Attendance.RecordFor(ctx, id, d)
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.False(t, rec.AteMeal)
}

func TestSetDecisionUnknownMember(t *testing.T) {
	svc := setupServices(t)

	err := svc.Attendance.SetDecision(context.Background(), 7, day(t, "2024-01-08"), true)
	assert.True(t, IsNotFound(err))
}

func TestCountEatenRespectsRangeAndMember(t *testing.T) {
	svc := setupServices(t)
	ctx := context.Background()
	a := addMember(t, svc, "A", 1)
	b := addMember(t, svc, "B", 2)

	for _, d := range []string{"2024-01-05", "2024-01-06", "2024-01-12", "2024-01-13"} {
		require.NoError(t, svc.Attendance.SetDecision(ctx, a, day(t, d), true))
	}
	require.NoError(t, svc.Attendance.SetDecision(ctx, a, day(t, "2024-01-09"), false))
	require.NoError(t, svc.Attendance.SetDecision(ctx, b, day(t, "2024-01-07"), true))

	n, err := svc.Attendance.CountEaten(ctx, a, day(t, "2024-01-06"), day(t, "2024-01-12"))
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	dates, err := svc.Attendance.EatenDates(ctx, a, day(t, "2024-01-06"), day(t, "2024-01-12"))
	require.NoError(t, err)
	assert.Equal(t, []string{"2024-01-06", "2024-01-12"}, dates)

	grid, err := svc.Attendance.Range(ctx, day(t, "2024-01-06"), day(t, "2024-01-12"))
	require.NoError(t, err)
	assert.Len(t, grid[a], 3)
	assert.False(t, grid[a]["2024-01-09"].AteMeal)
	assert.True(t, grid[b]["2024-01-07"].AteMeal)
}
