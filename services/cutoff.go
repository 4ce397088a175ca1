package services

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// MealCutoff gates self-service decisions: once local time reaches Hour:Minute
// on a day, that day's decision is locked. The admin grid is not gated.
type MealCutoff struct {
	Hour     int
	Minute   int
	Location *time.Location
	Now      func() time.Time
}

func NewMealCutoff(hour, minute int, loc *time.Location) *MealCutoff {
	if loc == nil {
		loc = time.Local
	}
	return &MealCutoff{Hour: hour, Minute: minute, Location: loc, Now: time.Now}
}

// LocalNow is the current wall-clock time in the cutoff's location.
func (c *MealCutoff) LocalNow() time.Time {
	return c.Now().In(c.Location)
}

// Deadline returns the cutoff instant on the same local day as t.
func (c *MealCutoff) Deadline(t time.Time) time.Time {
	t = t.In(c.Location)
	y, m, d := t.Date()
	return time.Date(y, m, d, c.Hour, c.Minute, 0, 0, c.Location)
}

// Locked reports whether t is at or past that day's deadline.
func (c *MealCutoff) Locked(t time.Time) bool {
	return !t.Before(c.Deadline(t))
}

// Label renders the deadline as "10:30 AM".
func (c *MealCutoff) Label() string {
	return c.Deadline(c.LocalNow()).Format("3:04 PM")
}

func (c *MealCutoff) String() string {
	return fmt.Sprintf("%02d:%02d", c.Hour, c.Minute)
}

// ErrDecisionLocked is returned for self-service writes after the cutoff.
var ErrDecisionLocked = errors.New("meal decisions are locked for today")

// SelfService is the member-facing path onto the attendance ledger: it only
// writes today's decision and refuses once the cutoff has passed.
type SelfService struct {
	attendance *AttendanceService
	cutoff     *MealCutoff
}

func NewSelfService(attendance *AttendanceService, cutoff *MealCutoff) *SelfService {
	return &SelfService{attendance: attendance, cutoff: cutoff}
}

// Decide stores today's eat/skip decision for the member.
func (s *SelfService) Decide(ctx context.Context, memberID uint, ate bool) (time.Time, error) {
	now := s.cutoff.LocalNow()
	if s.cutoff.Locked(now) {
		return now, ErrDecisionLocked
	}
	return now, s.attendance.SetDecision(ctx, memberID, now, ate)
}

func (s *SelfService) Cutoff() *MealCutoff {
	return s.cutoff
}
