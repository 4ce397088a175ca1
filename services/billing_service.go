package services

import (
	"context"
	"fmt"
	"time"

	"github.com/mealtracker/meal-tracker/calendar"
	"github.com/mealtracker/meal-tracker/models"
	"github.com/shopspring/decimal"
)

// Summary is one member's figures for a billing week.
type Summary struct {
	MemberID     uint            `json:"member_id"`
	SerialNumber int             `json:"serial_number"`
	Name         string          `json:"name"`
	WeekStart    string          `json:"week_start"`
	Meals        int             `json:"meals"`
	Bill         decimal.Decimal `json:"bill"`
	Paid         decimal.Decimal `json:"paid"`
	Unpaid       decimal.Decimal `json:"unpaid"`
}

// BillingService joins the attendance ledger against the price table and nets the
// result against the payment ledger. Missing prices bill as zero and missing
// records count as not eaten, so the only errors it returns come from storage.
type BillingService struct {
	members    *MemberService
	prices     *PriceService
	attendance *AttendanceService
	payments   *PaymentService
}

func NewBillingService(members *MemberService, prices *PriceService, attendance *AttendanceService, payments *PaymentService) *BillingService {
	return &BillingService{
		members:    members,
		prices:     prices,
		attendance: attendance,
		payments:   payments,
	}
}

// WeeklyMeals counts the member's eaten days in the week starting at weekStart.
func (s *BillingService) WeeklyMeals(ctx context.Context, memberID uint, weekStart time.Time) (int, error) {
	from, to := weekBounds(weekStart)
	return s.attendance.CountEaten(ctx, memberID, from, to)
}

// WeeklyBill bills each eaten day of the week at that day's effective price.
func (s *BillingService) WeeklyBill(ctx context.Context, memberID uint, weekStart time.Time) (decimal.Decimal, error) {
	from, to := weekBounds(weekStart)
	return s.BillForRange(ctx, memberID, from, to)
}

// BillForRange bills each eaten day in [from, to] at that day's effective price.
func (s *BillingService) BillForRange(ctx context.Context, memberID uint, from, to time.Time) (decimal.Decimal, error) {
	dates, err := s.attendance.EatenDates(ctx, memberID, from, to)
	if err != nil {
		return decimal.Zero, err
	}

	total := decimal.Zero
	for _, key := range dates {
		day, err := time.ParseInLocation(calendar.Layout, key, from.Location())
		if err != nil {
			return decimal.Zero, fmt.Errorf("stored meal date %q: %w", key, err)
		}
		price, err := s.prices.PriceFor(ctx, day)
		if err != nil {
			return decimal.Zero, err
		}
		total = total.Add(price)
	}
	return total, nil
}

// UnpaidBalance is the week's bill minus everything the member has ever paid.
func (s *BillingService) UnpaidBalance(ctx context.Context, memberID uint, weekStart time.Time) (decimal.Decimal, error) {
	bill, err := s.WeeklyBill(ctx, memberID, weekStart)
	if err != nil {
		return decimal.Zero, err
	}
	paid, err := s.payments.TotalPaid(ctx, memberID)
	if err != nil {
		return decimal.Zero, err
	}
	return bill.Sub(paid), nil
}

// MemberSummary computes meals, bill, paid and unpaid for one member.
func (s *BillingService) MemberSummary(ctx context.Context, memberID uint, weekStart time.Time) (Summary, error) {
	member, err := s.members.Get(ctx, memberID)
	if err != nil {
		return Summary{}, err
	}
	return s.summarize(ctx, *member, weekStart)
}

// WeeklySummaries computes a Summary for every active member, ordered by serial number.
func (s *BillingService) WeeklySummaries(ctx context.Context, weekStart time.Time) ([]Summary, error) {
	members, err := s.members.ListActive(ctx)
	if err != nil {
		return nil, err
	}

	summaries := make([]Summary, 0, len(members))
	for _, m := range members {
		sum, err := s.summarize(ctx, m, weekStart)
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, sum)
	}
	return summaries, nil
}

func (s *BillingService) summarize(ctx context.Context, m models.Member, weekStart time.Time) (Summary, error) {
	meals, err := s.WeeklyMeals(ctx, m.ID, weekStart)
	if err != nil {
		return Summary{}, err
	}
	bill, err := s.WeeklyBill(ctx, m.ID, weekStart)
	if err != nil {
		return Summary{}, err
	}
	paid, err := s.payments.TotalPaid(ctx, m.ID)
	if err != nil {
		return Summary{}, err
	}

	return Summary{
		MemberID:     m.ID,
		SerialNumber: m.SerialNumber,
		Name:         m.Name,
		WeekStart:    calendar.Key(calendar.Day(weekStart)),
		Meals:        meals,
		Bill:         bill,
		Paid:         paid,
		Unpaid:       bill.Sub(paid),
	}, nil
}

func weekBounds(weekStart time.Time) (time.Time, time.Time) {
	from := calendar.Day(weekStart)
	return from, from.AddDate(0, 0, calendar.DaysInWeek-1)
}
