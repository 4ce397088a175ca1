package services

import "gorm.io/gorm"

// Services bundles the ledgers and registries a request handler needs.
type Services struct {
	Members    *MemberService
	Prices     *PriceService
	Attendance *AttendanceService
	Payments   *PaymentService
	Billing    *BillingService
	Users      *UserService
	Self       *SelfService
}

func New(db *gorm.DB, cutoff *MealCutoff) *Services {
	members := NewMemberService(db)
	prices := NewPriceService(db)
	attendance := NewAttendanceService(db)
	payments := NewPaymentService(db)

	return &Services{
		Members:    members,
		Prices:     prices,
		Attendance: attendance,
		Payments:   payments,
		Billing:    NewBillingService(members, prices, attendance, payments),
		Users:      NewUserService(db),
		Self:       NewSelfService(attendance, cutoff),
	}
}
