package attendance

import (
	"time"

	"github.com/google/uuid"
)

// AttendanceSummary adalah snapshot kehadiran per karyawan per periode,
// di-upsert oleh sistem absensi. Invariant jumlah hari:
// present + paid_leave + loss_of_pay + other_leave = total_days.
type AttendanceSummary struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	EmployeeID uuid.UUID `gorm:"type:uuid;index:idx_attendance_employee_period,unique"`

	PeriodYear  int `gorm:"not null;index:idx_attendance_employee_period,unique"`
	PeriodMonth int `gorm:"not null;index:idx_attendance_employee_period,unique"`

	TotalDays      int `gorm:"not null;default:0"`
	PresentDays    int `gorm:"not null;default:0"`
	PaidLeaveDays  int `gorm:"not null;default:0"`
	LossOfPayDays  int `gorm:"not null;default:0"`
	OtherLeaveDays int `gorm:"not null;default:0"`

	OvertimeHours int64 `gorm:"not null;default:0"`

	NeedsReview bool `gorm:"not null;default:false"`

	CreatedAt time.Time
	UpdatedAt time.Time

	EmployeeName string `gorm:"->"`
}

func (AttendanceSummary) TableName() string {
	return "attendance_summaries"
}

// PayableDays = total_days - loss_of_pay_days.
func (a AttendanceSummary) PayableDays() int {
	payable := a.TotalDays - a.LossOfPayDays
	if payable < 0 {
		return 0
	}
	return payable
}

// DayCountsConsistent memeriksa invariant jumlah hari.
func (a AttendanceSummary) DayCountsConsistent() bool {
	return a.PresentDays+a.PaidLeaveDays+a.LossOfPayDays+a.OtherLeaveDays == a.TotalDays
}
