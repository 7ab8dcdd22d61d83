package attendance

type UpsertAttendanceSummaryRequest struct {
	EmployeeID     string `json:"employee_id" binding:"required,uuid"`
	PeriodYear     int    `json:"period_year" binding:"required,min=2000,max=2100"`
	PeriodMonth    int    `json:"period_month" binding:"required,min=1,max=12"`
	TotalDays      int    `json:"total_days" binding:"min=0,max=31"`
	PresentDays    int    `json:"present_days" binding:"min=0,max=31"`
	PaidLeaveDays  int    `json:"paid_leave_days" binding:"min=0,max=31"`
	LossOfPayDays  int    `json:"loss_of_pay_days" binding:"min=0,max=31"`
	OtherLeaveDays int    `json:"other_leave_days" binding:"min=0,max=31"`
	OvertimeHours  int64  `json:"overtime_hours" binding:"min=0"`
}

type AttendanceSummaryResponse struct {
	ID             string `json:"id"`
	EmployeeID     string `json:"employee_id"`
	EmployeeName   string `json:"employee_name,omitempty"`
	PeriodYear     int    `json:"period_year"`
	PeriodMonth    int    `json:"period_month"`
	TotalDays      int    `json:"total_days"`
	PresentDays    int    `json:"present_days"`
	PaidLeaveDays  int    `json:"paid_leave_days"`
	LossOfPayDays  int    `json:"loss_of_pay_days"`
	OtherLeaveDays int    `json:"other_leave_days"`
	OvertimeHours  int64  `json:"overtime_hours"`
	NeedsReview    bool   `json:"needs_review"`
}
