package payroll

type GenerateBatchRequest struct {
	PeriodYear      int    `json:"period_year" binding:"required,min=2000,max=2100"`
	PeriodMonth     int    `json:"period_month" binding:"required,min=1,max=12"`
	DepartmentID    string `json:"department_id" binding:"omitempty,uuid"`
	IncludeInactive bool   `json:"include_inactive"`
}

type TransitionRequest struct {
	TargetStatus string `json:"target_status" binding:"required"`
	Comments     string `json:"comments"`
	PaymentDate  string `json:"payment_date"`
	PaymentMode  string `json:"payment_mode"`
}

type BulkTransitionRequest struct {
	RecordIDs    []string `json:"record_ids" binding:"required,min=1,dive,uuid"`
	TargetStatus string   `json:"target_status" binding:"required"`
	Comments     string   `json:"comments"`
	PaymentDate  string   `json:"payment_date"`
	PaymentMode  string   `json:"payment_mode"`
}

type SupersedeRequest struct {
	// PrecomputedTDS opsional, dari mesin pajak eksternal.
	PrecomputedTDS *int64 `json:"precomputed_tds" binding:"omitempty,min=0"`
}

type EarningsResponse struct {
	Basic            int64 `json:"basic"`
	HRA              int64 `json:"hra"`
	SpecialAllowance int64 `json:"special_allowance"`
	Conveyance       int64 `json:"conveyance"`
	Medical          int64 `json:"medical"`
	Education        int64 `json:"education"`
	LTA              int64 `json:"lta"`
	Other            int64 `json:"other"`
	Overtime         int64 `json:"overtime"`
}

type DeductionsResponse struct {
	PFEmployee      int64 `json:"pf_employee"`
	PFEmployer      int64 `json:"pf_employer"`
	ESIEmployee     int64 `json:"esi_employee"`
	ESIEmployer     int64 `json:"esi_employer"`
	ProfessionalTax int64 `json:"professional_tax"`
	TDS             int64 `json:"tds"`
	LossOfPay       int64 `json:"loss_of_pay"`
}

type SummaryResponse struct {
	GrossEarnings   int64 `json:"gross_earnings"`
	TotalDeductions int64 `json:"total_deductions"`
	NetSalary       int64 `json:"net_salary"`
}

type AttendanceSnapshotResponse struct {
	TotalDays     int   `json:"total_days"`
	PresentDays   int   `json:"present_days"`
	PaidLeaveDays int   `json:"paid_leave_days"`
	LossOfPayDays int   `json:"loss_of_pay_days"`
	OvertimeHours int64 `json:"overtime_hours"`
}

type ApprovalResponse struct {
	ApproverID string `json:"approver_id"`
	Decision   string `json:"decision"`
	Comments   string `json:"comments,omitempty"`
	CreatedAt  string `json:"created_at"`
}

type PayrollResponse struct {
	ID           string `json:"id"`
	EmployeeID   string `json:"employee_id"`
	EmployeeName string `json:"employee_name,omitempty"`
	PeriodYear   int    `json:"period_year"`
	PeriodMonth  int    `json:"period_month"`
	RunNumber    int64  `json:"run_number"`

	Earnings   EarningsResponse           `json:"earnings"`
	Deductions DeductionsResponse         `json:"deductions"`
	Summary    SummaryResponse            `json:"summary"`
	Attendance AttendanceSnapshotResponse `json:"attendance"`

	Status      string `json:"status"`
	NeedsReview bool   `json:"needs_review"`
	Version     int    `json:"version"`

	Approvals []ApprovalResponse `json:"approvals"`

	PaymentDate *string `json:"payment_date,omitempty"`
	PaymentMode string  `json:"payment_mode,omitempty"`

	SupersededAt *string `json:"superseded_at,omitempty"`
	SupersededBy *string `json:"superseded_by,omitempty"`
}

type BatchFailure struct {
	EmployeeID string `json:"employee_id"`
	Reason     string `json:"reason"`
}

// BatchRunReport adalah kontrak kelengkapan yang diandalkan operator HR:
// generated + failed + skipped mencakup seluruh populasi batch.
type BatchRunReport struct {
	RunNumber   int64          `json:"run_number"`
	PeriodYear  int            `json:"period_year"`
	PeriodMonth int            `json:"period_month"`
	Generated   []string       `json:"generated"`
	Failed      []BatchFailure `json:"failed"`
	Skipped     []string       `json:"skipped"`
}

type BulkFailure struct {
	ID     string `json:"id"`
	Reason string `json:"reason"`
}

type BulkTransitionReport struct {
	Succeeded []string      `json:"succeeded"`
	Failed    []BulkFailure `json:"failed"`
}
