package salarystructure

type CreateSalaryStructureRequest struct {
	EmployeeID         string `json:"employee_id" binding:"required,uuid"`
	AnnualCTC          int64  `json:"annual_ctc" binding:"min=0"`
	BasicAmount        int64  `json:"basic_amount" binding:"min=0"`
	BasicPercentBps    int64  `json:"basic_percent_bps" binding:"min=0,max=10000"`
	HRAPercentBps      int64  `json:"hra_percent_bps" binding:"min=0,max=10000"`
	Conveyance         int64  `json:"conveyance" binding:"min=0"`
	Medical            int64  `json:"medical" binding:"min=0"`
	Education          int64  `json:"education" binding:"min=0"`
	LTA                int64  `json:"lta" binding:"min=0"`
	OtherAllowance     int64  `json:"other_allowance" binding:"min=0"`
	OvertimeHourlyRate int64  `json:"overtime_hourly_rate" binding:"min=0"`
	PFApplicable       *bool  `json:"pf_applicable"`
	ESIApplicable      *bool  `json:"esi_applicable"`
	BankName           string `json:"bank_name"`
	BankAccountNo      string `json:"bank_account_no"`
	BankIFSC           string `json:"bank_ifsc"`
	EffectiveDate      string `json:"effective_date" binding:"required"`
}

type UpdateSalaryStructureRequest = CreateSalaryStructureRequest

type SalaryStructureResponse struct {
	ID                 string `json:"id"`
	EmployeeID         string `json:"employee_id"`
	EmployeeName       string `json:"employee_name,omitempty"`
	AnnualCTC          int64  `json:"annual_ctc"`
	BasicAmount        int64  `json:"basic_amount"`
	BasicPercentBps    int64  `json:"basic_percent_bps"`
	HRAPercentBps      int64  `json:"hra_percent_bps"`
	Conveyance         int64  `json:"conveyance"`
	Medical            int64  `json:"medical"`
	Education          int64  `json:"education"`
	LTA                int64  `json:"lta"`
	OtherAllowance     int64  `json:"other_allowance"`
	OvertimeHourlyRate int64  `json:"overtime_hourly_rate"`
	PFApplicable       bool   `json:"pf_applicable"`
	ESIApplicable      bool   `json:"esi_applicable"`
	BankName           string `json:"bank_name,omitempty"`
	BankAccountNo      string `json:"bank_account_no,omitempty"`
	BankIFSC           string `json:"bank_ifsc,omitempty"`
	EffectiveDate      string `json:"effective_date"`
}
