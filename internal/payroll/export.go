package payroll

import (
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"
)

var registerColumns = []string{
	"Employee", "Period", "Status",
	"Basic", "HRA", "Special Allowance", "Conveyance", "Medical", "Education",
	"LTA", "Other", "Overtime",
	"Gross Earnings",
	"PF", "ESI", "Professional Tax", "TDS", "Loss of Pay",
	"Total Deductions", "Net Salary",
}

// ExportRegister menyusun register payroll satu periode sebagai workbook XLSX.
// Hanya record aktif (non-superseded) yang masuk. Nilai ditulis dalam satuan
// terkecil, sama seperti API.
func (s *service) ExportRegister(
	ctx context.Context,
	companyID string,
	year, month int,
) ([]byte, string, error) {
	records, _, err := s.repo.FindAllByCompany(ctx, companyID, ListFilter{
		PeriodYear:  year,
		PeriodMonth: month,
	})
	if err != nil {
		return nil, "", err
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := "Payroll Register"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, "", err
	}

	for i, col := range registerColumns {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, "", err
		}
		if err := f.SetCellValue(sheet, cell, col); err != nil {
			return nil, "", err
		}
	}

	for row, record := range records {
		values := []any{
			record.EmployeeName,
			fmt.Sprintf("%04d-%02d", record.PeriodYear, record.PeriodMonth),
			string(record.Status),
			record.Basic, record.HRA, record.SpecialAllowance, record.Conveyance,
			record.Medical, record.Education, record.LTA, record.OtherEarnings,
			record.Overtime,
			record.GrossEarnings(),
			record.PFEmployee, record.ESIEmployee, record.ProfessionalTax,
			record.TDS, record.LossOfPay,
			record.TotalDeductions(), record.NetSalary(),
		}
		for col, value := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row+2)
			if err != nil {
				return nil, "", err
			}
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return nil, "", err
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("payroll-register-%04d-%02d.xlsx", year, month)
	return buf.Bytes(), filename, nil
}
