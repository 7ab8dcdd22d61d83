package salarystructure

import (
	"time"

	"github.com/google/uuid"
)

// SalaryStructure diversi per effective date: baris tidak pernah di-update,
// perubahan gaji selalu menjadi versi baru. Uang dalam satuan terkecil (paise),
// persentase dalam basis point.
type SalaryStructure struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	EmployeeID uuid.UUID `gorm:"type:uuid;index:idx_salary_structure_effective,unique"`

	AnnualCTC       int64 `gorm:"type:bigint;not null;default:0"`
	BasicAmount     int64 `gorm:"type:bigint;not null;default:0"`
	BasicPercentBps int64 `gorm:"type:bigint;not null;default:0"`
	HRAPercentBps   int64 `gorm:"type:bigint;not null;default:0"`

	// Tunjangan tetap bulanan
	Conveyance     int64 `gorm:"type:bigint;not null;default:0"`
	Medical        int64 `gorm:"type:bigint;not null;default:0"`
	Education      int64 `gorm:"type:bigint;not null;default:0"`
	LTA            int64 `gorm:"column:lta;type:bigint;not null;default:0"`
	OtherAllowance int64 `gorm:"type:bigint;not null;default:0"`

	OvertimeHourlyRate int64 `gorm:"type:bigint;not null;default:0"`

	PFApplicable  bool `gorm:"column:pf_applicable;not null;default:true"`
	ESIApplicable bool `gorm:"column:esi_applicable;not null;default:true"`

	BankName      string `gorm:"type:varchar(120)"`
	BankAccountNo string `gorm:"type:varchar(40)"`
	BankIFSC      string `gorm:"column:bank_ifsc;type:varchar(20)"`

	EffectiveDate time.Time `gorm:"type:date;not null;index:idx_salary_structure_effective,unique"`
	CreatedAt     time.Time
	UpdatedAt     time.Time

	EmployeeName string `gorm:"->"`
}

func (SalaryStructure) TableName() string {
	return "salary_structures"
}

// MonthlyBasic menurunkan basic bulanan: nominal eksplisit menang atas
// persentase CTC.
func (s SalaryStructure) MonthlyBasic() int64 {
	if s.BasicAmount > 0 {
		return s.BasicAmount
	}
	if s.BasicPercentBps > 0 {
		return s.AnnualCTC / 12 * s.BasicPercentBps / 10000
	}
	return 0
}

func (s SalaryStructure) MonthlyCTC() int64 {
	return s.AnnualCTC / 12
}

// FixedAllowancesTotal menjumlahkan tunjangan tetap bulanan (di luar basic/HRA).
func (s SalaryStructure) FixedAllowancesTotal() int64 {
	return s.Conveyance + s.Medical + s.Education + s.LTA + s.OtherAllowance
}
