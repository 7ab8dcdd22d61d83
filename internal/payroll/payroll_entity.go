package payroll

import (
	"time"

	"github.com/google/uuid"
)

type Status string

const (
	StatusGenerated       Status = "GENERATED"
	StatusPendingApproval Status = "PENDING_APPROVAL"
	StatusApproved        Status = "APPROVED"
	StatusPaid            Status = "PAID"
	StatusRejected        Status = "REJECTED"
)

// IsTerminal: PAID dan REJECTED tidak bisa dibuka kembali; koreksi dilakukan
// dengan record pengganti (supersede), bukan dengan mengubah record lama.
func (s Status) IsTerminal() bool {
	return s == StatusPaid || s == StatusRejected
}

func (s Status) Valid() bool {
	switch s {
	case StatusGenerated, StatusPendingApproval, StatusApproved, StatusPaid, StatusRejected:
		return true
	}
	return false
}

const (
	DecisionApproved = "APPROVED"
	DecisionRejected = "REJECTED"
)

// Approval adalah jejak audit append-only per record.
type Approval struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	PayrollID  uuid.UUID `gorm:"type:uuid;index;not null"`
	ApproverID uuid.UUID `gorm:"type:uuid;not null"`
	Decision   string    `gorm:"type:varchar(20);not null"`
	Comments   string    `gorm:"type:text"`
	CreatedAt  time.Time
}

func (Approval) TableName() string {
	return "payroll_approvals"
}

// PayrollRecord: satu karyawan, satu periode. Paling banyak satu record
// non-superseded per (employee, period); partial unique index
// uq_payroll_employee_period_active menjaga ini di level storage, bukan
// sekadar check-then-insert di aplikasi.
type PayrollRecord struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	CompanyID  uuid.UUID `gorm:"type:uuid;not null;index"`
	EmployeeID uuid.UUID `gorm:"type:uuid;not null;index:uq_payroll_employee_period_active,unique,where:superseded_at IS NULL"`

	PeriodYear  int `gorm:"not null;index:uq_payroll_employee_period_active,unique,where:superseded_at IS NULL"`
	PeriodMonth int `gorm:"not null;index:uq_payroll_employee_period_active,unique,where:superseded_at IS NULL"`

	RunNumber int64 `gorm:"not null;default:0"`

	// Earnings, sudah diskalakan dengan fraksi payable days. Overtime tidak
	// diskalakan. Semua dalam satuan terkecil.
	Basic            int64 `gorm:"not null;default:0"`
	HRA              int64 `gorm:"column:hra;not null;default:0"`
	SpecialAllowance int64 `gorm:"not null;default:0"`
	Conveyance       int64 `gorm:"not null;default:0"`
	Medical          int64 `gorm:"not null;default:0"`
	Education        int64 `gorm:"not null;default:0"`
	LTA              int64 `gorm:"column:lta;not null;default:0"`
	OtherEarnings    int64 `gorm:"not null;default:0"`
	Overtime         int64 `gorm:"not null;default:0"`

	// Deductions. LossOfPay adalah potongan bernama untuk slip gaji
	// (proxy basic+HRA full-rate); TIDAK ikut total_deductions karena
	// earnings di atas sudah dipotong lewat proration.
	PFEmployee      int64 `gorm:"column:pf_employee;not null;default:0"`
	PFEmployer      int64 `gorm:"column:pf_employer;not null;default:0"`
	ESIEmployee     int64 `gorm:"column:esi_employee;not null;default:0"`
	ESIEmployer     int64 `gorm:"column:esi_employer;not null;default:0"`
	ProfessionalTax int64 `gorm:"not null;default:0"`
	TDS             int64 `gorm:"column:tds;not null;default:0"`
	LossOfPay       int64 `gorm:"not null;default:0"`

	// Snapshot kehadiran saat generate; tidak dibaca ulang setelahnya.
	TotalDays     int   `gorm:"not null;default:0"`
	PresentDays   int   `gorm:"not null;default:0"`
	PaidLeaveDays int   `gorm:"not null;default:0"`
	LossOfPayDays int   `gorm:"not null;default:0"`
	OvertimeHours int64 `gorm:"not null;default:0"`

	Status      Status `gorm:"type:varchar(20);not null"`
	NeedsReview bool   `gorm:"not null;default:false"`

	// Version dinaikkan di setiap transisi; UPDATE ... WHERE version = ?
	// menserialisasi dua approval konkuren atas state yang sama.
	Version int `gorm:"not null;default:1"`

	PaymentDate *time.Time `gorm:"type:date"`
	PaymentMode string     `gorm:"type:varchar(30)"`

	SupersededAt *time.Time `gorm:"index"`
	SupersededBy *uuid.UUID `gorm:"type:uuid"`

	SubmittedAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Approvals []Approval `gorm:"foreignKey:PayrollID"`

	EmployeeName string `gorm:"->"`
}

func (PayrollRecord) TableName() string {
	return "payroll_records"
}

// GrossEarnings = jumlah persis seluruh field earnings. Tidak pernah disimpan.
func (p PayrollRecord) GrossEarnings() int64 {
	return p.Basic + p.HRA + p.SpecialAllowance + p.Conveyance + p.Medical +
		p.Education + p.LTA + p.OtherEarnings + p.Overtime
}

// TotalDeductions menjumlahkan potongan sisi karyawan. Kontribusi employer
// bukan potongan gaji; loss_of_pay hanya baris display (lihat komentar field).
func (p PayrollRecord) TotalDeductions() int64 {
	return p.PFEmployee + p.ESIEmployee + p.ProfessionalTax + p.TDS
}

// NetSalary selalu diturunkan saat dibaca, tidak pernah disimpan terpisah,
// supaya koreksi potongan tidak meninggalkan nilai basi.
func (p PayrollRecord) NetSalary() int64 {
	return p.GrossEarnings() - p.TotalDeductions()
}
