package payroll

import (
	"go-payroll/internal/attendance"
	payrollerrors "go-payroll/internal/payroll/errors"
	"go-payroll/internal/salarystructure"
	"go-payroll/internal/statutory"
)

// Semua fungsi di file ini pure dan deterministik: input yang sama selalu
// menghasilkan angka yang sama persis. Aritmetika integer satuan terkecil,
// pembagian selalu floor, tidak ada float.

// Proration adalah fraksi payable days sebagai pecahan eksak, bukan float,
// supaya penskalaan earnings bebas drift pembulatan.
type Proration struct {
	PayableDays int
	TotalDays   int
	NeedsReview bool
}

// Prorate: payableDays = totalDays - lossOfPayDays, di-clamp ke [0, totalDays].
// totalDays nol berarti periode cacat: fraksi dianggap 1 dan record ditandai
// untuk review manual alih-alih digenerate diam-diam.
func Prorate(summary attendance.AttendanceSummary) Proration {
	if summary.TotalDays <= 0 {
		return Proration{PayableDays: 1, TotalDays: 1, NeedsReview: true}
	}

	payable := summary.TotalDays - summary.LossOfPayDays
	if payable < 0 {
		payable = 0
	}
	if payable > summary.TotalDays {
		payable = summary.TotalDays
	}

	return Proration{
		PayableDays: payable,
		TotalDays:   summary.TotalDays,
		NeedsReview: summary.NeedsReview,
	}
}

func (p Proration) scale(amount int64) int64 {
	return amount * int64(p.PayableDays) / int64(p.TotalDays)
}

// Earnings breakdown bulanan, sudah diskalakan.
type Earnings struct {
	Basic            int64
	HRA              int64
	SpecialAllowance int64
	Conveyance       int64
	Medical          int64
	Education        int64
	LTA              int64
	Other            int64
	Overtime         int64
}

func (e Earnings) Gross() int64 {
	return e.Basic + e.HRA + e.SpecialAllowance + e.Conveyance + e.Medical +
		e.Education + e.LTA + e.Other + e.Overtime
}

// ResolveEarnings menurunkan breakdown earnings dari struktur gaji dan fraksi
// payable days. Special allowance adalah angka penyeimbang terhadap CTC
// bulanan; overtime ditambahkan tanpa diskalakan.
func ResolveEarnings(
	structure salarystructure.SalaryStructure,
	proration Proration,
	overtimeHours int64,
) (Earnings, error) {
	fullBasic := structure.MonthlyBasic()
	if fullBasic <= 0 || (structure.AnnualCTC <= 0 && structure.BasicAmount <= 0) {
		return Earnings{}, payrollerrors.ErrInvalidSalaryStructure
	}

	fullHRA := fullBasic * structure.HRAPercentBps / 10000

	fullSpecial := int64(0)
	if structure.AnnualCTC > 0 {
		remainder := structure.MonthlyCTC() - fullBasic - fullHRA - structure.FixedAllowancesTotal()
		if remainder > 0 {
			fullSpecial = remainder
		}
	}

	return Earnings{
		Basic:            proration.scale(fullBasic),
		HRA:              proration.scale(fullHRA),
		SpecialAllowance: proration.scale(fullSpecial),
		Conveyance:       proration.scale(structure.Conveyance),
		Medical:          proration.scale(structure.Medical),
		Education:        proration.scale(structure.Education),
		LTA:              proration.scale(structure.LTA),
		Other:            proration.scale(structure.OtherAllowance),
		Overtime:         overtimeHours * structure.OvertimeHourlyRate,
	}, nil
}

// LossOfPayAmount: proxy basic+HRA full-rate × lop/totalDays, dicatat sebagai
// baris potongan bernama di slip gaji. Earnings sudah dipotong lewat proration,
// jadi angka ini TIDAK masuk total_deductions — murni baris display. Pilihan
// kebijakan yang dipertahankan dari sistem upah berjalan, bukan oversight.
func LossOfPayAmount(structure salarystructure.SalaryStructure, summary attendance.AttendanceSummary) int64 {
	if summary.TotalDays <= 0 || summary.LossOfPayDays <= 0 {
		return 0
	}

	fullBasic := structure.MonthlyBasic()
	fullHRA := fullBasic * structure.HRAPercentBps / 10000

	return (fullBasic + fullHRA) * int64(summary.LossOfPayDays) / int64(summary.TotalDays)
}

// BuildInput adalah snapshot read-only yang dikonsumsi builder.
type BuildInput struct {
	Structure  salarystructure.SalaryStructure
	Attendance attendance.AttendanceSummary
	Rates      statutory.RateTable
	// PrecomputedTDS diisi bila mesin pajak eksternal sudah menghitung TDS;
	// builder memakainya apa adanya.
	PrecomputedTDS *int64
}

// BuildRecord menyusun PayrollRecord status GENERATED dari satu snapshot.
// ID, CompanyID, EmployeeID, periode, dan run number diisi pemanggil.
func BuildRecord(input BuildInput) (*PayrollRecord, error) {
	proration := Prorate(input.Attendance)

	earnings, err := ResolveEarnings(input.Structure, proration, input.Attendance.OvertimeHours)
	if err != nil {
		return nil, err
	}

	gross := earnings.Gross()

	pf, err := statutory.PFContribution(earnings.Basic, input.Rates.PF, input.Structure.PFApplicable)
	if err != nil {
		return nil, err
	}

	esi, err := statutory.ESIContribution(gross, input.Rates.ESI, input.Structure.ESIApplicable)
	if err != nil {
		return nil, err
	}

	profTax, err := statutory.ProfessionalTax(gross, input.Rates.ProfessionalTax)
	if err != nil {
		return nil, err
	}

	// TDS diproyeksikan dari gross full-rate, bukan gross yang sudah
	// dipotong LOP: proyeksi tahunan mengasumsikan bulan penuh.
	fullRate, err := ResolveEarnings(input.Structure, Proration{PayableDays: 1, TotalDays: 1}, input.Attendance.OvertimeHours)
	if err != nil {
		return nil, err
	}
	tds, err := statutory.TDS(fullRate.Gross(), input.Rates.TDSSlabs, input.PrecomputedTDS)
	if err != nil {
		return nil, err
	}

	return &PayrollRecord{
		Basic:            earnings.Basic,
		HRA:              earnings.HRA,
		SpecialAllowance: earnings.SpecialAllowance,
		Conveyance:       earnings.Conveyance,
		Medical:          earnings.Medical,
		Education:        earnings.Education,
		LTA:              earnings.LTA,
		OtherEarnings:    earnings.Other,
		Overtime:         earnings.Overtime,

		PFEmployee:      pf.Employee,
		PFEmployer:      pf.Employer,
		ESIEmployee:     esi.Employee,
		ESIEmployer:     esi.Employer,
		ProfessionalTax: profTax,
		TDS:             tds,
		LossOfPay:       LossOfPayAmount(input.Structure, input.Attendance),

		TotalDays:     input.Attendance.TotalDays,
		PresentDays:   input.Attendance.PresentDays,
		PaidLeaveDays: input.Attendance.PaidLeaveDays,
		LossOfPayDays: input.Attendance.LossOfPayDays,
		OvertimeHours: input.Attendance.OvertimeHours,

		Status:      StatusGenerated,
		NeedsReview: proration.NeedsReview,
		Version:     1,
	}, nil
}
