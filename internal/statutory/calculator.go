package statutory

import (
	statutoryerrors "go-payroll/internal/statutory/errors"
)

// Kalkulator di file ini pure function: (earnings, rate table) -> potongan.
// Input yang absen menghasilkan 0, bukan error; hanya gross/basic negatif yang
// ditolak karena itu cacat di hulu.

type Contribution struct {
	Employee int64
	Employer int64
}

// PFContribution: min(basic, ceiling) × rate. Tidak berlaku jika struktur
// gaji menandai pf_applicable = false.
func PFContribution(basic int64, rule PFRule, applicable bool) (Contribution, error) {
	if basic < 0 {
		return Contribution{}, statutoryerrors.ErrInvalidEarnings
	}
	if !applicable || basic == 0 {
		return Contribution{}, nil
	}

	wage := basic
	if wage > rule.WageCeiling {
		wage = rule.WageCeiling
	}

	return Contribution{
		Employee: wage * rule.EmployeeRateBps / 10000,
		Employer: wage * rule.EmployerRateBps / 10000,
	}, nil
}

// ESIContribution berlaku hanya bila gross ≤ ceiling. Ini step function yang
// disengaja: melewati ambang menghentikan ESI seluruhnya, bukan phase-out.
func ESIContribution(gross int64, rule ESIRule, applicable bool) (Contribution, error) {
	if gross < 0 {
		return Contribution{}, statutoryerrors.ErrInvalidEarnings
	}
	if !applicable || gross == 0 || gross > rule.WageCeiling {
		return Contribution{}, nil
	}

	return Contribution{
		Employee: gross * rule.EmployeeRateBps / 10000,
		Employer: gross * rule.EmployerRateBps / 10000,
	}, nil
}

// ProfessionalTax: lookup bracket monoton atas gross bulanan, bukan formula.
func ProfessionalTax(gross int64, brackets []TaxBracket) (int64, error) {
	if gross < 0 {
		return 0, statutoryerrors.ErrInvalidEarnings
	}

	for _, b := range brackets {
		if b.UpTo == 0 || gross <= b.UpTo {
			return b.Amount, nil
		}
	}

	return 0, nil
}

// TDS memproyeksikan gross bulanan full-rate menjadi tahunan, menghitung pajak
// marginal per slab, lalu membaginya ke 12 bulan (floor ke satuan terkecil).
//
// Escape hatch: kalau mesin pajak eksternal sudah menyuplai nilai TDS,
// precomputed dipakai apa adanya — jangan dihitung ulang di sini.
func TDS(monthlyGross int64, slabs []TaxSlab, precomputed *int64) (int64, error) {
	if monthlyGross < 0 {
		return 0, statutoryerrors.ErrInvalidEarnings
	}
	if precomputed != nil {
		if *precomputed < 0 {
			return 0, statutoryerrors.ErrInvalidEarnings
		}
		return *precomputed, nil
	}
	if len(slabs) == 0 {
		return 0, nil
	}

	annualGross := monthlyGross * 12

	var annualTax int64
	var lower int64
	for _, s := range slabs {
		upper := s.UpTo
		if upper == 0 || upper > annualGross {
			upper = annualGross
		}
		if upper > lower {
			annualTax += (upper - lower) * s.RateBps / 10000
		}
		if s.UpTo == 0 || annualGross <= s.UpTo {
			break
		}
		lower = s.UpTo
	}

	return annualTax / 12, nil
}
