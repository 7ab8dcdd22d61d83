package statutory_test

import (
	"testing"

	"go-payroll/internal/statutory"
	statutoryerrors "go-payroll/internal/statutory/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPFContribution_CeilingApplied(t *testing.T) {
	rule := statutory.PFRule{
		WageCeiling:     15000,
		EmployeeRateBps: 1200,
		EmployerRateBps: 1200,
	}

	got, err := statutory.PFContribution(100000, rule, true)
	require.NoError(t, err)

	// 12% dari ceiling 15.000, bukan dari basic 100.000
	assert.Equal(t, int64(1800), got.Employee)
	assert.Equal(t, int64(1800), got.Employer)
}

func TestPFContribution_BelowCeiling(t *testing.T) {
	rule := statutory.PFRule{
		WageCeiling:     15000,
		EmployeeRateBps: 1200,
		EmployerRateBps: 1200,
	}

	got, err := statutory.PFContribution(10000, rule, true)
	require.NoError(t, err)
	assert.Equal(t, int64(1200), got.Employee)
}

func TestPFContribution_NotApplicable(t *testing.T) {
	rule := statutory.PFRule{WageCeiling: 15000, EmployeeRateBps: 1200, EmployerRateBps: 1200}

	got, err := statutory.PFContribution(10000, rule, false)
	require.NoError(t, err)
	assert.Zero(t, got.Employee)
	assert.Zero(t, got.Employer)
}

func TestPFContribution_NegativeBasic(t *testing.T) {
	_, err := statutory.PFContribution(-1, statutory.PFRule{}, true)
	assert.ErrorIs(t, err, statutoryerrors.ErrInvalidEarnings)
}

func TestESIContribution_StepFunctionAtCeiling(t *testing.T) {
	rule := statutory.ESIRule{
		WageCeiling:     21000,
		EmployeeRateBps: 75,
		EmployerRateBps: 325,
	}

	below, err := statutory.ESIContribution(20999, rule, true)
	require.NoError(t, err)
	assert.Positive(t, below.Employee)

	above, err := statutory.ESIContribution(21001, rule, true)
	require.NoError(t, err)
	// Melewati ambang menghentikan ESI seluruhnya, bukan phase-out.
	assert.Zero(t, above.Employee)
	assert.Zero(t, above.Employer)
}

func TestESIContribution_AtExactCeiling(t *testing.T) {
	rule := statutory.ESIRule{WageCeiling: 21000, EmployeeRateBps: 75, EmployerRateBps: 325}

	got, err := statutory.ESIContribution(21000, rule, true)
	require.NoError(t, err)
	assert.Equal(t, int64(21000*75/10000), got.Employee)
}

func TestProfessionalTax_BracketLookup(t *testing.T) {
	brackets := []statutory.TaxBracket{
		{UpTo: 10000, Amount: 0},
		{UpTo: 15000, Amount: 150},
		{Amount: 200},
	}

	cases := []struct {
		gross int64
		want  int64
	}{
		{0, 0},
		{10000, 0},
		{10001, 150},
		{15000, 150},
		{15001, 200},
		{1000000, 200},
	}

	for _, tc := range cases {
		got, err := statutory.ProfessionalTax(tc.gross, brackets)
		require.NoError(t, err)
		assert.Equal(t, tc.want, got, "gross %d", tc.gross)
	}
}

func TestProfessionalTax_NoBrackets(t *testing.T) {
	got, err := statutory.ProfessionalTax(50000, nil)
	require.NoError(t, err)
	assert.Zero(t, got)
}

func TestTDS_MarginalSlabs(t *testing.T) {
	slabs := []statutory.TaxSlab{
		{UpTo: 300000, RateBps: 0},
		{UpTo: 600000, RateBps: 500},
		{RateBps: 1000},
	}

	// Gross bulanan 60.000 → tahunan 720.000.
	// Slab 1: 0. Slab 2: 300.000 × 5% = 15.000. Slab 3: 120.000 × 10% = 12.000.
	// Total 27.000 / 12 = 2.250 per bulan.
	got, err := statutory.TDS(60000, slabs, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(2250), got)
}

func TestTDS_BelowFirstSlab(t *testing.T) {
	slabs := []statutory.TaxSlab{
		{UpTo: 300000, RateBps: 0},
		{RateBps: 500},
	}

	got, err := statutory.TDS(20000, slabs, nil)
	require.NoError(t, err)
	assert.Zero(t, got)
}

func TestTDS_PrecomputedShortCircuits(t *testing.T) {
	slabs := []statutory.TaxSlab{{RateBps: 3000}}
	precomputed := int64(1234)

	got, err := statutory.TDS(100000, slabs, &precomputed)
	require.NoError(t, err)
	// Nilai dari mesin pajak eksternal dipakai apa adanya.
	assert.Equal(t, int64(1234), got)
}

func TestTDS_NoSlabs(t *testing.T) {
	got, err := statutory.TDS(100000, nil, nil)
	require.NoError(t, err)
	assert.Zero(t, got)
}

func TestTDS_NegativeInputs(t *testing.T) {
	_, err := statutory.TDS(-1, nil, nil)
	assert.ErrorIs(t, err, statutoryerrors.ErrInvalidEarnings)

	negative := int64(-5)
	_, err = statutory.TDS(100, nil, &negative)
	assert.ErrorIs(t, err, statutoryerrors.ErrInvalidEarnings)
}
