package statutory_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"go-payroll/internal/statutory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validTable() statutory.RateTable {
	return statutory.RateTable{
		EffectiveFrom: time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC),
		PF:            statutory.PFRule{WageCeiling: 15000, EmployeeRateBps: 1200, EmployerRateBps: 1200},
		ESI:           statutory.ESIRule{WageCeiling: 21000, EmployeeRateBps: 75, EmployerRateBps: 325},
		ProfessionalTax: []statutory.TaxBracket{
			{UpTo: 10000, Amount: 0},
			{Amount: 200},
		},
		TDSSlabs: []statutory.TaxSlab{
			{UpTo: 300000, RateBps: 0},
			{RateBps: 500},
		},
	}
}

func TestRateTableValidate(t *testing.T) {
	assert.NoError(t, validTable().Validate())
}

func TestRateTableValidate_MissingEffectiveFrom(t *testing.T) {
	table := validTable()
	table.EffectiveFrom = time.Time{}
	assert.Error(t, table.Validate())
}

func TestRateTableValidate_NonMonotonicBrackets(t *testing.T) {
	table := validTable()
	table.ProfessionalTax = []statutory.TaxBracket{
		{UpTo: 15000, Amount: 0},
		{UpTo: 10000, Amount: 150},
		{Amount: 200},
	}
	assert.Error(t, table.Validate())
}

func TestRateTableValidate_LowestBracketMustBeZero(t *testing.T) {
	table := validTable()
	table.ProfessionalTax = []statutory.TaxBracket{
		{UpTo: 10000, Amount: 100},
		{Amount: 200},
	}
	assert.Error(t, table.Validate())
}

func TestRateTableValidate_OpenSlabMustBeLast(t *testing.T) {
	table := validTable()
	table.TDSSlabs = []statutory.TaxSlab{
		{RateBps: 500},
		{UpTo: 300000, RateBps: 0},
	}
	assert.Error(t, table.Validate())
}

func TestLoadFile(t *testing.T) {
	content := `
effective_from: 2026-04-01T00:00:00Z
pf:
  wage_ceiling: 1500000
  employee_rate_bps: 1200
  employer_rate_bps: 1200
esi:
  wage_ceiling: 2100000
  employee_rate_bps: 75
  employer_rate_bps: 325
professional_tax:
  - up_to: 1000000
    amount: 0
  - amount: 20000
tds_slabs:
  - up_to: 30000000
    rate_bps: 0
  - rate_bps: 500
`
	path := filepath.Join(t.TempDir(), "rates.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	table, err := statutory.LoadFile(path)
	require.NoError(t, err)

	assert.Equal(t, int64(1500000), table.PF.WageCeiling)
	assert.Equal(t, int64(325), table.ESI.EmployerRateBps)
	assert.Len(t, table.ProfessionalTax, 2)
	assert.Len(t, table.TDSSlabs, 2)
	assert.Equal(t, 2026, table.EffectiveFrom.Year())
}

func TestLoadFile_InvalidTableRejected(t *testing.T) {
	content := `
effective_from: 2026-04-01T00:00:00Z
pf:
  wage_ceiling: 0
esi:
  wage_ceiling: 2100000
`
	path := filepath.Join(t.TempDir(), "rates.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	_, err := statutory.LoadFile(path)
	assert.Error(t, err)
}

func TestLoadFile_MissingFile(t *testing.T) {
	_, err := statutory.LoadFile(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
