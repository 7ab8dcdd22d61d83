package statutory

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Semua nilai uang dalam satuan terkecil (paise), semua tarif dalam basis point
// (1200 bps = 12%). Tabel ber-effective-date supaya periode lama dihitung ulang
// dengan tarif yang berlaku saat itu.

type PFRule struct {
	WageCeiling     int64 `yaml:"wage_ceiling" json:"wage_ceiling"`
	EmployeeRateBps int64 `yaml:"employee_rate_bps" json:"employee_rate_bps"`
	EmployerRateBps int64 `yaml:"employer_rate_bps" json:"employer_rate_bps"`
}

type ESIRule struct {
	WageCeiling     int64 `yaml:"wage_ceiling" json:"wage_ceiling"`
	EmployeeRateBps int64 `yaml:"employee_rate_bps" json:"employee_rate_bps"`
	EmployerRateBps int64 `yaml:"employer_rate_bps" json:"employer_rate_bps"`
}

// TaxBracket: pajak profesi bulanan per bracket gross. UpTo = 0 berarti bracket
// teratas tanpa batas.
type TaxBracket struct {
	UpTo   int64 `yaml:"up_to,omitempty" json:"up_to,omitempty"`
	Amount int64 `yaml:"amount" json:"amount"`
}

// TaxSlab: slab TDS tahunan, marginal. UpTo = 0 berarti slab teratas.
type TaxSlab struct {
	UpTo    int64 `yaml:"up_to,omitempty" json:"up_to,omitempty"`
	RateBps int64 `yaml:"rate_bps" json:"rate_bps"`
}

type RateTable struct {
	EffectiveFrom   time.Time    `yaml:"effective_from" json:"effective_from"`
	PF              PFRule       `yaml:"pf" json:"pf"`
	ESI             ESIRule      `yaml:"esi" json:"esi"`
	ProfessionalTax []TaxBracket `yaml:"professional_tax" json:"professional_tax"`
	TDSSlabs        []TaxSlab    `yaml:"tds_slabs" json:"tds_slabs"`
}

func (t RateTable) Validate() error {
	if t.EffectiveFrom.IsZero() {
		return fmt.Errorf("rate table: effective_from is required")
	}
	if t.PF.WageCeiling <= 0 {
		return fmt.Errorf("rate table: pf wage_ceiling must be positive")
	}
	if t.ESI.WageCeiling <= 0 {
		return fmt.Errorf("rate table: esi wage_ceiling must be positive")
	}

	var prev int64
	for i, b := range t.ProfessionalTax {
		last := i == len(t.ProfessionalTax)-1
		if b.UpTo == 0 && !last {
			return fmt.Errorf("rate table: open professional_tax bracket must be last")
		}
		if !last && b.UpTo <= prev {
			return fmt.Errorf("rate table: professional_tax brackets must be strictly increasing")
		}
		if b.Amount < 0 {
			return fmt.Errorf("rate table: professional_tax amount cannot be negative")
		}
		prev = b.UpTo
	}
	if len(t.ProfessionalTax) > 0 && t.ProfessionalTax[0].Amount != 0 {
		return fmt.Errorf("rate table: lowest professional_tax bracket must be zero")
	}

	prev = 0
	for i, s := range t.TDSSlabs {
		last := i == len(t.TDSSlabs)-1
		if s.UpTo == 0 && !last {
			return fmt.Errorf("rate table: open tds slab must be last")
		}
		if !last && s.UpTo <= prev {
			return fmt.Errorf("rate table: tds slabs must be strictly increasing")
		}
		if s.RateBps < 0 {
			return fmt.Errorf("rate table: tds rate cannot be negative")
		}
		prev = s.UpTo
	}

	return nil
}

// LoadFile membaca rate table dari file YAML (bootstrap/seed).
func LoadFile(path string) (RateTable, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return RateTable{}, fmt.Errorf("read rate table file: %w", err)
	}

	var table RateTable
	if err := yaml.Unmarshal(raw, &table); err != nil {
		return RateTable{}, fmt.Errorf("parse rate table file: %w", err)
	}

	if err := table.Validate(); err != nil {
		return RateTable{}, err
	}

	return table, nil
}
