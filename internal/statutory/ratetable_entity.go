package statutory

import (
	"time"

	"github.com/google/uuid"
)

type RateTableRecord struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyID     uuid.UUID `gorm:"type:uuid;not null;index:idx_ratetable_company_effective,unique"`
	EffectiveFrom time.Time `gorm:"type:date;not null;index:idx_ratetable_company_effective,unique"`
	Rules         []byte    `gorm:"type:jsonb;not null"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (RateTableRecord) TableName() string {
	return "statutory_rate_tables"
}
