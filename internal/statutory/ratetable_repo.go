package statutory

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	statutoryerrors "go-payroll/internal/statutory/errors"
	"go-payroll/internal/tenant"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

//go:generate mockgen -source=ratetable_repo.go -destination=mock/ratetable_repo_mock.go -package=mock
type Repository interface {
	Create(ctx context.Context, companyID string, table RateTable) error
	// FindEffective mengembalikan rate table terakhir dengan
	// effective_from <= asOf. Tidak ada hasil = kesalahan konfigurasi,
	// bukan fallback diam-diam.
	FindEffective(ctx context.Context, companyID string, asOf time.Time) (RateTable, error)
	HasAny(ctx context.Context, companyID string) (bool, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, companyID string, table RateTable) error {
	if err := table.Validate(); err != nil {
		return err
	}

	companyUUID, err := uuid.Parse(companyID)
	if err != nil {
		return err
	}

	rules, err := json.Marshal(table)
	if err != nil {
		return err
	}

	record := RateTableRecord{
		ID:            uuid.New(),
		CompanyID:     companyUUID,
		EffectiveFrom: table.EffectiveFrom,
		Rules:         rules,
	}

	return r.db.WithContext(ctx).Create(&record).Error
}

func (r *repository) FindEffective(ctx context.Context, companyID string, asOf time.Time) (RateTable, error) {
	var record RateTableRecord
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Where("effective_from <= ?", asOf).
		Order("effective_from DESC").
		First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return RateTable{}, statutoryerrors.ErrRateTableNotFound
		}
		return RateTable{}, err
	}

	var table RateTable
	if err := json.Unmarshal(record.Rules, &table); err != nil {
		return RateTable{}, err
	}

	return table, nil
}

func (r *repository) HasAny(ctx context.Context, companyID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&RateTableRecord{}).
		Scopes(tenant.Scope(companyID)).
		Count(&count).Error
	return count > 0, err
}
