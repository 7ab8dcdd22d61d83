package salarystructure

import (
	"context"
	"database/sql"
	"time"

	"gorm.io/gorm"
)

//go:generate mockgen -source=salary_structure_repo.go -destination=mock/salary_structure_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, structure *SalaryStructure) error
	FindAllByCompany(ctx context.Context, companyID string) ([]SalaryStructure, error)
	FindByIDAndCompany(ctx context.Context, companyID string, id string) (*SalaryStructure, error)
	// FindEffective mengembalikan versi terakhir dengan
	// effective_date <= asOf untuk satu karyawan.
	FindEffective(ctx context.Context, companyID string, employeeID string, asOf time.Time) (*SalaryStructure, error)
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{
		db: r.db,
		tx: tx,
	}
}

func (r *repository) Create(ctx context.Context, structure *SalaryStructure) error {
	return r.db.WithContext(ctx).Create(structure).Error
}

func (r *repository) FindAllByCompany(ctx context.Context, companyID string) ([]SalaryStructure, error) {
	var structures []SalaryStructure
	query := `
SELECT
	salary_structures.*,
	employees.full_name AS employee_name
FROM salary_structures
JOIN employees ON employees.id = salary_structures.employee_id
WHERE employees.company_id = ?
ORDER BY
	employees.full_name ASC,
	salary_structures.effective_date DESC,
	salary_structures.created_at DESC
`

	err := r.db.WithContext(ctx).Raw(query, companyID).Scan(&structures).Error
	return structures, err
}

func (r *repository) FindByIDAndCompany(ctx context.Context, companyID string, id string) (*SalaryStructure, error) {
	var structure SalaryStructure
	err := r.db.WithContext(ctx).
		Table("salary_structures").
		Select("salary_structures.*, employees.full_name AS employee_name").
		Joins("JOIN employees ON employees.id = salary_structures.employee_id").
		Where("salary_structures.id = ?", id).
		Where("employees.company_id = ?", companyID).
		First(&structure).Error
	return &structure, err
}

func (r *repository) FindEffective(ctx context.Context, companyID string, employeeID string, asOf time.Time) (*SalaryStructure, error) {
	var structure SalaryStructure
	err := r.db.WithContext(ctx).
		Table("salary_structures").
		Select("salary_structures.*, employees.full_name AS employee_name").
		Joins("JOIN employees ON employees.id = salary_structures.employee_id").
		Where("salary_structures.employee_id = ?", employeeID).
		Where("employees.company_id = ?", companyID).
		Where("salary_structures.effective_date <= ?", asOf).
		Order("salary_structures.effective_date DESC").
		First(&structure).Error
	return &structure, err
}
