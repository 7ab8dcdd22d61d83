package employee

import (
	"context"

	"gorm.io/gorm"
)

// EligibilityFilter membatasi populasi karyawan untuk satu batch payroll.
type EligibilityFilter struct {
	DepartmentID    string
	IncludeInactive bool
}

//go:generate mockgen -source=employee_repo.go -destination=mock/employee_repo_mock.go -package=mock
type Repository interface {
	FindEligible(ctx context.Context, companyID string, filter EligibilityFilter) ([]Employee, error)
	ExistsInCompany(ctx context.Context, companyID string, employeeID string) (bool, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) FindEligible(ctx context.Context, companyID string, filter EligibilityFilter) ([]Employee, error) {
	query := r.db.WithContext(ctx).
		Model(&Employee{}).
		Where("company_id = ?", companyID)

	if filter.DepartmentID != "" {
		query = query.Where("department_id = ?", filter.DepartmentID)
	}
	if !filter.IncludeInactive {
		query = query.Where("status = ?", StatusActive)
	}

	var employees []Employee
	err := query.Order("full_name ASC").Find(&employees).Error
	return employees, err
}

func (r *repository) ExistsInCompany(ctx context.Context, companyID string, employeeID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&Employee{}).
		Where("company_id = ?", companyID).
		Where("id = ?", employeeID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
