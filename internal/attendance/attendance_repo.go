package attendance

import (
	"context"
	"database/sql"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

//go:generate mockgen -source=attendance_repo.go -destination=mock/attendance_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Upsert(ctx context.Context, summary *AttendanceSummary) error
	FindByEmployeeAndPeriod(ctx context.Context, companyID string, employeeID string, year int, month int) (*AttendanceSummary, error)
	FindAllByCompanyAndPeriod(ctx context.Context, companyID string, year int, month int) ([]AttendanceSummary, error)
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

func (r *repository) Upsert(ctx context.Context, summary *AttendanceSummary) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{
				{Name: "employee_id"},
				{Name: "period_year"},
				{Name: "period_month"},
			},
			DoUpdates: clause.AssignmentColumns([]string{
				"total_days",
				"present_days",
				"paid_leave_days",
				"loss_of_pay_days",
				"other_leave_days",
				"overtime_hours",
				"needs_review",
				"updated_at",
			}),
		}).
		Create(summary).Error
}

func (r *repository) FindByEmployeeAndPeriod(ctx context.Context, companyID string, employeeID string, year int, month int) (*AttendanceSummary, error) {
	var summary AttendanceSummary
	err := r.db.WithContext(ctx).
		Table("attendance_summaries").
		Select("attendance_summaries.*, employees.full_name AS employee_name").
		Joins("JOIN employees ON employees.id = attendance_summaries.employee_id").
		Where("employees.company_id = ?", companyID).
		Where("attendance_summaries.employee_id = ?", employeeID).
		Where("attendance_summaries.period_year = ?", year).
		Where("attendance_summaries.period_month = ?", month).
		First(&summary).Error
	return &summary, err
}

func (r *repository) FindAllByCompanyAndPeriod(ctx context.Context, companyID string, year int, month int) ([]AttendanceSummary, error) {
	var summaries []AttendanceSummary
	query := `
SELECT
	attendance_summaries.*,
	employees.full_name AS employee_name
FROM attendance_summaries
JOIN employees ON employees.id = attendance_summaries.employee_id
WHERE employees.company_id = ?
	AND attendance_summaries.period_year = ?
	AND attendance_summaries.period_month = ?
ORDER BY employees.full_name ASC
`

	err := r.db.WithContext(ctx).Raw(query, companyID, year, month).Scan(&summaries).Error
	return summaries, err
}
