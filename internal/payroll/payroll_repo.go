package payroll

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	payrollerrors "go-payroll/internal/payroll/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// ListFilter membatasi listing payroll per perusahaan.
type ListFilter struct {
	PeriodYear        int
	PeriodMonth       int
	Status            Status
	IncludeSuperseded bool
	Limit             int
	Offset            int
}

//go:generate mockgen -source=payroll_repo.go -destination=mock/payroll_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	// Create mengandalkan partial unique index
	// uq_payroll_employee_period_active sebagai penjaga duplikat; pelanggaran
	// dipetakan ke ErrDuplicatePeriod.
	Create(ctx context.Context, record *PayrollRecord) error
	FindByIDAndCompany(ctx context.Context, companyID, id string) (*PayrollRecord, error)
	FindAllByCompany(ctx context.Context, companyID string, filter ListFilter) ([]PayrollRecord, int64, error)
	ActiveExists(ctx context.Context, employeeID string, year, month int) (bool, error)
	// UpdateTransition mempersistenkan hasil Lifecycle.Apply dengan optimistic
	// version check; nol baris ter-update berarti ErrStaleVersion.
	UpdateTransition(ctx context.Context, record *PayrollRecord, expectedVersion int) error
	AppendApproval(ctx context.Context, approval Approval) error
	MarkSuperseded(ctx context.Context, oldID string, newID string, at time.Time) error
}

type repository struct {
	db    *gorm.DB
	sqlDB *sql.DB
	tx    *sql.Tx
}

func NewRepository(db *gorm.DB, sqlDB *sql.DB) Repository {
	return &repository{db: db, sqlDB: sqlDB}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: r.db, sqlDB: r.sqlDB, tx: tx}
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func (r *repository) execer() execer {
	if r.tx != nil {
		return r.tx
	}
	return r.sqlDB
}

func (r *repository) Create(ctx context.Context, record *PayrollRecord) error {
	query := `
        INSERT INTO payroll_records (
            id, company_id, employee_id, period_year, period_month, run_number,
            basic, hra, special_allowance, conveyance, medical, education, lta,
            other_earnings, overtime,
            pf_employee, pf_employer, esi_employee, esi_employer,
            professional_tax, tds, loss_of_pay,
            total_days, present_days, paid_leave_days, loss_of_pay_days,
            overtime_hours,
            status, needs_review, version, created_at, updated_at
        ) VALUES (
            $1, $2, $3, $4, $5, $6,
            $7, $8, $9, $10, $11, $12, $13,
            $14, $15,
            $16, $17, $18, $19,
            $20, $21, $22,
            $23, $24, $25, $26,
            $27,
            $28, $29, $30, now(), now()
        )
    `

	_, err := r.execer().ExecContext(
		ctx, query,
		record.ID, record.CompanyID, record.EmployeeID,
		record.PeriodYear, record.PeriodMonth, record.RunNumber,
		record.Basic, record.HRA, record.SpecialAllowance, record.Conveyance,
		record.Medical, record.Education, record.LTA,
		record.OtherEarnings, record.Overtime,
		record.PFEmployee, record.PFEmployer, record.ESIEmployee, record.ESIEmployer,
		record.ProfessionalTax, record.TDS, record.LossOfPay,
		record.TotalDays, record.PresentDays, record.PaidLeaveDays, record.LossOfPayDays,
		record.OvertimeHours,
		record.Status, record.NeedsReview, record.Version,
	)
	return mapUniqueViolation(err)
}

func (r *repository) FindByIDAndCompany(ctx context.Context, companyID, id string) (*PayrollRecord, error) {
	var record PayrollRecord
	err := r.db.WithContext(ctx).
		Table("payroll_records").
		Select("payroll_records.*, employees.full_name AS employee_name").
		Joins("JOIN employees ON employees.id = payroll_records.employee_id").
		Where("payroll_records.id = ?", id).
		Where("payroll_records.company_id = ?", companyID).
		Preload("Approvals", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		}).
		First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, payrollerrors.ErrPayrollNotFound
	}
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *repository) FindAllByCompany(ctx context.Context, companyID string, filter ListFilter) ([]PayrollRecord, int64, error) {
	query := r.db.WithContext(ctx).
		Table("payroll_records").
		Select("payroll_records.*, employees.full_name AS employee_name").
		Joins("JOIN employees ON employees.id = payroll_records.employee_id").
		Where("payroll_records.company_id = ?", companyID)

	if filter.PeriodYear != 0 {
		query = query.Where("payroll_records.period_year = ?", filter.PeriodYear)
	}
	if filter.PeriodMonth != 0 {
		query = query.Where("payroll_records.period_month = ?", filter.PeriodMonth)
	}
	if filter.Status != "" {
		query = query.Where("payroll_records.status = ?", filter.Status)
	}
	if !filter.IncludeSuperseded {
		query = query.Where("payroll_records.superseded_at IS NULL")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if filter.Limit > 0 {
		query = query.Limit(filter.Limit).Offset(filter.Offset)
	}

	var records []PayrollRecord
	err := query.
		Order("employees.full_name ASC, payroll_records.created_at DESC").
		Find(&records).Error
	return records, total, err
}

func (r *repository) ActiveExists(ctx context.Context, employeeID string, year, month int) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&PayrollRecord{}).
		Where("employee_id = ?", employeeID).
		Where("period_year = ?", year).
		Where("period_month = ?", month).
		Where("superseded_at IS NULL").
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *repository) UpdateTransition(ctx context.Context, record *PayrollRecord, expectedVersion int) error {
	query := `
        UPDATE payroll_records
        SET status = $1,
            payment_date = $2,
            payment_mode = $3,
            submitted_at = $4,
            version = version + 1,
            updated_at = now()
        WHERE id = $5
          AND version = $6
          AND superseded_at IS NULL
    `

	res, err := r.execer().ExecContext(
		ctx, query,
		record.Status, record.PaymentDate, record.PaymentMode, record.SubmittedAt,
		record.ID, expectedVersion,
	)
	if err != nil {
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return payrollerrors.ErrStaleVersion
	}

	record.Version = expectedVersion + 1
	return nil
}

func (r *repository) AppendApproval(ctx context.Context, approval Approval) error {
	query := `
        INSERT INTO payroll_approvals (id, payroll_id, approver_id, decision, comments, created_at)
        VALUES ($1, $2, $3, $4, $5, $6)
    `

	_, err := r.execer().ExecContext(
		ctx, query,
		approval.ID, approval.PayrollID, approval.ApproverID,
		approval.Decision, approval.Comments, approval.CreatedAt,
	)
	return err
}

func (r *repository) MarkSuperseded(ctx context.Context, oldID string, newID string, at time.Time) error {
	query := `
        UPDATE payroll_records
        SET superseded_at = $1,
            superseded_by = $2,
            updated_at = now()
        WHERE id = $3
          AND superseded_at IS NULL
    `

	res, err := r.execer().ExecContext(ctx, query, at, newID, oldID)
	if err != nil {
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return payrollerrors.ErrRecordSuperseded
	}
	return nil
}

func mapUniqueViolation(err error) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == "23505" && pgErr.ConstraintName == "uq_payroll_employee_period_active" {
			return payrollerrors.ErrDuplicatePeriod
		}
	}

	errMsg := strings.ToLower(err.Error())
	if strings.Contains(errMsg, "duplicate key value") && strings.Contains(errMsg, "uq_payroll_employee_period_active") {
		return payrollerrors.ErrDuplicatePeriod
	}

	return err
}
