package attendance_test

import (
	"context"
	"database/sql"
	"testing"

	"go-payroll/internal/attendance"
	attendanceerrors "go-payroll/internal/attendance/errors"
	"go-payroll/internal/employee"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeRepo struct {
	stored map[string]*attendance.AttendanceSummary
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{stored: map[string]*attendance.AttendanceSummary{}}
}

func (f *fakeRepo) WithTx(tx *sql.Tx) attendance.Repository { return f }

func (f *fakeRepo) Upsert(ctx context.Context, summary *attendance.AttendanceSummary) error {
	f.stored[summary.EmployeeID.String()] = summary
	return nil
}

func (f *fakeRepo) FindByEmployeeAndPeriod(ctx context.Context, companyID, employeeID string, year, month int) (*attendance.AttendanceSummary, error) {
	summary, ok := f.stored[employeeID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return summary, nil
}

func (f *fakeRepo) FindAllByCompanyAndPeriod(ctx context.Context, companyID string, year, month int) ([]attendance.AttendanceSummary, error) {
	var out []attendance.AttendanceSummary
	for _, summary := range f.stored {
		out = append(out, *summary)
	}
	return out, nil
}

type fakeEmployeeRepo struct {
	known map[string]bool
}

func (f *fakeEmployeeRepo) FindEligible(ctx context.Context, companyID string, filter employee.EligibilityFilter) ([]employee.Employee, error) {
	return nil, nil
}

func (f *fakeEmployeeRepo) ExistsInCompany(ctx context.Context, companyID, employeeID string) (bool, error) {
	return f.known[employeeID], nil
}

func validRequest(employeeID string) attendance.UpsertAttendanceSummaryRequest {
	return attendance.UpsertAttendanceSummaryRequest{
		EmployeeID:     employeeID,
		PeriodYear:     2026,
		PeriodMonth:    7,
		TotalDays:      31,
		PresentDays:    27,
		PaidLeaveDays:  2,
		LossOfPayDays:  1,
		OtherLeaveDays: 1,
		OvertimeHours:  5,
	}
}

func TestUpsert(t *testing.T) {
	employeeID := uuid.New().String()
	repo := newFakeRepo()
	svc := attendance.NewService(repo, &fakeEmployeeRepo{known: map[string]bool{employeeID: true}})

	resp, err := svc.Upsert(context.Background(), uuid.New().String(), validRequest(employeeID))
	require.NoError(t, err)

	assert.Equal(t, employeeID, resp.EmployeeID)
	assert.Equal(t, 31, resp.TotalDays)
	assert.Equal(t, int64(5), resp.OvertimeHours)
	assert.False(t, resp.NeedsReview)
}

func TestUpsert_DayCountInvariant(t *testing.T) {
	employeeID := uuid.New().String()
	svc := attendance.NewService(newFakeRepo(), &fakeEmployeeRepo{known: map[string]bool{employeeID: true}})

	req := validRequest(employeeID)
	req.PresentDays = 30 // 30+2+1+1 != 31

	_, err := svc.Upsert(context.Background(), uuid.New().String(), req)
	assert.ErrorIs(t, err, attendanceerrors.ErrInvalidDayCounts)
}

func TestUpsert_UnknownEmployee(t *testing.T) {
	svc := attendance.NewService(newFakeRepo(), &fakeEmployeeRepo{known: map[string]bool{}})

	_, err := svc.Upsert(context.Background(), uuid.New().String(), validRequest(uuid.New().String()))
	assert.ErrorIs(t, err, attendanceerrors.ErrEmployeeNotFound)
}

func TestUpsert_ZeroDayPeriodFlagged(t *testing.T) {
	employeeID := uuid.New().String()
	repo := newFakeRepo()
	svc := attendance.NewService(repo, &fakeEmployeeRepo{known: map[string]bool{employeeID: true}})

	req := attendance.UpsertAttendanceSummaryRequest{
		EmployeeID:  employeeID,
		PeriodYear:  2026,
		PeriodMonth: 7,
	}

	resp, err := svc.Upsert(context.Background(), uuid.New().String(), req)
	require.NoError(t, err)
	assert.True(t, resp.NeedsReview)
}

func TestGetByEmployeeAndPeriod_NotFound(t *testing.T) {
	svc := attendance.NewService(newFakeRepo(), &fakeEmployeeRepo{})

	_, err := svc.GetByEmployeeAndPeriod(context.Background(), uuid.New().String(), uuid.New().String(), 2026, 7)
	assert.ErrorIs(t, err, attendanceerrors.ErrSummaryNotFound)
}

func TestPayableDays(t *testing.T) {
	summary := attendance.AttendanceSummary{TotalDays: 30, LossOfPayDays: 4}
	assert.Equal(t, 26, summary.PayableDays())

	summary = attendance.AttendanceSummary{TotalDays: 30, LossOfPayDays: 40}
	assert.Zero(t, summary.PayableDays())
}
