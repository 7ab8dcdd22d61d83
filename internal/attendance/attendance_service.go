package attendance

import (
	"context"
	"errors"

	attendanceerrors "go-payroll/internal/attendance/errors"
	"go-payroll/internal/employee"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

//go:generate mockgen -source=attendance_service.go -destination=mock/attendance_service_mock.go -package=mock
type Service interface {
	// Upsert menerima snapshot kehadiran dari sistem absensi. Periode dengan
	// total_days nol tetap diterima tetapi ditandai needs_review supaya
	// payroll tidak digenerate diam-diam dari data cacat.
	Upsert(ctx context.Context, companyID string, req UpsertAttendanceSummaryRequest) (AttendanceSummaryResponse, error)
	GetByEmployeeAndPeriod(ctx context.Context, companyID, employeeID string, year, month int) (AttendanceSummaryResponse, error)
	GetAllByPeriod(ctx context.Context, companyID string, year, month int) ([]AttendanceSummaryResponse, error)
}

type service struct {
	repo         Repository
	employeeRepo employee.Repository
}

func NewService(repo Repository, employeeRepo employee.Repository) Service {
	return &service{
		repo:         repo,
		employeeRepo: employeeRepo,
	}
}

func (s *service) Upsert(
	ctx context.Context,
	companyID string,
	req UpsertAttendanceSummaryRequest,
) (AttendanceSummaryResponse, error) {
	if req.PresentDays+req.PaidLeaveDays+req.LossOfPayDays+req.OtherLeaveDays != req.TotalDays {
		return AttendanceSummaryResponse{}, attendanceerrors.ErrInvalidDayCounts
	}

	exists, err := s.employeeRepo.ExistsInCompany(ctx, companyID, req.EmployeeID)
	if err != nil {
		return AttendanceSummaryResponse{}, err
	}
	if !exists {
		return AttendanceSummaryResponse{}, attendanceerrors.ErrEmployeeNotFound
	}

	employeeID, err := uuid.Parse(req.EmployeeID)
	if err != nil {
		return AttendanceSummaryResponse{}, err
	}

	summary := &AttendanceSummary{
		ID:             uuid.New(),
		EmployeeID:     employeeID,
		PeriodYear:     req.PeriodYear,
		PeriodMonth:    req.PeriodMonth,
		TotalDays:      req.TotalDays,
		PresentDays:    req.PresentDays,
		PaidLeaveDays:  req.PaidLeaveDays,
		LossOfPayDays:  req.LossOfPayDays,
		OtherLeaveDays: req.OtherLeaveDays,
		OvertimeHours:  req.OvertimeHours,
		NeedsReview:    req.TotalDays == 0,
	}

	if err := s.repo.Upsert(ctx, summary); err != nil {
		return AttendanceSummaryResponse{}, err
	}

	stored, err := s.repo.FindByEmployeeAndPeriod(ctx, companyID, req.EmployeeID, req.PeriodYear, req.PeriodMonth)
	if err != nil {
		return AttendanceSummaryResponse{}, mapNotFound(err)
	}

	return mapToResponse(*stored), nil
}

func (s *service) GetByEmployeeAndPeriod(
	ctx context.Context,
	companyID, employeeID string,
	year, month int,
) (AttendanceSummaryResponse, error) {
	summary, err := s.repo.FindByEmployeeAndPeriod(ctx, companyID, employeeID, year, month)
	if err != nil {
		return AttendanceSummaryResponse{}, mapNotFound(err)
	}

	return mapToResponse(*summary), nil
}

func (s *service) GetAllByPeriod(
	ctx context.Context,
	companyID string,
	year, month int,
) ([]AttendanceSummaryResponse, error) {
	summaries, err := s.repo.FindAllByCompanyAndPeriod(ctx, companyID, year, month)
	if err != nil {
		return nil, err
	}

	res := make([]AttendanceSummaryResponse, len(summaries))
	for i, summary := range summaries {
		res[i] = mapToResponse(summary)
	}
	return res, nil
}

func mapNotFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return attendanceerrors.ErrSummaryNotFound
	}
	return err
}

func mapToResponse(summary AttendanceSummary) AttendanceSummaryResponse {
	return AttendanceSummaryResponse{
		ID:             summary.ID.String(),
		EmployeeID:     summary.EmployeeID.String(),
		EmployeeName:   summary.EmployeeName,
		PeriodYear:     summary.PeriodYear,
		PeriodMonth:    summary.PeriodMonth,
		TotalDays:      summary.TotalDays,
		PresentDays:    summary.PresentDays,
		PaidLeaveDays:  summary.PaidLeaveDays,
		LossOfPayDays:  summary.LossOfPayDays,
		OtherLeaveDays: summary.OtherLeaveDays,
		OvertimeHours:  summary.OvertimeHours,
		NeedsReview:    summary.NeedsReview,
	}
}
