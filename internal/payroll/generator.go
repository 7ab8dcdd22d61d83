package payroll

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go-payroll/internal/employee"
	"go-payroll/internal/events"
	"go-payroll/internal/metrics"
	payrollerrors "go-payroll/internal/payroll/errors"
	"go-payroll/internal/shared/counter"
	"go-payroll/internal/statutory"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// GenerateBatch menjalankan satu run payroll untuk satu perusahaan dan periode.
// Singleflight dengan kunci company:period meng-collapse dua run identik yang
// konkuren jadi satu; partial unique index di storage tetap jadi penjaga
// terakhir terhadap duplikat lintas proses.
func (s *service) GenerateBatch(
	ctx context.Context,
	companyID, actorID string,
	req GenerateBatchRequest,
) (BatchRunReport, error) {
	key := fmt.Sprintf("%s:%d-%02d", companyID, req.PeriodYear, req.PeriodMonth)

	result, err, _ := s.sf.Do(key, func() (any, error) {
		return s.runBatch(ctx, companyID, actorID, req)
	})
	if err != nil {
		return BatchRunReport{}, err
	}

	return result.(BatchRunReport), nil
}

func (s *service) runBatch(
	ctx context.Context,
	companyID, actorID string,
	req GenerateBatchRequest,
) (BatchRunReport, error) {
	started := time.Now()

	periodEnd := time.Date(req.PeriodYear, time.Month(req.PeriodMonth)+1, 0, 0, 0, 0, 0, time.UTC)

	// Tanpa rate table yang berlaku, batch berhenti di sini. Tidak ada
	// fallback diam-diam ke konstanta.
	rates, err := s.rateRepo.FindEffective(ctx, companyID, periodEnd)
	if err != nil {
		return BatchRunReport{}, err
	}

	population, err := s.employeeRepo.FindEligible(ctx, companyID, employee.EligibilityFilter{
		DepartmentID:    req.DepartmentID,
		IncludeInactive: req.IncludeInactive,
	})
	if err != nil {
		return BatchRunReport{}, err
	}

	runNumber, err := s.counterRepo.GetNextValue(ctx, companyID, counter.TypePayrollRun)
	if err != nil {
		return BatchRunReport{}, err
	}

	report := BatchRunReport{
		RunNumber:   runNumber,
		PeriodYear:  req.PeriodYear,
		PeriodMonth: req.PeriodMonth,
		Generated:   []string{},
		Failed:      []BatchFailure{},
		Skipped:     []string{},
	}
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.batchLimit)

	company, err := uuid.Parse(companyID)
	if err != nil {
		return BatchRunReport{}, err
	}

	for _, emp := range population {
		emp := emp
		g.Go(func() error {
			payrollID, err := s.generateOne(gctx, company, emp.ID, runNumber, rates, req)

			mu.Lock()
			defer mu.Unlock()

			switch {
			case errors.Is(err, payrollerrors.ErrDuplicatePeriod):
				report.Skipped = append(report.Skipped, emp.ID.String())
				metrics.BatchItemsSkipped.Inc()
			case err != nil:
				// Kegagalan satu karyawan tidak pernah menghentikan batch;
				// dilaporkan, bukan dilempar.
				report.Failed = append(report.Failed, BatchFailure{
					EmployeeID: emp.ID.String(),
					Reason:     failureReason(err),
				})
				metrics.BatchItemFailures.Inc()
			default:
				report.Generated = append(report.Generated, payrollID)
				metrics.PayrollRecordsGenerated.Inc()
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return BatchRunReport{}, err
	}

	metrics.BatchDuration.Observe(time.Since(started).Seconds())

	s.logger.Info("payroll batch finished",
		zap.String("company_id", companyID),
		zap.Int64("run_number", runNumber),
		zap.Int("period_year", req.PeriodYear),
		zap.Int("period_month", req.PeriodMonth),
		zap.Int("generated", len(report.Generated)),
		zap.Int("failed", len(report.Failed)),
		zap.Int("skipped", len(report.Skipped)),
		zap.String("actor_id", actorID),
		zap.Duration("took", time.Since(started)),
	)

	return report, nil
}

func (s *service) generateOne(
	ctx context.Context,
	companyID, employeeID uuid.UUID,
	runNumber int64,
	rates statutory.RateTable,
	req GenerateBatchRequest,
) (string, error) {
	exists, err := s.repo.ActiveExists(ctx, employeeID.String(), req.PeriodYear, req.PeriodMonth)
	if err != nil {
		return "", err
	}
	if exists {
		return "", payrollerrors.ErrDuplicatePeriod
	}

	snapshot, err := s.loadSnapshot(ctx, companyID.String(), employeeID.String(), req.PeriodYear, req.PeriodMonth)
	if err != nil {
		return "", err
	}
	snapshot.Rates = rates

	record, err := BuildRecord(snapshot)
	if err != nil {
		return "", err
	}

	record.ID = uuid.New()
	record.CompanyID = companyID
	record.EmployeeID = employeeID
	record.PeriodYear = req.PeriodYear
	record.PeriodMonth = req.PeriodMonth
	record.RunNumber = runNumber

	now := time.Now().UTC()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	if err := qtx.Create(ctx, record); err != nil {
		return "", err
	}

	event := events.PayrollGeneratedEvent{
		EventType:   "payroll.generated",
		PayrollID:   record.ID.String(),
		CompanyID:   companyID.String(),
		EmployeeID:  employeeID.String(),
		PeriodMonth: record.PeriodMonth,
		PeriodYear:  record.PeriodYear,
		RunNumber:   runNumber,
		NetSalary:   record.NetSalary(),
		OccurredAt:  now,
	}
	if err := s.enqueueEvent(ctx, tx, events.PayrollGeneratedTopic, record.ID.String(), event); err != nil {
		return "", err
	}

	if err := tx.Commit(); err != nil {
		return "", err
	}

	return record.ID.String(), nil
}
