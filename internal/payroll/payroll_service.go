package payroll

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"go-payroll/internal/attendance"
	"go-payroll/internal/employee"
	"go-payroll/internal/events"
	"go-payroll/internal/messaging/kafka"
	"go-payroll/internal/metrics"
	payrollerrors "go-payroll/internal/payroll/errors"
	"go-payroll/internal/salarystructure"
	"go-payroll/internal/shared/apperror"
	"go-payroll/internal/shared/contextutil"
	"go-payroll/internal/shared/counter"
	"go-payroll/internal/statutory"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

//go:generate mockgen -source=payroll_service.go -destination=mock/payroll_service_mock.go -package=mock
type Service interface {
	// GenerateBatch idempoten: karyawan yang sudah punya record aktif untuk
	// periode itu dilaporkan sebagai skipped, bukan digenerate ulang.
	GenerateBatch(ctx context.Context, companyID, actorID string, req GenerateBatchRequest) (BatchRunReport, error)
	Transition(ctx context.Context, companyID, recordID, actorID, actorRole string, req TransitionRequest) (PayrollResponse, error)
	BulkTransition(ctx context.Context, companyID, actorID, actorRole string, req BulkTransitionRequest) (BulkTransitionReport, error)
	GetAll(ctx context.Context, companyID string, filter ListFilter) ([]PayrollResponse, int64, error)
	GetByID(ctx context.Context, companyID, id string) (PayrollResponse, error)
	// Supersede membuat record koreksi untuk record terminal; record lama
	// dibekukan untuk audit, tidak pernah dibuka kembali.
	Supersede(ctx context.Context, companyID, recordID, actorID string, req SupersedeRequest) (PayrollResponse, error)
	ExportRegister(ctx context.Context, companyID string, year, month int) ([]byte, string, error)
}

type service struct {
	db             *sql.DB
	repo           Repository
	employeeRepo   employee.Repository
	structureRepo  salarystructure.Repository
	attendanceRepo attendance.Repository
	rateRepo       statutory.Repository
	counterRepo    counter.Repository
	outboxRepo     kafka.OutboxRepository
	lifecycle      *Lifecycle
	logger         *zap.Logger

	batchLimit int
	sf         singleflight.Group
}

func NewService(
	db *sql.DB,
	repo Repository,
	employeeRepo employee.Repository,
	structureRepo salarystructure.Repository,
	attendanceRepo attendance.Repository,
	rateRepo statutory.Repository,
	counterRepo counter.Repository,
	outboxRepo kafka.OutboxRepository,
	lifecycle *Lifecycle,
	logger *zap.Logger,
) Service {
	return &service{
		db:             db,
		repo:           repo,
		employeeRepo:   employeeRepo,
		structureRepo:  structureRepo,
		attendanceRepo: attendanceRepo,
		rateRepo:       rateRepo,
		counterRepo:    counterRepo,
		outboxRepo:     outboxRepo,
		lifecycle:      lifecycle,
		logger:         logger.Named("payroll_service"),
		batchLimit:     8,
	}
}

func (s *service) Transition(
	ctx context.Context,
	companyID, recordID, actorID, actorRole string,
	req TransitionRequest,
) (PayrollResponse, error) {
	input, err := transitionInputFromRequest(actorID, req)
	if err != nil {
		return PayrollResponse{}, err
	}

	record, err := s.repo.FindByIDAndCompany(ctx, companyID, recordID)
	if err != nil {
		return PayrollResponse{}, err
	}

	updated, err := s.applyTransition(ctx, record, input, actorRole)
	if err != nil {
		return PayrollResponse{}, err
	}

	return mapToResponse(*updated), nil
}

// applyTransition menjalankan guard state machine lalu mempersistenkan hasilnya
// dalam satu transaksi bersama entri approval dan event outbox. Version check
// di UPDATE menserialisasi dua transisi konkuren atas record yang sama.
func (s *service) applyTransition(
	ctx context.Context,
	record *PayrollRecord,
	input TransitionInput,
	actorRole string,
) (*PayrollRecord, error) {
	input.ActorRole = actorRole
	fromStatus := record.Status
	expectedVersion := record.Version
	approvalsBefore := len(record.Approvals)

	if err := s.lifecycle.Apply(record, input, time.Now().UTC()); err != nil {
		return nil, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	if err := qtx.UpdateTransition(ctx, record, expectedVersion); err != nil {
		return nil, err
	}

	for _, approval := range record.Approvals[approvalsBefore:] {
		if err := qtx.AppendApproval(ctx, approval); err != nil {
			return nil, err
		}
	}

	event := events.PayrollStatusChangedEvent{
		EventType:  "payroll.status_changed",
		PayrollID:  record.ID.String(),
		CompanyID:  record.CompanyID.String(),
		EmployeeID: record.EmployeeID.String(),
		FromStatus: string(fromStatus),
		ToStatus:   string(record.Status),
		ActorID:    input.ActorID.String(),
		Comments:   input.Comments,
		OccurredAt: time.Now().UTC(),
	}
	if err := s.enqueueEvent(ctx, tx, events.PayrollStatusChangedTopic, record.ID.String(), event); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	metrics.StatusTransitions.WithLabelValues(string(record.Status)).Inc()

	s.logger.Info("payroll status changed",
		zap.String("payroll_id", record.ID.String()),
		zap.String("from", string(fromStatus)),
		zap.String("to", string(record.Status)),
		zap.String("actor_id", input.ActorID.String()),
	)

	return record, nil
}

func (s *service) BulkTransition(
	ctx context.Context,
	companyID, actorID, actorRole string,
	req BulkTransitionRequest,
) (BulkTransitionReport, error) {
	input, err := transitionInputFromRequest(actorID, req.toTransitionRequest())
	if err != nil {
		return BulkTransitionReport{}, err
	}

	type outcome struct {
		id  string
		err error
	}

	// Tiap record diproses independen: satu guard yang gagal jadi item
	// failed, sisanya tetap jalan. Sengaja bukan transaksi all-or-nothing.
	outcomes := make([]outcome, len(req.RecordIDs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.batchLimit)

	for i, recordID := range req.RecordIDs {
		i, recordID := i, recordID
		g.Go(func() error {
			record, err := s.repo.FindByIDAndCompany(gctx, companyID, recordID)
			if err == nil {
				_, err = s.applyTransition(gctx, record, input, actorRole)
			}
			outcomes[i] = outcome{id: recordID, err: err}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return BulkTransitionReport{}, err
	}

	report := BulkTransitionReport{
		Succeeded: []string{},
		Failed:    []BulkFailure{},
	}
	for _, o := range outcomes {
		if o.err != nil {
			report.Failed = append(report.Failed, BulkFailure{ID: o.id, Reason: failureReason(o.err)})
			continue
		}
		report.Succeeded = append(report.Succeeded, o.id)
	}

	return report, nil
}

func (s *service) GetAll(
	ctx context.Context,
	companyID string,
	filter ListFilter,
) ([]PayrollResponse, int64, error) {
	records, total, err := s.repo.FindAllByCompany(ctx, companyID, filter)
	if err != nil {
		return nil, 0, err
	}

	res := make([]PayrollResponse, len(records))
	for i, record := range records {
		res[i] = mapToResponse(record)
	}
	return res, total, nil
}

func (s *service) GetByID(
	ctx context.Context,
	companyID, id string,
) (PayrollResponse, error) {
	record, err := s.repo.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		return PayrollResponse{}, err
	}

	return mapToResponse(*record), nil
}

func (s *service) Supersede(
	ctx context.Context,
	companyID, recordID, actorID string,
	req SupersedeRequest,
) (PayrollResponse, error) {
	old, err := s.repo.FindByIDAndCompany(ctx, companyID, recordID)
	if err != nil {
		return PayrollResponse{}, err
	}
	if old.SupersededAt != nil {
		return PayrollResponse{}, payrollerrors.ErrRecordSuperseded
	}
	if !old.Status.IsTerminal() {
		return PayrollResponse{}, payrollerrors.ErrSupersedeNonTerminal
	}

	snapshot, err := s.loadSnapshot(ctx, companyID, old.EmployeeID.String(), old.PeriodYear, old.PeriodMonth)
	if err != nil {
		return PayrollResponse{}, err
	}

	periodEnd := time.Date(old.PeriodYear, time.Month(old.PeriodMonth)+1, 0, 0, 0, 0, 0, time.UTC)
	snapshot.Rates, err = s.rateRepo.FindEffective(ctx, companyID, periodEnd)
	if err != nil {
		return PayrollResponse{}, err
	}
	snapshot.PrecomputedTDS = req.PrecomputedTDS

	replacement, err := BuildRecord(snapshot)
	if err != nil {
		return PayrollResponse{}, err
	}
	replacement.ID = uuid.New()
	replacement.CompanyID = old.CompanyID
	replacement.EmployeeID = old.EmployeeID
	replacement.PeriodYear = old.PeriodYear
	replacement.PeriodMonth = old.PeriodMonth
	replacement.RunNumber = old.RunNumber
	replacement.EmployeeName = old.EmployeeName

	now := time.Now().UTC()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return PayrollResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	// Record lama dibekukan dulu supaya partial unique index melepaskan slot
	// (employee, period) untuk record pengganti dalam transaksi yang sama.
	if err := qtx.MarkSuperseded(ctx, old.ID.String(), replacement.ID.String(), now); err != nil {
		return PayrollResponse{}, err
	}
	if err := qtx.Create(ctx, replacement); err != nil {
		return PayrollResponse{}, err
	}

	event := events.PayrollGeneratedEvent{
		EventType:   "payroll.generated",
		PayrollID:   replacement.ID.String(),
		CompanyID:   replacement.CompanyID.String(),
		EmployeeID:  replacement.EmployeeID.String(),
		PeriodMonth: replacement.PeriodMonth,
		PeriodYear:  replacement.PeriodYear,
		RunNumber:   replacement.RunNumber,
		NetSalary:   replacement.NetSalary(),
		OccurredAt:  now,
	}
	if err := s.enqueueEvent(ctx, tx, events.PayrollGeneratedTopic, replacement.ID.String(), event); err != nil {
		return PayrollResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return PayrollResponse{}, err
	}

	s.logger.Info("payroll record superseded",
		zap.String("old_id", old.ID.String()),
		zap.String("new_id", replacement.ID.String()),
		zap.String("actor_id", actorID),
	)

	return mapToResponse(*replacement), nil
}

// loadSnapshot mengambil struktur gaji yang berlaku per akhir periode plus
// snapshot kehadiran periode itu. Rate table diisi pemanggil, yang sudah
// mencarinya per periode.
func (s *service) loadSnapshot(
	ctx context.Context,
	companyID, employeeID string,
	year, month int,
) (BuildInput, error) {
	periodEnd := time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC)

	structure, err := s.structureRepo.FindEffective(ctx, companyID, employeeID, periodEnd)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return BuildInput{}, payrollerrors.ErrInvalidSalaryStructure
	}
	if err != nil {
		return BuildInput{}, err
	}

	summary, err := s.attendanceRepo.FindByEmployeeAndPeriod(ctx, companyID, employeeID, year, month)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return BuildInput{}, payrollerrors.ErrAttendanceMissing
	}
	if err != nil {
		return BuildInput{}, err
	}

	return BuildInput{
		Structure:  *structure,
		Attendance: *summary,
	}, nil
}

func (s *service) enqueueEvent(ctx context.Context, tx *sql.Tx, topic, aggregateID string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	event := kafka.OutboxEvent{
		ID:            uuid.New().String(),
		RequestID:     contextutil.GetRequestID(ctx),
		AggregateType: "payroll",
		AggregateID:   aggregateID,
		EventType:     topic,
		Topic:         topic,
		Payload:       body,
		Status:        kafka.OutboxStatusPending,
	}
	if err := kafka.ValidateOutboxEvent(event); err != nil {
		return err
	}

	return s.outboxRepo.WithTx(tx).Create(ctx, event)
}

func transitionInputFromRequest(actorID string, req TransitionRequest) (TransitionInput, error) {
	actor, err := uuid.Parse(actorID)
	if err != nil {
		return TransitionInput{}, apperror.RequiredField("actor_id")
	}

	target := Status(strings.ToUpper(strings.TrimSpace(req.TargetStatus)))

	input := TransitionInput{
		Target:      target,
		ActorID:     actor,
		Comments:    req.Comments,
		PaymentMode: req.PaymentMode,
	}

	if req.PaymentDate != "" {
		paymentDate, err := time.Parse("2006-01-02", req.PaymentDate)
		if err != nil {
			return TransitionInput{}, apperror.InvalidField("payment_date")
		}
		input.PaymentDate = &paymentDate
	}

	return input, nil
}

func (r BulkTransitionRequest) toTransitionRequest() TransitionRequest {
	return TransitionRequest{
		TargetStatus: r.TargetStatus,
		Comments:     r.Comments,
		PaymentDate:  r.PaymentDate,
		PaymentMode:  r.PaymentMode,
	}
}

func failureReason(err error) string {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return err.Error()
}

func mapToResponse(record PayrollRecord) PayrollResponse {
	res := PayrollResponse{
		ID:           record.ID.String(),
		EmployeeID:   record.EmployeeID.String(),
		EmployeeName: record.EmployeeName,
		PeriodYear:   record.PeriodYear,
		PeriodMonth:  record.PeriodMonth,
		RunNumber:    record.RunNumber,
		Earnings: EarningsResponse{
			Basic:            record.Basic,
			HRA:              record.HRA,
			SpecialAllowance: record.SpecialAllowance,
			Conveyance:       record.Conveyance,
			Medical:          record.Medical,
			Education:        record.Education,
			LTA:              record.LTA,
			Other:            record.OtherEarnings,
			Overtime:         record.Overtime,
		},
		Deductions: DeductionsResponse{
			PFEmployee:      record.PFEmployee,
			PFEmployer:      record.PFEmployer,
			ESIEmployee:     record.ESIEmployee,
			ESIEmployer:     record.ESIEmployer,
			ProfessionalTax: record.ProfessionalTax,
			TDS:             record.TDS,
			LossOfPay:       record.LossOfPay,
		},
		Summary: SummaryResponse{
			GrossEarnings:   record.GrossEarnings(),
			TotalDeductions: record.TotalDeductions(),
			NetSalary:       record.NetSalary(),
		},
		Attendance: AttendanceSnapshotResponse{
			TotalDays:     record.TotalDays,
			PresentDays:   record.PresentDays,
			PaidLeaveDays: record.PaidLeaveDays,
			LossOfPayDays: record.LossOfPayDays,
			OvertimeHours: record.OvertimeHours,
		},
		Status:      string(record.Status),
		NeedsReview: record.NeedsReview,
		Version:     record.Version,
		Approvals:   []ApprovalResponse{},
		PaymentMode: record.PaymentMode,
	}

	for _, approval := range record.Approvals {
		res.Approvals = append(res.Approvals, ApprovalResponse{
			ApproverID: approval.ApproverID.String(),
			Decision:   approval.Decision,
			Comments:   approval.Comments,
			CreatedAt:  approval.CreatedAt.Format(time.RFC3339),
		})
	}

	if record.PaymentDate != nil {
		formatted := record.PaymentDate.Format("2006-01-02")
		res.PaymentDate = &formatted
	}
	if record.SupersededAt != nil {
		formatted := record.SupersededAt.Format(time.RFC3339)
		res.SupersededAt = &formatted
	}
	if record.SupersededBy != nil {
		formatted := record.SupersededBy.String()
		res.SupersededBy = &formatted
	}

	return res
}
