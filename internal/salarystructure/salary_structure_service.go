package salarystructure

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
)

//go:generate mockgen -source=salary_structure_service.go -destination=mock/salary_structure_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, companyID string, req CreateSalaryStructureRequest) (SalaryStructureResponse, error)
	GetAll(ctx context.Context, companyID string) ([]SalaryStructureResponse, error)
	GetByID(ctx context.Context, companyID, id string) (SalaryStructureResponse, error)
	// Update tidak pernah memodifikasi baris lama: selalu insert versi baru
	// ber-effective-date, karena struktur yang sudah dirujuk payroll final
	// harus immutable.
	Update(ctx context.Context, companyID, id string, req UpdateSalaryStructureRequest) (SalaryStructureResponse, error)
	// CreateDefault membuat placeholder ber-CTC nol untuk karyawan baru.
	// Batch payroll akan menolaknya sebagai InvalidSalaryStructure sampai HR
	// mengisi angka sebenarnya.
	CreateDefault(ctx context.Context, companyID, employeeID string) (SalaryStructureResponse, error)
}

type service struct {
	db   *sql.DB
	repo Repository
}

func NewService(db *sql.DB, repo Repository) Service {
	return &service{db: db, repo: repo}
}

func (s *service) Create(
	ctx context.Context,
	companyID string,
	req CreateSalaryStructureRequest,
) (SalaryStructureResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return SalaryStructureResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	structure, err := structureFromRequest(req)
	if err != nil {
		return SalaryStructureResponse{}, err
	}

	if err := qtx.Create(ctx, structure); err != nil {
		return SalaryStructureResponse{}, mapRepositoryError(err)
	}

	created, err := qtx.FindByIDAndCompany(ctx, companyID, structure.ID.String())
	if err != nil {
		return SalaryStructureResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		return SalaryStructureResponse{}, err
	}

	return mapToResponse(*created), nil
}

func (s *service) GetAll(
	ctx context.Context,
	companyID string,
) ([]SalaryStructureResponse, error) {
	structures, err := s.repo.FindAllByCompany(ctx, companyID)
	if err != nil {
		return nil, mapRepositoryError(err)
	}

	return mapToListResponse(structures), nil
}

func (s *service) GetByID(
	ctx context.Context,
	companyID, id string,
) (SalaryStructureResponse, error) {
	structure, err := s.repo.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		return SalaryStructureResponse{}, mapRepositoryError(err)
	}

	return mapToResponse(*structure), nil
}

func (s *service) Update(
	ctx context.Context,
	companyID, id string,
	req UpdateSalaryStructureRequest,
) (SalaryStructureResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return SalaryStructureResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	_, err = qtx.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		return SalaryStructureResponse{}, mapRepositoryError(err)
	}

	newVersion, err := structureFromRequest(req)
	if err != nil {
		return SalaryStructureResponse{}, err
	}

	if err := qtx.Create(ctx, newVersion); err != nil {
		return SalaryStructureResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		return SalaryStructureResponse{}, err
	}

	return mapToResponse(*newVersion), nil
}

func (s *service) CreateDefault(
	ctx context.Context,
	companyID, employeeID string,
) (SalaryStructureResponse, error) {
	effectiveDate := time.Now().UTC().Format("2006-01-02")
	return s.Create(ctx, companyID, CreateSalaryStructureRequest{
		EmployeeID:    employeeID,
		EffectiveDate: effectiveDate,
	})
}

func structureFromRequest(req CreateSalaryStructureRequest) (*SalaryStructure, error) {
	employeeID, err := uuid.Parse(req.EmployeeID)
	if err != nil {
		return nil, err
	}

	effectiveDate, err := time.Parse("2006-01-02", req.EffectiveDate)
	if err != nil {
		return nil, err
	}

	pfApplicable := true
	if req.PFApplicable != nil {
		pfApplicable = *req.PFApplicable
	}
	esiApplicable := true
	if req.ESIApplicable != nil {
		esiApplicable = *req.ESIApplicable
	}

	return &SalaryStructure{
		ID:                 uuid.New(),
		EmployeeID:         employeeID,
		AnnualCTC:          req.AnnualCTC,
		BasicAmount:        req.BasicAmount,
		BasicPercentBps:    req.BasicPercentBps,
		HRAPercentBps:      req.HRAPercentBps,
		Conveyance:         req.Conveyance,
		Medical:            req.Medical,
		Education:          req.Education,
		LTA:                req.LTA,
		OtherAllowance:     req.OtherAllowance,
		OvertimeHourlyRate: req.OvertimeHourlyRate,
		PFApplicable:       pfApplicable,
		ESIApplicable:      esiApplicable,
		BankName:           req.BankName,
		BankAccountNo:      req.BankAccountNo,
		BankIFSC:           req.BankIFSC,
		EffectiveDate:      effectiveDate,
	}, nil
}

func mapToResponse(structure SalaryStructure) SalaryStructureResponse {
	return SalaryStructureResponse{
		ID:                 structure.ID.String(),
		EmployeeID:         structure.EmployeeID.String(),
		EmployeeName:       structure.EmployeeName,
		AnnualCTC:          structure.AnnualCTC,
		BasicAmount:        structure.BasicAmount,
		BasicPercentBps:    structure.BasicPercentBps,
		HRAPercentBps:      structure.HRAPercentBps,
		Conveyance:         structure.Conveyance,
		Medical:            structure.Medical,
		Education:          structure.Education,
		LTA:                structure.LTA,
		OtherAllowance:     structure.OtherAllowance,
		OvertimeHourlyRate: structure.OvertimeHourlyRate,
		PFApplicable:       structure.PFApplicable,
		ESIApplicable:      structure.ESIApplicable,
		BankName:           structure.BankName,
		BankAccountNo:      structure.BankAccountNo,
		BankIFSC:           structure.BankIFSC,
		EffectiveDate:      structure.EffectiveDate.Format("2006-01-02"),
	}
}

func mapToListResponse(structures []SalaryStructure) []SalaryStructureResponse {
	res := make([]SalaryStructureResponse, len(structures))
	for i, structure := range structures {
		res[i] = mapToResponse(structure)
	}
	return res
}
