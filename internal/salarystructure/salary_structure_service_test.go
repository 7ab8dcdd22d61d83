package salarystructure_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"go-payroll/internal/salarystructure"
	salarystructureerrors "go-payroll/internal/salarystructure/errors"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeRepo struct {
	byID    map[string]*salarystructure.SalaryStructure
	created []*salarystructure.SalaryStructure
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{byID: map[string]*salarystructure.SalaryStructure{}}
}

func (f *fakeRepo) WithTx(tx *sql.Tx) salarystructure.Repository { return f }

func (f *fakeRepo) Create(ctx context.Context, structure *salarystructure.SalaryStructure) error {
	for _, existing := range f.created {
		if existing.EmployeeID == structure.EmployeeID && existing.EffectiveDate.Equal(structure.EffectiveDate) {
			return salarystructureerrors.ErrStructureEffectiveDateAlreadyExists
		}
	}
	f.byID[structure.ID.String()] = structure
	f.created = append(f.created, structure)
	return nil
}

func (f *fakeRepo) FindAllByCompany(ctx context.Context, companyID string) ([]salarystructure.SalaryStructure, error) {
	var out []salarystructure.SalaryStructure
	for _, s := range f.created {
		out = append(out, *s)
	}
	return out, nil
}

func (f *fakeRepo) FindByIDAndCompany(ctx context.Context, companyID, id string) (*salarystructure.SalaryStructure, error) {
	structure, ok := f.byID[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return structure, nil
}

func (f *fakeRepo) FindEffective(ctx context.Context, companyID, employeeID string, asOf time.Time) (*salarystructure.SalaryStructure, error) {
	var best *salarystructure.SalaryStructure
	for _, s := range f.created {
		if s.EmployeeID.String() != employeeID || s.EffectiveDate.After(asOf) {
			continue
		}
		if best == nil || s.EffectiveDate.After(best.EffectiveDate) {
			best = s
		}
	}
	if best == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return best, nil
}

func newFixture(t *testing.T, txPairs int) (salarystructure.Service, *fakeRepo) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	mock.MatchExpectationsInOrder(false)
	for i := 0; i < txPairs; i++ {
		mock.ExpectBegin()
		mock.ExpectCommit()
	}

	repo := newFakeRepo()
	return salarystructure.NewService(db, repo), repo
}

func createRequest(employeeID string) salarystructure.CreateSalaryStructureRequest {
	return salarystructure.CreateSalaryStructureRequest{
		EmployeeID:    employeeID,
		AnnualCTC:     1200000,
		BasicAmount:   50000,
		HRAPercentBps: 4000,
		Conveyance:    1600,
		EffectiveDate: "2026-04-01",
	}
}

func TestCreate(t *testing.T) {
	svc, repo := newFixture(t, 1)
	employeeID := uuid.New().String()

	resp, err := svc.Create(context.Background(), uuid.New().String(), createRequest(employeeID))
	require.NoError(t, err)

	assert.Equal(t, employeeID, resp.EmployeeID)
	assert.Equal(t, int64(50000), resp.BasicAmount)
	// Flag PF/ESI default true bila tidak dikirim.
	assert.True(t, resp.PFApplicable)
	assert.True(t, resp.ESIApplicable)
	assert.Len(t, repo.created, 1)
}

func TestCreate_DuplicateEffectiveDate(t *testing.T) {
	svc, _ := newFixture(t, 2)
	employeeID := uuid.New().String()
	companyID := uuid.New().String()

	_, err := svc.Create(context.Background(), companyID, createRequest(employeeID))
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), companyID, createRequest(employeeID))
	assert.ErrorIs(t, err, salarystructureerrors.ErrStructureEffectiveDateAlreadyExists)
}

func TestUpdate_InsertsNewVersion(t *testing.T) {
	svc, repo := newFixture(t, 2)
	employeeID := uuid.New().String()
	companyID := uuid.New().String()

	created, err := svc.Create(context.Background(), companyID, createRequest(employeeID))
	require.NoError(t, err)

	revised := createRequest(employeeID)
	revised.BasicAmount = 60000
	revised.EffectiveDate = "2026-07-01"

	updated, err := svc.Update(context.Background(), companyID, created.ID, revised)
	require.NoError(t, err)

	// Versi lama tidak disentuh; revisi adalah baris baru.
	assert.NotEqual(t, created.ID, updated.ID)
	assert.Len(t, repo.created, 2)

	asOf := time.Date(2026, 7, 31, 0, 0, 0, 0, time.UTC)
	effective, err := repo.FindEffective(context.Background(), companyID, employeeID, asOf)
	require.NoError(t, err)
	assert.Equal(t, int64(60000), effective.BasicAmount)

	before := time.Date(2026, 5, 15, 0, 0, 0, 0, time.UTC)
	effective, err = repo.FindEffective(context.Background(), companyID, employeeID, before)
	require.NoError(t, err)
	assert.Equal(t, int64(50000), effective.BasicAmount)
}

func TestUpdate_UnknownStructure(t *testing.T) {
	svc, _ := newFixture(t, 1)

	_, err := svc.Update(context.Background(), uuid.New().String(), uuid.New().String(),
		createRequest(uuid.New().String()))
	assert.ErrorIs(t, err, salarystructureerrors.ErrStructureNotFound)
}

func TestCreateDefault_ZeroCTCPlaceholder(t *testing.T) {
	svc, repo := newFixture(t, 1)

	resp, err := svc.CreateDefault(context.Background(), uuid.New().String(), uuid.New().String())
	require.NoError(t, err)

	assert.Zero(t, resp.AnnualCTC)
	assert.Zero(t, resp.BasicAmount)
	require.Len(t, repo.created, 1)
	assert.Zero(t, repo.created[0].AnnualCTC)
}

func TestMonthlyBasic(t *testing.T) {
	// Nominal eksplisit menang atas persentase CTC.
	s := salarystructure.SalaryStructure{AnnualCTC: 1200000, BasicAmount: 45000, BasicPercentBps: 5000}
	assert.Equal(t, int64(45000), s.MonthlyBasic())

	s = salarystructure.SalaryStructure{AnnualCTC: 1200000, BasicPercentBps: 5000}
	assert.Equal(t, int64(50000), s.MonthlyBasic())

	s = salarystructure.SalaryStructure{}
	assert.Zero(t, s.MonthlyBasic())
}
