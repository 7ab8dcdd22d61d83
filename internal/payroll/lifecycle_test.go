package payroll_test

import (
	"testing"
	"time"

	"go-payroll/internal/payroll"
	payrollerrors "go-payroll/internal/payroll/errors"
	"go-payroll/internal/shared/apperror"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRoleChecker meniru policy casbin yang di-ship: hr boleh approve/reject,
// finance boleh pay, admin semuanya.
type fakeRoleChecker struct{}

func (fakeRoleChecker) HasPermission(role, resource, action string) bool {
	if role == "admin" {
		return true
	}
	switch action {
	case "approve", "reject":
		return role == "hr"
	case "pay":
		return role == "finance"
	}
	return false
}

func newRecord(status payroll.Status) *payroll.PayrollRecord {
	return &payroll.PayrollRecord{
		ID:         uuid.New(),
		CompanyID:  uuid.New(),
		EmployeeID: uuid.New(),
		Status:     status,
		Version:    1,
	}
}

func testLifecycle() *payroll.Lifecycle {
	return payroll.NewLifecycle(fakeRoleChecker{})
}

func apply(t *testing.T, record *payroll.PayrollRecord, input payroll.TransitionInput) error {
	t.Helper()
	return testLifecycle().Apply(record, input, time.Now().UTC())
}

func TestLifecycle_HappyPath(t *testing.T) {
	record := newRecord(payroll.StatusGenerated)
	actor := uuid.New()

	require.NoError(t, apply(t, record, payroll.TransitionInput{
		Target: payroll.StatusPendingApproval, ActorID: actor, ActorRole: "hr",
	}))
	assert.Equal(t, payroll.StatusPendingApproval, record.Status)
	assert.NotNil(t, record.SubmittedAt)

	require.NoError(t, apply(t, record, payroll.TransitionInput{
		Target: payroll.StatusApproved, ActorID: actor, ActorRole: "hr",
	}))
	require.Len(t, record.Approvals, 1)
	assert.Equal(t, payroll.DecisionApproved, record.Approvals[0].Decision)

	paymentDate := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, apply(t, record, payroll.TransitionInput{
		Target: payroll.StatusPaid, ActorID: actor, ActorRole: "finance",
		PaymentDate: &paymentDate, PaymentMode: "BANK_TRANSFER",
	}))
	assert.Equal(t, payroll.StatusPaid, record.Status)
	assert.Equal(t, "BANK_TRANSFER", record.PaymentMode)
	require.NotNil(t, record.PaymentDate)
}

func TestLifecycle_ApprovedBackToPendingIsInvalid(t *testing.T) {
	record := newRecord(payroll.StatusApproved)

	err := apply(t, record, payroll.TransitionInput{
		Target: payroll.StatusPendingApproval, ActorID: uuid.New(), ActorRole: "admin",
	})

	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperror.CodeInvalidState, appErr.Code)
	// Pesan menyebut state saat ini dan yang diminta.
	assert.Contains(t, appErr.Message, "APPROVED")
	assert.Contains(t, appErr.Message, "PENDING_APPROVAL")
	assert.Equal(t, payroll.StatusApproved, record.Status)
}

func TestLifecycle_TerminalStatesAreFrozen(t *testing.T) {
	for _, status := range []payroll.Status{payroll.StatusPaid, payroll.StatusRejected} {
		record := newRecord(status)
		err := apply(t, record, payroll.TransitionInput{
			Target: payroll.StatusPendingApproval, ActorID: uuid.New(), ActorRole: "admin",
		})

		var appErr *apperror.AppError
		require.ErrorAs(t, err, &appErr, "from %s", status)
		assert.Equal(t, apperror.CodeInvalidState, appErr.Code)
	}
}

func TestLifecycle_RejectWithoutCommentsFails(t *testing.T) {
	record := newRecord(payroll.StatusPendingApproval)

	err := apply(t, record, payroll.TransitionInput{
		Target: payroll.StatusRejected, ActorID: uuid.New(), ActorRole: "hr",
		Comments: "   ",
	})

	assert.ErrorIs(t, err, payrollerrors.ErrMissingApprovalComment)
	assert.Equal(t, payroll.StatusPendingApproval, record.Status)
	assert.Empty(t, record.Approvals)
}

func TestLifecycle_RejectWithCommentsIsTerminal(t *testing.T) {
	record := newRecord(payroll.StatusPendingApproval)
	actor := uuid.New()

	require.NoError(t, apply(t, record, payroll.TransitionInput{
		Target: payroll.StatusRejected, ActorID: actor, ActorRole: "hr",
		Comments: "salary structure outdated",
	}))

	assert.Equal(t, payroll.StatusRejected, record.Status)
	require.Len(t, record.Approvals, 1)
	assert.Equal(t, payroll.DecisionRejected, record.Approvals[0].Decision)
	assert.Equal(t, "salary structure outdated", record.Approvals[0].Comments)
	assert.True(t, record.Status.IsTerminal())

	err := apply(t, record, payroll.TransitionInput{
		Target: payroll.StatusApproved, ActorID: actor, ActorRole: "admin",
	})
	assert.Error(t, err)
}

func TestLifecycle_RejectFromApproved(t *testing.T) {
	record := newRecord(payroll.StatusApproved)

	require.NoError(t, apply(t, record, payroll.TransitionInput{
		Target: payroll.StatusRejected, ActorID: uuid.New(), ActorRole: "hr",
		Comments: "wrong attendance snapshot",
	}))
	assert.Equal(t, payroll.StatusRejected, record.Status)
}

func TestLifecycle_ApproveRequiresApproverRole(t *testing.T) {
	record := newRecord(payroll.StatusPendingApproval)

	err := apply(t, record, payroll.TransitionInput{
		Target: payroll.StatusApproved, ActorID: uuid.New(), ActorRole: "finance",
	})

	assert.ErrorIs(t, err, payrollerrors.ErrApproverRoleRequired)
	assert.Equal(t, payroll.StatusPendingApproval, record.Status)
}

func TestLifecycle_PaidRequiresPaymentDetails(t *testing.T) {
	record := newRecord(payroll.StatusApproved)

	err := apply(t, record, payroll.TransitionInput{
		Target: payroll.StatusPaid, ActorID: uuid.New(), ActorRole: "finance",
	})

	assert.ErrorIs(t, err, payrollerrors.ErrMissingPaymentDetails)
}

func TestLifecycle_SupersededRecordRejectsTransitions(t *testing.T) {
	record := newRecord(payroll.StatusGenerated)
	now := time.Now().UTC()
	record.SupersededAt = &now

	err := apply(t, record, payroll.TransitionInput{
		Target: payroll.StatusPendingApproval, ActorID: uuid.New(), ActorRole: "admin",
	})

	assert.ErrorIs(t, err, payrollerrors.ErrRecordSuperseded)
}

func TestLifecycle_UnknownTargetStatus(t *testing.T) {
	record := newRecord(payroll.StatusGenerated)

	err := apply(t, record, payroll.TransitionInput{
		Target: payroll.Status("ARCHIVED"), ActorID: uuid.New(), ActorRole: "admin",
	})

	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperror.CodeInvalidState, appErr.Code)
}
