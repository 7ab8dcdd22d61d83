package payroll

import (
	"strings"
	"time"

	payrollerrors "go-payroll/internal/payroll/errors"

	"github.com/google/uuid"
)

// allowedTransitions: GENERATED → PENDING_APPROVAL → APPROVED → PAID, dengan
// REJECTED dari PENDING_APPROVAL atau APPROVED. Selain ini ilegal.
var allowedTransitions = map[Status][]Status{
	StatusGenerated:       {StatusPendingApproval},
	StatusPendingApproval: {StatusApproved, StatusRejected},
	StatusApproved:        {StatusPaid, StatusRejected},
}

//go:generate mockgen -source=lifecycle.go -destination=mock/lifecycle_mock.go -package=mock
type RoleChecker interface {
	HasPermission(role, resource, action string) bool
}

type TransitionInput struct {
	Target      Status
	ActorID     uuid.UUID
	ActorRole   string
	Comments    string
	PaymentDate *time.Time
	PaymentMode string
}

type Lifecycle struct {
	roles RoleChecker
}

func NewLifecycle(roles RoleChecker) *Lifecycle {
	return &Lifecycle{roles: roles}
}

// Apply memvalidasi guard lalu memutasi record in-memory. Persistensi (dengan
// version check) urusan pemanggil; Apply sendiri tidak menyentuh Version.
func (l *Lifecycle) Apply(record *PayrollRecord, input TransitionInput, now time.Time) error {
	if record.SupersededAt != nil {
		return payrollerrors.ErrRecordSuperseded
	}
	if !input.Target.Valid() {
		return payrollerrors.NewInvalidTransition(string(record.Status), string(input.Target))
	}

	if !transitionAllowed(record.Status, input.Target) {
		return payrollerrors.NewInvalidTransition(string(record.Status), string(input.Target))
	}

	switch input.Target {
	case StatusPendingApproval:
		record.SubmittedAt = &now

	case StatusApproved:
		if !l.roles.HasPermission(input.ActorRole, "payroll", "approve") {
			return payrollerrors.ErrApproverRoleRequired
		}
		record.Approvals = append(record.Approvals, Approval{
			ID:         uuid.New(),
			PayrollID:  record.ID,
			ApproverID: input.ActorID,
			Decision:   DecisionApproved,
			Comments:   input.Comments,
			CreatedAt:  now,
		})

	case StatusRejected:
		if !l.roles.HasPermission(input.ActorRole, "payroll", "reject") {
			return payrollerrors.ErrApproverRoleRequired
		}
		if strings.TrimSpace(input.Comments) == "" {
			return payrollerrors.ErrMissingApprovalComment
		}
		record.Approvals = append(record.Approvals, Approval{
			ID:         uuid.New(),
			PayrollID:  record.ID,
			ApproverID: input.ActorID,
			Decision:   DecisionRejected,
			Comments:   input.Comments,
			CreatedAt:  now,
		})

	case StatusPaid:
		if !l.roles.HasPermission(input.ActorRole, "payroll", "pay") {
			return payrollerrors.ErrApproverRoleRequired
		}
		if input.PaymentDate == nil || strings.TrimSpace(input.PaymentMode) == "" {
			return payrollerrors.ErrMissingPaymentDetails
		}
		record.PaymentDate = input.PaymentDate
		record.PaymentMode = input.PaymentMode
	}

	record.Status = input.Target
	return nil
}

func transitionAllowed(from, to Status) bool {
	for _, next := range allowedTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}
