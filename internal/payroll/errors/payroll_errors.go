package payrollerrors

import (
	"fmt"
	"net/http"

	"go-payroll/internal/shared/apperror"
)

var (
	// ErrInvalidSalaryStructure menolak satu karyawan dari batch; batch-nya
	// sendiri jalan terus.
	ErrInvalidSalaryStructure = apperror.New(
		apperror.CodeInvalidInput,
		"salary structure has no positive CTC or basic amount",
		http.StatusUnprocessableEntity,
	)

	// ErrDuplicatePeriod: sudah ada record non-superseded untuk periode ini.
	// Di batch diperlakukan sebagai skip, bukan kegagalan.
	ErrDuplicatePeriod = apperror.New(
		apperror.CodeConflict,
		"an active payroll record already exists for this employee and period",
		http.StatusConflict,
	)

	ErrMissingApprovalComment = apperror.New(
		apperror.CodeInvalidInput,
		"rejection requires a non-empty comment",
		http.StatusBadRequest,
	)

	ErrMissingPaymentDetails = apperror.New(
		apperror.CodeInvalidInput,
		"marking a payroll as paid requires payment date and payment mode",
		http.StatusBadRequest,
	)

	ErrApproverRoleRequired = apperror.New(
		apperror.CodeForbidden,
		"actor role is not allowed to perform this transition",
		http.StatusForbidden,
	)

	ErrPayrollNotFound = apperror.New(
		apperror.CodeNotFound,
		"payroll record not found",
		http.StatusNotFound,
	)

	ErrAttendanceMissing = apperror.New(
		apperror.CodeInvalidInput,
		"no attendance summary for this employee and period",
		http.StatusUnprocessableEntity,
	)

	// ErrStaleVersion: transisi kalah balapan dengan transisi lain atas record
	// yang sama. Pemanggil harus membaca ulang dan memutuskan lagi.
	ErrStaleVersion = apperror.New(
		apperror.CodeConflict,
		"payroll record was modified concurrently, reload and retry",
		http.StatusConflict,
	)

	ErrRecordSuperseded = apperror.New(
		apperror.CodeInvalidState,
		"payroll record has been superseded and is frozen for audit",
		http.StatusConflict,
	)

	ErrSupersedeNonTerminal = apperror.New(
		apperror.CodeInvalidState,
		"only a paid or rejected payroll record can be superseded",
		http.StatusConflict,
	)
)

// NewInvalidTransition menyebut state saat ini dan state yang diminta —
// transisi ilegal tidak pernah diabaikan diam-diam.
func NewInvalidTransition(from, to string) *apperror.AppError {
	return apperror.New(
		apperror.CodeInvalidState,
		fmt.Sprintf("invalid payroll transition from %s to %s", from, to),
		http.StatusConflict,
	)
}
