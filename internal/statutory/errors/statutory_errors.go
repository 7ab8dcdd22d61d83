package statutoryerrors

import (
	"net/http"

	"go-payroll/internal/shared/apperror"
)

var (
	// ErrInvalidEarnings menandakan input moneter negatif — cacat pemrograman,
	// bukan kesalahan operator; di-log sebagai critical oleh pemanggil.
	ErrInvalidEarnings = apperror.New(
		apperror.CodeInternalError,
		"earnings input cannot be negative",
		http.StatusInternalServerError,
	)

	ErrRateTableNotFound = apperror.New(
		apperror.CodeServiceUnavailable,
		"no statutory rate table configured for the requested period",
		http.StatusServiceUnavailable,
	)
)
