package salarystructureerrors

import (
	"net/http"

	"go-payroll/internal/shared/apperror"
)

var (
	ErrStructureEffectiveDateAlreadyExists = apperror.New(
		apperror.CodeConflict,
		"Salary structure for this employee and effective date already exists",
		http.StatusConflict,
	)

	ErrStructureNotFound = apperror.New(
		apperror.CodeNotFound,
		"salary structure not found",
		http.StatusNotFound,
	)
)
