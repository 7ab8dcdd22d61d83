package attendanceerrors

import (
	"net/http"

	"go-payroll/internal/shared/apperror"
)

var (
	ErrInvalidDayCounts = apperror.New(
		apperror.CodeInvalidInput,
		"present + paid leave + loss of pay + other leave must equal total days",
		http.StatusBadRequest,
	)

	ErrSummaryNotFound = apperror.New(
		apperror.CodeNotFound,
		"attendance summary not found",
		http.StatusNotFound,
	)

	ErrEmployeeNotFound = apperror.New(
		apperror.CodeNotFound,
		"employee not found in this company",
		http.StatusNotFound,
	)
)
