package facultyerrors

import (
	"net/http"

	"uni-leave-portal/internal/shared/apperror"
)

var (
	ErrInvalidFacultyID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid faculty id",
		http.StatusBadRequest,
	)
	ErrFacultyNotFound = apperror.New(
		apperror.CodeNotFound,
		"faculty not found",
		http.StatusNotFound,
	)
	ErrUnknownLeaveType = apperror.New(
		apperror.CodeInvalidInput,
		"unknown leave type",
		http.StatusBadRequest,
	)
	ErrInsufficientBalance = apperror.New(
		apperror.CodeConflict,
		"insufficient leave balance for this leave type",
		http.StatusConflict,
	)
)
