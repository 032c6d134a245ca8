package timetableerrors

import (
	"net/http"

	"uni-leave-portal/internal/shared/apperror"
)

var (
	ErrInvalidDateFormat = apperror.New(
		apperror.CodeInvalidInput,
		"invalid date format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrInvalidFacultyID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid faculty id",
		http.StatusBadRequest,
	)
	ErrEntryNotFound = apperror.New(
		apperror.CodeNotFound,
		"timetable entry not found",
		http.StatusNotFound,
	)
)
