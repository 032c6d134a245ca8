package leaveerrors

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
	ErrInvalidLeaveID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid leave request id",
		http.StatusBadRequest,
	)
	ErrInvalidDateFormat = apperror.New(
		apperror.CodeInvalidInput,
		"invalid date format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrInvalidDateRange = apperror.New(
		apperror.CodeInvalidInput,
		"start_date must be before or equal end_date",
		http.StatusBadRequest,
	)
	ErrReasonRequired = apperror.New(
		apperror.CodeInvalidInput,
		"reason is required",
		http.StatusBadRequest,
	)
	ErrMedicalLeaveTooShort = apperror.New(
		apperror.CodeInvalidInput,
		"medical leave must cover at least 10 calendar days",
		http.StatusBadRequest,
	)
	ErrDuplicateLeave = apperror.New(
		apperror.CodeConflict,
		"a pending or approved leave request already covers this date",
		http.StatusConflict,
	)
	ErrNoSubstituteAvailable = apperror.New(
		apperror.CodeConflict,
		"no substitute is available for one of the affected class slots",
		http.StatusConflict,
	)
	ErrLeaveNotFound = apperror.New(
		apperror.CodeNotFound,
		"leave request not found",
		http.StatusNotFound,
	)
	ErrSubstitutionNotFound = apperror.New(
		apperror.CodeNotFound,
		"substitution slot not found",
		http.StatusNotFound,
	)
	ErrNotAuthorized = apperror.New(
		apperror.CodeForbidden,
		"you are not authorized to act on this substitution",
		http.StatusForbidden,
	)
	ErrApproverRoleRequired = apperror.New(
		apperror.CodeForbidden,
		"HOD or Admin role required",
		http.StatusForbidden,
	)
	ErrInvalidState = apperror.New(
		apperror.CodeInvalidState,
		"leave request is not in a state that allows this transition",
		http.StatusBadRequest,
	)
	ErrSubstitutionClosed = apperror.New(
		apperror.CodeInvalidState,
		"this substitution offer is no longer open",
		http.StatusBadRequest,
	)
	ErrCandidateBusy = apperror.New(
		apperror.CodeConflict,
		"you already have a class at this date and slot",
		http.StatusConflict,
	)
	ErrSlotAlreadyFilled = apperror.New(
		apperror.CodeConflict,
		"another substitute has already accepted this slot",
		http.StatusConflict,
	)
)
