package rewarderrors

import (
	"net/http"

	"opsdb/internal/shared/apperror"
)

var (
	ErrReasonNotFound = apperror.New(
		apperror.CodeNotFound,
		"Reward reason not found",
		http.StatusNotFound,
	)
	ErrReasonInactive = apperror.New(
		apperror.CodeInvalidState,
		"Reward reason is inactive",
		http.StatusUnprocessableEntity,
	)
	ErrEmployeeNotFound = apperror.New(
		apperror.CodeNotFound,
		"Employee not found",
		http.StatusNotFound,
	)
	ErrInsufficientBalance = apperror.New(
		apperror.CodeInvalidState,
		"Employee does not have enough points for this redemption",
		http.StatusUnprocessableEntity,
	)
	ErrDuplicateReason = apperror.New(
		apperror.CodeConflict,
		"A reward reason with this label already exists",
		http.StatusConflict,
	)
)
