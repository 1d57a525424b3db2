package reviewerrors

import (
	"net/http"

	"opsdb/internal/shared/apperror"
)

var (
	ErrReviewNotFound = apperror.New(
		apperror.CodeNotFound,
		"Employee review not found",
		http.StatusNotFound,
	)
	ErrReviewNotPending = apperror.New(
		apperror.CodeInvalidState,
		"Review has already been resolved",
		http.StatusConflict,
	)
	ErrEmployeeAlreadyExists = apperror.New(
		apperror.CodeConflict,
		"An employee with this ID already exists",
		http.StatusConflict,
	)
)
