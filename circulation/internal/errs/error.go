package errs

import (
	"errors"
)

var (
	ErrNotFound         = errors.New("not found")
	ErrNotAvailable     = errors.New("no copies available")
	ErrAlreadyIssued    = errors.New("item already issued to borrower")
	ErrDuplicateRequest = errors.New("borrower already has a pending request for item")
	ErrNoActiveLoan     = errors.New("no active loan for item")
	ErrForbidden        = errors.New("reservation belongs to another borrower")
	// ErrInvariant means stored state violates a consistency rule.
	ErrInvariant = errors.New("invariant violated")

	ErrBorrowerRequired = errors.New("borrower id is required")
)

const (
	CodeNotFound         = "NOT_FOUND"
	CodeNotAvailable     = "NOT_AVAILABLE"
	CodeAlreadyIssued    = "ALREADY_ISSUED"
	CodeDuplicateRequest = "DUPLICATE_REQUEST"
	CodeNoActiveLoan     = "NO_ACTIVE_LOAN"
	CodeForbidden        = "FORBIDDEN"
	CodeInvariant        = "INVARIANT"
	CodeInternal         = "INTERNAL"
)

var codes = []struct {
	err  error
	code string
}{
	{ErrNotFound, CodeNotFound},
	{ErrNotAvailable, CodeNotAvailable},
	{ErrAlreadyIssued, CodeAlreadyIssued},
	{ErrDuplicateRequest, CodeDuplicateRequest},
	{ErrNoActiveLoan, CodeNoActiveLoan},
	{ErrForbidden, CodeForbidden},
	{ErrInvariant, CodeInvariant},
}

// Code returns the stable machine-readable code for err.
func Code(err error) string {
	for _, c := range codes {
		if errors.Is(err, c.err) {
			return c.code
		}
	}
	return CodeInternal
}

type ErrorResponse struct {
	Message string `json:"message"`
	Code    string `json:"code"`
}
