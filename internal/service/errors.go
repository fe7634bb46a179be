package service

import "errors"

// Common service errors
var (
	// ErrNotFound is returned when a resource is not found
	ErrNotFound = errors.New("resource not found")

	// ErrInvalidInput is returned when input validation fails
	ErrInvalidInput = errors.New("invalid input")

	// ErrConflict is returned when there's a conflict (e.g., duplicate)
	ErrConflict = errors.New("resource conflict")

	// ErrUnauthorized is returned when user is not authenticated
	ErrUnauthorized = errors.New("unauthorized")

	// ErrQuoteNotFound is returned when a quote request is not found
	ErrQuoteNotFound = errors.New("quote request not found")

	// ErrQuoteAlreadySent is returned when a transition targets a quote that has already gone out
	ErrQuoteAlreadySent = errors.New("quote request already sent")

	// ErrQuoteCancelled is returned when a transition targets a cancelled quote
	ErrQuoteCancelled = errors.New("quote request cancelled")

	// ErrInvalidApprovedRange is returned when a reviewer's override range is inconsistent
	ErrInvalidApprovedRange = errors.New("approved range invalid")

	// ErrServiceNotFound is returned when a catalog service is not found
	ErrServiceNotFound = errors.New("service not found")

	// ErrProjectTypeNotAllowed is returned when a quote names a project type the
	// selected service does not offer
	ErrProjectTypeNotAllowed = errors.New("project type not allowed for service")

	// ErrInvoiceNotFound is returned when an invoice is not found
	ErrInvoiceNotFound = errors.New("invoice not found")

	// ErrNotificationNotFound is returned when a notification is not found
	ErrNotificationNotFound = errors.New("notification not found")
)
