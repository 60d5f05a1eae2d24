package services

import "errors"

// Rejection reasons surfaced by the availability and booking engine. Handlers
// map these onto HTTP statuses: validation -> 400, not-found -> 404,
// policy -> 422, conflict -> 409, anything else -> 500.
var (
	ErrInvalidDate     = errors.New("invalid date, expected YYYY-MM-DD")
	ErrInvalidClock    = errors.New("invalid time, expected HH:MM")
	ErrInvalidDuration = errors.New("service duration must be positive")

	ErrVendorNotFound  = errors.New("vendor not found or not active")
	ErrServiceNotFound = errors.New("service not found or not active")
	ErrWorkerNotFound  = errors.New("worker not found")

	ErrSameDayBooking     = errors.New("appointments must be booked at least one day in advance")
	ErrWorkerNotQualified = errors.New("worker is not qualified for this service")

	ErrSlotConflict = errors.New("the selected time is no longer available")
)

// IsValidationError reports whether err is a malformed-input rejection.
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidDate) || errors.Is(err, ErrInvalidClock) || errors.Is(err, ErrInvalidDuration)
}

// IsNotFoundError reports whether err means a referenced record is missing
// or inactive.
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrVendorNotFound) || errors.Is(err, ErrServiceNotFound) || errors.Is(err, ErrWorkerNotFound)
}

// IsPolicyViolation reports whether err is a business-rule rejection detected
// before any transaction starts.
func IsPolicyViolation(err error) bool {
	return errors.Is(err, ErrSameDayBooking) || errors.Is(err, ErrWorkerNotQualified)
}

// IsConflictError reports whether err means the slot was lost to a competing
// booking; the caller should re-query availability rather than retry the
// same slot.
func IsConflictError(err error) bool {
	return errors.Is(err, ErrSlotConflict)
}
