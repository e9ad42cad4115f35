package errs

import "errors"

// Cross-layer sentinel categories. Packages mark their own errors with these
// so the dispatcher and HTTP layer can classify failures without importing
// every usecase package.
var (
	// ValidationError: malformed input or out-of-range value.
	ErrValidation = errors.New("validation error")

	// NotFoundError: missing flow state, queue entry, booking.
	ErrNotFound = errors.New("not found")

	// AccessDeniedError: tier, feature, location or quota gate failure.
	ErrAccessDenied = errors.New("access denied")

	// TransientStoreError: I/O failure against the backing store.
	ErrTransientStore = errors.New("transient store error")
)
