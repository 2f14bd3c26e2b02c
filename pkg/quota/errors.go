package quota

import (
	"errors"
	"fmt"
)

// Machine-readable codes carried by Error. Resource handlers translate
// these into their response envelope; the codes are part of the wire
// contract with frontend upgrade prompts and must stay stable.
const (
	// CodeFeatureNotAvailable: the plan does not include a gated
	// capability. Safe to surface to the end user as "upgrade required".
	CodeFeatureNotAvailable = "FEATURE_NOT_AVAILABLE"

	// CodeLimitInvalid: the plan document itself is malformed. A
	// data-integrity problem upstream, not a user error.
	CodeLimitInvalid = "PACKAGE_LIMIT_INVALID"

	// CodeLimitReached: quota exhausted for this counter/period.
	// Expected and frequent; meta carries current/limit/attempted for
	// UI messaging.
	CodeLimitReached = "PACKAGE_LIMIT_REACHED"
)

// Error is a typed enforcement failure: a stable code, a human
// message, and a metadata map for caller-side decisions such as
// prompting an upgrade.
type Error struct {
	Code    string
	Message string
	Meta    map[string]any
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// AsError extracts a *Error from err's chain.
func AsError(err error) (*Error, bool) {
	var qerr *Error
	if errors.As(err, &qerr) {
		return qerr, true
	}
	return nil, false
}

func isCode(err error, code string) bool {
	qerr, ok := AsError(err)
	return ok && qerr.Code == code
}

// IsFeatureNotAvailable reports whether err is a feature-gate denial.
func IsFeatureNotAvailable(err error) bool { return isCode(err, CodeFeatureNotAvailable) }

// IsLimitInvalid reports whether err is a malformed-plan failure.
func IsLimitInvalid(err error) bool { return isCode(err, CodeLimitInvalid) }

// IsLimitReached reports whether err is a quota exhaustion denial.
func IsLimitReached(err error) bool { return isCode(err, CodeLimitReached) }
