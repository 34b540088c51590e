package app

import (
	"errors"
	"fmt"

	"github.com/you/wifiattend/domain"
)

// ErrNotPermitted is returned when the signed-in role may not run a command
var ErrNotPermitted = errors.New("command not permitted")

// ErrAlreadySignedIn is returned for a login while someone is signed in
var ErrAlreadySignedIn = errors.New("already signed in")

// ErrUsage is returned for malformed command lines
var ErrUsage = errors.New("usage")

// UserMessage turns any command failure into the single line shown to the
// user. role names whose credentials were rejected on a login.
func UserMessage(err error, role domain.Role) string {
	var mismatch *domain.NetworkMismatchError
	switch {
	case err == nil:
		return ""
	case errors.Is(err, domain.ErrCredentialsInvalid):
		if role == "" {
			return "Login Failed: Invalid credentials"
		}
		return fmt.Sprintf("Login Failed: Invalid %s credentials", role)
	case errors.Is(err, domain.ErrNoActiveSession):
		return "No active OTP session"
	case errors.Is(err, domain.ErrOTPMismatch):
		return "Wrong OTP"
	case errors.As(err, &mismatch):
		return "Wrong WiFi: Connect to " + mismatch.Expected
	case errors.Is(err, domain.ErrInvalidQR):
		return "Invalid QR Code"
	case errors.Is(err, domain.ErrCapabilityUnavailable):
		return "QR scanner is not available; use manual OTP entry"
	case errors.Is(err, domain.ErrNotSignedIn):
		return "Please log in first"
	case errors.Is(err, domain.ErrWrongRole), errors.Is(err, ErrNotPermitted):
		if role == "" {
			return "Not available"
		}
		return fmt.Sprintf("Not available for %s", role)
	case errors.Is(err, ErrAlreadySignedIn):
		return fmt.Sprintf("Already signed in as %s; log out first", role)
	case errors.Is(err, domain.ErrNetworkUnavailable):
		return "Cannot reach the attendance server"
	case errors.Is(err, domain.ErrBackend), errors.Is(err, domain.ErrRecordNotFound):
		return "Server error, please try again"
	case errors.Is(err, ErrUsage):
		return err.Error()
	}
	return "Error: " + err.Error()
}
