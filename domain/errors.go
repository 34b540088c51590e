package domain

import (
	"errors"
	"fmt"
)

// Authentication errors
var (
	ErrCredentialsInvalid = errors.New("invalid credentials")
	ErrNotSignedIn        = errors.New("not signed in")
	ErrWrongRole          = errors.New("action not available for this role")
)

// Verification errors
var (
	ErrNoActiveSession = errors.New("no active otp session")
	ErrOTPMismatch     = errors.New("otp does not match")
	ErrNetworkMismatch = errors.New("network does not match")
)

// Transport errors
var (
	ErrNetworkUnavailable = errors.New("backend unreachable")
	ErrBackend            = errors.New("backend returned an error")
	ErrRecordNotFound     = errors.New("record not found")
)

// Capability errors
var (
	ErrCapabilityUnavailable = errors.New("capability unavailable")
	ErrInvalidQR             = errors.New("invalid qr payload")
)

// NetworkMismatchError tells the student which network the session expects
type NetworkMismatchError struct {
	Expected string
	Actual   string
}

func (e *NetworkMismatchError) Error() string {
	return fmt.Sprintf("network does not match: connect to %q (current %q)", e.Expected, e.Actual)
}

func (e *NetworkMismatchError) Unwrap() error { return ErrNetworkMismatch }
