package domain

import (
	"context"
	"time"
)

// ActivityEventType defines the type of activity event
type ActivityEventType string

const (
	// Sign-in events
	LoginEvent        ActivityEventType = "LOGIN"
	LoginFailureEvent ActivityEventType = "LOGIN_FAILED"
	LogoutEvent       ActivityEventType = "LOGOUT"

	// OTP session events
	OTPSessionStartedEvent ActivityEventType = "OTP_SESSION_STARTED"
	OTPSessionEndedEvent   ActivityEventType = "OTP_SESSION_ENDED"

	// Attendance events
	AttendanceMarkedEvent   ActivityEventType = "ATTENDANCE_MARKED"
	AttendanceRejectedEvent ActivityEventType = "ATTENDANCE_REJECTED"
)

// ActivityEvent is one user action worth reporting on the console log.
// Nothing here is persisted.
type ActivityEvent struct {
	EventType ActivityEventType `json:"event_type"`
	Role      Role              `json:"role,omitempty"`
	UserID    RecordID          `json:"user_id,omitempty"`
	Timestamp time.Time         `json:"timestamp"`
	Metadata  map[string]any    `json:"metadata,omitempty"`
	ErrorMsg  string            `json:"error_msg,omitempty"`
	Success   bool              `json:"success"`
}

// ActivityLogger defines operations for activity logging
type ActivityLogger interface {
	LogEvent(ctx context.Context, event *ActivityEvent) error
}

// NewActivityEvent creates a new event with common fields populated
func NewActivityEvent(eventType ActivityEventType) *ActivityEvent {
	return &ActivityEvent{
		EventType: eventType,
		Timestamp: time.Now().UTC(),
		Metadata:  make(map[string]any),
		Success:   true,
	}
}

// WithIdentity sets the actor of the event
func (e *ActivityEvent) WithIdentity(id *Identity) *ActivityEvent {
	if id != nil {
		e.Role = id.Role
		e.UserID = id.Profile.ID
	}
	return e
}

// WithError marks the event as failed
func (e *ActivityEvent) WithError(err error) *ActivityEvent {
	e.Success = false
	if err != nil {
		e.ErrorMsg = err.Error()
	}
	return e
}

// WithMetadata adds metadata to the event
func (e *ActivityEvent) WithMetadata(key string, value any) *ActivityEvent {
	e.Metadata[key] = value
	return e
}
