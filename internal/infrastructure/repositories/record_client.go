package repositories

import (
	"context"
	"net/url"

	"github.com/you/wifiattend/domain"
)

// RecordClient is the REST record store transport the client-side repositories use
type RecordClient interface {
	List(ctx context.Context, collection string, query url.Values, out any) error
	Create(ctx context.Context, collection string, in, out any) error
	Delete(ctx context.Context, collection string, id domain.RecordID) error
}

// Collection names exposed by the record store
const (
	TeachersCollection    = "teachers"
	StudentsCollection    = "students"
	SchedulesCollection   = "schedules"
	OTPSessionsCollection = "otpSessions"
	AttendanceCollection  = "attendance"
)
