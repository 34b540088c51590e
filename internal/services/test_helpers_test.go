package services

import (
	"context"
	"testing"
	"time"

	"github.com/you/wifiattend/domain"
)

var fixedNow = time.Date(2026, 10, 18, 23, 30, 0, 0, time.FixedZone("IST", 5*3600+1800))

func fixedClock() time.Time { return fixedNow }

// createTeacherIdentity creates a signed-in teacher for testing
func createTeacherIdentity(t *testing.T) *domain.Identity {
	t.Helper()
	return domain.TeacherIdentity(domain.Teacher{ID: "1", Name: "Ada Lovelace", Email: "ada@school.edu"})
}

// createStudentIdentity creates a signed-in student for testing
func createStudentIdentity(t *testing.T) *domain.Identity {
	t.Helper()
	return domain.StudentIdentity(domain.Student{ID: "5", Name: "Lin", RollNo: "S005"})
}

// createOTPSession creates an OTP session as the backend would list it
func createOTPSession(t *testing.T, id domain.RecordID, otp, ssid string) domain.OTPSession {
	t.Helper()
	return domain.OTPSession{
		ID:        id,
		TeacherID: "1",
		OTP:       otp,
		SSID:      ssid,
		CreatedAt: domain.NewTimestamp(fixedNow.Add(-time.Minute)),
	}
}

// createTestContext creates a context for testing with timeout
func createTestContext(t *testing.T) context.Context {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	t.Cleanup(cancel)
	return ctx
}
