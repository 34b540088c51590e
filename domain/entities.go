package domain

import "strings"

// Role identifies which kind of user is signed in
type Role string

const (
	RoleTeacher Role = "teacher"
	RoleStudent Role = "student"
)

// StatusPresent is the only status this client ever writes
const StatusPresent = "Present"

// Teacher is a record of the backend teachers collection
type Teacher struct {
	ID       RecordID `json:"id"`
	Name     string   `json:"name"`
	Email    string   `json:"email"`
	Password string   `json:"password,omitempty"`
}

// Student is a record of the backend students collection
type Student struct {
	ID       RecordID `json:"id"`
	Name     string   `json:"name"`
	RollNo   string   `json:"rollNo"`
	Password string   `json:"password,omitempty"`
}

// Profile is the part of a teacher or student record kept after sign-in
type Profile struct {
	ID     RecordID `json:"id"`
	Name   string   `json:"name"`
	Email  string   `json:"email,omitempty"`
	RollNo string   `json:"rollNo,omitempty"`
}

// Identity represents the signed-in user
type Identity struct {
	Role    Role    `json:"role"`
	Profile Profile `json:"profile"`
}

// TeacherIdentity builds the identity adopted after a teacher login
func TeacherIdentity(t Teacher) *Identity {
	return &Identity{
		Role:    RoleTeacher,
		Profile: Profile{ID: t.ID, Name: t.Name, Email: t.Email},
	}
}

// StudentIdentity builds the identity adopted after a student login
func StudentIdentity(s Student) *Identity {
	return &Identity{
		Role:    RoleStudent,
		Profile: Profile{ID: s.ID, Name: s.Name, RollNo: s.RollNo},
	}
}

// OTPSession represents a teacher's attendance window on the backend
type OTPSession struct {
	ID        RecordID  `json:"id,omitempty"`
	TeacherID RecordID  `json:"teacherId"`
	OTP       string    `json:"otp"`
	SSID      string    `json:"ssid"`
	CreatedAt Timestamp `json:"createdAt"`
}

// AttendanceRecord represents one successful verification
type AttendanceRecord struct {
	ID        RecordID  `json:"id,omitempty"`
	StudentID RecordID  `json:"studentId"`
	SSID      string    `json:"ssid"`
	Date      Timestamp `json:"date"`
	Status    string    `json:"status"`
}

// ScheduleEntry is a read-only class slot for a teacher or a student
type ScheduleEntry struct {
	ID        RecordID `json:"id"`
	Subject   string   `json:"subject"`
	Time      string   `json:"time"`
	Room      string   `json:"room"`
	TeacherID RecordID `json:"teacherId,omitempty"`
	StudentID RecordID `json:"studentId,omitempty"`
	Date      string   `json:"date"`
}

// StartTime returns the first half of the "HH:MM-HH:MM" range
func (s ScheduleEntry) StartTime() string {
	start, _, _ := strings.Cut(s.Time, "-")
	return strings.TrimSpace(start)
}

// NextClassSummary renders the dashboard headline for a day's schedule
func NextClassSummary(entries []ScheduleEntry) string {
	if len(entries) == 0 {
		return "No upcoming classes"
	}
	next := entries[0]
	return "Next: " + next.StartTime() + " - " + next.Subject + " (" + next.Room + ")"
}

// SessionState is everything the client remembers between actions
type SessionState struct {
	Identity  *Identity   `json:"identity,omitempty"`
	ActiveOTP *OTPSession `json:"activeOtp,omitempty"`
}

// IsValidOTPCode reports whether code is exactly four decimal digits
func IsValidOTPCode(code string) bool {
	if len(code) != 4 {
		return false
	}
	for i := 0; i < len(code); i++ {
		if code[i] < '0' || code[i] > '9' {
			return false
		}
	}
	return true
}
