package domain

import "context"

// TeacherRepository looks teachers up in the record store
type TeacherRepository interface {
	FindByCredentials(ctx context.Context, email, password string) ([]Teacher, error)
}

// StudentRepository looks students up in the record store
type StudentRepository interface {
	FindByCredentials(ctx context.Context, rollNo, password string) ([]Student, error)
}

// ScheduleRepository reads schedule entries
type ScheduleRepository interface {
	FindForDay(ctx context.Context, owner Identity, date string) ([]ScheduleEntry, error)
}

// OTPSessionRepository defines OTP session data access operations
type OTPSessionRepository interface {
	Create(ctx context.Context, session *OTPSession) error
	List(ctx context.Context) ([]OTPSession, error)
	Delete(ctx context.Context, id RecordID) error
}

// AttendanceRepository defines attendance record data access operations
type AttendanceRepository interface {
	Create(ctx context.Context, record *AttendanceRecord) error
	ListRecent(ctx context.Context, limit int) ([]AttendanceRecord, error)
}

// SessionStateStore keeps the client-side session state
type SessionStateStore interface {
	Load(ctx context.Context) (*SessionState, error)
	Save(ctx context.Context, state *SessionState) error
	Clear(ctx context.Context) error
}

// SessionHolder owns the signed-in identity and the teacher's held OTP session
type SessionHolder interface {
	Identity(ctx context.Context) (*Identity, error)
	SignIn(ctx context.Context, identity *Identity) error
	SignOut(ctx context.Context) error
	HeldOTP(ctx context.Context) (*OTPSession, error)
	HoldOTP(ctx context.Context, session *OTPSession) error
	ReleaseOTP(ctx context.Context) error
}

// SSIDProvider reads the name of the wireless network the device is on
type SSIDProvider interface {
	CurrentSSID(ctx context.Context) (string, error)
}

// QRScanner yields the raw text of one scanned QR code
type QRScanner interface {
	Scan(ctx context.Context) (string, error)
}

// CodeGenerator produces OTP codes
type CodeGenerator interface {
	Generate() (string, error)
}

// AuthService defines sign-in business logic
type AuthService interface {
	LoginTeacher(ctx context.Context, email, password string) (*Identity, error)
	LoginStudent(ctx context.Context, rollNo, password string) (*Identity, error)
	Logout(ctx context.Context) error
	Current(ctx context.Context) (*Identity, error)
}

// OTPSessionService defines the teacher side of an attendance window
type OTPSessionService interface {
	Generate(ctx context.Context) (*OTPSession, error)
	End(ctx context.Context) error
	Active(ctx context.Context) (*OTPSession, error)
	QRPayload(ctx context.Context) (string, error)
}

// AttendanceService defines the student side of an attendance window
type AttendanceService interface {
	Mark(ctx context.Context, code string) (*AttendanceRecord, error)
	MarkFromQR(ctx context.Context, payload string) (*AttendanceRecord, error)
	History(ctx context.Context) ([]AttendanceRecord, error)
}

// ScheduleService defines schedule reads for the signed-in user
type ScheduleService interface {
	Today(ctx context.Context) ([]ScheduleEntry, error)
}

// PolicyService decides which actions a role may run
type PolicyService interface {
	CheckPermission(role, resource, action string) (bool, error)
	GetPolicies() [][]string
}

// CasbinEnforcer is the subset of the casbin enforcer the policy service uses
type CasbinEnforcer interface {
	Enforce(rvals ...interface{}) (bool, error)
	GetPolicy() ([][]string, error)
}
