package mocks

import (
	"context"

	"github.com/you/wifiattend/domain"
)

// MockAuthService implements domain.AuthService interface for testing
type MockAuthService struct {
	LoginTeacherFunc func(ctx context.Context, email, password string) (*domain.Identity, error)
	LoginStudentFunc func(ctx context.Context, rollNo, password string) (*domain.Identity, error)
	LogoutFunc       func(ctx context.Context) error
	CurrentFunc      func(ctx context.Context) (*domain.Identity, error)
}

// NewMockAuthService creates a new MockAuthService with default behaviors
func NewMockAuthService() *MockAuthService {
	return &MockAuthService{}
}

// LoginTeacher signs a teacher in
func (m *MockAuthService) LoginTeacher(ctx context.Context, email, password string) (*domain.Identity, error) {
	if m.LoginTeacherFunc != nil {
		return m.LoginTeacherFunc(ctx, email, password)
	}
	// Default behavior: invalid credentials
	return nil, domain.ErrCredentialsInvalid
}

// LoginStudent signs a student in
func (m *MockAuthService) LoginStudent(ctx context.Context, rollNo, password string) (*domain.Identity, error) {
	if m.LoginStudentFunc != nil {
		return m.LoginStudentFunc(ctx, rollNo, password)
	}
	// Default behavior: invalid credentials
	return nil, domain.ErrCredentialsInvalid
}

// Logout signs out
func (m *MockAuthService) Logout(ctx context.Context) error {
	if m.LogoutFunc != nil {
		return m.LogoutFunc(ctx)
	}
	return nil
}

// Current returns the signed-in identity
func (m *MockAuthService) Current(ctx context.Context) (*domain.Identity, error) {
	if m.CurrentFunc != nil {
		return m.CurrentFunc(ctx)
	}
	// Default behavior: signed out
	return nil, domain.ErrNotSignedIn
}

// MockOTPSessionService implements domain.OTPSessionService interface for testing
type MockOTPSessionService struct {
	GenerateFunc  func(ctx context.Context) (*domain.OTPSession, error)
	EndFunc       func(ctx context.Context) error
	ActiveFunc    func(ctx context.Context) (*domain.OTPSession, error)
	QRPayloadFunc func(ctx context.Context) (string, error)
}

// NewMockOTPSessionService creates a new MockOTPSessionService with default behaviors
func NewMockOTPSessionService() *MockOTPSessionService {
	return &MockOTPSessionService{}
}

// Generate starts an OTP session
func (m *MockOTPSessionService) Generate(ctx context.Context) (*domain.OTPSession, error) {
	if m.GenerateFunc != nil {
		return m.GenerateFunc(ctx)
	}
	return &domain.OTPSession{ID: "1", TeacherID: "1", OTP: "1234", SSID: "MockNet"}, nil
}

// End ends the held OTP session
func (m *MockOTPSessionService) End(ctx context.Context) error {
	if m.EndFunc != nil {
		return m.EndFunc(ctx)
	}
	return nil
}

// Active returns the held OTP session
func (m *MockOTPSessionService) Active(ctx context.Context) (*domain.OTPSession, error) {
	if m.ActiveFunc != nil {
		return m.ActiveFunc(ctx)
	}
	return nil, nil
}

// QRPayload encodes the held OTP session
func (m *MockOTPSessionService) QRPayload(ctx context.Context) (string, error) {
	if m.QRPayloadFunc != nil {
		return m.QRPayloadFunc(ctx)
	}
	return "", domain.ErrNoActiveSession
}

// MockAttendanceService implements domain.AttendanceService interface for testing
type MockAttendanceService struct {
	MarkFunc       func(ctx context.Context, code string) (*domain.AttendanceRecord, error)
	MarkFromQRFunc func(ctx context.Context, payload string) (*domain.AttendanceRecord, error)
	HistoryFunc    func(ctx context.Context) ([]domain.AttendanceRecord, error)
}

// NewMockAttendanceService creates a new MockAttendanceService with default behaviors
func NewMockAttendanceService() *MockAttendanceService {
	return &MockAttendanceService{}
}

// Mark submits a code
func (m *MockAttendanceService) Mark(ctx context.Context, code string) (*domain.AttendanceRecord, error) {
	if m.MarkFunc != nil {
		return m.MarkFunc(ctx, code)
	}
	return nil, domain.ErrNoActiveSession
}

// MarkFromQR submits a scanned payload
func (m *MockAttendanceService) MarkFromQR(ctx context.Context, payload string) (*domain.AttendanceRecord, error) {
	if m.MarkFromQRFunc != nil {
		return m.MarkFromQRFunc(ctx, payload)
	}
	return nil, domain.ErrInvalidQR
}

// History lists recent attendance
func (m *MockAttendanceService) History(ctx context.Context) ([]domain.AttendanceRecord, error) {
	if m.HistoryFunc != nil {
		return m.HistoryFunc(ctx)
	}
	return nil, nil
}

// MockScheduleService implements domain.ScheduleService interface for testing
type MockScheduleService struct {
	TodayFunc func(ctx context.Context) ([]domain.ScheduleEntry, error)
}

// NewMockScheduleService creates a new MockScheduleService with default behaviors
func NewMockScheduleService() *MockScheduleService {
	return &MockScheduleService{}
}

// Today lists today's schedule
func (m *MockScheduleService) Today(ctx context.Context) ([]domain.ScheduleEntry, error) {
	if m.TodayFunc != nil {
		return m.TodayFunc(ctx)
	}
	return nil, nil
}

// Compile-time interface compliance verification
var (
	_ domain.AuthService       = (*MockAuthService)(nil)
	_ domain.OTPSessionService = (*MockOTPSessionService)(nil)
	_ domain.AttendanceService = (*MockAttendanceService)(nil)
	_ domain.ScheduleService   = (*MockScheduleService)(nil)
)
