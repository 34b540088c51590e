package mocks

import (
	"context"

	"github.com/you/wifiattend/domain"
)

// MockTeacherRepository implements domain.TeacherRepository interface for testing
type MockTeacherRepository struct {
	FindByCredentialsFunc func(ctx context.Context, email, password string) ([]domain.Teacher, error)
	Calls                 int
}

// NewMockTeacherRepository creates a new MockTeacherRepository with default behaviors
func NewMockTeacherRepository() *MockTeacherRepository {
	return &MockTeacherRepository{}
}

// FindByCredentials looks teachers up by email and password
func (m *MockTeacherRepository) FindByCredentials(ctx context.Context, email, password string) ([]domain.Teacher, error) {
	m.Calls++
	if m.FindByCredentialsFunc != nil {
		return m.FindByCredentialsFunc(ctx, email, password)
	}
	// Default behavior: no match
	return nil, nil
}

// MockStudentRepository implements domain.StudentRepository interface for testing
type MockStudentRepository struct {
	FindByCredentialsFunc func(ctx context.Context, rollNo, password string) ([]domain.Student, error)
	Calls                 int
}

// NewMockStudentRepository creates a new MockStudentRepository with default behaviors
func NewMockStudentRepository() *MockStudentRepository {
	return &MockStudentRepository{}
}

// FindByCredentials looks students up by roll number and password
func (m *MockStudentRepository) FindByCredentials(ctx context.Context, rollNo, password string) ([]domain.Student, error) {
	m.Calls++
	if m.FindByCredentialsFunc != nil {
		return m.FindByCredentialsFunc(ctx, rollNo, password)
	}
	// Default behavior: no match
	return nil, nil
}

// MockScheduleRepository implements domain.ScheduleRepository interface for testing
type MockScheduleRepository struct {
	FindForDayFunc func(ctx context.Context, owner domain.Identity, date string) ([]domain.ScheduleEntry, error)
}

// NewMockScheduleRepository creates a new MockScheduleRepository with default behaviors
func NewMockScheduleRepository() *MockScheduleRepository {
	return &MockScheduleRepository{}
}

// FindForDay returns the owner's schedule for date
func (m *MockScheduleRepository) FindForDay(ctx context.Context, owner domain.Identity, date string) ([]domain.ScheduleEntry, error) {
	if m.FindForDayFunc != nil {
		return m.FindForDayFunc(ctx, owner, date)
	}
	// Default behavior: empty day
	return nil, nil
}

// MockOTPSessionRepository implements domain.OTPSessionRepository interface for testing
type MockOTPSessionRepository struct {
	CreateFunc func(ctx context.Context, session *domain.OTPSession) error
	ListFunc   func(ctx context.Context) ([]domain.OTPSession, error)
	DeleteFunc func(ctx context.Context, id domain.RecordID) error

	CreateCalls int
	ListCalls   int
	DeleteCalls int
}

// NewMockOTPSessionRepository creates a new MockOTPSessionRepository with default behaviors
func NewMockOTPSessionRepository() *MockOTPSessionRepository {
	return &MockOTPSessionRepository{}
}

// Create stores a new OTP session
func (m *MockOTPSessionRepository) Create(ctx context.Context, session *domain.OTPSession) error {
	m.CreateCalls++
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, session)
	}
	// Default behavior: success with a fixed id
	session.ID = "1"
	return nil
}

// List returns all OTP sessions
func (m *MockOTPSessionRepository) List(ctx context.Context) ([]domain.OTPSession, error) {
	m.ListCalls++
	if m.ListFunc != nil {
		return m.ListFunc(ctx)
	}
	// Default behavior: no sessions
	return nil, nil
}

// Delete removes an OTP session
func (m *MockOTPSessionRepository) Delete(ctx context.Context, id domain.RecordID) error {
	m.DeleteCalls++
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	// Default behavior: success
	return nil
}

// MockAttendanceRepository implements domain.AttendanceRepository interface for testing
type MockAttendanceRepository struct {
	CreateFunc     func(ctx context.Context, record *domain.AttendanceRecord) error
	ListRecentFunc func(ctx context.Context, limit int) ([]domain.AttendanceRecord, error)

	Created []domain.AttendanceRecord
}

// NewMockAttendanceRepository creates a new MockAttendanceRepository with default behaviors
func NewMockAttendanceRepository() *MockAttendanceRepository {
	return &MockAttendanceRepository{}
}

// Create stores an attendance record
func (m *MockAttendanceRepository) Create(ctx context.Context, record *domain.AttendanceRecord) error {
	if m.CreateFunc != nil {
		if err := m.CreateFunc(ctx, record); err != nil {
			return err
		}
	}
	m.Created = append(m.Created, *record)
	return nil
}

// ListRecent returns the newest records
func (m *MockAttendanceRepository) ListRecent(ctx context.Context, limit int) ([]domain.AttendanceRecord, error) {
	if m.ListRecentFunc != nil {
		return m.ListRecentFunc(ctx, limit)
	}
	// Default behavior: what was created, newest first
	out := make([]domain.AttendanceRecord, 0, len(m.Created))
	for i := len(m.Created) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, m.Created[i])
	}
	return out, nil
}

// Compile-time interface compliance verification
var (
	_ domain.TeacherRepository    = (*MockTeacherRepository)(nil)
	_ domain.StudentRepository    = (*MockStudentRepository)(nil)
	_ domain.ScheduleRepository   = (*MockScheduleRepository)(nil)
	_ domain.OTPSessionRepository = (*MockOTPSessionRepository)(nil)
	_ domain.AttendanceRepository = (*MockAttendanceRepository)(nil)
)
