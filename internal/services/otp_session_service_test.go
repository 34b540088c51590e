package services

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/you/wifiattend/domain"
	"github.com/you/wifiattend/internal/mocks"
)

type otpTestDeps struct {
	repo     *mocks.MockOTPSessionRepository
	holder   *mocks.MockSessionHolder
	ssid     *mocks.MockSSIDProvider
	codes    *mocks.MockCodeGenerator
	activity *mocks.MockActivityLogger
}

// createOTPSessionServiceForTest creates an OTPSessionService signed in as identity
func createOTPSessionServiceForTest(t *testing.T, identity *domain.Identity) (*OTPSessionServiceImpl, *otpTestDeps) {
	t.Helper()

	deps := &otpTestDeps{
		repo:     mocks.NewMockOTPSessionRepository(),
		holder:   mocks.NewSignedInSessionHolder(identity),
		ssid:     mocks.NewMockSSIDProvider("ClassroomWifi"),
		codes:    mocks.NewMockCodeGenerator("4821"),
		activity: mocks.NewMockActivityLogger(),
	}
	svc := NewOTPSessionService(deps.repo, deps.holder, deps.ssid, deps.codes, deps.activity).(*OTPSessionServiceImpl)
	svc.now = fixedClock
	return svc, deps
}

func TestOTPSessionServiceImpl_Generate(t *testing.T) {
	svc, deps := createOTPSessionServiceForTest(t, createTeacherIdentity(t))
	var posted domain.OTPSession
	deps.repo.CreateFunc = func(ctx context.Context, session *domain.OTPSession) error {
		posted = *session
		session.ID = "77"
		return nil
	}

	session, err := svc.Generate(createTestContext(t))

	require.NoError(t, err)
	assert.Equal(t, domain.RecordID("77"), session.ID)
	assert.Equal(t, domain.RecordID("1"), posted.TeacherID)
	assert.Equal(t, "4821", posted.OTP)
	assert.Equal(t, "ClassroomWifi", posted.SSID)
	assert.Equal(t, fixedNow.UTC(), posted.CreatedAt.Time)
	assert.Equal(t, time.UTC, posted.CreatedAt.Location())

	assert.Equal(t, session, deps.holder.CurrentOTP)
	assert.Equal(t, []domain.ActivityEventType{domain.OTPSessionStartedEvent}, deps.activity.EventTypes())
}

func TestOTPSessionServiceImpl_GenerateUnknownSSID(t *testing.T) {
	svc, deps := createOTPSessionServiceForTest(t, createTeacherIdentity(t))
	deps.ssid.CurrentSSIDFunc = func(ctx context.Context) (string, error) {
		return "", domain.ErrCapabilityUnavailable
	}

	session, err := svc.Generate(createTestContext(t))

	require.NoError(t, err)
	assert.Equal(t, domain.UnknownSSID, session.SSID)
}

func TestOTPSessionServiceImpl_GenerateReplacesHeldSession(t *testing.T) {
	svc, deps := createOTPSessionServiceForTest(t, createTeacherIdentity(t))
	old := createOTPSession(t, "10", "1111", "ClassroomWifi")
	deps.holder.CurrentOTP = &old

	session, err := svc.Generate(createTestContext(t))

	require.NoError(t, err)
	assert.Equal(t, "4821", deps.holder.CurrentOTP.OTP)
	assert.Equal(t, session, deps.holder.CurrentOTP)
	assert.Equal(t, 0, deps.repo.DeleteCalls)
}

func TestOTPSessionServiceImpl_GenerateErrors(t *testing.T) {
	tests := []struct {
		name          string
		identity      *domain.Identity
		setup         func(*otpTestDeps)
		expectedError error
		expectCreate  bool
	}{
		{
			name:          "signed out",
			identity:      nil,
			setup:         func(d *otpTestDeps) {},
			expectedError: domain.ErrNotSignedIn,
		},
		{
			name:          "student cannot generate",
			identity:      domain.StudentIdentity(domain.Student{ID: "5"}),
			setup:         func(d *otpTestDeps) {},
			expectedError: domain.ErrWrongRole,
		},
		{
			name:     "backend unreachable",
			identity: domain.TeacherIdentity(domain.Teacher{ID: "1"}),
			setup: func(d *otpTestDeps) {
				d.repo.CreateFunc = func(ctx context.Context, session *domain.OTPSession) error {
					return fmt.Errorf("POST /otpSessions: %w", domain.ErrNetworkUnavailable)
				}
			},
			expectedError: domain.ErrNetworkUnavailable,
			expectCreate:  true,
		},
		{
			name:     "code generator fails",
			identity: domain.TeacherIdentity(domain.Teacher{ID: "1"}),
			setup: func(d *otpTestDeps) {
				d.codes.GenerateFunc = func() (string, error) { return "", errors.New("entropy exhausted") }
			},
			expectedError: nil,
		},
		{
			name:     "code generator returns malformed code",
			identity: domain.TeacherIdentity(domain.Teacher{ID: "1"}),
			setup: func(d *otpTestDeps) {
				d.codes.GenerateFunc = func() (string, error) { return "12a", nil }
			},
			expectedError: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, deps := createOTPSessionServiceForTest(t, tt.identity)
			tt.setup(deps)

			session, err := svc.Generate(createTestContext(t))

			require.Error(t, err)
			if tt.expectedError != nil {
				assert.True(t, errors.Is(err, tt.expectedError), "expected %v, got %v", tt.expectedError, err)
			}
			assert.Nil(t, session)
			assert.Nil(t, deps.holder.CurrentOTP, "nothing is held after a failed generate")
			if tt.expectCreate {
				assert.Equal(t, 1, deps.repo.CreateCalls)
			} else {
				assert.Equal(t, 0, deps.repo.CreateCalls)
			}
		})
	}
}

func TestOTPSessionServiceImpl_End(t *testing.T) {
	tests := []struct {
		name          string
		held          *domain.OTPSession
		deleteErr     error
		expectedError error
		expectDelete  bool
		expectHeld    bool
		expectEvents  []domain.ActivityEventType
	}{
		{
			name:         "nothing held is a no-op",
			held:         nil,
			expectDelete: false,
			expectEvents: []domain.ActivityEventType{},
		},
		{
			name:         "deletes and clears",
			held:         &domain.OTPSession{ID: "12", OTP: "4821", SSID: "ClassroomWifi"},
			expectDelete: true,
			expectEvents: []domain.ActivityEventType{domain.OTPSessionEndedEvent},
		},
		{
			name:         "already gone still clears",
			held:         &domain.OTPSession{ID: "12", OTP: "4821", SSID: "ClassroomWifi"},
			deleteErr:    fmt.Errorf("DELETE /otpSessions/12: %w", domain.ErrRecordNotFound),
			expectDelete: true,
			expectEvents: []domain.ActivityEventType{domain.OTPSessionEndedEvent},
		},
		{
			name:          "transport failure keeps the session",
			held:          &domain.OTPSession{ID: "12", OTP: "4821", SSID: "ClassroomWifi"},
			deleteErr:     fmt.Errorf("DELETE /otpSessions/12: %w", domain.ErrNetworkUnavailable),
			expectedError: domain.ErrNetworkUnavailable,
			expectDelete:  true,
			expectHeld:    true,
			expectEvents:  []domain.ActivityEventType{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, deps := createOTPSessionServiceForTest(t, createTeacherIdentity(t))
			deps.holder.CurrentOTP = tt.held
			var deletedID domain.RecordID
			deps.repo.DeleteFunc = func(ctx context.Context, id domain.RecordID) error {
				deletedID = id
				return tt.deleteErr
			}

			err := svc.End(createTestContext(t))

			if tt.expectedError != nil {
				assert.True(t, errors.Is(err, tt.expectedError), "expected %v, got %v", tt.expectedError, err)
			} else {
				assert.NoError(t, err)
			}
			if tt.expectDelete {
				assert.Equal(t, 1, deps.repo.DeleteCalls)
				assert.Equal(t, domain.RecordID("12"), deletedID)
			} else {
				assert.Equal(t, 0, deps.repo.DeleteCalls)
			}
			if tt.expectHeld {
				assert.NotNil(t, deps.holder.CurrentOTP)
			} else {
				assert.Nil(t, deps.holder.CurrentOTP)
			}
			assert.Equal(t, tt.expectEvents, deps.activity.EventTypes())
		})
	}
}

func TestOTPSessionServiceImpl_EndWrongRole(t *testing.T) {
	svc, deps := createOTPSessionServiceForTest(t, createStudentIdentity(t))

	err := svc.End(createTestContext(t))

	assert.True(t, errors.Is(err, domain.ErrWrongRole))
	assert.Equal(t, 0, deps.repo.DeleteCalls)
}

func TestOTPSessionServiceImpl_ActiveAndQRPayload(t *testing.T) {
	ctx := createTestContext(t)
	svc, deps := createOTPSessionServiceForTest(t, createTeacherIdentity(t))

	active, err := svc.Active(ctx)
	require.NoError(t, err)
	assert.Nil(t, active)

	_, err = svc.QRPayload(ctx)
	assert.True(t, errors.Is(err, domain.ErrNoActiveSession))

	held := createOTPSession(t, "12", "4821", "ClassroomWifi")
	deps.holder.CurrentOTP = &held

	active, err = svc.Active(ctx)
	require.NoError(t, err)
	assert.Equal(t, "4821", active.OTP)

	payload, err := svc.QRPayload(ctx)
	require.NoError(t, err)
	assert.JSONEq(t, `{"otp":"4821","ssid":"ClassroomWifi","teacherId":1}`, payload)

	parsed, err := domain.ParseQRPayload(payload)
	require.NoError(t, err)
	assert.Equal(t, "4821", parsed.OTP)
}
