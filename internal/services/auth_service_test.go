package services

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/you/wifiattend/domain"
	"github.com/you/wifiattend/internal/mocks"
)

func TestAuthServiceImpl_LoginTeacher(t *testing.T) {
	tests := []struct {
		name          string
		email         string
		password      string
		setupMocks    func(*mocks.MockTeacherRepository)
		expectedError error
		expectedCalls int
		validate      func(t *testing.T, id *domain.Identity, holder *mocks.MockSessionHolder)
	}{
		{
			name:     "successful login adopts first record",
			email:    "ada@school.edu",
			password: "secret",
			setupMocks: func(repo *mocks.MockTeacherRepository) {
				repo.FindByCredentialsFunc = func(ctx context.Context, email, password string) ([]domain.Teacher, error) {
					if email != "ada@school.edu" || password != "secret" {
						return nil, nil
					}
					return []domain.Teacher{
						{ID: "1", Name: "Ada", Email: email, Password: password},
						{ID: "2", Name: "Duplicate", Email: email, Password: password},
					}, nil
				}
			},
			expectedCalls: 1,
			validate: func(t *testing.T, id *domain.Identity, holder *mocks.MockSessionHolder) {
				require.NotNil(t, id)
				assert.Equal(t, domain.RoleTeacher, id.Role)
				assert.Equal(t, domain.RecordID("1"), id.Profile.ID)
				assert.Equal(t, "Ada", id.Profile.Name)
				assert.Equal(t, id, holder.CurrentIdentity)
			},
		},
		{
			name:     "no matching record",
			email:    "ada@school.edu",
			password: "wrong",
			setupMocks: func(repo *mocks.MockTeacherRepository) {
				repo.FindByCredentialsFunc = func(ctx context.Context, email, password string) ([]domain.Teacher, error) {
					return []domain.Teacher{}, nil
				}
			},
			expectedError: domain.ErrCredentialsInvalid,
			expectedCalls: 1,
			validate: func(t *testing.T, id *domain.Identity, holder *mocks.MockSessionHolder) {
				assert.Nil(t, id)
				assert.Nil(t, holder.CurrentIdentity)
			},
		},
		{
			name:          "blank email skips the backend",
			email:         "  ",
			password:      "secret",
			setupMocks:    func(repo *mocks.MockTeacherRepository) {},
			expectedError: domain.ErrCredentialsInvalid,
			expectedCalls: 0,
		},
		{
			name:          "blank password skips the backend",
			email:         "ada@school.edu",
			password:      "",
			setupMocks:    func(repo *mocks.MockTeacherRepository) {},
			expectedError: domain.ErrCredentialsInvalid,
			expectedCalls: 0,
		},
		{
			name:     "backend unreachable",
			email:    "ada@school.edu",
			password: "secret",
			setupMocks: func(repo *mocks.MockTeacherRepository) {
				repo.FindByCredentialsFunc = func(ctx context.Context, email, password string) ([]domain.Teacher, error) {
					return nil, fmt.Errorf("GET /teachers: %w", domain.ErrNetworkUnavailable)
				}
			},
			expectedError: domain.ErrNetworkUnavailable,
			expectedCalls: 1,
			validate: func(t *testing.T, id *domain.Identity, holder *mocks.MockSessionHolder) {
				assert.Nil(t, holder.CurrentIdentity)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			teacherRepo := mocks.NewMockTeacherRepository()
			holder := mocks.NewMockSessionHolder()
			activity := mocks.NewMockActivityLogger()
			tt.setupMocks(teacherRepo)

			svc := NewAuthService(teacherRepo, mocks.NewMockStudentRepository(), holder, activity)
			id, err := svc.LoginTeacher(createTestContext(t), tt.email, tt.password)

			if tt.expectedError != nil {
				assert.True(t, errors.Is(err, tt.expectedError), "expected %v, got %v", tt.expectedError, err)
				assert.Equal(t, []domain.ActivityEventType{domain.LoginFailureEvent}, activity.EventTypes())
			} else {
				require.NoError(t, err)
				assert.Equal(t, []domain.ActivityEventType{domain.LoginEvent}, activity.EventTypes())
			}
			assert.Equal(t, tt.expectedCalls, teacherRepo.Calls)
			if tt.validate != nil {
				tt.validate(t, id, holder)
			}
		})
	}
}

func TestAuthServiceImpl_LoginStudent(t *testing.T) {
	tests := []struct {
		name          string
		rollNo        string
		password      string
		students      []domain.Student
		expectedError error
	}{
		{
			name:     "successful login",
			rollNo:   "S005",
			password: "pw",
			students: []domain.Student{{ID: "5", Name: "Lin", RollNo: "S005", Password: "pw"}},
		},
		{
			name:          "unknown roll number",
			rollNo:        "S404",
			password:      "pw",
			expectedError: domain.ErrCredentialsInvalid,
		},
		{
			name:          "blank roll number",
			rollNo:        "",
			password:      "pw",
			expectedError: domain.ErrCredentialsInvalid,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			studentRepo := mocks.NewMockStudentRepository()
			studentRepo.FindByCredentialsFunc = func(ctx context.Context, rollNo, password string) ([]domain.Student, error) {
				return tt.students, nil
			}
			holder := mocks.NewMockSessionHolder()

			svc := NewAuthService(mocks.NewMockTeacherRepository(), studentRepo, holder, nil)
			id, err := svc.LoginStudent(createTestContext(t), tt.rollNo, tt.password)

			if tt.expectedError != nil {
				assert.True(t, errors.Is(err, tt.expectedError))
				assert.Nil(t, holder.CurrentIdentity)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, domain.RoleStudent, id.Role)
			assert.Equal(t, "S005", id.Profile.RollNo)
			assert.Empty(t, id.Profile.Email)
			assert.Equal(t, id, holder.CurrentIdentity)
		})
	}
}

func TestAuthServiceImpl_FailedLoginKeepsExistingIdentity(t *testing.T) {
	existing := createStudentIdentity(t)
	holder := mocks.NewSignedInSessionHolder(existing)

	svc := NewAuthService(mocks.NewMockTeacherRepository(), mocks.NewMockStudentRepository(), holder, nil)
	_, err := svc.LoginTeacher(createTestContext(t), "ada@school.edu", "wrong")

	assert.True(t, errors.Is(err, domain.ErrCredentialsInvalid))
	assert.Equal(t, existing, holder.CurrentIdentity)
}

func TestAuthServiceImpl_LogoutAndCurrent(t *testing.T) {
	ctx := createTestContext(t)
	holder := mocks.NewSignedInSessionHolder(createTeacherIdentity(t))
	session := createOTPSession(t, "3", "4821", "ClassroomWifi")
	holder.CurrentOTP = &session
	activity := mocks.NewMockActivityLogger()

	svc := NewAuthService(mocks.NewMockTeacherRepository(), mocks.NewMockStudentRepository(), holder, activity)

	id, err := svc.Current(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.RoleTeacher, id.Role)

	require.NoError(t, svc.Logout(ctx))
	assert.Nil(t, holder.CurrentIdentity)
	assert.Nil(t, holder.CurrentOTP)
	assert.Equal(t, []domain.ActivityEventType{domain.LogoutEvent}, activity.EventTypes())

	_, err = svc.Current(ctx)
	assert.True(t, errors.Is(err, domain.ErrNotSignedIn))

	// a second logout is harmless and not reported
	require.NoError(t, svc.Logout(ctx))
	assert.Len(t, activity.Events, 1)
}

func TestAuthServiceImpl_ActivityLoggerErrorIgnored(t *testing.T) {
	teacherRepo := mocks.NewMockTeacherRepository()
	teacherRepo.FindByCredentialsFunc = func(ctx context.Context, email, password string) ([]domain.Teacher, error) {
		return []domain.Teacher{{ID: "1", Name: "Ada", Email: email}}, nil
	}
	activity := mocks.NewMockActivityLogger()
	activity.LogEventFunc = func(ctx context.Context, event *domain.ActivityEvent) error {
		return errors.New("disk full")
	}

	svc := NewAuthService(teacherRepo, mocks.NewMockStudentRepository(), mocks.NewMockSessionHolder(), activity)
	_, err := svc.LoginTeacher(createTestContext(t), "ada@school.edu", "secret")
	assert.NoError(t, err)
}
