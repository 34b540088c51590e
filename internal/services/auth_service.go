package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/you/wifiattend/domain"
)

// AuthServiceImpl implements domain.AuthService
type AuthServiceImpl struct {
	teacherRepo domain.TeacherRepository
	studentRepo domain.StudentRepository
	holder      domain.SessionHolder
	activity    domain.ActivityLogger
}

// NewAuthService creates a new auth service
func NewAuthService(
	teacherRepo domain.TeacherRepository,
	studentRepo domain.StudentRepository,
	holder domain.SessionHolder,
	activity domain.ActivityLogger,
) domain.AuthService {
	return &AuthServiceImpl{
		teacherRepo: teacherRepo,
		studentRepo: studentRepo,
		holder:      holder,
		activity:    activity,
	}
}

// LoginTeacher implements domain.AuthService
func (s *AuthServiceImpl) LoginTeacher(ctx context.Context, email, password string) (*domain.Identity, error) {
	if strings.TrimSpace(email) == "" || password == "" {
		s.loginFailed(ctx, domain.RoleTeacher, domain.ErrCredentialsInvalid)
		return nil, domain.ErrCredentialsInvalid
	}

	teachers, err := s.teacherRepo.FindByCredentials(ctx, email, password)
	if err != nil {
		s.loginFailed(ctx, domain.RoleTeacher, err)
		return nil, fmt.Errorf("teacher login: %w", err)
	}
	if len(teachers) == 0 {
		s.loginFailed(ctx, domain.RoleTeacher, domain.ErrCredentialsInvalid)
		return nil, domain.ErrCredentialsInvalid
	}

	return s.signIn(ctx, domain.TeacherIdentity(teachers[0]))
}

// LoginStudent implements domain.AuthService
func (s *AuthServiceImpl) LoginStudent(ctx context.Context, rollNo, password string) (*domain.Identity, error) {
	if strings.TrimSpace(rollNo) == "" || password == "" {
		s.loginFailed(ctx, domain.RoleStudent, domain.ErrCredentialsInvalid)
		return nil, domain.ErrCredentialsInvalid
	}

	students, err := s.studentRepo.FindByCredentials(ctx, rollNo, password)
	if err != nil {
		s.loginFailed(ctx, domain.RoleStudent, err)
		return nil, fmt.Errorf("student login: %w", err)
	}
	if len(students) == 0 {
		s.loginFailed(ctx, domain.RoleStudent, domain.ErrCredentialsInvalid)
		return nil, domain.ErrCredentialsInvalid
	}

	return s.signIn(ctx, domain.StudentIdentity(students[0]))
}

// Logout implements domain.AuthService. Signing out twice is not an error.
func (s *AuthServiceImpl) Logout(ctx context.Context) error {
	id, _ := s.holder.Identity(ctx)
	if err := s.holder.SignOut(ctx); err != nil {
		return err
	}
	if id != nil {
		logActivity(ctx, s.activity, domain.NewActivityEvent(domain.LogoutEvent).WithIdentity(id))
	}
	return nil
}

// Current implements domain.AuthService
func (s *AuthServiceImpl) Current(ctx context.Context) (*domain.Identity, error) {
	id, err := s.holder.Identity(ctx)
	if err != nil {
		return nil, err
	}
	if id == nil {
		return nil, domain.ErrNotSignedIn
	}
	return id, nil
}

func (s *AuthServiceImpl) signIn(ctx context.Context, id *domain.Identity) (*domain.Identity, error) {
	if err := s.holder.SignIn(ctx, id); err != nil {
		return nil, err
	}
	logActivity(ctx, s.activity, domain.NewActivityEvent(domain.LoginEvent).WithIdentity(id))
	return id, nil
}

func (s *AuthServiceImpl) loginFailed(ctx context.Context, role domain.Role, err error) {
	event := domain.NewActivityEvent(domain.LoginFailureEvent).WithError(err)
	event.Role = role
	logActivity(ctx, s.activity, event)
}
