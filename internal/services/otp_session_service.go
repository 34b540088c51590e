package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/you/wifiattend/domain"
)

// OTPSessionServiceImpl implements domain.OTPSessionService
type OTPSessionServiceImpl struct {
	sessionRepo domain.OTPSessionRepository
	holder      domain.SessionHolder
	ssid        domain.SSIDProvider
	codes       domain.CodeGenerator
	activity    domain.ActivityLogger
	now         func() time.Time
}

// NewOTPSessionService creates a new OTP session service
func NewOTPSessionService(
	sessionRepo domain.OTPSessionRepository,
	holder domain.SessionHolder,
	ssid domain.SSIDProvider,
	codes domain.CodeGenerator,
	activity domain.ActivityLogger,
) domain.OTPSessionService {
	return &OTPSessionServiceImpl{
		sessionRepo: sessionRepo,
		holder:      holder,
		ssid:        ssid,
		codes:       codes,
		activity:    activity,
		now:         time.Now,
	}
}

// Generate implements domain.OTPSessionService. A session already held is
// replaced locally; its backend record is left alone.
func (s *OTPSessionServiceImpl) Generate(ctx context.Context) (*domain.OTPSession, error) {
	id, err := requireRole(ctx, s.holder, domain.RoleTeacher)
	if err != nil {
		return nil, err
	}

	code, err := s.codes.Generate()
	if err != nil {
		return nil, err
	}
	if !domain.IsValidOTPCode(code) {
		return nil, fmt.Errorf("generated code %q is not four digits", code)
	}

	session := &domain.OTPSession{
		TeacherID: id.Profile.ID,
		OTP:       code,
		SSID:      domain.CurrentSSIDSafe(ctx, s.ssid),
		CreatedAt: domain.NewTimestamp(s.now().UTC()),
	}
	if err := s.sessionRepo.Create(ctx, session); err != nil {
		return nil, err
	}
	if err := s.holder.HoldOTP(ctx, session); err != nil {
		return nil, err
	}

	logActivity(ctx, s.activity, domain.NewActivityEvent(domain.OTPSessionStartedEvent).
		WithIdentity(id).
		WithMetadata("session_id", session.ID.String()).
		WithMetadata("ssid", session.SSID))
	return session, nil
}

// End implements domain.OTPSessionService. Nothing held is a no-op; a record
// already gone from the backend still clears the held session.
func (s *OTPSessionServiceImpl) End(ctx context.Context) error {
	id, err := requireRole(ctx, s.holder, domain.RoleTeacher)
	if err != nil {
		return err
	}

	held, err := s.holder.HeldOTP(ctx)
	if err != nil {
		return err
	}
	if held == nil {
		return nil
	}

	if err := s.sessionRepo.Delete(ctx, held.ID); err != nil && !errors.Is(err, domain.ErrRecordNotFound) {
		return err
	}
	if err := s.holder.ReleaseOTP(ctx); err != nil {
		return err
	}

	logActivity(ctx, s.activity, domain.NewActivityEvent(domain.OTPSessionEndedEvent).
		WithIdentity(id).
		WithMetadata("session_id", held.ID.String()))
	return nil
}

// Active implements domain.OTPSessionService. Nothing held is (nil, nil).
func (s *OTPSessionServiceImpl) Active(ctx context.Context) (*domain.OTPSession, error) {
	if _, err := requireRole(ctx, s.holder, domain.RoleTeacher); err != nil {
		return nil, err
	}
	return s.holder.HeldOTP(ctx)
}

// QRPayload implements domain.OTPSessionService
func (s *OTPSessionServiceImpl) QRPayload(ctx context.Context) (string, error) {
	held, err := s.Active(ctx)
	if err != nil {
		return "", err
	}
	if held == nil {
		return "", domain.ErrNoActiveSession
	}
	text, err := domain.NewQRPayload(held).Encode()
	if err != nil {
		return "", fmt.Errorf("qr payload: %w", err)
	}
	return text, nil
}
