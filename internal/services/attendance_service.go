package services

import (
	"context"
	"time"

	"github.com/you/wifiattend/domain"
)

// DefaultHistoryLimit is how many attendance records History returns
const DefaultHistoryLimit = 50

// AttendanceServiceImpl implements domain.AttendanceService
type AttendanceServiceImpl struct {
	sessionRepo    domain.OTPSessionRepository
	attendanceRepo domain.AttendanceRepository
	holder         domain.SessionHolder
	ssid           domain.SSIDProvider
	activity       domain.ActivityLogger
	historyLimit   int
	now            func() time.Time
}

// NewAttendanceService creates a new attendance service
func NewAttendanceService(
	sessionRepo domain.OTPSessionRepository,
	attendanceRepo domain.AttendanceRepository,
	holder domain.SessionHolder,
	ssid domain.SSIDProvider,
	activity domain.ActivityLogger,
) domain.AttendanceService {
	return &AttendanceServiceImpl{
		sessionRepo:    sessionRepo,
		attendanceRepo: attendanceRepo,
		holder:         holder,
		ssid:           ssid,
		activity:       activity,
		historyLimit:   DefaultHistoryLimit,
		now:            time.Now,
	}
}

// Mark implements domain.AttendanceService.
//
// The active session is the last one the backend lists. The code is checked
// before the network name, and nothing is written unless both match. The
// read and the write are not atomic: a session ended in between still
// accepts the record.
func (s *AttendanceServiceImpl) Mark(ctx context.Context, code string) (*domain.AttendanceRecord, error) {
	id, err := requireRole(ctx, s.holder, domain.RoleStudent)
	if err != nil {
		return nil, err
	}

	sessions, err := s.sessionRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	if len(sessions) == 0 {
		return nil, s.rejected(ctx, id, domain.ErrNoActiveSession)
	}
	active := sessions[len(sessions)-1]

	if code != active.OTP {
		return nil, s.rejected(ctx, id, domain.ErrOTPMismatch)
	}

	current := domain.CurrentSSIDSafe(ctx, s.ssid)
	if current != active.SSID {
		return nil, s.rejected(ctx, id, &domain.NetworkMismatchError{Expected: active.SSID, Actual: current})
	}

	record := &domain.AttendanceRecord{
		StudentID: id.Profile.ID,
		SSID:      current,
		Date:      domain.NewTimestamp(s.now().UTC()),
		Status:    domain.StatusPresent,
	}
	if err := s.attendanceRepo.Create(ctx, record); err != nil {
		return nil, err
	}

	logActivity(ctx, s.activity, domain.NewActivityEvent(domain.AttendanceMarkedEvent).
		WithIdentity(id).
		WithMetadata("ssid", current).
		WithMetadata("record_id", record.ID.String()))
	return record, nil
}

// MarkFromQR implements domain.AttendanceService. Only the code is taken from
// the payload; the network name is still read from this device.
func (s *AttendanceServiceImpl) MarkFromQR(ctx context.Context, payload string) (*domain.AttendanceRecord, error) {
	if _, err := requireRole(ctx, s.holder, domain.RoleStudent); err != nil {
		return nil, err
	}
	p, err := domain.ParseQRPayload(payload)
	if err != nil {
		return nil, err
	}
	return s.Mark(ctx, p.OTP)
}

// History implements domain.AttendanceService, newest first
func (s *AttendanceServiceImpl) History(ctx context.Context) ([]domain.AttendanceRecord, error) {
	id, err := s.holder.Identity(ctx)
	if err != nil {
		return nil, err
	}
	if id == nil {
		return nil, domain.ErrNotSignedIn
	}
	return s.attendanceRepo.ListRecent(ctx, s.historyLimit)
}

func (s *AttendanceServiceImpl) rejected(ctx context.Context, id *domain.Identity, err error) error {
	logActivity(ctx, s.activity, domain.NewActivityEvent(domain.AttendanceRejectedEvent).
		WithIdentity(id).
		WithError(err))
	return err
}
