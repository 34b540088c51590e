package services

import (
	"context"
	"time"

	"github.com/you/wifiattend/domain"
)

// ScheduleServiceImpl implements domain.ScheduleService
type ScheduleServiceImpl struct {
	scheduleRepo domain.ScheduleRepository
	holder       domain.SessionHolder
	now          func() time.Time
}

// NewScheduleService creates a new schedule service
func NewScheduleService(scheduleRepo domain.ScheduleRepository, holder domain.SessionHolder) domain.ScheduleService {
	return &ScheduleServiceImpl{
		scheduleRepo: scheduleRepo,
		holder:       holder,
		now:          time.Now,
	}
}

// Today implements domain.ScheduleService. The day is the UTC calendar date.
func (s *ScheduleServiceImpl) Today(ctx context.Context) ([]domain.ScheduleEntry, error) {
	id, err := s.holder.Identity(ctx)
	if err != nil {
		return nil, err
	}
	if id == nil {
		return nil, domain.ErrNotSignedIn
	}
	return s.scheduleRepo.FindForDay(ctx, *id, s.now().UTC().Format("2006-01-02"))
}
