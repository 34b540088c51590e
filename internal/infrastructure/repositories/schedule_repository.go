package repositories

import (
	"context"
	"fmt"
	"net/url"

	"github.com/you/wifiattend/domain"
)

// ScheduleRepositoryImpl implements domain.ScheduleRepository over the record store
type ScheduleRepositoryImpl struct {
	client RecordClient
}

// NewScheduleRepository creates a new schedule repository
func NewScheduleRepository(client RecordClient) domain.ScheduleRepository {
	return &ScheduleRepositoryImpl{client: client}
}

// FindForDay implements domain.ScheduleRepository. Teachers are matched on
// teacherId, students on studentId.
func (r *ScheduleRepositoryImpl) FindForDay(ctx context.Context, owner domain.Identity, date string) ([]domain.ScheduleEntry, error) {
	query := url.Values{}
	switch owner.Role {
	case domain.RoleTeacher:
		query.Set("teacherId", owner.Profile.ID.String())
	case domain.RoleStudent:
		query.Set("studentId", owner.Profile.ID.String())
	default:
		return nil, domain.ErrWrongRole
	}
	query.Set("date", date)

	var entries []domain.ScheduleEntry
	if err := r.client.List(ctx, SchedulesCollection, query, &entries); err != nil {
		return nil, fmt.Errorf("failed to query schedules: %w", err)
	}
	return entries, nil
}
