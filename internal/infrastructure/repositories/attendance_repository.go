package repositories

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/you/wifiattend/domain"
)

// AttendanceRepositoryImpl implements domain.AttendanceRepository over the record store
type AttendanceRepositoryImpl struct {
	client RecordClient
}

// NewAttendanceRepository creates a new attendance repository
func NewAttendanceRepository(client RecordClient) domain.AttendanceRepository {
	return &AttendanceRepositoryImpl{client: client}
}

// Create implements domain.AttendanceRepository
func (r *AttendanceRepositoryImpl) Create(ctx context.Context, record *domain.AttendanceRecord) error {
	var stored domain.AttendanceRecord
	if err := r.client.Create(ctx, AttendanceCollection, record, &stored); err != nil {
		return fmt.Errorf("failed to create attendance record: %w", err)
	}
	record.ID = stored.ID
	return nil
}

// ListRecent implements domain.AttendanceRepository, newest first
func (r *AttendanceRepositoryImpl) ListRecent(ctx context.Context, limit int) ([]domain.AttendanceRecord, error) {
	query := url.Values{}
	query.Set("_sort", "date")
	query.Set("_order", "desc")
	if limit > 0 {
		query.Set("_limit", strconv.Itoa(limit))
	}

	var records []domain.AttendanceRecord
	if err := r.client.List(ctx, AttendanceCollection, query, &records); err != nil {
		return nil, fmt.Errorf("failed to list attendance: %w", err)
	}
	return records, nil
}
