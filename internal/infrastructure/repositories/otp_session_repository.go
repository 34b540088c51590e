package repositories

import (
	"context"
	"fmt"

	"github.com/you/wifiattend/domain"
)

// OTPSessionRepositoryImpl implements domain.OTPSessionRepository over the record store
type OTPSessionRepositoryImpl struct {
	client RecordClient
}

// NewOTPSessionRepository creates a new OTP session repository
func NewOTPSessionRepository(client RecordClient) domain.OTPSessionRepository {
	return &OTPSessionRepositoryImpl{client: client}
}

// Create implements domain.OTPSessionRepository. The stored record, including
// the id assigned by the store, is written back into session.
func (r *OTPSessionRepositoryImpl) Create(ctx context.Context, session *domain.OTPSession) error {
	var stored domain.OTPSession
	if err := r.client.Create(ctx, OTPSessionsCollection, session, &stored); err != nil {
		return fmt.Errorf("failed to create otp session: %w", err)
	}
	if stored.ID.IsZero() {
		return fmt.Errorf("failed to create otp session: %w: no id in response", domain.ErrBackend)
	}
	session.ID = stored.ID
	if !stored.CreatedAt.IsZero() {
		session.CreatedAt = stored.CreatedAt
	}
	return nil
}

// List implements domain.OTPSessionRepository. Order is the store's order.
func (r *OTPSessionRepositoryImpl) List(ctx context.Context) ([]domain.OTPSession, error) {
	var sessions []domain.OTPSession
	if err := r.client.List(ctx, OTPSessionsCollection, nil, &sessions); err != nil {
		return nil, fmt.Errorf("failed to list otp sessions: %w", err)
	}
	return sessions, nil
}

// Delete implements domain.OTPSessionRepository
func (r *OTPSessionRepositoryImpl) Delete(ctx context.Context, id domain.RecordID) error {
	if err := r.client.Delete(ctx, OTPSessionsCollection, id); err != nil {
		return fmt.Errorf("failed to delete otp session %s: %w", id, err)
	}
	return nil
}
