package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/you/wifiattend/domain"
)

// SessionHolderImpl implements domain.SessionHolder on top of a state store.
// It starts signed out unless the store already holds a sign-in.
type SessionHolderImpl struct {
	mu    sync.Mutex
	store domain.SessionStateStore
}

// NewSessionHolder creates a new session holder
func NewSessionHolder(store domain.SessionStateStore) domain.SessionHolder {
	return &SessionHolderImpl{store: store}
}

// Identity implements domain.SessionHolder. Signed out is (nil, nil).
func (h *SessionHolderImpl) Identity(ctx context.Context) (*domain.Identity, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	state, err := h.store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read session: %w", err)
	}
	return state.Identity, nil
}

// SignIn implements domain.SessionHolder. Any OTP session held for a
// previous identity is dropped.
func (h *SessionHolderImpl) SignIn(ctx context.Context, identity *domain.Identity) error {
	if identity == nil {
		return domain.ErrNotSignedIn
	}
	h.mu.Lock()
	defer h.mu.Unlock()

	if err := h.store.Save(ctx, &domain.SessionState{Identity: identity}); err != nil {
		return fmt.Errorf("failed to store sign-in: %w", err)
	}
	return nil
}

// SignOut implements domain.SessionHolder
func (h *SessionHolderImpl) SignOut(ctx context.Context) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if err := h.store.Clear(ctx); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	return nil
}

// HeldOTP implements domain.SessionHolder
func (h *SessionHolderImpl) HeldOTP(ctx context.Context) (*domain.OTPSession, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	state, err := h.store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read session: %w", err)
	}
	return state.ActiveOTP, nil
}

// HoldOTP implements domain.SessionHolder
func (h *SessionHolderImpl) HoldOTP(ctx context.Context, session *domain.OTPSession) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	state, err := h.store.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to read session: %w", err)
	}
	if state.Identity == nil {
		return domain.ErrNotSignedIn
	}
	state.ActiveOTP = session
	if err := h.store.Save(ctx, state); err != nil {
		return fmt.Errorf("failed to store otp session: %w", err)
	}
	return nil
}

// ReleaseOTP implements domain.SessionHolder
func (h *SessionHolderImpl) ReleaseOTP(ctx context.Context) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	state, err := h.store.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to read session: %w", err)
	}
	if state.ActiveOTP == nil {
		return nil
	}
	state.ActiveOTP = nil
	if err := h.store.Save(ctx, state); err != nil {
		return fmt.Errorf("failed to store session: %w", err)
	}
	return nil
}
