package mocks

import (
	"context"

	"github.com/you/wifiattend/domain"
)

// MockSessionHolder implements domain.SessionHolder interface for testing.
// Without Func overrides it behaves like a plain in-memory holder.
type MockSessionHolder struct {
	IdentityFunc   func(ctx context.Context) (*domain.Identity, error)
	SignInFunc     func(ctx context.Context, identity *domain.Identity) error
	SignOutFunc    func(ctx context.Context) error
	HeldOTPFunc    func(ctx context.Context) (*domain.OTPSession, error)
	HoldOTPFunc    func(ctx context.Context, session *domain.OTPSession) error
	ReleaseOTPFunc func(ctx context.Context) error

	CurrentIdentity *domain.Identity
	CurrentOTP      *domain.OTPSession
}

// NewMockSessionHolder creates a signed-out MockSessionHolder
func NewMockSessionHolder() *MockSessionHolder {
	return &MockSessionHolder{}
}

// NewSignedInSessionHolder creates a MockSessionHolder signed in as identity
func NewSignedInSessionHolder(identity *domain.Identity) *MockSessionHolder {
	return &MockSessionHolder{CurrentIdentity: identity}
}

// Identity returns the signed-in identity
func (m *MockSessionHolder) Identity(ctx context.Context) (*domain.Identity, error) {
	if m.IdentityFunc != nil {
		return m.IdentityFunc(ctx)
	}
	return m.CurrentIdentity, nil
}

// SignIn adopts an identity
func (m *MockSessionHolder) SignIn(ctx context.Context, identity *domain.Identity) error {
	if m.SignInFunc != nil {
		return m.SignInFunc(ctx, identity)
	}
	m.CurrentIdentity = identity
	m.CurrentOTP = nil
	return nil
}

// SignOut clears the identity and held OTP session
func (m *MockSessionHolder) SignOut(ctx context.Context) error {
	if m.SignOutFunc != nil {
		return m.SignOutFunc(ctx)
	}
	m.CurrentIdentity = nil
	m.CurrentOTP = nil
	return nil
}

// HeldOTP returns the held OTP session
func (m *MockSessionHolder) HeldOTP(ctx context.Context) (*domain.OTPSession, error) {
	if m.HeldOTPFunc != nil {
		return m.HeldOTPFunc(ctx)
	}
	return m.CurrentOTP, nil
}

// HoldOTP keeps an OTP session
func (m *MockSessionHolder) HoldOTP(ctx context.Context, session *domain.OTPSession) error {
	if m.HoldOTPFunc != nil {
		return m.HoldOTPFunc(ctx, session)
	}
	m.CurrentOTP = session
	return nil
}

// ReleaseOTP forgets the held OTP session
func (m *MockSessionHolder) ReleaseOTP(ctx context.Context) error {
	if m.ReleaseOTPFunc != nil {
		return m.ReleaseOTPFunc(ctx)
	}
	m.CurrentOTP = nil
	return nil
}

// MockSessionStateStore implements domain.SessionStateStore interface for testing
type MockSessionStateStore struct {
	LoadFunc  func(ctx context.Context) (*domain.SessionState, error)
	SaveFunc  func(ctx context.Context, state *domain.SessionState) error
	ClearFunc func(ctx context.Context) error

	State domain.SessionState
}

// NewMockSessionStateStore creates an empty MockSessionStateStore
func NewMockSessionStateStore() *MockSessionStateStore {
	return &MockSessionStateStore{}
}

// Load returns the stored state
func (m *MockSessionStateStore) Load(ctx context.Context) (*domain.SessionState, error) {
	if m.LoadFunc != nil {
		return m.LoadFunc(ctx)
	}
	state := m.State
	return &state, nil
}

// Save replaces the stored state
func (m *MockSessionStateStore) Save(ctx context.Context, state *domain.SessionState) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, state)
	}
	m.State = *state
	return nil
}

// Clear empties the stored state
func (m *MockSessionStateStore) Clear(ctx context.Context) error {
	if m.ClearFunc != nil {
		return m.ClearFunc(ctx)
	}
	m.State = domain.SessionState{}
	return nil
}

// Compile-time interface compliance verification
var (
	_ domain.SessionHolder     = (*MockSessionHolder)(nil)
	_ domain.SessionStateStore = (*MockSessionStateStore)(nil)
)
