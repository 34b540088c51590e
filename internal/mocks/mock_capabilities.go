package mocks

import (
	"context"

	"github.com/you/wifiattend/domain"
)

// MockSSIDProvider implements domain.SSIDProvider interface for testing
type MockSSIDProvider struct {
	CurrentSSIDFunc func(ctx context.Context) (string, error)
	SSID            string
}

// NewMockSSIDProvider creates a MockSSIDProvider reporting ssid
func NewMockSSIDProvider(ssid string) *MockSSIDProvider {
	return &MockSSIDProvider{SSID: ssid}
}

// CurrentSSID returns the configured network name
func (m *MockSSIDProvider) CurrentSSID(ctx context.Context) (string, error) {
	if m.CurrentSSIDFunc != nil {
		return m.CurrentSSIDFunc(ctx)
	}
	return m.SSID, nil
}

// MockQRScanner implements domain.QRScanner interface for testing
type MockQRScanner struct {
	ScanFunc func(ctx context.Context) (string, error)
}

// NewMockQRScanner creates a new MockQRScanner
func NewMockQRScanner() *MockQRScanner {
	return &MockQRScanner{}
}

// Scan returns one scanned payload
func (m *MockQRScanner) Scan(ctx context.Context) (string, error) {
	if m.ScanFunc != nil {
		return m.ScanFunc(ctx)
	}
	// Default behavior: no camera
	return "", domain.ErrCapabilityUnavailable
}

// MockCodeGenerator implements domain.CodeGenerator interface for testing
type MockCodeGenerator struct {
	GenerateFunc func() (string, error)
	Code         string
}

// NewMockCodeGenerator creates a MockCodeGenerator always returning code
func NewMockCodeGenerator(code string) *MockCodeGenerator {
	return &MockCodeGenerator{Code: code}
}

// Generate returns the configured code
func (m *MockCodeGenerator) Generate() (string, error) {
	if m.GenerateFunc != nil {
		return m.GenerateFunc()
	}
	return m.Code, nil
}

// MockActivityLogger implements domain.ActivityLogger interface for testing
type MockActivityLogger struct {
	LogEventFunc func(ctx context.Context, event *domain.ActivityEvent) error
	Events       []*domain.ActivityEvent
}

// NewMockActivityLogger creates a recording MockActivityLogger
func NewMockActivityLogger() *MockActivityLogger {
	return &MockActivityLogger{}
}

// LogEvent records the event
func (m *MockActivityLogger) LogEvent(ctx context.Context, event *domain.ActivityEvent) error {
	m.Events = append(m.Events, event)
	if m.LogEventFunc != nil {
		return m.LogEventFunc(ctx, event)
	}
	return nil
}

// EventTypes lists the recorded event types in order
func (m *MockActivityLogger) EventTypes() []domain.ActivityEventType {
	types := make([]domain.ActivityEventType, 0, len(m.Events))
	for _, e := range m.Events {
		types = append(types, e.EventType)
	}
	return types
}

// Compile-time interface compliance verification
var (
	_ domain.SSIDProvider   = (*MockSSIDProvider)(nil)
	_ domain.QRScanner      = (*MockQRScanner)(nil)
	_ domain.CodeGenerator  = (*MockCodeGenerator)(nil)
	_ domain.ActivityLogger = (*MockActivityLogger)(nil)
)
