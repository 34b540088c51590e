package domain

import (
	"context"
	"errors"
	"testing"
)

type ssidFunc func(ctx context.Context) (string, error)

func (f ssidFunc) CurrentSSID(ctx context.Context) (string, error) { return f(ctx) }

func TestCurrentSSIDSafe(t *testing.T) {
	tests := []struct {
		name     string
		provider SSIDProvider
		expected string
	}{
		{
			name:     "network name",
			provider: ssidFunc(func(ctx context.Context) (string, error) { return "ClassroomWifi", nil }),
			expected: "ClassroomWifi",
		},
		{
			name:     "surrounding whitespace trimmed",
			provider: ssidFunc(func(ctx context.Context) (string, error) { return " Lab Net \n", nil }),
			expected: "Lab Net",
		},
		{
			name:     "provider error",
			provider: ssidFunc(func(ctx context.Context) (string, error) { return "", ErrCapabilityUnavailable }),
			expected: UnknownSSID,
		},
		{
			name:     "error with a value",
			provider: ssidFunc(func(ctx context.Context) (string, error) { return "stale", errors.New("permission denied") }),
			expected: UnknownSSID,
		},
		{
			name:     "blank name",
			provider: ssidFunc(func(ctx context.Context) (string, error) { return "   ", nil }),
			expected: UnknownSSID,
		},
		{
			name:     "no provider",
			provider: nil,
			expected: UnknownSSID,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CurrentSSIDSafe(context.Background(), tt.provider); got != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, got)
			}
		})
	}
}
