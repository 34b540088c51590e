package capabilities

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/you/wifiattend/domain"
)

// QR scanner modes
const (
	QRModeReader      = "stdin"
	QRModeUnavailable = "none"
)

// ReaderScanner takes scanned payloads one line at a time from a reader.
// Keyboard-wedge scanners and pasted text both arrive this way.
type ReaderScanner struct {
	mu sync.Mutex
	r  *bufio.Reader
}

// NewReaderScanner creates a scanner reading from r
func NewReaderScanner(r io.Reader) *ReaderScanner {
	return &ReaderScanner{r: bufio.NewReader(r)}
}

// Scan implements domain.QRScanner. Blank lines are skipped.
func (s *ReaderScanner) Scan(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		line, err := s.r.ReadString('\n')
		if text := strings.TrimSpace(line); text != "" {
			return text, nil
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				return "", fmt.Errorf("%w: scanner input closed", domain.ErrCapabilityUnavailable)
			}
			return "", fmt.Errorf("%w: %v", domain.ErrCapabilityUnavailable, err)
		}
	}
}

// UnavailableScanner is used where no camera or scanner exists
type UnavailableScanner struct{}

// Scan implements domain.QRScanner
func (UnavailableScanner) Scan(ctx context.Context) (string, error) {
	return "", domain.ErrCapabilityUnavailable
}

// NewQRScanner selects a scanner by mode
func NewQRScanner(mode string, in io.Reader) (domain.QRScanner, error) {
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case "", QRModeUnavailable, "unavailable":
		return UnavailableScanner{}, nil
	case QRModeReader:
		if in == nil {
			return UnavailableScanner{}, nil
		}
		return NewReaderScanner(in), nil
	}
	return nil, fmt.Errorf("unknown qr mode %q", mode)
}
