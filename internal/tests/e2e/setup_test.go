package e2e

import (
	"bytes"
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/you/wifiattend/domain"
	"github.com/you/wifiattend/internal/app"
	"github.com/you/wifiattend/internal/config"
	"github.com/you/wifiattend/internal/infrastructure/capabilities"
	"github.com/you/wifiattend/internal/mocks"
	"github.com/you/wifiattend/internal/services"
)

// TestSuite is one development record store plus the devices talking to it
type TestSuite struct {
	Server *httptest.Server
	DB     *gorm.DB
	Logs   *bytes.Buffer
}

// SetupTestSuite starts a seeded in-memory record store
func SetupTestSuite(t *testing.T) *TestSuite {
	t.Helper()

	cfg := &config.Config{
		StoreDSN:  ":memory:",
		StoreSeed: true,
		GinMode:   gin.TestMode,
	}
	router, db, err := app.NewRecordStore(context.Background(), cfg)
	require.NoError(t, err)

	srv := httptest.NewServer(router)
	t.Cleanup(func() {
		srv.Close()
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	return &TestSuite{Server: srv, DB: db, Logs: &bytes.Buffer{}}
}

// NewDevice builds a client container that sees ssid as its current network
func (s *TestSuite) NewDevice(t *testing.T, ssid string) *app.Container {
	t.Helper()

	cfg := &config.Config{
		BaseURL:        s.Server.URL,
		APITimeout:     5 * time.Second,
		SessionStore:   config.SessionStoreMemory,
		SessionProfile: "default",
		SessionTTL:     time.Hour,
		SSIDMode:       capabilities.SSIDModeUnavailable,
		QRMode:         capabilities.QRModeUnavailable,
	}
	if ssid != "" {
		cfg.SSIDMode = capabilities.SSIDModeStatic
		cfg.StaticSSID = ssid
	}

	c, err := app.NewContainer(context.Background(), cfg, app.Options{LogOutput: s.Logs})
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })
	return c
}

// WithFixedCode makes the device's OTP service hand out code every time
func WithFixedCode(c *app.Container, code string) *app.Container {
	c.Codes = mocks.NewMockCodeGenerator(code)
	c.OTPSvc = services.NewOTPSessionService(c.OTPSessionRepo, c.Holder, c.SSID, c.Codes, c.Activity)
	return c
}

func today() string {
	return time.Now().UTC().Format("2006-01-02")
}

func listSessions(t *testing.T, c *app.Container) []domain.OTPSession {
	t.Helper()
	sessions, err := c.OTPSessionRepo.List(context.Background())
	require.NoError(t, err)
	return sessions
}
