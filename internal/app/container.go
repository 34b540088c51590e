package app

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/redis/go-redis/v9"

	"github.com/you/wifiattend/domain"
	"github.com/you/wifiattend/internal/config"
	"github.com/you/wifiattend/internal/infrastructure/auth"
	"github.com/you/wifiattend/internal/infrastructure/backend"
	"github.com/you/wifiattend/internal/infrastructure/capabilities"
	"github.com/you/wifiattend/internal/infrastructure/database"
	"github.com/you/wifiattend/internal/infrastructure/logging"
	"github.com/you/wifiattend/internal/infrastructure/qr"
	"github.com/you/wifiattend/internal/infrastructure/repositories"
	"github.com/you/wifiattend/internal/services"
)

// Options are the process-level inputs that do not come from config
type Options struct {
	// In feeds the stdin QR scanner. The shell passes the same reader it
	// reads commands from.
	In io.Reader
	// LogOutput receives activity and request logs, stderr when nil
	LogOutput io.Writer
	Verbose   bool
}

// Container holds all dependencies
type Container struct {
	// Config
	Config *config.Config

	// Infrastructure
	Client      *backend.Client
	RedisClient *redis.Client
	Renderer    *qr.Renderer

	// Capabilities
	SSID    domain.SSIDProvider
	Scanner domain.QRScanner
	Codes   domain.CodeGenerator

	// Repositories
	TeacherRepo    domain.TeacherRepository
	StudentRepo    domain.StudentRepository
	ScheduleRepo   domain.ScheduleRepository
	OTPSessionRepo domain.OTPSessionRepository
	AttendanceRepo domain.AttendanceRepository
	SessionStore   domain.SessionStateStore

	// Services
	Activity      domain.ActivityLogger
	Holder        domain.SessionHolder
	AuthSvc       domain.AuthService
	OTPSvc        domain.OTPSessionService
	AttendanceSvc domain.AttendanceService
	ScheduleSvc   domain.ScheduleService
	PolicySvc     domain.PolicyService
}

// NewContainer creates and initializes all dependencies
func NewContainer(ctx context.Context, cfg *config.Config, opts Options) (*Container, error) {
	if opts.LogOutput == nil {
		opts.LogOutput = os.Stderr
	}
	container := &Container{Config: cfg, Renderer: qr.NewRenderer()}

	container.initClient(opts)

	if err := container.initCapabilities(opts); err != nil {
		return nil, err
	}

	if err := container.initSessionStore(ctx); err != nil {
		return nil, err
	}

	container.initRepositories()

	if err := container.initServices(opts); err != nil {
		container.Close()
		return nil, err
	}

	return container, nil
}

func (c *Container) initClient(opts Options) {
	var clientOpts []backend.Option
	if opts.Verbose {
		clientOpts = append(clientOpts, backend.WithLogger(log.New(opts.LogOutput, "http: ", log.LstdFlags)))
	}
	c.Client = backend.NewClient(c.Config.ResolvedBaseURL(), c.Config.APITimeout, clientOpts...)
}

func (c *Container) initCapabilities(opts Options) error {
	ssid, err := capabilities.NewSSIDProvider(c.Config.SSIDMode, c.Config.StaticSSID)
	if err != nil {
		return err
	}
	scanner, err := capabilities.NewQRScanner(c.Config.QRMode, opts.In)
	if err != nil {
		return err
	}
	c.SSID = ssid
	c.Scanner = scanner
	c.Codes = services.NewCodeGenerator()
	return nil
}

func (c *Container) initSessionStore(ctx context.Context) error {
	if c.Config.SessionStore != config.SessionStoreRedis {
		c.SessionStore = repositories.NewMemorySessionStore()
		return nil
	}

	c.RedisClient = database.NewRedis(c.Config.RedisAddr, c.Config.RedisPassword, c.Config.RedisDB)
	if err := database.Ping(ctx, c.RedisClient, c.Config.APITimeout); err != nil {
		c.Close()
		return fmt.Errorf("session store: %w", err)
	}
	c.SessionStore = repositories.NewRedisSessionStore(c.RedisClient, c.Config.SessionProfile, c.Config.SessionTTL)
	return nil
}

func (c *Container) initRepositories() {
	c.TeacherRepo = repositories.NewTeacherRepository(c.Client)
	c.StudentRepo = repositories.NewStudentRepository(c.Client)
	c.ScheduleRepo = repositories.NewScheduleRepository(c.Client)
	c.OTPSessionRepo = repositories.NewOTPSessionRepository(c.Client)
	c.AttendanceRepo = repositories.NewAttendanceRepository(c.Client)
}

func (c *Container) initServices(opts Options) error {
	c.Activity = logging.NewActivityLogger(opts.LogOutput)
	c.Holder = services.NewSessionHolder(c.SessionStore)

	cas, err := auth.NewCasbinService()
	if err != nil {
		return fmt.Errorf("policy: %w", err)
	}
	c.PolicySvc = services.NewPolicyService(cas.E)

	c.AuthSvc = services.NewAuthService(c.TeacherRepo, c.StudentRepo, c.Holder, c.Activity)
	c.OTPSvc = services.NewOTPSessionService(c.OTPSessionRepo, c.Holder, c.SSID, c.Codes, c.Activity)
	c.AttendanceSvc = services.NewAttendanceService(c.OTPSessionRepo, c.AttendanceRepo, c.Holder, c.SSID, c.Activity)
	c.ScheduleSvc = services.NewScheduleService(c.ScheduleRepo, c.Holder)

	return nil
}

// Close closes all connections
func (c *Container) Close() error {
	if c.RedisClient != nil {
		err := c.RedisClient.Close()
		c.RedisClient = nil
		return err
	}
	return nil
}
