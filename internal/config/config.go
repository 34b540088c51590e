package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// DefaultPath is where the config file is looked up unless ATTEND_CONFIG says otherwise
const DefaultPath = "config/config.yml"

// DefaultBackendPort is the port of the record store on the dev host
const DefaultBackendPort = 5001

// Session store kinds
const (
	SessionStoreMemory = "memory"
	SessionStoreRedis  = "redis"
)

// PlatformAndroid selects the emulator loopback substitution
const PlatformAndroid = "android"

const androidHostLoopback = "10.0.2.2"

type APIConfig struct {
	BaseURL  string `yaml:"base_url"`
	DevHost  string `yaml:"dev_host"`
	Platform string `yaml:"platform"`
	Timeout  string `yaml:"timeout"`
}

type SessionConfig struct {
	Store   string `yaml:"store"`
	Profile string `yaml:"profile"`
	TTL     string `yaml:"ttl"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type CapabilitiesConfig struct {
	SSIDMode   string `yaml:"ssid_mode"`
	StaticSSID string `yaml:"static_ssid"`
	QRMode     string `yaml:"qr_mode"`
}

type RecordStoreConfig struct {
	Port    int    `yaml:"port"`
	DSN     string `yaml:"dsn"`
	Seed    bool   `yaml:"seed"`
	GinMode string `yaml:"gin_mode"`
}

type ConfigFile struct {
	API          APIConfig          `yaml:"api"`
	Session      SessionConfig      `yaml:"session"`
	Redis        RedisConfig        `yaml:"redis"`
	Capabilities CapabilitiesConfig `yaml:"capabilities"`
	RecordStore  RecordStoreConfig  `yaml:"recordstore"`
}

type Config struct {
	BaseURL        string
	DevHost        string
	Platform       string
	APITimeout     time.Duration
	SessionStore   string
	SessionProfile string
	SessionTTL     time.Duration
	RedisAddr      string
	RedisPassword  string
	RedisDB        int
	SSIDMode       string
	StaticSSID     string
	QRMode         string
	StorePort      string
	StoreDSN       string
	StoreSeed      bool
	GinMode        string
}

func defaults() *ConfigFile {
	return &ConfigFile{
		API: APIConfig{
			DevHost: "localhost",
			Timeout: "10s",
		},
		Session: SessionConfig{
			Store:   SessionStoreMemory,
			Profile: "default",
			TTL:     "12h",
		},
		Redis: RedisConfig{Addr: "localhost:6379"},
		Capabilities: CapabilitiesConfig{
			SSIDMode: "platform",
			QRMode:   "stdin",
		},
		RecordStore: RecordStoreConfig{
			Port:    DefaultBackendPort,
			DSN:     "attendance.db",
			Seed:    true,
			GinMode: "release",
		},
	}
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

// Load reads the config file at path (DefaultPath when empty), then applies
// .env and environment overrides.
func Load(path string) (*Config, error) {
	if path == "" {
		path = env("ATTEND_CONFIG", DefaultPath)
	}

	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(".env"); err != nil {
			return nil, fmt.Errorf("could not load .env: %w", err)
		}
	}

	configFile, err := loadConfigFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load config file: %w", err)
	}

	apiTimeout, err := time.ParseDuration(env("API_TIMEOUT", configFile.API.Timeout))
	if err != nil {
		return nil, fmt.Errorf("invalid API timeout: %w", err)
	}

	sessionTTL, err := time.ParseDuration(configFile.Session.TTL)
	if err != nil {
		return nil, fmt.Errorf("invalid session TTL: %w", err)
	}

	redisDB := configFile.Redis.DB
	if v := os.Getenv("REDIS_DB"); v != "" {
		if redisDB, err = strconv.Atoi(v); err != nil {
			return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
		}
	}

	port := configFile.RecordStore.Port
	if v := os.Getenv("RECORDSTORE_PORT"); v != "" {
		if port, err = strconv.Atoi(v); err != nil {
			return nil, fmt.Errorf("invalid RECORDSTORE_PORT: %w", err)
		}
	}

	seed := configFile.RecordStore.Seed
	if v := os.Getenv("RECORDSTORE_SEED"); v != "" {
		if seed, err = strconv.ParseBool(v); err != nil {
			return nil, fmt.Errorf("invalid RECORDSTORE_SEED: %w", err)
		}
	}

	store := env("SESSION_STORE", configFile.Session.Store)
	if store != SessionStoreMemory && store != SessionStoreRedis {
		return nil, fmt.Errorf("unknown session store %q", store)
	}

	return &Config{
		BaseURL:        env("API_URL", configFile.API.BaseURL),
		DevHost:        env("DEV_HOST", configFile.API.DevHost),
		Platform:       env("PLATFORM", configFile.API.Platform),
		APITimeout:     apiTimeout,
		SessionStore:   store,
		SessionProfile: configFile.Session.Profile,
		SessionTTL:     sessionTTL,
		RedisAddr:      env("REDIS_ADDR", configFile.Redis.Addr),
		RedisPassword:  env("REDIS_PASSWORD", configFile.Redis.Password),
		RedisDB:        redisDB,
		SSIDMode:       env("SSID_MODE", configFile.Capabilities.SSIDMode),
		StaticSSID:     env("STATIC_SSID", configFile.Capabilities.StaticSSID),
		QRMode:         env("QR_MODE", configFile.Capabilities.QRMode),
		StorePort:      strconv.Itoa(port),
		StoreDSN:       env("RECORDSTORE_DSN", configFile.RecordStore.DSN),
		StoreSeed:      seed,
		GinMode:        configFile.RecordStore.GinMode,
	}, nil
}

// ResolvedBaseURL returns the record store address for this configuration
func (c *Config) ResolvedBaseURL() string {
	return ResolveBaseURL(c.BaseURL, c.DevHost, c.Platform)
}

// ResolveBaseURL picks the record store address. A non-blank override wins.
// Otherwise the host part of devHost is used on DefaultBackendPort, with
// loopback hosts swapped for the emulator's host alias on android.
func ResolveBaseURL(override, devHost, platform string) string {
	if o := strings.TrimSpace(override); o != "" {
		return o
	}
	host, _, _ := strings.Cut(strings.TrimSpace(devHost), ":")
	if host == "" {
		host = "localhost"
	}
	if strings.EqualFold(platform, PlatformAndroid) && (host == "localhost" || host == "127.0.0.1") {
		host = androidHostLoopback
	}
	return "http://" + net.JoinHostPort(host, strconv.Itoa(DefaultBackendPort))
}

func loadConfigFile(path string) (*ConfigFile, error) {
	config := defaults()

	bytes, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return config, nil
	}
	if err != nil {
		return nil, fmt.Errorf("could not read config file at %s: %w", path, err)
	}

	if err := yaml.Unmarshal(bytes, config); err != nil {
		return nil, fmt.Errorf("could not parse config yaml: %w", err)
	}

	return config, nil
}
