package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	defaultAddr            = ":5000"
	defaultReadTimeout     = 15 * time.Second
	defaultWriteTimeout    = 15 * time.Second
	defaultShutdownTimeout = 10 * time.Second
	defaultLogLevel        = "info"
	defaultLogFormat       = "json"
	defaultLogMaxSizeMB    = 10
	defaultLogMaxFiles     = 5
	defaultDBMaxConns      = 10
	defaultDBMinConns      = 2
	defaultPushInterval    = 5 * time.Second
	defaultUserID          = 1
)

var ErrInvalidConfig = errors.New("invalid config")

type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Logging   LoggingConfig   `yaml:"logging"`
	Database  DatabaseConfig  `yaml:"database"`
	Firebase  FirebaseConfig  `yaml:"firebase"`
	Websocket WebsocketConfig `yaml:"websocket"`
	Billing   BillingConfig   `yaml:"billing"`
}

type ServerConfig struct {
	Addr            string        `yaml:"addr"`
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

type LoggingConfig struct {
	Level     string `yaml:"level"`
	Format    string `yaml:"format"`
	File      string `yaml:"file"`
	MaxSizeMB int    `yaml:"max_size_mb"`
	MaxFiles  int    `yaml:"max_files"`
}

// DatabaseConfig selects the store. An empty URL keeps everything in memory.
type DatabaseConfig struct {
	URL        string `yaml:"url"`
	MaxConns   int32  `yaml:"max_conns"`
	MinConns   int32  `yaml:"min_conns"`
	RequireSSL bool   `yaml:"require_ssl"`
}

// FirebaseConfig holds service-account credentials. With neither set,
// token verification and push notifications are disabled.
type FirebaseConfig struct {
	CredentialsPath string `yaml:"credentials_path"`
	CredentialsJSON string `yaml:"credentials_json"`
}

type WebsocketConfig struct {
	PushInterval time.Duration `yaml:"push_interval"`
}

type BillingConfig struct {
	DefaultUserID int64 `yaml:"default_user_id"`
}

type LoadOptions struct {
	ConfigPath string
	// Env replaces the process environment when non-nil.
	Env        map[string]string
	Flags      FlagOverrides
}

type FlagOverrides struct {
	Addr     *string
	LogLevel *string
}

func DefaultConfig() Config {
	return Config{
		Server: ServerConfig{
			Addr:            defaultAddr,
			ReadTimeout:     defaultReadTimeout,
			WriteTimeout:    defaultWriteTimeout,
			ShutdownTimeout: defaultShutdownTimeout,
		},
		Logging: LoggingConfig{
			Level:     defaultLogLevel,
			Format:    defaultLogFormat,
			MaxSizeMB: defaultLogMaxSizeMB,
			MaxFiles:  defaultLogMaxFiles,
		},
		Database: DatabaseConfig{
			MaxConns: defaultDBMaxConns,
			MinConns: defaultDBMinConns,
		},
		Websocket: WebsocketConfig{
			PushInterval: defaultPushInterval,
		},
		Billing: BillingConfig{
			DefaultUserID: defaultUserID,
		},
	}
}

// Load builds the configuration from defaults, the YAML file, the
// environment and flags, in that order of precedence.
func Load(opts LoadOptions) (Config, error) {
	cfg := DefaultConfig()

	if err := loadAndApplyFile(resolveConfigPath(opts), &cfg); err != nil {
		return Config{}, err
	}
	if err := applyEnvOverrides(&cfg, opts); err != nil {
		return Config{}, err
	}
	applyFlagOverrides(&cfg, opts.Flags)

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

type rawConfig struct {
	Server    *rawServer    `yaml:"server"`
	Logging   *rawLogging   `yaml:"logging"`
	Database  *rawDatabase  `yaml:"database"`
	Firebase  *rawFirebase  `yaml:"firebase"`
	Websocket *rawWebsocket `yaml:"websocket"`
	Billing   *rawBilling   `yaml:"billing"`
}

type rawServer struct {
	Addr            *string `yaml:"addr"`
	ReadTimeout     *string `yaml:"read_timeout"`
	WriteTimeout    *string `yaml:"write_timeout"`
	ShutdownTimeout *string `yaml:"shutdown_timeout"`
}

type rawLogging struct {
	Level     *string `yaml:"level"`
	Format    *string `yaml:"format"`
	File      *string `yaml:"file"`
	MaxSizeMB *int    `yaml:"max_size_mb"`
	MaxFiles  *int    `yaml:"max_files"`
}

type rawDatabase struct {
	URL        *string `yaml:"url"`
	MaxConns   *int32  `yaml:"max_conns"`
	MinConns   *int32  `yaml:"min_conns"`
	RequireSSL *bool   `yaml:"require_ssl"`
}

type rawFirebase struct {
	CredentialsPath *string `yaml:"credentials_path"`
	CredentialsJSON *string `yaml:"credentials_json"`
}

type rawWebsocket struct {
	PushInterval *string `yaml:"push_interval"`
}

type rawBilling struct {
	DefaultUserID *int64 `yaml:"default_user_id"`
}

func loadAndApplyFile(path string, cfg *Config) error {
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("read config file %q: %w", path, err)
	}

	var raw rawConfig
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("%w: parse YAML file %q: %v", ErrInvalidConfig, path, err)
	}
	return applyRawConfig(cfg, raw)
}

func applyRawConfig(cfg *Config, raw rawConfig) error {
	if raw.Server != nil {
		setValue(raw.Server.Addr, &cfg.Server.Addr)
		if err := setDuration("server.read_timeout", raw.Server.ReadTimeout, &cfg.Server.ReadTimeout); err != nil {
			return err
		}
		if err := setDuration("server.write_timeout", raw.Server.WriteTimeout, &cfg.Server.WriteTimeout); err != nil {
			return err
		}
		if err := setDuration("server.shutdown_timeout", raw.Server.ShutdownTimeout, &cfg.Server.ShutdownTimeout); err != nil {
			return err
		}
	}

	if raw.Logging != nil {
		setValue(raw.Logging.Level, &cfg.Logging.Level)
		setValue(raw.Logging.Format, &cfg.Logging.Format)
		setValue(raw.Logging.File, &cfg.Logging.File)
		setValue(raw.Logging.MaxSizeMB, &cfg.Logging.MaxSizeMB)
		setValue(raw.Logging.MaxFiles, &cfg.Logging.MaxFiles)
	}

	if raw.Database != nil {
		setValue(raw.Database.URL, &cfg.Database.URL)
		setValue(raw.Database.MaxConns, &cfg.Database.MaxConns)
		setValue(raw.Database.MinConns, &cfg.Database.MinConns)
		setValue(raw.Database.RequireSSL, &cfg.Database.RequireSSL)
	}

	if raw.Firebase != nil {
		setValue(raw.Firebase.CredentialsPath, &cfg.Firebase.CredentialsPath)
		setValue(raw.Firebase.CredentialsJSON, &cfg.Firebase.CredentialsJSON)
	}

	if raw.Websocket != nil {
		if err := setDuration("websocket.push_interval", raw.Websocket.PushInterval, &cfg.Websocket.PushInterval); err != nil {
			return err
		}
	}

	if raw.Billing != nil {
		setValue(raw.Billing.DefaultUserID, &cfg.Billing.DefaultUserID)
	}

	return nil
}

func applyEnvOverrides(cfg *Config, opts LoadOptions) error {
	if value, ok := lookupEnv(opts, "JOURNAL_ADDR"); ok {
		cfg.Server.Addr = value
	} else if value, ok := lookupEnv(opts, "PORT"); ok {
		cfg.Server.Addr = ":" + value
	}

	if value, ok := lookupEnv(opts, "JOURNAL_LOG_LEVEL"); ok {
		cfg.Logging.Level = value
	}
	if value, ok := lookupEnv(opts, "JOURNAL_LOG_FORMAT"); ok {
		cfg.Logging.Format = value
	}
	if value, ok := lookupEnv(opts, "JOURNAL_LOG_FILE"); ok {
		cfg.Logging.File = value
	}

	if value, ok := lookupEnv(opts, "JOURNAL_DATABASE_URL"); ok {
		cfg.Database.URL = value
	} else if value, ok := lookupEnv(opts, "DATABASE_URL"); ok {
		cfg.Database.URL = value
	}
	if value, ok := lookupEnv(opts, "DB_MAX_CONNS"); ok {
		n, err := strconv.ParseInt(value, 10, 32)
		if err != nil {
			return fmt.Errorf("%w: parse DB_MAX_CONNS: %v", ErrInvalidConfig, err)
		}
		cfg.Database.MaxConns = int32(n)
	}
	if value, ok := lookupEnv(opts, "DB_MIN_CONNS"); ok {
		n, err := strconv.ParseInt(value, 10, 32)
		if err != nil {
			return fmt.Errorf("%w: parse DB_MIN_CONNS: %v", ErrInvalidConfig, err)
		}
		cfg.Database.MinConns = int32(n)
	}

	if value, ok := lookupEnv(opts, "JOURNAL_FIREBASE_CREDENTIALS_PATH"); ok {
		cfg.Firebase.CredentialsPath = value
	} else if value, ok := lookupEnv(opts, "FIREBASE_CREDENTIALS_PATH"); ok {
		cfg.Firebase.CredentialsPath = value
	}
	if value, ok := lookupEnv(opts, "FIREBASE_CREDENTIALS_JSON"); ok {
		cfg.Firebase.CredentialsJSON = value
	}

	if value, ok := lookupEnv(opts, "JOURNAL_WS_PUSH_INTERVAL"); ok {
		d, err := time.ParseDuration(value)
		if err != nil {
			return fmt.Errorf("%w: parse JOURNAL_WS_PUSH_INTERVAL: %v", ErrInvalidConfig, err)
		}
		cfg.Websocket.PushInterval = d
	}

	if value, ok := lookupEnv(opts, "JOURNAL_DEFAULT_USER_ID"); ok {
		n, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return fmt.Errorf("%w: parse JOURNAL_DEFAULT_USER_ID: %v", ErrInvalidConfig, err)
		}
		cfg.Billing.DefaultUserID = n
	}

	return nil
}

func applyFlagOverrides(cfg *Config, flags FlagOverrides) {
	setValue(flags.Addr, &cfg.Server.Addr)
	setValue(flags.LogLevel, &cfg.Logging.Level)
}

// Validate reports the first setting that cannot be used.
func (c Config) Validate() error {
	if strings.TrimSpace(c.Server.Addr) == "" {
		return fmt.Errorf("%w: server.addr must not be empty", ErrInvalidConfig)
	}
	if c.Server.ShutdownTimeout <= 0 {
		return fmt.Errorf("%w: server.shutdown_timeout must be > 0", ErrInvalidConfig)
	}
	switch strings.ToLower(c.Logging.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: logging.level must be one of debug, info, warn, error", ErrInvalidConfig)
	}
	switch strings.ToLower(c.Logging.Format) {
	case "json", "text":
	default:
		return fmt.Errorf("%w: logging.format must be json or text", ErrInvalidConfig)
	}
	if c.Websocket.PushInterval <= 0 {
		return fmt.Errorf("%w: websocket.push_interval must be > 0", ErrInvalidConfig)
	}
	if c.Billing.DefaultUserID < 1 {
		return fmt.Errorf("%w: billing.default_user_id must be >= 1", ErrInvalidConfig)
	}
	return nil
}

func setDuration(field string, raw *string, target *time.Duration) error {
	if raw == nil {
		return nil
	}
	d, err := time.ParseDuration(*raw)
	if err != nil {
		return fmt.Errorf("%w: parse %s: %v", ErrInvalidConfig, field, err)
	}
	*target = d
	return nil
}

func setValue[T any](raw *T, target *T) {
	if raw != nil {
		*target = *raw
	}
}

func resolveConfigPath(opts LoadOptions) string {
	if opts.ConfigPath != "" {
		return opts.ConfigPath
	}
	if value, ok := lookupEnv(opts, "JOURNAL_CONFIG"); ok {
		return value
	}
	return "journal.yaml"
}

func lookupEnv(opts LoadOptions, key string) (string, bool) {
	if opts.Env != nil {
		if value, ok := opts.Env[key]; ok {
			return value, true
		}
		return "", false
	}
	return os.LookupEnv(key)
}
