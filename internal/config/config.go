// Package config loads server settings from defaults, an optional YAML file,
// command-line flags and CARRENTAL_* environment variables, in that order of
// increasing precedence.
package config

import (
	"bytes"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// Config holds all server settings.
type Config struct {
	Addr      string `yaml:"addr" env:"ADDR"`
	DBPath    string `yaml:"db" env:"DB"`
	AdminUser string `yaml:"admin_user" env:"ADMIN_USER"`
	LogPath   string `yaml:"log" env:"LOG"`
	LogLevel  string `yaml:"log_level" env:"LOG_LEVEL"`

	// StrictTransitions rejects reservation actions that are not valid from
	// the current status.
	StrictTransitions bool `yaml:"strict_transitions" env:"STRICT_TRANSITIONS"`
	// SyncCarStatus marks a car rented on confirm and available on complete.
	SyncCarStatus bool `yaml:"sync_car_status" env:"SYNC_CAR_STATUS"`
	// SecureCookies sets the Secure attribute on session cookies.
	SecureCookies bool `yaml:"secure_cookies" env:"SECURE_COOKIES"`
}

// EnvPrefix prefixes every environment variable.
const EnvPrefix = "CARRENTAL_"

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Addr:              ":8080",
		DBPath:            "carrental.sqlite3",
		AdminUser:         "Admin",
		LogLevel:          "info",
		StrictTransitions: true,
	}
}

const usage = `Usage: carrental [flags]

Flags:
  -c, -config <path>      YAML config file
  -d, -db <path>          SQLite database path (default: carrental.sqlite3)
  -a, -addr <host:port>   listen address (default: :8080)
  -u, -user <name>        admin username on first run (default: Admin)
  -l, -log <path>         log file path (default: no file, stdout/stderr only)
  -log-level <level>      debug, info, warn or error (default: info)
  -strict                 reject out-of-order reservation actions (default: true)
  -sync-car-status        flip car status on confirm and complete (default: false)
  -secure-cookies         mark session cookies Secure (default: false)
  -h, -help               show this help and exit

Every setting can also be set through the environment, e.g. CARRENTAL_ADDR.
`

// Load builds the configuration from args (without the program name).
// It returns flag.ErrHelp when help was requested.
func Load(args []string, out io.Writer) (Config, error) {
	cfg := Default()

	fs := flag.NewFlagSet("carrental", flag.ContinueOnError)
	fs.SetOutput(out)
	fs.Usage = func() { fmt.Fprint(out, usage) }

	var path string
	fs.StringVar(&path, "config", "", "")
	fs.StringVar(&path, "c", "", "")

	var fromFlags Config
	fs.StringVar(&fromFlags.DBPath, "db", "", "")
	fs.StringVar(&fromFlags.DBPath, "d", "", "")
	fs.StringVar(&fromFlags.Addr, "addr", "", "")
	fs.StringVar(&fromFlags.Addr, "a", "", "")
	fs.StringVar(&fromFlags.AdminUser, "user", "", "")
	fs.StringVar(&fromFlags.AdminUser, "u", "", "")
	fs.StringVar(&fromFlags.LogPath, "log", "", "")
	fs.StringVar(&fromFlags.LogPath, "l", "", "")
	fs.StringVar(&fromFlags.LogLevel, "log-level", "", "")
	fs.BoolVar(&fromFlags.StrictTransitions, "strict", true, "")
	fs.BoolVar(&fromFlags.SyncCarStatus, "sync-car-status", false, "")
	fs.BoolVar(&fromFlags.SecureCookies, "secure-cookies", false, "")

	if err := fs.Parse(args); err != nil {
		return cfg, err
	}
	if fs.NArg() > 0 {
		fs.Usage()
		return cfg, fmt.Errorf("unexpected argument: %s", fs.Arg(0))
	}

	if path != "" {
		if err := loadFile(path, &cfg); err != nil {
			return cfg, err
		}
	}

	// Only flags given on the command line override the file.
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "db", "d":
			cfg.DBPath = fromFlags.DBPath
		case "addr", "a":
			cfg.Addr = fromFlags.Addr
		case "user", "u":
			cfg.AdminUser = fromFlags.AdminUser
		case "log", "l":
			cfg.LogPath = fromFlags.LogPath
		case "log-level":
			cfg.LogLevel = fromFlags.LogLevel
		case "strict":
			cfg.StrictTransitions = fromFlags.StrictTransitions
		case "sync-car-status":
			cfg.SyncCarStatus = fromFlags.SyncCarStatus
		case "secure-cookies":
			cfg.SecureCookies = fromFlags.SecureCookies
		}
	})

	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return cfg, fmt.Errorf("parsing environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func loadFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading config file: %w", err)
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("parsing config file: %w", err)
	}
	return nil
}

// Validate checks settings that cannot be defaulted.
func (c Config) Validate() error {
	if c.Addr == "" {
		return errors.New("listen address must not be empty")
	}
	if c.DBPath == "" {
		return errors.New("database path must not be empty")
	}
	if c.AdminUser == "" {
		return errors.New("admin username must not be empty")
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	return nil
}

// Level returns the configured slog level.
func (c Config) Level() (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("invalid log level %q", c.LogLevel)
	}
	return l, nil
}
