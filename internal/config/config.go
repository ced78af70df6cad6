// Package config loads the stratum configuration file. Every field has a default,
// so an absent file is equivalent to an empty one.
package config

import (
	"fmt"
	"log/slog"
	"net"
	"sort"
	"strings"
	"time"

	"github.com/solardome/stratum/internal/schema"
)

type Config struct {
	Server ServerConfig `json:"server"`
	Data   DataConfig   `json:"data"`
	Log    LogConfig    `json:"log"`
	Render RenderConfig `json:"render"`
}

type ServerConfig struct {
	Listen                 string `json:"listen"`
	ReadTimeoutSeconds     int    `json:"read_timeout_seconds"`
	WriteTimeoutSeconds    int    `json:"write_timeout_seconds"`
	ShutdownTimeoutSeconds int    `json:"shutdown_timeout_seconds"`
}

type DataConfig struct {
	Path  string `json:"path"`
	Watch bool   `json:"watch"`
}

type LogConfig struct {
	Level  string `json:"level"`
	Format string `json:"format"`
}

type RenderConfig struct {
	OutDir string `json:"out_dir"`
}

func Default() Config {
	return Config{
		Server: ServerConfig{
			Listen:                 ":8080",
			ReadTimeoutSeconds:     10,
			WriteTimeoutSeconds:    15,
			ShutdownTimeoutSeconds: 5,
		},
		Log:    LogConfig{Level: "info", Format: "text"},
		Render: RenderConfig{OutDir: "site"},
	}
}

// Load decodes path over the defaults. Fields absent from the file keep their default.
func Load(path string) (Config, error) {
	cfg := Default()
	if strings.TrimSpace(path) == "" {
		return cfg, nil
	}
	if _, err := schema.DecodeFile(path, schema.KindConfig, &cfg); err != nil {
		return Config{}, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

func (c Config) Validate() error {
	var errs []string
	if _, _, err := net.SplitHostPort(c.Server.Listen); err != nil {
		errs = append(errs, fmt.Sprintf("server.listen %q: %v", c.Server.Listen, err))
	}
	if c.Server.ReadTimeoutSeconds <= 0 {
		errs = append(errs, "server.read_timeout_seconds must be > 0")
	}
	if c.Server.WriteTimeoutSeconds <= 0 {
		errs = append(errs, "server.write_timeout_seconds must be > 0")
	}
	if c.Server.ShutdownTimeoutSeconds <= 0 {
		errs = append(errs, "server.shutdown_timeout_seconds must be > 0")
	}
	if c.Data.Watch && strings.TrimSpace(c.Data.Path) == "" {
		errs = append(errs, "data.watch requires data.path")
	}
	if _, err := ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, err.Error())
	}
	switch strings.ToLower(c.Log.Format) {
	case "text", "json":
	default:
		errs = append(errs, fmt.Sprintf("log.format %q must be text or json", c.Log.Format))
	}
	if strings.TrimSpace(c.Render.OutDir) == "" {
		errs = append(errs, "render.out_dir required")
	}
	if len(errs) == 0 {
		return nil
	}
	sort.Strings(errs)
	return fmt.Errorf("invalid config: %s", strings.Join(errs, "; "))
}

func (s ServerConfig) ReadTimeout() time.Duration {
	return time.Duration(s.ReadTimeoutSeconds) * time.Second
}

func (s ServerConfig) WriteTimeout() time.Duration {
	return time.Duration(s.WriteTimeoutSeconds) * time.Second
}

func (s ServerConfig) ShutdownTimeout() time.Duration {
	return time.Duration(s.ShutdownTimeoutSeconds) * time.Second
}

func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("log.level %q must be debug, info, warn or error", s)
	}
}
