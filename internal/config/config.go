package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"dario.cat/mergo"
	"github.com/joho/godotenv"
	"github.com/titanous/json5"
	"golang.org/x/text/encoding"

	"github.com/iprlic/vern-raspored/internal/portal"
	"github.com/iprlic/vern-raspored/internal/schedule"
	"github.com/iprlic/vern-raspored/internal/session"
	"github.com/iprlic/vern-raspored/internal/webforms"
)

// Environment variables read by the CLI.
const (
	EnvConfig   = "VERN_CONFIG"
	EnvUsername = "VERN_USERNAME"
	EnvPassword = "VERN_PASSWORD"
)

// DefaultPath is the config file used when VERN_CONFIG is unset.
const DefaultPath = "raspored.json5"

// Config holds every setting that is not a command-line flag.
type Config struct {
	BaseURL        string   `json:"base_url"`
	Proxy          string   `json:"proxy"`
	Timezone       string   `json:"timezone"`
	Charset        string   `json:"charset"`
	UserAgents     []string `json:"user_agents"`
	TimeoutSeconds float64  `json:"timeout_seconds"`
	OutputDir      string   `json:"output_dir"`
	SkipLoginCheck bool     `json:"skip_login_check"`
	DryRun         bool     `json:"dry_run"`
	LogLevel       string   `json:"log_level"`
	ErrorLog       string   `json:"error_log"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		BaseURL:        portal.DefaultBaseURL,
		Timezone:       schedule.DefaultTimezone,
		Charset:        webforms.DefaultCharset,
		UserAgents:     append([]string(nil), session.DefaultUserAgents...),
		TimeoutSeconds: session.DefaultTimeout.Seconds(),
		OutputDir:      ".",
		LogLevel:       "info",
		ErrorLog:       "errors.log",
	}
}

// Path returns the config file named by VERN_CONFIG, or DefaultPath.
func Path() string {
	if p := strings.TrimSpace(os.Getenv(EnvConfig)); p != "" {
		return p
	}
	return DefaultPath
}

// LoadEnv loads .env from the working directory. A missing file is not an error.
func LoadEnv() error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("loading .env: %w", err)
	}
	return nil
}

// Load returns the defaults overlaid with the file at path and its .local
// sibling. Missing files are skipped.
func Load(path string) (Config, error) {
	cfg := Default()

	for _, name := range []string{path, localPath(path)} {
		override, found, err := readFile(name)
		if err != nil {
			return Config{}, err
		}
		if !found {
			continue
		}
		if err := mergo.Merge(&cfg, override, mergo.WithOverride); err != nil {
			return Config{}, fmt.Errorf("merging %s: %w", name, err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// localPath turns "dir/raspored.json5" into "dir/raspored.local.json5".
func localPath(path string) string {
	ext := filepath.Ext(path)
	return strings.TrimSuffix(path, ext) + ".local" + ext
}

func readFile(name string) (Config, bool, error) {
	var cfg Config

	data, err := os.ReadFile(name)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, false, nil
	}
	if err != nil {
		return cfg, false, fmt.Errorf("reading config: %w", err)
	}
	if len(data) == 0 {
		return cfg, false, nil
	}

	if err := json5.Unmarshal(data, &cfg); err != nil {
		return cfg, false, fmt.Errorf("parsing config %s: %w", name, err)
	}
	return cfg, true, nil
}

// Validate checks the settings that can be wrong without the file failing to parse.
func (c Config) Validate() error {
	if _, err := c.Location(); err != nil {
		return err
	}
	if _, err := c.Encoding(); err != nil {
		return err
	}
	if c.TimeoutSeconds < 0 {
		return fmt.Errorf("timeout_seconds must not be negative, got %v", c.TimeoutSeconds)
	}
	return nil
}

// Location loads the configured timezone.
func (c Config) Location() (*time.Location, error) {
	return schedule.LoadLocation(c.Timezone)
}

// Encoding resolves the configured page charset.
func (c Config) Encoding() (encoding.Encoding, error) {
	return webforms.LookupCharset(c.Charset)
}

// Timeout returns the per-request timeout.
func (c Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds * float64(time.Second))
}

// UserAgentProvider returns the configured User-Agent pool.
func (c Config) UserAgentProvider() session.UserAgentProvider {
	if len(c.UserAgents) == 0 {
		return session.DefaultUserAgents
	}
	return session.RandomUserAgents(c.UserAgents)
}

// Rewriter returns the proxy rewriter, or nil when no proxy is configured.
func (c Config) Rewriter() session.URLRewriter {
	if c.Proxy == "" {
		return nil
	}
	return session.ProxyRewriter(c.Proxy)
}
