// Package config loads rescuedogs settings from defaults, an optional config
// file and RESCUEDOGS_* environment variables, in increasing precedence.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment override, e.g. RESCUEDOGS_API_URL.
const EnvPrefix = "RESCUEDOGS"

type Config struct {
	APIURL         string        // api.url (default "http://localhost:8000/api")
	APIToken       string        // api.token (optional)
	RequestTimeout time.Duration // api.timeout (default 10s; 0 = none)

	PageSize int           // listing.page_size (default 20)
	Debounce time.Duration // listing.debounce (default 300ms)

	NATSURL string // nats.url (optional, empty = no events)

	ViewsFile string // views.file (default $HOME/.rescuedogs/views.toml)

	// Export settings
	ExportS3Bucket   string // export.s3_bucket (enables S3 when set)
	ExportS3Endpoint string // export.s3_endpoint (custom endpoint for MinIO)
	ExportS3Region   string // export.s3_region (default "us-east-1")
	ExportS3Key      string // export.s3_key (default "rescuedogs/listing.jsonl")

	LogLevel  string // log.level (default "info")
	LogFormat string // log.format: "console" or "json" (default "console")
}

func defaults(v *viper.Viper) {
	v.SetDefault("api.url", "http://localhost:8000/api")
	v.SetDefault("api.token", "")
	v.SetDefault("api.timeout", "10s")
	v.SetDefault("listing.page_size", 20)
	v.SetDefault("listing.debounce", "300ms")
	v.SetDefault("nats.url", "")
	v.SetDefault("views.file", defaultViewsFile())
	v.SetDefault("export.s3_bucket", "")
	v.SetDefault("export.s3_endpoint", "")
	v.SetDefault("export.s3_region", "us-east-1")
	v.SetDefault("export.s3_key", "rescuedogs/listing.jsonl")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
}

func defaultViewsFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "views.toml"
	}
	return filepath.Join(home, ".rescuedogs", "views.toml")
}

// Load reads the configuration. If file is empty, config.{yaml,toml} is
// searched for in ".", "$HOME/.rescuedogs" and "/etc/rescuedogs"; a missing
// file is not an error. An explicitly named file must exist.
func Load(file string) (*Config, error) {
	v := viper.New()
	defaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName("config")
		for _, path := range []string{".", "$HOME/.rescuedogs", "/etc/rescuedogs"} {
			v.AddConfigPath(os.ExpandEnv(path))
		}
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if file != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	c := &Config{
		APIURL:           strings.TrimSpace(v.GetString("api.url")),
		APIToken:         v.GetString("api.token"),
		PageSize:         v.GetInt("listing.page_size"),
		NATSURL:          v.GetString("nats.url"),
		ViewsFile:        v.GetString("views.file"),
		ExportS3Bucket:   v.GetString("export.s3_bucket"),
		ExportS3Endpoint: v.GetString("export.s3_endpoint"),
		ExportS3Region:   v.GetString("export.s3_region"),
		ExportS3Key:      v.GetString("export.s3_key"),
		LogLevel:         strings.ToLower(v.GetString("log.level")),
		LogFormat:        strings.ToLower(v.GetString("log.format")),
	}

	var err error
	if c.RequestTimeout, err = duration(v, "api.timeout"); err != nil {
		return nil, err
	}
	if c.Debounce, err = duration(v, "listing.debounce"); err != nil {
		return nil, err
	}
	if err := c.validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// duration parses key strictly; viper's GetDuration silently yields zero on
// malformed input.
func duration(v *viper.Viper, key string) (time.Duration, error) {
	raw := v.GetString(key)
	if raw == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("%s: must not be negative", key)
	}
	return d, nil
}

func (c *Config) validate() error {
	u, err := url.Parse(c.APIURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("api.url: %q is not an http(s) URL", c.APIURL)
	}
	if c.PageSize < 1 || c.PageSize > 100 {
		return fmt.Errorf("listing.page_size: must be between 1 and 100, got %d", c.PageSize)
	}
	if c.LogFormat != "console" && c.LogFormat != "json" {
		return fmt.Errorf("log.format: must be console or json, got %q", c.LogFormat)
	}
	if _, err := parseLevel(c.LogLevel); err != nil {
		return err
	}
	return nil
}
