package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/ryhazerus/nsapi"
)

// EnvPrefix is prepended to every environment override, e.g.
// NSAPI_USER_AGENT or NSAPI_USAGE_DRIVER.
const EnvPrefix = "NSAPI"

// Load reads configuration in increasing precedence: defaults, the config
// file, environment variables, then overrides keyed by setting name
// ("usage.driver"). An empty path searches ./nsapi.yaml and the user config
// directory; a missing file is not an error unless path names it.
func Load(path string, overrides map[string]any) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("nsapi")
		v.AddConfigPath(".")
		if dir, err := os.UserConfigDir(); err == nil {
			v.AddConfigPath(filepath.Join(dir, "nsapi"))
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("config: read %s: %w", describe(path), err)
		}
	}

	for k, val := range overrides {
		v.Set(k, val)
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("config: decode: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("user_agent", "")
	v.SetDefault("base_url", nsapi.DefaultBaseURL)
	v.SetDefault("api_version", nsapi.DefaultAPIVersion)
	v.SetDefault("timeout", "30s")
	v.SetDefault("log.level", "warn")
	v.SetDefault("pacing.rate", 0)
	v.SetDefault("pacing.burst", 1)
	v.SetDefault("usage.window", "minute")
	v.SetDefault("usage.driver", DriverMemory)
	v.SetDefault("usage.dsn", "")
}

func describe(path string) string {
	if path == "" {
		return "config file"
	}
	return path
}
