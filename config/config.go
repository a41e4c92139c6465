package config

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

//go:embed config.yml
var embeddedConfig []byte

type Config struct {
	Mode   string `mapstructure:"mode"`
	Server struct {
		HTTPPort  string        `mapstructure:"HTTPPort"`
		Timeout   time.Duration `mapstructure:"HTTPTimeout"`
		PublicURL string        `mapstructure:"publicURL"`
	} `mapstructure:"server"`
	Data struct {
		Path string `mapstructure:"path"`
	} `mapstructure:"data"`
	Auth struct {
		TokenFile string `mapstructure:"tokenFile"`
		Token     string `mapstructure:"token"`
		TokenHash string `mapstructure:"tokenHash"`
	} `mapstructure:"auth"`
	Area struct {
		ResultTTL       time.Duration `mapstructure:"resultTTL"`
		CleanupInterval time.Duration `mapstructure:"cleanupInterval"`
		MaxPending      int64         `mapstructure:"maxPending"`
	} `mapstructure:"area"`
	Handlers struct {
		Prometheus struct {
			Port string `mapstructure:"port"`
		} `mapstructure:"prometheus"`
	} `mapstructure:"handlers"`
	Tracing struct {
		Stdout bool `mapstructure:"stdout"`
	} `mapstructure:"tracing"`
}

func InitConfig() (Config, error) {
	return initConfig(".", "config", "/app/config")
}

func initConfig(paths ...string) (Config, error) {
	var config Config
	v := viper.New()

	for _, p := range paths {
		v.AddConfigPath(p)
	}
	v.SetConfigName("config")
	v.SetConfigType("yml")

	// CITIES_AUTH_TOKEN overrides auth.token, and so on.
	v.SetEnvPrefix("CITIES")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Try to load file-based config
	err := v.ReadInConfig()
	if err != nil {
		fmt.Printf("Warning: Failed to find file-based config: %s. Falling back to embedded config.\n", err)
		if err = v.ReadConfig(bytes.NewReader(embeddedConfig)); err != nil {
			return Config{}, fmt.Errorf("failed to read embedded config: %s", err)
		}
	}

	// keys the struct does not declare are rejected
	if err = v.UnmarshalExact(&config); err != nil {
		return Config{}, fmt.Errorf("failed to unmarshal config: %s", err)
	}
	if err = config.validate(); err != nil {
		return Config{}, err
	}
	fmt.Println("Successfully loaded app configs...")
	return config, nil
}

func (c *Config) validate() error {
	if c.Data.Path == "" {
		return errors.New("data.path must be set")
	}
	if c.Server.Timeout <= 0 {
		return fmt.Errorf("server.HTTPTimeout must be positive, got %s", c.Server.Timeout)
	}
	if c.Area.MaxPending <= 0 {
		return fmt.Errorf("area.maxPending must be positive, got %d", c.Area.MaxPending)
	}
	if c.Area.ResultTTL <= 0 {
		return fmt.Errorf("area.resultTTL must be positive, got %s", c.Area.ResultTTL)
	}
	return nil
}

// IsDevelopment reports whether the colored development logger should be used.
func (c *Config) IsDevelopment() bool {
	return c.Mode == "" || c.Mode == "development"
}

// ResolveToken returns the pre-shared API token. auth.token wins over the
// token file; surrounding whitespace in the file is ignored. It is an error
// for neither a token nor auth.tokenHash to be available.
func (c *Config) ResolveToken() (string, error) {
	if c.Auth.Token != "" {
		return c.Auth.Token, nil
	}
	if c.Auth.TokenFile != "" {
		raw, err := os.ReadFile(c.Auth.TokenFile)
		if err == nil {
			if token := strings.TrimSpace(string(raw)); token != "" {
				return token, nil
			}
		} else if c.Auth.TokenHash == "" {
			return "", fmt.Errorf("failed to read token file %s: %w", c.Auth.TokenFile, err)
		}
	}
	if c.Auth.TokenHash != "" {
		return "", nil
	}
	return "", errors.New("no API token configured: set auth.token, auth.tokenFile or auth.tokenHash")
}
