package config

import (
	"os"
	"strconv"
	"time"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Env         string        `yaml:"env" json:"env"`
	Port        int           `yaml:"port" json:"port"`
	LogJSON     bool          `yaml:"logJson" json:"logJson"`
	LogLevel    string        `yaml:"logLevel" json:"logLevel"`
	CodeSecret  string        `yaml:"codeSecret" json:"-"`
	CodeTTL     time.Duration `yaml:"codeTtl" json:"codeTtl"`
	FixedCode   string        `yaml:"fixedCode" json:"-"`
	ExposeCodes bool          `yaml:"exposeCodes" json:"exposeCodes"`
}

func Default() Config {
	return Config{
		Env:         "dev",
		Port:        5000,
		LogJSON:     true,
		LogLevel:    "info",
		CodeSecret:  "",
		CodeTTL:     15 * time.Minute,
		FixedCode:   "123456",
		ExposeCodes: false,
	}
}

func EnvDefaults() Config {
	return fromEnv(Default())
}

// Load reads a YAML file over the defaults, then applies LIFECYCLE_* variables on top.
// An empty path skips the file.
func Load(path string) (Config, error) {
	c := Default()
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return c, errors.Wrapf(err, "read config %s", path)
		}
		if err := yaml.Unmarshal(raw, &c); err != nil {
			return c, errors.Wrapf(err, "parse config %s", path)
		}
	}
	c = fromEnv(c)
	return c, c.Validate()
}

func (c Config) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return errors.Errorf("port %d out of range", c.Port)
	}
	if c.CodeTTL <= 0 {
		return errors.Errorf("code ttl must be positive, got %s", c.CodeTTL)
	}
	if c.CodeSecret == "" && c.FixedCode == "" {
		return errors.New("one of code secret or fixed code is required")
	}
	return nil
}

func fromEnv(c Config) Config {
	if v := os.Getenv("LIFECYCLE_ENV"); v != "" {
		c.Env = v
	}
	if v := os.Getenv("LIFECYCLE_PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			c.Port = p
		}
	}
	if v := os.Getenv("LIFECYCLE_LOG_JSON"); v != "" {
		if b, ok := parseBool(v); ok {
			c.LogJSON = b
		}
	}
	if v := os.Getenv("LIFECYCLE_LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
	if v := os.Getenv("LIFECYCLE_CODE_SECRET"); v != "" {
		c.CodeSecret = v
	}
	if v := os.Getenv("LIFECYCLE_CODE_TTL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			c.CodeTTL = d
		}
	}
	if v, ok := os.LookupEnv("LIFECYCLE_FIXED_CODE"); ok {
		c.FixedCode = v
	}
	if v := os.Getenv("LIFECYCLE_EXPOSE_CODES"); v != "" {
		if b, ok := parseBool(v); ok {
			c.ExposeCodes = b
		}
	}
	return c
}

func parseBool(v string) (bool, bool) {
	switch v {
	case "1", "true", "TRUE":
		return true, true
	case "0", "false", "FALSE":
		return false, true
	}
	return false, false
}
