package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestEnvDefaults_Overlay(t *testing.T) {
	t.Setenv("LIFECYCLE_PORT", "8088")
	t.Setenv("LIFECYCLE_LOG_JSON", "false")
	t.Setenv("LIFECYCLE_CODE_TTL", "90s")
	t.Setenv("LIFECYCLE_EXPOSE_CODES", "1")
	t.Setenv("LIFECYCLE_LOG_LEVEL", "")

	c := EnvDefaults()
	if c.Port != 8088 || c.LogJSON || c.CodeTTL != 90*time.Second || !c.ExposeCodes {
		t.Fatalf("unexpected config: %+v", c)
	}
	if c.LogLevel != "info" {
		t.Fatalf("empty env var overrode log level: %q", c.LogLevel)
	}
}

func TestEnvDefaults_IgnoresGarbage(t *testing.T) {
	t.Setenv("LIFECYCLE_PORT", "eighty")
	t.Setenv("LIFECYCLE_LOG_JSON", "maybe")
	c := EnvDefaults()
	if c.Port != Default().Port || !c.LogJSON {
		t.Fatalf("garbage env applied: %+v", c)
	}
}

func TestLoad_FileThenEnv(t *testing.T) {
	p := filepath.Join(t.TempDir(), "lifecycle.yaml")
	body := "env: prod\nport: 9000\ncodeSecret: s3cret\ncodeTtl: 10m\nfixedCode: \"\"\n"
	if err := os.WriteFile(p, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("LIFECYCLE_PORT", "9100")

	c, err := Load(p)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if c.Env != "prod" || c.Port != 9100 || c.CodeSecret != "s3cret" || c.CodeTTL != 10*time.Minute || c.FixedCode != "" {
		t.Fatalf("unexpected config: %+v", c)
	}
}

func TestLoad_Errors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("missing file accepted")
	}
	p := filepath.Join(t.TempDir(), "bad.yaml")
	_ = os.WriteFile(p, []byte("port: [1, 2"), 0o644)
	if _, err := Load(p); err == nil {
		t.Fatal("malformed yaml accepted")
	}
}

func TestValidate(t *testing.T) {
	c := Default()
	if err := c.Validate(); err != nil {
		t.Fatalf("default invalid: %v", err)
	}
	bad := []func(*Config){
		func(c *Config) { c.Port = 0 },
		func(c *Config) { c.Port = 70000 },
		func(c *Config) { c.CodeTTL = 0 },
		func(c *Config) { c.CodeSecret, c.FixedCode = "", "" },
	}
	for i, mut := range bad {
		c := Default()
		mut(&c)
		if err := c.Validate(); err == nil {
			t.Fatalf("case %d accepted: %+v", i, c)
		}
	}
}
