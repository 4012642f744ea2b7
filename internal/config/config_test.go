package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Port != "8080" {
		t.Errorf("Port = %q, want 8080", cfg.Server.Port)
	}
	if cfg.Blog.PageSize != 10 {
		t.Errorf("PageSize = %d, want 10", cfg.Blog.PageSize)
	}
	if cfg.Session.Backend != "memory" {
		t.Errorf("Backend = %q, want memory", cfg.Session.Backend)
	}
	if cfg.Session.TTL != 30*24*time.Hour {
		t.Errorf("TTL = %v, want 720h", cfg.Session.TTL)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("BLOG_PAGE_SIZE", "5")
	t.Setenv("SESSION_BACKEND", "redis")
	t.Setenv("BLOG_ADMIN_EMAIL", "admin@example.com")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Blog.PageSize != 5 {
		t.Errorf("PageSize = %d, want 5", cfg.Blog.PageSize)
	}
	if cfg.Session.Backend != "redis" {
		t.Errorf("Backend = %q, want redis", cfg.Session.Backend)
	}
	if cfg.Blog.AdminEmail != "admin@example.com" {
		t.Errorf("AdminEmail = %q", cfg.Blog.AdminEmail)
	}
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Database: DatabaseConfig{Host: "localhost", Name: "blog"},
			Blog:     BlogConfig{PageSize: 10},
			Session:  SessionConfig{Backend: "memory"},
		}
	}

	if err := valid().Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"missing db host", func(c *Config) { c.Database.Host = "" }},
		{"missing db name", func(c *Config) { c.Database.Name = "" }},
		{"zero page size", func(c *Config) { c.Blog.PageSize = 0 }},
		{"unknown session backend", func(c *Config) { c.Session.Backend = "memcached" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("Validate() = nil, want error")
			}
		})
	}
}

func TestGetDSN(t *testing.T) {
	db := DatabaseConfig{Host: "h", Port: "5432", User: "u", Password: "p", Name: "n", SSLMode: "disable"}
	want := "host=h port=5432 user=u password=p dbname=n sslmode=disable"
	if got := db.GetDSN(); got != want {
		t.Errorf("GetDSN() = %q, want %q", got, want)
	}
}
