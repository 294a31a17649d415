package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("writing config: %v", err)
	}
	return path
}

func TestLoadParsesTOML(t *testing.T) {
	path := writeConfig(t, `
login_url = "https://login.example.com/services/oauth2/token"
version = "v20.0"
client_id = "app-id"
client_secret = "app-secret"
username = "user@example.com"
password = "hunter2"
`)

	c, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if c.LoginURL != "https://login.example.com/services/oauth2/token" {
		t.Errorf("LoginURL = %q", c.LoginURL)
	}
	if c.Version != "v20.0" || c.ClientID != "app-id" || c.ClientSecret != "app-secret" {
		t.Errorf("parsed config = %+v", c)
	}
	if c.Username != "user@example.com" || c.Password != "hunter2" {
		t.Errorf("parsed config = %+v", c)
	}
}

func TestLoadAllowsMissingSecrets(t *testing.T) {
	path := writeConfig(t, `
login_url = "https://login.example.com"
version = "v20.0"
client_id = "app-id"
username = "user@example.com"
`)

	c, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if err := c.Validate(); err != nil {
		t.Errorf("Validate() error = %v, secrets may be omitted", err)
	}
	if c.ClientSecret != "" || c.Password != "" {
		t.Errorf("secrets = %q/%q, want empty", c.ClientSecret, c.Password)
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Load() error = %v, want ErrNotFound", err)
	}
}

func TestLoadRejectsMalformedFile(t *testing.T) {
	path := writeConfig(t, `login_url = [broken`)
	if _, err := Load(path); err == nil {
		t.Error("Load() error = nil, want parse failure")
	}
}

func TestValidate(t *testing.T) {
	valid := Config{
		LoginURL: "https://login.example.com",
		Version:  "v20.0",
		ClientID: "app-id",
		Username: "user@example.com",
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{
			name:   "complete",
			mutate: func(c *Config) {},
		},
		{
			name:    "missing login url",
			mutate:  func(c *Config) { c.LoginURL = "" },
			wantErr: true,
		},
		{
			name:    "missing version",
			mutate:  func(c *Config) { c.Version = "" },
			wantErr: true,
		},
		{
			name:    "missing client id",
			mutate:  func(c *Config) { c.ClientID = "" },
			wantErr: true,
		},
		{
			name:    "missing username",
			mutate:  func(c *Config) { c.Username = "" },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid
			tt.mutate(&c)
			err := c.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	in := Config{
		LoginURL: "https://login.example.com",
		Version:  "v20.0",
		ClientID: "app-id",
		Username: "user@example.com",
	}

	if err := Save(path, in); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("Stat() error = %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0o600 {
		t.Errorf("permissions = %o, want 600", perm)
	}

	out, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if out != in {
		t.Errorf("round trip = %+v, want %+v", out, in)
	}
}
