package shared

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestConfig(t *testing.T) {
	t.Run("DefaultConfig", func(t *testing.T) {
		config := DefaultConfig()

		if config.Database.Path != "" {
			t.Errorf("expected empty database path, got %s", config.Database.Path)
		}

		if config.Server.Port != 3000 {
			t.Errorf("expected server port 3000, got %d", config.Server.Port)
		}

		if config.Credentials.YouTube.SecretFile != "client_secret.json" {
			t.Errorf("expected youtube secret file client_secret.json, got %s", config.Credentials.YouTube.SecretFile)
		}

		if config.Search.RateLimit != 0 {
			t.Errorf("expected unlimited search rate, got %v", config.Search.RateLimit)
		}
	})

	t.Run("RedirectURL", func(t *testing.T) {
		config := DefaultConfig()
		if got := config.RedirectURL(); got != "http://127.0.0.1:3000/callback" {
			t.Errorf("expected derived redirect, got %s", got)
		}

		config.Credentials.Spotify.RedirectURI = "http://localhost:9000/cb"
		if got := config.RedirectURL(); got != "http://localhost:9000/cb" {
			t.Errorf("expected configured redirect, got %s", got)
		}
	})

	t.Run("CreateConfigFile", func(t *testing.T) {
		configPath := filepath.Join(t.TempDir(), "config.toml")

		if err := CreateConfigFile(configPath); err != nil {
			t.Fatalf("failed to create config file: %v", err)
		}

		config, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("failed to load created config: %v", err)
		}

		if config.Server.Addr() != DefaultConfig().Server.Addr() {
			t.Errorf("created config server address doesn't match default")
		}

		if err := CreateConfigFile(configPath); err == nil {
			t.Error("creating config file again should fail")
		}
	})

	t.Run("LoadConfig", func(t *testing.T) {
		configPath := filepath.Join(t.TempDir(), "config.toml")

		testConfig := `[database]
path = "/custom/path.db"

[server]
port = 8080

[search]
rate_limit = 2.5

[credentials.spotify]
client_id = "test_client_id"
client_secret = "test_secret"
`
		if err := os.WriteFile(configPath, []byte(testConfig), 0o644); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}

		config, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("failed to load config: %v", err)
		}

		if config.Database.Path != "/custom/path.db" {
			t.Errorf("expected database path /custom/path.db, got %s", config.Database.Path)
		}

		if config.Server.Addr() != "127.0.0.1:8080" {
			t.Errorf("expected default host with overridden port, got %s", config.Server.Addr())
		}

		if config.Search.RateLimit != 2.5 {
			t.Errorf("expected rate limit 2.5, got %v", config.Search.RateLimit)
		}

		if config.Credentials.Spotify.ClientID != "test_client_id" {
			t.Errorf("expected spotify client_id test_client_id, got %s", config.Credentials.Spotify.ClientID)
		}
	})

	t.Run("LoadConfig errors", func(t *testing.T) {
		dir := t.TempDir()

		_, err := LoadConfig(filepath.Join(dir, "missing.toml"))
		if !errors.Is(err, ErrMissingConfig) {
			t.Errorf("expected ErrMissingConfig, got %v", err)
		}

		bad := filepath.Join(dir, "bad.toml")
		if err := os.WriteFile(bad, []byte("[server\nport = "), 0o644); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}
		_, err = LoadConfig(bad)
		if !errors.Is(err, ErrInvalidConfig) {
			t.Errorf("expected ErrInvalidConfig, got %v", err)
		}
	})
}

func TestPaths(t *testing.T) {
	t.Run("DatabasePath", func(t *testing.T) {
		tt := []struct {
			name string
			path string
			want string
		}{
			{name: "memory", path: ":memory:", want: ":memory:"},
			{name: "absolute", path: "/tmp/plx.db", want: "/tmp/plx.db"},
		}

		for _, tc := range tt {
			t.Run(tc.name, func(t *testing.T) {
				config := DefaultConfig()
				config.Database.Path = tc.path
				got, err := DatabasePath(config)
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				if got != tc.want {
					t.Errorf("DatabasePath() = %s, want %s", got, tc.want)
				}
			})
		}
	})

	t.Run("ExpandPath", func(t *testing.T) {
		t.Setenv("HOME", "/home/tester")

		got, err := ExpandPath("plain/file.html")
		if err != nil || got != "plain/file.html" {
			t.Errorf("expected unchanged relative path, got %q (%v)", got, err)
		}
	})

	t.Run("browserCommand", func(t *testing.T) {
		original := getRuntime
		defer func() { getRuntime = original }()

		getRuntime = func() string { return "plan9" }
		if _, err := browserCommand("http://127.0.0.1"); err == nil {
			t.Error("expected unsupported platform error")
		}

		getRuntime = func() string { return "darwin" }
		cmd, err := browserCommand("http://127.0.0.1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cmd.Args[0] != "open" {
			t.Errorf("expected open, got %s", cmd.Args[0])
		}
	})
}
