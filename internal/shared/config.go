package shared

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

//go:embed config.example.toml
var exampleConf []byte

// Config is the plx configuration read from config.toml.
type Config struct {
	Credentials CredentialsConfig `toml:"credentials"`
	Database    DatabaseConfig    `toml:"database"`
	Server      ServerConfig      `toml:"server"`
	Search      SearchConfig      `toml:"search"`
}

// CredentialsConfig groups the per-service credentials.
type CredentialsConfig struct {
	Spotify SpotifyConfig `toml:"spotify"`
	YouTube YouTubeConfig `toml:"youtube"`
}

// SpotifyConfig holds the Spotify application credentials.
// Values supplied by flags or SPOTIFY_* environment variables take precedence.
type SpotifyConfig struct {
	ClientID     string `toml:"client_id"`
	ClientSecret string `toml:"client_secret"`
	RedirectURI  string `toml:"redirect_uri"`
}

// YouTubeConfig configures access to the YouTube Data API.
//
// When APIKey is set, public playlists are read without an OAuth login and
// SecretFile is ignored.
type YouTubeConfig struct {
	APIKey     string `toml:"api_key"`
	SecretFile string `toml:"secret_file"`
}

// DatabaseConfig locates the conversion report log. An empty Path resolves to
// the XDG data directory.
type DatabaseConfig struct {
	Path string `toml:"path"`
}

// ServerConfig is the address of the temporary OAuth callback listener.
type ServerConfig struct {
	Host string `toml:"host"`
	Port int    `toml:"port"`
}

// SearchConfig paces catalog searches. RateLimit is requests per second; zero disables pacing.
type SearchConfig struct {
	RateLimit float64 `toml:"rate_limit"`
}

// Addr returns the host:port the callback server listens on.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// RedirectURL returns the configured Spotify redirect URI, or one derived from the server address.
func (c *Config) RedirectURL() string {
	if c.Credentials.Spotify.RedirectURI != "" {
		return c.Credentials.Spotify.RedirectURI
	}
	return fmt.Sprintf("http://%s/callback", c.Server.Addr())
}

// LoadConfig reads and parses a TOML configuration file from the specified path.
//
// Keys missing from the file keep the values of [DefaultConfig].
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrMissingConfig, path)
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := toml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return config, nil
}

// DefaultConfig returns the configuration embedded in config.example.toml.
func DefaultConfig() *Config {
	var config Config
	if err := toml.Unmarshal(exampleConf, &config); err != nil {
		panic(fmt.Sprintf("failed to parse embedded default config: %v", err))
	}
	return &config
}

// CreateConfigFile writes the embedded example config to path. It refuses to overwrite an existing file.
func CreateConfigFile(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s", path)
	}

	if err := os.WriteFile(path, exampleConf, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}
