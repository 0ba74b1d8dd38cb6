package shared

import (
	"fmt"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/mitchellh/go-homedir"
)

// AppName namespaces every file plx keeps outside the working directory.
const AppName = "plx"

const (
	SpotifyTokenFile = "spotify-token.json"
	YouTubeTokenFile = "youtube-token.json"
	DatabaseFile     = "plx.db"
)

// CachePath returns $XDG_CACHE_HOME/plx/name, creating the parent directory.
func CachePath(name string) (string, error) {
	p, err := xdg.CacheFile(filepath.Join(AppName, name))
	if err != nil {
		return "", fmt.Errorf("failed to resolve cache path for %s: %w", name, err)
	}
	return p, nil
}

// DataPath returns $XDG_DATA_HOME/plx/name, creating the parent directory.
func DataPath(name string) (string, error) {
	p, err := xdg.DataFile(filepath.Join(AppName, name))
	if err != nil {
		return "", fmt.Errorf("failed to resolve data path for %s: %w", name, err)
	}
	return p, nil
}

// ExpandPath resolves a leading ~ to the user's home directory.
func ExpandPath(p string) (string, error) {
	expanded, err := homedir.Expand(p)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrInvalidArgument, p, err)
	}
	return expanded, nil
}

// DatabasePath returns the configured report log path, or the XDG default when empty.
func DatabasePath(c *Config) (string, error) {
	switch c.Database.Path {
	case "":
		return DataPath(DatabaseFile)
	case ":memory:":
		return c.Database.Path, nil
	default:
		return ExpandPath(c.Database.Path)
	}
}
