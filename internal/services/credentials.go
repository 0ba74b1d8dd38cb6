package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/oauth2"

	"github.com/desertthunder/plx/internal/shared"
)

// CredentialTTL is how long a cached login is reused before a new one is required.
const CredentialTTL = 518400 * time.Second

// Credential is a cached OAuth token and the moment it was obtained.
type Credential struct {
	Token    *oauth2.Token `json:"token"`
	IssuedAt time.Time     `json:"issued_at"`
}

// Fresh reports whether the credential was issued less than [CredentialTTL] before now.
func (c Credential) Fresh(now time.Time) bool {
	return c.Token != nil && now.Sub(c.IssuedAt) < CredentialTTL
}

// CredentialStore persists one service's credential between runs.
type CredentialStore interface {
	// Load returns ok=false when nothing has been stored yet.
	Load() (c Credential, ok bool, err error)
	Save(c Credential) error
}

// FileCredentialStore keeps a credential as JSON in a single file.
type FileCredentialStore struct {
	Path string
}

func NewFileCredentialStore(path string) *FileCredentialStore {
	return &FileCredentialStore{Path: path}
}

func (s *FileCredentialStore) Load() (Credential, bool, error) {
	var c Credential

	data, err := os.ReadFile(s.Path)
	if errors.Is(err, os.ErrNotExist) {
		return c, false, nil
	}
	if err != nil {
		return c, false, fmt.Errorf("failed to read credential file: %w", err)
	}

	if err := json.Unmarshal(data, &c); err != nil {
		return c, false, fmt.Errorf("%w: credential file %s: %v", shared.ErrInvalidConfig, s.Path, err)
	}
	return c, c.Token != nil, nil
}

func (s *FileCredentialStore) Save(c Credential) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode credential: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.Path), 0o700); err != nil {
		return fmt.Errorf("failed to create credential directory: %w", err)
	}
	if err := os.WriteFile(s.Path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write credential file: %w", err)
	}
	return nil
}

// LoginFunc obtains a new token interactively.
type LoginFunc func(ctx context.Context) (*oauth2.Token, error)

// Authorize returns the stored token while it is fresh, otherwise runs login and stores the result.
func Authorize(ctx context.Context, store CredentialStore, now func() time.Time, login LoginFunc) (*oauth2.Token, error) {
	if now == nil {
		now = time.Now
	}

	c, ok, err := store.Load()
	if err != nil {
		return nil, err
	}
	if ok && c.Fresh(now()) {
		return c.Token, nil
	}

	token, err := login(ctx)
	if err != nil {
		return nil, err
	}
	if token == nil {
		return nil, fmt.Errorf("%w: login returned no token", shared.ErrAuthFailed)
	}

	if err := store.Save(Credential{Token: token, IssuedAt: now()}); err != nil {
		return nil, err
	}
	return token, nil
}
