package main

import (
	"context"
	"fmt"
	"time"

	"github.com/urfave/cli/v3"
	"golang.org/x/oauth2"
	"google.golang.org/api/option"

	"github.com/desertthunder/plx/internal/server"
	"github.com/desertthunder/plx/internal/services"
	"github.com/desertthunder/plx/internal/shared"
)

const authTimeout = 2 * time.Minute

// spotifyCredentials resolves the client ID and secret: flag or environment first, then config.toml.
func (r *Runner) spotifyCredentials(cmd *cli.Command) (string, string, error) {
	id := cmd.String("spotify-client-id")
	if id == "" {
		id = r.config.Credentials.Spotify.ClientID
	}
	secret := cmd.String("spotify-client-secret")
	if secret == "" {
		secret = r.config.Credentials.Spotify.ClientSecret
	}
	if id == "" || secret == "" {
		return "", "", fmt.Errorf("%w: set --spotify-client-id and --spotify-client-secret, SPOTIFY_CLIENT_ID and SPOTIFY_CLIENT_SECRET, or [credentials.spotify] in config.toml", shared.ErrMissingCredentials)
	}
	return id, secret, nil
}

// spotifyDestination returns an authorized Spotify client, logging in through the browser
// when the cached credential is missing or stale.
func (r *Runner) spotifyDestination(ctx context.Context, cmd *cli.Command) (services.Destination, error) {
	if r.dest != nil {
		return r.dest, nil
	}

	id, secret, err := r.spotifyCredentials(cmd)
	if err != nil {
		return nil, err
	}
	auth, err := services.NewSpotifyAuth(id, secret, r.config.RedirectURL())
	if err != nil {
		return nil, err
	}

	path, err := shared.CachePath(shared.SpotifyTokenFile)
	if err != nil {
		return nil, err
	}
	token, err := services.Authorize(ctx, services.NewFileCredentialStore(path), r.now, func(ctx context.Context) (*oauth2.Token, error) {
		return r.doOAuth(ctx, "Spotify", auth, func(state string) string { return auth.AuthURL(state) })
	})
	if err != nil {
		return nil, err
	}

	r.dest = services.NewSpotifyService(auth.Client(ctx, token), r.logger)
	return r.dest, nil
}

// youtubeSource returns a YouTube reader using the configured API key, or OAuth with
// the client-secret file when no key is set.
func (r *Runner) youtubeSource(ctx context.Context, cmd *cli.Command) (services.SourceReader, error) {
	if r.youtube != nil {
		return r.youtube, nil
	}

	if key := r.config.Credentials.YouTube.APIKey; key != "" {
		r.logger.Debug("using YouTube API key")
		return services.NewYouTubeReader(ctx, r.logger, option.WithAPIKey(key))
	}

	secretFile := cmd.String("secret-file")
	if secretFile == "" {
		secretFile = r.config.Credentials.YouTube.SecretFile
	}
	cfg, err := services.GoogleOAuthConfig(secretFile, r.config.RedirectURL())
	if err != nil {
		return nil, err
	}

	path, err := shared.CachePath(shared.YouTubeTokenFile)
	if err != nil {
		return nil, err
	}
	token, err := services.Authorize(ctx, services.NewFileCredentialStore(path), r.now, func(ctx context.Context) (*oauth2.Token, error) {
		return r.doOAuth(ctx, "YouTube", cfg, func(state string) string { return cfg.AuthCodeURL(state, oauth2.AccessTypeOffline) })
	})
	if err != nil {
		return nil, err
	}

	return services.NewYouTubeReader(ctx, r.logger, option.WithTokenSource(cfg.TokenSource(ctx, token)))
}

// doOAuth runs the authorization code flow against the local callback server.
func (r *Runner) doOAuth(ctx context.Context, service string, ex server.Exchanger, authURL func(state string) string) (*oauth2.Token, error) {
	state := shared.GenerateID()
	srv := server.NewCallbackServer(r.config.Server.Addr(), server.NewOAuthHandler(ex, state), r.logger)
	if err := srv.Start(); err != nil {
		return nil, err
	}

	url := authURL(state)
	r.writePlain("→ Opening browser for %s authorization...\n", service)
	if err := shared.OpenBrowser(url); err != nil {
		r.logger.Warn("failed to open browser automatically", "error", err)
		r.writePlainln("⚠ Could not open browser automatically.")
		r.writePlain("Please open this URL in your browser:\n%s\n\n", url)
	}

	r.writePlain("→ Waiting for authorization (2 minute timeout)...\n")
	token, err := srv.Wait(ctx, authTimeout)
	if err != nil {
		return nil, fmt.Errorf("%s authorization failed: %w", service, err)
	}
	r.writePlain("✓ %s authorization successful\n", service)
	return token, nil
}
