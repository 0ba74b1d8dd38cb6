// Package services adapts the external music catalogs to the small interfaces the
// conversion pipeline needs.
//
// # Sources
//
// [YouTubeReader] reads playlists through the YouTube Data API v3, either with an
// API key or with an OAuth client built from a Google client-secret file
// ([GoogleOAuthConfig]). [AppleMusicReader] parses a playlist page saved from
// the Apple Music web player.
//
// # Destination
//
// [SpotifyService] implements search, playlist creation and playlist export on
// top of github.com/zmb3/spotify/v2. [NewSpotifyAuth] builds the matching
// authenticator.
//
// # Credentials
//
// OAuth tokens are cached per service through a [CredentialStore]. [Authorize]
// reuses a stored token for [CredentialTTL] after it was issued and runs a new
// login otherwise.
//
// # Error Handling
//
// Errors wrap sentinels from the shared package:
//   - [shared.ErrParse] : saved page does not have the expected structure
//   - [shared.ErrAPIRequest] : remote call failed
//   - [shared.ErrTokenExpired] : the destination rejected the token
//   - [shared.ErrPlaylistNotFound] : unknown playlist ID
//   - [shared.ErrMissingCredentials] : no client ID/secret or secret file
package services
