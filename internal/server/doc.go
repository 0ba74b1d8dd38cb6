// Package server runs the short-lived local HTTP server that receives OAuth callbacks.
//
// # Router Infrastructure
//
// The [Router] interface defines HTTP routing with middleware support.
//
// [Middleware] wraps handlers in reverse order (last added executes first), following the standard Go pattern.
// [RequestLogger] is the only middleware the CLI installs.
//
// The [BasicRouter] implementation uses [http.ServeMux] internally with method filtering.
//
// # OAuth Callback Handler
//
// [OAuthHandler] implements the OAuth2 authorization code callback. It validates the
// state parameter, exchanges the code through an [Exchanger] and sends the result
// through a channel. Only the first callback is processed.
//
// # Callback Server
//
// [CallbackServer] binds the configured address (127.0.0.1:3000 by default), serves
// the handler and shuts down once a token arrives or the wait times out.
package server
