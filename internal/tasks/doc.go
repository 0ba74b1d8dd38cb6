// Package tasks runs playlist conversions and exports with progress reporting.
//
// # Conversion
//
// [Converter.Run] is a single synchronous pipeline:
//
//  1. read the source title and entries ([services.SourceReader])
//  2. normalize every entry into a [Query] ([BuildQueries])
//  3. search each query and keep the first result as a candidate ([Resolver])
//  4. hand the [models.Resolution] to an optional [Reviewer]
//  5. create a private playlist and append the final tracks in batches of [BatchSize] ([Writer])
//  6. hand the finished [models.Run] to an optional [Recorder]
//
// Queries without results become unresolved entries and never stop a run.
// Any other remote failure does; nothing is retried.
//
// # Progress Reporting
//
// Operations call a [ProgressFunc] on the caller's goroutine. A nil func is
// allowed. Each [ProgressUpdate] carries its [Phase], step counters and a
// message ready for display.
//
// # Rate Limiting
//
// Catalog searches pass through a golang.org/x/time/rate limiter. The limit
// only spaces requests out.
package tasks
