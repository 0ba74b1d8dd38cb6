// Package repositories implements SQLite persistence for the conversion report log.
//
// Every conversion is stored as a run with the entries that did not reach the
// destination playlist: searches without results and matches discarded during
// review. The history command reads them back.
//
// Key Implementations:
//   - [ReportRepository] : run and run entry persistence, newest runs first
//
// The schema is applied by [shared.OpenReportLog] from embedded migrations.
package repositories
