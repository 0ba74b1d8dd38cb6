// Package review is the interactive step between matching and writing.
//
// A [Reviewer] reads one answer at a time from a [Prompter], so the same
// session runs against a terminal ([SurveyPrompter]) or any reader
// ([LinePrompter]). It works in three phases, each skippable:
//
//   - flagged candidates: keep, substitute another search result, or queue for deletion
//   - not added: manually re-search queued and unresolved entries
//   - final walkthrough: move a cursor over the final list with h, j and m
//
// Bad option numbers and unknown commands re-prompt. Closed input ends the
// review with [shared.ErrInputClosed].
package review
