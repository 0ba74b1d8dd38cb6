// Package models defines the values that flow through a plx conversion.
//
// A source reader produces [RawEntry] values. Each entry is normalized into a
// search query and resolved into either a [Candidate] or an
// [UnresolvedEntry], collected in a [Resolution]. Review turns candidates into
// [Decision] values; only kept or replaced candidates are written.
//
// [Run] and [RunEntry] describe a finished conversion as stored in the report
// log, and [PlaylistItem] is the record written by playlist exports.
package models
