// Package notify provides formatted progress notifications for CLI users.
//
// Message types include success (✔), error (✗), warning (⚠), info (ℹ), activity (►)
// and titles prefixed with an emoji. [StageSeparatingWriter] inserts a blank line
// before every title after the first so that stages stay visually grouped.
package notify
