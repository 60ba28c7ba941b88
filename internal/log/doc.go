// Package log provides logging with automatic sanitization of
// credential-like values, built on top of the standard slog package.
//
// Video URLs, descriptions, and recipe-site pages pass through the
// logs verbatim, but anything that looks like an API key, cookie, or
// bearer token is masked first. Cooking channels occasionally paste
// affiliate or membership tokens into descriptions, and those should
// never end up in a log file that gets shared in a bug report.
//
// # Usage
//
//	logger := log.NewSanitizedLogger(os.Stderr, verbose)
//	slog.SetDefault(logger)
package log
