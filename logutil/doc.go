// Package logutil provides structured logging for the toolkit built on log/slog.
//
// A single global logger writes human-readable text or JSON to stderr. Debug
// output is enabled programmatically or via the AWS_TOOLKIT_DEBUG environment
// variable. Tests can redirect output with SetupLoggerWithWriter to inspect
// emitted records.
package logutil
